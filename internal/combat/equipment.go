package combat

// Deflector is the navigational deflector fit. Better dishes sharpen the
// sensor picture: one extra effective hex per two marks.
type Deflector struct {
	Mark int `json:"mark"`
}

func (d Deflector) SensorBonus() int {
	if d.Mark < 0 {
		return 0
	}
	return d.Mark / 2
}
