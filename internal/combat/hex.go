package combat

import (
	"fmt"
	"math"
)

// Hex is an axial hex coordinate (pointy-top orientation).
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Facing is one of six hex directions, 60 degrees apart.
// 0=E, 1=SE, 2=SW, 3=W, 4=NW, 5=NE.
type Facing int

const NumFacings = 6

// directionVecs maps a facing to its axial step vector.
var directionVecs = [NumFacings]Hex{
	{1, 0},  // E
	{0, 1},  // SE
	{-1, 1}, // SW
	{-1, 0}, // W
	{0, -1}, // NW
	{1, -1}, // NE
}

func (f Facing) Valid() bool { return f >= 0 && f < NumFacings }

// Left returns the facing one step counterclockwise.
func (f Facing) Left() Facing { return (f + NumFacings - 1) % NumFacings }

// Right returns the facing one step clockwise.
func (f Facing) Right() Facing { return (f + 1) % NumFacings }

// Angle returns the facing direction in degrees (0 = east, 60-degree steps
// in the same sense as BearingDegrees).
func (f Facing) Angle() float64 { return float64(f) * 60.0 }

// DirectionVec returns the axial unit step for a facing.
// Panics on an out-of-range facing; use Neighbor for checked lookup.
func DirectionVec(f Facing) Hex { return directionVecs[f] }

// Neighbor returns the hex adjacent to h in direction f.
func Neighbor(h Hex, f Facing) (Hex, error) {
	if !f.Valid() {
		return Hex{}, fmt.Errorf("%w: facing %d", ErrInvalidFacing, f)
	}
	d := directionVecs[f]
	return Hex{Q: h.Q + d.Q, R: h.R + d.R}, nil
}

// Neighbors returns all six adjacent hexes in facing order.
func Neighbors(h Hex) [NumFacings]Hex {
	var out [NumFacings]Hex
	for i, d := range directionVecs {
		out[i] = Hex{Q: h.Q + d.Q, R: h.R + d.R}
	}
	return out
}

// Distance returns the axial hex distance between a and b.
func Distance(a, b Hex) int {
	return (absInt(a.Q-b.Q) + absInt(a.Q+a.R-b.Q-b.R) + absInt(a.R-b.R)) / 2
}

// Add returns h translated by d.
func (h Hex) Add(d Hex) Hex { return Hex{Q: h.Q + d.Q, R: h.R + d.R} }

// Sub returns the vector from o to h.
func (h Hex) Sub(o Hex) Hex { return Hex{Q: h.Q - o.Q, R: h.R - o.R} }

// BearingDegrees returns the angle in degrees from h toward target in the
// plane the grid is drawn in, normalized to [0, 360). Each facing's step
// vector lands exactly on that facing's Angle.
func BearingDegrees(h, target Hex) float64 {
	hx, hy := h.ToPixel(1)
	tx, ty := target.ToPixel(1)
	deg := math.Atan2(ty-hy, tx-hx) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// ToPixel converts an axial coordinate to a pixel center for a pointy-top
// layout with the given hex size. Only a renderer cares about this; the
// engine itself never leaves hex space.
func (h Hex) ToPixel(size float64) (x, y float64) {
	x = size * (math.Sqrt(3)*float64(h.Q) + math.Sqrt(3)/2*float64(h.R))
	y = size * (1.5 * float64(h.R))
	return x, y
}

// FromPixel converts a pixel position back to the nearest hex.
func FromPixel(x, y, size float64) Hex {
	q := (math.Sqrt(3)/3*x - y/3) / size
	r := (2.0 / 3.0 * y) / size
	return roundAxial(q, r)
}

// roundAxial rounds fractional axial coordinates to the nearest hex by
// rounding in cube space and fixing the component with the largest error.
func roundAxial(q, r float64) Hex {
	x, z := q, r
	y := -x - z

	rx := math.Round(x)
	ry := math.Round(y)
	rz := math.Round(z)

	dx := math.Abs(rx - x)
	dy := math.Abs(ry - y)
	dz := math.Abs(rz - z)

	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}
	return Hex{Q: int(rx), R: int(rz)}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
