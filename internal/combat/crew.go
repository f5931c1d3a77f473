package combat

import "math"

// SkillLevel is the crew experience ladder. Each step is worth a 5% bonus to
// skill-scaled mechanics (torpedo reload, repair, and so on).
type SkillLevel int

const (
	Cadet SkillLevel = iota
	Ensign
	Regular
	Veteran
	Elite
	Legendary
)

func (s SkillLevel) Bonus() float64 {
	if s < Cadet {
		return 0
	}
	if s > Legendary {
		s = Legendary
	}
	return float64(s) * 0.05
}

func (s SkillLevel) String() string {
	switch s {
	case Cadet:
		return "cadet"
	case Ensign:
		return "ensign"
	case Regular:
		return "regular"
	case Veteran:
		return "veteran"
	case Elite:
		return "elite"
	case Legendary:
		return "legendary"
	}
	return "unknown"
}

// Officers carries the senior-staff skill bonuses, 0 when the post is vacant.
// Bonuses are fractions in [0, 0.25] on the same ladder as crew skill.
type Officers struct {
	Tactical float64 `json:"tactical,omitempty"` // extra weapon damage fraction
	Medical  float64 `json:"medical,omitempty"`  // casualty mitigation, doubled, capped at 50%
	Engineer float64 `json:"engineer,omitempty"` // repair strength and breach evacuation
	Conn     float64 `json:"conn,omitempty"`     // bonus movement points
	Science  float64 `json:"science,omitempty"`  // bonus sensor range
}

// casualtyMitigation is the multiplier applied to crew losses: a top medical
// officer halves them.
func casualtyMitigation(medical float64) float64 {
	m := 1 - 2*medical
	if m < 0.5 {
		m = 0.5
	}
	return m
}

// hitCasualties converts a hull hit into crew losses. Losses scale with the
// hit's share of max hull; an unshielded arc makes the same hit four times as
// lethal.
func hitCasualties(maxCrew int, hullDamage, maxHull float64, shielded bool, medical float64) int {
	if maxHull <= 0 || hullDamage <= 0 {
		return 0
	}
	rate := CasualtyRateUnshielded
	if shielded {
		rate = CasualtyRateShielded
	}
	lost := float64(maxCrew) * (hullDamage / maxHull) * rate * casualtyMitigation(medical)
	n := int(math.Round(lost))
	if n < 0 {
		n = 0
	}
	return n
}

// hullFailureCasualties is the catastrophic loss when the hull gives out.
func hullFailureCasualties(crew int, medical float64) int {
	lost := float64(crew) * HullFailureCasualtyRate * casualtyMitigation(medical)
	n := int(math.Round(lost))
	if n < 0 {
		n = 0
	}
	if n > crew {
		n = crew
	}
	return n
}
