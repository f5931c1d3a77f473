package combat

import "math"

// ShipID identifies a ship within one encounter. IDs sort lexically, which is
// also the deterministic tie-break order everywhere one is needed.
type ShipID string

type Faction string

const (
	FactionFriendly Faction = "friendly"
	FactionEnemy    Faction = "enemy"
	FactionNeutral  Faction = "neutral"
)

// Ship is the full combat-scoped state of one vessel. It is instantiated from
// a class template before the encounter and mutated only by the Resolver.
type Ship struct {
	ID      ShipID  `json:"id"`
	Name    string  `json:"name"`
	Class   string  `json:"class"`
	Faction Faction `json:"faction"`

	Pos    Hex    `json:"pos"`
	Facing Facing `json:"facing"`
	Large  bool   `json:"large"` // seven-hex footprint

	Hull    float64 `json:"hull"`
	MaxHull float64 `json:"maxHull"`
	Armor   float64 `json:"armor"` // flat percentage reduction on hull damage

	Shields     map[Arc]float64 `json:"shields"`
	MaxShields  map[Arc]float64 `json:"maxShields"`
	ShieldRegen float64         `json:"shieldRegen"` // base points per arc per round

	BaseMP    int             `json:"baseMP"`
	Power     PowerAllocation `json:"power"`
	PowerPool int             `json:"powerPool"`

	Weapons   []WeaponMount  `json:"weapons"`
	Torpedoes []TorpedoMount `json:"torpedoes"`

	BaseSensorRange int       `json:"baseSensorRange"`
	Deflector       Deflector `json:"deflector"`

	Systems SystemHealth `json:"systems"`

	Crew     int        `json:"crew"`
	MaxCrew  int        `json:"maxCrew"`
	Morale   float64    `json:"morale"`
	Skill    SkillLevel `json:"skill"`
	Officers Officers   `json:"officers"`

	// CommandRating feeds the initiative roll.
	CommandRating int `json:"commandRating"`

	Disabled      bool `json:"disabled"`
	Destroyed     bool `json:"destroyed"`
	Retreated     bool `json:"retreated"`
	PendingBreach bool `json:"pendingBreach"`

	// Fractional crew-loss debt from degraded life support; whole crew are
	// deducted as the debt crosses integer thresholds.
	attritionDebt float64
}

// Valid rejects structurally broken ships before they can corrupt a round.
func (s *Ship) Valid() bool {
	return s != nil && s.ID != "" && s.MaxHull > 0 && s.Facing.Valid() &&
		s.Systems != nil && s.Shields != nil && s.MaxShields != nil &&
		s.MaxCrew > 0
}

// Alive reports whether the ship is still on the map at all.
func (s *Ship) Alive() bool { return !s.Destroyed && !s.Retreated }

// CanAct reports whether the ship may take offensive or movement actions.
func (s *Ship) CanAct() bool { return s.Alive() && !s.Disabled }

func (s *Ship) HullFraction() float64 {
	if s.MaxHull <= 0 {
		return 0
	}
	return clampF(s.Hull/s.MaxHull, 0, 1)
}

func (s *Ship) CrewFraction() float64 {
	if s.MaxCrew <= 0 {
		return 0
	}
	return clampF(float64(s.Crew)/float64(s.MaxCrew), 0, 1)
}

// EffectiveSkill degrades the crew's base skill one step for every quarter of
// the complement lost. Green replacements man the stations of the dead.
func (s *Ship) EffectiveSkill() SkillLevel {
	lost := 1 - s.CrewFraction()
	steps := int(lost / 0.25)
	sk := s.Skill - SkillLevel(steps)
	if sk < Cadet {
		sk = Cadet
	}
	return sk
}

func (s *Ship) CrewBonus() float64 { return s.EffectiveSkill().Bonus() }

// MovementPoints is this round's movement budget: base allowance scaled by
// engine power and impulse condition, plus the helm officer's edge.
func (s *Ship) MovementPoints() int {
	mp := int(math.Floor(float64(s.BaseMP) * s.Power.EngineMultiplier() * s.Systems.Efficiency(SysImpulse)))
	mp += int(s.Officers.Conn * 10)
	if mp < 0 {
		mp = 0
	}
	return mp
}

// EffectiveSensorRange folds the deflector and science officer bonuses into
// the class base, then degrades by sensor condition. Never below 1.
func (s *Ship) EffectiveSensorRange() int {
	base := s.BaseSensorRange + s.Deflector.SensorBonus() + int(s.Officers.Science*10)
	r := int(math.Floor(float64(base) * s.Systems.Efficiency(SysSensors)))
	if r < 1 {
		r = 1
	}
	return r
}

// MaxTargetRange is the hard engagement ceiling; beyond it nothing can be
// targeted at any accuracy.
func (s *Ship) MaxTargetRange() int { return 2 * s.EffectiveSensorRange() }

// OccupiedHexes is the footprint at the ship's current position.
func (s *Ship) OccupiedHexes() []Hex { return s.FootprintAt(s.Pos) }

// FootprintAt is the set of hexes the hull would cover centered on pos.
// Large hulls fill the center and all six neighbors.
func (s *Ship) FootprintAt(pos Hex) []Hex {
	if !s.Large {
		return []Hex{pos}
	}
	out := make([]Hex, 0, 7)
	out = append(out, pos)
	n := Neighbors(pos)
	out = append(out, n[:]...)
	return out
}

// ArcToward returns which shield arc faces an attacker at from. The bearing
// from the ship to the attacker is taken relative to the ship's facing:
// within 45 degrees of dead ahead is fore, then starboard, aft, port.
func (s *Ship) ArcToward(from Hex) Arc {
	if from == s.Pos {
		return ArcFore
	}
	bearing := BearingDegrees(s.Pos, from)
	rel := math.Mod(bearing-s.Facing.Angle()+360, 360)
	switch {
	case rel <= 45 || rel >= 315:
		return ArcFore
	case rel < 135:
		return ArcStarboard
	case rel <= 225:
		return ArcAft
	default:
		return ArcPort
	}
}

// WeaponArcToward is the firing arc from this ship toward a target hex, used
// to check whether a mount bears.
func (s *Ship) WeaponArcToward(target Hex) Arc { return s.ArcToward(target) }

// DrainShield removes up to dmg from one arc and returns how much the arc
// actually absorbed.
func (s *Ship) DrainShield(arc Arc, dmg float64) float64 {
	if dmg <= 0 {
		return 0
	}
	cur := s.Shields[arc]
	applied := math.Min(cur, dmg)
	s.Shields[arc] = cur - applied
	return applied
}

// ApplyHull subtracts hull damage after armor, clamping at 0, and returns the
// amount actually taken.
func (s *Ship) ApplyHull(dmg float64) float64 {
	if dmg <= 0 {
		return 0
	}
	dmg *= 1 - clampF(s.Armor/100, 0, 0.95)
	taken := math.Min(s.Hull, dmg)
	s.Hull -= taken
	return taken
}

// RegenerateShields restores each arc by the ship's base regen rate scaled by
// shield power and shield-generator condition, capped at arc capacity.
func (s *Ship) RegenerateShields() {
	amount := s.ShieldRegen * s.Power.ShieldRegenMultiplier() * s.Systems.Efficiency(SysShields)
	if amount <= 0 {
		return
	}
	for _, arc := range AllArcs {
		s.Shields[arc] = math.Min(s.Shields[arc]+amount, s.MaxShields[arc])
	}
}

// StrongestArc returns the arc holding the largest fraction of its capacity.
func (s *Ship) StrongestArc() Arc {
	best := AllArcs[0]
	for _, arc := range AllArcs[1:] {
		if s.ShieldFraction(arc) > s.ShieldFraction(best) {
			best = arc
		}
	}
	return best
}

// ShieldFraction returns an arc's current charge as a fraction of capacity.
func (s *Ship) ShieldFraction(arc Arc) float64 {
	cap := s.MaxShields[arc]
	if cap <= 0 {
		return 0
	}
	return s.Shields[arc] / cap
}

// HasReadyWeapons reports whether any mount could fire this round.
func (s *Ship) HasReadyWeapons() bool {
	if len(s.Weapons) > 0 {
		return true
	}
	for i := range s.Torpedoes {
		if s.Torpedoes[i].Ready() {
			return true
		}
	}
	return false
}
