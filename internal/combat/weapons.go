package combat

import "math"

// Arc names one of the four shield/firing arcs relative to a ship's facing.
type Arc string

const (
	ArcFore      Arc = "fore"
	ArcAft       Arc = "aft"
	ArcPort      Arc = "port"
	ArcStarboard Arc = "starboard"
)

// AllArcs in display order.
var AllArcs = [4]Arc{ArcFore, ArcStarboard, ArcAft, ArcPort}

type EnergyWeaponType string

const (
	Phaser     EnergyWeaponType = "phaser"
	Disruptor  EnergyWeaponType = "disruptor"
	PlasmaBeam EnergyWeaponType = "plasma_beam"
	Polaron    EnergyWeaponType = "polaron"
	Tetryon    EnergyWeaponType = "tetryon"
)

var energyBaseDamage = map[EnergyWeaponType]float64{
	Phaser:     15,
	Disruptor:  18,
	PlasmaBeam: 20,
	Polaron:    16,
	Tetryon:    14,
}

type TorpedoType string

const (
	Photon        TorpedoType = "photon"
	Quantum       TorpedoType = "quantum"
	PlasmaTorpedo TorpedoType = "plasma"
	Tricobalt     TorpedoType = "tricobalt"
)

var torpedoBaseDamage = map[TorpedoType]float64{
	Photon:        80,
	Quantum:       100,
	PlasmaTorpedo: 90,
	Tricobalt:     120,
}

var torpedoBaseCooldown = map[TorpedoType]int{
	Photon:        3,
	PlasmaTorpedo: 3,
	Quantum:       4,
	Tricobalt:     5,
}

// WeaponMount is one energy-weapon hardpoint. Energy weapons have no cooldown
// and no ammunition; they fire every round they are selected.
type WeaponMount struct {
	Name string           `json:"name"`
	Type EnergyWeaponType `json:"type"`
	Mark int              `json:"mark"`
	Arcs []Arc            `json:"arcs"`
}

// Damage is the raw per-shot output before power, accuracy, and crew scaling.
func (w *WeaponMount) Damage() float64 {
	base, ok := energyBaseDamage[w.Type]
	if !ok {
		base = energyBaseDamage[Phaser]
	}
	return base + float64(w.Mark-1)*5
}

func (w *WeaponMount) MaxRange() int { return MaxEnergyRange }

func (w *WeaponMount) Ready() bool { return true }

// CoversArc reports whether the mount can bear on the given arc.
func (w *WeaponMount) CoversArc(a Arc) bool { return arcListContains(w.Arcs, a) }

// TorpedoMount is one torpedo launcher. Launchers track ammunition and a
// per-mount cooldown counter decremented during housekeeping.
type TorpedoMount struct {
	Name     string      `json:"name"`
	Type     TorpedoType `json:"type"`
	Mark     int         `json:"mark"`
	Arcs     []Arc       `json:"arcs"`
	Ammo     int         `json:"ammo"`
	MaxAmmo  int         `json:"maxAmmo"`
	Cooldown int         `json:"cooldown"`
}

func (t *TorpedoMount) Damage() float64 {
	base, ok := torpedoBaseDamage[t.Type]
	if !ok {
		base = torpedoBaseDamage[Photon]
	}
	return base + float64(t.Mark-1)*10
}

func (t *TorpedoMount) MaxRange() int { return MaxTorpedoRange }

func (t *TorpedoMount) Ready() bool { return t.Cooldown == 0 && t.Ammo > 0 }

func (t *TorpedoMount) CoversArc(a Arc) bool { return arcListContains(t.Arcs, a) }

// FireCooldown computes the cooldown set after firing. Higher marks cycle
// faster (one round off at mark 5, another at mark 10, never below 2), and a
// skilled crew shaves a further percentage.
func (t *TorpedoMount) FireCooldown(crewBonus float64) int {
	base, ok := torpedoBaseCooldown[t.Type]
	if !ok {
		base = torpedoBaseCooldown[Photon]
	}
	if t.Mark >= 5 {
		base--
	}
	if t.Mark >= 10 {
		base--
	}
	if base < 2 {
		base = 2
	}
	cd := int(math.Round(float64(base) * (1 - crewBonus)))
	if cd < 1 {
		cd = 1
	}
	return cd
}

func arcListContains(arcs []Arc, a Arc) bool {
	for _, x := range arcs {
		if x == a {
			return true
		}
	}
	return false
}
