package combat

// SystemID names one damageable shipboard system.
type SystemID string

const (
	SysWeapons     SystemID = "weapons"
	SysShields     SystemID = "shields"
	SysSensors     SystemID = "sensors"
	SysImpulse     SystemID = "impulse"
	SysLifeSupport SystemID = "life_support"
	SysEngineering SystemID = "engineering"
	SysWarpDrive   SystemID = "warp_drive"
	SysWarpCore    SystemID = "warp_core"
	SysTransporter SystemID = "transporter"
	SysSickBay     SystemID = "sick_bay"
)

// AllSystems in a fixed order so weighted rolls replay deterministically.
var AllSystems = []SystemID{
	SysShields, SysSensors, SysWeapons, SysTransporter, SysSickBay,
	SysImpulse, SysEngineering, SysWarpDrive, SysLifeSupport, SysWarpCore,
}

// systemVulnerability weights the single-system pick on a triggered damage
// roll. Exposed systems like shield emitters take hits far more often than the
// armoured warp core.
var systemVulnerability = map[SystemID]float64{
	SysShields:     1.2,
	SysSensors:     1.1,
	SysWeapons:     1.0,
	SysTransporter: 1.0,
	SysSickBay:     0.9,
	SysImpulse:     0.8,
	SysEngineering: 0.7,
	SysWarpDrive:   0.6,
	SysLifeSupport: 0.5,
	SysWarpCore:    0.4,
}

// SystemHealth maps each system to its health fraction in [0, 1].
type SystemHealth map[SystemID]float64

func NewSystemHealth() SystemHealth {
	h := make(SystemHealth, len(AllSystems))
	for _, s := range AllSystems {
		h[s] = 1.0
	}
	return h
}

func (h SystemHealth) Get(s SystemID) float64 {
	v, ok := h[s]
	if !ok {
		return 1.0
	}
	return v
}

func (h SystemHealth) Damage(s SystemID, severity float64) {
	h[s] = clampF(h.Get(s)-severity, 0, 1)
}

// Efficiency is the working output of a system after cascade penalties: a
// failing warp core starves every other system, and failing life support
// degrades the crews manning weapons, sensors, and engineering.
func (h SystemHealth) Efficiency(s SystemID) float64 {
	eff := h.Get(s)
	if s == SysWarpCore {
		return eff
	}
	eff *= h.Get(SysWarpCore)
	switch s {
	case SysWeapons, SysSensors, SysEngineering:
		eff *= h.Get(SysLifeSupport)
	}
	return eff
}

// fieldRepairCap: badly mangled systems can only be patched so far without a
// starbase. Below 25% health repairs stop at 25%; below 50% they stop at 50%.
func fieldRepairCap(current float64) float64 {
	switch {
	case current < FieldRepairCapLow:
		return FieldRepairCapLow
	case current < FieldRepairCapMid:
		return FieldRepairCapMid
	default:
		return 1.0
	}
}

// Repair applies one field-repair attempt and returns the health restored.
func (h SystemHealth) Repair(s SystemID, crewBonus, engineerBonus float64) float64 {
	current := h.Get(s)
	cap := fieldRepairCap(current)
	if current >= cap {
		return 0
	}
	amount := FieldRepairBase * (1 + crewBonus + 2*engineerBonus) * h.Efficiency(SysEngineering)
	after := current + amount
	if after > cap {
		after = cap
	}
	h[s] = after
	return after - current
}

// mostDamagedSystem picks the repair target: lowest health first, ties broken
// by the fixed system order. Returns false when nothing needs repair.
func (h SystemHealth) mostDamagedSystem() (SystemID, bool) {
	best := SystemID("")
	bestHealth := 1.0
	for _, s := range AllSystems {
		if v := h.Get(s); v < bestHealth {
			best, bestHealth = s, v
		}
	}
	if best == "" || bestHealth >= 1.0 {
		return "", false
	}
	return best, true
}

// systemDamageBand holds the trigger chance and severity range for one
// hull-integrity band. Battered hulls both trigger more often and take worse
// internal damage.
type systemDamageBand struct {
	Chance float64
	MinSev float64
	MaxSev float64
}

func bandForHull(hullFrac float64) systemDamageBand {
	switch {
	case hullFrac > 0.75:
		return systemDamageBand{Chance: 0.15, MinSev: 0.05, MaxSev: 0.10}
	case hullFrac > 0.50:
		return systemDamageBand{Chance: 0.30, MinSev: 0.08, MaxSev: 0.15}
	case hullFrac > 0.25:
		return systemDamageBand{Chance: 0.50, MinSev: 0.12, MaxSev: 0.25}
	default:
		return systemDamageBand{Chance: 0.75, MinSev: 0.20, MaxSev: 0.40}
	}
}
