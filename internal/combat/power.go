package combat

// PowerAllocation is the three-way split of a ship's power pool. The split
// must always sum to the ship's total pool; the balanced baseline is 100 per
// subsystem.
type PowerAllocation struct {
	Engines int `json:"engines"`
	Shields int `json:"shields"`
	Weapons int `json:"weapons"`
}

func BalancedPower() PowerAllocation {
	return PowerAllocation{Engines: BalancedAllocation, Shields: BalancedAllocation, Weapons: BalancedAllocation}
}

func (p PowerAllocation) Total() int { return p.Engines + p.Shields + p.Weapons }

// Validate checks the exact-sum and per-subsystem-cap rules against a pool.
func (p PowerAllocation) Validate(pool int) error {
	if p.Engines < 0 || p.Shields < 0 || p.Weapons < 0 {
		return ErrPowerAllocation
	}
	if p.Engines > MaxAllocation || p.Shields > MaxAllocation || p.Weapons > MaxAllocation {
		return ErrPowerAllocation
	}
	if p.Total() != pool {
		return ErrPowerAllocation
	}
	return nil
}

// EngineMultiplier scales movement points: 5% per 10 power off the baseline.
func (p PowerAllocation) EngineMultiplier() float64 {
	return clampF(1.0+(float64(p.Engines)-BalancedAllocation)/10*EnginePowerStep, EnginePowerMin, EnginePowerMax)
}

// WeaponMultiplier scales energy-weapon output damage.
func (p PowerAllocation) WeaponMultiplier() float64 {
	return clampF(1.0+(float64(p.Weapons)-BalancedAllocation)/10*WeaponPowerStep, WeaponPowerMin, WeaponPowerMax)
}

// ShieldRegenMultiplier scales per-round shield regeneration, never capacity.
func (p PowerAllocation) ShieldRegenMultiplier() float64 {
	return clampF(1.0+(float64(p.Shields)-BalancedAllocation)/10*ShieldPowerStep, ShieldRegenMin, ShieldRegenMax)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
