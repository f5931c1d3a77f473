package combat

const (
	// Power model. Three allocations share a fixed pool; 100 per subsystem is
	// the balanced baseline the multipliers pivot around.
	DefaultPowerPool   = 300
	BalancedAllocation = 100
	MaxAllocation      = 200 // per-subsystem cap

	// Per-10-power multiplier steps and their clamps.
	EnginePowerStep = 0.05
	WeaponPowerStep = 0.05
	ShieldPowerStep = 0.10
	EnginePowerMin  = 0.5
	EnginePowerMax  = 1.5
	WeaponPowerMin  = 0.5
	WeaponPowerMax  = 1.5
	ShieldRegenMin  = 0.0
	ShieldRegenMax  = 2.0

	// Weapon ranges in hexes.
	MaxEnergyRange  = 12
	MaxTorpedoRange = 15

	// Base single-shot hit chances before the range multiplier.
	EnergyBaseAccuracy  = 0.85
	TorpedoBaseAccuracy = 0.75

	// Torpedo damage split.
	TorpedoShieldBlock = 0.90 // fraction directed at the facing shield
	TorpedoBypass      = 0.10 // fraction that always reaches the hull
	TorpedoShieldCost  = 1.20 // extra shield drain on the blocked fraction

	// Multi-target accuracy penalties.
	PrimaryAccuracy   = 1.00
	SecondaryAccuracy = 0.75
	TertiaryAccuracy  = 0.50
	MaxTargets        = 3

	// Casualty model. Rates are fractions of max crew per unit of
	// (hull damage / max hull); shields-down hits are four times as lethal.
	CasualtyRateShielded    = 0.10
	CasualtyRateUnshielded  = 0.40
	HullFailureCasualtyRate = 0.50

	// Warp core breach crew evacuation.
	BreachSurvivalBase = 0.10
	BreachSurvivalMax  = 0.30

	// Life support attrition: expected crew lost per day at 0% life support.
	LifeSupportLossPerDay = 2.0

	// In-combat repair.
	FieldRepairBase   = 0.10 // fraction of system health restored per attempt
	FieldRepairCapLow = 0.25 // systems below 25% repair only this far
	FieldRepairCapMid = 0.50 // systems below 50% repair only this far

	// AI movement.
	RangeTolerance = 2 // acceptable deviation from preferred range, in hexes

	// Morale drifts toward its baseline each housekeeping phase.
	DefaultMorale = 70.0
	MoraleDrift   = 5.0
)
