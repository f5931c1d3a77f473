package combat

// Personality parameterizes the rule-based AI. PreferredRange is the band the
// ship tries to hold in hexes; RetreatThreshold is the hull fraction below
// which it disengages; EvasionPriority is the chance spare movement goes into
// defensive turning instead of forward pressure.
type Personality struct {
	Name             string  `json:"name"`
	PreferredRange   int     `json:"preferredRange"`
	Aggressive       bool    `json:"aggressive"`
	RetreatThreshold float64 `json:"retreatThreshold"`
	EvasionPriority  float64 `json:"evasionPriority"`
}

var personalityPresets = map[string]Personality{
	"aggressive": {Name: "aggressive", PreferredRange: 4, Aggressive: true, RetreatThreshold: 0.20, EvasionPriority: 0.3},
	"defensive":  {Name: "defensive", PreferredRange: 8, Aggressive: false, RetreatThreshold: 0.50, EvasionPriority: 0.8},
	"balanced":   {Name: "balanced", PreferredRange: 6, Aggressive: true, RetreatThreshold: 0.30, EvasionPriority: 0.5},
	"sniper":     {Name: "sniper", PreferredRange: 10, Aggressive: false, RetreatThreshold: 0.40, EvasionPriority: 0.6},
}

// PersonalityPreset returns a named preset, falling back to balanced.
func PersonalityPreset(name string) Personality {
	if p, ok := personalityPresets[name]; ok {
		return p
	}
	return personalityPresets["balanced"]
}
