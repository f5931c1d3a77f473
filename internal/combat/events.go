package combat

// EventType labels entries in the ordered combat log. A renderer or recorder
// can replay an encounter from the log alone.
type EventType string

const (
	EvPhase        EventType = "phase"
	EvInitiative   EventType = "initiative"
	EvMove         EventType = "move"
	EvTurn         EventType = "turn"
	EvFire         EventType = "fire"
	EvSystemHit    EventType = "system_hit"
	EvCasualties   EventType = "casualties"
	EvDisabled     EventType = "disabled"
	EvBreach       EventType = "breach"
	EvDestroyed    EventType = "destroyed"
	EvRetreat      EventType = "retreat"
	EvRepair       EventType = "repair"
	EvPower        EventType = "power"
	EvHold         EventType = "hold"
	EvEncounterEnd EventType = "encounter_end"
)

// Event is one entry in the combat log. Fields beyond Type/Round are filled
// per event kind; zero values mean "not applicable".
type Event struct {
	Seq   int       `json:"seq"`
	Round int       `json:"round"`
	Type  EventType `json:"type"`

	Phase Phase  `json:"phase,omitempty"`
	Ship  ShipID `json:"ship,omitempty"`

	// Movement.
	From   Hex    `json:"from,omitempty"`
	To     Hex    `json:"to,omitempty"`
	Facing Facing `json:"facing,omitempty"`

	// Firing.
	Target       ShipID  `json:"target,omitempty"`
	Weapon       string  `json:"weapon,omitempty"`
	Hit          bool    `json:"hit,omitempty"`
	ShieldDamage float64 `json:"shieldDamage,omitempty"`
	HullDamage   float64 `json:"hullDamage,omitempty"`
	Arc          Arc     `json:"arc,omitempty"`

	// System damage / repair.
	System   SystemID `json:"system,omitempty"`
	Severity float64  `json:"severity,omitempty"`

	// Crew.
	Crew int `json:"crew,omitempty"`

	// Initiative order, encounter outcome, free-form detail.
	Order  []ShipID `json:"order,omitempty"`
	Winner Faction  `json:"winner,omitempty"`
	Note   string   `json:"note,omitempty"`
}
