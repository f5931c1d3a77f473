package recorder

import "time"

// BattleReport is one archived encounter. Events and outcomes hang off it so
// a report can be replayed or audited after the fact.
type BattleReport struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	Seed      int64
	Winner    string
	Rounds    int
	Finished  bool
	Events    []ReportEvent `gorm:"constraint:OnDelete:CASCADE"`
	Outcomes  []ShipOutcome `gorm:"constraint:OnDelete:CASCADE"`
}

// ReportEvent is one combat-log entry. The full event is kept as a JSON blob;
// the indexed columns exist for querying.
type ReportEvent struct {
	ID             uint `gorm:"primarykey"`
	BattleReportID uint `gorm:"index"`
	Seq            int
	Round          int
	Type           string `gorm:"index"`
	Ship           string
	Target         string
	Payload        string
}

// ShipOutcome is a ship's final state when the encounter ended.
type ShipOutcome struct {
	ID             uint `gorm:"primarykey"`
	BattleReportID uint `gorm:"index"`
	ShipID         string
	Name           string
	Class          string
	Faction        string
	Status         string
	Hull           float64
	MaxHull        float64
	Crew           int
	MaxCrew        int
}

const (
	StatusSurvivor  = "survivor"
	StatusDisabled  = "disabled"
	StatusDestroyed = "destroyed"
	StatusRetreated = "retreated"
)
