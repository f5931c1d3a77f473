// Package recorder archives finished and in-flight encounters to SQLite so
// battle reports survive the process. It is an optional sink: callers that
// pass no database path simply run without one.
package recorder

import (
	"encoding/json"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"HexFleetCommand/internal/combat"
)

type Recorder struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open creates or opens the report database and migrates the schema.
func Open(path string, log zerolog.Logger) (*Recorder, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open report db %q: %w", path, err)
	}
	if err := db.AutoMigrate(&BattleReport{}, &ReportEvent{}, &ShipOutcome{}); err != nil {
		return nil, fmt.Errorf("migrate report db: %w", err)
	}
	return &Recorder{db: db, log: log.With().Str("component", "recorder").Logger()}, nil
}

func (r *Recorder) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Battle is an open report being written as one encounter runs.
type Battle struct {
	rec      *Recorder
	reportID uint
}

// Start opens a new report for an encounter with the given seed.
func (r *Recorder) Start(seed int64) (*Battle, error) {
	report := BattleReport{Seed: seed}
	if err := r.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("create battle report: %w", err)
	}
	r.log.Debug().Uint("report", report.ID).Int64("seed", seed).Msg("battle report opened")
	return &Battle{rec: r, reportID: report.ID}, nil
}

// Record appends combat-log entries to the report.
func (b *Battle) Record(events []combat.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]ReportEvent, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal event %d: %w", e.Seq, err)
		}
		rows = append(rows, ReportEvent{
			BattleReportID: b.reportID,
			Seq:            e.Seq,
			Round:          e.Round,
			Type:           string(e.Type),
			Ship:           string(e.Ship),
			Target:         string(e.Target),
			Payload:        string(payload),
		})
	}
	return b.rec.db.Create(&rows).Error
}

// Finish closes the report with the final roster.
func (b *Battle) Finish(out combat.Outcome) error {
	update := map[string]any{
		"winner":   string(out.Winner),
		"rounds":   out.Rounds,
		"finished": true,
	}
	if err := b.rec.db.Model(&BattleReport{}).Where("id = ?", b.reportID).Updates(update).Error; err != nil {
		return fmt.Errorf("finish battle report: %w", err)
	}
	var rows []ShipOutcome
	add := func(ships []*combat.Ship, status string) {
		for _, s := range ships {
			rows = append(rows, ShipOutcome{
				BattleReportID: b.reportID,
				ShipID:         string(s.ID),
				Name:           s.Name,
				Class:          s.Class,
				Faction:        string(s.Faction),
				Status:         status,
				Hull:           s.Hull,
				MaxHull:        s.MaxHull,
				Crew:           s.Crew,
				MaxCrew:        s.MaxCrew,
			})
		}
	}
	add(out.Survivors, StatusSurvivor)
	add(out.Disabled, StatusDisabled)
	add(out.Destroyed, StatusDestroyed)
	add(out.Retreated, StatusRetreated)
	if len(rows) == 0 {
		return nil
	}
	if err := b.rec.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("store ship outcomes: %w", err)
	}
	b.rec.log.Info().Uint("report", b.reportID).Str("winner", string(out.Winner)).Int("rounds", out.Rounds).Msg("battle report closed")
	return nil
}

// Report loads one archived encounter with its events and outcomes.
func (r *Recorder) Report(id uint) (*BattleReport, error) {
	var report BattleReport
	err := r.db.Preload("Events", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq asc")
	}).Preload("Outcomes").First(&report, id).Error
	if err != nil {
		return nil, fmt.Errorf("load battle report %d: %w", id, err)
	}
	return &report, nil
}

// Recent lists the newest reports, most recent first.
func (r *Recorder) Recent(limit int) ([]BattleReport, error) {
	var reports []BattleReport
	if limit <= 0 {
		limit = 20
	}
	err := r.db.Order("id desc").Limit(limit).Find(&reports).Error
	return reports, err
}
