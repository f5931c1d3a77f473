package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"HexFleetCommand/internal/recorder"
)

// StartApp wires the encounter manager to an HTTP listener and blocks
// serving it. When cfg.ReportPath is set, finished battles are persisted
// there and exposed under /reports.
func StartApp(cfg Config, log zerolog.Logger) error {
	var rec *recorder.Recorder
	if cfg.ReportPath != "" {
		r, err := recorder.Open(cfg.ReportPath, log)
		if err != nil {
			return err
		}
		defer r.Close()
		rec = r
		log.Info().Str("path", cfg.ReportPath).Msg("battle recording enabled")
	}

	m := NewManager(cfg, log, rec)
	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	return http.ListenAndServe(cfg.ListenAddr, m.routes())
}
