package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"HexFleetCommand/internal/combat"
)

const statusPage = `<!doctype html>
<html>
<head><title>Hex Fleet Command</title></head>
<body>
<h1>Hex Fleet Command</h1>
<p>Connect a client to <code>/ws?session=&lt;id&gt;</code> to command a ship.</p>
<p>Battle reports are served at <code>/reports</code> when recording is enabled.</p>
<p>Available classes: %s</p>
</body>
</html>
`

func (m *Manager) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", m.handleIndex)
	mux.HandleFunc("/ws", m.serveWS)
	mux.HandleFunc("/reports", m.handleReports)
	return mux
}

func (m *Manager) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, statusPage, strings.Join(combat.ClassNames(), ", "))
}

func (m *Manager) handleReports(w http.ResponseWriter, r *http.Request) {
	if m.rec == nil {
		http.Error(w, "recording disabled", http.StatusNotFound)
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		n, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			http.Error(w, "bad report id", http.StatusBadRequest)
			return
		}
		report, err := m.rec.Report(uint(n))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, report)
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	reports, err := m.rec.Recent(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, reports)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
