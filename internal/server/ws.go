package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"HexFleetCommand/internal/combat"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (m *Manager) serveWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session, err := m.Session(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	session.attach(conn)
	defer session.detach(conn)

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		session.dispatch(conn, msg)
	}
}

func (s *Session) dispatch(conn *websocket.Conn, msg inboundMessage) {
	switch msg.Type {
	case "move":
		var p moveMsg
		if !s.decode(conn, msg.Payload, &p) {
			return
		}
		s.apply(conn, func(r *combat.Resolver, id combat.ShipID) error {
			if p.Direction == "backward" {
				return r.MoveBackward(id)
			}
			return r.MoveForward(id)
		})
	case "turn":
		var p turnMsg
		if !s.decode(conn, msg.Payload, &p) {
			return
		}
		s.apply(conn, func(r *combat.Resolver, id combat.ShipID) error {
			if p.Direction == "left" {
				return r.TurnLeft(id)
			}
			return r.TurnRight(id)
		})
	case "target":
		var p targetMsg
		if !s.decode(conn, msg.Payload, &p) {
			return
		}
		targets := make([]combat.ShipID, 0, len(p.Targets))
		for _, t := range p.Targets {
			targets = append(targets, combat.ShipID(t))
		}
		s.apply(conn, func(r *combat.Resolver, id combat.ShipID) error {
			return r.SetTargets(id, targets)
		})
	case "fire":
		var p fireMsg
		if !s.decode(conn, msg.Payload, &p) {
			return
		}
		s.apply(conn, func(r *combat.Resolver, id combat.ShipID) error {
			if p.Mount == "" {
				return r.FireAll(id)
			}
			return r.FireWeapon(id, p.Mount, combat.ShipID(p.Target))
		})
	case "power":
		var p powerMsg
		if !s.decode(conn, msg.Payload, &p) {
			return
		}
		s.apply(conn, func(r *combat.Resolver, id combat.ShipID) error {
			return r.SetPower(id, combat.PowerAllocation{
				Engines: p.Engines,
				Shields: p.Shields,
				Weapons: p.Weapons,
			})
		})
	case "repair":
		var p repairMsg
		if !s.decode(conn, msg.Payload, &p) {
			return
		}
		s.apply(conn, func(r *combat.Resolver, id combat.ShipID) error {
			return r.RepairSystem(id, combat.SystemID(p.System))
		})
	case "done":
		s.apply(conn, func(r *combat.Resolver, id combat.ShipID) error {
			return r.CompleteAction(id)
		})
	case "retreat":
		s.apply(conn, func(r *combat.Resolver, id combat.ShipID) error {
			return r.Retreat(id)
		})
	default:
		s.send(conn, errorMsg{Type: "error", Reason: "unknown command " + msg.Type})
	}
}

func (s *Session) decode(conn *websocket.Conn, raw json.RawMessage, out any) bool {
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.send(conn, errorMsg{Type: "error", Reason: "bad payload: " + err.Error()})
		return false
	}
	return true
}
