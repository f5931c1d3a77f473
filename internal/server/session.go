package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"HexFleetCommand/internal/combat"
	"HexFleetCommand/internal/recorder"
)

const playerShipID = combat.ShipID("player")

// Manager owns the live encounters, one Session per encounter id.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	log      zerolog.Logger
	rec      *recorder.Recorder
	sessions map[string]*Session
}

func NewManager(cfg Config, log zerolog.Logger, rec *recorder.Recorder) *Manager {
	return &Manager{
		cfg:      cfg,
		log:      log,
		rec:      rec,
		sessions: make(map[string]*Session),
	}
}

// Session gets or creates the encounter for the given id. A fresh session
// pits the operator's ship against the configured enemy group.
func (m *Manager) Session(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s, err := newSession(id, m.cfg, m.log.With().Str("session", id).Logger(), m.rec)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = s
	return s, nil
}

func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Session is one running encounter plus the sockets watching it.
type Session struct {
	mu      sync.Mutex
	id      string
	log     zerolog.Logger
	res     *combat.Resolver
	humanID combat.ShipID
	battle  *recorder.Battle
	conns   map[*websocket.Conn]int // value is last event seq sent
}

func newSession(id string, cfg Config, log zerolog.Logger, rec *recorder.Recorder) (*Session, error) {
	roster, ai, err := buildScenario(cfg)
	if err != nil {
		return nil, err
	}
	cc := cfg.CombatConfig(log)
	if cc.Seed == 0 {
		cc.Seed = time.Now().UnixNano()
	}
	res, err := combat.NewResolver(roster, ai, cc)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:      id,
		log:     log,
		res:     res,
		humanID: playerShipID,
		conns:   make(map[*websocket.Conn]int),
	}
	if rec != nil {
		battle, err := rec.Start(res.Seed())
		if err != nil {
			log.Warn().Err(err).Msg("battle recording unavailable")
		} else {
			s.battle = battle
		}
	}
	res.Pump()
	s.record(res.Events())
	return s, nil
}

// buildScenario places the operator's ship on the western edge facing east
// and the enemy group opposite it, stacked north to south.
func buildScenario(cfg Config) ([]*combat.Ship, map[combat.ShipID]combat.Personality, error) {
	playerTpl, ok := combat.TemplateFor(cfg.PlayerClass)
	if !ok {
		return nil, nil, fmt.Errorf("unknown ship class %q", cfg.PlayerClass)
	}
	enemyTpl, ok := combat.TemplateFor(cfg.EnemyClass)
	if !ok {
		return nil, nil, fmt.Errorf("unknown ship class %q", cfg.EnemyClass)
	}
	count := cfg.EnemyCount
	if count < 1 {
		count = 1
	}

	roster := []*combat.Ship{
		playerTpl.Build(playerShipID, "USS "+cfg.PlayerClass, combat.FactionFriendly, combat.Hex{Q: -6, R: 0}, 0),
	}
	ai := make(map[combat.ShipID]combat.Personality, count)
	personality := combat.PersonalityPreset(cfg.EnemyPersonality)
	for i := 0; i < count; i++ {
		id := combat.ShipID(fmt.Sprintf("enemy-%d", i+1))
		pos := combat.Hex{Q: 6, R: -3 * i}
		ship := enemyTpl.Build(id, fmt.Sprintf("%s %d", cfg.EnemyClass, i+1), combat.FactionEnemy, pos, 3)
		roster = append(roster, ship)
		ai[id] = personality
	}
	return roster, ai, nil
}

func (s *Session) attach(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = 0
	msg := s.snapshotLocked(conn)
	s.mu.Unlock()
	s.send(conn, msg)
}

func (s *Session) detach(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// apply runs one operator command, pumps the encounter until it needs
// operator input again, records the new log entries, and broadcasts the
// resulting state. A rejected command only reaches the issuing socket.
func (s *Session) apply(conn *websocket.Conn, cmd func(*combat.Resolver, combat.ShipID) error) {
	s.mu.Lock()
	before := len(s.res.Events())
	err := cmd(s.res, s.humanID)
	if err != nil {
		s.mu.Unlock()
		s.send(conn, errorMsg{Type: "error", Reason: err.Error()})
		return
	}
	s.res.Pump()
	s.record(s.res.Events()[before:])
	if s.res.Finished() && s.battle != nil {
		if ferr := s.battle.Finish(s.res.Outcome()); ferr != nil {
			s.log.Warn().Err(ferr).Msg("battle report not finalized")
		}
		s.battle = nil
	}
	msgs := make(map[*websocket.Conn]stateMsg, len(s.conns))
	for c := range s.conns {
		msgs[c] = s.snapshotLocked(c)
	}
	s.mu.Unlock()
	for c, msg := range msgs {
		s.send(c, msg)
	}
}

func (s *Session) record(events []combat.Event) {
	if s.battle == nil || len(events) == 0 {
		return
	}
	if err := s.battle.Record(events); err != nil {
		s.log.Warn().Err(err).Msg("battle events not recorded")
	}
}

// snapshotLocked builds the state message for one socket, advancing its
// event cursor so each log entry is delivered exactly once.
func (s *Session) snapshotLocked(conn *websocket.Conn) stateMsg {
	events := s.res.Events()
	last := s.conns[conn]
	var fresh []combat.Event
	if last < len(events) {
		fresh = events[last:]
		s.conns[conn] = len(events)
	}

	roster := s.res.Roster()
	ships := make([]shipDTO, 0, len(roster))
	for _, ship := range roster {
		ships = append(ships, shipToDTO(ship, ship.ID == s.humanID))
	}
	movement := 0
	if s.res.Phase() == combat.PhaseMovement && s.res.ActiveShip() == s.humanID {
		movement = s.res.MovementRemaining()
	}
	return stateMsg{
		Type:     "state",
		Round:    s.res.Round(),
		Phase:    string(s.res.Phase()),
		Active:   string(s.res.ActiveShip()),
		Finished: s.res.Finished(),
		Winner:   string(s.res.Winner()),
		Ships:    ships,
		Events:   fresh,
		Movement: movement,
	}
}

func (s *Session) send(conn *websocket.Conn, msg any) {
	if err := conn.WriteJSON(msg); err != nil {
		s.log.Debug().Err(err).Msg("socket write failed")
	}
}
