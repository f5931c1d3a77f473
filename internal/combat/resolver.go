package combat

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// Phase is one stage of the round cycle. Phases always run in the fixed
// order below; none may be skipped.
type Phase string

const (
	PhaseInitiative   Phase = "INITIATIVE"
	PhaseMovement     Phase = "MOVEMENT"
	PhaseTargeting    Phase = "TARGETING"
	PhaseFiring       Phase = "FIRING"
	PhaseDamage       Phase = "DAMAGE"
	PhasePower        Phase = "POWER"
	PhaseRepair       Phase = "REPAIR"
	PhaseHousekeeping Phase = "HOUSEKEEPING"
)

var phaseOrder = []Phase{
	PhaseInitiative, PhaseMovement, PhaseTargeting, PhaseFiring,
	PhaseDamage, PhasePower, PhaseRepair, PhaseHousekeeping,
}

func nextPhase(p Phase) Phase {
	for i, x := range phaseOrder {
		if x == p {
			return phaseOrder[(i+1)%len(phaseOrder)]
		}
	}
	return PhaseInitiative
}

// Config tunes one encounter. A zero Seed or DaysPerRound falls back to its
// default; zero ArenaRadius and MaxRounds keep their documented meanings.
type Config struct {
	Seed                  int64
	ArenaRadius           int  // hexes from origin; 0 means unbounded
	MaxRounds             int  // 0 means no limit
	AccuracyAffectsDamage bool // range multiplier also scales hit magnitude
	InitiativePerRound    bool // re-roll turn order every round
	DaysPerRound          float64
	Logger                zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Seed:                  1,
		ArenaRadius:           25,
		MaxRounds:             100,
		AccuracyAffectsDamage: true,
		InitiativePerRound:    true,
		DaysPerRound:          1,
		Logger:                zerolog.Nop(),
	}
}

// Resolver owns one combat encounter: the roster, the phase machine, the
// seeded dice, and the ordered event log. All mutation of ship state goes
// through its operations, one ship at a time in initiative order.
type Resolver struct {
	cfg  Config
	log  zerolog.Logger
	roll *Roll

	ships map[ShipID]*Ship
	ai    map[ShipID]Personality

	round  int
	phase  Phase
	order  []ShipID // initiative order for the current round
	active int      // index into order during per-ship phases

	// movement budget for the active ship
	mpRemaining int
	turnCredits int

	targets  map[ShipID][]ShipID
	repaired map[ShipID]bool

	events   []Event
	seq      int
	finished bool
	winner   Faction
}

// NewResolver validates the roster and builds an encounter ready to Pump.
// AI-driven ships are those with an entry in ai; everything else waits for
// operator input when active.
func NewResolver(roster []*Ship, ai map[ShipID]Personality, cfg Config) (*Resolver, error) {
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if cfg.DaysPerRound <= 0 {
		cfg.DaysPerRound = 1
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: empty roster", ErrBadRoster)
	}
	ships := make(map[ShipID]*Ship, len(roster))
	factions := make(map[Faction]bool)
	occupied := make(map[Hex]ShipID)
	for _, s := range roster {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: invalid ship %q", ErrBadRoster, s.ID)
		}
		if _, dup := ships[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate ship id %q", ErrBadRoster, s.ID)
		}
		for _, h := range s.OccupiedHexes() {
			if other, taken := occupied[h]; taken {
				return nil, fmt.Errorf("%w: ships %q and %q overlap at %v", ErrBadRoster, other, s.ID, h)
			}
			occupied[h] = s.ID
		}
		ships[s.ID] = s
		factions[s.Faction] = true
	}
	if len(factions) < 2 {
		return nil, fmt.Errorf("%w: need at least two factions", ErrBadRoster)
	}
	if ai == nil {
		ai = map[ShipID]Personality{}
	}
	r := &Resolver{
		cfg:      cfg,
		log:      cfg.Logger.With().Str("component", "resolver").Logger(),
		roll:     NewRoll(cfg.Seed),
		ships:    ships,
		ai:       ai,
		round:    1,
		phase:    PhaseInitiative,
		targets:  make(map[ShipID][]ShipID),
		repaired: make(map[ShipID]bool),
	}
	return r, nil
}

func (r *Resolver) Round() int      { return r.round }
func (r *Resolver) Phase() Phase    { return r.phase }
func (r *Resolver) Finished() bool  { return r.finished }
func (r *Resolver) Winner() Faction { return r.winner }
func (r *Resolver) Seed() int64     { return r.roll.Seed() }

// Ship returns a roster entry; callers must treat it as read-only.
func (r *Resolver) Ship(id ShipID) (*Ship, bool) {
	s, ok := r.ships[id]
	return s, ok
}

// Roster returns living ships sorted by ID.
func (r *Resolver) Roster() []*Ship {
	out := make([]*Ship, 0, len(r.ships))
	for _, s := range r.ships {
		if s.Alive() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Events returns the full combat log.
func (r *Resolver) Events() []Event { return r.events }

// EventsSince returns log entries with sequence numbers greater than seq.
func (r *Resolver) EventsSince(seq int) []Event {
	for i, e := range r.events {
		if e.Seq > seq {
			return r.events[i:]
		}
	}
	return nil
}

func (r *Resolver) emit(e Event) {
	r.seq++
	e.Seq = r.seq
	e.Round = r.round
	r.events = append(r.events, e)
}

// ActiveShip is the ship whose activation the machine is waiting on, or ""
// when the current phase has no per-ship slot open.
func (r *Resolver) ActiveShip() ShipID {
	if r.finished || !r.perShipPhase() || r.active >= len(r.order) {
		return ""
	}
	return r.order[r.active]
}

func (r *Resolver) perShipPhase() bool {
	switch r.phase {
	case PhaseMovement, PhaseTargeting, PhaseFiring, PhasePower, PhaseRepair:
		return true
	}
	return false
}

// eligible reports whether a ship gets an activation slot in the current
// phase. Disabled hulls still manage power and damage control.
func (r *Resolver) eligible(s *Ship) bool {
	switch r.phase {
	case PhaseMovement, PhaseTargeting, PhaseFiring:
		return s.CanAct()
	case PhasePower, PhaseRepair:
		return s.Alive()
	}
	return false
}

// Pump runs the machine forward: automatic phases, AI activations, and phase
// transitions, stopping when an operator-driven ship is active or the
// encounter is over. Call it after construction and after every operator op.
func (r *Resolver) Pump() {
	for !r.finished {
		if id := r.ActiveShip(); id != "" {
			if _, isAI := r.ai[id]; !isAI {
				return // waiting on operator input
			}
			r.autoAct(id)
			r.endActivation()
			continue
		}
		r.stepPhase()
	}
}

// stepPhase runs the current non-interactive phase (or closes out an
// exhausted per-ship phase) and advances to the next one.
func (r *Resolver) stepPhase() {
	switch r.phase {
	case PhaseInitiative:
		r.rollInitiative()
		r.enterPhase(PhaseMovement)
	case PhaseDamage:
		// Damage is applied inline during FIRING; this slot only anchors the
		// phase cycle so the log shows every stage.
		r.enterPhase(PhasePower)
	case PhaseHousekeeping:
		r.runHousekeeping()
		if r.finished {
			return
		}
		r.round++
		r.enterPhase(PhaseInitiative)
	default:
		r.enterPhase(nextPhase(r.phase))
	}
}

func (r *Resolver) enterPhase(p Phase) {
	r.phase = p
	r.emit(Event{Type: EvPhase, Phase: p})
	if p == PhaseRepair {
		r.repaired = make(map[ShipID]bool)
	}
	if r.perShipPhase() {
		r.active = 0
		r.seekActive()
	}
}

// seekActive advances r.active to the next eligible ship and initializes its
// activation state.
func (r *Resolver) seekActive() {
	for r.active < len(r.order) {
		s, ok := r.ships[r.order[r.active]]
		if ok && r.eligible(s) {
			if r.phase == PhaseMovement {
				r.mpRemaining = s.MovementPoints()
				r.turnCredits = 0
			}
			return
		}
		r.active++
	}
}

func (r *Resolver) endActivation() {
	r.active++
	r.seekActive()
}

// CompleteAction ends the active ship's slot in the current phase. Operators
// call it when done; it is also how a ship passes without acting.
func (r *Resolver) CompleteAction(id ShipID) error {
	if r.finished {
		return reject(id, ErrEncounterOver)
	}
	if r.ActiveShip() != id {
		return reject(id, ErrNotYourTurn)
	}
	r.endActivation()
	return nil
}

// rollInitiative establishes this round's turn order: command rating plus a
// d20, ties broken by ship ID. When per-round initiative is off, the first
// round's order is kept and merely filtered down to living ships.
func (r *Resolver) rollInitiative() {
	if !r.cfg.InitiativePerRound && r.round > 1 {
		kept := r.order[:0]
		for _, id := range r.order {
			if s, ok := r.ships[id]; ok && s.Alive() {
				kept = append(kept, id)
			}
		}
		r.order = kept
		r.emit(Event{Type: EvInitiative, Order: append([]ShipID(nil), r.order...)})
		return
	}
	type entry struct {
		id    ShipID
		score int
	}
	entries := make([]entry, 0, len(r.ships))
	ids := make([]ShipID, 0, len(r.ships))
	for id := range r.ships {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s := r.ships[id]
		if !s.Alive() {
			continue
		}
		entries = append(entries, entry{id: id, score: r.roll.Initiative(s.CommandRating)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].id < entries[j].id
	})
	r.order = r.order[:0]
	for _, e := range entries {
		r.order = append(r.order, e.id)
	}
	r.emit(Event{Type: EvInitiative, Order: append([]ShipID(nil), r.order...)})
}

// autoAct runs the AI for an active ship in the current phase. Bad input
// degrades to a logged hold, never an abort.
func (r *Resolver) autoAct(id ShipID) {
	s, ok := r.ships[id]
	if !ok || !s.Valid() {
		r.log.Warn().Str("ship", string(id)).Str("phase", string(r.phase)).Msg("ai skipped: invalid ship")
		r.emit(Event{Type: EvHold, Ship: id, Note: "invalid ship state"})
		return
	}
	p := r.ai[id]
	switch r.phase {
	case PhaseMovement:
		r.aiMove(s, p)
	case PhaseTargeting:
		r.aiTarget(s, p)
	case PhaseFiring:
		if err := r.FireAll(id); err != nil {
			r.log.Warn().Err(err).Str("ship", string(id)).Msg("ai fire rejected")
		}
	case PhasePower:
		r.aiPower(s, p)
	case PhaseRepair:
		if sys, ok := s.Systems.mostDamagedSystem(); ok {
			if err := r.RepairSystem(id, sys); err != nil {
				r.log.Warn().Err(err).Str("ship", string(id)).Msg("ai repair rejected")
			}
		}
	}
}

// SetPower re-allocates the active ship's power split for the coming round.
func (r *Resolver) SetPower(id ShipID, alloc PowerAllocation) error {
	if r.finished {
		return reject(id, ErrEncounterOver)
	}
	if r.phase != PhasePower {
		return reject(id, ErrWrongPhase)
	}
	if r.ActiveShip() != id {
		return reject(id, ErrNotYourTurn)
	}
	s := r.ships[id]
	if err := alloc.Validate(s.PowerPool); err != nil {
		return reject(id, err)
	}
	s.Power = alloc
	r.emit(Event{Type: EvPower, Ship: id, Note: fmt.Sprintf("e%d/s%d/w%d", alloc.Engines, alloc.Shields, alloc.Weapons)})
	return nil
}

// RepairSystem spends the ship's one field-repair attempt for this round.
func (r *Resolver) RepairSystem(id ShipID, sys SystemID) error {
	if r.finished {
		return reject(id, ErrEncounterOver)
	}
	if r.phase != PhaseRepair {
		return reject(id, ErrWrongPhase)
	}
	if r.ActiveShip() != id {
		return reject(id, ErrNotYourTurn)
	}
	if r.repaired[id] {
		return reject(id, ErrWrongPhase)
	}
	s := r.ships[id]
	restored := s.Systems.Repair(sys, s.CrewBonus(), s.Officers.Engineer)
	r.repaired[id] = true
	if restored > 0 {
		r.emit(Event{Type: EvRepair, Ship: id, System: sys, Severity: restored})
	}
	return nil
}

// Retreat withdraws the active ship from the encounter during MOVEMENT.
func (r *Resolver) Retreat(id ShipID) error {
	if r.finished {
		return reject(id, ErrEncounterOver)
	}
	if r.phase != PhaseMovement {
		return reject(id, ErrWrongPhase)
	}
	if r.ActiveShip() != id {
		return reject(id, ErrNotYourTurn)
	}
	s := r.ships[id]
	s.Retreated = true
	r.emit(Event{Type: EvRetreat, Ship: id})
	r.endActivation()
	r.checkTermination()
	return nil
}

// runHousekeeping closes the round: timers, regeneration, attrition, morale,
// breach resolution, and the termination check.
func (r *Resolver) runHousekeeping() {
	for _, id := range r.order {
		s, ok := r.ships[id]
		if !ok || !s.Alive() {
			continue
		}
		for i := range s.Torpedoes {
			if s.Torpedoes[i].Cooldown > 0 {
				s.Torpedoes[i].Cooldown--
			}
		}
		s.RegenerateShields()
		r.applyAttrition(s)
		r.driftMorale(s)
	}
	r.resolveBreaches()
	r.checkTermination()
	if !r.finished && r.cfg.MaxRounds > 0 && r.round >= r.cfg.MaxRounds {
		r.finished = true
		r.emit(Event{Type: EvEncounterEnd, Note: "round limit reached"})
	}
}

// applyAttrition bleeds crew on ships with failing life support. Losses
// accrue fractionally and are deducted as whole crew.
func (r *Resolver) applyAttrition(s *Ship) {
	lsHealth := s.Systems.Get(SysLifeSupport)
	if lsHealth >= 1 || s.Crew <= 0 {
		return
	}
	loss := LifeSupportLossPerDay * (1 - lsHealth) * r.cfg.DaysPerRound * casualtyMitigation(s.Officers.Medical)
	s.attritionDebt += loss
	if s.attritionDebt < 1 {
		return
	}
	n := int(s.attritionDebt)
	s.attritionDebt -= float64(n)
	if n > s.Crew {
		n = s.Crew
	}
	s.Crew -= n
	r.emit(Event{Type: EvCasualties, Ship: s.ID, Crew: n, Note: "life support failing"})
}

func (r *Resolver) driftMorale(s *Ship) {
	switch {
	case s.Morale < DefaultMorale:
		s.Morale = clampF(s.Morale+MoraleDrift, 0, DefaultMorale)
	case s.Morale > DefaultMorale:
		s.Morale = clampF(s.Morale-MoraleDrift, DefaultMorale, 100)
	}
}

// resolveBreaches destroys every ship whose warp core failed this round,
// running its single crew-survival trial.
func (r *Resolver) resolveBreaches() {
	ids := make([]ShipID, 0)
	for id, s := range r.ships {
		if s.PendingBreach && s.Alive() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s := r.ships[id]
		chance := BreachSurvivalBase + s.Officers.Engineer*0.8
		if chance > BreachSurvivalMax {
			chance = BreachSurvivalMax
		}
		survivors := 0
		if r.roll.Hit(chance) {
			survivors = s.Crew
		}
		s.Crew = survivors
		s.Destroyed = true
		s.PendingBreach = false
		r.emit(Event{Type: EvBreach, Ship: id, Crew: survivors})
		r.emit(Event{Type: EvDestroyed, Ship: id, Note: "warp core breach"})
		r.log.Info().Str("ship", string(id)).Int("survivors", survivors).Msg("warp core breach")
	}
}

// checkTermination ends the encounter when at most one faction still fields a
// living, non-disabled ship.
func (r *Resolver) checkTermination() {
	if r.finished {
		return
	}
	standing := make(map[Faction]bool)
	for _, s := range r.ships {
		if s.Alive() && !s.Disabled {
			standing[s.Faction] = true
		}
	}
	if len(standing) > 1 {
		return
	}
	r.finished = true
	for f := range standing {
		r.winner = f
	}
	r.emit(Event{Type: EvEncounterEnd, Winner: r.winner})
}

// Run pumps an all-AI encounter to completion and returns the outcome.
// With operator-driven ships in the roster it stops at the first one that
// needs input; callers mixing operators and AI should use Pump directly.
func (r *Resolver) Run() Outcome {
	r.Pump()
	return r.Outcome()
}

// Outcome is the encounter-termination hand-off to the surrounding game.
type Outcome struct {
	Winner    Faction `json:"winner"`
	Rounds    int     `json:"rounds"`
	Survivors []*Ship `json:"survivors"`
	Disabled  []*Ship `json:"disabled"`
	Destroyed []*Ship `json:"destroyed"`
	Retreated []*Ship `json:"retreated"`
}

// Outcome summarizes the final roster once the encounter has finished.
func (r *Resolver) Outcome() Outcome {
	out := Outcome{Winner: r.winner, Rounds: r.round}
	ids := make([]ShipID, 0, len(r.ships))
	for id := range r.ships {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s := r.ships[id]
		switch {
		case s.Destroyed:
			out.Destroyed = append(out.Destroyed, s)
		case s.Retreated:
			out.Retreated = append(out.Retreated, s)
		case s.Disabled:
			out.Disabled = append(out.Disabled, s)
		default:
			out.Survivors = append(out.Survivors, s)
		}
	}
	return out
}
