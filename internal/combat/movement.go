package combat

import "sort"

// WouldCollideAt checks the ship's full footprint at a candidate position
// against every other living ship. It returns the first blocking ship and
// the contested hexes; a collision blocks the whole move.
func (r *Resolver) WouldCollideAt(s *Ship, pos Hex) (bool, ShipID, []Hex) {
	footprint := s.FootprintAt(pos)
	for _, id := range r.sortedIDs() {
		other := r.ships[id]
		if other.ID == s.ID || !other.Alive() {
			continue
		}
		var contested []Hex
		for _, oh := range other.OccupiedHexes() {
			for _, h := range footprint {
				if h == oh {
					contested = append(contested, h)
				}
			}
		}
		if len(contested) > 0 {
			return true, other.ID, contested
		}
	}
	return false, "", nil
}

// CanMoveTo reports whether the ship's footprint fits at pos: inside the
// arena and clear of every other living ship.
func (r *Resolver) CanMoveTo(s *Ship, pos Hex) bool {
	if !r.inArena(s, pos) {
		return false
	}
	hit, _, _ := r.WouldCollideAt(s, pos)
	return !hit
}

func (r *Resolver) inArena(s *Ship, pos Hex) bool {
	if r.cfg.ArenaRadius <= 0 {
		return true
	}
	for _, h := range s.FootprintAt(pos) {
		if Distance(Hex{}, h) > r.cfg.ArenaRadius {
			return false
		}
	}
	return true
}

func (r *Resolver) sortedIDs() []ShipID {
	out := make([]ShipID, 0, len(r.ships))
	for id := range r.ships {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MoveForward translates the active ship one hex along its facing.
func (r *Resolver) MoveForward(id ShipID) error { return r.move(id, false) }

// MoveBackward translates the active ship one hex against its facing.
func (r *Resolver) MoveBackward(id ShipID) error { return r.move(id, true) }

func (r *Resolver) move(id ShipID, backward bool) error {
	s, err := r.movementChecks(id)
	if err != nil {
		return err
	}
	dir := s.Facing
	if backward {
		dir = dir.opposite()
	}
	dest, err := Neighbor(s.Pos, dir)
	if err != nil {
		return reject(id, err)
	}
	if !r.inArena(s, dest) {
		return reject(id, ErrOutOfArena)
	}
	if hit, blocker, _ := r.WouldCollideAt(s, dest); hit {
		return reject(id, &ActionError{Ship: blocker, Reason: ErrBlocked})
	}
	from := s.Pos
	s.Pos = dest
	r.mpRemaining--
	r.turnCredits++
	r.emit(Event{Type: EvMove, Ship: id, From: from, To: dest, Facing: s.Facing})
	return nil
}

// TurnLeft rotates the active ship one facing counterclockwise. A ship must
// move a hex before each turn; turning costs one movement point.
func (r *Resolver) TurnLeft(id ShipID) error { return r.turn(id, true) }

// TurnRight rotates the active ship one facing clockwise.
func (r *Resolver) TurnRight(id ShipID) error { return r.turn(id, false) }

func (r *Resolver) turn(id ShipID, left bool) error {
	s, err := r.movementChecks(id)
	if err != nil {
		return err
	}
	if r.turnCredits < 1 {
		return reject(id, ErrMustMoveFirst)
	}
	if left {
		s.Facing = s.Facing.Left()
	} else {
		s.Facing = s.Facing.Right()
	}
	r.mpRemaining--
	r.turnCredits--
	r.emit(Event{Type: EvTurn, Ship: id, To: s.Pos, Facing: s.Facing})
	return nil
}

// MovementRemaining is the active ship's unspent movement points.
func (r *Resolver) MovementRemaining() int { return r.mpRemaining }

func (r *Resolver) movementChecks(id ShipID) (*Ship, error) {
	if r.finished {
		return nil, reject(id, ErrEncounterOver)
	}
	if r.phase != PhaseMovement {
		return nil, reject(id, ErrWrongPhase)
	}
	if r.ActiveShip() != id {
		return nil, reject(id, ErrNotYourTurn)
	}
	s, ok := r.ships[id]
	if !ok {
		return nil, reject(id, ErrUnknownShip)
	}
	if !s.CanAct() {
		return nil, reject(id, ErrShipDisabled)
	}
	if r.mpRemaining < 1 {
		return nil, reject(id, ErrNoMovementPoints)
	}
	return s, nil
}
