package combat

import "math"

// TargetingAccuracy returns the range-based accuracy multiplier for a target
// at distance d given an effective sensor range. The multiplier falls off
// piecewise-linearly from point blank out to twice sensor range; beyond that
// there is no firing solution and ok is false.
//
//	d <= 1        1.50
//	d <= R/2      1.50 .. 1.25
//	d <= R        1.25 .. 1.10
//	d <= 2R       1.10 .. 0.60
func TargetingAccuracy(d, sensorRange int) (float64, bool) {
	if d < 0 || sensorRange < 1 {
		return 0, false
	}
	if d > 2*sensorRange {
		return 0, false
	}
	if d <= 1 {
		return 1.50, true
	}
	r := float64(sensorRange)
	x0 := 1.0
	x1 := math.Max(r/2, x0)
	x2 := math.Max(r, x1)
	x3 := math.Max(2*r, x2)
	df := float64(d)
	switch {
	case df <= x1:
		return lerpBand(x0, x1, 1.50, 1.25, df), true
	case df <= x2:
		return lerpBand(x1, x2, 1.25, 1.10, df), true
	default:
		return lerpBand(x2, x3, 1.10, 0.60, df), true
	}
}

// lerpBand interpolates between (a,fa) and (b,fb); a degenerate band resolves
// to its far endpoint so the curve stays non-increasing.
func lerpBand(a, b, fa, fb, x float64) float64 {
	if b <= a {
		return fb
	}
	t := (x - a) / (b - a)
	return fa + (fb-fa)*t
}

// multiTargetPenalty is the accuracy cost of splitting fire: full against the
// primary, then 75% and 50%.
func multiTargetPenalty(slot int) float64 {
	switch slot {
	case 0:
		return PrimaryAccuracy
	case 1:
		return SecondaryAccuracy
	default:
		return TertiaryAccuracy
	}
}

// hitChance folds base weapon accuracy, the range multiplier, and the
// target-slot penalty into a probability.
func hitChance(base, accMult, penalty float64) float64 {
	return clampF(base*accMult*penalty, 0, 1)
}

// SetTargets locks up to three targets for the ship during TARGETING. Slot
// order is priority order. Rejected without state change when the phase is
// wrong, a target is dead, friendly, or outside twice sensor range.
func (r *Resolver) SetTargets(id ShipID, targets []ShipID) error {
	if r.finished {
		return reject(id, ErrEncounterOver)
	}
	if r.phase != PhaseTargeting {
		return reject(id, ErrWrongPhase)
	}
	s, ok := r.ships[id]
	if !ok {
		return reject(id, ErrUnknownShip)
	}
	if r.ActiveShip() != id {
		return reject(id, ErrNotYourTurn)
	}
	if !s.CanAct() {
		return reject(id, ErrShipDisabled)
	}
	if len(targets) > MaxTargets {
		targets = targets[:MaxTargets]
	}
	maxRange := s.MaxTargetRange()
	picked := make([]ShipID, 0, len(targets))
	for _, tid := range targets {
		t, ok := r.ships[tid]
		if !ok || !t.Alive() {
			return reject(id, ErrInvalidTarget)
		}
		if t.Faction == s.Faction || tid == id {
			return reject(id, ErrInvalidTarget)
		}
		if Distance(s.Pos, t.Pos) > maxRange {
			return reject(id, ErrInvalidTarget)
		}
		picked = append(picked, tid)
	}
	r.targets[id] = picked
	return nil
}

// Targets returns the current target locks for a ship, primary first.
func (r *Resolver) Targets(id ShipID) []ShipID {
	out := make([]ShipID, len(r.targets[id]))
	copy(out, r.targets[id])
	return out
}
