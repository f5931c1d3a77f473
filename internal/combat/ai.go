package combat

import "math"

// The AI is a rule-based policy, not a planner. It drives its ship through
// the same public operations an operator uses, one step at a time, re-reading
// the roster between steps so it reacts to its own committed moves.

// aiPickTarget scores every living enemy and returns the best: closer,
// weaker, and better-armed ships score higher, with a stickiness bonus for
// the current primary lock so targets do not flicker between rounds.
func (r *Resolver) aiPickTarget(s *Ship) *Ship {
	var current ShipID
	if locks := r.targets[s.ID]; len(locks) > 0 {
		current = locks[0]
	}
	var best *Ship
	bestScore := math.Inf(-1)
	for _, id := range r.sortedIDs() {
		e := r.ships[id]
		if !e.Alive() || e.Faction == s.Faction {
			continue
		}
		d := float64(Distance(s.Pos, e.Pos))
		score := -math.Min(d, 30)
		score += (1 - e.HullFraction()) * 50
		score += math.Min(float64(len(e.Weapons))*5, 20)
		if e.ID == current {
			score += 25
		}
		if score > bestScore || (score == bestScore && best != nil && d < float64(Distance(s.Pos, best.Pos))) {
			best, bestScore = e, score
		}
	}
	return best
}

// aiTarget locks up to three enemies in score order, primary first.
func (r *Resolver) aiTarget(s *Ship, _ Personality) {
	type scored struct {
		id    ShipID
		score float64
	}
	var current ShipID
	if locks := r.targets[s.ID]; len(locks) > 0 {
		current = locks[0]
	}
	maxRange := s.MaxTargetRange()
	var candidates []scored
	for _, id := range r.sortedIDs() {
		e := r.ships[id]
		if !e.Alive() || e.Faction == s.Faction {
			continue
		}
		d := Distance(s.Pos, e.Pos)
		if d > maxRange {
			continue
		}
		score := -math.Min(float64(d), 30) + (1-e.HullFraction())*50 + math.Min(float64(len(e.Weapons))*5, 20)
		if e.ID == current {
			score += 25
		}
		candidates = append(candidates, scored{id: id, score: score})
	}
	if len(candidates) == 0 {
		return
	}
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].score > candidates[j-1].score; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
	n := len(candidates)
	if n > MaxTargets {
		n = MaxTargets
	}
	picks := make([]ShipID, 0, n)
	for _, c := range candidates[:n] {
		picks = append(picks, c.id)
	}
	if err := r.SetTargets(s.ID, picks); err != nil {
		r.log.Warn().Err(err).Str("ship", string(s.ID)).Msg("ai targeting rejected")
	}
}

// aiMove spends the movement budget by priority: disengage when mauled,
// present a fresher shield, bring weapons to bear, hold the preferred range
// band, then jink with whatever is left.
func (r *Resolver) aiMove(s *Ship, p Personality) {
	enemy := r.aiPickTarget(s)
	if enemy == nil {
		return
	}
	if p.PreferredRange <= 0 {
		p = PersonalityPreset("balanced")
	}
	for r.mpRemaining > 0 {
		if !r.aiMoveStep(s, p, enemy) {
			break
		}
	}
}

// aiMoveStep makes one movement decision and commits it through the public
// ops, reporting whether anything was spent. Rejections end the activation
// rather than aborting the round.
func (r *Resolver) aiMoveStep(s *Ship, p Personality, enemy *Ship) bool {
	toward := facingToward(s.Pos, enemy.Pos)
	away := toward.opposite()
	d := Distance(s.Pos, enemy.Pos)

	// Disengage when the hull is below the retreat threshold.
	if s.HullFraction() < p.RetreatThreshold {
		return r.aiStepHeading(s, away)
	}

	// Rotate a healthier shield into the threat bearing.
	if want, ok := r.aiShieldRotation(s, enemy); ok {
		if s.Facing != want {
			return r.aiStepHeading(s, want)
		}
	}

	// Bring a weapon to bear before worrying about range.
	if !r.aiWeaponBears(s, enemy) {
		return r.aiStepHeading(s, toward)
	}

	// Hold the preferred range band.
	if d > p.PreferredRange+RangeTolerance {
		return r.aiStepHeading(s, toward)
	}
	if d < p.PreferredRange-RangeTolerance {
		return r.aiStepHeading(s, away)
	}

	// At acceptable range: evasive turning or forward pressure.
	if r.roll.Hit(p.EvasionPriority) && r.turnCredits > 0 {
		var err error
		if r.roll.IntN(2) == 0 {
			err = r.TurnLeft(s.ID)
		} else {
			err = r.TurnRight(s.ID)
		}
		return err == nil
	}
	if err := r.MoveForward(s.ID); err == nil {
		return true
	}
	if err := r.MoveBackward(s.ID); err == nil {
		return true
	}
	return false
}

// aiStepHeading works toward the wanted heading under the move-before-turn
// rule: turn when a credit is banked, otherwise move to earn one. When the
// wanted heading is behind the ship it backs away rather than advancing the
// wrong way.
func (r *Resolver) aiStepHeading(s *Ship, want Facing) bool {
	if s.Facing != want && r.turnCredits > 0 {
		if turnRight(s.Facing, want) {
			return r.TurnRight(s.ID) == nil
		}
		return r.TurnLeft(s.ID) == nil
	}
	if angularDiff(s.Facing.Angle(), want.Angle()) > 90 {
		if r.MoveBackward(s.ID) == nil {
			return true
		}
		return r.MoveForward(s.ID) == nil
	}
	if r.MoveForward(s.ID) == nil {
		return true
	}
	return r.MoveBackward(s.ID) == nil
}

// aiShieldRotation decides whether to present a different arc to the threat:
// only when the facing arc is below 40% of capacity and some other arc holds
// at least 20 percentage points more of its own capacity. Returns the facing
// that puts the strongest arc on the threat bearing.
func (r *Resolver) aiShieldRotation(s *Ship, enemy *Ship) (Facing, bool) {
	facing := s.ArcToward(enemy.Pos)
	if s.MaxShields[facing] <= 0 {
		return 0, false
	}
	cur := s.ShieldFraction(facing)
	if cur >= 0.4 {
		return 0, false
	}
	best := s.StrongestArc()
	if s.ShieldFraction(best) < cur+0.2 {
		return 0, false
	}
	bearing := BearingDegrees(s.Pos, enemy.Pos)
	return facingPresenting(best, bearing), true
}

func (r *Resolver) aiWeaponBears(s *Ship, enemy *Ship) bool {
	arc := s.WeaponArcToward(enemy.Pos)
	d := Distance(s.Pos, enemy.Pos)
	for i := range s.Weapons {
		if s.Weapons[i].CoversArc(arc) && d <= s.Weapons[i].MaxRange() {
			return true
		}
	}
	for i := range s.Torpedoes {
		t := &s.Torpedoes[i]
		if t.Ready() && t.CoversArc(arc) && d <= t.MaxRange() {
			return true
		}
	}
	return false
}

// aiPower shifts the split with the ship's situation: shields when hurt,
// weapons when hunting, balanced otherwise. Only touches the stock pool.
func (r *Resolver) aiPower(s *Ship, p Personality) {
	if s.PowerPool != DefaultPowerPool {
		return
	}
	alloc := BalancedPower()
	switch {
	case s.HullFraction() < p.RetreatThreshold:
		alloc = PowerAllocation{Engines: 120, Shields: 140, Weapons: 40}
	case p.Aggressive:
		alloc = PowerAllocation{Engines: 80, Shields: 80, Weapons: 140}
	}
	if alloc == s.Power {
		return
	}
	if err := r.SetPower(s.ID, alloc); err != nil {
		r.log.Warn().Err(err).Str("ship", string(s.ID)).Msg("ai power rejected")
	}
}

// facingToward picks the facing whose direction is angularly closest to the
// bearing from from to to.
func facingToward(from, to Hex) Facing {
	if from == to {
		return 0
	}
	bearing := BearingDegrees(from, to)
	best := Facing(0)
	bestDiff := 360.0
	for f := Facing(0); f < NumFacings; f++ {
		diff := angularDiff(bearing, f.Angle())
		if diff < bestDiff {
			best, bestDiff = f, diff
		}
	}
	return best
}

// facingPresenting returns the facing that turns the given arc onto a threat
// bearing. Arcs sit at fixed offsets from the bow.
func facingPresenting(arc Arc, bearing float64) Facing {
	var offset float64
	switch arc {
	case ArcFore:
		offset = 0
	case ArcStarboard:
		offset = 90
	case ArcAft:
		offset = 180
	case ArcPort:
		offset = 270
	}
	want := math.Mod(bearing-offset+360, 360)
	best := Facing(0)
	bestDiff := 360.0
	for f := Facing(0); f < NumFacings; f++ {
		diff := angularDiff(want, f.Angle())
		if diff < bestDiff {
			best, bestDiff = f, diff
		}
	}
	return best
}

func angularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// turnRight reports whether rotating clockwise reaches want in fewer steps.
func turnRight(cur, want Facing) bool {
	diff := (int(want) - int(cur) + NumFacings) % NumFacings
	return diff <= NumFacings/2
}

func (f Facing) opposite() Facing { return (f + NumFacings/2) % NumFacings }
