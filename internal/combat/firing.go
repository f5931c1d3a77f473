package combat

// FireAll resolves every ready mount on the active ship against its locked
// targets, each mount engaging the highest-priority target it can bear on.
// Mounts with no valid target simply hold fire.
func (r *Resolver) FireAll(id ShipID) error {
	s, err := r.firingChecks(id)
	if err != nil {
		return err
	}
	fired := false
	for i := range s.Weapons {
		if r.fireMountAtAny(s, &s.Weapons[i], nil) {
			fired = true
		}
	}
	for i := range s.Torpedoes {
		if r.fireMountAtAny(s, nil, &s.Torpedoes[i]) {
			fired = true
		}
	}
	if !fired {
		r.emit(Event{Type: EvHold, Ship: id, Note: "no firing solution"})
	}
	return nil
}

// FireWeapon resolves one named mount against one locked target, rejecting
// with a specific reason when the shot is illegal. Operators use this for
// fine-grained fire control; FireAll is the broadside.
func (r *Resolver) FireWeapon(id ShipID, mount string, targetID ShipID) error {
	s, err := r.firingChecks(id)
	if err != nil {
		return err
	}
	slot := -1
	for i, tid := range r.targets[id] {
		if tid == targetID {
			slot = i
			break
		}
	}
	if slot < 0 {
		return reject(id, ErrInvalidTarget)
	}
	target, ok := r.ships[targetID]
	if !ok || !target.Alive() {
		return reject(id, ErrInvalidTarget)
	}
	for i := range s.Weapons {
		if s.Weapons[i].Name == mount {
			return r.fireEnergy(s, &s.Weapons[i], target, slot)
		}
	}
	for i := range s.Torpedoes {
		if s.Torpedoes[i].Name == mount {
			return r.fireTorpedo(s, &s.Torpedoes[i], target, slot)
		}
	}
	return reject(id, ErrUnknownWeapon)
}

func (r *Resolver) firingChecks(id ShipID) (*Ship, error) {
	if r.finished {
		return nil, reject(id, ErrEncounterOver)
	}
	if r.phase != PhaseFiring {
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
	return s, nil
}

// fireMountAtAny tries the ship's locked targets in priority order and fires
// the mount at the first one the shot is legal against.
func (r *Resolver) fireMountAtAny(s *Ship, w *WeaponMount, t *TorpedoMount) bool {
	for slot, tid := range r.targets[s.ID] {
		target, ok := r.ships[tid]
		if !ok || !target.Alive() {
			continue
		}
		var err error
		if w != nil {
			err = r.fireEnergy(s, w, target, slot)
		} else {
			err = r.fireTorpedo(s, t, target, slot)
		}
		if err == nil {
			return true
		}
	}
	return false
}

func (r *Resolver) fireEnergy(s *Ship, w *WeaponMount, target *Ship, slot int) error {
	d := Distance(s.Pos, target.Pos)
	if d > w.MaxRange() {
		return reject(s.ID, ErrOutOfRange)
	}
	if !w.CoversArc(s.WeaponArcToward(target.Pos)) {
		return reject(s.ID, ErrOutOfArc)
	}
	accMult, ok := TargetingAccuracy(d, s.EffectiveSensorRange())
	if !ok {
		return reject(s.ID, ErrOutOfRange)
	}
	chance := hitChance(EnergyBaseAccuracy, accMult, multiTargetPenalty(slot))
	if !r.roll.Hit(chance) {
		r.emit(Event{Type: EvFire, Ship: s.ID, Target: target.ID, Weapon: w.Name, Hit: false})
		return nil
	}
	dmg := w.Damage() * s.Power.WeaponMultiplier() * s.combatEffectiveness()
	if r.cfg.AccuracyAffectsDamage {
		dmg *= accMult
	}
	r.applyHit(s, target, w.Name, dmg, false)
	return nil
}

func (r *Resolver) fireTorpedo(s *Ship, t *TorpedoMount, target *Ship, slot int) error {
	if t.Ammo <= 0 {
		return reject(s.ID, ErrNoAmmo)
	}
	if t.Cooldown > 0 {
		return reject(s.ID, ErrWeaponNotReady)
	}
	d := Distance(s.Pos, target.Pos)
	if d > t.MaxRange() {
		return reject(s.ID, ErrOutOfRange)
	}
	if !t.CoversArc(s.WeaponArcToward(target.Pos)) {
		return reject(s.ID, ErrOutOfArc)
	}
	accMult, ok := TargetingAccuracy(d, s.EffectiveSensorRange())
	if !ok {
		return reject(s.ID, ErrOutOfRange)
	}
	t.Ammo--
	t.Cooldown = t.FireCooldown(s.CrewBonus())
	chance := hitChance(TorpedoBaseAccuracy, accMult, multiTargetPenalty(slot))
	if !r.roll.Hit(chance) {
		r.emit(Event{Type: EvFire, Ship: s.ID, Target: target.ID, Weapon: t.Name, Hit: false})
		return nil
	}
	// Torpedo warheads are self-contained; weapon power feeds the emitters,
	// not the launchers.
	dmg := t.Damage() * s.combatEffectiveness()
	if r.cfg.AccuracyAffectsDamage {
		dmg *= accMult
	}
	r.applyHit(s, target, t.Name, dmg, true)
	return nil
}

// combatEffectiveness folds weapon-system condition, crew skill, and the
// tactical officer into one output multiplier.
func (s *Ship) combatEffectiveness() float64 {
	return s.Systems.Efficiency(SysWeapons) * (1 + s.CrewBonus()) * (1 + s.Officers.Tactical)
}
