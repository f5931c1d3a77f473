package combat

// applyHit lands a successful shot on the target: shield-arc absorption,
// hull damage, the system-damage roll, casualties, and the disabled/breach
// transitions. Damage resolves immediately, one shot at a time, so later
// shots in the same phase see the shields the earlier ones drained.
func (r *Resolver) applyHit(attacker, target *Ship, weapon string, dmg float64, torpedo bool) {
	arc := target.ArcToward(attacker.Pos)
	shielded := target.Shields[arc] > 0

	var shieldDmg, hullHit float64
	if torpedo {
		shieldDmg, hullHit = r.applyTorpedo(target, arc, dmg)
	} else {
		shieldDmg, hullHit = r.applyEnergy(target, arc, dmg)
	}

	r.emit(Event{
		Type: EvFire, Ship: attacker.ID, Target: target.ID, Weapon: weapon,
		Hit: true, Arc: arc, ShieldDamage: shieldDmg, HullDamage: hullHit,
	})

	if hullHit > 0 {
		r.rollSystemDamage(target, hullHit)
		if n := hitCasualties(target.MaxCrew, hullHit, target.MaxHull, shielded, target.Officers.Medical); n > 0 {
			if n > target.Crew {
				n = target.Crew
			}
			target.Crew -= n
			r.emit(Event{Type: EvCasualties, Ship: target.ID, Crew: n})
		}
	}

	if target.Hull <= 0 && !target.Disabled {
		target.Disabled = true
		r.emit(Event{Type: EvDisabled, Ship: target.ID})
		if n := hullFailureCasualties(target.Crew, target.Officers.Medical); n > 0 {
			target.Crew -= n
			r.emit(Event{Type: EvCasualties, Ship: target.ID, Crew: n, Note: "hull failure"})
		}
		r.log.Info().Str("ship", string(target.ID)).Msg("ship disabled")
	}
	if target.Systems.Get(SysWarpCore) <= 0 && !target.PendingBreach && target.Alive() {
		target.PendingBreach = true
		r.emit(Event{Type: EvSystemHit, Ship: target.ID, System: SysWarpCore, Note: "containment failing"})
	}
}

// applyEnergy drains the facing arc first; whatever the arc cannot absorb
// carries through to the hull in the same resolution.
func (r *Resolver) applyEnergy(target *Ship, arc Arc, dmg float64) (shieldDmg, hullHit float64) {
	shieldDmg = target.DrainShield(arc, dmg)
	if rest := dmg - shieldDmg; rest > 0 {
		hullHit = target.ApplyHull(rest)
	}
	return shieldDmg, hullHit
}

// applyTorpedo splits the warhead: 90% goes at the facing arc with a 20%
// extra shield cost, 10% always reaches the hull. Blocked damage the arc
// cannot absorb carries to the hull at its pre-inflation value.
func (r *Resolver) applyTorpedo(target *Ship, arc Arc, dmg float64) (shieldDmg, hullHit float64) {
	blocked := dmg * TorpedoShieldBlock * TorpedoShieldCost
	shieldDmg = target.DrainShield(arc, blocked)
	hull := dmg * TorpedoBypass
	if excess := blocked - shieldDmg; excess > 0 {
		hull += excess / TorpedoShieldCost
	}
	hullHit = target.ApplyHull(hull)
	return shieldDmg, hullHit
}

// rollSystemDamage runs the single per-hit internal-damage trial. Trigger
// chance and severity come from the hull-integrity band after the hit; the
// struck system is picked by vulnerability weight.
func (r *Resolver) rollSystemDamage(target *Ship, hullHit float64) {
	if target.MaxHull <= 0 {
		return
	}
	band := bandForHull(target.HullFraction())
	ratio := hullHit / target.MaxHull
	if !r.roll.Hit(band.Chance * ratio) {
		return
	}
	weights := make([]float64, len(AllSystems))
	for i, sys := range AllSystems {
		if target.Systems.Get(sys) > 0 {
			weights[i] = systemVulnerability[sys]
		}
	}
	idx := r.roll.Weighted(weights)
	if idx < 0 {
		return
	}
	sys := AllSystems[idx]
	severity := r.roll.Range(band.MinSev, band.MaxSev)
	target.Systems.Damage(sys, severity)
	r.emit(Event{Type: EvSystemHit, Ship: target.ID, System: sys, Severity: severity})
}
