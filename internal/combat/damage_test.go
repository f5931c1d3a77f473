package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTorpedoSplitAgainstFullShields(t *testing.T) {
	r := newDuel(t, 5, nil, DefaultConfig())
	target, _ := r.Ship("bravo")
	// Fore capacity 80 comfortably covers the inflated shield-directed 90%.
	raw := 50.0
	shieldDmg, hullHit := r.applyTorpedo(target, ArcFore, raw)
	assert.InDelta(t, 0.90*raw*1.20, shieldDmg, 1e-9, "shield drain is inflated by the shield cost")
	assert.InDelta(t, 0.10*raw, hullHit, 1e-9, "hull takes exactly the bleed-through fraction")
	assert.InDelta(t, 80-54, target.Shields[ArcFore], 1e-9)
}

func TestTorpedoExcessCarriesToHullDeflated(t *testing.T) {
	r := newDuel(t, 5, nil, DefaultConfig())
	target, _ := r.Ship("bravo")
	raw := 100.0
	// Blocked portion is 108 against an 80-point arc: 28 of inflated drain
	// is unabsorbed, reaching the hull at its pre-inflation value.
	shieldDmg, hullHit := r.applyTorpedo(target, ArcFore, raw)
	assert.InDelta(t, 80, shieldDmg, 1e-9)
	assert.InDelta(t, 10+28/1.2, hullHit, 1e-9)
	assert.Equal(t, 0.0, target.Shields[ArcFore])
}

func TestEnergyDamageCarriesThroughDepletedArc(t *testing.T) {
	r := newDuel(t, 5, nil, DefaultConfig())
	target, _ := r.Ship("bravo")
	shieldDmg, hullHit := r.applyEnergy(target, ArcFore, 100)
	assert.InDelta(t, 80, shieldDmg, 1e-9)
	assert.InDelta(t, 20, hullHit, 1e-9)

	// Arc is down: everything now goes to the hull.
	shieldDmg, hullHit = r.applyEnergy(target, ArcFore, 30)
	assert.Equal(t, 0.0, shieldDmg)
	assert.InDelta(t, 30, hullHit, 1e-9)
}

func TestArmorReducesHullDamageOnly(t *testing.T) {
	r := newDuel(t, 5, nil, DefaultConfig())
	target, _ := r.Ship("bravo")
	target.Armor = 20
	_, hullHit := r.applyEnergy(target, ArcFore, 100)
	assert.InDelta(t, 20*0.8, hullHit, 1e-9, "armor trims the hull portion")
	assert.Equal(t, 0.0, target.Shields[ArcFore], "armor never protects shields")
}

func TestPointBlankBroadside(t *testing.T) {
	r := newDuel(t, 1, nil, DefaultConfig())
	alpha, _ := r.Ship("alpha")
	alpha.Torpedoes = nil // isolate the phaser math
	r.order = r.sortedIDs()
	r.phase = PhaseTargeting
	r.active = 0
	require.NoError(t, r.SetTargets("alpha", []ShipID{"bravo"}))
	r.phase = PhaseFiring
	r.active = 0
	require.NoError(t, r.FireAll("alpha"))

	// Three mark-IV arrays bear forward at point blank: 30 x 1.5 each, always
	// hitting because the clamped chance reaches 1.0. 135 total against an
	// 80-point arc leaves 55 on the hull.
	bravo, _ := r.Ship("bravo")
	assert.Equal(t, 0.0, bravo.Shields[ArcFore])
	assert.InDelta(t, 65, bravo.Hull, 1e-9)

	hits := 0
	for _, e := range r.Events() {
		if e.Type == EvFire && e.Hit {
			hits++
		}
	}
	assert.Equal(t, 3, hits)
}

func TestSystemDamageBandBoundaries(t *testing.T) {
	cases := []struct {
		hullFrac float64
		chance   float64
	}{
		{1.00, 0.15},
		{0.76, 0.15},
		{0.75, 0.30},
		{0.51, 0.30},
		{0.50, 0.50},
		{0.26, 0.50},
		{0.25, 0.75},
		{0.20, 0.75},
		{0.00, 0.75},
	}
	for _, c := range cases {
		band := bandForHull(c.hullFrac)
		if band.Chance != c.chance {
			t.Fatalf("hull %.2f: chance %.2f, want %.2f", c.hullFrac, band.Chance, c.chance)
		}
		if band.MinSev >= band.MaxSev {
			t.Fatalf("hull %.2f: degenerate severity range %+v", c.hullFrac, band)
		}
	}
}

func TestWarpCoreLeastLikelySystemPick(t *testing.T) {
	roll := NewRoll(7)
	weights := make([]float64, len(AllSystems))
	for i, sys := range AllSystems {
		weights[i] = systemVulnerability[sys]
	}
	counts := make(map[SystemID]int)
	trials := 20000
	for i := 0; i < trials; i++ {
		idx := roll.Weighted(weights)
		counts[AllSystems[idx]]++
	}
	wc := counts[SysWarpCore]
	for sys, n := range counts {
		if sys == SysWarpCore {
			continue
		}
		if wc >= n {
			t.Fatalf("warp core picked %d times, not fewer than %s at %d", wc, sys, n)
		}
	}
}

func TestCasualtyRates(t *testing.T) {
	// 10% of max hull, shields up, 1000 crew: 0.10 rate.
	if got := hitCasualties(1000, 10, 100, true, 0); got != 10 {
		t.Fatalf("shielded casualties = %d, want 10", got)
	}
	// Same hit with the arc down is four times as lethal.
	if got := hitCasualties(1000, 10, 100, false, 0); got != 40 {
		t.Fatalf("unshielded casualties = %d, want 40", got)
	}
	// A top medical officer halves losses.
	if got := hitCasualties(1000, 10, 100, false, 0.25); got != 20 {
		t.Fatalf("mitigated casualties = %d, want 20", got)
	}
	if got := hullFailureCasualties(200, 0); got != 100 {
		t.Fatalf("hull failure losses = %d, want 100", got)
	}
	if got := hullFailureCasualties(200, 0.25); got != 50 {
		t.Fatalf("mitigated hull failure losses = %d, want 50", got)
	}
}

func TestHullZeroDisablesShip(t *testing.T) {
	r := newDuel(t, 1, nil, DefaultConfig())
	alpha, _ := r.Ship("alpha")
	bravo, _ := r.Ship("bravo")
	bravo.Shields[ArcFore] = 0
	bravo.Hull = 30

	r.applyHit(alpha, bravo, "test", 50, false)
	if !bravo.Disabled {
		t.Fatalf("hull at zero should disable the ship")
	}
	if bravo.Destroyed {
		t.Fatalf("disablement is not destruction")
	}
	if bravo.Hull != 0 {
		t.Fatalf("hull clamps at zero, got %.2f", bravo.Hull)
	}
	found := false
	for _, e := range r.Events() {
		if e.Type == EvDisabled && e.Ship == "bravo" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a disabled event")
	}
}

func TestCascadeEfficiency(t *testing.T) {
	h := NewSystemHealth()
	h[SysWarpCore] = 0.5
	h[SysLifeSupport] = 0.8
	assert.InDelta(t, 0.5, h.Efficiency(SysImpulse), 1e-9, "warp core throttles impulse")
	assert.InDelta(t, 1.0*0.5*0.8, h.Efficiency(SysWeapons), 1e-9, "weapons take both cascades")
	assert.InDelta(t, 0.5, h.Efficiency(SysWarpCore), 1e-9, "the core itself has no cascade")
	h[SysSensors] = 0.5
	assert.InDelta(t, 0.5*0.5*0.8, h.Efficiency(SysSensors), 1e-9)
}

func TestFieldRepairCaps(t *testing.T) {
	h := NewSystemHealth()
	h[SysWeapons] = 0.20
	for i := 0; i < 50; i++ {
		h.Repair(SysWeapons, 0, 0)
	}
	if math.Abs(h[SysWeapons]-FieldRepairCapLow) > 1e-9 {
		t.Fatalf("badly damaged system repaired to %.2f, cap is %.2f", h[SysWeapons], FieldRepairCapLow)
	}
	h[SysSensors] = 0.40
	for i := 0; i < 50; i++ {
		h.Repair(SysSensors, 0, 0)
	}
	if math.Abs(h[SysSensors]-FieldRepairCapMid) > 1e-9 {
		t.Fatalf("moderately damaged system repaired to %.2f, cap is %.2f", h[SysSensors], FieldRepairCapMid)
	}
	h[SysShields] = 0.90
	h.Repair(SysShields, 0, 0)
	if h[SysShields] <= 0.90 || h[SysShields] > 1.0 {
		t.Fatalf("light damage repairs toward full, got %.2f", h[SysShields])
	}
}
