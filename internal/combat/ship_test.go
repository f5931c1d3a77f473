package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testShip(id ShipID, faction Faction, pos Hex, facing Facing) *Ship {
	tmpl, ok := TemplateFor("Miranda")
	if !ok {
		panic("missing Miranda template")
	}
	s := tmpl.Build(id, string(id), faction, pos, facing)
	s.Skill = Cadet // formula tests want no crew scaling unless set explicitly
	return s
}

func TestArcTowardCardinalBearings(t *testing.T) {
	s := testShip("a", FactionFriendly, Hex{0, 0}, 0) // facing east
	cases := []struct {
		from Hex
		want Arc
	}{
		{Hex{3, 0}, ArcFore}, // dead ahead
		{Hex{-3, 0}, ArcAft}, // dead astern
		{Hex{0, 3}, ArcStarboard},
		{Hex{0, -3}, ArcPort},
		{Hex{3, -1}, ArcFore}, // slightly off the bow
		{Hex{-3, 1}, ArcAft},
	}
	for _, c := range cases {
		if got := s.ArcToward(c.from); got != c.want {
			t.Fatalf("attacker at %v vs east-facing ship: arc %s, want %s", c.from, got, c.want)
		}
	}
}

func TestArcTowardFollowsFacing(t *testing.T) {
	attacker := Hex{3, 0}
	s := testShip("a", FactionFriendly, Hex{0, 0}, 0)
	if got := s.ArcToward(attacker); got != ArcFore {
		t.Fatalf("east-facing: got %s, want fore", got)
	}
	s.Facing = 3 // west
	if got := s.ArcToward(attacker); got != ArcAft {
		t.Fatalf("west-facing: got %s, want aft", got)
	}
	s.Facing = 1 // southeast; attacker is 60 degrees to port
	if got := s.ArcToward(attacker); got != ArcPort {
		t.Fatalf("southeast-facing: got %s, want port", got)
	}
}

func TestShieldDrainAndRegenClamp(t *testing.T) {
	s := testShip("a", FactionFriendly, Hex{0, 0}, 0)
	cap := s.MaxShields[ArcFore]

	applied := s.DrainShield(ArcFore, cap+50)
	assert.Equal(t, cap, applied, "arc absorbs at most its current value")
	assert.Equal(t, 0.0, s.Shields[ArcFore], "arc floors at zero")

	s.RegenerateShields()
	regen := s.ShieldRegen // balanced power, healthy systems
	assert.InDelta(t, regen, s.Shields[ArcFore], 1e-9)

	for i := 0; i < 100; i++ {
		s.RegenerateShields()
	}
	for _, arc := range AllArcs {
		if s.Shields[arc] > s.MaxShields[arc] {
			t.Fatalf("arc %s regenerated past capacity: %.2f > %.2f", arc, s.Shields[arc], s.MaxShields[arc])
		}
	}
}

func TestPowerAllocationRules(t *testing.T) {
	pool := DefaultPowerPool
	if err := BalancedPower().Validate(pool); err != nil {
		t.Fatalf("balanced split should validate: %v", err)
	}
	bad := []PowerAllocation{
		{Engines: 100, Shields: 100, Weapons: 99},  // short
		{Engines: 150, Shields: 150, Weapons: 50},  // over
		{Engines: 210, Shields: 50, Weapons: 40},   // cap
		{Engines: -10, Shields: 210, Weapons: 100}, // negative
	}
	for _, alloc := range bad {
		if err := alloc.Validate(pool); err == nil {
			t.Fatalf("allocation %+v should be rejected", alloc)
		}
	}
}

func TestPowerMultipliers(t *testing.T) {
	cases := []struct {
		power         int
		engine, regen float64
	}{
		{100, 1.0, 1.0},
		{150, 1.25, 1.5},
		{200, 1.5, 2.0},
		{50, 0.75, 0.5},
		{0, 0.5, 0.0},
	}
	for _, c := range cases {
		p := PowerAllocation{Engines: c.power, Shields: c.power, Weapons: c.power}
		assert.InDelta(t, c.engine, p.EngineMultiplier(), 1e-9, "engine at %d", c.power)
		assert.InDelta(t, c.engine, p.WeaponMultiplier(), 1e-9, "weapon at %d", c.power)
		assert.InDelta(t, c.regen, p.ShieldRegenMultiplier(), 1e-9, "regen at %d", c.power)
	}
}

func TestMovementPointsScaleWithEnginePower(t *testing.T) {
	s := testShip("a", FactionFriendly, Hex{0, 0}, 0) // base MP 5
	if got := s.MovementPoints(); got != 5 {
		t.Fatalf("balanced power MP = %d, want 5", got)
	}
	s.Power = PowerAllocation{Engines: 150, Shields: 100, Weapons: 50}
	if got := s.MovementPoints(); got != 6 {
		t.Fatalf("engines 150 MP = %d, want floor(5*1.25)=6", got)
	}
	s.Power = PowerAllocation{Engines: 50, Shields: 150, Weapons: 100}
	if got := s.MovementPoints(); got != 3 {
		t.Fatalf("engines 50 MP = %d, want floor(5*0.75)=3", got)
	}
	s.Power = BalancedPower()
	s.Systems[SysImpulse] = 0.5
	if got := s.MovementPoints(); got != 2 {
		t.Fatalf("impulse at 50%% MP = %d, want 2", got)
	}
}

func TestEffectiveSensorRange(t *testing.T) {
	s := testShip("a", FactionFriendly, Hex{0, 0}, 0) // base 6, deflector mark 4
	if got := s.EffectiveSensorRange(); got != 8 {
		t.Fatalf("healthy sensors = %d, want 6+2", got)
	}
	s.Systems[SysSensors] = 0.5
	if got := s.EffectiveSensorRange(); got != 4 {
		t.Fatalf("sensors at 50%% = %d, want 4", got)
	}
	s.Systems[SysSensors] = 0
	if got := s.EffectiveSensorRange(); got != 1 {
		t.Fatalf("dead sensors = %d, want floor of 1", got)
	}
	s.Systems[SysSensors] = 1
	if got := s.MaxTargetRange(); got != 16 {
		t.Fatalf("max target range = %d, want 2x effective", got)
	}
}

func TestCrewSkillDegradesWithLosses(t *testing.T) {
	s := testShip("a", FactionFriendly, Hex{0, 0}, 0)
	s.Skill = Elite
	if s.EffectiveSkill() != Elite {
		t.Fatalf("full crew keeps base skill")
	}
	s.Crew = s.MaxCrew * 3 / 4
	if got := s.EffectiveSkill(); got != Veteran {
		t.Fatalf("25%% lost: got %s, want veteran", got)
	}
	s.Crew = s.MaxCrew / 4
	if got := s.EffectiveSkill(); got != Cadet {
		t.Fatalf("75%% lost: got %s, want cadet", got)
	}
	s.Crew = 0
	if got := s.EffectiveSkill(); got != Cadet {
		t.Fatalf("no crew: got %s, want cadet (floor)", got)
	}
}

func TestSkillLadderBonuses(t *testing.T) {
	want := map[SkillLevel]float64{Cadet: 0, Ensign: 0.05, Regular: 0.10, Veteran: 0.15, Elite: 0.20, Legendary: 0.25}
	for lvl, bonus := range want {
		if math.Abs(lvl.Bonus()-bonus) > 1e-9 {
			t.Fatalf("%s bonus = %.2f, want %.2f", lvl, lvl.Bonus(), bonus)
		}
	}
}

func TestLargeShipFootprint(t *testing.T) {
	tmpl, _ := TemplateFor("Galaxy")
	s := tmpl.Build("g", "Enterprise", FactionFriendly, Hex{2, 2}, 0)
	hexes := s.OccupiedHexes()
	if len(hexes) != 7 {
		t.Fatalf("large hull occupies %d hexes, want 7", len(hexes))
	}
	seen := map[Hex]bool{}
	for _, h := range hexes {
		if seen[h] {
			t.Fatalf("duplicate hex %v in footprint", h)
		}
		seen[h] = true
		if Distance(Hex{2, 2}, h) > 1 {
			t.Fatalf("footprint hex %v not adjacent to center", h)
		}
	}
}
