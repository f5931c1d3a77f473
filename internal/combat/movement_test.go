package combat

import (
	"errors"
	"testing"
)

// newDuel builds a two-ship encounter. Alpha's command rating guarantees it
// always wins initiative, so tests can drive activations in a known order.
func newDuel(t *testing.T, dist int, ai map[ShipID]Personality, cfg Config) *Resolver {
	t.Helper()
	a := testShip("alpha", FactionFriendly, Hex{0, 0}, 0)
	a.CommandRating = 100
	b := testShip("bravo", FactionEnemy, Hex{Q: dist}, 3)
	b.CommandRating = 0
	r, err := NewResolver([]*Ship{a, b}, ai, cfg)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func TestMovementBudgetAndTurnRule(t *testing.T) {
	r := newDuel(t, 10, nil, DefaultConfig())
	r.Pump()
	if r.Phase() != PhaseMovement || r.ActiveShip() != "alpha" {
		t.Fatalf("expected alpha active in MOVEMENT, got %s/%s", r.Phase(), r.ActiveShip())
	}

	if err := r.MoveForward("bravo"); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out-of-turn move: got %v", err)
	}
	if err := r.TurnLeft("alpha"); !errors.Is(err, ErrMustMoveFirst) {
		t.Fatalf("turn before moving: got %v", err)
	}

	if err := r.MoveForward("alpha"); err != nil {
		t.Fatalf("move forward: %v", err)
	}
	a, _ := r.Ship("alpha")
	if a.Pos != (Hex{Q: 1}) {
		t.Fatalf("alpha at %v, want {1 0}", a.Pos)
	}

	if err := r.TurnLeft("alpha"); err != nil {
		t.Fatalf("turn after moving: %v", err)
	}
	if err := r.TurnLeft("alpha"); !errors.Is(err, ErrMustMoveFirst) {
		t.Fatalf("second turn without another move: got %v", err)
	}

	// Base MP 5 at balanced power: one move and one turn spent, three left.
	if got := r.MovementRemaining(); got != 3 {
		t.Fatalf("movement remaining = %d, want 3", got)
	}
	for r.MovementRemaining() > 0 {
		if err := r.MoveForward("alpha"); err != nil {
			t.Fatalf("spending budget: %v", err)
		}
	}
	if err := r.MoveForward("alpha"); !errors.Is(err, ErrNoMovementPoints) {
		t.Fatalf("exhausted budget: got %v", err)
	}
}

func TestMovementCollisionBlocks(t *testing.T) {
	r := newDuel(t, 1, nil, DefaultConfig())
	r.Pump()
	if err := r.MoveForward("alpha"); !errors.Is(err, ErrBlocked) {
		t.Fatalf("move into occupied hex: got %v", err)
	}
	a, _ := r.Ship("alpha")
	if a.Pos != (Hex{}) {
		t.Fatalf("rejected move must not mutate position, ship at %v", a.Pos)
	}
}

func TestLargeFootprintCollision(t *testing.T) {
	tmplG, _ := TemplateFor("Galaxy")
	big := tmplG.Build("big", "big", FactionFriendly, Hex{0, 0}, 0)
	big.CommandRating = 100
	foe := testShip("foe", FactionEnemy, Hex{Q: 2}, 3)
	r, err := NewResolver([]*Ship{big, foe}, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	r.Pump()
	// Moving east would roll the seven-hex footprint onto the foe's hex.
	if err := r.MoveForward("big"); !errors.Is(err, ErrBlocked) {
		t.Fatalf("footprint overlap should block, got %v", err)
	}
}

func TestArenaBoundaryBlocks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaRadius = 2
	r := newDuel(t, 2, nil, cfg)
	r.Pump()
	a, _ := r.Ship("alpha")
	a.Facing = 3 // west, away from bravo; the rim is two hexes out
	if err := r.MoveForward("alpha"); err != nil {
		t.Fatalf("move inside arena: %v", err)
	}
	if err := r.MoveForward("alpha"); err != nil {
		t.Fatalf("move to rim: %v", err)
	}
	if err := r.MoveForward("alpha"); !errors.Is(err, ErrOutOfArena) {
		t.Fatalf("move past rim: got %v", err)
	}
	if a.Pos != (Hex{Q: -2}) {
		t.Fatalf("rejected move must not mutate position, ship at %v", a.Pos)
	}
}

func TestRosterNeverOverlapsAfterCommittedMoves(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.MaxRounds = 20
	ai := map[ShipID]Personality{
		"alpha": PersonalityPreset("aggressive"),
		"bravo": PersonalityPreset("aggressive"),
	}
	r := newDuel(t, 6, ai, cfg)
	for !r.Finished() {
		r.Pump()
		occupied := map[Hex]ShipID{}
		for _, s := range r.Roster() {
			for _, h := range s.OccupiedHexes() {
				if other, taken := occupied[h]; taken {
					t.Fatalf("ships %s and %s overlap at %v", other, s.ID, h)
				}
				occupied[h] = s.ID
			}
		}
	}
}

func TestWrongPhaseRejections(t *testing.T) {
	r := newDuel(t, 10, nil, DefaultConfig())
	r.Pump() // MOVEMENT, alpha active
	if err := r.SetPower("alpha", BalancedPower()); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("power during movement: got %v", err)
	}
	if err := r.SetTargets("alpha", []ShipID{"bravo"}); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("targeting during movement: got %v", err)
	}
	if err := r.FireAll("alpha"); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("firing during movement: got %v", err)
	}
	if err := r.RepairSystem("alpha", SysShields); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("repair during movement: got %v", err)
	}
}
