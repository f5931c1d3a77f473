package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergyWeaponDamageScalesWithMark(t *testing.T) {
	cases := []struct {
		typ  EnergyWeaponType
		mark int
		want float64
	}{
		{Phaser, 1, 15},
		{Phaser, 4, 30},
		{Disruptor, 1, 18},
		{Disruptor, 10, 63},
		{PlasmaBeam, 3, 30},
		{Polaron, 2, 21},
		{Tetryon, 5, 34},
	}
	for _, c := range cases {
		w := WeaponMount{Type: c.typ, Mark: c.mark}
		assert.Equal(t, c.want, w.Damage(), "%s mark %d", c.typ, c.mark)
	}
}

func TestTorpedoDamageScalesWithMark(t *testing.T) {
	cases := []struct {
		typ  TorpedoType
		mark int
		want float64
	}{
		{Photon, 1, 80},
		{Photon, 4, 110},
		{Quantum, 1, 100},
		{PlasmaTorpedo, 2, 100},
		{Tricobalt, 3, 140},
	}
	for _, c := range cases {
		m := TorpedoMount{Type: c.typ, Mark: c.mark}
		assert.Equal(t, c.want, m.Damage(), "%s mark %d", c.typ, c.mark)
	}
}

func TestTorpedoFireCooldown(t *testing.T) {
	cases := []struct {
		name      string
		typ       TorpedoType
		mark      int
		crewBonus float64
		want      int
	}{
		{"photon mark 4 regular crew", Photon, 4, 0.10, 3},
		{"photon mark 1 green crew", Photon, 1, 0, 3},
		{"photon mark 5 shaves a round", Photon, 5, 0, 2},
		{"photon mark 10 hits the floor", Photon, 10, 0, 2},
		{"quantum mark 1", Quantum, 1, 0, 4},
		{"quantum mark 5", Quantum, 5, 0, 3},
		{"quantum mark 10", Quantum, 10, 0, 2},
		{"tricobalt mark 1 legendary crew", Tricobalt, 1, 0.25, 4},
		{"tricobalt mark 10 legendary crew", Tricobalt, 10, 0.25, 2},
		{"floor never below one", Photon, 10, 0.9, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := TorpedoMount{Type: c.typ, Mark: c.mark}
			assert.Equal(t, c.want, m.FireCooldown(c.crewBonus))
		})
	}
}

func TestTorpedoReadiness(t *testing.T) {
	m := TorpedoMount{Type: Photon, Mark: 1, Ammo: 1}
	if !m.Ready() {
		t.Fatalf("loaded launcher with no cooldown should be ready")
	}
	m.Cooldown = 2
	if m.Ready() {
		t.Fatalf("cooling launcher should not be ready")
	}
	m.Cooldown = 0
	m.Ammo = 0
	if m.Ready() {
		t.Fatalf("empty launcher should not be ready")
	}
}

func TestDeflectorSensorBonus(t *testing.T) {
	cases := map[int]int{0: 0, 1: 0, 2: 1, 4: 2, 7: 3, 10: 5}
	for mark, want := range cases {
		if got := (Deflector{Mark: mark}).SensorBonus(); got != want {
			t.Fatalf("deflector mark %d bonus = %d, want %d", mark, got, want)
		}
	}
}
