package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetingAccuracyBands(t *testing.T) {
	r := 6 // sensor range
	cases := []struct {
		d    int
		want float64
	}{
		{0, 1.50},
		{1, 1.50},
		{3, 1.25},  // half range
		{6, 1.10},  // full range
		{12, 0.60}, // double range
	}
	for _, c := range cases {
		got, ok := TargetingAccuracy(c.d, r)
		require.True(t, ok, "d=%d should be targetable", c.d)
		assert.InDelta(t, c.want, got, 1e-9, "d=%d", c.d)
	}
}

func TestTargetingAccuracyInterpolatesWithinBands(t *testing.T) {
	r := 8
	// Midway between full range and double range.
	got, ok := TargetingAccuracy(12, r)
	require.True(t, ok)
	assert.InDelta(t, (1.10+0.60)/2, got, 1e-9)

	// Midway between half range and full range.
	got, ok = TargetingAccuracy(6, r)
	require.True(t, ok)
	assert.InDelta(t, (1.25+1.10)/2, got, 1e-9)
}

func TestTargetingAccuracyBeyondDoubleRange(t *testing.T) {
	if _, ok := TargetingAccuracy(13, 6); ok {
		t.Fatalf("d beyond 2R must have no firing solution")
	}
	if _, ok := TargetingAccuracy(5, 0); ok {
		t.Fatalf("zero sensor range must have no firing solution")
	}
	if _, ok := TargetingAccuracy(-1, 6); ok {
		t.Fatalf("negative distance must have no firing solution")
	}
}

func TestTargetingAccuracyMonotoneNonIncreasing(t *testing.T) {
	for _, r := range []int{1, 2, 3, 6, 10, 20} {
		prev := math.Inf(1)
		for d := 1; d <= 2*r; d++ {
			got, ok := TargetingAccuracy(d, r)
			if !ok {
				t.Fatalf("R=%d d=%d unexpectedly untargetable", r, d)
			}
			if got > prev+1e-9 {
				t.Fatalf("R=%d: accuracy rose from %.4f to %.4f at d=%d", r, prev, got, d)
			}
			prev = got
		}
	}
}

func TestTargetingAccuracyDegenerateShortRange(t *testing.T) {
	// R=1 collapses the first two bands into the point-blank breakpoint.
	got, ok := TargetingAccuracy(1, 1)
	require.True(t, ok)
	assert.InDelta(t, 1.50, got, 1e-9)
	got, ok = TargetingAccuracy(2, 1)
	require.True(t, ok)
	assert.InDelta(t, 0.60, got, 1e-9)
}

func TestHitChanceClamped(t *testing.T) {
	if got := hitChance(EnergyBaseAccuracy, 1.50, 1.0); got != 1.0 {
		t.Fatalf("point-blank energy chance should clamp to 1.0, got %.4f", got)
	}
	got := hitChance(TorpedoBaseAccuracy, 0.60, TertiaryAccuracy)
	want := 0.75 * 0.60 * 0.50
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("tertiary long-range torpedo chance = %.4f, want %.4f", got, want)
	}
}

func TestMultiTargetPenalty(t *testing.T) {
	if multiTargetPenalty(0) != 1.0 || multiTargetPenalty(1) != 0.75 || multiTargetPenalty(2) != 0.5 {
		t.Fatalf("penalty ladder should be 100/75/50")
	}
}
