package score

import (
	"math"
	"testing"

	"github.com/meltforce/liftscore/internal/models"
)

// TestInterpolate_AtLevels verifies that a ratio landing exactly on a level
// multiplier earns exactly that level's score.
func TestInterpolate_AtLevels(t *testing.T) {
	levels := benchLevels() // 0.5, 0.75, 1.0, 1.5, 2.0
	cases := []struct {
		ratio float64
		want  float64
	}{
		{0.5, 100},
		{0.75, 200},
		{1.0, 300},
		{1.5, 400},
		{2.0, 500},
	}
	for _, tc := range cases {
		if got := Interpolate(levels, tc.ratio); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Interpolate(ratio=%v) = %v, want %v", tc.ratio, got, tc.want)
		}
	}
}

// TestInterpolate_BetweenLevels verifies piecewise-linear interpolation
// between adjacent levels.
func TestInterpolate_BetweenLevels(t *testing.T) {
	levels := benchLevels()
	cases := []struct {
		ratio float64
		want  float64
	}{
		{0.625, 150}, // halfway beginner -> novice
		{0.875, 250}, // halfway novice -> intermediate
		{1.25, 350},  // halfway intermediate -> advanced
		{1.75, 450},  // halfway advanced -> elite
	}
	for _, tc := range cases {
		if got := Interpolate(levels, tc.ratio); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Interpolate(ratio=%v) = %v, want %v", tc.ratio, got, tc.want)
		}
	}
}

// TestInterpolate_BelowBeginner verifies the ramp below the first level:
// linear from (0, 0) to (beginner multiplier, 100), so weak-but-nonzero
// performance still earns a small positive score.
func TestInterpolate_BelowBeginner(t *testing.T) {
	levels := benchLevels()
	if got := Interpolate(levels, 0.25); math.Abs(got-50) > 1e-9 {
		t.Errorf("Interpolate(ratio=0.25) = %v, want 50", got)
	}
	if got := Interpolate(levels, 0); got != 0 {
		t.Errorf("Interpolate(ratio=0) = %v, want 0", got)
	}
}

// TestInterpolate_EliteCeiling verifies that scores above the elite
// multiplier clamp to 500: elite is a hard ceiling, not a launch point for
// open-ended extrapolation.
func TestInterpolate_EliteCeiling(t *testing.T) {
	levels := benchLevels()
	for _, ratio := range []float64{2.0, 2.5, 10} {
		if got := Interpolate(levels, ratio); got != 500 {
			t.Errorf("Interpolate(ratio=%v) = %v, want 500", ratio, got)
		}
	}
}

// TestInterpolate_Monotonic verifies that a larger ratio never earns a lower
// score, sweeping across every segment of the curve.
func TestInterpolate_Monotonic(t *testing.T) {
	levels := benchLevels()
	prev := Interpolate(levels, 0)
	for ratio := 0.05; ratio <= 3.0; ratio += 0.05 {
		got := Interpolate(levels, ratio)
		if got < prev {
			t.Fatalf("score dropped: Interpolate(%v) = %v below %v", ratio, got, prev)
		}
		prev = got
	}
}

// TestScore_BodyweightRatio verifies the full lookup: score is keyed by
// e1RM / bodyweight, so the same absolute lift scores differently at
// different bodyweights.
func TestScore_BodyweightRatio(t *testing.T) {
	table := NewTable()
	if err := table.Add("bench press", models.Male, benchLevels()); err != nil {
		t.Fatal(err)
	}
	// 80kg lifter at 80kg e1RM: ratio 1.0 -> intermediate 300.
	got, err := table.Score("bench press", models.Male, 80, 80)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-300) > 1e-9 {
		t.Errorf("Score(80kg @ 80kg bw) = %v, want 300", got)
	}
	// Same lift at 160kg bodyweight: ratio 0.5 -> beginner 100.
	got, err = table.Score("bench press", models.Male, 160, 80)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-100) > 1e-9 {
		t.Errorf("Score(80kg @ 160kg bw) = %v, want 100", got)
	}
}

// TestScore_UnknownExercise verifies that an unlisted exercise propagates the
// table's typed error.
func TestScore_UnknownExercise(t *testing.T) {
	table := NewTable()
	if _, err := table.Score("unicorn curl", models.Male, 80, 100); err == nil {
		t.Error("expected error for unknown exercise")
	}
}
