package loader

import (
	"strings"
	"testing"
)

// TestLoadWorkouts verifies a clean multi-line log parses fully, with blank
// lines ignored.
func TestLoadWorkouts(t *testing.T) {
	log := `{"date":"2025-01-01","exercises":[{"name":"bench press","sets":[[10,50],[8,55]]}]}

{"date":"2025-01-03","exercises":[{"name":"squat","sets":[[5,100]]}]}
`
	workouts, malformed, err := LoadWorkouts(strings.NewReader(log))
	if err != nil {
		t.Fatal(err)
	}
	if len(malformed) != 0 {
		t.Fatalf("unexpected malformed entries: %+v", malformed)
	}
	if len(workouts) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(workouts))
	}
	if workouts[0].Exercises[0].Name != "bench press" || len(workouts[0].Exercises[0].Sets) != 2 {
		t.Errorf("first workout parsed wrong: %+v", workouts[0])
	}
}

// TestLoadWorkouts_MalformedLinesCollected verifies that bad lines are
// skipped and reported with their line number while good lines still load.
func TestLoadWorkouts_MalformedLinesCollected(t *testing.T) {
	log := `{"date":"2025-01-01","exercises":[{"name":"squat","sets":[[5,100]]}]}
not json at all
{"exercises":[{"name":"squat","sets":[[5,100]]}]}
{"date":"2025-01-02","exercises":[{"name":"squat"}]}
{"date":"2025-01-02","exercises":[{"sets":[[5,100]]}]}
{"date":"2025-01-04","exercises":[{"name":"squat","sets":[[5,100]]}]}
`
	workouts, malformed, err := LoadWorkouts(strings.NewReader(log))
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 2 {
		t.Errorf("expected 2 good workouts, got %d", len(workouts))
	}
	if len(malformed) != 4 {
		t.Fatalf("expected 4 malformed entries, got %+v", malformed)
	}
	wantLines := []int{2, 3, 4, 5}
	for i, e := range malformed {
		if e.Line != wantLines[i] {
			t.Errorf("malformed[%d].Line = %d, want %d", i, e.Line, wantLines[i])
		}
		if e.Error() == "" {
			t.Errorf("malformed[%d] has empty message", i)
		}
	}
}

// TestParseWorkout_Rejections verifies the per-line shape checks: missing
// date, missing sets list, nameless exercise, malformed set pairs.
func TestParseWorkout_Rejections(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"missing date", `{"exercises":[]}`},
		{"bad date", `{"date":"01/02/2025","exercises":[]}`},
		{"no sets list", `{"date":"2025-01-01","exercises":[{"name":"squat"}]}`},
		{"nameless exercise", `{"date":"2025-01-01","exercises":[{"sets":[[5,100]]}]}`},
		{"bad set pair", `{"date":"2025-01-01","exercises":[{"name":"squat","sets":[[5]]}]}`},
		{"fractional reps", `{"date":"2025-01-01","exercises":[{"name":"squat","sets":[[5.5,100]]}]}`},
	}
	for _, tc := range cases {
		if _, err := ParseWorkout([]byte(tc.line)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
	// An empty exercise list is a legal rest-day entry.
	if _, err := ParseWorkout([]byte(`{"date":"2025-01-01","exercises":[]}`)); err != nil {
		t.Errorf("empty exercises: unexpected error %v", err)
	}
}
