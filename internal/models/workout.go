package models

import (
	"encoding/json"
	"fmt"
)

// Set is a single logged set: repetitions at a weight. The wire format is a
// two-element array [reps, weight_kg], matching the workout JSONL export.
type Set struct {
	Reps     int
	WeightKg float64
}

// Valid reports whether the set can be scored. Negative weight or fewer than
// one rep is a logging error; zero weight is allowed (bodyweight-only entries)
// but never produces a best e1RM.
func (s Set) Valid() bool {
	return s.Reps >= 1 && s.WeightKg >= 0
}

// UnmarshalJSON decodes the [reps, weight] pair form.
func (s *Set) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("set must be a [reps, weight] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("set must have exactly 2 elements, got %d", len(pair))
	}
	if pair[0] != float64(int(pair[0])) {
		return fmt.Errorf("reps must be an integer, got %v", pair[0])
	}
	s.Reps = int(pair[0])
	s.WeightKg = pair[1]
	return nil
}

// MarshalJSON encodes the set back to the [reps, weight] pair form.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{float64(s.Reps), s.WeightKg})
}

// ExerciseEntry is one exercise performed in a session with its sets in order.
type ExerciseEntry struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// Workout is one logged session: a calendar date and the exercises performed.
// Multiple workouts may share a date; they are independent sessions and all
// contribute to that date's aggregates.
type Workout struct {
	Date      Date            `json:"date"`
	Exercises []ExerciseEntry `json:"exercises"`
}
