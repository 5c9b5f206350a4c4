package score

import (
	"fmt"
	"sort"

	"github.com/meltforce/liftscore/internal/models"
)

// Score scale bounds and the canonical level thresholds.
const (
	MinScore = 0.0
	MaxScore = 500.0
)

// Level is one point on an exercise's strength curve: a named threshold and
// the bodyweight multiplier that earns its score.
type Level struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
	Score      float64 `json:"score"`
}

// StandardLevels builds the canonical five-level curve
// (beginner=100 ... elite=500) from bodyweight multipliers.
func StandardLevels(beginner, novice, intermediate, advanced, elite float64) []Level {
	return []Level{
		{Name: "beginner", Multiplier: beginner, Score: 100},
		{Name: "novice", Multiplier: novice, Score: 200},
		{Name: "intermediate", Multiplier: intermediate, Score: 300},
		{Name: "advanced", Multiplier: advanced, Score: 400},
		{Name: "elite", Multiplier: elite, Score: 500},
	}
}

// LevelName returns the named strength level for a score.
func LevelName(score float64) string {
	switch {
	case score >= 500:
		return "elite"
	case score >= 400:
		return "advanced"
	case score >= 300:
		return "intermediate"
	case score >= 200:
		return "novice"
	default:
		return "beginner"
	}
}

type standardsKey struct {
	Exercise string
	Sex      models.Sex
}

// Table is the read-only strength standards lookup, built once from the
// external standards source. It maps (exercise, sex) to an ordered level
// curve. There are no mutation operations after construction; updating
// standards data means editing the source table and rebuilding.
type Table struct {
	entries map[standardsKey][]Level
}

// NewTable returns an empty standards table ready for Add calls during load.
func NewTable() *Table {
	return &Table{entries: make(map[standardsKey][]Level)}
}

// Add registers the level curve for one (exercise, sex) pair. Multipliers
// must be positive and strictly increasing across levels.
func (t *Table) Add(exercise string, sex models.Sex, levels []Level) error {
	if exercise == "" {
		return fmt.Errorf("exercise name is required")
	}
	if len(levels) == 0 {
		return fmt.Errorf("standards for %q (%s): at least one level is required", exercise, sex)
	}
	prev := 0.0
	for _, lv := range levels {
		if lv.Multiplier <= prev {
			return fmt.Errorf("standards for %q (%s): multipliers must be strictly increasing, %v after %v",
				exercise, sex, lv.Multiplier, prev)
		}
		prev = lv.Multiplier
	}
	t.entries[standardsKey{Exercise: exercise, Sex: sex}] = levels
	return nil
}

// Levels looks up the ordered level curve for (exercise, sex).
// A missing entry is an UnknownExerciseError, never a silent default.
func (t *Table) Levels(exercise string, sex models.Sex) ([]Level, error) {
	levels, ok := t.entries[standardsKey{Exercise: exercise, Sex: sex}]
	if !ok {
		return nil, &UnknownExerciseError{Exercise: exercise, Sex: sex, Source: "standards"}
	}
	return levels, nil
}

// Has reports whether the table covers (exercise, sex).
func (t *Table) Has(exercise string, sex models.Sex) bool {
	_, ok := t.entries[standardsKey{Exercise: exercise, Sex: sex}]
	return ok
}

// Exercises returns the distinct exercise names in the table, sorted.
func (t *Table) Exercises() []string {
	seen := make(map[string]bool)
	for key := range t.entries {
		seen[key.Exercise] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
