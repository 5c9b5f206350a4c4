package score

import (
	"fmt"
	"sort"
)

// MuscleMap maps exercise name -> muscle name -> contribution weight in
// (0,1]. Isolation movements contribute with weight 1.0; secondary muscles of
// compound movements with 0.3. Weights need not sum to 1 per exercise.
type MuscleMap map[string]map[string]float64

// Validate checks every contribution weight is in (0,1].
func (m MuscleMap) Validate() error {
	for exercise, muscles := range m {
		if len(muscles) == 0 {
			return fmt.Errorf("muscle map entry for %q is empty", exercise)
		}
		for muscle, w := range muscles {
			if w <= 0 || w > 1 {
				return fmt.Errorf("muscle map %q -> %q: weight %v outside (0,1]", exercise, muscle, w)
			}
		}
	}
	return nil
}

// Invert flips the mapping to muscle -> exercise -> weight.
func (m MuscleMap) Invert() map[string]map[string]float64 {
	inverted := make(map[string]map[string]float64)
	for exercise, muscles := range m {
		for muscle, w := range muscles {
			if inverted[muscle] == nil {
				inverted[muscle] = make(map[string]float64)
			}
			inverted[muscle][exercise] = w
		}
	}
	return inverted
}

// Muscles returns the distinct muscle names referenced by the map, sorted.
func (m MuscleMap) Muscles() []string {
	seen := make(map[string]bool)
	for _, muscles := range m {
		for muscle := range muscles {
			seen[muscle] = true
		}
	}
	names := make([]string, 0, len(seen))
	for muscle := range seen {
		names = append(names, muscle)
	}
	sort.Strings(names)
	return names
}

// MuscleScores composes per-muscle scores for a single date from the
// exercises that have a defined rolling score on that date. Each muscle's
// score is the contribution-weighted average over its exercises present in
// exerciseScores; a muscle with no contributing exercise defined that day is
// simply absent from the result. There is no cross-date smoothing here;
// that already happened in the rolling aggregation.
func MuscleScores(exerciseScores map[string]float64, mm MuscleMap) map[string]float64 {
	result := make(map[string]float64)
	for muscle, exercises := range mm.Invert() {
		var totalScore, totalWeight float64
		for exercise, contribution := range exercises {
			s, ok := exerciseScores[exercise]
			if !ok {
				continue
			}
			totalScore += contribution * s
			totalWeight += contribution
		}
		if totalWeight > 0 {
			result[muscle] = totalScore / totalWeight
		}
	}
	return result
}
