package score

import (
	"fmt"

	"github.com/meltforce/liftscore/internal/models"
)

// UnknownExerciseError reports an exercise with no standards entry for the
// requested sex, or no muscle map entry. It signals a data-authoring gap the
// caller must fix; it never aborts processing of other exercises.
type UnknownExerciseError struct {
	Exercise string
	Sex      models.Sex
	Source   string // "standards" or "muscle_map"
}

func (e *UnknownExerciseError) Error() string {
	if e.Source == "muscle_map" {
		return fmt.Sprintf("exercise %q has no muscle map entry", e.Exercise)
	}
	return fmt.Sprintf("exercise %q has no strength standards for sex %q", e.Exercise, e.Sex)
}

// InvalidSetError reports a logged set that cannot be scored (reps < 1 or
// negative weight). The set is excluded; the rest of the session still counts.
type InvalidSetError struct {
	Date     models.Date
	Exercise string
	Set      models.Set
}

func (e *InvalidSetError) Error() string {
	return fmt.Sprintf("invalid set on %s for %q: %d reps at %.1f kg",
		e.Date, e.Exercise, e.Set.Reps, e.Set.WeightKg)
}
