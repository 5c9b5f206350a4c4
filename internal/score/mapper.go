package score

import "github.com/meltforce/liftscore/internal/models"

// Score maps an e1RM to the 0-500 scale for the given exercise, sex, and
// bodyweight by interpolating the bodyweight ratio against the standards
// curve. Returns an UnknownExerciseError when the table has no entry.
func (t *Table) Score(exercise string, sex models.Sex, bodyweightKg, e1rm float64) (float64, error) {
	levels, err := t.Levels(exercise, sex)
	if err != nil {
		return 0, err
	}
	return Interpolate(levels, e1rm/bodyweightKg), nil
}

// Interpolate converts a bodyweight ratio into a score against an ordered
// level curve. Below the first level the score ramps linearly from 0, so
// below-beginner performance still earns a small positive score. Between
// levels the score is piecewise-linear and continuous at every boundary.
// Beyond the last level the extrapolated score is clamped back down: the top
// level is a hard ceiling.
func Interpolate(levels []Level, ratio float64) float64 {
	first := levels[0]
	last := levels[len(levels)-1]

	var s float64
	switch {
	case ratio < first.Multiplier:
		s = first.Score * ratio / first.Multiplier
	case ratio >= last.Multiplier:
		s = last.Score
		if n := len(levels); n > 1 {
			prev := levels[n-2]
			s += (last.Score - prev.Score) * (ratio - last.Multiplier) / (last.Multiplier - prev.Multiplier)
		}
	default:
		for i := 0; i+1 < len(levels); i++ {
			lo, hi := levels[i], levels[i+1]
			if ratio <= hi.Multiplier {
				s = lo.Score + (hi.Score-lo.Score)*(ratio-lo.Multiplier)/(hi.Multiplier-lo.Multiplier)
				break
			}
		}
	}

	return clamp(s, MinScore, MaxScore)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
