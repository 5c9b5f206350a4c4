package score

import (
	"iter"
	"slices"

	"github.com/meltforce/liftscore/internal/models"
)

// DefaultWindowDays is the trailing window applied to exercise score series:
// a date's value is the best score in the inclusive 7 days ending on it.
const DefaultWindowDays = 7

// DatedScore is one point in a per-exercise or per-muscle score series.
type DatedScore struct {
	Date  models.Date `json:"date"`
	Score float64     `json:"score"`
}

// sortDatedScores orders points ascending by date, in place.
func sortDatedScores(points []DatedScore) {
	slices.SortFunc(points, func(a, b DatedScore) int {
		return a.Date.Compare(b.Date)
	})
}

// RollingMax computes the trailing windowDays-day maximum series over a set
// of per-date observations for one exercise. For every calendar date from the
// first observation through windowDays-1 days past the last one, it yields
// the maximum score among observations in the inclusive window
// [date-windowDays+1, date]. Dates whose window holds no observation yield
// nothing at all: absence propagates rather than becoming a zero, which would
// corrupt downstream weighted averages.
//
// The returned sequence is lazy and restartable; RollingMax itself is a pure
// function of its input.
func RollingMax(observations []DatedScore, windowDays int) iter.Seq2[models.Date, float64] {
	if windowDays < 1 {
		windowDays = DefaultWindowDays
	}
	points := slices.Clone(observations)
	sortDatedScores(points)

	return func(yield func(models.Date, float64) bool) {
		if len(points) == 0 {
			return
		}
		end := points[len(points)-1].Date.AddDays(windowDays - 1)
		lo, hi := 0, 0
		for d := points[0].Date; !d.After(end); d = d.AddDays(1) {
			cutoff := d.AddDays(-(windowDays - 1))
			for lo < len(points) && points[lo].Date.Before(cutoff) {
				lo++
			}
			for hi < len(points) && !points[hi].Date.After(d) {
				hi++
			}
			if lo >= hi {
				continue // empty window: no value for this date
			}
			best := points[lo].Score
			for i := lo + 1; i < hi; i++ {
				if points[i].Score > best {
					best = points[i].Score
				}
			}
			if !yield(d, best) {
				return
			}
		}
	}
}

// Materialize collects a rolling series into a slice of points.
func Materialize(seq iter.Seq2[models.Date, float64]) []DatedScore {
	var out []DatedScore
	for d, s := range seq {
		out = append(out, DatedScore{Date: d, Score: s})
	}
	return out
}
