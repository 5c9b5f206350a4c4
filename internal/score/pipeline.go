package score

import (
	"sort"

	"github.com/meltforce/liftscore/internal/models"
)

// Pipeline runs the full scoring computation: per-set e1RM, per-exercise
// session scores, trailing-window smoothing, and muscle composition. It is a
// pure batch transform over immutable inputs; running it twice over the same
// log yields identical output.
type Pipeline struct {
	Table      *Table
	Muscles    MuscleMap
	Profile    models.Profile
	Estimator  Estimator
	WindowDays int
}

// Result holds the derived score series. Absent dates carry no point; a
// series is never padded with zeros.
type Result struct {
	// Exercises maps exercise name to its smoothed rolling score series,
	// ascending by date.
	Exercises map[string][]DatedScore
	// Muscles maps muscle name to its composed score series, ascending by date.
	Muscles map[string][]DatedScore
}

// Report collects per-record errors encountered during a run. Validation
// failures never abort the batch; partial results are always produced.
type Report struct {
	InvalidSets      []InvalidSetError
	UnknownExercises []UnknownExerciseError
}

// Empty reports whether the run completed without any per-record errors.
func (r *Report) Empty() bool {
	return len(r.InvalidSets) == 0 && len(r.UnknownExercises) == 0
}

// Run scores a workout log. Invalid sets are excluded and reported; exercises
// missing from the standards table or the muscle map are reported and skipped
// where undefined, without blocking any other exercise.
func (p *Pipeline) Run(workouts []models.Workout) (*Result, *Report) {
	window := p.WindowDays
	if window < 1 {
		window = DefaultWindowDays
	}
	report := &Report{}

	// Best e1RM per (exercise, date). Multiple sessions on one date merge
	// here: best single performance of the day wins.
	best := make(map[string]map[models.Date]float64)
	for _, w := range workouts {
		for _, entry := range w.Exercises {
			for _, set := range entry.Sets {
				if !set.Valid() {
					report.InvalidSets = append(report.InvalidSets, InvalidSetError{
						Date: w.Date, Exercise: entry.Name, Set: set,
					})
					continue
				}
				e1rm := p.Estimator.Estimate(set.WeightKg, set.Reps)
				if e1rm <= 0 {
					continue
				}
				if best[entry.Name] == nil {
					best[entry.Name] = make(map[models.Date]float64)
				}
				if e1rm > best[entry.Name][w.Date] {
					best[entry.Name][w.Date] = e1rm
				}
			}
		}
	}

	// Map e1RMs to scores and smooth per exercise. Sorted iteration keeps
	// runs byte-identical.
	exercises := make([]string, 0, len(best))
	for name := range best {
		exercises = append(exercises, name)
	}
	sort.Strings(exercises)

	result := &Result{
		Exercises: make(map[string][]DatedScore),
		Muscles:   make(map[string][]DatedScore),
	}
	for _, name := range exercises {
		if !p.Table.Has(name, p.Profile.Sex) {
			report.UnknownExercises = append(report.UnknownExercises,
				UnknownExerciseError{Exercise: name, Sex: p.Profile.Sex, Source: "standards"})
			continue
		}
		daily := make([]DatedScore, 0, len(best[name]))
		for date, e1rm := range best[name] {
			s, err := p.Table.Score(name, p.Profile.Sex, p.Profile.WeightKg, e1rm)
			if err != nil {
				continue // unreachable: Has was checked above
			}
			daily = append(daily, DatedScore{Date: date, Score: s})
		}
		sortDatedScores(daily)
		result.Exercises[name] = Materialize(RollingMax(daily, window))

		if _, ok := p.Muscles[name]; !ok {
			report.UnknownExercises = append(report.UnknownExercises,
				UnknownExerciseError{Exercise: name, Sex: p.Profile.Sex, Source: "muscle_map"})
		}
	}

	p.composeMuscles(result)
	return result, report
}

// composeMuscles evaluates the muscle composer independently for every date
// any exercise has a defined rolling score.
func (p *Pipeline) composeMuscles(result *Result) {
	dateSet := make(map[models.Date]bool)
	for _, series := range result.Exercises {
		for _, pt := range series {
			dateSet[pt.Date] = true
		}
	}
	dates := make([]models.Date, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for _, d := range dates {
		defined := make(map[string]float64)
		for name, series := range result.Exercises {
			// Series are sorted; binary search for the date.
			idx := sort.Search(len(series), func(i int) bool {
				return !series[i].Date.Before(d)
			})
			if idx < len(series) && series[idx].Date == d {
				defined[name] = series[idx].Score
			}
		}
		for muscle, s := range MuscleScores(defined, p.Muscles) {
			result.Muscles[muscle] = append(result.Muscles[muscle], DatedScore{Date: d, Score: s})
		}
	}
}

// Latest returns the last point of a series, if any.
func Latest(series []DatedScore) (DatedScore, bool) {
	if len(series) == 0 {
		return DatedScore{}, false
	}
	return series[len(series)-1], true
}
