// liftscore-report runs the scoring pipeline straight over the log files,
// with no database involved, and prints a per-muscle strength report or
// exports the full score series for charting.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/meltforce/liftscore/internal/loader"
	"github.com/meltforce/liftscore/internal/models"
	"github.com/meltforce/liftscore/internal/score"
)

// ANSI colors for the terminal report, one per strength level.
const (
	purple = "\033[95m"
	blue   = "\033[94m"
	green  = "\033[92m"
	yellow = "\033[93m"
	red    = "\033[91m"
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
)

func main() {
	workoutsPath := flag.String("workouts", "workouts.jsonl", "workout log (JSONL, one session per line)")
	standardsPath := flag.String("standards", "standards.csv", "strength standards CSV")
	musclesPath := flag.String("muscles", "muscle_map.json", "muscle map JSON")
	sexFlag := flag.String("sex", "", "sex for standards lookup: male or female (required)")
	weightKg := flag.Float64("weight", 0, "bodyweight in kg (required)")
	formula := flag.String("formula", score.DefaultFormula, "e1RM formula identifier")
	window := flag.Int("window", score.DefaultWindowDays, "rolling window in days")
	format := flag.String("format", "text", "output format: text, json, or csv")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	sex, err := models.ParseSex(*sexFlag)
	if err != nil {
		log.Error("invalid -sex", "error", err)
		os.Exit(1)
	}
	profile := models.Profile{Sex: sex, WeightKg: *weightKg}
	if err := profile.Validate(); err != nil {
		log.Error("invalid profile", "error", err)
		os.Exit(1)
	}
	estimator, err := score.NewEstimator(*formula)
	if err != nil {
		log.Error("invalid -formula", "error", err)
		os.Exit(1)
	}

	table, err := loader.LoadStandardsFile(*standardsPath)
	if err != nil {
		log.Error("failed to load standards", "error", err)
		os.Exit(1)
	}
	muscles, err := loader.LoadMuscleMapFile(*musclesPath)
	if err != nil {
		log.Error("failed to load muscle map", "error", err)
		os.Exit(1)
	}
	workouts, malformed, err := loader.LoadWorkoutsFile(*workoutsPath)
	if err != nil {
		log.Error("failed to load workouts", "error", err)
		os.Exit(1)
	}
	for i := range malformed {
		log.Warn("skipping malformed log entry", "error", malformed[i].Error())
	}

	pipeline := &score.Pipeline{
		Table:      table,
		Muscles:    muscles,
		Profile:    profile,
		Estimator:  estimator,
		WindowDays: *window,
	}
	result, report := pipeline.Run(workouts)

	for i := range report.InvalidSets {
		log.Warn("excluded invalid set", "error", report.InvalidSets[i].Error())
	}
	for i := range report.UnknownExercises {
		log.Warn("unmapped exercise", "error", report.UnknownExercises[i].Error())
	}

	switch *format {
	case "text":
		printReport(result, profile, estimator.Name())
	case "json":
		if err := json.NewEncoder(os.Stdout).Encode(map[string]any{
			"exercises": result.Exercises,
			"muscles":   result.Muscles,
		}); err != nil {
			log.Error("encoding json", "error", err)
			os.Exit(1)
		}
	case "csv":
		if err := writeCSV(os.Stdout, result); err != nil {
			log.Error("writing csv", "error", err)
			os.Exit(1)
		}
	default:
		log.Error("unknown format", "format", *format)
		os.Exit(1)
	}
}

// printReport writes the colored per-muscle table, strongest first.
func printReport(result *score.Result, profile models.Profile, formula string) {
	type row struct {
		muscle string
		point  score.DatedScore
	}
	var rows []row
	for muscle, series := range result.Muscles {
		if pt, ok := score.Latest(series); ok {
			rows = append(rows, row{muscle: muscle, point: pt})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].point.Score != rows[j].point.Score {
			return rows[i].point.Score > rows[j].point.Score
		}
		return rows[i].muscle < rows[j].muscle
	})

	fmt.Printf("\n%sMuscle Group Strength%s\n", bold, reset)
	fmt.Println("==================================================")
	fmt.Printf("%-20s %8s %-12s %s\n", "Muscle", "Score", "Level", "As of")
	fmt.Println("--------------------------------------------------")
	for _, r := range rows {
		color := scoreColor(r.point.Score)
		fmt.Printf("%s%-20s %8.0f %-12s %s%s\n",
			color, r.muscle, r.point.Score, score.LevelName(r.point.Score), r.point.Date, reset)
	}
	fmt.Println()
	fmt.Printf("%s* Elite 500%s  %s* Advanced 400%s  %s* Intermediate 300%s  %s* Novice 200%s  %s* Beginner 100%s\n",
		purple, reset, blue, reset, green, reset, yellow, reset, red, reset)
	fmt.Println()
	fmt.Printf("%sStandards for %.0fkg %s\n", dim, profile.WeightKg, profile.Sex)
	fmt.Printf("e1RM estimated using %s formula\n", formula)
	fmt.Printf("Muscle score = weighted average of contributing exercises%s\n", reset)
}

func scoreColor(s float64) string {
	switch {
	case s >= 500:
		return purple
	case s >= 400:
		return blue
	case s >= 300:
		return green
	case s >= 200:
		return yellow
	default:
		return red
	}
}

// writeCSV exports the muscle series in wide form: one row per date, one
// column per muscle, empty cells where a muscle has no defined score.
func writeCSV(out *os.File, result *score.Result) error {
	muscles := make([]string, 0, len(result.Muscles))
	for muscle := range result.Muscles {
		muscles = append(muscles, muscle)
	}
	sort.Strings(muscles)

	byDate := make(map[models.Date]map[string]float64)
	for muscle, series := range result.Muscles {
		for _, pt := range series {
			if byDate[pt.Date] == nil {
				byDate[pt.Date] = make(map[string]float64)
			}
			byDate[pt.Date][muscle] = pt.Score
		}
	}
	dates := make([]models.Date, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	w := csv.NewWriter(out)
	if err := w.Write(append([]string{"date"}, muscles...)); err != nil {
		return err
	}
	for _, d := range dates {
		record := make([]string, 0, len(muscles)+1)
		record = append(record, d.String())
		for _, muscle := range muscles {
			if s, ok := byDate[d][muscle]; ok {
				record = append(record, strconv.FormatFloat(s, 'f', 1, 64))
			} else {
				record = append(record, "")
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
