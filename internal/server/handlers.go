package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/meltforce/liftscore/internal/importer"
	"github.com/meltforce/liftscore/internal/loader"
	"github.com/meltforce/liftscore/internal/score"
)

// defaultUserID scopes all data in the single-user deployment.
const defaultUserID = 1

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	scanner := bufio.NewScanner(r.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	inserted, duplicated := 0, 0
	var malformed []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		workout, err := loader.ParseWorkout(line)
		if err != nil {
			malformed = append(malformed, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}
		ok, _, err := importer.InsertWorkout(r.Context(), s.ds, defaultUserID, workout, line)
		if err != nil {
			s.log.Error("ingest error", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if ok {
			inserted++
		} else {
			duplicated++
		}
	}
	if err := scanner.Err(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessions_inserted":   inserted,
		"sessions_duplicated": duplicated,
		"malformed":           malformed,
	})
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions, err := s.ds.QuerySessions(r.Context(), start, end, defaultUserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pipeline.Table.Exercises())
}

func (s *Server) handleExerciseScores(w http.ResponseWriter, r *http.Request) {
	result, report, err := s.runPipeline(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	series := result.Exercises
	if name := r.URL.Query().Get("exercise"); name != "" {
		filtered, ok := series[name]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scores for exercise " + name})
			return
		}
		series = map[string][]score.DatedScore{name: filtered}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"series": series,
		"errors": reportPayload(report),
	})
}

func (s *Server) handleMuscleScores(w http.ResponseWriter, r *http.Request) {
	result, report, err := s.runPipeline(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	series := result.Muscles
	if name := r.URL.Query().Get("muscle"); name != "" {
		filtered, ok := series[name]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scores for muscle " + name})
			return
		}
		series = map[string][]score.DatedScore{name: filtered}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"series": series,
		"errors": reportPayload(report),
	})
}

// MuscleSummary is the latest defined score for one muscle, with its level
// name for threshold-based coloring.
type MuscleSummary struct {
	Muscle string  `json:"muscle"`
	Date   string  `json:"date"`
	Score  float64 `json:"score"`
	Level  string  `json:"level"`
}

func (s *Server) handleScoreSummary(w http.ResponseWriter, r *http.Request) {
	result, report, err := s.runPipeline(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	summaries := make([]MuscleSummary, 0, len(result.Muscles))
	for _, muscle := range s.pipeline.Muscles.Muscles() {
		pt, ok := score.Latest(result.Muscles[muscle])
		if !ok {
			continue
		}
		summaries = append(summaries, MuscleSummary{
			Muscle: muscle,
			Date:   pt.Date.String(),
			Score:  pt.Score,
			Level:  score.LevelName(pt.Score),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"muscles": summaries,
		"errors":  reportPayload(report),
	})
}

// runPipeline loads the stored log and recomputes all score series.
func (s *Server) runPipeline(r *http.Request) (*score.Result, *score.Report, error) {
	workouts, err := s.ds.LoadWorkouts(r.Context(), defaultUserID)
	if err != nil {
		return nil, nil, err
	}
	result, report := s.pipeline.Run(workouts)
	return result, report, nil
}

// reportPayload shapes a run report for JSON responses. Per-record errors are
// surfaced to the caller rather than silently dropped.
func reportPayload(report *score.Report) map[string]any {
	invalid := make([]string, 0, len(report.InvalidSets))
	for i := range report.InvalidSets {
		invalid = append(invalid, report.InvalidSets[i].Error())
	}
	unknown := make([]string, 0, len(report.UnknownExercises))
	for i := range report.UnknownExercises {
		unknown = append(unknown, report.UnknownExercises[i].Error())
	}
	return map[string]any{
		"invalid_sets":      invalid,
		"unknown_exercises": unknown,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads the start/end query params as calendar dates. Either
// bound may be given alone: a missing end defaults to now, a missing start to
// 90 days before the end.
func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// End of day for date-only
		end = end.Add(24 * time.Hour)
	}

	if startStr == "" {
		start = end.AddDate(0, 0, -90)
	} else {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return
}
