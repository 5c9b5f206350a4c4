// Package loader reads the external workout log, strength standards, and
// muscle map sources into the core's in-memory structures. All file format
// concerns live here; the scoring core never touches I/O.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/meltforce/liftscore/internal/models"
)

// MalformedLogEntryError reports a workout log line that failed shape
// validation. The line is skipped; processing continues for the rest of
// the log.
type MalformedLogEntryError struct {
	Line   int
	Reason string
}

func (e *MalformedLogEntryError) Error() string {
	return fmt.Sprintf("workout log line %d: %s", e.Line, e.Reason)
}

// workoutWire is the JSONL shape of one logged session.
type workoutWire struct {
	Date      *string `json:"date"`
	Exercises []struct {
		Name string        `json:"name"`
		Sets *[]models.Set `json:"sets"`
	} `json:"exercises"`
}

// ParseWorkout parses and validates a single workout log line.
func ParseWorkout(line []byte) (models.Workout, error) {
	var wire workoutWire
	if err := json.Unmarshal(line, &wire); err != nil {
		return models.Workout{}, fmt.Errorf("invalid JSON: %v", err)
	}
	if wire.Date == nil {
		return models.Workout{}, fmt.Errorf("missing date")
	}
	date, err := models.ParseDate(*wire.Date)
	if err != nil {
		return models.Workout{}, err
	}

	w := models.Workout{Date: date}
	for _, ex := range wire.Exercises {
		if ex.Name == "" {
			return models.Workout{}, fmt.Errorf("exercise with missing name")
		}
		if ex.Sets == nil {
			return models.Workout{}, fmt.Errorf("exercise %q has no sets list", ex.Name)
		}
		w.Exercises = append(w.Exercises, models.ExerciseEntry{Name: ex.Name, Sets: *ex.Sets})
	}
	return w, nil
}

// LoadWorkouts reads a JSONL workout log (one session per line, blank lines
// ignored). Malformed lines are collected and reported alongside the parsed
// workouts; no single bad record aborts the load.
func LoadWorkouts(r io.Reader) ([]models.Workout, []MalformedLogEntryError, error) {
	var workouts []models.Workout
	var malformed []MalformedLogEntryError

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		w, err := ParseWorkout(line)
		if err != nil {
			malformed = append(malformed, MalformedLogEntryError{Line: lineNo, Reason: err.Error()})
			continue
		}
		workouts = append(workouts, w)
	}
	if err := scanner.Err(); err != nil {
		return workouts, malformed, fmt.Errorf("reading workout log: %w", err)
	}
	return workouts, malformed, nil
}

// LoadWorkoutsFile reads a JSONL workout log from disk.
func LoadWorkoutsFile(path string) ([]models.Workout, []MalformedLogEntryError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workout log: %w", err)
	}
	defer f.Close()
	return LoadWorkouts(f)
}
