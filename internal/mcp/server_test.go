package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/meltforce/liftscore/internal/models"
	"github.com/meltforce/liftscore/internal/score"
	"github.com/meltforce/liftscore/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

type stubDataSource struct {
	workouts []models.Workout
}

func (s *stubDataSource) LoadWorkouts(ctx context.Context, userID int) ([]models.Workout, error) {
	return s.workouts, nil
}

func (s *stubDataSource) QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]storage.SessionSummary, error) {
	var out []storage.SessionSummary
	for _, w := range s.workouts {
		out = append(out, storage.SessionSummary{Date: w.Date, Exercises: w.Exercises})
	}
	return out, nil
}

func testHandlers(t *testing.T, workouts []models.Workout) *handlers {
	t.Helper()
	table := score.NewTable()
	levels := score.StandardLevels(0.5, 0.75, 1.0, 1.5, 2.0)
	if err := table.Add("squat", models.Male, levels); err != nil {
		t.Fatal(err)
	}
	est, err := score.NewEstimator("mayhew")
	if err != nil {
		t.Fatal(err)
	}
	pipeline := &score.Pipeline{
		Table:      table,
		Muscles:    score.MuscleMap{"squat": {"quads": 1.0}},
		Profile:    models.Profile{Sex: models.Male, WeightKg: 80},
		Estimator:  est,
		WindowDays: 7,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &handlers{ds: &stubDataSource{workouts: workouts}, pipeline: pipeline, log: log}
}

func sampleWorkouts(t *testing.T) []models.Workout {
	t.Helper()
	d, err := models.ParseDate("2025-01-01")
	if err != nil {
		t.Fatal(err)
	}
	return []models.Workout{{
		Date: d,
		Exercises: []models.ExerciseEntry{
			{Name: "squat", Sets: []models.Set{{Reps: 5, WeightKg: 100}}},
		},
	}}
}

// TestGetStrengthSummary verifies the summary tool returns the latest score
// and level per muscle as JSON text content.
func TestGetStrengthSummary(t *testing.T) {
	h := testHandlers(t, sampleWorkouts(t))
	res, err := h.getStrengthSummary(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}

	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", res.Content[0])
	}
	var payload struct {
		Muscles map[string]struct {
			Date  string  `json:"date"`
			Score float64 `json:"score"`
			Level string  `json:"level"`
		} `json:"muscles"`
	}
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatal(err)
	}
	quads, ok := payload.Muscles["quads"]
	if !ok {
		t.Fatalf("payload missing quads: %s", text.Text)
	}
	if quads.Level != score.LevelName(quads.Score) {
		t.Errorf("level %q does not match score %v", quads.Level, quads.Score)
	}
	if quads.Date != "2025-01-07" {
		t.Errorf("date = %s, want end of rolling plateau 2025-01-07", quads.Date)
	}
}

// TestListExercises verifies the listing tool reflects the standards table.
func TestListExercises(t *testing.T) {
	h := testHandlers(t, nil)
	res, err := h.listExercises(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	text := res.Content[0].(mcp.TextContent)
	var names []string
	if err := json.Unmarshal([]byte(text.Text), &names); err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "squat" {
		t.Errorf("exercises = %v", names)
	}
}

// TestStrengthSummaryResource verifies the resource handler returns the same
// summary payload as JSON resource contents.
func TestStrengthSummaryResource(t *testing.T) {
	h := testHandlers(t, sampleWorkouts(t))
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "liftscore://strength_summary"
	contents, err := h.strengthSummary(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T", contents[0])
	}
	if tc.MIMEType != "application/json" || tc.URI != "liftscore://strength_summary" {
		t.Errorf("resource metadata wrong: %+v", tc)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(tc.Text), &payload); err != nil {
		t.Fatal(err)
	}
	if _, ok := payload["muscles"]; !ok {
		t.Errorf("payload missing muscles: %s", tc.Text)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 90 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty: last 90 days.
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 2159 || diff.Hours() > 2161 { // ~2160 hours = 90 days
		t.Errorf("default range = %.0f hours, want ~2160", diff.Hours())
	}

	// Explicit dates; end is pushed to the end of its day.
	start, end, err = defaultTimeRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Month() != 2 || end.Day() != 1 {
		t.Errorf("end = %v, want start of 2024-02-01", end)
	}

	// Invalid
	if _, _, err = defaultTimeRange("not-a-date", ""); err == nil {
		t.Error("expected error for invalid date")
	}
}
