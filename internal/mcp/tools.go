package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/meltforce/liftscore/internal/score"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultUserID scopes all data in the single-user deployment.
const defaultUserID = 1

// --- Tool definitions ---

var toolGetMuscleScores = mcp.NewTool("get_muscle_scores",
	mcp.WithDescription("Per-muscle strength score time series (0-500 scale). Each muscle's score is the contribution-weighted average of its exercises' 7-day rolling scores; dates without data are absent, not zero."),
	mcp.WithString("muscle", mcp.Description("Filter to one muscle (canonical name, e.g. 'chest', 'quadriceps')")),
)

var toolGetExerciseScores = mcp.NewTool("get_exercise_scores",
	mcp.WithDescription("Per-exercise strength score time series (0-500 scale), smoothed with a trailing 7-day maximum."),
	mcp.WithString("exercise", mcp.Description("Filter to one exercise (e.g. 'bench press')")),
)

var toolGetStrengthSummary = mcp.NewTool("get_strength_summary",
	mcp.WithDescription("Latest strength score and level name (beginner/novice/intermediate/advanced/elite) per muscle, plus any data errors from the scoring run."),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query the raw workout log: sessions with exercises and their [reps, weight_kg] sets."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to now.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all exercises covered by the strength standards table."),
)

// --- Tool handlers ---

// run recomputes all score series from the stored log.
func (h *handlers) run(ctx context.Context) (*score.Result, *score.Report, error) {
	workouts, err := h.ds.LoadWorkouts(ctx, defaultUserID)
	if err != nil {
		return nil, nil, err
	}
	result, report := h.pipeline.Run(workouts)
	return result, report, nil
}

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

func (h *handlers) getMuscleScores(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, report, err := h.run(ctx)
	if err != nil {
		h.log.Error("mcp get_muscle_scores", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	series := result.Muscles
	if muscle := req.GetString("muscle", ""); muscle != "" {
		filtered, ok := series[muscle]
		if !ok {
			return mcp.NewToolResultError("no scores for muscle " + muscle), nil
		}
		series = map[string][]score.DatedScore{muscle: filtered}
	}

	out, err := mcp.NewToolResultJSON(map[string]any{
		"series": series,
		"errors": reportPayload(report),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) getExerciseScores(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, report, err := h.run(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_scores", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	series := result.Exercises
	if exercise := req.GetString("exercise", ""); exercise != "" {
		filtered, ok := series[exercise]
		if !ok {
			return mcp.NewToolResultError("no scores for exercise " + exercise), nil
		}
		series = map[string][]score.DatedScore{exercise: filtered}
	}

	out, err := mcp.NewToolResultJSON(map[string]any{
		"series": series,
		"errors": reportPayload(report),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

// summary builds the latest score and level per muscle.
func (h *handlers) summary(ctx context.Context) (map[string]any, error) {
	result, report, err := h.run(ctx)
	if err != nil {
		return nil, err
	}

	muscles := make(map[string]any)
	for _, muscle := range h.pipeline.Muscles.Muscles() {
		pt, ok := score.Latest(result.Muscles[muscle])
		if !ok {
			continue
		}
		muscles[muscle] = map[string]any{
			"date":  pt.Date.String(),
			"score": pt.Score,
			"level": score.LevelName(pt.Score),
		}
	}
	return map[string]any{
		"muscles": muscles,
		"errors":  reportPayload(report),
	}, nil
}

func (h *handlers) getStrengthSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := h.summary(ctx)
	if err != nil {
		h.log.Error("mcp get_strength_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	sessions, err := h.ds.QuerySessions(ctx, start, end, defaultUserID)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := mcp.NewToolResultJSON(h.pipeline.Table.Exercises())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

// --- Resource handlers ---

func (h *handlers) strengthSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := h.summary(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// defaultTimeRange returns start/end defaulting to the last 90 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = end.Add(24 * time.Hour)
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -90)
	}

	return start, end, nil
}
