// Package mcp exposes the scoring pipeline and the stored workout log to MCP
// clients as tools and resources.
package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/meltforce/liftscore/internal/models"
	"github.com/meltforce/liftscore/internal/score"
	"github.com/meltforce/liftscore/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DataSource abstracts the data layer for MCP tools. *storage.DB satisfies it.
type DataSource interface {
	LoadWorkouts(ctx context.Context, userID int) ([]models.Workout, error)
	QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]storage.SessionSummary, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, pipeline *score.Pipeline, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftscore", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftscore strength tracking server. Query per-exercise and per-muscle strength scores (0-500 scale, normalized against population strength standards) and the raw workout log."),
	)

	h := &handlers{ds: ds, pipeline: pipeline, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetMuscleScores, Handler: h.getMuscleScores},
		server.ServerTool{Tool: toolGetExerciseScores, Handler: h.getExerciseScores},
		server.ServerTool{Tool: toolGetStrengthSummary, Handler: h.getStrengthSummary},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	s.AddResources(
		server.ServerResource{Resource: resStrengthSummary, Handler: h.strengthSummary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds       DataSource
	pipeline *score.Pipeline
	log      *slog.Logger
}

var resStrengthSummary = mcp.NewResource(
	"liftscore://strength_summary",
	"Strength Summary",
	mcp.WithResourceDescription("Latest strength score and level per muscle, composed from the full workout log"),
	mcp.WithMIMEType("application/json"),
)
