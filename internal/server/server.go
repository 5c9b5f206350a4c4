package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/meltforce/liftscore/internal/models"
	"github.com/meltforce/liftscore/internal/score"
	"github.com/meltforce/liftscore/internal/storage"
	"github.com/go-chi/chi/v5"
)

// DataSource is the storage surface the handlers depend on. *storage.DB
// satisfies it; tests substitute a stub.
type DataSource interface {
	LoadWorkouts(ctx context.Context, userID int) ([]models.Workout, error)
	QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]storage.SessionSummary, error)
	InsertSession(ctx context.Context, row models.SessionRow) (bool, error)
	InsertSets(ctx context.Context, rows []models.SetRow) (int64, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers. Score series are recomputed
// from the stored log on each request; they are derived data and are never
// persisted.
type Server struct {
	ds       DataSource
	pipeline *score.Pipeline
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(ds DataSource, pipeline *score.Pipeline, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		ds:       ds,
		pipeline: pipeline,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Ingest endpoint (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleIngest)
	})

	// Score and log API (no auth; tsnet handles access when enabled)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/scores/exercises", s.handleExerciseScores)
	s.router.Get("/api/v1/scores/muscles", s.handleMuscleScores)
	s.router.Get("/api/v1/scores/summary", s.handleScoreSummary)
}

// MountMCP attaches the MCP transport handler at /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}
