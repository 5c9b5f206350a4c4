package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/liftscore/internal/models"
	"github.com/google/uuid"
)

// InsertSession inserts a workout session row. Returns true if inserted,
// false if an identical session (same user, same raw hash) already exists.
func (db *DB) InsertSession(ctx context.Context, row models.SessionRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, session_date, raw_sha256)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, raw_sha256) DO NOTHING`,
		row.ID, row.UserID, row.Date.Time(), row.RawSHA256)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertSets batch-inserts workout set rows. Returns count inserted.
func (db *DB) InsertSets(ctx context.Context, rows []models.SetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO workout_sets (session_id, user_id, session_date, exercise_name, set_number, reps, weight_kg) VALUES `
	args := make([]any, 0, len(rows)*7)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, r.SessionID, r.UserID, r.Date.Time(), r.ExerciseName, r.SetNumber, r.Reps, r.WeightKg)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting workout sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SessionSummary is a stored session with its sets, as served by the API.
type SessionSummary struct {
	ID        uuid.UUID              `json:"id"`
	Date      models.Date            `json:"date"`
	Exercises []models.ExerciseEntry `json:"exercises"`
}

// QuerySessions retrieves stored sessions with their sets in a date range,
// ascending by date.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]SessionSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.session_date, t.exercise_name, t.set_number, t.reps, t.weight_kg
		 FROM workout_sessions s
		 JOIN workout_sets t ON t.session_id = s.id
		 WHERE s.user_id = $1 AND s.session_date >= $2 AND s.session_date < $3
		 ORDER BY s.session_date ASC, s.id, t.exercise_name, t.set_number`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []SessionSummary
	var current *SessionSummary
	for rows.Next() {
		var (
			id       uuid.UUID
			date     time.Time
			exercise string
			setNum   int
			reps     int
			weight   float64
		)
		if err := rows.Scan(&id, &date, &exercise, &setNum, &reps, &weight); err != nil {
			return nil, fmt.Errorf("scanning session set: %w", err)
		}
		if current == nil || current.ID != id {
			result = append(result, SessionSummary{ID: id, Date: models.DateOf(date)})
			current = &result[len(result)-1]
		}
		n := len(current.Exercises)
		if n == 0 || current.Exercises[n-1].Name != exercise {
			current.Exercises = append(current.Exercises, models.ExerciseEntry{Name: exercise})
			n++
		}
		current.Exercises[n-1].Sets = append(current.Exercises[n-1].Sets,
			models.Set{Reps: reps, WeightKg: weight})
	}
	return result, rows.Err()
}

// LoadWorkouts reads the full stored log for a user as core workout values,
// ascending by date. This is the input to the scoring pipeline; scores are
// always recomputed from here, never persisted.
func (db *DB) LoadWorkouts(ctx context.Context, userID int) ([]models.Workout, error) {
	sessions, err := db.QuerySessions(ctx, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC), userID)
	if err != nil {
		return nil, err
	}
	workouts := make([]models.Workout, 0, len(sessions))
	for _, s := range sessions {
		workouts = append(workouts, models.Workout{Date: s.Date, Exercises: s.Exercises})
	}
	return workouts, nil
}
