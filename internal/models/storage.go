package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRow is a row ready for insertion into the workout_sessions table.
type SessionRow struct {
	ID         uuid.UUID `json:"id"`
	UserID     int       `json:"user_id"`
	Date       Date      `json:"date"`
	RawSHA256  string    `json:"-"`
	ImportedAt time.Time `json:"imported_at"`
}

// SetRow is a row ready for insertion into the workout_sets table.
type SetRow struct {
	SessionID    uuid.UUID `json:"session_id"`
	UserID       int       `json:"user_id"`
	Date         Date      `json:"date"`
	ExerciseName string    `json:"exercise_name"`
	SetNumber    int       `json:"set_number"`
	Reps         int       `json:"reps"`
	WeightKg     float64   `json:"weight_kg"`
}
