// Package importer loads JSONL workout exports into the session store.
// Imports are idempotent at two levels: a local SQLite state DB skips files
// already seen (by size and hash), and each session line carries its own
// content hash so re-inserts are deduplicated by the store.
package importer

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/meltforce/liftscore/internal/loader"
	"github.com/meltforce/liftscore/internal/models"
	"github.com/google/uuid"
)

// SessionStore is the subset of the storage layer the importer writes to.
type SessionStore interface {
	InsertSession(ctx context.Context, row models.SessionRow) (bool, error)
	InsertSets(ctx context.Context, rows []models.SetRow) (int64, error)
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed     int
	FilesSkipped       int
	SessionsInserted   int
	SessionsDuplicated int
	SetsInserted       int64

	Malformed []string
}

// Importer reads .jsonl workout logs and inserts sessions into the store.
type Importer struct {
	store  SessionStore
	state  *StateDB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed (useful for one-shot imports and tests).
func New(store SessionStore, state *StateDB, userID int, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{store: store, state: state, log: log, userID: userID, dryRun: dryRun}
}

// Import processes the given path: a single .jsonl file, or a directory
// walked recursively for .jsonl files.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return &imp.stats, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if err := imp.importFile(ctx, path, filepath.Base(path)); err != nil {
			return &imp.stats, err
		}
		return &imp.stats, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".jsonl") {
			return nil
		}
		rel, relErr := filepath.Rel(path, p)
		if relErr != nil {
			rel = p
		}
		return imp.importFile(ctx, p, rel)
	})
	return &imp.stats, err
}

// importFile imports one JSONL log file, consulting the state DB first.
func (imp *Importer) importFile(ctx context.Context, path, relPath string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}

	if imp.state != nil {
		done, err := imp.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state for %s: %w", relPath, err)
		}
		if done {
			imp.stats.FilesSkipped++
			imp.log.Info("skipping file (already imported)", "file", relPath)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		w, err := loader.ParseWorkout(line)
		if err != nil {
			imp.stats.Malformed = append(imp.stats.Malformed,
				fmt.Sprintf("%s:%d: %v", relPath, lineNo, err))
			continue
		}
		if imp.dryRun {
			imp.stats.SessionsInserted++
			continue
		}
		inserted, sets, err := InsertWorkout(ctx, imp.store, imp.userID, w, line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", relPath, lineNo, err)
		}
		if inserted {
			imp.stats.SessionsInserted++
			imp.stats.SetsInserted += sets
		} else {
			imp.stats.SessionsDuplicated++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	imp.stats.FilesProcessed++
	if imp.state != nil && !imp.dryRun {
		if err := imp.state.MarkImported(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("marking %s imported: %w", relPath, err)
		}
	}
	return nil
}

// InsertWorkout stores one parsed session and its sets. The raw log line is
// hashed so identical sessions dedupe on conflict; a date is shared by
// multiple distinct sessions without collision. Returns whether the session
// was newly inserted and how many set rows went in.
func InsertWorkout(ctx context.Context, store SessionStore, userID int, w models.Workout, raw []byte) (bool, int64, error) {
	sum := sha256.Sum256(raw)
	row := models.SessionRow{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      w.Date,
		RawSHA256: hex.EncodeToString(sum[:]),
	}
	inserted, err := store.InsertSession(ctx, row)
	if err != nil {
		return false, 0, err
	}
	if !inserted {
		return false, 0, nil
	}

	var sets []models.SetRow
	for _, entry := range w.Exercises {
		for i, set := range entry.Sets {
			sets = append(sets, models.SetRow{
				SessionID:    row.ID,
				UserID:       userID,
				Date:         w.Date,
				ExerciseName: entry.Name,
				SetNumber:    i + 1,
				Reps:         set.Reps,
				WeightKg:     set.WeightKg,
			})
		}
	}
	n, err := store.InsertSets(ctx, sets)
	if err != nil {
		return true, 0, err
	}
	return true, n, nil
}
