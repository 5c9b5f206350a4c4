package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/meltforce/liftscore/internal/score"
)

// LoadMuscleMap reads the muscle map JSON (exercise -> muscle -> contribution
// weight). Weights outside (0,1] are a data-authoring error and fail the load.
func LoadMuscleMap(r io.Reader) (score.MuscleMap, error) {
	var m score.MuscleMap
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing muscle map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadMuscleMapFile reads the muscle map JSON from disk.
func LoadMuscleMapFile(path string) (score.MuscleMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening muscle map: %w", err)
	}
	defer f.Close()
	return LoadMuscleMap(f)
}
