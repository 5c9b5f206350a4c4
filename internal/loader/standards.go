package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/meltforce/liftscore/internal/models"
	"github.com/meltforce/liftscore/internal/score"
)

// Required columns of the standards CSV. Extra columns (e.g. source
// attribution) are tolerated and ignored.
var standardsColumns = []string{"exercise", "sex", "beginner", "novice", "intermediate", "advanced", "elite"}

// LoadStandards reads the strength standards CSV into a score.Table. Each row
// holds an exercise, a sex, and the five bodyweight multipliers for the
// beginner..elite thresholds.
func LoadStandards(r io.Reader) (*score.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading standards header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range standardsColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("standards CSV missing column %q", name)
		}
	}

	table := score.NewTable()
	rowNo := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading standards row %d: %w", rowNo+1, err)
		}
		rowNo++

		exercise := record[col["exercise"]]
		sex, err := models.ParseSex(record[col["sex"]])
		if err != nil {
			return nil, fmt.Errorf("standards row %d: %w", rowNo, err)
		}

		multipliers := make([]float64, 5)
		for i, level := range []string{"beginner", "novice", "intermediate", "advanced", "elite"} {
			v, err := strconv.ParseFloat(record[col[level]], 64)
			if err != nil {
				return nil, fmt.Errorf("standards row %d: parsing %s: %w", rowNo, level, err)
			}
			multipliers[i] = v
		}

		levels := score.StandardLevels(multipliers[0], multipliers[1], multipliers[2], multipliers[3], multipliers[4])
		if err := table.Add(exercise, sex, levels); err != nil {
			return nil, fmt.Errorf("standards row %d: %w", rowNo, err)
		}
	}
	return table, nil
}

// LoadStandardsFile reads the standards CSV from disk.
func LoadStandardsFile(path string) (*score.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening standards file: %w", err)
	}
	defer f.Close()
	return LoadStandards(f)
}
