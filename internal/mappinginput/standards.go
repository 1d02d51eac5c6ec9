// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mappinginput

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// CSVLoader loads achievement standards from per-subject CSV files
// named <subject>.csv with at minimum code, description, and domain
// columns and a header row.
type CSVLoader struct {
	// Dir is the directory holding the per-subject files.
	Dir string
}

// Load reads the standards file for one subject. A missing or
// malformed file is a fatal configuration error for that subject;
// callers decide whether other subjects proceed.
func (l CSVLoader) Load(subject string) ([]types.AchievementStandard, error) {
	path := filepath.Join(l.Dir, subject+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening standards file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading standards header %s: %w", path, err)
	}

	cols, err := standardColumns(header)
	if err != nil {
		return nil, fmt.Errorf("standards file %s: %w", path, err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading standards rows %s: %w", path, err)
	}

	var standards []types.AchievementStandard
	for _, row := range rows {
		s := types.AchievementStandard{
			Code:        field(row, cols.code),
			Description: field(row, cols.description),
			Domain:      field(row, cols.domain),
			Subject:     subject,
		}
		if s.Code == "" {
			continue
		}
		standards = append(standards, s)
	}
	return standards, nil
}

// columnIndexes locates the required columns within a header row.
type columnIndexes struct {
	code, description, domain int
}

func standardColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{code: -1, description: -1, domain: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "code":
			cols.code = i
		case "description":
			cols.description = i
		case "domain":
			cols.domain = i
		}
	}
	if cols.code < 0 || cols.description < 0 || cols.domain < 0 {
		return cols, fmt.Errorf("header must contain code, description, and domain columns, got %v", header)
	}
	return cols, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
