// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// LoadMappingsCSV reads an externally produced mapping relation from
// a CSV file with an item_id, standard_code, confidence, reasoning
// header. Confidence must parse and lie in [0, 1]; the relation is
// the verifier's input of record, so a malformed row is fatal.
func LoadMappingsCSV(path string) ([]types.MappingPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mappings file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading mappings header %s: %w", path, err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"item_id", "standard_code", "confidence"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("mappings file %s: missing column %q", path, required)
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mappings rows %s: %w", path, err)
	}

	var pairs []types.MappingPair
	for i, row := range rows {
		confidence, err := strconv.ParseFloat(field(row, cols["confidence"]), 64)
		if err != nil {
			return nil, fmt.Errorf("mappings file %s row %d: bad confidence: %w", path, i+2, err)
		}
		if confidence < 0 || confidence > 1 {
			return nil, fmt.Errorf("mappings file %s row %d: confidence %v out of range [0,1]", path, i+2, confidence)
		}
		pair := types.MappingPair{
			ItemID:       field(row, cols["item_id"]),
			StandardCode: field(row, cols["standard_code"]),
			Confidence:   confidence,
		}
		if j, ok := cols["reasoning"]; ok {
			pair.Reasoning = field(row, j)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
