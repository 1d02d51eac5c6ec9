// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy extracts the hierarchical subject-classification
// taxonomy from raw tagged records and folds it into a tree view.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// Record is one raw tagged item as the extractor sees it. Any
// iterable of records exposing tag-attribute lookup satisfies it.
type Record interface {
	Attr(name string) (string, bool)
}

// Extractor scans raw records into a sorted, deduplicated taxonomy.
type Extractor struct {
	cfg types.ScanConfig
}

// NewExtractor returns an Extractor with the given scan settings.
func NewExtractor(cfg types.ScanConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract reads up to 12 classification levels per record, filters by
// the curriculum-version prefix, deduplicates by the full level tuple
// (first occurrence wins), and sorts the result lexicographically,
// which yields hierarchy order.
func (e *Extractor) Extract(records []Record) ([]types.ClassificationRecord, types.ScanCounters) {
	var (
		counters types.ScanCounters
		out      []types.ClassificationRecord
		seen     = make(map[string]bool)
	)

	for _, rec := range records {
		counters.Scanned++

		cr, ok := extractRecord(rec, e.cfg.CurriculumPrefix)
		if !ok {
			continue
		}
		counters.Matched++

		key := cr.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cr)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	counters.Unique = len(out)

	return out, counters
}

// extractRecord reads the 12 level attributes of one raw record.
// The literal value "0" and the empty string both mean "absent";
// levels terminate at the first absent field, so anything populated
// after a gap is dropped. Returns false if level 1 fails the
// curriculum-version filter.
func extractRecord(rec Record, curriculumPrefix string) (types.ClassificationRecord, bool) {
	var cr types.ClassificationRecord

	for i := 0; i < types.NumLevels; i++ {
		v, ok := rec.Attr(levelAttr(i))
		if !ok {
			break
		}
		v = strings.TrimSpace(v)
		if v == "" || v == "0" {
			break
		}
		cr.Levels[i] = v
	}

	version := cr.Levels[types.LevelCurriculum]
	if version == "" || !strings.HasPrefix(version, curriculumPrefix) {
		return types.ClassificationRecord{}, false
	}
	return cr, true
}

// levelAttr returns the tag-attribute name for the zero-based level
// index: Cls01 through Cls12.
func levelAttr(i int) string {
	return fmt.Sprintf("Cls%02d", i+1)
}
