// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// NumLevels is the number of classification levels carried by a record:
// curriculum version, school stage, grade, subject code, subject detail,
// term, and six unit/chapter/section levels from coarse to fine.
const NumLevels = 12

// Zero-based indices into ClassificationRecord.Levels.
const (
	LevelCurriculum    = 0
	LevelSchoolStage   = 1
	LevelGrade         = 2
	LevelSubjectCode   = 3
	LevelSubjectDetail = 4
	LevelTerm          = 5
	LevelUnitStart     = 6
)

// keySep joins level values into a tuple key. It never appears in
// source data.
const keySep = "\x1f"

// ClassificationRecord is one entry of the subject-classification
// taxonomy: an ordered vector of display strings, one per level.
// A populated level implies all coarser levels are populated; an
// empty string means the record terminates at the previous level.
type ClassificationRecord struct {
	// Levels holds the human-readable number/name composites
	// (e.g. "03 수학"), empty string for absent levels.
	Levels [NumLevels]string `json:"levels" yaml:"levels,flow"`
}

// Depth returns the number of populated levels, counting from the
// front up to the first absent level.
func (r ClassificationRecord) Depth() int {
	for i, v := range r.Levels {
		if v == "" {
			return i
		}
	}
	return NumLevels
}

// Key returns the identity key of the record: the full ordered tuple
// of all levels. Two records with equal keys are the same taxonomy
// entry regardless of source file.
func (r ClassificationRecord) Key() string {
	return strings.Join(r.Levels[:], keySep)
}

// PrefixKey returns the tuple key truncated to the first depth levels.
func (r ClassificationRecord) PrefixKey(depth int) string {
	return strings.Join(r.Levels[:depth], keySep)
}

// Less orders records lexicographically by the level tuple, empty
// string first, which yields hierarchy order.
func (r ClassificationRecord) Less(o ClassificationRecord) bool {
	for i := 0; i < NumLevels; i++ {
		if r.Levels[i] != o.Levels[i] {
			return r.Levels[i] < o.Levels[i]
		}
	}
	return false
}

// HierarchyNode is one node of the nested taxonomy tree. Each level
// value keys a child node; a node with no children is a leaf of the
// extraction taxonomy.
type HierarchyNode map[string]HierarchyNode

// ScanCounters holds counts from one raw-record scan.
type ScanCounters struct {
	// Scanned is the total number of raw records seen.
	Scanned int `json:"scanned" yaml:"scanned"`

	// Matched is the number of records that passed field extraction
	// and the curriculum-version filter, before deduplication.
	Matched int `json:"matched" yaml:"matched"`

	// Unique is the number of distinct level tuples retained.
	Unique int `json:"unique" yaml:"unique"`
}

// TaxonomyArtifact is the persisted output of a taxonomy scan: the
// sorted deduplicated records, a nested tree view for inspection,
// and the scan counters. Regenerable; never mutated once written.
type TaxonomyArtifact struct {
	Records  []ClassificationRecord `json:"records" yaml:"records"`
	Tree     HierarchyNode          `json:"tree" yaml:"tree"`
	Counters ScanCounters           `json:"counters" yaml:"counters"`
}
