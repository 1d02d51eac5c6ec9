// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TextbookClassificationItem is one per-subject classification input
// derived from a ClassificationRecord: a sequential identifier, a
// display path, and the normalized path used as the dedup key at this
// stage.
type TextbookClassificationItem struct {
	// ID is a sequential per-subject identifier (e.g. "math-0007").
	// Stable across re-runs over the same taxonomy.
	ID string `json:"id" yaml:"id"`

	// Subject is the subject key the item was routed to.
	Subject string `json:"subject" yaml:"subject"`

	// Path is the human-readable hierarchical path: subject name,
	// grade, term, then each populated chapter label.
	Path string `json:"path" yaml:"path"`

	// NormalizedPath is the dedup key. Two raw paths that normalize
	// identically are the same item.
	NormalizedPath string `json:"normalized_path" yaml:"normalized_path"`

	// RawPaths retains every raw path variant that collapsed onto
	// this item, first-seen first, for audit.
	RawPaths []string `json:"raw_paths" yaml:"raw_paths"`

	// Leaf reports whether no other record in the same subject
	// extends this item to greater depth.
	Leaf bool `json:"leaf" yaml:"leaf"`

	// Grade, Term, and Chapter are copies of selected classification
	// levels, prefix-stripped, for quick filtering.
	Grade   string `json:"grade" yaml:"grade"`
	Term    string `json:"term" yaml:"term"`
	Chapter string `json:"chapter" yaml:"chapter"`
}

// AchievementStandard is an externally sourced curriculum standard.
type AchievementStandard struct {
	// Code is the natural identifier (e.g. "9수01-02").
	Code string `json:"code" yaml:"code"`

	// Description is the standard's full text.
	Description string `json:"description" yaml:"description"`

	// Domain groups standards into curricular strands
	// (e.g. "수와 연산").
	Domain string `json:"domain" yaml:"domain"`

	// Subject is the subject key the standard was loaded for.
	Subject string `json:"subject" yaml:"subject"`
}

// MappingPair is one externally produced association between a
// textbook classification item and an achievement standard. The
// relation is many-to-many and is the subject of verification, not
// produced here.
type MappingPair struct {
	ItemID       string `json:"item_id" yaml:"item_id"`
	StandardCode string `json:"standard_code" yaml:"standard_code"`

	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Reasoning is the free-text rationale for the pair.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
}

// BundleSummary holds per-subject counts for a mapping-input bundle.
type BundleSummary struct {
	Total        int `json:"total" yaml:"total"`
	Leaf         int `json:"leaf" yaml:"leaf"`
	Intermediate int `json:"intermediate" yaml:"intermediate"`
	Standards    int `json:"standards" yaml:"standards"`
	Domains      int `json:"domains" yaml:"domains"`
}

// SubjectBundle is one subject's mapping input: canonical items with
// leaf flags and raw-path variants, the subject's achievement-standard
// list unmodified, and the derived domain list.
type SubjectBundle struct {
	Subject   string                       `json:"subject" yaml:"subject"`
	Items     []TextbookClassificationItem `json:"items" yaml:"items"`
	Standards []AchievementStandard        `json:"standards" yaml:"standards"`

	// Domains is the sorted unique list of standard domains.
	Domains []string `json:"domains" yaml:"domains"`

	Summary BundleSummary `json:"summary" yaml:"summary"`
}
