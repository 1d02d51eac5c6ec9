// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"sort"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// noChapterLabel is the sentinel chapter label for a target item with
// no populated chapter level.
const noChapterLabel = "(단원없음)"

// ItemRef identifies an unmapped textbook item for remediation.
type ItemRef struct {
	ID      string `json:"id" yaml:"id"`
	Subject string `json:"subject" yaml:"subject"`
	Path    string `json:"path" yaml:"path"`
	Leaf    bool   `json:"leaf" yaml:"leaf"`
}

// ForwardCoverageFinding partitions textbook items into mapped and
// unmapped. Presence of one mapping pair is sufficient to count an
// item as mapped.
type ForwardCoverageFinding struct {
	Total    int       `json:"total" yaml:"total"`
	Mapped   int       `json:"mapped" yaml:"mapped"`
	Unmapped []ItemRef `json:"unmapped" yaml:"unmapped"`
}

// Coverage returns the mapped percentage. An empty item set counts as
// fully covered.
func (f ForwardCoverageFinding) Coverage() float64 {
	if f.Total == 0 {
		return 100.0
	}
	return float64(f.Mapped) / float64(f.Total) * 100.0
}

// ForwardCoverage checks that every textbook item appears as a
// mapping source at least once.
func ForwardCoverage(items []types.TextbookClassificationItem, pairs []types.MappingPair) ForwardCoverageFinding {
	mapped := make(map[string]bool)
	for _, p := range pairs {
		mapped[p.ItemID] = true
	}

	finding := ForwardCoverageFinding{Total: len(items)}
	for _, item := range items {
		if mapped[item.ID] {
			finding.Mapped++
			continue
		}
		finding.Unmapped = append(finding.Unmapped, ItemRef{
			ID:      item.ID,
			Subject: item.Subject,
			Path:    item.Path,
			Leaf:    item.Leaf,
		})
	}
	return finding
}

// UnmappedStandard is one achievement standard with no mapping pair.
// Description is truncated for report compactness.
type UnmappedStandard struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// ReverseCoverageFinding lists standards with zero mapping pairs,
// grouped by subject.
type ReverseCoverageFinding struct {
	Total    int                           `json:"total" yaml:"total"`
	Mapped   int                           `json:"mapped" yaml:"mapped"`
	Unmapped map[string][]UnmappedStandard `json:"unmapped" yaml:"unmapped"`
}

// Coverage returns the mapped percentage. An empty standard set
// counts as fully covered.
func (f ReverseCoverageFinding) Coverage() float64 {
	if f.Total == 0 {
		return 100.0
	}
	return float64(f.Mapped) / float64(f.Total) * 100.0
}

// UnmappedCount returns the total number of unmapped standards across
// subjects.
func (f ReverseCoverageFinding) UnmappedCount() int {
	return f.Total - f.Mapped
}

// ReverseCoverage checks that every achievement standard appears as a
// mapping target at least once. Descriptions of unmapped standards
// are truncated to descriptionCap runes with an ellipsis suffix.
func ReverseCoverage(standards []types.AchievementStandard, mappedCodes map[string]bool, descriptionCap int) ReverseCoverageFinding {
	finding := ReverseCoverageFinding{
		Total:    len(standards),
		Unmapped: make(map[string][]UnmappedStandard),
	}
	for _, std := range standards {
		if mappedCodes[std.Code] {
			finding.Mapped++
			continue
		}
		finding.Unmapped[std.Subject] = append(finding.Unmapped[std.Subject], UnmappedStandard{
			Code:        std.Code,
			Description: truncate(std.Description, descriptionCap),
		})
	}
	return finding
}

// truncate caps s at n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// DomainChapters reports the distinct chapter labels reached by one
// (subject, domain) pair's mappings.
type DomainChapters struct {
	Subject  string   `json:"subject" yaml:"subject"`
	Domain   string   `json:"domain" yaml:"domain"`
	Chapters []string `json:"chapters" yaml:"chapters"`

	// Flagged marks a domain spreading over more than one chapter.
	// Flagged domains are surfaced for human review, never corrected.
	Flagged bool `json:"flagged" yaml:"flagged"`
}

// DomainConsistencyFinding holds the per-domain chapter spread.
type DomainConsistencyFinding struct {
	Domains []DomainChapters `json:"domains" yaml:"domains"`
	Flagged int              `json:"flagged" yaml:"flagged"`
}

// DomainConsistency collects, for every (subject, domain) appearing
// in at least one mapping, the distinct chapter labels its mappings
// reach. A target item with no chapter label counts under the
// sentinel label. Multi-chapter spread is flagged, not rejected.
func DomainConsistency(join []JoinRow) DomainConsistencyFinding {
	type key struct{ subject, domain string }
	chapters := make(map[key]map[string]bool)

	for _, jr := range join {
		k := key{subject: jr.ItemSubject, domain: jr.Domain}
		if chapters[k] == nil {
			chapters[k] = make(map[string]bool)
		}
		chapter := jr.Chapter
		if chapter == "" {
			chapter = noChapterLabel
		}
		chapters[k][chapter] = true
	}

	var finding DomainConsistencyFinding
	for k, set := range chapters {
		dc := DomainChapters{Subject: k.subject, Domain: k.domain}
		for chapter := range set {
			dc.Chapters = append(dc.Chapters, chapter)
		}
		sort.Strings(dc.Chapters)
		dc.Flagged = len(dc.Chapters) > 1
		if dc.Flagged {
			finding.Flagged++
		}
		finding.Domains = append(finding.Domains, dc)
	}

	sort.Slice(finding.Domains, func(i, j int) bool {
		a, b := finding.Domains[i], finding.Domains[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.Domain < b.Domain
	})
	return finding
}

// LowConfidencePair is one mapping pair below the confidence
// threshold.
type LowConfidencePair struct {
	ItemID       string  `json:"item_id" yaml:"item_id"`
	StandardCode string  `json:"standard_code" yaml:"standard_code"`
	Confidence   float64 `json:"confidence" yaml:"confidence"`
	Reasoning    string  `json:"reasoning" yaml:"reasoning"`
}

// SubjectConfidence aggregates mapping confidences for one subject.
// Pairs are grouped by the subject of the target item: a mapping
// targets exactly one item and that item's subject is authoritative.
type SubjectConfidence struct {
	Subject string  `json:"subject" yaml:"subject"`
	Count   int     `json:"count" yaml:"count"`
	Mean    float64 `json:"mean" yaml:"mean"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`

	// LowTotal counts all pairs below the threshold; LowPairs lists
	// at most the configured cap of them for the report body.
	LowTotal int                 `json:"low_total" yaml:"low_total"`
	LowPairs []LowConfidencePair `json:"low_pairs" yaml:"low_pairs"`
}

// ConfidenceFinding holds per-subject confidence aggregates.
type ConfidenceFinding struct {
	Subjects []SubjectConfidence `json:"subjects" yaml:"subjects"`
	LowTotal int                 `json:"low_total" yaml:"low_total"`
}

// ConfidenceDistribution computes count, mean, min, and max per
// target-item subject plus the pairs with confidence strictly below
// threshold, capped to maxLow per subject in the listing while the
// counts stay uncapped.
func ConfidenceDistribution(join []JoinRow, threshold float64, maxLow int) ConfidenceFinding {
	bySubject := make(map[string][]JoinRow)
	for _, jr := range join {
		bySubject[jr.ItemSubject] = append(bySubject[jr.ItemSubject], jr)
	}

	subjects := make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	var finding ConfidenceFinding
	for _, subject := range subjects {
		rows := bySubject[subject]
		sc := SubjectConfidence{
			Subject: subject,
			Count:   len(rows),
			Min:     rows[0].Confidence,
			Max:     rows[0].Confidence,
		}

		var sum float64
		for _, jr := range rows {
			sum += jr.Confidence
			if jr.Confidence < sc.Min {
				sc.Min = jr.Confidence
			}
			if jr.Confidence > sc.Max {
				sc.Max = jr.Confidence
			}
			if jr.Confidence < threshold {
				sc.LowTotal++
				if len(sc.LowPairs) < maxLow {
					sc.LowPairs = append(sc.LowPairs, LowConfidencePair{
						ItemID:       jr.ItemID,
						StandardCode: jr.StandardCode,
						Confidence:   jr.Confidence,
						Reasoning:    jr.Reasoning,
					})
				}
			}
		}
		sc.Mean = sum / float64(len(rows))

		finding.LowTotal += sc.LowTotal
		finding.Subjects = append(finding.Subjects, sc)
	}
	return finding
}

// Findings bundles the four independent audit results.
type Findings struct {
	Forward    ForwardCoverageFinding   `json:"forward" yaml:"forward"`
	Reverse    ReverseCoverageFinding   `json:"reverse" yaml:"reverse"`
	Domain     DomainConsistencyFinding `json:"domain" yaml:"domain"`
	Confidence ConfidenceFinding        `json:"confidence" yaml:"confidence"`
}

// RunAll materializes the store's projections once each and runs the
// four checks. The checks are pure functions over the query results;
// none depends on another's intermediate state.
func RunAll(ctx context.Context, store *Store, cfg types.ReportConfig) (*Findings, error) {
	if cfg.LowConfidenceThreshold == 0 && cfg.MaxLowConfidencePerSubject == 0 && cfg.DescriptionCap == 0 {
		cfg = types.DefaultReportConfig()
	}

	items, err := store.Items(ctx)
	if err != nil {
		return nil, err
	}
	pairs, err := store.Pairs(ctx)
	if err != nil {
		return nil, err
	}
	standards, err := store.Standards(ctx)
	if err != nil {
		return nil, err
	}
	mappedCodes, err := store.MappedStandardCodes(ctx)
	if err != nil {
		return nil, err
	}
	join, err := store.MappingJoin(ctx)
	if err != nil {
		return nil, err
	}

	return &Findings{
		Forward:    ForwardCoverage(items, pairs),
		Reverse:    ReverseCoverage(standards, mappedCodes, cfg.DescriptionCap),
		Domain:     DomainConsistency(join),
		Confidence: ConfidenceDistribution(join, cfg.LowConfidenceThreshold, cfg.MaxLowConfidencePerSubject),
	}, nil
}
