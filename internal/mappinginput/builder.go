// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mappinginput groups taxonomy rows by subject and builds the
// normalized per-subject classification inputs that mapping generation
// consumes.
package mappinginput

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// StandardsLoader loads one subject's achievement standards.
type StandardsLoader interface {
	Load(subject string) ([]types.AchievementStandard, error)
}

// Builder turns taxonomy rows into per-subject mapping-input bundles.
type Builder struct {
	cfg types.SubjectConfig

	// prefixes holds the subject-code prefixes sorted longest first,
	// so "043" (history) is tried before "04" (social studies).
	prefixes []string

	// subjects holds the subject keys in deterministic order.
	subjects []string
}

// NewBuilder returns a Builder using the given subject tables.
func NewBuilder(cfg types.SubjectConfig) *Builder {
	prefixes := make([]string, 0, len(cfg.SubjectPrefixes))
	for p := range cfg.SubjectPrefixes {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})

	subjects := make([]string, 0, len(cfg.SubjectNames))
	for s := range cfg.SubjectNames {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	return &Builder{cfg: cfg, prefixes: prefixes, subjects: subjects}
}

// Subjects returns the configured subject keys in deterministic order.
func (b *Builder) Subjects() []string {
	return b.subjects
}

// SubjectFor routes a subject-code level value (e.g. "043 역사") to a
// subject key by its leading digits, most-specific prefix first.
func (b *Builder) SubjectFor(code string) (string, bool) {
	digits := leadingDigits(code)
	if digits == "" {
		return "", false
	}
	for _, p := range b.prefixes {
		if strings.HasPrefix(digits, p) {
			return b.cfg.SubjectPrefixes[p], true
		}
	}
	return "", false
}

// leadingDigits returns the run of ASCII digits at the front of s.
func leadingDigits(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
	}
	return s
}

// rowsFor filters taxonomy rows whose subject-code level routes to
// the given subject, preserving input order.
func (b *Builder) rowsFor(subject string, records []types.ClassificationRecord) []types.ClassificationRecord {
	var rows []types.ClassificationRecord
	for _, r := range records {
		if s, ok := b.SubjectFor(r.Levels[types.LevelSubjectCode]); ok && s == subject {
			rows = append(rows, r)
		}
	}
	return rows
}

// BuildSubject builds one subject's bundle from its pre-dedup taxonomy
// rows and its loaded achievement-standard list.
func (b *Builder) BuildSubject(subject string, rows []types.ClassificationRecord, standards []types.AchievementStandard) *types.SubjectBundle {
	bundle := &types.SubjectBundle{
		Subject:   subject,
		Standards: standards,
		Domains:   domainList(standards),
	}

	extended := extendedPrefixes(rows)
	name := b.cfg.SubjectNames[subject]

	byNorm := make(map[string]int)
	for _, row := range rows {
		path := buildPath(name, row, b.cfg.GradeLabels)
		normalized := NormalizePath(path)

		if i, ok := byNorm[normalized]; ok {
			// Duplicate after normalization: keep the raw variant on
			// the canonical item, drop the row otherwise.
			bundle.Items[i].RawPaths = append(bundle.Items[i].RawPaths, path)
			continue
		}

		item := types.TextbookClassificationItem{
			ID:             fmt.Sprintf("%s-%04d", subject, len(bundle.Items)+1),
			Subject:        subject,
			Path:           path,
			NormalizedPath: normalized,
			RawPaths:       []string{path},
			Leaf:           !extended[row.PrefixKey(row.Depth())],
			Grade:          stripCodePrefix(row.Levels[types.LevelGrade]),
			Term:           stripCodePrefix(row.Levels[types.LevelTerm]),
			Chapter:        stripCodePrefix(row.Levels[types.LevelUnitStart]),
		}
		byNorm[normalized] = len(bundle.Items)
		bundle.Items = append(bundle.Items, item)
	}

	bundle.Summary = summarize(bundle)
	return bundle
}

// extendedPrefixes indexes every proper prefix of every row's
// populated tuple. A row is a leaf iff its full populated tuple does
// not appear in the index: no sibling row shares all its levels and
// populates at least one deeper level. Identical full tuples never
// flag each other, a full tuple being no proper prefix of itself.
func extendedPrefixes(rows []types.ClassificationRecord) map[string]bool {
	extended := make(map[string]bool)
	for _, row := range rows {
		depth := row.Depth()
		for k := 1; k < depth; k++ {
			extended[row.PrefixKey(k)] = true
		}
	}
	return extended
}

// domainList returns the sorted unique domains of a standard list.
func domainList(standards []types.AchievementStandard) []string {
	seen := make(map[string]bool)
	var domains []string
	for _, s := range standards {
		if s.Domain == "" || seen[s.Domain] {
			continue
		}
		seen[s.Domain] = true
		domains = append(domains, s.Domain)
	}
	sort.Strings(domains)
	return domains
}

func summarize(bundle *types.SubjectBundle) types.BundleSummary {
	summary := types.BundleSummary{
		Total:     len(bundle.Items),
		Standards: len(bundle.Standards),
		Domains:   len(bundle.Domains),
	}
	for _, item := range bundle.Items {
		if item.Leaf {
			summary.Leaf++
		} else {
			summary.Intermediate++
		}
	}
	return summary
}

// BuildSummary holds counts from one BuildAll run.
type BuildSummary struct {
	Built  int
	Empty  int
	Failed int
}

// BuildAll builds a bundle per configured subject. A subject with no
// taxonomy rows is a warning and yields an empty bundle; a subject
// whose standards fail to load is a failure for that subject only and
// its bundle is omitted. Progress lines are written to w.
func (b *Builder) BuildAll(records []types.ClassificationRecord, loader StandardsLoader, w io.Writer) (map[string]*types.SubjectBundle, BuildSummary) {
	bundles := make(map[string]*types.SubjectBundle)
	var summary BuildSummary

	for _, subject := range b.subjects {
		rows := b.rowsFor(subject, records)
		if len(rows) == 0 {
			fmt.Fprintf(w, "warning %s: no taxonomy rows\n", subject)
			summary.Empty++
		}

		standards, err := loader.Load(subject)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", subject, err)
			summary.Failed++
			continue
		}

		bundle := b.BuildSubject(subject, rows, standards)
		bundles[subject] = bundle
		summary.Built++

		fmt.Fprintf(w, "built   %s (%d items, %d leaf, %d standards)\n",
			subject, bundle.Summary.Total, bundle.Summary.Leaf, bundle.Summary.Standards)
	}

	fmt.Fprintf(w, "\nbuilt: %d, empty: %d, failed: %d\n",
		summary.Built, summary.Empty, summary.Failed)
	return bundles, summary
}
