// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mappinginput

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// pathSep joins display-path components.
const pathSep = " > "

var (
	// codePrefix matches the leading numeric code of a label,
	// e.g. "03 소설" → "소설".
	codePrefix = regexp.MustCompile(`^\d+\s+`)

	// numberedDot matches a digit followed by a dot and trailing
	// spaces, so "03. 소설" and "03.소설" normalize identically.
	numberedDot = regexp.MustCompile(`(\d)\.\s+`)

	// whitespaceRun matches runs of whitespace.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// stripCodePrefix removes the leading numeric code and following
// whitespace from a label; the remainder is the display text.
func stripCodePrefix(label string) string {
	return codePrefix.ReplaceAllString(label, "")
}

// buildPath constructs the human-readable hierarchical path for one
// taxonomy row: subject name, grade label, term label, then each
// populated chapter-level label, each stripped of its numeric code.
func buildPath(subjectName string, r types.ClassificationRecord, gradeLabels map[string]string) string {
	parts := []string{subjectName}

	if grade := stripCodePrefix(r.Levels[types.LevelGrade]); grade != "" {
		if label, ok := gradeLabels[grade]; ok {
			grade = label
		}
		parts = append(parts, grade)
	}
	if term := stripCodePrefix(r.Levels[types.LevelTerm]); term != "" {
		parts = append(parts, term)
	}
	for i := types.LevelUnitStart; i < types.NumLevels; i++ {
		if r.Levels[i] == "" {
			break
		}
		if label := stripCodePrefix(r.Levels[i]); label != "" {
			parts = append(parts, label)
		}
	}

	return strings.Join(parts, pathSep)
}

// NormalizePath canonicalizes a display path for deduplication:
// Unicode NFC, digit-dot-space forms collapsed, whitespace runs
// collapsed, outer whitespace trimmed. Idempotent.
func NormalizePath(path string) string {
	p := norm.NFC.String(path)
	p = numberedDot.ReplaceAllString(p, "$1.")
	p = whitespaceRun.ReplaceAllString(p, " ")
	return strings.TrimSpace(p)
}
