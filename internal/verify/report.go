// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"fmt"
	"sort"
	"strings"
)

// Render serializes the four findings into the ordered text report:
// forward coverage, reverse coverage, domain consistency, confidence
// distribution, then a summary block. Pure and order-stable; safe to
// re-run against the same findings.
func Render(f *Findings) string {
	var b strings.Builder

	b.WriteString("MAPPING VERIFICATION REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	renderForward(&b, f.Forward)
	renderReverse(&b, f.Reverse)
	renderDomain(&b, f.Domain)
	renderConfidence(&b, f.Confidence)
	renderSummary(&b, f)

	return b.String()
}

func sectionHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", 60))
}

func renderForward(b *strings.Builder, f ForwardCoverageFinding) {
	sectionHeader(b, "1. Forward coverage (textbook items -> standards)")
	fmt.Fprintf(b, "mapped %d of %d items (%.1f%%)\n", f.Mapped, f.Total, f.Coverage())
	if len(f.Unmapped) > 0 {
		fmt.Fprintf(b, "unmapped items (%d):\n", len(f.Unmapped))
		for _, item := range f.Unmapped {
			kind := "intermediate"
			if item.Leaf {
				kind = "leaf"
			}
			fmt.Fprintf(b, "  %-12s  %-8s  %-12s  %s\n", item.ID, item.Subject, kind, item.Path)
		}
	}
	b.WriteString("\n")
}

func renderReverse(b *strings.Builder, f ReverseCoverageFinding) {
	sectionHeader(b, "2. Reverse coverage (standards -> textbook items)")
	fmt.Fprintf(b, "mapped %d of %d standards (%.1f%%)\n", f.Mapped, f.Total, f.Coverage())

	subjects := make([]string, 0, len(f.Unmapped))
	for s := range f.Unmapped {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	for _, subject := range subjects {
		fmt.Fprintf(b, "unmapped standards in %s (%d):\n", subject, len(f.Unmapped[subject]))
		for _, std := range f.Unmapped[subject] {
			fmt.Fprintf(b, "  %-12s  %s\n", std.Code, std.Description)
		}
	}
	b.WriteString("\n")
}

func renderDomain(b *strings.Builder, f DomainConsistencyFinding) {
	sectionHeader(b, "3. Domain consistency")
	fmt.Fprintf(b, "%d domains checked, %d spread over multiple chapters\n", len(f.Domains), f.Flagged)
	for _, dc := range f.Domains {
		marker := " "
		if dc.Flagged {
			marker = "!"
		}
		fmt.Fprintf(b, "%s %-8s  %-20s  %s\n", marker, dc.Subject, dc.Domain, strings.Join(dc.Chapters, ", "))
	}
	b.WriteString("\n")
}

func renderConfidence(b *strings.Builder, f ConfidenceFinding) {
	sectionHeader(b, "4. Confidence distribution")
	for _, sc := range f.Subjects {
		fmt.Fprintf(b, "%-8s  count %-5d  mean %.3f  min %.3f  max %.3f\n",
			sc.Subject, sc.Count, sc.Mean, sc.Min, sc.Max)
		if sc.LowTotal > 0 {
			fmt.Fprintf(b, "  low-confidence pairs: %d", sc.LowTotal)
			if sc.LowTotal > len(sc.LowPairs) {
				fmt.Fprintf(b, " (showing first %d)", len(sc.LowPairs))
			}
			b.WriteString("\n")
			for _, p := range sc.LowPairs {
				fmt.Fprintf(b, "  %-12s -> %-12s  %.2f  %s\n",
					p.ItemID, p.StandardCode, p.Confidence, p.Reasoning)
			}
		}
	}
	b.WriteString("\n")
}

func renderSummary(b *strings.Builder, f *Findings) {
	sectionHeader(b, "Summary")
	fmt.Fprintf(b, "forward coverage:      %.1f%%\n", f.Forward.Coverage())
	fmt.Fprintf(b, "reverse coverage:      %.1f%%\n", f.Reverse.Coverage())
	fmt.Fprintf(b, "multi-chapter domains: %d\n", f.Domain.Flagged)
	fmt.Fprintf(b, "low-confidence pairs:  %d\n", f.Confidence.LowTotal)
}
