// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.StoreConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func item(id, subject, path, chapter string, leaf bool) types.TextbookClassificationItem {
	return types.TextbookClassificationItem{
		ID: id, Subject: subject, Path: path, Chapter: chapter, Leaf: leaf,
	}
}

func standard(code, subject, description, domain string) types.AchievementStandard {
	return types.AchievementStandard{
		Code: code, Subject: subject, Description: description, Domain: domain,
	}
}

func pair(itemID, code string, confidence float64) types.MappingPair {
	return types.MappingPair{ItemID: itemID, StandardCode: code, Confidence: confidence}
}

// seedFixture loads ten math items, two standards, and mappings for
// all items except math-0010.
func seedFixture(t *testing.T, store *Store) {
	t.Helper()

	var (
		items []types.TextbookClassificationItem
		pairs []types.MappingPair
	)
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("math-%04d", i)
		items = append(items, item(id, "math", "수학 > 중학교 1학년 > 수와 연산", "수와 연산", true))
		if i < 10 {
			pairs = append(pairs, pair(id, "9수01-01", 0.9))
		}
	}
	standards := []types.AchievementStandard{
		standard("9수01-01", "math", "소인수분해의 뜻을 알고 자연수를 소인수분해 할 수 있다", "수와 연산"),
		standard("9수01-02", "math", "양수와 음수, 정수와 유리수의 개념을 이해한다", "수와 연산"),
	}

	if err := store.Seed(context.Background(), items, standards, pairs); err != nil {
		t.Fatal(err)
	}
}

// --- store tests ---

func TestStoreSeedAndProjections(t *testing.T) {
	store := testStore(t)
	seedFixture(t, store)

	ctx := context.Background()

	items, err := store.Items(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 10 {
		t.Errorf("got %d items, want 10", len(items))
	}

	standards, err := store.Standards(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(standards) != 2 {
		t.Errorf("got %d standards, want 2", len(standards))
	}

	mapped, err := store.MappedStandardCodes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !mapped["9수01-01"] || mapped["9수01-02"] {
		t.Errorf("mapped codes = %v", mapped)
	}

	join, err := store.MappingJoin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(join) != 9 {
		t.Fatalf("got %d join rows, want 9", len(join))
	}
	if join[0].ItemSubject != "math" || join[0].Domain != "수와 연산" {
		t.Errorf("join row missing attributes: %+v", join[0])
	}
}

func TestStoreSeedReplacesContents(t *testing.T) {
	store := testStore(t)
	seedFixture(t, store)

	// Re-seeding with a smaller set must not leave stale rows behind.
	err := store.Seed(context.Background(),
		[]types.TextbookClassificationItem{item("kor-0001", "korean", "국어", "", true)},
		[]types.AchievementStandard{standard("9국01-01", "korean", "듣기와 말하기", "듣기·말하기")},
		nil)
	if err != nil {
		t.Fatal(err)
	}

	items, err := store.Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "kor-0001" {
		t.Errorf("stale rows after re-seed: %+v", items)
	}
}

// --- forward coverage ---

func TestForwardCoverageNinetyPercent(t *testing.T) {
	store := testStore(t)
	seedFixture(t, store)

	findings, err := RunAll(context.Background(), store, types.DefaultReportConfig())
	if err != nil {
		t.Fatal(err)
	}

	f := findings.Forward
	if got := f.Coverage(); got != 90.0 {
		t.Errorf("coverage = %.1f, want 90.0", got)
	}
	if len(f.Unmapped) != 1 || f.Unmapped[0].ID != "math-0010" {
		t.Errorf("unmapped = %+v, want exactly math-0010", f.Unmapped)
	}
}

func TestForwardCoverageComplement(t *testing.T) {
	items := []types.TextbookClassificationItem{
		item("math-0001", "math", "a", "", true),
		item("math-0002", "math", "b", "", false),
		item("math-0003", "math", "c", "", true),
	}
	// One pair per item is enough; extra pairs must not double-count.
	pairs := []types.MappingPair{
		pair("math-0001", "s1", 0.8),
		pair("math-0001", "s2", 0.7),
	}

	f := ForwardCoverage(items, pairs)
	if f.Mapped+len(f.Unmapped) != f.Total {
		t.Errorf("|mapped| + |unmapped| = %d + %d != %d", f.Mapped, len(f.Unmapped), f.Total)
	}
	if f.Mapped != 1 {
		t.Errorf("mapped = %d, want 1", f.Mapped)
	}
}

// --- reverse coverage ---

func TestReverseCoverage(t *testing.T) {
	long := "소인수분해의 뜻을 알고 자연수를 소인수분해 할 수 있으며 이를 활용하여 최대공약수와 최소공배수를 구할 수 있다"
	standards := []types.AchievementStandard{
		standard("9수01-01", "math", long, "수와 연산"),
		standard("9수01-02", "math", "짧은 설명", "수와 연산"),
		standard("9국01-01", "korean", "듣기와 말하기", "듣기·말하기"),
	}
	mapped := map[string]bool{"9수01-02": true}

	f := ReverseCoverage(standards, mapped, 40)

	if f.Mapped != 1 || f.UnmappedCount() != 2 {
		t.Errorf("mapped = %d, unmapped = %d", f.Mapped, f.UnmappedCount())
	}
	if f.Mapped+f.UnmappedCount() != f.Total {
		t.Error("coverage complement broken for standards")
	}
	if len(f.Unmapped["math"]) != 1 || len(f.Unmapped["korean"]) != 1 {
		t.Errorf("grouping by subject broken: %v", f.Unmapped)
	}

	got := f.Unmapped["math"][0].Description
	want := string([]rune(long)[:40]) + "..."
	if got != want {
		t.Errorf("description = %q, want %d runes plus ellipsis", got, 40)
	}
}

// --- domain consistency ---

func TestDomainConsistency(t *testing.T) {
	join := []JoinRow{
		{ItemID: "math-0001", ItemSubject: "math", Chapter: "수와 연산", Domain: "수와 연산"},
		{ItemID: "math-0002", ItemSubject: "math", Chapter: "문자와 식", Domain: "수와 연산"},
		{ItemID: "math-0003", ItemSubject: "math", Chapter: "수와 연산", Domain: "수와 연산"},
		{ItemID: "math-0004", ItemSubject: "math", Chapter: "기하", Domain: "도형과 측정"},
		{ItemID: "kor-0001", ItemSubject: "korean", Chapter: "", Domain: "문학"},
	}

	f := DomainConsistency(join)

	if len(f.Domains) != 3 {
		t.Fatalf("got %d domains, want 3", len(f.Domains))
	}
	if f.Flagged != 1 {
		t.Errorf("flagged = %d, want 1", f.Flagged)
	}

	for _, dc := range f.Domains {
		switch {
		case dc.Subject == "math" && dc.Domain == "수와 연산":
			if !dc.Flagged || len(dc.Chapters) != 2 {
				t.Errorf("multi-chapter domain not flagged with full list: %+v", dc)
			}
		case dc.Subject == "math" && dc.Domain == "도형과 측정":
			if dc.Flagged {
				t.Errorf("single-chapter domain flagged: %+v", dc)
			}
		case dc.Subject == "korean":
			if len(dc.Chapters) != 1 || dc.Chapters[0] != noChapterLabel {
				t.Errorf("missing chapter must use the sentinel label: %+v", dc)
			}
		}
	}
}

// --- confidence distribution ---

func TestConfidenceDistribution(t *testing.T) {
	join := []JoinRow{
		{ItemID: "math-0001", ItemSubject: "math", StandardCode: "s1", Confidence: 0.9},
		{ItemID: "math-0002", ItemSubject: "math", StandardCode: "s2", Confidence: 0.3},
		{ItemID: "math-0003", ItemSubject: "math", StandardCode: "s3", Confidence: 0.6},
	}

	f := ConfidenceDistribution(join, 0.5, 10)

	if len(f.Subjects) != 1 {
		t.Fatalf("got %d subjects, want 1", len(f.Subjects))
	}
	sc := f.Subjects[0]
	if sc.Count != 3 || sc.Min != 0.3 || sc.Max != 0.9 {
		t.Errorf("aggregates = %+v, want count 3 min 0.3 max 0.9", sc)
	}
	if math.Abs(sc.Mean-0.6) > 1e-9 {
		t.Errorf("mean = %v, want 0.6", sc.Mean)
	}
	if sc.LowTotal != 1 || len(sc.LowPairs) != 1 || sc.LowPairs[0].StandardCode != "s2" {
		t.Errorf("low-confidence pairs = %+v", sc)
	}
}

func TestConfidenceDistributionLowCap(t *testing.T) {
	var join []JoinRow
	for i := 0; i < 15; i++ {
		join = append(join, JoinRow{
			ItemID:      fmt.Sprintf("math-%04d", i+1),
			ItemSubject: "math",
			Confidence:  0.1,
		})
	}

	f := ConfidenceDistribution(join, 0.5, 10)

	sc := f.Subjects[0]
	if len(sc.LowPairs) != 10 {
		t.Errorf("report listing must cap at 10, got %d", len(sc.LowPairs))
	}
	if sc.LowTotal != 15 || f.LowTotal != 15 {
		t.Errorf("summary count must stay uncapped, got %d/%d", sc.LowTotal, f.LowTotal)
	}
}

// --- confidence grouped by target item's subject ---

func TestConfidenceGroupsByTargetItemSubject(t *testing.T) {
	store := testStore(t)

	items := []types.TextbookClassificationItem{
		item("math-0001", "math", "수학", "수와 연산", true),
		item("kor-0001", "korean", "국어", "문학", true),
	}
	standards := []types.AchievementStandard{
		standard("9수01-01", "math", "수학 성취기준", "수와 연산"),
	}
	// Both pairs target the same standard; grouping follows the
	// target item's subject, not the standard's.
	pairs := []types.MappingPair{
		pair("math-0001", "9수01-01", 0.9),
		pair("kor-0001", "9수01-01", 0.4),
	}
	if err := store.Seed(context.Background(), items, standards, pairs); err != nil {
		t.Fatal(err)
	}

	findings, err := RunAll(context.Background(), store, types.DefaultReportConfig())
	if err != nil {
		t.Fatal(err)
	}

	f := findings.Confidence
	if len(f.Subjects) != 2 {
		t.Fatalf("got %d subjects, want grouping by item subject: %+v", len(f.Subjects), f.Subjects)
	}
	if f.Subjects[0].Subject != "korean" || f.Subjects[0].LowTotal != 1 {
		t.Errorf("korean group = %+v", f.Subjects[0])
	}
}
