// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// fakeRecord is a raw record backed by an attribute map.
type fakeRecord map[string]string

func (f fakeRecord) Attr(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

// rec builds a fake record with Cls01..ClsNN set to the given values.
func rec(levels ...string) Record {
	f := fakeRecord{}
	for i, v := range levels {
		f[fmt.Sprintf("Cls%02d", i+1)] = v
	}
	return f
}

func newTestExtractor(prefix string) *Extractor {
	return NewExtractor(types.ScanConfig{CurriculumPrefix: prefix})
}

func TestExtractScanCounters(t *testing.T) {
	// Two accepted records with identical tuples collapse to one; a
	// record from another curriculum is rejected outright.
	e := newTestExtractor("A13")
	records := []Record{
		rec("A13-x", "01 중학교", "01 중1"),
		rec("A13-x", "01 중학교", "01 중1"),
		rec("B01-x", "01 중학교", "01 중1"),
	}

	out, counters := e.Extract(records)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	want := types.ScanCounters{Scanned: 3, Matched: 2, Unique: 1}
	if counters != want {
		t.Errorf("counters = %+v, want %+v", counters, want)
	}
}

func TestExtractDedupIdempotence(t *testing.T) {
	e := newTestExtractor("2022")
	records := []Record{
		rec("2022 개정", "02 중학교", "02 중2", "03 수학", "0", "01 1학기"),
		rec("2022 개정", "02 중학교", "01 중1", "03 수학"),
		rec("2022 개정", "02 중학교", "02 중2", "03 수학"),
	}

	first, _ := e.Extract(records)
	second, _ := e.Extract(records)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-extraction changed the taxonomy:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestExtractTupleUniqueness(t *testing.T) {
	e := newTestExtractor("2022")
	var records []Record
	for i := 0; i < 4; i++ {
		records = append(records,
			rec("2022 개정", "02 중학교", fmt.Sprintf("0%d 중%d", i+1, i+1)),
			rec("2022 개정", "02 중학교", fmt.Sprintf("0%d 중%d", i+1, i+1)),
		)
	}

	out, _ := e.Extract(records)

	seen := make(map[string]bool)
	for _, r := range out {
		if seen[r.Key()] {
			t.Errorf("duplicate tuple in output: %v", r.Levels)
		}
		seen[r.Key()] = true
	}
}

func TestExtractSortedHierarchyOrder(t *testing.T) {
	e := newTestExtractor("2022")
	records := []Record{
		rec("2022 개정", "02 중학교", "02 중2"),
		rec("2022 개정", "02 중학교"),
		rec("2022 개정", "02 중학교", "01 중1", "03 수학"),
		rec("2022 개정", "02 중학교", "01 중1"),
	}

	out, _ := e.Extract(records)

	for i := 1; i < len(out); i++ {
		if out[i].Less(out[i-1]) {
			t.Errorf("records out of order at %d: %v before %v", i, out[i-1].Levels, out[i].Levels)
		}
	}
	// A parent (shorter tuple, empty sorts first) precedes its children.
	if out[0].Depth() != 2 {
		t.Errorf("first record depth = %d, want the bare 2-level parent first", out[0].Depth())
	}
}

func TestExtractAbsentMarkers(t *testing.T) {
	e := newTestExtractor("2022")

	// "0" and whitespace both mean absent; levels terminate there, so
	// a value populated after the gap is dropped.
	records := []Record{
		rec("2022 개정", "02 중학교", "0", "03 수학"),
		rec("2022 개정", "  ", "01 중1"),
	}

	out, _ := e.Extract(records)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	for _, r := range out {
		if r.Depth() > 2 {
			t.Errorf("record %v kept levels past an absent field", r.Levels)
		}
	}
}

func TestExtractRejectsMissingVersion(t *testing.T) {
	e := newTestExtractor("")

	out, counters := e.Extract([]Record{rec("", "02 중학교"), fakeRecord{}})

	if len(out) != 0 || counters.Matched != 0 {
		t.Errorf("records without a curriculum version must be rejected, got %v", out)
	}
}
