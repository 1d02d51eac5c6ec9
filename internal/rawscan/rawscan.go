// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rawscan reads raw tagged educational-item dumps and exposes
// each record's attribute blob for classification extraction.
package rawscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// attrPattern matches one tag attribute inside a record's attribute
// blob, e.g. Cls03="03 수학".
var attrPattern = regexp.MustCompile(`(\w+)="([^"]*)"`)

// Record is one raw tagged item. It exposes attribute lookup over the
// record's attribute-string blob; nothing else about the raw format
// leaks past this package.
type Record struct {
	attrs map[string]string
}

// ParseRecord parses an attribute blob into a Record.
func ParseRecord(blob string) Record {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(blob, -1) {
		attrs[m[1]] = m[2]
	}
	return Record{attrs: attrs}
}

// Attr returns the value of the named tag attribute and whether it
// was present in the blob.
func (r Record) Attr(name string) (string, bool) {
	v, ok := r.attrs[name]
	return v, ok
}

// dumpFile is the on-disk shape of one raw item dump.
type dumpFile struct {
	Items []dumpItem `json:"items"`
}

type dumpItem struct {
	Attributes string `json:"attributes"`
}

// LoadSummary holds counts from one directory load.
type LoadSummary struct {
	Files   int
	Records int
	Failed  int
}

// DirSource reads raw item dumps from a directory of *.json files.
type DirSource struct {
	// Dir is the dump directory.
	Dir string
}

// Load reads every *.json dump under the source directory and returns
// the parsed records. A file that cannot be read or decoded is
// skipped and counted, never fatal to the batch; an unreachable
// directory is fatal and the error carries the resolved path.
// Progress lines are written to w.
func (s DirSource) Load(ctx context.Context, w io.Writer) ([]Record, LoadSummary, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		resolved := s.Dir
		if abs, absErr := filepath.Abs(s.Dir); absErr == nil {
			resolved = abs
		}
		return nil, LoadSummary{}, fmt.Errorf("reading raw directory %s: %w", resolved, err)
	}

	var (
		records []Record
		summary LoadSummary
	)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		select {
		case <-ctx.Done():
			return records, summary, ctx.Err()
		default:
		}

		path := filepath.Join(s.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		var dump dumpFile
		if err := json.Unmarshal(data, &dump); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		for _, item := range dump.Items {
			records = append(records, ParseRecord(item.Attributes))
		}

		fmt.Fprintf(w, "loaded  %s (%d records)\n", entry.Name(), len(dump.Items))
		summary.Files++
		summary.Records += len(dump.Items)
	}

	return records, summary, nil
}
