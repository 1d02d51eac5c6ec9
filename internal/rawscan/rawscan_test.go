// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rawscan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDump(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name string
		blob string
		attr string
		want string
		ok   bool
	}{
		{
			name: "reads a present attribute",
			blob: `Cls01="2022 개정" Cls02="03 중학교"`,
			attr: "Cls01",
			want: "2022 개정",
			ok:   true,
		},
		{
			name: "reads an empty attribute value",
			blob: `Cls01="2022 개정" Cls07=""`,
			attr: "Cls07",
			want: "",
			ok:   true,
		},
		{
			name: "reports an absent attribute",
			blob: `Cls01="2022 개정"`,
			attr: "Cls05",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ParseRecord(tt.blob)
			got, ok := rec.Attr(tt.attr)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirSourceLoad(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "a.json", `{"items":[{"attributes":"Cls01=\"2022\""},{"attributes":"Cls01=\"2015\""}]}`)
	writeDump(t, dir, "b.json", `{"items":[{"attributes":"Cls01=\"2022\""}]}`)
	writeDump(t, dir, "broken.json", `{"items":`)
	writeDump(t, dir, "notes.txt", `ignored`)

	var buf strings.Builder
	records, summary, err := DirSource{Dir: dir}.Load(context.Background(), &buf)
	require.NoError(t, err)

	assert.Len(t, records, 3)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 3, summary.Records)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, buf.String(), "failed  broken.json")
}

func TestDirSourceLoadUnreachableDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, _, err := DirSource{Dir: missing}.Load(context.Background(), &strings.Builder{})
	require.Error(t, err)

	// The one true process-abort condition reports the resolved path.
	abs, _ := filepath.Abs(missing)
	assert.Contains(t, err.Error(), abs)
}
