// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriculum-mapper/internal/rawscan"
	"github.com/pdiddy/curriculum-mapper/internal/taxonomy"
	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Extract the classification taxonomy from raw item dumps",
	Long: `Taxonomy scans raw tagged item dumps, extracts the 12-level
classification vector of each record, filters by curriculum version,
deduplicates, and writes a sorted taxonomy artifact with a nested
hierarchy view and scan counters.

Undecodable dump files are skipped and counted; an unreachable raw
directory aborts the run.`,
	RunE: runTaxonomy,
}

func runTaxonomy(cmd *cobra.Command, args []string) error {
	rawDir, _ := cmd.Flags().GetString("raw-dir")
	out, _ := cmd.Flags().GetString("out")
	prefix, _ := cmd.Flags().GetString("curriculum-prefix")

	cfg := types.ScanConfig{RawDir: rawDir, CurriculumPrefix: prefix}

	source := rawscan.DirSource{Dir: cfg.RawDir}
	records, loadSummary, err := source.Load(context.Background(), os.Stdout)
	if err != nil {
		return err
	}

	extractor := taxonomy.NewExtractor(cfg)
	recs := make([]taxonomy.Record, len(records))
	for i, r := range records {
		recs[i] = r
	}

	classified, counters := extractor.Extract(recs)
	artifact := &types.TaxonomyArtifact{
		Records:  classified,
		Tree:     taxonomy.BuildTree(classified),
		Counters: counters,
	}

	if err := taxonomy.WriteArtifact(out, artifact); err != nil {
		return err
	}

	fmt.Printf("\nscanned: %d, matched: %d, unique: %d (files failed: %d)\n",
		counters.Scanned, counters.Matched, counters.Unique, loadSummary.Failed)
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func init() {
	taxonomyCmd.Flags().String("raw-dir", "data/raw", "directory of raw tagged item dumps")
	taxonomyCmd.Flags().String("out", "data/taxonomy/taxonomy.yaml", "output path for the taxonomy artifact")
	taxonomyCmd.Flags().String("curriculum-prefix", "2022", "required prefix of the curriculum-version level")

	rootCmd.AddCommand(taxonomyCmd)
}
