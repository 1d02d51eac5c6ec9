// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriculum-mapper/internal/mappinginput"
	"github.com/pdiddy/curriculum-mapper/internal/taxonomy"
	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

var buildInputCmd = &cobra.Command{
	Use:   "build-input",
	Short: "Build per-subject mapping inputs from the taxonomy",
	Long: `Build-input groups taxonomy rows by subject, builds normalized
display paths, computes leaf flags, joins each subject with its
achievement-standard CSV, and writes one input bundle per subject.

A subject with no taxonomy rows is a warning; a subject whose
standards file is missing or malformed fails alone while the others
proceed.`,
	RunE: runBuildInput,
}

func runBuildInput(cmd *cobra.Command, args []string) error {
	taxonomyPath, _ := cmd.Flags().GetString("taxonomy")
	standardsDir, _ := cmd.Flags().GetString("standards-dir")
	outDir, _ := cmd.Flags().GetString("out-dir")

	artifact, err := taxonomy.ReadArtifact(taxonomyPath)
	if err != nil {
		return err
	}

	builder := mappinginput.NewBuilder(types.DefaultSubjectConfig())
	loader := mappinginput.CSVLoader{Dir: standardsDir}

	bundles, summary := builder.BuildAll(artifact.Records, loader, os.Stdout)

	for _, subject := range builder.Subjects() {
		bundle, ok := bundles[subject]
		if !ok {
			continue
		}
		if err := mappinginput.WriteBundle(outDir, bundle); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d subject(s) failed", summary.Failed)
	}
	return nil
}

func init() {
	buildInputCmd.Flags().String("taxonomy", "data/taxonomy/taxonomy.yaml", "taxonomy artifact path")
	buildInputCmd.Flags().String("standards-dir", "data/standards", "directory of per-subject standards CSV files")
	buildInputCmd.Flags().String("out-dir", "data/input", "output directory for subject bundles")

	rootCmd.AddCommand(buildInputCmd)
}
