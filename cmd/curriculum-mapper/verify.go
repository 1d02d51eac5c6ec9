// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriculum-mapper/internal/verify"
	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Audit the mapping relation and render the report",
	Long: `Verify runs four independent audits over the loaded mapping
relation: forward coverage, reverse coverage, domain consistency, and
confidence distribution. The report goes to stdout and to
data/reports/; findings can also be exported as YAML for programmatic
use.

Unmapped items, unmapped standards, multi-chapter domains, and
low-confidence pairs are findings, not errors; verify exits zero
whenever the audits complete.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	reportName, _ := cmd.Flags().GetString("report")
	yamlName, _ := cmd.Flags().GetString("yaml")
	threshold, _ := cmd.Flags().GetFloat64("low-confidence")

	store, err := verify.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := types.DefaultReportConfig()
	if threshold > 0 {
		cfg.LowConfidenceThreshold = threshold
	}

	findings, err := verify.RunAll(context.Background(), store, cfg)
	if err != nil {
		return err
	}

	report := verify.Render(findings)
	fmt.Fprint(os.Stdout, report)

	path, err := store.WriteReport(reportName, report)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)

	if yamlName != "" {
		path, err := store.WriteFindingsYAML(yamlName, findings)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

func init() {
	verifyCmd.Flags().String("data-dir", "data", "base directory for the mapping store")
	verifyCmd.Flags().String("report", "verification.txt", "report file name under data/reports/")
	verifyCmd.Flags().String("yaml", "", "also export structured findings to this file name")
	verifyCmd.Flags().Float64("low-confidence", 0, "low-confidence threshold (0 = default 0.5)")

	rootCmd.AddCommand(verifyCmd)
}
