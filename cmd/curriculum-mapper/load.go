// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriculum-mapper/internal/mappinginput"
	"github.com/pdiddy/curriculum-mapper/internal/verify"
	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load subject bundles and a mapping relation into the store",
	Long: `Load seeds the mapping SQLite database from the per-subject input
bundles and an externally produced mapping CSV
(item_id, standard_code, confidence, reasoning), replacing any
previous contents in one transaction.`,
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	mappingsPath, _ := cmd.Flags().GetString("mappings")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("reading input directory %s: %w", inputDir, err)
	}

	var (
		items     []types.TextbookClassificationItem
		standards []types.AchievementStandard
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "-input.yaml") {
			continue
		}
		bundle, err := mappinginput.ReadBundle(filepath.Join(inputDir, entry.Name()))
		if err != nil {
			return err
		}
		items = append(items, bundle.Items...)
		standards = append(standards, bundle.Standards...)
	}

	pairs, err := verify.LoadMappingsCSV(mappingsPath)
	if err != nil {
		return err
	}

	store, err := verify.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Seed(context.Background(), items, standards, pairs); err != nil {
		return err
	}

	fmt.Printf("loaded %d items, %d standards, %d mapping pairs\n",
		len(items), len(standards), len(pairs))
	return nil
}

func init() {
	loadCmd.Flags().String("input-dir", "data/input", "directory of per-subject input bundles")
	loadCmd.Flags().String("mappings", "data/mappings.csv", "externally produced mapping relation CSV")
	loadCmd.Flags().String("data-dir", "data", "base directory for the mapping store")

	rootCmd.AddCommand(loadCmd)
}
