// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the curriculum-mapper CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the curriculum-mapper CLI.
var rootCmd = &cobra.Command{
	Use:   "curriculum-mapper",
	Short: "Curriculum classification taxonomy and mapping verification",
	Long: `curriculum-mapper extracts a subject-classification taxonomy from raw
tagged educational-item records, builds per-subject classification inputs
for achievement-standard mapping, and verifies an externally produced
mapping relation.

Each stage is a subcommand: taxonomy, build-input, load, and verify.
Mapping generation itself is an external step between build-input and
load.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./curriculum-mapper.yaml or ~/.config/curriculum-mapper/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("curriculum-mapper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "curriculum-mapper"))
		}
	}

	viper.SetEnvPrefix("CURRICULUM_MAPPER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
