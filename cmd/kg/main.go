// Package main provides the kg CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/kgraph/internal/config"
	"github.com/matsen/kgraph/internal/dataset"
	"github.com/matsen/kgraph/internal/render"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// configPath overrides the global config file location
	configPath string
	// datasetPath overrides the configured dataset
	datasetPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kg",
	Short: "Knowledge graph layout and preview CLI",
	Long: `kg turns a set of tagged notes, pages and PDF attachments into a
navigable knowledge graph.

Core features:
  - Link derivation from tag membership and the page hierarchy
  - 2D force-directed layout and a 3D orbit scene
  - Static HTML snapshots and a live preview server
  - Dataset import from a directory of PDFs

Datasets are YAML, TOML, JSON or JSONL files; with none configured the
built-in dataset is used. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/kg/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&datasetPath, "dataset", "d", "", "Dataset file, overriding the config")
	rootCmd.Version = Version
}

// globalConfigPath returns the config file in use.
func globalConfigPath() string {
	if configPath != "" {
		return config.ExpandTilde(configPath)
	}
	return config.Path()
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(globalConfigPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if datasetPath != "" {
		cfg.Dataset = datasetPath
	}
	cfg.Dataset = config.ExpandTilde(cfg.Dataset)
	return cfg
}

// mustLoadDataset loads the configured dataset, exits on error.
func mustLoadDataset(cfg *config.Config) *dataset.Dataset {
	ds, err := dataset.Load(cfg.Dataset)
	if err != nil {
		exitWithError(ExitDataError, "loading dataset: %v", err)
	}
	return ds
}

// mustRenderer returns the renderer named by flag, or the configured one.
func mustRenderer(cfg *config.Config, flag string) render.Kind {
	name := cfg.Renderer
	if flag != "" {
		name = flag
	}
	kind, err := render.ParseKind(name)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return kind
}
