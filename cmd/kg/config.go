package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matsen/kgraph/internal/config"
)

var (
	configShowPath bool
	configShowKeys bool
)

func init() {
	configCmd.Flags().BoolVar(&configShowPath, "path", false, "Print the config file path")
	configCmd.Flags().BoolVar(&configShowKeys, "keys", false, "List every settable key")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Keys are dotted paths into the config file; dashes may stand in for
underscores. Values are parsed as YAML.

Usage:
  kg config                          # Show all config
  kg config serve.addr               # Get specific value
  kg config serve.addr :8080         # Set value
  kg config layout.link-distance 120 # Set a layout parameter
  kg config demo.idle_after 30s      # Durations use Go syntax
  kg config --keys                   # List keys`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// UpdateResponse is the response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	Path   string `json:"path"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := globalConfigPath()

	if configShowPath {
		if humanOutput {
			fmt.Println(path)
			return nil
		}
		return outputJSON(StatusResponse{Status: "ok", Path: path})
	}

	// Reading without the environment keeps overrides out of the saved file.
	cfg, err := config.Read(path)
	if err != nil {
		exitWithError(ExitConfigError, "reading config: %v", err)
	}

	if configShowKeys {
		keys, err := cfg.Keys()
		if err != nil {
			exitWithError(ExitError, "listing keys: %v", err)
		}
		if humanOutput {
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		}
		return outputJSON(keys)
	}

	// No args: show all config
	if len(args) == 0 {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			exitWithError(ExitError, "encoding config: %v", err)
		}
		if humanOutput {
			fmt.Print(string(out))
			return nil
		}
		// Round-trip through YAML so JSON keys match the file.
		var tree map[string]any
		if err := yaml.Unmarshal(out, &tree); err != nil {
			exitWithError(ExitError, "encoding config: %v", err)
		}
		return outputJSON(tree)
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		v, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(v)
			return nil
		}
		return outputJSON(map[string]string{key: v})
	}

	// Two args: set value
	if err := cfg.Set(key, args[1]); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	v, _ := cfg.Get(key)
	if humanOutput {
		outputHuman("%s %s = %s\n", statusIcon(true), key, v)
		return nil
	}
	return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: v, Path: path})
}

// normalizeKey converts user-facing keys to the file's snake_case form.
func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", "_"))
}
