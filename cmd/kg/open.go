package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/kgraph/internal/navigate"
)

var (
	openPrint bool
	openCopy  bool
)

var openCmd = &cobra.Command{
	Use:   "open <node-id>",
	Short: "Open a node's URL in the default browser or viewer",
	Long: `Open the URL of a node the way clicking it in the graph would.
Relative URLs are resolved against serve.base_url from the config.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openPrint, "print", false, "Print the URL without opening it")
	openCmd.Flags().BoolVar(&openCopy, "copy", false, "Copy the URL to the clipboard instead of opening it")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)

	id := args[0]
	var target navigate.Target
	found := false
	for _, n := range ds.Nodes {
		if n.ID == id {
			target = navigate.Target{NodeID: n.ID, URL: n.URL}
			found = true
			break
		}
	}
	if !found {
		exitWithError(ExitDataError, "node not found: %s", id)
	}
	if target.URL == "" {
		exitWithError(ExitDataError, "node %s has no url", id)
	}

	resolver, err := navigate.NewResolver(cfg.Serve.BaseURL)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if target.URL, err = resolver.Resolve(target.URL); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	switch {
	case openCopy:
		if err := navigate.Copy(target.URL); err != nil {
			exitWithError(ExitError, "copying %s: %v", target.URL, err)
		}
	case !openPrint:
		if err := navigate.Open(target.URL); err != nil {
			exitWithError(ExitError, "opening %s: %v", target.URL, err)
		}
	}

	if humanOutput {
		outputHuman("%s\n", target.URL)
		return nil
	}
	return outputJSON(target)
}
