package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/kgraph/internal/dataset"
	"github.com/matsen/kgraph/internal/graph"
)

var (
	linksRenderer string
	linksRules    string
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Print the links derived from the dataset",
	Long: `Print the links derived from the dataset.

By default the rules of the renderer are used: tag and co-tag links for
force, tag and hierarchy links for orbit. --rules picks them explicitly
from tag, cotag and hierarchy.

Links whose endpoints are not in the dataset are dropped and counted.`,
	Args: cobra.NoArgs,
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().StringVarP(&linksRenderer, "renderer", "r", "", "Renderer whose rules to use (force or orbit)")
	linksCmd.Flags().StringVar(&linksRules, "rules", "", "Comma-separated rules: tag, cotag, hierarchy")
	rootCmd.AddCommand(linksCmd)
}

// LinksResponse is the response for the links command.
type LinksResponse struct {
	Links   []graph.Link `json:"links"`
	Count   int          `json:"count"`
	Dropped int          `json:"dropped"`
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)
	kind := mustRenderer(cfg, linksRenderer)

	rules := ds.Rules(string(kind))
	if linksRules != "" {
		var err error
		if rules, err = parseRules(linksRules, ds); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	g, err := graph.New(ds.Nodes, rules)
	if err != nil {
		exitWithError(ExitDataError, "building graph: %v", err)
	}

	if humanOutput {
		rows := make([][]cell, 0, len(g.Links))
		for _, l := range g.Links {
			rows = append(rows, cells(l.Source, l.Target, string(l.Type), strconv.Itoa(l.Value), strings.Join(l.SharedTags, " ")))
		}
		printTable([]string{"SOURCE", "TARGET", "TYPE", "VALUE", "SHARED"}, rows)
		outputHuman("\n%d links", len(g.Links))
		if len(g.Dropped) > 0 {
			outputHuman(", %s", subtle.Sprintf("%d dropped", len(g.Dropped)))
		}
		outputHuman("\n")
		return nil
	}

	links := g.Links
	if links == nil {
		links = []graph.Link{}
	}
	return outputJSON(LinksResponse{Links: links, Count: len(links), Dropped: len(g.Dropped)})
}

// parseRules turns a list like "tag,hierarchy" into derivation rules. The
// hierarchy rule comes from the dataset when it overrides the default.
func parseRules(s string, ds *dataset.Dataset) (graph.Rules, error) {
	var rules graph.Rules
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case string(graph.LinkTag):
			rules.Tags = true
		case string(graph.LinkCoTag), "co-tag":
			rules.CoTags = true
		case string(graph.LinkHierarchy):
			h := graph.DefaultHierarchy()
			if ds != nil && ds.Hierarchy != nil {
				h = *ds.Hierarchy
			}
			rules.Hierarchy = &h
		case "":
		default:
			return graph.Rules{}, fmt.Errorf("unknown rule %q (want tag, cotag or hierarchy)", name)
		}
	}
	return rules, nil
}
