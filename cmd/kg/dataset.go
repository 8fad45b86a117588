package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matsen/kgraph/internal/dataset"
	"github.com/matsen/kgraph/internal/graph"
	"github.com/matsen/kgraph/internal/pdf"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect, import and convert datasets",
}

var datasetValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report problems in the dataset",
	Long: `Report every problem in the dataset: invalid nodes, duplicate ids and
tags that no tag node defines. Exits with status 3 if any are found.`,
	Args: cobra.NoArgs,
	RunE: runDatasetValidate,
}

var (
	scanTags      []string
	scanURLPrefix string
	scanGroup     int
	scanOutput    string
	scanAppend    bool
)

var datasetScanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Turn a directory of PDFs into attachment nodes",
	Long: `Read every PDF in a directory and print one attachment node per file
as JSONL. The node title is the first substantial line of page one.

Examples:
  kg dataset scan ./attachments --tag "#QFT" --url-prefix /files/
  kg dataset scan ./attachments -o nodes.jsonl --append`,
	Args: cobra.ExactArgs(1),
	RunE: runDatasetScan,
}

var exportFormat string

var datasetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dataset in another format",
	Long: `Write the dataset to stdout as yaml, toml, json or jsonl. JSONL holds
nodes only; colors and the hierarchy override are left out.`,
	Args: cobra.NoArgs,
	RunE: runDatasetExport,
}

func init() {
	datasetScanCmd.Flags().StringSliceVarP(&scanTags, "tag", "t", nil, "Tag given to every attachment (repeatable)")
	datasetScanCmd.Flags().StringVar(&scanURLPrefix, "url-prefix", "", "Prefix joined with the file name to form node URLs")
	datasetScanCmd.Flags().IntVar(&scanGroup, "group", 0, "Group for every attachment")
	datasetScanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Write JSONL to a file instead of stdout")
	datasetScanCmd.Flags().BoolVar(&scanAppend, "append", false, "Append to the output file instead of replacing it")
	datasetExportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(dataset.FormatYAML), "Output format: yaml, toml, json, jsonl")

	datasetCmd.AddCommand(datasetValidateCmd)
	datasetCmd.AddCommand(datasetScanCmd)
	datasetCmd.AddCommand(datasetExportCmd)
	rootCmd.AddCommand(datasetCmd)
}

// ValidateResponse is the response for dataset validate.
type ValidateResponse struct {
	Valid    bool              `json:"valid"`
	Nodes    int               `json:"nodes"`
	Links    int               `json:"links"`
	Problems []dataset.Problem `json:"problems"`
}

func runDatasetValidate(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)

	resp := ValidateResponse{Nodes: len(ds.Nodes), Problems: ds.Validate()}
	if resp.Problems == nil {
		resp.Problems = []dataset.Problem{}
	}
	resp.Valid = len(resp.Problems) == 0
	if resp.Valid {
		if g, err := ds.Graph(cfg.Renderer); err == nil {
			resp.Links = len(g.Links)
		}
	}

	if humanOutput {
		for _, p := range resp.Problems {
			id := p.NodeID
			if id == "" {
				id = "(no id)"
			}
			outputHuman("%s %s: %s\n", statusIcon(false), id, p.Message)
		}
		if resp.Valid {
			outputHuman("%s %d nodes, %d links\n", statusIcon(true), resp.Nodes, resp.Links)
		} else {
			outputHuman("\n%d problems in %d nodes\n", len(resp.Problems), resp.Nodes)
		}
	} else if err := outputJSON(resp); err != nil {
		return err
	}
	if !resp.Valid {
		os.Exit(ExitDataError)
	}
	return nil
}

// ScanResponse is the response for dataset scan when writing to a file.
type ScanResponse struct {
	Output string `json:"output"`
	Nodes  int    `json:"nodes"`
	// Untitled counts files whose first page gave no title.
	Untitled int `json:"untitled"`
}

func runDatasetScan(cmd *cobra.Command, args []string) error {
	attachments, err := pdf.ScanDir(args[0])
	if err != nil {
		exitWithError(ExitDataError, "scanning %s: %v", args[0], err)
	}
	nodes := pdf.Nodes(attachments, pdf.ScanOptions{
		Tags:      scanTags,
		URLPrefix: scanURLPrefix,
		Group:     scanGroup,
	})

	if scanOutput == "" {
		return dataset.EncodeJSONL(os.Stdout, nodes)
	}

	write := dataset.WriteJSONL
	if scanAppend {
		write = dataset.AppendJSONL
	}
	if err := write(scanOutput, nodes); err != nil {
		exitWithError(ExitError, "writing %s: %v", scanOutput, err)
	}

	resp := ScanResponse{Output: scanOutput, Nodes: len(nodes)}
	for _, a := range attachments {
		if a.Title == "" {
			resp.Untitled++
		}
	}
	if humanOutput {
		rows := make([][]cell, 0, len(attachments))
		for i, a := range attachments {
			rows = append(rows, append(cells(nodes[i].ID, strconv.Itoa(a.Pages)), titleCell(nodes[i])))
		}
		printTable([]string{"NODE", "PAGES", "TITLE"}, rows)
		outputHuman("\n%s Wrote %d nodes to %s\n", statusIcon(true), resp.Nodes, scanOutput)
		return nil
	}
	return outputJSON(resp)
}

// titleCell returns the title for tables, or a placeholder.
func titleCell(n graph.Node) cell {
	if n.Title == "" {
		return cell{text: "-", color: subtle}
	}
	return cell{text: n.Title}
}

func runDatasetExport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)

	if err := ds.Encode(os.Stdout, dataset.Format(exportFormat)); err != nil {
		exitWithError(ExitError, "exporting dataset: %v", err)
	}
	return nil
}
