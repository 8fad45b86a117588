// Package dataset loads the node literals a graph is built from.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matsen/kgraph/internal/graph"
)

//go:embed default.yml
var defaultYAML []byte

// Format names a dataset file encoding.
type Format string

// Supported formats.
const (
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// Dataset is a literal graph description plus its display hints.
type Dataset struct {
	Name      string               `json:"name" yaml:"name" toml:"name"`
	Colors    map[string]string    `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors"`
	Hierarchy *graph.HierarchyRule `json:"hierarchy,omitempty" yaml:"hierarchy,omitempty" toml:"hierarchy"`
	Nodes     []graph.Node         `json:"nodes" yaml:"nodes" toml:"nodes"`
}

// Default returns the embedded study-trail dataset.
func Default() (*Dataset, error) {
	return Parse(defaultYAML, FormatYAML)
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q (use .yml, .toml, .json or .jsonl)", filepath.Ext(path))
	}
}

// Load reads a dataset file. An empty path loads the embedded default.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	ds, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ds, nil
}

// Parse decodes a dataset in the given format.
func Parse(data []byte, format Format) (*Dataset, error) {
	var ds Dataset
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, err
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &ds); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, err
		}
	case FormatJSONL:
		nodes, err := decodeJSONL(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		ds.Nodes = nodes
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return &ds, nil
}

// Encode writes the dataset in the given format. JSONL carries only the
// nodes.
func (ds *Dataset) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(ds)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	case FormatJSONL:
		return EncodeJSONL(w, ds.Nodes)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Rules returns the derivation rules for renderer, honoring a dataset-level
// hierarchy override.
func (ds *Dataset) Rules(renderer string) graph.Rules {
	rules := graph.RulesFor(renderer)
	if rules.Hierarchy != nil && ds.Hierarchy != nil {
		h := *ds.Hierarchy
		rules.Hierarchy = &h
	}
	return rules
}

// Graph builds the graph a renderer consumes.
func (ds *Dataset) Graph(renderer string) (*graph.Graph, error) {
	if len(ds.Nodes) == 0 {
		return nil, graph.ErrEmptyGraph
	}
	return graph.New(ds.Nodes, ds.Rules(renderer))
}

// Color returns the display color for a tag, or "" if none is set.
func (ds *Dataset) Color(tag string) string {
	return ds.Colors[tag]
}

// Problem is a validation finding for one node.
type Problem struct {
	NodeID  string `json:"node_id,omitempty"`
	Message string `json:"message"`
}

// Validate reports problems without failing on the first one.
// Dangling tag references are reported here even though graph building
// drops them silently.
func (ds *Dataset) Validate() []Problem {
	var problems []Problem
	seen := make(map[string]bool, len(ds.Nodes))
	for _, n := range ds.Nodes {
		if err := n.Validate(); err != nil {
			problems = append(problems, Problem{NodeID: n.ID, Message: err.Error()})
			continue
		}
		if seen[n.ID] {
			problems = append(problems, Problem{NodeID: n.ID, Message: graph.ErrDuplicateID.Error()})
		}
		seen[n.ID] = true
	}
	for _, n := range ds.Nodes {
		for _, tag := range n.Tags {
			if !seen[tag] {
				problems = append(problems, Problem{NodeID: n.ID, Message: fmt.Sprintf("tag %s has no tag node", tag)})
			}
		}
	}
	return problems
}
