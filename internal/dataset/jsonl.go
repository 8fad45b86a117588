package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/kgraph/internal/graph"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

func decodeJSONL(r io.Reader) ([]graph.Node, error) {
	var nodes []graph.Node
	scanner := bufio.NewScanner(r)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var n graph.Node
		if err := json.Unmarshal(line, &n); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		nodes = append(nodes, n)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading nodes: %w", err)
	}
	return nodes, nil
}

// ReadJSONL reads nodes from a JSONL file, one node per line.
// A missing file yields no nodes.
func ReadJSONL(path string) ([]graph.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening nodes file: %w", err)
	}
	defer f.Close()
	return decodeJSONL(f)
}

// EncodeJSONL writes nodes to w, one per line.
func EncodeJSONL(w io.Writer, nodes []graph.Node) error {
	for i, n := range nodes {
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encoding node %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing node %d: %w", i, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return nil
}

// WriteJSONL writes all nodes to a JSONL file, replacing existing content.
func WriteJSONL(path string, nodes []graph.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating nodes file: %w", err)
	}
	defer f.Close()
	return EncodeJSONL(f, nodes)
}

// AppendJSONL adds nodes to the end of a JSONL file.
func AppendJSONL(path string, nodes []graph.Node) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening nodes file for append: %w", err)
	}
	defer f.Close()
	return EncodeJSONL(f, nodes)
}
