// Package pdf builds attachment nodes from PDF files.
package pdf

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/matsen/kgraph/internal/graph"
)

// MinTitleLen is the shortest first-page line accepted as a title.
const MinTitleLen = 20

// Attachment describes one PDF found on disk.
type Attachment struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Pages int    `json:"pages"`
}

// ScanOptions controls how attachments become nodes.
type ScanOptions struct {
	Tags      []string // tags given to every attachment
	URLPrefix string   // prefix joined with the file name to form the node URL
	Group     int
}

// ScanDir reads every *.pdf in dir (non-recursive), sorted by file name.
// Files that cannot be parsed are still returned, without title or page count.
func ScanDir(dir string) ([]Attachment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var out []Attachment
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		p := filepath.Join(dir, e.Name())
		a := Attachment{Path: p, Name: e.Name()}
		if title, pages, err := Inspect(p); err == nil {
			a.Title = title
			a.Pages = pages
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Inspect returns the first substantial line of page one and the page count.
func Inspect(filePath string) (string, int, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	pages := r.NumPage()
	if pages < 1 {
		return "", 0, nil
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", pages, nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", pages, nil
	}
	return firstTitleLine(text), pages, nil
}

func firstTitleLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= MinTitleLen && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

// isHeaderLine checks if a line is likely a running header or footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "copyright"):
		return true
	case strings.Contains(lower, "journal"):
		return true
	case strings.HasPrefix(lower, "page "):
		return true
	}
	return false
}

// NodeID is the node identifier for a PDF: the file name with underscores
// shown as spaces ("PeskinQFT_Sec2-1.pdf" -> "PeskinQFT Sec2-1.pdf").
func NodeID(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// Nodes converts attachments into pdf nodes.
func Nodes(attachments []Attachment, opts ScanOptions) []graph.Node {
	nodes := make([]graph.Node, 0, len(attachments))
	for _, a := range attachments {
		n := graph.Node{
			ID:    NodeID(a.Name),
			Kind:  graph.KindPDF,
			Group: opts.Group,
			Title: a.Title,
		}
		if len(opts.Tags) > 0 {
			n.Tags = append([]string(nil), opts.Tags...)
		}
		if opts.URLPrefix != "" {
			n.URL = path.Join(opts.URLPrefix, a.Name)
		}
		nodes = append(nodes, n)
	}
	return nodes
}
