package viz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/render"
)

// svgLink is a link ready for the template.
type svgLink struct {
	D       string
	Color   string
	Width   string
	Opacity string
	Arrow   bool
}

// svgNode is a node ready for the template.
type svgNode struct {
	ID      string
	Label   string
	URL     string
	CX, CY  string
	R       string
	Fill    string
	Stroke  string
	Opacity string
	LX, LY  string
}

// num formats a coordinate with two decimals, trimming trailing zeros.
func num(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', 2, 32)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// pathData turns a polyline into an SVG path.
func pathData(pts []math32.Vector2) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		fmt.Fprintf(&b, "%s %s", num(p.X), num(p.Y))
	}
	return b.String()
}

// toSVG converts a frame to template elements in draw order. Invisible
// elements are dropped.
func toSVG(f *render.Frame) ([]svgLink, []svgNode) {
	links := make([]svgLink, 0, len(f.Links))
	for _, l := range f.Links {
		if l.Opacity <= 0 || len(l.Points) < 2 {
			continue
		}
		links = append(links, svgLink{
			D:       pathData(l.Points),
			Color:   l.Color,
			Width:   num(l.Width),
			Opacity: num(l.Opacity),
			Arrow:   l.Arrow,
		})
	}

	nodes := make([]svgNode, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.Opacity <= 0 {
			continue
		}
		nodes = append(nodes, svgNode{
			ID:      n.ID,
			Label:   n.Label,
			URL:     n.URL,
			CX:      num(n.X),
			CY:      num(n.Y),
			R:       num(n.Radius),
			Fill:    n.Color,
			Stroke:  n.Stroke,
			Opacity: num(n.Opacity),
			LX:      num(n.LabelX),
			LY:      num(n.LabelY),
		})
	}
	return links, nodes
}

// FrameJSON encodes a frame the way the preview server serves it at
// /frame.json.
func FrameJSON(f *render.Frame) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshaling frame to JSON: %w", err)
	}
	return string(data), nil
}
