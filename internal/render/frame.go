package render

import (
	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/graph"
)

// Emphasis marks how a node or link relates to the hovered node.
type Emphasis string

// Emphasis values. The zero value means no hover is active.
const (
	EmphasisNone  Emphasis = ""
	EmphasisFocus Emphasis = "focus" // the hovered node
	EmphasisOut   Emphasis = "out"   // reached by a link leaving the hovered node
	EmphasisIn    Emphasis = "in"    // reaches the hovered node
	EmphasisDim   Emphasis = "dim"
)

// DimFactor scales the opacity of everything outside the hover
// neighborhood.
const DimFactor = 0.15

// NodeView is one node in screen space.
type NodeView struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Kind     graph.Kind `json:"kind"`
	URL      string     `json:"url,omitempty"`
	Color    string     `json:"color"`
	Stroke   string     `json:"stroke,omitempty"`
	X        float32    `json:"x"`
	Y        float32    `json:"y"`
	Depth    float32    `json:"depth,omitempty"`
	Radius   float32    `json:"r"`
	Spin     float32    `json:"spin,omitempty"`
	Opacity  float32    `json:"opacity"`
	Emphasis Emphasis   `json:"emphasis,omitempty"`

	// LabelX, LabelY anchor the label.
	LabelX float32 `json:"lx"`
	LabelY float32 `json:"ly"`
}

// LinkView is one link as a screen-space polyline from source to target.
type LinkView struct {
	Source    string           `json:"source"`
	Target    string           `json:"target"`
	Type      graph.LinkType   `json:"type"`
	Points    []math32.Vector2 `json:"points"`
	Color     string           `json:"color"`
	Width     float32          `json:"width"`
	Opacity   float32          `json:"opacity"`
	Arrow     bool             `json:"arrow,omitempty"`
	Direction Emphasis         `json:"direction,omitempty"`
}

// Frame is a renderer-neutral draw list. Nodes are in draw order.
type Frame struct {
	Renderer Kind       `json:"renderer"`
	Width    float32    `json:"width"`
	Height   float32    `json:"height"`
	Nodes    []NodeView `json:"nodes"`
	Links    []LinkView `json:"links"`
	Hover    string     `json:"hover,omitempty"`
	Demo     bool       `json:"demo,omitempty"`
	Physics  bool       `json:"physics,omitempty"`
	Alpha    float32    `json:"alpha,omitempty"`
}

// Node returns the view of id.
func (f Frame) Node(id string) (NodeView, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeView{}, false
}

// Link returns the first view of the link from source to target.
func (f Frame) Link(source, target string) (LinkView, bool) {
	for _, l := range f.Links {
		if l.Source == source && l.Target == target {
			return l, true
		}
	}
	return LinkView{}, false
}

// Node colors by kind.
const (
	ColorPDF     = "#00ffff"
	ColorPage    = "#ff00ff"
	ColorDefault = "#ffffff"
)

// NodeColor returns the fill for n; tag nodes take their color from colors.
func NodeColor(n graph.Node, colors map[string]string) string {
	switch {
	case n.IsTag():
		if c, ok := colors[n.ID]; ok {
			return c
		}
		return ColorDefault
	case n.Kind == graph.KindPDF:
		return ColorPDF
	case n.Kind == graph.KindPage:
		return ColorPage
	}
	return ColorDefault
}

// hover is the hover state shared by both renderers.
type hover struct {
	nb *graph.Neighborhood
}

func (h *hover) set(g *graph.Graph, id string) {
	nb := g.Neighborhood(id)
	h.nb = &nb
}

func (h *hover) clear() {
	h.nb = nil
}

func (h *hover) id() string {
	if h.nb == nil {
		return ""
	}
	return h.nb.Center
}

func (h *hover) node(id string) Emphasis {
	switch {
	case h.nb == nil:
		return EmphasisNone
	case id == h.nb.Center:
		return EmphasisFocus
	case h.nb.Out[id]:
		return EmphasisOut
	case h.nb.In[id]:
		return EmphasisIn
	}
	return EmphasisDim
}

func (h *hover) link(l graph.Link) Emphasis {
	switch {
	case h.nb == nil:
		return EmphasisNone
	case l.Source == h.nb.Center:
		return EmphasisOut
	case l.Target == h.nb.Center:
		return EmphasisIn
	}
	return EmphasisDim
}

func dim(opacity float32, e Emphasis) float32 {
	if e == EmphasisDim {
		return opacity * DimFactor
	}
	return opacity
}
