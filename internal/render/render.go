// Package render drives one of the two graph views behind a common
// interface: the 2D force layout and the 3D orbit scatter. A renderer owns
// all view state, takes pointer gestures and control changes, and produces a
// renderer-neutral Frame each tick.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matsen/kgraph/internal/force"
	"github.com/matsen/kgraph/internal/graph"
	"github.com/matsen/kgraph/internal/input"
	"github.com/matsen/kgraph/internal/navigate"
	"github.com/matsen/kgraph/internal/orbit"
)

// Kind names a renderer.
type Kind string

// Renderers.
const (
	KindForce Kind = "force"
	KindOrbit Kind = "orbit"
)

// Kinds lists every renderer.
var Kinds = []Kind{KindForce, KindOrbit}

var (
	ErrUnknownRenderer = errors.New("unknown renderer")
	ErrUnknownParam    = errors.New("unknown control")
	ErrNotBuilt        = errors.New("renderer has no graph")
)

// ParseKind validates a renderer name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRenderer, s)
}

// Param is a control-panel setting.
type Param string

// Controls. Toggles treat any non-zero value as on; demo and resetCamera
// are buttons and ignore the value.
const (
	ShowTags        Param = "showTags"
	ShowAttachments Param = "showAttachments"
	ShowOrphans     Param = "showOrphans"
	ShowArrows      Param = "showArrows"
	NodeSize        Param = "nodeSize"
	LinkWidth       Param = "linkWidth"
	LinkDistance    Param = "linkDistance"
	CenterForce     Param = "centerForce"
	LinkForce       Param = "linkForce"
	Demo            Param = "demo"
	ResetCamera     Param = "resetCamera"
	Physics         Param = "physics"
)

// Params lists every control.
var Params = []Param{
	ShowTags, ShowAttachments, ShowOrphans, ShowArrows,
	NodeSize, LinkWidth, LinkDistance, CenterForce, LinkForce,
	Demo, ResetCamera, Physics,
}

// ParseParam validates a control name.
func ParseParam(s string) (Param, error) {
	for _, p := range Params {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParam, s)
}

// Renderer is the capability shared by the 2D and 3D views. Renderers are
// not safe for concurrent use.
type Renderer interface {
	input.Handler

	Kind() Kind
	// Build replaces the graph. Node state survives where the renderer can
	// keep it.
	Build(g *graph.Graph) error
	// ApplyControl changes one setting. Settings the renderer does not
	// support are logged and ignored.
	ApplyControl(p Param, value float64) error
	// Advance runs one frame of animation at now and reports whether
	// anything moved.
	Advance(now time.Time) bool
	Resize(w, h float32)
	// SetColors replaces the tag colors.
	SetColors(colors map[string]string)
	Frame() Frame
	Teardown()
}

// Config carries everything a renderer needs at construction.
type Config struct {
	Width  float32
	Height float32

	Force force.Params
	Orbit orbit.Params

	IdleAfter   time.Duration
	RevealEvery time.Duration

	Filter     graph.Filter
	ShowArrows bool
	NodeSize   float32
	LinkWidth  float32

	// Colors maps tag ids to CSS colors.
	Colors map[string]string

	// OnNavigate is called when a click lands on a node with a URL.
	OnNavigate func(navigate.Target)
}

// DefaultConfig returns the settings the site starts with.
func DefaultConfig() Config {
	return Config{
		Width:       960,
		Height:      600,
		Force:       force.DefaultParams(),
		Orbit:       orbit.DefaultParams(),
		IdleAfter:   force.DefaultIdleAfter,
		RevealEvery: force.DefaultRevealEvery,
		Filter:      graph.ShowAll(),
		NodeSize:    8,
		LinkWidth:   1.5,
	}
}

// New returns the renderer named by kind. Call Build before use.
func New(kind Kind, cfg Config) (Renderer, error) {
	switch kind {
	case KindForce:
		return NewForce2D(cfg), nil
	case KindOrbit:
		return NewOrbit3D(cfg), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, kind)
}

func unsupported(k Kind, p Param) {
	slog.Info("control not supported by renderer", "renderer", k, "param", p)
}

func on(v float64) bool {
	return v != 0
}

// setFilter updates f for a visibility toggle and reports whether p was one.
func setFilter(f *graph.Filter, p Param, v float64) bool {
	switch p {
	case ShowTags:
		f.ShowTags = on(v)
	case ShowAttachments:
		f.ShowAttachments = on(v)
	case ShowOrphans:
		f.ShowOrphans = on(v)
	default:
		return false
	}
	return true
}

func (c Config) navigate(n graph.Node) {
	if !n.HasURL() || c.OnNavigate == nil {
		return
	}
	c.OnNavigate(navigate.Target{NodeID: n.ID, URL: n.URL})
}
