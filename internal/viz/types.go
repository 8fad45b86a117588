// Package viz renders graph frames as HTML: a static SVG snapshot of one
// settled frame, and the live page the preview server streams frames to.
package viz

import (
	"github.com/matsen/kgraph/internal/render"
)

// ControlKind is how a control is drawn on the panel.
type ControlKind string

// Control kinds.
const (
	Toggle ControlKind = "toggle"
	Slider ControlKind = "range"
	Button ControlKind = "button"
)

// Control is one entry of the live page's control panel.
type Control struct {
	Param render.Param `json:"param"`
	Label string       `json:"label"`
	Kind  ControlKind  `json:"kind"`

	// Slider bounds; Value is the initial value, 1 or 0 for toggles.
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Step  float64 `json:"step,omitempty"`
	Value float64 `json:"value"`
}

// Controls returns the panel for renderer k starting from cfg. Controls the
// renderer ignores are left out.
func Controls(k render.Kind, cfg render.Config) []Control {
	b := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}
	cs := []Control{
		{Param: render.ShowTags, Label: "Tags", Kind: Toggle, Value: b(cfg.Filter.ShowTags)},
		{Param: render.ShowAttachments, Label: "Attachments", Kind: Toggle, Value: b(cfg.Filter.ShowAttachments)},
		{Param: render.ShowOrphans, Label: "Orphans", Kind: Toggle, Value: b(cfg.Filter.ShowOrphans)},
		{Param: render.ShowArrows, Label: "Arrows", Kind: Toggle, Value: b(cfg.ShowArrows)},
		{Param: render.NodeSize, Label: "Node size", Kind: Slider, Min: 2, Max: 20, Step: 1, Value: float64(cfg.NodeSize)},
		{Param: render.LinkWidth, Label: "Link width", Kind: Slider, Min: 0.5, Max: 5, Step: 0.5, Value: float64(cfg.LinkWidth)},
	}
	switch k {
	case render.KindForce:
		cs = append(cs,
			Control{Param: render.LinkDistance, Label: "Link distance", Kind: Slider, Min: 30, Max: 300, Step: 10, Value: float64(cfg.Force.LinkDistance)},
			Control{Param: render.CenterForce, Label: "Center force", Kind: Slider, Min: 0, Max: 1, Step: 0.05, Value: float64(cfg.Force.CenterStrength)},
			Control{Param: render.LinkForce, Label: "Link force", Kind: Slider, Min: 0, Max: 1, Step: 0.05, Value: float64(cfg.Force.LinkStrength)},
			Control{Param: render.Demo, Label: "Demo", Kind: Button},
			Control{Param: render.ResetCamera, Label: "Reset view", Kind: Button},
		)
	case render.KindOrbit:
		cs = append(cs,
			Control{Param: render.LinkDistance, Label: "Link distance", Kind: Slider, Min: 10, Max: 300, Step: 10, Value: float64(cfg.Orbit.LinkDistance)},
			Control{Param: render.Physics, Label: "Physics", Kind: Toggle},
			Control{Param: render.Demo, Label: "Demo", Kind: Button},
			Control{Param: render.ResetCamera, Label: "Reset camera", Kind: Button},
		)
	}
	return cs
}
