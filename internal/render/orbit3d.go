package render

import (
	"sort"
	"time"

	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/graph"
	"github.com/matsen/kgraph/internal/orbit"
)

// Link styling of the 3D view.
const (
	orbitLinkOpacity = 0.5
	orbitBaseWidth   = 1.5
)

var orbitLinkColors = map[graph.LinkType]string{
	graph.LinkTag:       "#00ffff",
	graph.LinkHierarchy: "#00ff00",
}

const orbitLinkDefault = "#555555"

// Orbit3D is the orbit-camera renderer.
type Orbit3D struct {
	cfg   Config
	base  *graph.Graph
	scene *orbit.Scene
	hov   hover

	linkWidth float32
	w, h      float32
}

// NewOrbit3D returns an unbuilt orbit renderer.
func NewOrbit3D(cfg Config) *Orbit3D {
	return &Orbit3D{cfg: cfg, linkWidth: cfg.LinkWidth, w: cfg.Width, h: cfg.Height}
}

func (r *Orbit3D) Kind() Kind { return KindOrbit }

// Scene exposes the 3D state.
func (r *Orbit3D) Scene() *orbit.Scene { return r.scene }

// Build places g on the sphere. Positions are not carried over from a
// previous graph; the camera is.
func (r *Orbit3D) Build(g *graph.Graph) error {
	if g == nil || g.IsEmpty() {
		return graph.ErrEmptyGraph
	}
	var cam *orbit.Camera
	physics := false
	if r.scene != nil {
		cam = r.scene.Camera
		physics = r.scene.Physics
	}
	p := r.cfg.Orbit
	p.NodeSize = r.cfg.NodeSize
	r.base = g
	r.scene = orbit.NewScene(g, p)
	if cam != nil {
		r.scene.Camera = cam
	}
	r.scene.Physics = physics
	r.scene.Camera.Aspect = r.w / r.h
	r.scene.SetVisibility(g, r.cfg.Filter)
	r.hov.clear()
	return nil
}

// ApplyControl changes one setting. The demo button toggles physics.
func (r *Orbit3D) ApplyControl(p Param, v float64) error {
	if r.scene == nil {
		return ErrNotBuilt
	}
	f := float32(v)
	if setFilter(&r.cfg.Filter, p, v) {
		r.scene.SetVisibility(r.base, r.cfg.Filter)
		if n, ok := r.scene.Node(r.hov.id()); ok && !n.Visible {
			r.hov.clear()
		}
		return nil
	}
	switch p {
	case ShowArrows:
		r.cfg.ShowArrows = on(v)
	case NodeSize:
		r.cfg.NodeSize = f
		r.scene.SetNodeSize(f)
	case LinkWidth:
		r.linkWidth = f
	case LinkDistance:
		r.scene.SetLinkDistance(f)
	case Physics:
		r.scene.Physics = on(v)
	case Demo:
		r.scene.Physics = !r.scene.Physics
	case ResetCamera:
		r.scene.Reset()
	case CenterForce, LinkForce:
		unsupported(KindOrbit, p)
	default:
		return ErrUnknownParam
	}
	return nil
}

// Advance eases the camera and runs physics or the idle spin. The view
// never settles, so it always reports a change.
func (r *Orbit3D) Advance(time.Time) bool {
	if r.scene == nil {
		return false
	}
	r.scene.Step()
	return true
}

// Resize sets the viewport and camera aspect.
func (r *Orbit3D) Resize(w, h float32) {
	r.w, r.h = w, h
	if r.scene != nil {
		r.scene.Camera.Aspect = w / h
	}
}

func (r *Orbit3D) SetColors(colors map[string]string) {
	r.cfg.Colors = colors
}

func (r *Orbit3D) ndc(x, y float32) math32.Vector2 {
	return orbit.NDC(x, y, r.w, r.h)
}

// Interacted is a no-op; the orbit view has no idle demo.
func (r *Orbit3D) Interacted(time.Time) {}

// BeginDrag grabs the node under (x, y).
func (r *Orbit3D) BeginDrag(x, y float32) bool {
	if r.scene == nil {
		return false
	}
	_, ok := r.scene.BeginDrag(r.ndc(x, y))
	return ok
}

// DragTo moves the grabbed node in its drag plane.
func (r *Orbit3D) DragTo(x, y float32) {
	if r.scene != nil {
		r.scene.DragTo(r.ndc(x, y))
	}
}

// EndDrag releases the grabbed node.
func (r *Orbit3D) EndDrag() {
	if r.scene != nil {
		r.scene.EndDrag()
	}
}

// Orbit rotates the camera.
func (r *Orbit3D) Orbit(dx, dy float32) {
	if r.scene != nil {
		r.scene.Camera.Rotate(dx, dy)
	}
}

// Pan moves the orbit center.
func (r *Orbit3D) Pan(dx, dy float32) {
	if r.scene != nil {
		r.scene.Camera.PanBy(dx, dy)
	}
}

// Zoom steps the camera distance.
func (r *Orbit3D) Zoom(_, _, delta float32) {
	if r.scene != nil {
		r.scene.Camera.Zoom(delta)
	}
}

// Click navigates to the picked node if it has a URL.
func (r *Orbit3D) Click(x, y float32) {
	if r.scene == nil {
		return
	}
	if n, ok := r.scene.Pick(r.ndc(x, y)); ok {
		r.cfg.navigate(n.Node)
	}
}

// Hover emphasizes the neighborhood of the picked node.
func (r *Orbit3D) Hover(x, y float32) {
	if r.scene == nil {
		return
	}
	if n, ok := r.scene.Pick(r.ndc(x, y)); ok {
		r.hov.set(r.base, n.ID)
		return
	}
	r.hov.clear()
}

// ClearHover removes emphasis.
func (r *Orbit3D) ClearHover() {
	r.hov.clear()
}

// linkOpacity maps the link width control to opacity; WebGL lines have a
// fixed width.
func (r *Orbit3D) linkOpacity() float32 {
	return math32.Min(orbitLinkOpacity*(r.linkWidth/orbitBaseWidth), 1)
}

// Frame projects visible nodes and link curves. Nodes are sorted far to
// near; anything behind the camera is skipped.
func (r *Orbit3D) Frame() Frame {
	f := Frame{Renderer: KindOrbit, Width: r.w, Height: r.h, Hover: r.hov.id()}
	if r.scene == nil {
		return f
	}
	cam := r.scene.Camera
	f.Physics = r.scene.Physics

	linkOp := r.linkOpacity()
	for _, e := range r.scene.Edges() {
		if !e.Visible {
			continue
		}
		pts := make([]math32.Vector2, 0, len(e.Points))
		for _, p := range e.Points {
			ndc, _, ok := cam.Project(p)
			if !ok {
				pts = nil
				break
			}
			pts = append(pts, orbit.Screen(ndc, r.w, r.h))
		}
		if pts == nil {
			continue
		}
		color, ok := orbitLinkColors[e.Link.Type]
		if !ok {
			color = orbitLinkDefault
		}
		em := r.hov.link(e.Link)
		f.Links = append(f.Links, LinkView{
			Source:    e.Link.Source,
			Target:    e.Link.Target,
			Type:      e.Link.Type,
			Points:    pts,
			Color:     color,
			Width:     1,
			Opacity:   dim(linkOp, em),
			Arrow:     r.cfg.ShowArrows,
			Direction: em,
		})
	}

	for _, n := range r.scene.Nodes() {
		if !n.Visible {
			continue
		}
		ndc, depth, ok := cam.Project(n.Pos)
		if !ok {
			continue
		}
		p := orbit.Screen(ndc, r.w, r.h)
		scale := cam.PixelScale(depth, r.h)
		nv := NodeView{
			ID:      n.ID,
			Label:   n.Label(),
			Kind:    n.Kind,
			URL:     n.URL,
			Color:   NodeColor(n.Node, r.cfg.Colors),
			X:       p.X,
			Y:       p.Y,
			Depth:   depth,
			Radius:  n.Radius * scale,
			Spin:    n.Spin,
			Opacity: 1,
			LabelX:  p.X,
			LabelY:  p.Y,
		}
		if lndc, _, ok := cam.Project(n.LabelAnchor()); ok {
			lp := orbit.Screen(lndc, r.w, r.h)
			nv.LabelX, nv.LabelY = lp.X, lp.Y
		}
		nv.Emphasis = r.hov.node(n.ID)
		nv.Opacity = dim(nv.Opacity, nv.Emphasis)
		f.Nodes = append(f.Nodes, nv)
	}
	sort.SliceStable(f.Nodes, func(i, j int) bool {
		return f.Nodes[i].Depth > f.Nodes[j].Depth
	})
	return f
}

// Teardown drops the scene; Build must be called again before use.
func (r *Orbit3D) Teardown() {
	r.scene = nil
	r.base = nil
	r.hov.clear()
}
