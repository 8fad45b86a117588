package render

import (
	"time"

	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/force"
	"github.com/matsen/kgraph/internal/graph"
)

// Zoom limits and wheel sensitivity of the 2D view.
const (
	MinScale     = 0.1
	MaxScale     = 4
	InitialScale = 0.8
	wheelFactor  = 0.002
)

// Link styling of the 2D view.
const (
	forceLinkColor   = "#00ffff"
	forceLinkOpacity = 0.6
	tagScale         = 0.75
)

// View is the pan and zoom transform from layout to screen coordinates.
type View struct {
	X, Y float32
	K    float32
}

// initialView zooms out to InitialScale about the center of a w x h viewport.
func initialView(w, h float32) View {
	return View{X: w / 2 * (1 - InitialScale), Y: h / 2 * (1 - InitialScale), K: InitialScale}
}

// Apply maps a layout point to the screen.
func (v View) Apply(p math32.Vector2) math32.Vector2 {
	return math32.Vec2(p.X*v.K+v.X, p.Y*v.K+v.Y)
}

// Invert maps a screen point to the layout.
func (v View) Invert(x, y float32) math32.Vector2 {
	return math32.Vec2((x-v.X)/v.K, (y-v.Y)/v.K)
}

// Force2D is the force-directed renderer.
type Force2D struct {
	cfg  Config
	base *graph.Graph // every node, for filtering
	vis  *graph.Graph // nodes passing the filter
	sim  *force.Simulation
	demo *force.Demo
	view View
	hov  hover

	dragging  string
	linkWidth float32
	widthSet  bool
	w, h      float32
	now       time.Time // last time seen, for controls
}

// NewForce2D returns an unbuilt force renderer.
func NewForce2D(cfg Config) *Force2D {
	return &Force2D{
		cfg:       cfg,
		linkWidth: cfg.LinkWidth,
		w:         cfg.Width,
		h:         cfg.Height,
		view:      initialView(cfg.Width, cfg.Height),
	}
}

func (r *Force2D) Kind() Kind { return KindForce }

// Simulation exposes the layout engine.
func (r *Force2D) Simulation() *force.Simulation { return r.sim }

// Build replaces the graph. Nodes already laid out keep their positions.
func (r *Force2D) Build(g *graph.Graph) error {
	if g == nil || g.IsEmpty() {
		return graph.ErrEmptyGraph
	}
	r.EndDrag()
	r.base = g
	r.vis = r.cfg.Filter.Apply(g)
	r.hov.clear()
	if r.sim == nil {
		p := r.cfg.Force
		p.Width, p.Height = r.w, r.h
		r.sim = force.New(r.vis, p)
		r.demo = force.NewDemo(r.sim)
		r.demo.IdleAfter = r.cfg.IdleAfter
		r.demo.RevealEvery = r.cfg.RevealEvery
		return nil
	}
	if r.demo.Running() {
		r.demo.Stop()
	}
	r.sim.SetGraph(r.vis)
	r.sim.Restart()
	return nil
}

func (r *Force2D) refilter() {
	r.vis = r.cfg.Filter.Apply(r.base)
	if r.hov.id() != "" && !r.vis.Has(r.hov.id()) {
		r.hov.clear()
	}
	if r.dragging != "" && !r.vis.Has(r.dragging) {
		r.EndDrag()
	}
	r.sim.SetGraph(r.vis)
	r.demo.Refresh()
	r.sim.Restart()
}

// ApplyControl changes one setting and reheats the layout.
func (r *Force2D) ApplyControl(p Param, v float64) error {
	if r.sim == nil {
		return ErrNotBuilt
	}
	f := float32(v)
	if setFilter(&r.cfg.Filter, p, v) {
		r.refilter()
		return nil
	}
	switch p {
	case ShowArrows:
		r.cfg.ShowArrows = on(v)
	case NodeSize:
		r.cfg.NodeSize = f
	case LinkWidth:
		r.linkWidth = f
		r.widthSet = true
	case LinkDistance:
		r.sim.SetLinkDistance(f, 10)
	case CenterForce:
		r.sim.SetCenterStrength(f)
	case LinkForce:
		r.sim.SetLinkStrength(f)
	case Demo:
		if r.demo.Running() {
			r.demo.Stop()
		} else {
			r.demo.Start(r.clock())
		}
	case ResetCamera:
		r.view = initialView(r.w, r.h)
	case Physics:
		unsupported(KindForce, p)
		return nil
	default:
		return ErrUnknownParam
	}
	r.sim.Restart()
	return nil
}

// Advance steps the demo and the simulation.
func (r *Force2D) Advance(now time.Time) bool {
	if r.sim == nil {
		return false
	}
	r.now = now
	changed := r.demo.Advance(now)
	return r.sim.Step() || changed
}

// Resize recenters the layout on a w x h viewport.
func (r *Force2D) Resize(w, h float32) {
	r.w, r.h = w, h
	if r.sim != nil {
		r.sim.Resize(w, h)
		r.sim.Restart()
	}
}

func (r *Force2D) SetColors(colors map[string]string) {
	r.cfg.Colors = colors
}

// Interacted counts any input as activity, postponing the idle demo.
func (r *Force2D) Interacted(at time.Time) {
	r.now = at
	if r.demo != nil {
		r.demo.Interact(at)
	}
}

func (r *Force2D) clock() time.Time {
	if r.now.IsZero() {
		return time.Now()
	}
	return r.now
}

func (r *Force2D) radius(n graph.Node) float32 {
	if n.IsTag() {
		return r.cfg.NodeSize * tagScale
	}
	return r.cfg.NodeSize
}

// hit returns the topmost visible node under the screen point (x, y).
func (r *Force2D) hit(x, y float32) (graph.Node, bool) {
	if r.sim == nil {
		return graph.Node{}, false
	}
	p := r.view.Invert(x, y)
	bodies := r.sim.Bodies()
	for i := len(bodies) - 1; i >= 0; i-- {
		n := r.vis.Nodes[i]
		if !r.demo.NodeVisible(n.ID) {
			continue
		}
		rad := r.radius(n)
		if bodies[i].Pos.Sub(p).Length() <= rad {
			return n, true
		}
	}
	return graph.Node{}, false
}

// BeginDrag pins the node under (x, y) and keeps the layout warm.
func (r *Force2D) BeginDrag(x, y float32) bool {
	n, ok := r.hit(x, y)
	if !ok {
		return false
	}
	b, _ := r.sim.Body(n.ID)
	_ = r.sim.Pin(n.ID, b.Pos.X, b.Pos.Y)
	r.sim.SetAlphaTarget(r.cfg.Force.RestartAlpha)
	r.sim.Restart()
	r.dragging = n.ID
	return true
}

// DragTo moves the pinned node under the pointer.
func (r *Force2D) DragTo(x, y float32) {
	if r.dragging == "" {
		return
	}
	p := r.view.Invert(x, y)
	_ = r.sim.Pin(r.dragging, p.X, p.Y)
}

// EndDrag releases the dragged node.
func (r *Force2D) EndDrag() {
	if r.dragging == "" {
		return
	}
	r.sim.Unpin(r.dragging)
	r.sim.SetAlphaTarget(0)
	r.dragging = ""
}

// Orbit pans; the 2D view has no rotation.
func (r *Force2D) Orbit(dx, dy float32) {
	r.Pan(dx, dy)
}

// Pan translates the view.
func (r *Force2D) Pan(dx, dy float32) {
	r.view.X += dx
	r.view.Y += dy
}

// Zoom scales the view about (x, y).
func (r *Force2D) Zoom(x, y, delta float32) {
	k := math32.Clamp(r.view.K*math32.Pow(2, -delta*wheelFactor), MinScale, MaxScale)
	r.view.X = x - (x-r.view.X)*k/r.view.K
	r.view.Y = y - (y-r.view.Y)*k/r.view.K
	r.view.K = k
}

// Click navigates to the node under (x, y) if it has a URL.
func (r *Force2D) Click(x, y float32) {
	if n, ok := r.hit(x, y); ok {
		r.cfg.navigate(n)
	}
}

// Hover emphasizes the neighborhood of the node under (x, y).
func (r *Force2D) Hover(x, y float32) {
	if n, ok := r.hit(x, y); ok {
		r.hov.set(r.vis, n.ID)
		return
	}
	r.hov.clear()
}

// ClearHover removes emphasis.
func (r *Force2D) ClearHover() {
	r.hov.clear()
}

func (r *Force2D) width(l graph.Link) float32 {
	shared := float32(l.Shared())
	switch {
	case r.widthSet && shared > 0:
		return r.linkWidth * shared
	case r.widthSet:
		return r.linkWidth
	case shared > 0:
		return shared * 1.5
	}
	return 1
}

// Frame draws links under nodes in dataset order.
func (r *Force2D) Frame() Frame {
	f := Frame{Renderer: KindForce, Width: r.w, Height: r.h, Hover: r.hov.id()}
	if r.sim == nil {
		return f
	}
	f.Demo = r.demo.Running()
	f.Alpha = r.sim.Alpha()

	for _, sp := range r.sim.Springs() {
		l := sp.Link
		e := r.hov.link(l)
		op := float32(forceLinkOpacity)
		if !r.demo.LinkVisible(l.Source, l.Target) {
			op = 0
		}
		f.Links = append(f.Links, LinkView{
			Source:    l.Source,
			Target:    l.Target,
			Type:      l.Type,
			Points:    []math32.Vector2{r.view.Apply(sp.Source.Pos), r.view.Apply(sp.Target.Pos)},
			Color:     forceLinkColor,
			Width:     r.width(l) * r.view.K,
			Opacity:   dim(op, e),
			Arrow:     r.cfg.ShowArrows,
			Direction: e,
		})
	}

	for i, b := range r.sim.Bodies() {
		n := r.vis.Nodes[i]
		e := r.hov.node(n.ID)
		var op float32 = 1
		if !r.demo.NodeVisible(n.ID) {
			op = 0
		}
		rad := r.radius(n) * r.view.K
		p := r.view.Apply(b.Pos)
		nv := NodeView{
			ID:       n.ID,
			Label:    n.Label(),
			Kind:     n.Kind,
			URL:      n.URL,
			Color:    NodeColor(n, r.cfg.Colors),
			X:        p.X,
			Y:        p.Y,
			Radius:   rad,
			Opacity:  dim(op, e),
			Emphasis: e,
			LabelX:   p.X + 12*r.view.K,
			LabelY:   p.Y,
		}
		if n.IsTag() {
			nv.Stroke = ColorDefault
		}
		f.Nodes = append(f.Nodes, nv)
	}
	return f
}

// Teardown drops all state; Build must be called again before use.
func (r *Force2D) Teardown() {
	r.sim = nil
	r.demo = nil
	r.base, r.vis = nil, nil
	r.hov.clear()
	r.dragging = ""
}
