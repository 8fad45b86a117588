package orbit

import (
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/graph"
)

// Node is the 3D state of one graph node.
type Node struct {
	graph.Node

	Pos        math32.Vector3
	Home       math32.Vector3 // initial placement
	BaseRadius float32
	Radius     float32
	Spin       float32
	Visible    bool
}

// LabelAnchor returns where the node's label sits.
func (n *Node) LabelAnchor() math32.Vector3 {
	return n.Pos.Add(math32.Vec3(0, n.Radius+1, 0))
}

// Edge is a link drawn as a curve between two nodes.
type Edge struct {
	Link    graph.Link
	Source  *Node
	Target  *Node
	Points  []math32.Vector3
	Visible bool
}

type drag struct {
	node   *Node
	plane  Plane
	offset math32.Vector3
}

// Scene owns node positions, link curves and the camera for the orbit view.
// It is driven from a single loop and is not safe for concurrent use.
type Scene struct {
	Camera  *Camera
	Physics bool

	params Params
	nodes  []*Node
	byID   map[string]*Node
	edges  []*Edge
	drag   *drag
}

// NewScene places every node of g on a sphere and builds its link curves.
// The same seed always gives the same placement.
func NewScene(g *graph.Graph, p Params) *Scene {
	s := &Scene{
		Camera: NewCamera(p),
		params: p,
		byID:   make(map[string]*Node, len(g.Nodes)),
	}
	rng := randx.NewSysRand(p.Seed)
	for _, gn := range g.Nodes {
		pos := PlaceOnSphere(rng, p.SphereRadius)
		n := &Node{
			Node:       gn,
			Pos:        pos,
			Home:       pos,
			BaseRadius: BaseRadius(gn),
			Visible:    true,
		}
		s.nodes = append(s.nodes, n)
		s.byID[gn.ID] = n
	}
	for _, l := range g.Links {
		src, tgt := s.byID[l.Source], s.byID[l.Target]
		if src == nil || tgt == nil {
			continue
		}
		s.edges = append(s.edges, &Edge{Link: l, Source: src, Target: tgt, Visible: true})
	}
	s.SetNodeSize(p.NodeSize)
	s.updateCurves()
	return s
}

// Params returns the scene tuning.
func (s *Scene) Params() Params {
	return s.params
}

// Nodes returns every node in dataset order.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// Edges returns every edge in derivation order.
func (s *Scene) Edges() []*Edge {
	return s.edges
}

// Node returns the node with id.
func (s *Scene) Node(id string) (*Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// SetVisibility hides nodes rejected by f, and edges with a hidden endpoint.
// g must be the graph the scene was built from.
func (s *Scene) SetVisibility(g *graph.Graph, f graph.Filter) {
	for _, n := range s.nodes {
		n.Visible = f.Visible(g, n.Node)
	}
	for _, e := range s.edges {
		e.Visible = e.Source.Visible && e.Target.Visible
	}
	if s.drag != nil && !s.drag.node.Visible {
		s.drag = nil
	}
}

// SetNodeSize rescales every node; 8 is the unscaled size.
func (s *Scene) SetNodeSize(v float32) {
	s.params.NodeSize = v
	scale := v / 8
	for _, n := range s.nodes {
		n.Radius = n.BaseRadius * scale
	}
}

// SetLinkDistance sets the physics rest length.
func (s *Scene) SetLinkDistance(d float32) {
	s.params.LinkDistance = d
}

// Pick returns the nearest visible node under ndc.
func (s *Scene) Pick(ndc math32.Vector2) (*Node, bool) {
	ray := s.Camera.Ray(ndc)
	var best *Node
	var bestT float32
	for _, n := range s.nodes {
		if !n.Visible {
			continue
		}
		t, ok := ray.IntersectSphere(n.Pos, n.Radius)
		if !ok {
			continue
		}
		if best == nil || t < bestT {
			best, bestT = n, t
		}
	}
	return best, best != nil
}

// BeginDrag picks the node under ndc and starts dragging it on the plane
// through the node facing the camera. It reports whether a node was hit.
func (s *Scene) BeginDrag(ndc math32.Vector2) (*Node, bool) {
	n, ok := s.Pick(ndc)
	if !ok {
		return nil, false
	}
	pl := Plane{Normal: s.Camera.Direction(), Point: n.Pos}
	hit, ok := pl.Intersect(s.Camera.Ray(ndc))
	if !ok {
		hit = n.Pos
	}
	s.drag = &drag{node: n, plane: pl, offset: n.Pos.Sub(hit)}
	return n, true
}

// DragTo moves the dragged node so that the grab point follows ndc.
func (s *Scene) DragTo(ndc math32.Vector2) bool {
	if s.drag == nil {
		return false
	}
	hit, ok := s.drag.plane.Intersect(s.Camera.Ray(ndc))
	if !ok {
		return false
	}
	s.drag.node.Pos = hit.Add(s.drag.offset)
	s.updateCurves()
	return true
}

// EndDrag releases the dragged node where it is.
func (s *Scene) EndDrag() {
	s.drag = nil
}

// Dragged returns the node being dragged, if any.
func (s *Scene) Dragged() *Node {
	if s.drag == nil {
		return nil
	}
	return s.drag.node
}

// Step advances one frame: camera easing, then either the physics nudge or
// the idle spin.
func (s *Scene) Step() {
	s.Camera.Update()
	if s.Physics {
		s.nudge()
		s.updateCurves()
	} else {
		for _, n := range s.nodes {
			if n.Visible && n != s.Dragged() {
				n.Spin = math32.Mod(n.Spin+s.params.Spin, 2*math32.Pi)
			}
		}
	}
}

// nudge applies one frame of weak centering and spring pull. It never
// settles; it runs for as long as physics is on.
func (s *Scene) nudge() {
	dragged := s.Dragged()
	rest := s.params.LinkDistance / 10
	for _, n := range s.nodes {
		if n == dragged || !n.Visible {
			continue
		}
		if l := n.Pos.Length(); l > 0 {
			n.Pos = n.Pos.Sub(n.Pos.MulScalar(s.params.CenterPull / l))
		}
		for _, e := range s.edges {
			if !e.Visible || (e.Source != n && e.Target != n) {
				continue
			}
			other := e.Source
			if other == n {
				other = e.Target
			}
			if other == dragged || !other.Visible {
				continue
			}
			d := n.Pos.Sub(other.Pos)
			l := d.Length()
			if l == 0 {
				continue
			}
			f := (l - rest) * s.params.SpringK
			n.Pos = n.Pos.Sub(d.MulScalar(f / l))
		}
	}
}

func (s *Scene) updateCurves() {
	for _, e := range s.edges {
		e.Points = Curve(e.Source.Pos, e.Target.Pos, s.params.CurveHeight, s.params.CurveSegments)
	}
}

// Reset restores the camera.
func (s *Scene) Reset() {
	s.Camera.Reset()
}
