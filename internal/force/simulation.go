package force

import (
	"fmt"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/graph"
)

const (
	initialRadius = 10
	// initialAngle is the golden angle used for the phyllotaxis start layout.
	initialAngle = math32.Pi * (3 - 2.2360679775)
)

// Body is the simulated state of one node.
type Body struct {
	ID    string
	Index int
	Tag   bool
	Pos   math32.Vector2
	Vel   math32.Vector2

	// Fixed pins the body while non-nil.
	Fixed *math32.Vector2
}

// Spring is an active link between two bodies.
type Spring struct {
	Link   graph.Link
	Source *Body
	Target *Body
}

// jiggler produces tiny deterministic offsets to separate coincident points.
type jiggler struct {
	rng randx.Rand
}

func newJiggler(seed uint64) *jiggler {
	return &jiggler{rng: randx.NewSysRand(int64(seed))}
}

func (j *jiggler) next() float32 {
	return (j.rng.Float32() - 0.5) * 1e-6
}

// Simulation owns every body position and the active force set. It is not
// safe for concurrent use; callers drive it from a single loop.
type Simulation struct {
	params Params

	alpha       float32
	alphaTarget float32

	all     map[string]*Body // every body ever seen, so positions survive filtering
	bodies  []*Body          // active bodies
	springs []*Spring        // active springs

	Link    *LinkForce
	Charge  *ManyBody
	Center  *Center
	X, Y    *Position
	Collide *Collide

	jig   *jiggler
	ticks int
}

// New creates a simulation over g with alpha = 1.
func New(g *graph.Graph, p Params) *Simulation {
	s := &Simulation{
		params: p,
		alpha:  1,
		all:    make(map[string]*Body),
		jig:    newJiggler(p.Seed),
	}
	s.Link = &LinkForce{Strength: p.LinkStrength, Distance: s.springDistance(p.LinkDistance, p.LinkShrink)}
	s.Charge = &ManyBody{Strength: s.classStrength(nil), DistanceMin2: 1}
	s.Center = &Center{X: p.Width / 2, Y: p.Height / 2, Strength: p.CenterStrength}
	s.Collide = &Collide{Radius: p.CollideRadius, Strength: 1}
	s.X = &Position{Axis: AxisX, Target: p.Width / 2, Strength: p.AxisStrength}
	s.Y = &Position{Axis: AxisY, Target: p.Height / 2, Strength: p.AxisStrength}
	s.SetGraph(g)
	return s
}

func (s *Simulation) springDistance(base, shrink float32) func(*Spring) float32 {
	return func(sp *Spring) float32 {
		d := base
		if sp.Link.Type == graph.LinkCoTag {
			d -= float32(sp.Link.Shared()) * shrink
		}
		return max(d, 1)
	}
}

// classStrength returns the per-class charge. When only is non-nil, bodies
// outside it carry no charge.
func (s *Simulation) classStrength(only map[string]bool) func(*Body) float32 {
	return func(b *Body) float32 {
		if only != nil && !only[b.ID] {
			return 0
		}
		if b.Tag {
			return s.params.ChargeTag
		}
		return s.params.ChargeContent
	}
}

func (s *Simulation) forces() []Force {
	return []Force{s.Link, s.Charge, s.Center, s.Collide, s.X, s.Y}
}

// SetGraph replaces the active bodies and springs. Bodies that were active
// before keep their position and velocity; new ones are placed on a spiral.
func (s *Simulation) SetGraph(g *graph.Graph) {
	s.bodies = s.bodies[:0]
	for i, n := range g.Nodes {
		b, ok := s.all[n.ID]
		if !ok {
			b = &Body{ID: n.ID, Tag: n.IsTag()}
			r := initialRadius * math32.Sqrt(0.5+float32(len(s.all)))
			a := float32(len(s.all)) * initialAngle
			b.Pos = math32.Vec2(r*math32.Cos(a), r*math32.Sin(a))
			s.all[n.ID] = b
		}
		b.Index = i
		if b.Fixed != nil {
			b.Pos = *b.Fixed
		}
		s.bodies = append(s.bodies, b)
	}

	s.springs = s.springs[:0]
	for _, l := range g.Links {
		src, tgt := s.all[l.Source], s.all[l.Target]
		if src == nil || tgt == nil {
			continue
		}
		s.springs = append(s.springs, &Spring{Link: l, Source: src, Target: tgt})
	}
	s.initialize()
}

func (s *Simulation) initialize() {
	for _, f := range s.forces() {
		f.Initialize(s.bodies, s.springs, s.jig)
	}
}

// Params returns the current tuning.
func (s *Simulation) Params() Params {
	return s.params
}

// Alpha returns the current energy.
func (s *Simulation) Alpha() float32 {
	return s.alpha
}

// AlphaTarget returns the value alpha decays toward.
func (s *Simulation) AlphaTarget() float32 {
	return s.alphaTarget
}

// Ticks returns how many ticks have run.
func (s *Simulation) Ticks() int {
	return s.ticks
}

// Idle reports whether alpha has fallen below the stop threshold.
func (s *Simulation) Idle() bool {
	return s.alpha < s.params.AlphaMin
}

// Reheat sets alpha so iteration resumes on the next Step.
func (s *Simulation) Reheat(alpha float32) {
	s.alpha = alpha
}

// Restart reheats to the configured restart alpha.
func (s *Simulation) Restart() {
	s.Reheat(s.params.RestartAlpha)
}

// SetAlphaTarget sets the floor alpha decays toward. A positive target keeps
// the simulation warm, e.g. while a node is dragged.
func (s *Simulation) SetAlphaTarget(t float32) {
	s.alphaTarget = t
}

// Step runs one tick unless the simulation is idle. It reports whether a
// tick ran.
func (s *Simulation) Step() bool {
	if s.Idle() {
		return false
	}
	s.Tick()
	return true
}

// Tick advances the simulation once regardless of alpha.
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.params.AlphaDecay
	for _, f := range s.forces() {
		f.Apply(s.alpha)
	}
	keep := 1 - s.params.VelocityDecay
	for _, b := range s.bodies {
		if b.Fixed != nil {
			b.Pos = *b.Fixed
			b.Vel = math32.Vector2{}
			continue
		}
		b.Vel.X *= keep
		b.Vel.Y *= keep
		b.Pos.X += b.Vel.X
		b.Pos.Y += b.Vel.Y
	}
	s.ticks++
}

// Run steps until idle or until max ticks have run, returning the ticks run.
func (s *Simulation) Run(limit int) int {
	n := 0
	for n < limit && s.Step() {
		n++
	}
	return n
}

// Bodies returns the active bodies in dataset order.
func (s *Simulation) Bodies() []*Body {
	return s.bodies
}

// Springs returns the active springs.
func (s *Simulation) Springs() []*Spring {
	return s.springs
}

// Body returns the body for id, active or not.
func (s *Simulation) Body(id string) (*Body, bool) {
	b, ok := s.all[id]
	return b, ok
}

// Position returns the position of id.
func (s *Simulation) Position(id string) (math32.Vector2, bool) {
	b, ok := s.all[id]
	if !ok {
		return math32.Vector2{}, false
	}
	return b.Pos, true
}

// Pin fixes id at (x, y) until Unpin.
func (s *Simulation) Pin(id string, x, y float32) error {
	b, ok := s.all[id]
	if !ok {
		return fmt.Errorf("pin: unknown node %q", id)
	}
	p := math32.Vec2(x, y)
	b.Fixed = &p
	b.Pos = p
	return nil
}

// Unpin releases id back into free relaxation.
func (s *Simulation) Unpin(id string) {
	if b, ok := s.all[id]; ok {
		b.Fixed = nil
	}
}

// SetCenterStrength sets the centroid pull; the per-axis pulls follow at
// AxisRatio of it.
func (s *Simulation) SetCenterStrength(v float32) {
	s.params.CenterStrength = v
	s.params.AxisStrength = v * AxisRatio
	s.Center.Strength = v
	s.X.Strength = s.params.AxisStrength
	s.Y.Strength = s.params.AxisStrength
}

// SetLinkStrength sets the spring stiffness.
func (s *Simulation) SetLinkStrength(v float32) {
	s.params.LinkStrength = v
	s.Link.Strength = v
}

// SetLinkDistance sets the spring rest length and per-shared-tag shrink.
func (s *Simulation) SetLinkDistance(base, shrink float32) {
	s.params.LinkDistance = base
	s.params.LinkShrink = shrink
	s.Link.Distance = s.springDistance(base, shrink)
	s.Link.Initialize(s.bodies, s.springs, s.jig)
}

// LimitCharge restricts repulsion to the given ids; nil restores it for all.
func (s *Simulation) LimitCharge(only map[string]bool) {
	s.Charge.Strength = s.classStrength(only)
	s.Charge.refresh()
}

// Resize moves the centering targets to the middle of a w x h viewport.
func (s *Simulation) Resize(w, h float32) {
	s.params.Width, s.params.Height = w, h
	s.Center.X, s.Center.Y = w/2, h/2
	s.X.Target = w / 2
	s.Y.Target = h / 2
}

// SpringLength returns the rest distance of a spring under current params.
func (s *Simulation) SpringLength(sp *Spring) float32 {
	return s.Link.Distance(sp)
}
