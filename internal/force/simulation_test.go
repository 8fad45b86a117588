package force

import (
	"testing"

	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/graph"
)

func scenario(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New([]graph.Node{
		{ID: "A", Kind: graph.KindPage, Tags: []string{"#x"}},
		{ID: "B", Kind: graph.KindPage, Tags: []string{"#x"}},
		{ID: "#x", Kind: graph.KindTag},
	}, graph.RulesFor("force"))
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}
	return g
}

// springsOnly disables every force except the springs.
func springsOnly() Params {
	p := DefaultParams()
	p.ChargeContent = 0
	p.ChargeTag = 0
	p.CenterStrength = 0
	p.AxisStrength = 0
	p.CollideRadius = 0
	return p
}

func dist(t *testing.T, s *Simulation, a, b string) float32 {
	t.Helper()
	pa, ok := s.Position(a)
	if !ok {
		t.Fatalf("no body %q", a)
	}
	pb, ok := s.Position(b)
	if !ok {
		t.Fatalf("no body %q", b)
	}
	return pa.Sub(pb).Length()
}

func TestSimulation_ScenarioConverges(t *testing.T) {
	s := New(scenario(t), springsOnly())
	if got := len(s.Springs()); got != 3 {
		t.Fatalf("springs = %d, want 3", got)
	}

	ticks := s.Run(10000)
	if !s.Idle() {
		t.Fatalf("not idle after %d ticks (alpha %v)", ticks, s.Alpha())
	}

	tests := []struct {
		a, b string
		want float32
	}{
		{"A", "#x", 180},
		{"B", "#x", 180},
		{"A", "B", 160},
	}
	for _, tt := range tests {
		if got := dist(t, s, tt.a, tt.b); math32.Abs(got-tt.want) > 1 {
			t.Errorf("|%s-%s| = %.2f, want %.0f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimulation_AlphaDecay(t *testing.T) {
	s := New(scenario(t), DefaultParams())
	if s.Alpha() != 1 {
		t.Fatalf("initial alpha = %v, want 1", s.Alpha())
	}
	s.Tick()
	if want := float32(1 - 0.005); math32.Abs(s.Alpha()-want) > 1e-6 {
		t.Errorf("alpha after one tick = %v, want %v", s.Alpha(), want)
	}
}

func TestSimulation_FixedPoint(t *testing.T) {
	s := New(scenario(t), DefaultParams())
	s.Run(10000)
	if !s.Idle() {
		t.Fatal("expected idle")
	}

	before := map[string]math32.Vector2{}
	for _, b := range s.Bodies() {
		before[b.ID] = b.Pos
	}
	ticks := s.Ticks()
	for range 10 {
		if s.Step() {
			t.Fatal("Step ran while idle")
		}
	}
	if s.Ticks() != ticks {
		t.Errorf("ticks advanced from %d to %d", ticks, s.Ticks())
	}
	for _, b := range s.Bodies() {
		if b.Pos != before[b.ID] {
			t.Errorf("%s moved from %v to %v", b.ID, before[b.ID], b.Pos)
		}
	}
}

func TestSimulation_ReheatOnControlChange(t *testing.T) {
	s := New(scenario(t), DefaultParams())
	s.Run(10000)

	before, _ := s.Position("A")
	s.SetLinkDistance(80, 10)
	s.Restart()
	if s.Alpha() != 0.3 {
		t.Errorf("alpha = %v, want 0.3", s.Alpha())
	}
	if !s.Step() {
		t.Fatal("Step did not run after reheat")
	}
	after, _ := s.Position("A")
	if before == after {
		t.Error("node did not move within one step of reheat")
	}
}

func TestSimulation_SpringLength(t *testing.T) {
	s := New(scenario(t), DefaultParams())
	want := map[graph.LinkType]float32{graph.LinkTag: 180, graph.LinkCoTag: 160}
	for _, sp := range s.Springs() {
		if got := s.SpringLength(sp); got != want[sp.Link.Type] {
			t.Errorf("%s->%s length = %v, want %v", sp.Link.Source, sp.Link.Target, got, want[sp.Link.Type])
		}
	}

	s.SetLinkDistance(5, 10)
	for _, sp := range s.Springs() {
		if got := s.SpringLength(sp); got < 1 {
			t.Errorf("length %v below 1", got)
		}
	}
}

func TestSimulation_PinUnpin(t *testing.T) {
	s := New(scenario(t), DefaultParams())
	if err := s.Pin("A", 5, 7); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	s.SetAlphaTarget(0.3)
	for range 50 {
		s.Step()
	}
	if p, _ := s.Position("A"); p != math32.Vec2(5, 7) {
		t.Errorf("pinned node at %v, want (5, 7)", p)
	}
	if s.Alpha() < 0.3 {
		t.Errorf("alpha %v fell below target while dragging", s.Alpha())
	}

	s.Unpin("A")
	s.SetAlphaTarget(0)
	s.Step()
	if p, _ := s.Position("A"); p == math32.Vec2(5, 7) {
		t.Error("unpinned node did not move")
	}

	if err := s.Pin("nope", 0, 0); err == nil {
		t.Error("expected error pinning unknown node")
	}
}

func TestSimulation_SetGraphKeepsPositions(t *testing.T) {
	g := scenario(t)
	s := New(g, DefaultParams())
	s.Run(200)
	a, _ := s.Position("A")

	s.SetGraph(graph.Filter{ShowTags: false, ShowAttachments: true, ShowOrphans: true}.Apply(g))
	if got := len(s.Bodies()); got != 2 {
		t.Fatalf("bodies = %d, want 2", got)
	}
	if got := len(s.Springs()); got != 1 {
		t.Fatalf("springs = %d, want 1", got)
	}
	if p, _ := s.Position("A"); p != a {
		t.Errorf("A moved from %v to %v on filter", a, p)
	}
	if _, ok := s.Body("#x"); !ok {
		t.Error("hidden body forgotten")
	}

	s.SetGraph(g)
	if got := len(s.Bodies()); got != 3 {
		t.Errorf("bodies = %d after restore, want 3", got)
	}
}

func TestSimulation_Deterministic(t *testing.T) {
	run := func() []math32.Vector2 {
		s := New(scenario(t), DefaultParams())
		s.Run(300)
		var out []math32.Vector2
		for _, b := range s.Bodies() {
			out = append(out, b.Pos)
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("body %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestSimulation_CenterControl(t *testing.T) {
	s := New(scenario(t), DefaultParams())
	s.SetCenterStrength(0.5)
	if s.Center.Strength != 0.5 {
		t.Errorf("center = %v", s.Center.Strength)
	}
	if s.X.Strength != 0.1 || s.Y.Strength != 0.1 {
		t.Errorf("axis = %v/%v, want 0.1", s.X.Strength, s.Y.Strength)
	}
}

func TestCollide_SeparatesOverlap(t *testing.T) {
	a := &Body{ID: "a", Pos: math32.Vec2(0, 0)}
	b := &Body{ID: "b", Pos: math32.Vec2(10, 0)}
	c := &Collide{Radius: 30, Strength: 1}
	c.Initialize([]*Body{a, b}, nil, newJiggler(1))
	c.Apply(1)
	if a.Vel.X >= 0 || b.Vel.X <= 0 {
		t.Errorf("velocities %v %v do not separate", a.Vel, b.Vel)
	}
}
