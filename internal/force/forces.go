package force

import (
	"cogentcore.org/core/math32"
)

// Force contributes to body velocities (or positions) once per tick.
type Force interface {
	// Initialize is called whenever the active bodies or springs change.
	Initialize(bodies []*Body, springs []*Spring, j *jiggler)
	Apply(alpha float32)
}

// LinkForce pulls linked bodies toward a rest distance.
type LinkForce struct {
	Strength float32
	Distance func(s *Spring) float32

	springs   []*Spring
	bias      []float32
	distances []float32
	jig       *jiggler
}

// Initialize computes per-spring bias from endpoint degrees.
func (f *LinkForce) Initialize(bodies []*Body, springs []*Spring, j *jiggler) {
	f.springs = springs
	f.jig = j
	count := make(map[*Body]int, len(bodies))
	for _, s := range springs {
		count[s.Source]++
		count[s.Target]++
	}
	f.bias = make([]float32, len(springs))
	f.distances = make([]float32, len(springs))
	for i, s := range springs {
		cs, ct := float32(count[s.Source]), float32(count[s.Target])
		f.bias[i] = cs / (cs + ct)
		f.distances[i] = f.Distance(s)
	}
}

// Apply moves both endpoints of every spring, weighted by bias so that
// low-degree nodes move more.
func (f *LinkForce) Apply(alpha float32) {
	for i, s := range f.springs {
		src, tgt := s.Source, s.Target
		x := tgt.Pos.X + tgt.Vel.X - src.Pos.X - src.Vel.X
		y := tgt.Pos.Y + tgt.Vel.Y - src.Pos.Y - src.Vel.Y
		if x == 0 {
			x = f.jig.next()
		}
		if y == 0 {
			y = f.jig.next()
		}
		l := math32.Sqrt(x*x + y*y)
		l = (l - f.distances[i]) / l * alpha * f.Strength
		x *= l
		y *= l
		b := f.bias[i]
		tgt.Vel.X -= x * b
		tgt.Vel.Y -= y * b
		b = 1 - b
		src.Vel.X += x * b
		src.Vel.Y += y * b
	}
}

// ManyBody repels (negative strength) or attracts every pair of bodies.
// The exact pairwise sum is used; graphs are small.
type ManyBody struct {
	Strength     func(b *Body) float32
	DistanceMin2 float32

	bodies    []*Body
	strengths []float32
	jig       *jiggler
}

// Initialize caches per-body strengths.
func (f *ManyBody) Initialize(bodies []*Body, _ []*Spring, j *jiggler) {
	f.bodies = bodies
	f.jig = j
	f.refresh()
}

func (f *ManyBody) refresh() {
	f.strengths = make([]float32, len(f.bodies))
	for i, b := range f.bodies {
		f.strengths[i] = f.Strength(b)
	}
}

// Apply accumulates the charge of every other body.
func (f *ManyBody) Apply(alpha float32) {
	minD2 := f.DistanceMin2
	if minD2 <= 0 {
		minD2 = 1
	}
	for i, bi := range f.bodies {
		for j, bj := range f.bodies {
			if i == j || f.strengths[j] == 0 {
				continue
			}
			x := bj.Pos.X - bi.Pos.X
			y := bj.Pos.Y - bi.Pos.Y
			l := x*x + y*y
			if x == 0 {
				x = f.jig.next()
				l += x * x
			}
			if y == 0 {
				y = f.jig.next()
				l += y * y
			}
			if l < minD2 {
				l = math32.Sqrt(minD2 * l)
			}
			w := f.strengths[j] * alpha / l
			bi.Vel.X += x * w
			bi.Vel.Y += y * w
		}
	}
}

// Center translates all bodies so their centroid moves toward (X, Y).
// It acts on positions directly and ignores alpha.
type Center struct {
	X, Y     float32
	Strength float32

	bodies []*Body
}

// Initialize records the active bodies.
func (f *Center) Initialize(bodies []*Body, _ []*Spring, _ *jiggler) {
	f.bodies = bodies
}

// Apply shifts the centroid.
func (f *Center) Apply(float32) {
	n := float32(len(f.bodies))
	if n == 0 {
		return
	}
	var sx, sy float32
	for _, b := range f.bodies {
		sx += b.Pos.X
		sy += b.Pos.Y
	}
	sx = (sx/n - f.X) * f.Strength
	sy = (sy/n - f.Y) * f.Strength
	for _, b := range f.bodies {
		b.Pos.X -= sx
		b.Pos.Y -= sy
	}
}

// Axis selects the coordinate a Position force acts on.
type Axis int

// Axes.
const (
	AxisX Axis = iota
	AxisY
)

// Position pulls each body toward a coordinate on one axis.
type Position struct {
	Axis     Axis
	Target   float32
	Strength float32

	bodies []*Body
}

// Initialize records the active bodies.
func (f *Position) Initialize(bodies []*Body, _ []*Spring, _ *jiggler) {
	f.bodies = bodies
}

// Apply adds the axis pull to velocities.
func (f *Position) Apply(alpha float32) {
	k := f.Strength * alpha
	for _, b := range f.bodies {
		if f.Axis == AxisX {
			b.Vel.X += (f.Target - b.Pos.X) * k
		} else {
			b.Vel.Y += (f.Target - b.Pos.Y) * k
		}
	}
}

// Collide separates overlapping circles of equal radius.
type Collide struct {
	Radius   float32
	Strength float32

	bodies []*Body
	jig    *jiggler
}

// Initialize records the active bodies.
func (f *Collide) Initialize(bodies []*Body, _ []*Spring, j *jiggler) {
	f.bodies = bodies
	f.jig = j
}

// Apply pushes apart every pair whose predicted positions overlap.
func (f *Collide) Apply(float32) {
	ri := f.Radius
	ri2 := ri * ri
	for i, bi := range f.bodies {
		xi := bi.Pos.X + bi.Vel.X
		yi := bi.Pos.Y + bi.Vel.Y
		for _, bj := range f.bodies[i+1:] {
			rj := f.Radius
			r := ri + rj
			x := xi - bj.Pos.X - bj.Vel.X
			y := yi - bj.Pos.Y - bj.Vel.Y
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = f.jig.next()
				l += x * x
			}
			if y == 0 {
				y = f.jig.next()
				l += y * y
			}
			l = math32.Sqrt(l)
			l = (r - l) / l * f.Strength
			x *= l
			y *= l
			rj2 := rj * rj
			w := rj2 / (ri2 + rj2)
			bi.Vel.X += x * w
			bi.Vel.Y += y * w
			w = 1 - w
			bj.Vel.X -= x * w
			bj.Vel.Y -= y * w
		}
	}
}
