package orbit

import (
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
)

// Ray is a half-line from Origin along the unit vector Dir.
type Ray struct {
	Origin math32.Vector3
	Dir    math32.Vector3
}

// At returns the point t along the ray.
func (r Ray) At(t float32) math32.Vector3 {
	return r.Origin.Add(r.Dir.MulScalar(t))
}

// IntersectSphere returns the distance to the nearest intersection in front
// of the origin.
func (r Ray) IntersectSphere(center math32.Vector3, radius float32) (float32, bool) {
	oc := center.Sub(r.Origin)
	tca := oc.Dot(r.Dir)
	d2 := oc.Dot(oc) - tca*tca
	r2 := radius * radius
	if d2 > r2 {
		return 0, false
	}
	thc := math32.Sqrt(r2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}

// Plane is the set of points p with Normal·(p - Point) = 0.
type Plane struct {
	Normal math32.Vector3
	Point  math32.Vector3
}

// Intersect returns where r meets the plane. Rays parallel to the plane, or
// pointing away from it, do not intersect.
func (pl Plane) Intersect(r Ray) (math32.Vector3, bool) {
	denom := pl.Normal.Dot(r.Dir)
	if math32.Abs(denom) < 1e-6 {
		return math32.Vector3{}, false
	}
	t := pl.Normal.Dot(pl.Point.Sub(r.Origin)) / denom
	if t < 0 {
		return math32.Vector3{}, false
	}
	return r.At(t), true
}

// PlaceOnSphere returns a point uniformly distributed on a sphere of the
// given radius about the origin.
func PlaceOnSphere(rng randx.Rand, radius float32) math32.Vector3 {
	theta := rng.Float32() * 2 * math32.Pi
	phi := math32.Acos(rng.Float32()*2 - 1)
	return math32.Vec3(
		radius*math32.Sin(phi)*math32.Cos(theta),
		radius*math32.Sin(phi)*math32.Sin(theta),
		radius*math32.Cos(phi),
	)
}

// ControlPoint returns the middle point of the curve from a to b: the
// midpoint lifted perpendicular to the link by height times its length.
func ControlPoint(a, b math32.Vector3, height float32) math32.Vector3 {
	delta := b.Sub(a)
	dist := delta.Length()
	mid := a.Add(b).MulScalar(0.5)
	if dist == 0 {
		return mid
	}
	dir := delta.MulScalar(1 / dist)
	perp := dir.Cross(WorldUp)
	if perp.Length() < 0.1 {
		perp = dir.Cross(math32.Vec3(1, 0, 0))
	}
	return mid.Add(perp.Normal().MulScalar(dist * height))
}

// Curve samples the centripetal Catmull-Rom spline through a, the control
// point and b at segments+1 evenly spaced parameter values.
func Curve(a, b math32.Vector3, height float32, segments int) []math32.Vector3 {
	if segments < 1 {
		segments = 1
	}
	pts := []math32.Vector3{a, ControlPoint(a, b, height), b}
	out := make([]math32.Vector3, segments+1)
	for i := range out {
		out[i] = catmullRom(pts, float32(i)/float32(segments))
	}
	return out
}

// catmullRom evaluates an open centripetal spline through pts at t in [0,1].
// The end segments use reflected phantom points.
func catmullRom(pts []math32.Vector3, t float32) math32.Vector3 {
	l := len(pts)
	p := float32(l-1) * t
	i := int(math32.Floor(p))
	w := p - float32(i)
	if i >= l-1 {
		i, w = l-2, 1
	}

	var p0, p3 math32.Vector3
	if i > 0 {
		p0 = pts[i-1]
	} else {
		p0 = pts[0].Sub(pts[1]).Add(pts[0])
	}
	p1, p2 := pts[i], pts[i+1]
	if i+2 < l {
		p3 = pts[i+2]
	} else {
		p3 = pts[l-1].Sub(pts[l-2]).Add(pts[l-1])
	}

	dt0 := math32.Pow(distSq(p0, p1), 0.25)
	dt1 := math32.Pow(distSq(p1, p2), 0.25)
	dt2 := math32.Pow(distSq(p2, p3), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}
	return math32.Vec3(
		cubic(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, w),
		cubic(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, w),
		cubic(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, w),
	)
}

func distSq(a, b math32.Vector3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

// cubic evaluates the non-uniform Catmull-Rom segment between x1 and x2.
func cubic(x0, x1, x2, x3, dt0, dt1, dt2, t float32) float32 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	return c0 + c1*t + c2*t*t + c3*t*t*t
}
