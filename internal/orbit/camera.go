package orbit

import (
	"cogentcore.org/core/math32"
)

// Camera orbits the point Pan on a sphere of the current radius. Rotation
// input moves the target angles; Update eases the current angles toward
// them once per frame.
type Camera struct {
	Radius        float32
	Polar         float32 // angle from +Y, in [eps, pi-eps]
	Azimuth       float32 // unwrapped; see AzimuthAngle
	TargetPolar   float32
	TargetAzimuth float32
	Pan           math32.Vector3
	Aspect        float32

	params Params
}

// NewCamera returns a camera in its reset state.
func NewCamera(p Params) *Camera {
	c := &Camera{params: p, Aspect: 1}
	c.Reset()
	return c
}

// Reset restores the default radius, angles and pan.
func (c *Camera) Reset() {
	c.Radius = c.params.CameraRadius
	c.TargetPolar, c.TargetAzimuth = 0, 0
	c.Polar, c.Azimuth = 0, 0
	c.Pan = math32.Vector3{}
	c.clampPolar()
}

func (c *Camera) clampPolar() {
	lo, hi := c.params.PolarEpsilon, math32.Pi-c.params.PolarEpsilon
	c.TargetPolar = math32.Clamp(c.TargetPolar, lo, hi)
	c.Polar = math32.Clamp(c.Polar, lo, hi)
}

// Rotate applies a pointer movement of (dx, dy) pixels. Dragging down moves
// the camera down.
func (c *Camera) Rotate(dx, dy float32) {
	c.TargetAzimuth += dx * c.params.RotateSpeed
	c.TargetPolar -= dy * c.params.RotateSpeed
	c.clampPolar()
}

// Zoom steps the radius out for positive delta and in for negative delta.
func (c *Camera) Zoom(delta float32) {
	switch {
	case delta > 0:
		c.Radius *= 1 + c.params.ZoomStep
	case delta < 0:
		c.Radius *= 1 - c.params.ZoomStep
	}
	c.Radius = math32.Clamp(c.Radius, c.params.MinRadius, c.params.MaxRadius)
}

// PanBy shifts the orbit center along the camera's right and world up axes
// for a pointer movement of (dx, dy) pixels.
func (c *Camera) PanBy(dx, dy float32) {
	speed := c.Radius * c.params.PanSpeed
	right := c.Direction().Cross(WorldUp).Normal()
	c.Pan = c.Pan.Add(right.MulScalar(-dx * speed)).Add(WorldUp.MulScalar(dy * speed))
}

// Update eases the current angles toward their targets.
func (c *Camera) Update() {
	c.Polar += (c.TargetPolar - c.Polar) * c.params.PolarDamping
	c.Azimuth += (c.TargetAzimuth - c.Azimuth) * c.params.AzimuthDamping
	c.clampPolar()
}

// AzimuthAngle returns the current azimuth in [0, 2pi).
func (c *Camera) AzimuthAngle() float32 {
	a := math32.Mod(c.Azimuth, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a
}

// Position returns the camera's world position.
func (c *Camera) Position() math32.Vector3 {
	phi, theta := c.Polar, c.AzimuthAngle()
	base := math32.Vec3(
		math32.Sin(phi)*math32.Cos(theta)*c.Radius,
		math32.Cos(phi)*c.Radius,
		math32.Sin(phi)*math32.Sin(theta)*c.Radius,
	)
	return base.Add(c.Pan)
}

// Target returns the point the camera looks at.
func (c *Camera) Target() math32.Vector3 {
	return c.Pan
}

// Direction returns the unit view direction.
func (c *Camera) Direction() math32.Vector3 {
	return c.Target().Sub(c.Position()).Normal()
}

// basis returns the view direction and the right and up vectors of the
// image plane.
func (c *Camera) basis() (fwd, right, up math32.Vector3) {
	fwd = c.Direction()
	right = fwd.Cross(WorldUp).Normal()
	up = right.Cross(fwd)
	return fwd, right, up
}

func (c *Camera) tanHalfFOV() float32 {
	return math32.Tan(math32.DegToRad(c.params.FOV) / 2)
}

// Ray returns the pick ray through a point in normalized device coordinates
// (x right, y up, both in [-1, 1]).
func (c *Camera) Ray(ndc math32.Vector2) Ray {
	fwd, right, up := c.basis()
	th := c.tanHalfFOV()
	dir := fwd.
		Add(right.MulScalar(ndc.X * th * c.Aspect)).
		Add(up.MulScalar(ndc.Y * th))
	return Ray{Origin: c.Position(), Dir: dir.Normal()}
}

// Project maps a world point to normalized device coordinates. It reports
// false for points behind the near plane.
func (c *Camera) Project(p math32.Vector3) (ndc math32.Vector2, depth float32, ok bool) {
	fwd, right, up := c.basis()
	v := p.Sub(c.Position())
	depth = v.Dot(fwd)
	if depth <= c.params.Near {
		return math32.Vector2{}, depth, false
	}
	th := c.tanHalfFOV()
	ndc = math32.Vec2(v.Dot(right)/(depth*th*c.Aspect), v.Dot(up)/(depth*th))
	return ndc, depth, true
}

// NDC converts a pixel position in a w x h viewport to normalized device
// coordinates.
func NDC(x, y, w, h float32) math32.Vector2 {
	return math32.Vec2(x/w*2-1, -(y/h)*2+1)
}

// Screen converts normalized device coordinates to pixels in a w x h viewport.
func Screen(ndc math32.Vector2, w, h float32) math32.Vector2 {
	return math32.Vec2((ndc.X+1)/2*w, (1-ndc.Y)/2*h)
}

// PixelScale returns how many pixels one world unit spans at depth in a
// viewport h pixels tall.
func (c *Camera) PixelScale(depth, h float32) float32 {
	if depth <= 0 {
		return 0
	}
	return h / (2 * depth * c.tanHalfFOV())
}
