// Package orbit lays the graph out on a sphere and views it through an orbit
// camera. It handles picking and dragging nodes in 3D, curved link geometry,
// and the optional weak physics that runs instead of the idle spin.
package orbit

import (
	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/graph"
)

// Params configures a Scene and its Camera.
type Params struct {
	SphereRadius float32 `yaml:"sphere_radius" json:"sphere_radius"`

	CameraRadius   float32 `yaml:"camera_radius" json:"camera_radius"`
	MinRadius      float32 `yaml:"min_radius" json:"min_radius"`
	MaxRadius      float32 `yaml:"max_radius" json:"max_radius"`
	ZoomStep       float32 `yaml:"zoom_step" json:"zoom_step"`
	PolarEpsilon   float32 `yaml:"polar_epsilon" json:"polar_epsilon"`
	PolarDamping   float32 `yaml:"polar_damping" json:"polar_damping"`
	AzimuthDamping float32 `yaml:"azimuth_damping" json:"azimuth_damping"`
	RotateSpeed    float32 `yaml:"rotate_speed" json:"rotate_speed"`
	PanSpeed       float32 `yaml:"pan_speed" json:"pan_speed"`
	FOV            float32 `yaml:"fov" json:"fov"`
	Near           float32 `yaml:"near" json:"near"`

	// CurveHeight is the control point offset as a fraction of link length.
	CurveHeight   float32 `yaml:"curve_height" json:"curve_height"`
	CurveSegments int     `yaml:"curve_segments" json:"curve_segments"`

	NodeSize     float32 `yaml:"node_size" json:"node_size"`
	LinkDistance float32 `yaml:"link_distance" json:"link_distance"`
	CenterPull   float32 `yaml:"center_pull" json:"center_pull"`
	SpringK      float32 `yaml:"spring_k" json:"spring_k"`
	Spin         float32 `yaml:"spin" json:"spin"`

	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultParams returns the tuning used by the site's 3D graph.
func DefaultParams() Params {
	return Params{
		SphereRadius:   20,
		CameraRadius:   50,
		MinRadius:      10,
		MaxRadius:      200,
		ZoomStep:       0.1,
		PolarEpsilon:   0.01,
		PolarDamping:   0.08,
		AzimuthDamping: 0.05,
		RotateSpeed:    0.01,
		PanSpeed:       0.001,
		FOV:            75,
		Near:           0.1,
		CurveHeight:    0.3,
		CurveSegments:  50,
		NodeSize:       8,
		LinkDistance:   100,
		CenterPull:     0.5 * 0.01,
		SpringK:        0.001,
		Spin:           0.01,
		Seed:           1,
	}
}

// BaseRadius returns the sphere radius of n before the node
// size control is applied.
func BaseRadius(n graph.Node) float32 {
	switch {
	case n.IsTag():
		return 0.8
	case n.Kind == graph.KindPDF:
		return 1.2
	default:
		return 1.0
	}
}

// WorldUp is the camera's fixed up vector.
var WorldUp = math32.Vec3(0, 1, 0)
