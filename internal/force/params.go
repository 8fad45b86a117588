// Package force implements the 2D force-directed layout: springs along links,
// many-body repulsion, centering, per-axis pull and collision, relaxed under a
// decaying alpha.
package force

// Params configures a Simulation. Zero values are not meaningful; start from
// DefaultParams.
type Params struct {
	Width  float32 `yaml:"width" json:"width"`
	Height float32 `yaml:"height" json:"height"`

	// LinkDistance is the rest length of a spring; co-tag springs are
	// LinkShrink shorter per shared tag.
	LinkDistance float32 `yaml:"link_distance" json:"link_distance"`
	LinkShrink   float32 `yaml:"link_shrink" json:"link_shrink"`
	LinkStrength float32 `yaml:"link_strength" json:"link_strength"`

	ChargeContent float32 `yaml:"charge_content" json:"charge_content"`
	ChargeTag     float32 `yaml:"charge_tag" json:"charge_tag"`

	CenterStrength float32 `yaml:"center_strength" json:"center_strength"`
	AxisStrength   float32 `yaml:"axis_strength" json:"axis_strength"`

	// CollideRadius is the radius of every node; centers stay about twice
	// this far apart.
	CollideRadius float32 `yaml:"collide_radius" json:"collide_radius"`

	AlphaDecay    float32 `yaml:"alpha_decay" json:"alpha_decay"`
	AlphaMin      float32 `yaml:"alpha_min" json:"alpha_min"`
	VelocityDecay float32 `yaml:"velocity_decay" json:"velocity_decay"`
	RestartAlpha  float32 `yaml:"restart_alpha" json:"restart_alpha"`

	Seed uint64 `yaml:"seed" json:"seed"`
}

// DefaultParams returns the tuning used by the site's 2D graph.
func DefaultParams() Params {
	return Params{
		Width:          960,
		Height:         600,
		LinkDistance:   180,
		LinkShrink:     20,
		LinkStrength:   0.7,
		ChargeContent:  -200,
		ChargeTag:      -100,
		CenterStrength: 0.3,
		AxisStrength:   0.06,
		CollideRadius:  30,
		AlphaDecay:     0.005,
		AlphaMin:       0.001,
		VelocityDecay:  0.4,
		RestartAlpha:   0.3,
		Seed:           1,
	}
}

// AxisRatio is the x/y strength applied per unit of center strength when the
// center control moves.
const AxisRatio = 0.2
