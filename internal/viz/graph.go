package viz

import (
	"fmt"
	"time"

	"github.com/matsen/kgraph/internal/dataset"
	"github.com/matsen/kgraph/internal/render"
)

// MaxSettleTicks bounds how long BuildFrame waits for a layout to come to rest.
const MaxSettleTicks = 5000

// BuildFrame lays out the dataset with the renderer named by kind and returns
// the frame a static snapshot shows. ticks caps the number of animation steps;
// zero runs the force layout to rest and gives the orbit view one step.
func BuildFrame(ds *dataset.Dataset, kind render.Kind, cfg render.Config, ticks int) (*render.Frame, error) {
	g, err := ds.Graph(string(kind))
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	if cfg.Colors == nil {
		cfg.Colors = ds.Colors
	}
	r, err := render.New(kind, cfg)
	if err != nil {
		return nil, err
	}
	defer r.Teardown()
	if err := r.Build(g); err != nil {
		return nil, fmt.Errorf("building %s renderer: %w", kind, err)
	}

	if ticks <= 0 {
		ticks = MaxSettleTicks
		if kind == render.KindOrbit {
			ticks = 1
		}
	}
	// A fixed clock keeps the idle demo from starting.
	now := time.Now()
	for range ticks {
		if !r.Advance(now) {
			break
		}
	}
	f := r.Frame()
	return &f, nil
}
