package force

import "time"

// Demo timings used by the site.
const (
	DefaultIdleAfter   = 10 * time.Second
	DefaultRevealEvery = 800 * time.Millisecond
)

// Demo replays a staged reveal of the graph after a period without
// interaction. Time is supplied by the caller so the demo is driven from the
// same loop as the simulation.
type Demo struct {
	IdleAfter   time.Duration
	RevealEvery time.Duration

	sim *Simulation

	armed      bool // an interaction happened and the idle timer is pending
	lastInput  time.Time
	running    bool
	order      []string
	next       int
	lastReveal time.Time
	revealed   map[string]bool
}

// NewDemo attaches a demo to sim with the default timings. The idle timer
// starts at the first Advance, as if the page load were an interaction.
func NewDemo(sim *Simulation) *Demo {
	return &Demo{
		IdleAfter:   DefaultIdleAfter,
		RevealEvery: DefaultRevealEvery,
		sim:         sim,
		armed:       true,
	}
}

// Running reports whether a reveal is in progress.
func (d *Demo) Running() bool {
	return d.running
}

// Interact records user input at now. A running demo is cancelled and the
// idle timer restarts.
func (d *Demo) Interact(now time.Time) {
	d.armed = true
	d.lastInput = now
	if d.running {
		d.Stop()
	}
	d.sim.Restart()
}

// Start begins a reveal from an empty graph. The first node appears on the
// next Advance.
func (d *Demo) Start(now time.Time) {
	d.armed = false
	d.running = true
	d.order = d.order[:0]
	for _, b := range d.sim.Bodies() {
		d.order = append(d.order, b.ID)
	}
	d.next = 0
	d.revealed = make(map[string]bool, len(d.order))
	d.lastReveal = now.Add(-d.RevealEvery)
	d.sim.LimitCharge(d.revealed)
}

// Refresh picks up a changed body set during a reveal. Bodies that became
// active join the end of the reveal order; those already shown stay shown.
func (d *Demo) Refresh() {
	if !d.running {
		return
	}
	d.order = d.order[:0]
	for _, b := range d.sim.Bodies() {
		d.order = append(d.order, b.ID)
	}
	d.next = 0
	d.sim.LimitCharge(d.revealed)
}

// Stop ends the reveal, restoring full visibility and full charge.
func (d *Demo) Stop() {
	d.running = false
	d.revealed = nil
	d.sim.LimitCharge(nil)
	d.sim.Restart()
}

// Advance starts the demo once the idle period has elapsed and reveals the
// next node when one is due. It reports whether anything changed.
func (d *Demo) Advance(now time.Time) bool {
	if d.lastInput.IsZero() {
		d.lastInput = now
	}
	if !d.running {
		if d.armed && d.IdleAfter > 0 && now.Sub(d.lastInput) >= d.IdleAfter {
			d.Start(now)
			return true
		}
		return false
	}
	if now.Sub(d.lastReveal) < d.RevealEvery {
		return false
	}
	for d.next < len(d.order) && d.revealed[d.order[d.next]] {
		d.next++
	}
	if d.next >= len(d.order) {
		// Everything is revealed, so the limited charge already covers all nodes.
		d.running = false
		d.revealed = nil
		d.sim.LimitCharge(nil)
		return true
	}
	d.revealed[d.order[d.next]] = true
	d.next++
	d.lastReveal = now
	d.sim.LimitCharge(d.revealed)
	d.sim.Restart()
	return true
}

// NodeVisible reports whether id should be drawn.
func (d *Demo) NodeVisible(id string) bool {
	return !d.running || d.revealed[id]
}

// LinkVisible reports whether a link between source and target should be drawn.
func (d *Demo) LinkVisible(source, target string) bool {
	return d.NodeVisible(source) && d.NodeVisible(target)
}

// Revealed returns how many nodes the current reveal has shown.
func (d *Demo) Revealed() int {
	return len(d.revealed)
}
