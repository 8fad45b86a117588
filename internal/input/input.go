// Package input turns raw pointer events into orbit, pan, drag, zoom, hover
// and click gestures.
package input

import (
	"fmt"
	"time"

	"cogentcore.org/core/math32"
)

// Kind is the type of a pointer event.
type Kind string

// Event kinds, named after the DOM events they come from.
const (
	Down  Kind = "down"
	Move  Kind = "move"
	Up    Kind = "up"
	Leave Kind = "leave"
	Wheel Kind = "wheel"
)

// Button numbers follow MouseEvent.button.
type Button int

// Buttons.
const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

// Event is one pointer event in viewport pixels.
type Event struct {
	Kind   Kind    `json:"type"`
	Button Button  `json:"button"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Shift  bool    `json:"shift"`
	DeltaY float32 `json:"deltaY"`

	Time time.Time `json:"-"`
}

// Pos returns the event position.
func (e Event) Pos() math32.Vector2 {
	return math32.Vec2(e.X, e.Y)
}

// Validate checks that the event kind is known.
func (e Event) Validate() error {
	switch e.Kind {
	case Down, Move, Up, Leave, Wheel:
		return nil
	}
	return fmt.Errorf("unknown event type %q", e.Kind)
}

// State is the gesture in progress.
type State int

// States.
const (
	Idle State = iota
	Orbiting
	Panning
	DraggingNode
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Orbiting:
		return "orbiting"
	case Panning:
		return "panning"
	case DraggingNode:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Handler receives the gestures recognized by a Machine. Positions are in
// viewport pixels; deltas are pixel movements since the previous event.
type Handler interface {
	// Interacted is called for every event.
	Interacted(at time.Time)
	// BeginDrag starts dragging the node under (x, y) and reports whether
	// there was one.
	BeginDrag(x, y float32) bool
	DragTo(x, y float32)
	EndDrag()
	Orbit(dx, dy float32)
	Pan(dx, dy float32)
	Zoom(x, y, delta float32)
	Click(x, y float32)
	Hover(x, y float32)
	ClearHover()
}

// ClickThreshold bounds how long and how far a press may last and still
// count as a click.
type ClickThreshold struct {
	MaxDuration time.Duration `yaml:"max_duration" json:"max_duration"`
	MaxDistance float32       `yaml:"max_distance" json:"max_distance"`
}

// DefaultClick is 200 ms and 5 px.
var DefaultClick = ClickThreshold{MaxDuration: 200 * time.Millisecond, MaxDistance: 5}

// IsClick reports whether a press at from, released at to after d, is a
// click rather than a drag.
func (c ClickThreshold) IsClick(d time.Duration, from, to math32.Vector2) bool {
	return d <= c.MaxDuration && to.Sub(from).Length() <= c.MaxDistance
}

// Machine tracks one pointer and dispatches gestures to a Handler.
type Machine struct {
	// CanOrbit selects orbiting for a left press on empty space; without it
	// such a press pans.
	CanOrbit bool
	Click    ClickThreshold

	h      Handler
	state  State
	button Button
	downAt time.Time
	down   math32.Vector2
	last   math32.Vector2
}

// NewMachine returns an idle machine driving h.
func NewMachine(h Handler, canOrbit bool) *Machine {
	return &Machine{CanOrbit: canOrbit, Click: DefaultClick, h: h}
}

// State returns the gesture in progress.
func (m *Machine) State() State {
	return m.state
}

// Handle advances the machine by one event.
func (m *Machine) Handle(ev Event) {
	m.h.Interacted(ev.Time)
	pos := ev.Pos()

	switch ev.Kind {
	case Wheel:
		m.h.Zoom(ev.X, ev.Y, ev.DeltaY)

	case Down:
		if m.state != Idle {
			return
		}
		m.button = ev.Button
		m.downAt = ev.Time
		m.down = pos
		m.last = pos
		m.h.ClearHover()
		switch {
		case ev.Button != ButtonLeft || ev.Shift:
			m.state = Panning
		case m.h.BeginDrag(ev.X, ev.Y):
			m.state = DraggingNode
		case m.CanOrbit:
			m.state = Orbiting
		default:
			m.state = Panning
		}

	case Move:
		dx, dy := pos.X-m.last.X, pos.Y-m.last.Y
		m.last = pos
		switch m.state {
		case Idle:
			m.h.Hover(ev.X, ev.Y)
		case Orbiting:
			if ev.Shift {
				m.state = Panning
				m.h.Pan(dx, dy)
				return
			}
			m.h.Orbit(dx, dy)
		case Panning:
			m.h.Pan(dx, dy)
		case DraggingNode:
			m.h.DragTo(ev.X, ev.Y)
		}

	case Up:
		if m.state == Idle {
			return
		}
		if m.state == DraggingNode {
			m.h.EndDrag()
		}
		click := m.button == ButtonLeft && m.Click.IsClick(ev.Time.Sub(m.downAt), m.down, pos)
		m.state = Idle
		if click {
			m.h.Click(ev.X, ev.Y)
		}

	case Leave:
		if m.state == DraggingNode {
			m.h.EndDrag()
		}
		m.state = Idle
		m.h.ClearHover()
	}
}
