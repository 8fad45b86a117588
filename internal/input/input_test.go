package input

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"cogentcore.org/core/math32"
)

// recorder logs every gesture and reports a node under x < 10.
type recorder struct {
	calls []string
	seen  int
}

func (r *recorder) Interacted(time.Time) { r.seen++ }
func (r *recorder) BeginDrag(x, y float32) bool {
	hit := x < 10
	r.calls = append(r.calls, fmt.Sprintf("begin %v", hit))
	return hit
}
func (r *recorder) DragTo(x, y float32) { r.calls = append(r.calls, fmt.Sprintf("drag %v,%v", x, y)) }
func (r *recorder) EndDrag() { r.calls = append(r.calls, "end") }
func (r *recorder) Orbit(dx, dy float32) { r.calls = append(r.calls, fmt.Sprintf("orbit %v,%v", dx, dy)) }
func (r *recorder) Pan(dx, dy float32) { r.calls = append(r.calls, fmt.Sprintf("pan %v,%v", dx, dy)) }
func (r *recorder) Zoom(x, y, d float32) { r.calls = append(r.calls, fmt.Sprintf("zoom %v", d)) }
func (r *recorder) Click(x, y float32) { r.calls = append(r.calls, fmt.Sprintf("click %v,%v", x, y)) }
func (r *recorder) Hover(x, y float32) { r.calls = append(r.calls, "hover") }
func (r *recorder) ClearHover() {}

var t0 = time.Unix(100, 0)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestMachine(t *testing.T) {
	tests := []struct {
		name      string
		canOrbit  bool
		events    []Event
		want      []string
		wantState State
	}{
		{
			name:     "quick press on node is a click",
			canOrbit: true,
			events: []Event{
				{Kind: Down, X: 5, Y: 5, Time: at(0)},
				{Kind: Up, X: 7, Y: 8, Time: at(150)},
			},
			want: []string{"begin true", "end", "click 7,8"},
		},
		{
			name:     "slow press is not a click",
			canOrbit: true,
			events: []Event{
				{Kind: Down, X: 5, Y: 5, Time: at(0)},
				{Kind: Up, X: 5, Y: 5, Time: at(201)},
			},
			want: []string{"begin true", "end"},
		},
		{
			name:     "drag past 5px is not a click",
			canOrbit: true,
			events: []Event{
				{Kind: Down, X: 5, Y: 5, Time: at(0)},
				{Kind: Move, X: 5, Y: 11, Time: at(50)},
				{Kind: Up, X: 5, Y: 11, Time: at(100)},
			},
			want:      []string{"begin true", "drag 5,11", "end"},
			wantState: Idle,
		},
		{
			name:     "left on empty space orbits",
			canOrbit: true,
			events: []Event{
				{Kind: Down, X: 50, Y: 50, Time: at(0)},
				{Kind: Move, X: 60, Y: 45, Time: at(10)},
			},
			want:      []string{"begin false", "orbit 10,-5"},
			wantState: Orbiting,
		},
		{
			name:     "left on empty space pans without orbit",
			canOrbit: false,
			events: []Event{
				{Kind: Down, X: 50, Y: 50, Time: at(0)},
				{Kind: Move, X: 60, Y: 45, Time: at(10)},
			},
			want:      []string{"begin false", "pan 10,-5"},
			wantState: Panning,
		},
		{
			name:     "shift while orbiting switches to pan",
			canOrbit: true,
			events: []Event{
				{Kind: Down, X: 50, Y: 50, Time: at(0)},
				{Kind: Move, X: 52, Y: 50, Time: at(10)},
				{Kind: Move, X: 55, Y: 50, Shift: true, Time: at(20)},
				{Kind: Move, X: 56, Y: 50, Time: at(30)},
			},
			want:      []string{"begin false", "orbit 2,0", "pan 3,0", "pan 1,0"},
			wantState: Panning,
		},
		{
			name:     "right button pans even over a node",
			canOrbit: true,
			events: []Event{
				{Kind: Down, Button: ButtonRight, X: 5, Y: 5, Time: at(0)},
				{Kind: Move, X: 6, Y: 5, Time: at(10)},
				{Kind: Up, Button: ButtonRight, X: 6, Y: 5, Time: at(20)},
			},
			want: []string{"pan 1,0"},
		},
		{
			name:     "shift press pans",
			canOrbit: true,
			events: []Event{
				{Kind: Down, Shift: true, X: 5, Y: 5, Time: at(0)},
			},
			want:      nil,
			wantState: Panning,
		},
		{
			name:     "leave ends a drag without a click",
			canOrbit: true,
			events: []Event{
				{Kind: Down, X: 5, Y: 5, Time: at(0)},
				{Kind: Leave, Time: at(10)},
				{Kind: Up, X: 5, Y: 5, Time: at(20)},
			},
			want: []string{"begin true", "end"},
		},
		{
			name:     "idle moves hover and wheel zooms",
			canOrbit: true,
			events: []Event{
				{Kind: Move, X: 1, Y: 1, Time: at(0)},
				{Kind: Wheel, DeltaY: -3, Time: at(10)},
			},
			want: []string{"hover", "zoom -3"},
		},
		{
			name:     "second press during a gesture is ignored",
			canOrbit: true,
			events: []Event{
				{Kind: Down, X: 50, Y: 50, Time: at(0)},
				{Kind: Down, Button: ButtonRight, X: 50, Y: 50, Time: at(5)},
				{Kind: Move, X: 51, Y: 50, Time: at(10)},
			},
			want:      []string{"begin false", "orbit 1,0"},
			wantState: Orbiting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			m := NewMachine(r, tt.canOrbit)
			for _, ev := range tt.events {
				m.Handle(ev)
			}
			if !reflect.DeepEqual(r.calls, tt.want) {
				t.Errorf("calls = %q, want %q", r.calls, tt.want)
			}
			if m.State() != tt.wantState {
				t.Errorf("state = %v, want %v", m.State(), tt.wantState)
			}
			if r.seen != len(tt.events) {
				t.Errorf("Interacted called %d times, want %d", r.seen, len(tt.events))
			}
		})
	}
}

func TestClickThreshold(t *testing.T) {
	from := math32.Vec2(0, 0)
	tests := []struct {
		d    time.Duration
		to   math32.Vector2
		want bool
	}{
		{200 * time.Millisecond, math32.Vec2(3, 4), true},
		{201 * time.Millisecond, math32.Vec2(0, 0), false},
		{10 * time.Millisecond, math32.Vec2(3, 4.1), false},
	}
	for _, tt := range tests {
		if got := DefaultClick.IsClick(tt.d, from, tt.to); got != tt.want {
			t.Errorf("IsClick(%v, %v) = %v, want %v", tt.d, tt.to, got, tt.want)
		}
	}
}

func TestEvent_Validate(t *testing.T) {
	if err := (Event{Kind: Move}).Validate(); err != nil {
		t.Errorf("Validate(move) = %v", err)
	}
	if err := (Event{Kind: "tap"}).Validate(); err == nil {
		t.Error("Validate accepted unknown kind")
	}
}
