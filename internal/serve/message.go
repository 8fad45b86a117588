package serve

import (
	"encoding/json"
	"fmt"

	"github.com/matsen/kgraph/internal/input"
	"github.com/matsen/kgraph/internal/render"
)

// Message types sent to the browser.
const (
	TypeHello    = "hello"
	TypeFrame    = "frame"
	TypeNavigate = "navigate"
	TypeError    = "error"
)

// Message types sent by the browser besides pointer events.
const (
	TypeControl = "control"
	TypeResize  = "resize"
)

// Message is one server-to-browser message.
type Message struct {
	Type     string        `json:"type"`
	Session  string        `json:"session,omitempty"`
	Renderer render.Kind   `json:"renderer,omitempty"`
	Frame    *render.Frame `json:"frame,omitempty"`
	NodeID   string        `json:"node_id,omitempty"`
	URL      string        `json:"url,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Inbound is a decoded browser-to-server message. Exactly one of Event,
// Control and Resize is set.
type Inbound struct {
	Event   *input.Event
	Control *Control
	Resize  *Resize
}

// Control is a control panel change.
type Control struct {
	Param render.Param `json:"param"`
	Value float64      `json:"value"`
}

// Resize is a viewport size change.
type Resize struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Decode parses one browser message.
func Decode(data []byte) (Inbound, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Inbound{}, fmt.Errorf("decoding message: %w", err)
	}

	switch head.Type {
	case TypeControl:
		var c Control
		if err := json.Unmarshal(data, &c); err != nil {
			return Inbound{}, fmt.Errorf("decoding control: %w", err)
		}
		if _, err := render.ParseParam(string(c.Param)); err != nil {
			return Inbound{}, err
		}
		return Inbound{Control: &c}, nil
	case TypeResize:
		var r Resize
		if err := json.Unmarshal(data, &r); err != nil {
			return Inbound{}, fmt.Errorf("decoding resize: %w", err)
		}
		if r.Width <= 0 || r.Height <= 0 {
			return Inbound{}, fmt.Errorf("invalid viewport %vx%v", r.Width, r.Height)
		}
		return Inbound{Resize: &r}, nil
	}

	var ev input.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Inbound{}, fmt.Errorf("decoding event: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return Inbound{}, err
	}
	return Inbound{Event: &ev}, nil
}
