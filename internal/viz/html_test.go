package viz

import (
	"strings"
	"testing"

	"cogentcore.org/core/math32"

	"github.com/matsen/kgraph/internal/render"
)

func testFrame() *render.Frame {
	return &render.Frame{
		Renderer: render.KindForce,
		Width:    200,
		Height:   100,
		Nodes: []render.NodeView{
			{ID: "A", Label: "A <page>", URL: "a.html", Color: "#ff00ff", X: 10, Y: 20, Radius: 8, Opacity: 1, LabelX: 22, LabelY: 20},
			{ID: "#x", Label: "#x", Color: "#ffffff", Stroke: "#ffffff", X: 50.126, Y: 60, Radius: 6, Opacity: 1},
			{ID: "hidden", Label: "hidden", Color: "#ffffff", Opacity: 0},
		},
		Links: []render.LinkView{
			{Source: "A", Target: "#x", Points: []math32.Vector2{{X: 10, Y: 20}, {X: 50.126, Y: 60}}, Color: "#00ffff", Width: 1, Opacity: 0.6, Arrow: true},
			{Source: "A", Target: "hidden", Points: []math32.Vector2{{X: 10, Y: 20}, {X: 0, Y: 0}}, Color: "#00ffff", Width: 1, Opacity: 0},
		},
	}
}

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(testFrame(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}

	for _, want := range []string{
		"<title>Knowledge Graph</title>",
		`width="200" height="100"`,
		`d="M10 20 L50.13 60"`,
		`marker-end="url(#arrow)"`,
		`href="a.html"`,
		`r="8"`,
		"A &lt;page&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("GenerateHTML() missing %q", want)
		}
	}
	if strings.Contains(html, `id="hidden"`) {
		t.Error("GenerateHTML() drew an invisible node")
	}
	if strings.Count(html, "stroke-opacity=") != 1 {
		t.Error("GenerateHTML() drew an invisible link")
	}
}

func TestGenerateHTML_NoLabels(t *testing.T) {
	opts := DefaultOptions()
	opts.Labels = false
	html, err := GenerateHTML(testFrame(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, `class="labels"`) {
		t.Error("labels drawn with Labels = false")
	}
}

func TestGenerateHTML_Empty(t *testing.T) {
	html, err := GenerateHTML(&render.Frame{}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "No visible nodes") {
		t.Error("empty frame did not produce the empty page")
	}

	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("GenerateHTML(nil) succeeded")
	}
}

func TestGenerateLiveHTML(t *testing.T) {
	cfg := render.DefaultConfig()
	opts := LiveOptions{
		HTMLOptions: DefaultOptions(),
		SocketPath:  "/ws",
		Renderer:    render.KindOrbit,
		Controls:    Controls(render.KindOrbit, cfg),
	}
	html, err := GenerateLiveHTML(opts)
	if err != nil {
		t.Fatalf("GenerateLiveHTML() error = %v", err)
	}
	for _, want := range []string{
		`data-renderer="orbit"`,
		`data-param="physics"`,
		`type="range" data-param="nodeSize"`,
		"new WebSocket",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("GenerateLiveHTML() missing %q", want)
		}
	}

	opts.SocketPath = ""
	if _, err := GenerateLiveHTML(opts); err == nil {
		t.Error("empty socket path accepted")
	}
	opts.SocketPath = "/ws"
	opts.Renderer = "flat"
	if _, err := GenerateLiveHTML(opts); err == nil {
		t.Error("unknown renderer accepted")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0"},
		{10, "10"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
		{3.14159, "3.14"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFrameJSON(t *testing.T) {
	s, err := FrameJSON(testFrame())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"renderer":"force"`, `"id":"#x"`, `"r":8`} {
		if !strings.Contains(s, want) {
			t.Errorf("FrameJSON() missing %q", want)
		}
	}
}
