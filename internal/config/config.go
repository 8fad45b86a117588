// Package config handles the kg configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/matsen/kgraph/internal/force"
	"github.com/matsen/kgraph/internal/graph"
	"github.com/matsen/kgraph/internal/orbit"
	"github.com/matsen/kgraph/internal/render"
)

// Config represents configuration stored in ~/.config/kg/config.yml.
// Fields missing from the file keep their defaults.
type Config struct {
	// Dataset is a YAML, TOML or JSONL dataset; empty means the built-in one.
	Dataset  string `yaml:"dataset"`
	Renderer string `yaml:"renderer"`

	Layout force.Params `yaml:"layout"`
	Orbit  orbit.Params `yaml:"orbit"`
	View   View         `yaml:"view"`
	Demo   Demo         `yaml:"demo"`
	Serve  Serve        `yaml:"serve"`
}

// View holds the initial control panel settings.
type View struct {
	ShowTags        bool    `yaml:"show_tags"`
	ShowAttachments bool    `yaml:"show_attachments"`
	ShowOrphans     bool    `yaml:"show_orphans"`
	ShowArrows      bool    `yaml:"show_arrows"`
	NodeSize        float32 `yaml:"node_size"`
	LinkWidth       float32 `yaml:"link_width"`
}

// Demo times the idle demo of the force view.
type Demo struct {
	IdleAfter   time.Duration `yaml:"idle_after"`
	RevealEvery time.Duration `yaml:"reveal_every"`
}

// Serve configures the preview server.
type Serve struct {
	Addr string `yaml:"addr"`
	FPS  int    `yaml:"fps"`
	// BaseURL resolves relative node URLs before they are sent to the browser.
	BaseURL string `yaml:"base_url"`
	Watch   bool   `yaml:"watch"`
}

// Environment variables that override the file.
const (
	EnvDataset  = "KG_DATASET"
	EnvAddr     = "KG_ADDR"
	EnvRenderer = "KG_RENDERER"
)

// ErrInvalid is returned for configuration values that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the configuration used when no file exists.
func Default() Config {
	rc := render.DefaultConfig()
	layout := force.DefaultParams()
	layout.Width, layout.Height = rc.Width, rc.Height
	return Config{
		Renderer: string(render.KindForce),
		Layout:   layout,
		Orbit:    orbit.DefaultParams(),
		View: View{
			ShowTags:        rc.Filter.ShowTags,
			ShowAttachments: rc.Filter.ShowAttachments,
			ShowOrphans:     rc.Filter.ShowOrphans,
			ShowArrows:      rc.ShowArrows,
			NodeSize:        rc.NodeSize,
			LinkWidth:       rc.LinkWidth,
		},
		Demo: Demo{
			IdleAfter:   force.DefaultIdleAfter,
			RevealEvery: force.DefaultRevealEvery,
		},
		Serve: Serve{
			Addr: ":8035",
			FPS:  30,
		},
	}
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataset); v != "" {
		c.Dataset = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Serve.Addr = v
	}
	if v := os.Getenv(EnvRenderer); v != "" {
		c.Renderer = v
	}
}

// Validate checks the values a renderer or server would reject.
func (c *Config) Validate() error {
	if _, err := render.ParseKind(c.Renderer); err != nil {
		return fmt.Errorf("%w: renderer: %v", ErrInvalid, err)
	}
	switch {
	case c.Layout.Width <= 0 || c.Layout.Height <= 0:
		return fmt.Errorf("%w: layout size must be positive", ErrInvalid)
	case c.Demo.IdleAfter <= 0 || c.Demo.RevealEvery <= 0:
		return fmt.Errorf("%w: demo durations must be positive", ErrInvalid)
	case c.Serve.FPS <= 0:
		return fmt.Errorf("%w: serve.fps must be positive", ErrInvalid)
	case c.Serve.Addr == "":
		return fmt.Errorf("%w: serve.addr is empty", ErrInvalid)
	case c.View.NodeSize <= 0:
		return fmt.Errorf("%w: view.node_size must be positive", ErrInvalid)
	}
	return nil
}

// Kind returns the configured renderer.
func (c *Config) Kind() (render.Kind, error) {
	return render.ParseKind(c.Renderer)
}

// Render returns the renderer settings. Tag colors and the navigate
// callback are left for the caller.
func (c *Config) Render() render.Config {
	rc := render.DefaultConfig()
	rc.Width, rc.Height = c.Layout.Width, c.Layout.Height
	rc.Force = c.Layout
	rc.Orbit = c.Orbit
	rc.IdleAfter = c.Demo.IdleAfter
	rc.RevealEvery = c.Demo.RevealEvery
	rc.Filter = graph.Filter{
		ShowTags:        c.View.ShowTags,
		ShowAttachments: c.View.ShowAttachments,
		ShowOrphans:     c.View.ShowOrphans,
	}
	rc.ShowArrows = c.View.ShowArrows
	rc.NodeSize = c.View.NodeSize
	rc.LinkWidth = c.View.LinkWidth
	return rc
}
