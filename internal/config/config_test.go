package config

import (
	"errors"
	"testing"
	"time"

	"github.com/matsen/kgraph/internal/render"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	k, err := cfg.Kind()
	if err != nil || k != render.KindForce {
		t.Errorf("Kind() = %q, %v; want force", k, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"renderer", func(c *Config) { c.Renderer = "flat" }},
		{"width", func(c *Config) { c.Layout.Width = 0 }},
		{"idle", func(c *Config) { c.Demo.IdleAfter = 0 }},
		{"fps", func(c *Config) { c.Serve.FPS = -1 }},
		{"addr", func(c *Config) { c.Serve.Addr = "" }},
		{"node size", func(c *Config) { c.View.NodeSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataset, "/data/site.yml")
	t.Setenv(EnvAddr, "127.0.0.1:9000")
	t.Setenv(EnvRenderer, "orbit")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Dataset != "/data/site.yml" {
		t.Errorf("Dataset = %q", cfg.Dataset)
	}
	if cfg.Serve.Addr != "127.0.0.1:9000" {
		t.Errorf("Serve.Addr = %q", cfg.Serve.Addr)
	}
	if cfg.Renderer != "orbit" {
		t.Errorf("Renderer = %q", cfg.Renderer)
	}
}

func TestApplyEnv_EmptyKeepsFile(t *testing.T) {
	t.Setenv(EnvAddr, "")

	cfg := Default()
	cfg.Serve.Addr = ":1234"
	cfg.ApplyEnv()
	if cfg.Serve.Addr != ":1234" {
		t.Errorf("Serve.Addr = %q, want :1234", cfg.Serve.Addr)
	}
}

func TestRender(t *testing.T) {
	cfg := Default()
	cfg.View.ShowTags = false
	cfg.View.NodeSize = 12
	cfg.Demo.IdleAfter = 3 * time.Second
	cfg.Layout.Width = 400

	rc := cfg.Render()
	if rc.Filter.ShowTags {
		t.Error("Filter.ShowTags = true")
	}
	if !rc.Filter.ShowOrphans || !rc.Filter.ShowAttachments {
		t.Errorf("Filter = %+v, want other toggles on", rc.Filter)
	}
	if rc.NodeSize != 12 {
		t.Errorf("NodeSize = %v", rc.NodeSize)
	}
	if rc.IdleAfter != 3*time.Second {
		t.Errorf("IdleAfter = %v", rc.IdleAfter)
	}
	if rc.Width != 400 || rc.Force.Width != 400 {
		t.Errorf("Width = %v, Force.Width = %v", rc.Width, rc.Force.Width)
	}
	if rc.Orbit != cfg.Orbit {
		t.Error("Orbit params not carried over")
	}
}
