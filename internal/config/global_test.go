package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := Path(), "/custom/config/kg/config.yml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := Path(), filepath.Join(home, ".config", "kg", "config.yml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestRead_NotFound(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.Serve.Addr != Default().Serve.Addr {
		t.Errorf("Serve.Addr = %q, want default", cfg.Serve.Addr)
	}
}

func TestRead_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `renderer: orbit
serve:
  fps: 60
demo:
  idle_after: 5s
layout:
  link_distance: 150
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	def := Default()
	if cfg.Renderer != "orbit" {
		t.Errorf("Renderer = %q", cfg.Renderer)
	}
	if cfg.Serve.FPS != 60 || cfg.Serve.Addr != def.Serve.Addr {
		t.Errorf("Serve = %+v", cfg.Serve)
	}
	if cfg.Demo.IdleAfter != 5*time.Second || cfg.Demo.RevealEvery != def.Demo.RevealEvery {
		t.Errorf("Demo = %+v", cfg.Demo)
	}
	if cfg.Layout.LinkDistance != 150 || cfg.Layout.ChargeTag != def.Layout.ChargeTag {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
}

func TestRead_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("serve:\n  port: 80\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read() accepted an unknown field")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("renderer: orbit\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvRenderer, "force")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Renderer != "force" {
		t.Errorf("Renderer = %q, want force", cfg.Renderer)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("renderer: flat\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvRenderer, "")
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestSaveRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kg", "config.yml")
	cfg := Default()
	cfg.Serve.BaseURL = "https://example.org/"
	cfg.Demo.RevealEvery = time.Second

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if *got != cfg {
		t.Errorf("Read() = %+v, want %+v", *got, cfg)
	}
}

func TestGetSet(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"serve.addr", ":9090", ":9090"},
		{"serve.fps", "12", "12"},
		{"renderer", "orbit", "orbit"},
		{"view.show_tags", "false", "false"},
		{"layout.center_strength", "0.5", "0.5"},
		{"demo.idle_after", "30s", "30s"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := Default()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error = %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		key, value string
		want       error
	}{
		{"serve.port", "80", ErrUnknownKey},
		{"nope.addr", "x", ErrUnknownKey},
		{"serve", "x", ErrUnknownKey},
		{"serve.fps", "fast", ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if !errors.Is(err, tt.want) {
				t.Errorf("Set(%q, %q) error = %v, want %v", tt.key, tt.value, err, tt.want)
			}
			if cfg != Default() {
				t.Error("failed Set modified the config")
			}
		})
	}
}

func TestKeys(t *testing.T) {
	cfg := Default()
	keys, err := cfg.Keys()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"serve.addr": false, "layout.seed": false, "orbit.fov": false, "dataset": false}
	for _, k := range keys {
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("Keys() missing %q", k)
		}
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~/kg/site.yml", filepath.Join(home, "kg/site.yml")},
		{"/abs/site.yml", "/abs/site.yml"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
