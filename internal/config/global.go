package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "kg"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// ErrUnknownKey is returned by Get and Set for keys the file does not have.
var ErrUnknownKey = errors.New("unknown config key")

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/kg/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the config file at path over the defaults, then applies .env
// and environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads the config file at path over the defaults without consulting
// the environment.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Dataset = ExpandTilde(cfg.Dataset)
	return &cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// tree returns the configuration as nested maps keyed like the file.
func (c *Config) tree() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// lookup walks a dotted key such as "serve.addr" and returns the map that
// holds its last element.
func lookup(m map[string]any, key string) (map[string]any, string, error) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		m = next
	}
	last := parts[len(parts)-1]
	if _, ok := m[last]; !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return m, last, nil
}

// Get returns the value at a dotted key. Sections are returned as YAML.
func (c *Config) Get(key string) (string, error) {
	m, err := c.tree()
	if err != nil {
		return "", err
	}
	parent, last, err := lookup(m, key)
	if err != nil {
		return "", err
	}
	v := parent[last]
	if sub, ok := v.(map[string]any); ok {
		out, err := yaml.Marshal(sub)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(out), "\n"), nil
	}
	return fmt.Sprint(v), nil
}

// Set parses value as YAML and stores it at a dotted key. Values of the
// wrong type are rejected and leave c unchanged.
func (c *Config) Set(key, value string) error {
	m, err := c.tree()
	if err != nil {
		return err
	}
	parent, last, err := lookup(m, key)
	if err != nil {
		return err
	}
	if _, ok := parent[last].(map[string]any); ok {
		return fmt.Errorf("%w: %s is a section", ErrUnknownKey, key)
	}
	var v any
	if err := yaml.Unmarshal([]byte(value), &v); err != nil {
		return fmt.Errorf("parsing value for %s: %w", key, err)
	}
	parent[last] = v

	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	next := Default()
	if err := decode(data, &next); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	*c = next
	return nil
}

// Keys lists every settable dotted key in sorted order.
func (c *Config) Keys() ([]string, error) {
	m, err := c.tree()
	if err != nil {
		return nil, err
	}
	var keys []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			if sub, ok := v.(map[string]any); ok {
				walk(prefix+k+".", sub)
				continue
			}
			keys = append(keys, prefix+k)
		}
	}
	walk("", m)
	sort.Strings(keys)
	return keys, nil
}

// ExpandTilde expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// HelpfulConfigMessage explains where the config file goes.
func HelpfulConfigMessage() string {
	configPath := Path()
	return fmt.Sprintf(`Tip: create %s to change the defaults:
  mkdir -p %s
  kg config serve.addr :8080`,
		configPath,
		filepath.Dir(configPath))
}
