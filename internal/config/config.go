// Package config loads and validates the optional .fringe YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the working
// directory upward.
const FileName = ".fringe"

// DefaultMaxOutput caps captured flexfringe output on the serving
// surfaces. The library itself captures unbounded output.
const DefaultMaxOutput = 1 << 20 // 1 MB

// DefaultRenderFormat is the Graphviz output format used when none is
// configured.
const DefaultRenderFormat = "png"

// Config holds the parsed .fringe configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int               `yaml:"version"`
	Binary       string            `yaml:"binary"`     // explicit flexfringe path; empty means PATH lookup
	RawTimeout   string            `yaml:"timeout"`    // e.g. "5m", "30s"; empty means no deadline
	RawMaxOutput int               `yaml:"max_output"` // bytes
	Flags        map[string]string `yaml:"flags"`      // default flexfringe flags, e.g. ini: batch.ini
	Render       RenderConfig      `yaml:"render"`
}

// RenderConfig controls how learned models are rendered.
type RenderConfig struct {
	Format string `yaml:"format"` // Graphviz -T format (default: png)
}

// Timeout returns the configured per-run deadline, or zero when none is
// configured. Zero means a run blocks until the process exits.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// RenderFormat returns the configured render format or the default.
func (c *Config) RenderFormat() string {
	if c.Render.Format != "" {
		return c.Render.Format
	}
	return DefaultRenderFormat
}

// LoadResult holds the parsed config and the directory it was found in.
type LoadResult struct {
	Config *Config
	Root   string // directory containing .fringe; falls back to the start dir
}

// Load reads the .fringe file found by walking upward from dir. If no
// .fringe file exists anywhere above dir, a default Config is returned
// with dir as the root.
func Load(dir string) (*LoadResult, error) {
	root, err := findConfigRoot(dir)
	if err != nil {
		// No .fringe found; use the start dir as root.
		return &LoadResult{Config: &Config{}, Root: dir}, nil
	}
	return LoadFile(filepath.Join(root, FileName))
}

// LoadFile reads an explicit config file path, bypassing discovery.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &LoadResult{Config: cfg, Root: filepath.Dir(path)}, nil
}

// findConfigRoot walks upward from dir looking for a directory
// containing a .fringe file.
func findConfigRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", FileName)
		}
		dir = parent
	}
}
