// Package config loads the optional arbor.yaml project configuration used
// by the arbor CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/arbor/pkg/graphics"
)

// FileName is the configuration file looked up in the project root.
const FileName = "arbor.yaml"

// Default viewport used when neither the scene nor arbor.yaml sets one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Config represents the optional arbor.yaml configuration.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Log      LogConfig      `yaml:"log"`
	Errors   ErrorsConfig   `yaml:"errors"`
	Render   RenderConfig   `yaml:"render"`
}

// ViewportConfig is the fallback root size.
type ViewportConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// ErrorsConfig controls how reported engine errors are printed.
type ErrorsConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Scale  float64 `yaml:"scale,omitempty"`
	Labels *bool   `yaml:"labels,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Project    string
	Viewport   graphics.Size
	LogLevel   hclog.Level
	Verbose    bool
	Scale      float64
	Labels     bool
}

// LoadOptional reads arbor.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads arbor.yaml (if present) and resolves defaults. A missing
// go.mod is not an error; the project name then falls back to the
// directory name.
func Resolve(dir string) (*Resolved, error) {
	modPath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	viewport := graphics.Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}
	if viewport.Width < 0 || viewport.Height < 0 {
		return nil, fmt.Errorf("invalid viewport %gx%g in %s", viewport.Width, viewport.Height, FileName)
	}
	if viewport.Width == 0 {
		viewport.Width = DefaultWidth
	}
	if viewport.Height == 0 {
		viewport.Height = DefaultHeight
	}

	level := hclog.Warn
	if name := strings.TrimSpace(cfg.Log.Level); name != "" {
		level = hclog.LevelFromString(name)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("unknown log level %q in %s", name, FileName)
		}
	}

	scale := cfg.Render.Scale
	if scale < 0 {
		return nil, fmt.Errorf("invalid render scale %g in %s", scale, FileName)
	}
	if scale == 0 {
		scale = 1
	}
	labels := true
	if cfg.Render.Labels != nil {
		labels = *cfg.Render.Labels
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modPath,
		Project:    projectName(modPath, dir),
		Viewport:   viewport,
		LogLevel:   level,
		Verbose:    cfg.Errors.Verbose,
		Scale:      scale,
		Labels:     labels,
	}, nil
}

// FindProjectRoot walks up from dir to find the nearest directory holding
// go.mod or arbor.yaml.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s or go.mod found", FileName)
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func projectName(modPath, dir string) string {
	base := filepath.Base(dir)
	if modPath != "" {
		prefix, _, ok := module.SplitPathVersion(modPath)
		if ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "arbor"
	}
	return base
}
