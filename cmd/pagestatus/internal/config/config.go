// Package config loads the optional pagestatus.yaml project file and the
// scenario files played by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional project configuration file.
const FileName = "pagestatus.yaml"

// Defaults applied by Resolve.
const (
	DefaultWidth  = 320
	DefaultHeight = 240
	DefaultTick   = 750 * time.Millisecond
)

// Config represents the optional pagestatus.yaml configuration.
type Config struct {
	Name   string       `yaml:"name,omitempty"`
	Window WindowConfig `yaml:"window"`
	Demo   DemoConfig   `yaml:"demo"`
	Render RenderConfig `yaml:"render"`
}

// WindowConfig is the size of the root view trees are laid out in.
type WindowConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// DemoConfig contains settings for the interactive demo.
type DemoConfig struct {
	// Tick advances every pane to its next status when non-zero.
	Tick time.Duration `yaml:"tick,omitempty"`
}

// RenderConfig contains settings for scenario playback.
type RenderConfig struct {
	// Scenarios is the directory scenario names are looked up in.
	Scenarios string `yaml:"scenarios,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Name       string
	Width      float64
	Height     float64
	Tick       time.Duration
	Scenarios  string
}

// LoadOptional reads pagestatus.yaml if present.
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

// Resolve loads pagestatus.yaml (if present) and resolves defaults. dir
// does not have to be inside a Go module; the module path is then empty.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = defaultName(modulePath, dir)
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("window size cannot be negative (got %gx%g)", width, height)
	}
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}

	tick := cfg.Demo.Tick
	if tick < 0 {
		return nil, fmt.Errorf("demo.tick cannot be negative (got %s)", tick)
	}

	scenarios := strings.TrimSpace(cfg.Render.Scenarios)
	if scenarios == "" {
		scenarios = "."
	}
	if !filepath.IsAbs(scenarios) {
		scenarios = filepath.Join(dir, scenarios)
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Name:       name,
		Width:      width,
		Height:     height,
		Tick:       tick,
		Scenarios:  scenarios,
	}, nil
}

// ScenarioPath returns the file a scenario argument refers to: an existing
// path as is, otherwise name.yaml in the scenarios directory.
func (r *Resolved) ScenarioPath(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	return filepath.Join(r.Scenarios, name)
}

// FindProjectRoot walks up from the current directory to find go.mod or
// pagestatus.yaml. It returns the current directory if neither is found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "pagestatus"
	}
	return base
}
