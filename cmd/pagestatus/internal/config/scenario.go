package config

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/pagestatus/pkg/view"
)

// Scenario is a view tree, the statuses switching part of it and a script
// of transitions to play.
//
//	version: v1.0.0
//	layouts: {...}
//	root: page
//	anchor: list
//	statuses:
//	  - name: loading
//	    layout: loading
//	    decorate: [log]
//	  - name: content
//	    content: true
//	steps:
//	  - transform: loading
//	  - transform: content
//	    after: 500ms
type Scenario struct {
	Name     string                `yaml:"name,omitempty"`
	Version  string                `yaml:"version"`
	Layouts  map[string]*view.Node `yaml:"layouts"`
	Root     string                `yaml:"root"`
	Anchor   string                `yaml:"anchor,omitempty"`
	Statuses []StatusConfig        `yaml:"statuses"`
	Steps    []Step                `yaml:"steps,omitempty"`
}

// StatusConfig declares one status. Exactly one of Layout, Content, Simple
// and Stub must be set.
type StatusConfig struct {
	Name string `yaml:"name"`
	// Layout names the layout a replacement status inflates.
	Layout string `yaml:"layout,omitempty"`
	// Content marks the status showing the anchor itself.
	Content bool `yaml:"content,omitempty"`
	// Simple names a view toggled between visible and gone.
	Simple string `yaml:"simple,omitempty"`
	// Stub names a stub view inflated on first show.
	Stub string `yaml:"stub,omitempty"`
	// Decorate lists decorations applied to a replacement status, innermost
	// first.
	Decorate []string `yaml:"decorate,omitempty"`
}

// Replacement reports whether the status is shown in the anchor's slot.
func (s StatusConfig) Replacement() bool {
	return s.Layout != "" || s.Content
}

// Step is one scripted action. Exactly one of Transform and Visible is set.
type Step struct {
	Transform string         `yaml:"transform,omitempty"`
	Params    map[string]any `yaml:"params,omitempty"`
	Visible   *bool          `yaml:"visible,omitempty"`
	// After is the delay since the previous step.
	After time.Duration `yaml:"after,omitempty"`
}

// Document returns the scenario's layouts as an inflater document.
func (s *Scenario) Document() *view.Document {
	return &view.Document{Version: s.Version, Layouts: s.Layouts}
}

// Duration is the sum of all step delays.
func (s *Scenario) Duration() time.Duration {
	var total time.Duration
	for _, step := range s.Steps {
		total += step.After
	}
	return total
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// LoadScenarioFS is LoadScenario for a file in fsys.
func LoadScenarioFS(fsys fs.FS, path string) (*Scenario, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the parts of a scenario that do not need a view tree.
// Layout problems surface when the layouts are loaded.
func (s *Scenario) Validate() error {
	if s.Root == "" {
		return fmt.Errorf("scenario has no root layout")
	}
	if _, ok := s.Layouts[s.Root]; !ok {
		return fmt.Errorf("root layout %q is not defined", s.Root)
	}
	if len(s.Statuses) == 0 {
		return fmt.Errorf("scenario has no statuses")
	}

	names := make(map[string]bool, len(s.Statuses))
	replacements := 0
	for i, st := range s.Statuses {
		if st.Name == "" {
			return fmt.Errorf("status %d has no name", i)
		}
		if names[st.Name] {
			return fmt.Errorf("status %q declared twice", st.Name)
		}
		names[st.Name] = true

		kinds := 0
		for _, set := range []bool{st.Layout != "", st.Content, st.Simple != "", st.Stub != ""} {
			if set {
				kinds++
			}
		}
		if kinds != 1 {
			return fmt.Errorf("status %q must set exactly one of layout, content, simple and stub", st.Name)
		}
		if st.Layout != "" {
			if _, ok := s.Layouts[st.Layout]; !ok {
				return fmt.Errorf("status %q: layout %q is not defined", st.Name, st.Layout)
			}
		}
		if st.Replacement() {
			replacements++
		} else if len(st.Decorate) > 0 {
			return fmt.Errorf("status %q: only layout and content statuses can be decorated", st.Name)
		}
	}
	switch {
	case replacements > 0 && replacements < len(s.Statuses):
		return fmt.Errorf("replacement statuses cannot be mixed with simple or stub statuses")
	case replacements > 0 && s.Anchor == "":
		return fmt.Errorf("replacement statuses need an anchor")
	}

	for i, step := range s.Steps {
		switch {
		case step.Transform != "" && step.Visible != nil:
			return fmt.Errorf("step %d: transform and visible are exclusive", i+1)
		case step.Transform == "" && step.Visible == nil:
			return fmt.Errorf("step %d: nothing to do", i+1)
		case step.Transform != "" && !names[step.Transform]:
			return fmt.Errorf("step %d: unknown status %q", i+1, step.Transform)
		case step.After < 0:
			return fmt.Errorf("step %d: negative delay", i+1)
		}
	}
	return nil
}
