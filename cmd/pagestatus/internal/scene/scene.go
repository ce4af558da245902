// Package scene builds a live view tree and transformer from a scenario
// and plays its steps.
package scene

import (
	"fmt"
	"log/slog"

	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/config"
	"github.com/go-drift/pagestatus/pkg/graphics"
	"github.com/go-drift/pagestatus/pkg/platform"
	"github.com/go-drift/pagestatus/pkg/status"
	"github.com/go-drift/pagestatus/pkg/view"
)

// Options configure Build.
type Options struct {
	// Size is the root size. Zero means 320x240.
	Size graphics.Size
	// Logger receives transition and decoration logs. Nil means slog.Default().
	Logger *slog.Logger
	// Thread the transformer is bound to. Nil means the calling goroutine.
	Thread platform.ThreadChecker
}

// Scene is a mounted scenario.
type Scene struct {
	Name        string
	Context     *view.Context
	Root        *view.Root
	Page        view.View
	Anchor      view.View
	Transformer *status.Transformer

	logger  *slog.Logger
	follows []*Follow
}

// Build inflates sc's root layout into a fresh tree and registers its
// statuses. Replacement scenarios get their own substituter, so scenes
// never share slots.
func Build(sc *config.Scenario, opts Options) (*Scene, error) {
	if opts.Size.Width == 0 && opts.Size.Height == 0 {
		opts.Size = graphics.Size{Width: config.DefaultWidth, Height: config.DefaultHeight}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Scene{
		Name:    sc.Name,
		Context: view.NewContext(),
		logger:  opts.Logger.With("scene", sc.Name),
	}
	s.Context.Inflater().RegisterBehavior("follow", func() view.Behavior {
		f := &Follow{}
		s.follows = append(s.follows, f)
		return f
	})
	if err := s.Context.Inflater().LoadDocument(sc.Document()); err != nil {
		return nil, err
	}

	s.Root = view.NewRoot(s.Context, opts.Size)
	page, err := s.Context.Inflater().Inflate(sc.Root, s.Root)
	if err != nil {
		return nil, err
	}
	if err := s.Root.AddView(page, -1, nil); err != nil {
		return nil, err
	}
	s.Page = page

	b := status.NewBuilder()
	replacement := false
	for _, st := range sc.Statuses {
		factory, err := s.factory(st)
		if err != nil {
			return nil, fmt.Errorf("status %q: %w", st.Name, err)
		}
		b.Add(st.Name, factory)
		replacement = replacement || st.Replacement()
	}

	topts := []status.Option{status.WithLogger(s.logger), status.WithThread(opts.Thread)}
	if replacement {
		if s.Anchor, err = s.find(sc.Anchor); err != nil {
			return nil, err
		}
		topts = append(topts, status.WithSubstituter(status.NewSubstituter()))
		s.Transformer, err = status.NewReplacement(s.Anchor, b, topts...)
	} else {
		s.Transformer, err = status.New(b, topts...)
	}
	if err != nil {
		return nil, err
	}

	s.Root.Flush()
	return s, nil
}

func (s *Scene) factory(st config.StatusConfig) (status.Factory, error) {
	switch {
	case st.Layout != "":
		layout := st.Layout
		return s.decorated(st.Decorate, func() *status.ReplacementStatus {
			return status.NewReplacementStatus(status.Layout(layout))
		})
	case st.Content:
		return s.decorated(st.Decorate, status.ContentStatus)
	case st.Simple != "":
		v, err := s.find(st.Simple)
		if err != nil {
			return nil, err
		}
		return func() status.DisplayStatus { return status.NewSimpleStatus(v) }, nil
	case st.Stub != "":
		v, err := s.find(st.Stub)
		if err != nil {
			return nil, err
		}
		stub, ok := v.(*view.Stub)
		if !ok {
			return nil, fmt.Errorf("view %q is a %s, not a stub", st.Stub, view.KindOf(v))
		}
		return func() status.DisplayStatus { return status.NewStubStatus(stub) }, nil
	}
	return nil, fmt.Errorf("nothing to show")
}

func (s *Scene) decorated(names []string, create func() *status.ReplacementStatus) (status.Factory, error) {
	decorations := make([]status.Decoration, 0, len(names))
	for _, name := range names {
		d, err := s.decoration(name)
		if err != nil {
			return nil, err
		}
		decorations = append(decorations, d)
	}
	return func() status.DisplayStatus {
		rs := create()
		for _, d := range decorations {
			// decoration only hands out hook values, which Decorate accepts.
			rs, _ = status.Decorate(rs, d)
		}
		return rs
	}, nil
}

func (s *Scene) find(name string) (view.View, error) {
	if name == "" {
		return nil, fmt.Errorf("no view named")
	}
	// Only look up names the layouts registered; IDFor would allocate.
	var found view.View
	view.Walk(s.Root, func(v view.View) bool {
		if found == nil && s.Context.NameOf(v.ID()) == name {
			found = v
		}
		return found == nil
	})
	if found == nil {
		return nil, fmt.Errorf("view %q not found in the tree", name)
	}
	return found, nil
}

// Apply performs one step and lays the tree out again. Coordinators
// holding the slot are told that it changed.
func (s *Scene) Apply(step config.Step) error {
	var err error
	if step.Visible != nil {
		err = s.Transformer.SetVisible(*step.Visible)
	} else {
		err = s.Transformer.Transform(step.Transform, status.Params(step.Params))
	}
	if err != nil {
		return err
	}
	if err := s.notifyDependents(); err != nil {
		return err
	}
	s.Root.Flush()
	return nil
}

// Next transforms to the status registered after the current one, wrapping
// around, and returns its name.
func (s *Scene) Next() (string, error) {
	names := s.Transformer.StatusNames()
	next := names[0]
	if current, ok := s.Transformer.CurrentStatusName(); ok {
		for i, name := range names {
			if name == current {
				next = names[(i+1)%len(names)]
				break
			}
		}
	}
	return next, s.Apply(config.Step{Transform: next})
}

// ToggleVisible flips the transformer's visibility.
func (s *Scene) ToggleVisible() error {
	visible := !s.Transformer.Visible()
	return s.Apply(config.Step{Visible: &visible})
}

// Resize changes the root size and lays the tree out again.
func (s *Scene) Resize(size graphics.Size) {
	s.Root.Resize(size)
	s.Root.Flush()
}

// Dump returns the view tree as text.
func (s *Scene) Dump() string {
	return view.Dump(s.Root)
}

// DependentChanges is the number of times a follow behavior reacted.
func (s *Scene) DependentChanges() int {
	n := 0
	for _, f := range s.follows {
		n += f.Changes
	}
	return n
}

func (s *Scene) notifyDependents() error {
	slot := s.Transformer.Slot()
	if slot == nil {
		return nil
	}
	c, ok := slot.Container.Parent().(*view.CoordinatorLayout)
	if !ok {
		return nil
	}
	return c.DispatchDependentViewChanged(slot.Container)
}
