package view

import (
	"fmt"

	"github.com/go-drift/pagestatus/pkg/graphics"
)

// Stub is an invisible, zero-sized placeholder for a layout that is
// inflated on demand. Inflate replaces the stub in its parent with the
// inflated view, at the same index and with the same params.
type Stub struct {
	Base
	layout string
	// InflatedID, when set, is assigned to the inflated view.
	InflatedID ID
	inflated   View
}

// NewStub creates a stub for the named layout. Stubs start out Gone.
func NewStub(ctx *Context, layout string) *Stub {
	s := &Stub{layout: layout}
	s.Init(ctx, s)
	s.visibility = Gone
	return s
}

// Kind returns the view's type name for dumps.
func (s *Stub) Kind() string {
	return "stub"
}

// LayoutName returns the name of the layout the stub inflates.
func (s *Stub) LayoutName() string {
	return s.layout
}

// Inflated returns the view the stub was replaced with, or nil.
func (s *Stub) Inflated() View {
	return s.inflated
}

// OnMeasure returns zero; a stub never takes space.
func (s *Stub) OnMeasure(available graphics.Size) graphics.Size {
	return graphics.Size{}
}

// Inflate inflates the stub's layout and puts the result where the stub
// was. Calling it again returns the same view.
func (s *Stub) Inflate() (View, error) {
	if s.inflated != nil {
		return s.inflated, nil
	}
	parent := s.parent
	if parent == nil {
		return nil, fmt.Errorf("inflate stub %q: stub is not attached", s.layout)
	}
	v, err := s.ctx.Inflater().Inflate(s.layout, parent)
	if err != nil {
		return nil, err
	}
	if s.InflatedID != NoID {
		v.SetID(s.InflatedID)
	}
	index := parent.IndexOf(s)
	params := s.params
	parent.RemoveView(s)
	if err := parent.AddView(v, index, params); err != nil {
		return nil, fmt.Errorf("inflate stub %q: %w", s.layout, err)
	}
	s.inflated = v
	return v, nil
}
