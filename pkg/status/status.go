// Package status switches a region of a view tree between a fixed set of
// named display statuses, such as loading, content, empty and error.
//
// A Transformer owns the statuses registered through a Builder and makes
// sure at most one of them is shown. Statuses registered against an anchor
// view are ReplacementStatus values: their content is swapped in and out of
// a Slot that the Substituter carves out of the tree in place of the anchor.
//
//	b := status.NewBuilder().
//		Add("loading", func() status.DisplayStatus { return status.NewReplacementStatus(status.Layout("loading")) }).
//		Add("content", func() status.DisplayStatus { return status.ContentStatus() })
//	t, err := status.NewReplacement(list, b)
//	...
//	err = t.Transform("loading", nil)
//
// Transformers are bound to the goroutine that owns the view tree and
// reject calls from any other goroutine.
package status

import (
	"github.com/go-drift/pagestatus/pkg/view"
)

// Params are the values passed along with a transition.
type Params map[string]any

// String returns the string stored under key, if any.
func (p Params) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// DisplayStatus is anything that can be shown and hidden.
//
// HideView must be safe to call when the status is already hidden.
// Statuses that take no params ignore them.
type DisplayStatus interface {
	ShowView(params Params) error
	HideView()
}

// Factory creates a status when a Transformer is constructed.
type Factory func() DisplayStatus

// StatusFuncs adapts plain functions to DisplayStatus. Nil fields do nothing.
type StatusFuncs struct {
	Show func(params Params) error
	Hide func()
}

// ShowView calls Show.
func (f StatusFuncs) ShowView(params Params) error {
	if f.Show == nil {
		return nil
	}
	return f.Show(params)
}

// HideView calls Hide.
func (f StatusFuncs) HideView() {
	if f.Hide != nil {
		f.Hide()
	}
}

// SimpleStatus shows and hides an existing view by toggling its visibility
// between Visible and Gone.
type SimpleStatus struct {
	view view.View
}

// NewSimpleStatus returns a status toggling v. A nil view does nothing.
func NewSimpleStatus(v view.View) *SimpleStatus {
	return &SimpleStatus{view: v}
}

// ShowView makes the view visible.
func (s *SimpleStatus) ShowView(Params) error {
	if s.view != nil {
		s.view.SetVisibility(view.Visible)
	}
	return nil
}

// HideView makes the view gone.
func (s *SimpleStatus) HideView() {
	if s.view != nil {
		s.view.SetVisibility(view.Gone)
	}
}

// StubStatus inflates a stub the first time it is shown and afterwards
// toggles the inflated view like SimpleStatus.
type StubStatus struct {
	stub *view.Stub
}

// NewStubStatus returns a status backed by stub.
func NewStubStatus(stub *view.Stub) *StubStatus {
	return &StubStatus{stub: stub}
}

// ShowView inflates the stub if needed and shows the result.
func (s *StubStatus) ShowView(Params) error {
	v, err := s.stub.Inflate()
	if err != nil {
		return err
	}
	v.SetVisibility(view.Visible)
	return nil
}

// HideView hides the inflated view. It does nothing before the first show.
func (s *StubStatus) HideView() {
	if v := s.stub.Inflated(); v != nil {
		v.SetVisibility(view.Gone)
	}
}
