package status

import (
	"github.com/go-drift/pagestatus/pkg/errors"
	"github.com/go-drift/pagestatus/pkg/view"
)

// Decoration adds hooks to a ReplacementStatus. It implements at least one
// of ViewShower, ParamsViewShower and ViewHider; hooks it lacks are skipped.
type Decoration interface{}

// Decorate wraps inner with the hooks of d.
//
// The result shares inner's slot and content, so any number of nested
// decorations still show and hide a single view. On show, inner's hooks
// run before d's; on hide as well.
//
// A nil inner, or a d implementing no hook, is a KindMisconfigured error.
func Decorate(inner *ReplacementStatus, d Decoration) (*ReplacementStatus, error) {
	const op = "status.Decorate"
	if inner == nil {
		return nil, errors.Errorf(op, errors.KindMisconfigured, "", "nil status to decorate")
	}
	switch d.(type) {
	case ViewShower, ParamsViewShower, ViewHider:
	default:
		return nil, errors.Errorf(op, errors.KindMisconfigured, "", "%T implements no view hook", d)
	}
	return &ReplacementStatus{
		handler:    inner.handler,
		state:      inner.state,
		inner:      inner,
		decoration: d,
	}, nil
}

// HookFuncs adapts plain functions to the hook interfaces. Nil fields are
// skipped; ShowParams takes precedence over Show.
type HookFuncs struct {
	Show       func(v view.View)
	ShowParams func(v view.View, params Params)
	Hide       func(v view.View)
}

// OnViewShowParams calls ShowParams, or Show if ShowParams is nil.
func (h HookFuncs) OnViewShowParams(v view.View, params Params) {
	switch {
	case h.ShowParams != nil:
		h.ShowParams(v, params)
	case h.Show != nil:
		h.Show(v)
	}
}

// OnViewHide calls Hide.
func (h HookFuncs) OnViewHide(v view.View) {
	if h.Hide != nil {
		h.Hide(v)
	}
}
