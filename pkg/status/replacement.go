package status

import (
	"fmt"

	"github.com/go-drift/pagestatus/pkg/errors"
	"github.com/go-drift/pagestatus/pkg/view"
)

// InflateContext is what a Handler gets to build its content with.
type InflateContext struct {
	// Inflater is the inflater of the slot container's context.
	Inflater *view.Inflater
	// Anchor is the view the slot stands in for.
	Anchor view.View
}

// Handler creates the content of a ReplacementStatus. Inflate is called
// once, the first time the status is shown; the result is cached for the
// status' lifetime. parent is the slot container; the content must not be
// attached to it.
//
// A Handler may also implement ViewShower, ParamsViewShower and ViewHider
// to react after its content was inserted or removed.
type Handler interface {
	Inflate(ctx InflateContext, parent view.Group) (view.View, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx InflateContext, parent view.Group) (view.View, error)

// Inflate calls f.
func (f HandlerFunc) Inflate(ctx InflateContext, parent view.Group) (view.View, error) {
	return f(ctx, parent)
}

// ViewShower is notified after content was inserted into its slot.
type ViewShower interface {
	OnViewShow(v view.View)
}

// ParamsViewShower is notified after content was inserted into its slot,
// with the params of the transition. It takes precedence over ViewShower.
type ParamsViewShower interface {
	OnViewShowParams(v view.View, params Params)
}

// ViewHider is notified after content was removed from its slot.
type ViewHider interface {
	OnViewHide(v view.View)
}

// Layout returns a handler inflating the named layout.
func Layout(name string) Handler {
	return HandlerFunc(func(ctx InflateContext, parent view.Group) (view.View, error) {
		return ctx.Inflater.Inflate(name, parent)
	})
}

// ReplacementStatus shows content by inserting it into a Slot and hides it
// by removing it again. The insert and remove steps are fixed; handlers
// and decorations only add hooks around them.
type ReplacementStatus struct {
	handler    Handler
	state      *replacementState
	inner      *ReplacementStatus
	decoration any
}

// replacementState is shared by a status and every decoration of it.
type replacementState struct {
	slot  *Slot
	child view.View
}

// NewReplacementStatus returns a status whose content comes from h.
func NewReplacementStatus(h Handler) *ReplacementStatus {
	return &ReplacementStatus{handler: h, state: &replacementState{}}
}

// ContentStatus returns a status whose content is the anchor itself, for
// the status showing the region's regular content. The anchor is in the
// slot from the start, so other statuses hide it when they are shown.
func ContentStatus() *ReplacementStatus {
	return NewReplacementStatus(anchorHandler{})
}

type anchorHandler struct{}

func (anchorHandler) Inflate(ctx InflateContext, parent view.Group) (view.View, error) {
	return ctx.Anchor, nil
}

// Attach binds the status to slot. Transformers do this for the statuses
// they own; it is only needed for statuses used on their own.
func (r *ReplacementStatus) Attach(slot *Slot) {
	r.state.slot = slot
	if _, ok := r.handler.(anchorHandler); ok && r.state.child == nil {
		r.state.child = slot.Anchor
	}
}

// Slot returns the slot the status is attached to, or nil.
func (r *ReplacementStatus) Slot() *Slot {
	return r.state.slot
}

// Child returns the content, or nil if it was never created.
func (r *ReplacementStatus) Child() view.View {
	return r.state.child
}

// ShowView inserts the content into the slot, creating it on first use,
// and runs the show hooks. Content already in the slot is left alone and
// no hooks run.
func (r *ReplacementStatus) ShowView(params Params) error {
	const op = "status.ReplacementStatus.ShowView"
	slot := r.state.slot
	if slot == nil {
		return errors.Errorf(op, errors.KindMisconfigured, "", "replacement status is not attached to a slot")
	}
	child, err := r.materialize(slot)
	if err != nil {
		return err
	}

	switch parent := child.Parent(); {
	case parent == slot.Container:
		return nil
	case parent != nil:
		return errors.New(op, errors.KindUnexpectedParent, "", fmt.Errorf("%s is attached to %s: %w", describe(child), describe(parent), errors.ErrUnexpectedParent))
	}

	if err := slot.Container.AddView(child, slot.insertIndex(), nil); err != nil {
		return errors.New(op, errors.KindUnknown, "", err)
	}
	r.onShow(child, params)
	return nil
}

// HideView removes the content from the slot and runs the hide hooks. It
// does nothing if the content is not in the slot.
func (r *ReplacementStatus) HideView() {
	slot, child := r.state.slot, r.state.child
	if slot == nil || child == nil || child.Parent() != slot.Container {
		return
	}
	slot.Container.RemoveView(child)
	r.onHide(child)
}

func (r *ReplacementStatus) materialize(slot *Slot) (view.View, error) {
	if r.state.child != nil {
		return r.state.child, nil
	}
	ctx := InflateContext{Inflater: slot.Container.Context().Inflater(), Anchor: slot.Anchor}
	child, err := r.handler.Inflate(ctx, slot.Container)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, errors.Errorf("status.ReplacementStatus.ShowView", errors.KindMisconfigured, "", "handler %T returned no view", r.handler)
	}
	r.state.child = child
	return child, nil
}

// onShow runs the hooks innermost first.
func (r *ReplacementStatus) onShow(v view.View, params Params) {
	if r.inner == nil {
		fireShow(r.handler, v, params)
		return
	}
	r.inner.onShow(v, params)
	fireShow(r.decoration, v, params)
}

func (r *ReplacementStatus) onHide(v view.View) {
	if r.inner == nil {
		fireHide(r.handler, v)
		return
	}
	r.inner.onHide(v)
	fireHide(r.decoration, v)
}

func fireShow(hooks any, v view.View, params Params) {
	switch h := hooks.(type) {
	case ParamsViewShower:
		h.OnViewShowParams(v, params)
	case ViewShower:
		h.OnViewShow(v)
	}
}

func fireHide(hooks any, v view.View) {
	if h, ok := hooks.(ViewHider); ok {
		h.OnViewHide(v)
	}
}
