// Package view provides a mutable, retained view tree.
//
// Unlike widgets, views are long-lived objects that are attached to and
// detached from container groups at runtime. Every view embeds Base, which
// tracks the parent link, layout params, visibility and the last measured
// size and laid-out bounds. Containers embed GroupBase.
//
// The tree is owned by a single UI thread; no method here is safe for
// concurrent use.
package view

import (
	"fmt"

	"github.com/go-drift/pagestatus/pkg/graphics"
)

// ID identifies a view within a Context.
type ID int

const (
	// NoID marks a view without an identity. It is also the zero value of
	// every constraint reference, meaning "unset".
	NoID ID = 0
	// ParentID is used in constraint references to name the enclosing container.
	ParentID ID = -1
)

// Visibility controls whether a view is drawn and whether it takes space.
type Visibility int

const (
	// Visible views are drawn and take space.
	Visible Visibility = iota
	// Invisible views take space but are not drawn.
	Invisible
	// Gone views neither draw nor take space.
	Gone
)

// String returns a human-readable representation of the visibility.
func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Invisible:
		return "invisible"
	case Gone:
		return "gone"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// View is a node in the view tree.
type View interface {
	ID() ID
	SetID(id ID)
	Context() *Context
	Parent() Group
	LayoutParams() LayoutParams
	SetLayoutParams(params LayoutParams)
	Visibility() Visibility
	SetVisibility(v Visibility)

	// Measure computes the view's size for the space its parent offers.
	Measure(available graphics.Size)
	MeasuredSize() graphics.Size
	// Layout places the view at bounds, relative to its parent.
	Layout(bounds graphics.Rect)
	Bounds() graphics.Rect
	// Baseline is the distance from the top of the view to its text
	// baseline, or -1 if the view has none.
	Baseline() float64

	RequestLayout()
	NeedsLayout() bool

	base() *Base
}

// Base provides the bookkeeping shared by all views.
// Concrete views embed it and call Init from their constructor.
type Base struct {
	id          ID
	ctx         *Context
	self        View
	parent      Group
	params      LayoutParams
	visibility  Visibility
	measured    graphics.Size
	available   graphics.Size
	bounds      graphics.Rect
	needsLayout bool
	// exactW and exactH record whether the space handed to OnMeasure is
	// fixed; groups pass it on to their children.
	exactW bool
	exactH bool
}

// Init binds the base to its context and to the concrete view embedding it.
func (b *Base) Init(ctx *Context, self View) {
	b.ctx = ctx
	b.self = self
	b.needsLayout = true
}

func (b *Base) base() *Base {
	return b
}

// ID returns the view's identity, or NoID.
func (b *Base) ID() ID {
	return b.id
}

// SetID assigns the view's identity.
func (b *Base) SetID(id ID) {
	b.id = id
}

// Context returns the context the view was created with.
func (b *Base) Context() *Context {
	return b.ctx
}

// Parent returns the containing group, or nil when detached.
func (b *Base) Parent() Group {
	return b.parent
}

// LayoutParams returns the params the parent uses to size and place the view.
func (b *Base) LayoutParams() LayoutParams {
	return b.params
}

// SetLayoutParams replaces the view's layout params and requests layout.
func (b *Base) SetLayoutParams(params LayoutParams) {
	b.params = params
	b.RequestLayout()
}

// Visibility returns the view's visibility.
func (b *Base) Visibility() Visibility {
	return b.visibility
}

// SetVisibility changes the view's visibility. Switching to or from Gone
// changes the space the view takes and requests layout.
func (b *Base) SetVisibility(v Visibility) {
	if b.visibility == v {
		return
	}
	b.visibility = v
	b.RequestLayout()
}

// MeasuredSize returns the size computed by the last Measure.
func (b *Base) MeasuredSize() graphics.Size {
	return b.measured
}

// Bounds returns the rect assigned by the last Layout, relative to the parent.
func (b *Base) Bounds() graphics.Rect {
	return b.bounds
}

// Baseline returns -1; text-bearing views override it.
func (b *Base) Baseline() float64 {
	return -1
}

// NeedsLayout reports whether the view was invalidated since its last layout.
func (b *Base) NeedsLayout() bool {
	return b.needsLayout
}

// RequestLayout marks this view and every ancestor as needing layout.
func (b *Base) RequestLayout() {
	b.needsLayout = true
	if b.parent != nil && !b.parent.NeedsLayout() {
		b.parent.RequestLayout()
	}
}

// Measure resolves the view's size against its params, treating available
// as the exact space offered.
func (b *Base) Measure(available graphics.Size) {
	b.measure(available, true, true)
}

// measure resolves the view's size. exactW and exactH report whether the
// parent fixed the offered space on that axis; when it did not, a
// MatchParent dimension behaves like WrapContent bounded by available.
//
// Fixed and MatchParent dimensions are resolved first; the remaining ones
// take the intrinsic size reported by the concrete view's OnMeasure, which
// receives the space it may use for its content.
func (b *Base) measure(available graphics.Size, exactW, exactH bool) {
	b.available = available
	if b.visibility == Gone {
		b.measured = graphics.Size{}
		return
	}
	params := paramsOf(b.self)
	var inner graphics.Size
	inner.Width, b.exactW = params.Width.inner(available.Width, exactW)
	inner.Height, b.exactH = params.Height.inner(available.Height, exactH)

	var intrinsic graphics.Size
	if m, ok := b.self.(interface {
		OnMeasure(available graphics.Size) graphics.Size
	}); ok {
		intrinsic = m.OnMeasure(inner)
	}
	b.measured = graphics.Size{
		Width:  params.Width.resolve(available.Width, exactW, intrinsic.Width),
		Height: params.Height.resolve(available.Height, exactH, intrinsic.Height),
	}
}

// Layout stores bounds and lets containers place their children.
func (b *Base) Layout(bounds graphics.Rect) {
	b.bounds = bounds
	b.needsLayout = false
	if l, ok := b.self.(interface{ OnLayout(size graphics.Size) }); ok {
		l.OnLayout(bounds.Size())
	}
}

// AbsoluteBounds returns v's bounds in the coordinate space of its root.
func AbsoluteBounds(v View) graphics.Rect {
	rect := v.Bounds()
	for p := v.Parent(); p != nil; p = p.Parent() {
		origin := p.Bounds().Origin()
		rect = rect.Translate(origin.X, origin.Y)
	}
	return rect
}
