package view

import (
	"math"

	"github.com/go-drift/pagestatus/pkg/graphics"
)

// ConstraintParams position a child of a ConstraintLayout relative to
// siblings or to the layout itself, by ID. An unset reference is NoID.
//
// Start/End references resolve as Left/Right (left-to-right only).
type ConstraintParams struct {
	Params

	LeftToLeft   ID
	LeftToRight  ID
	RightToRight ID
	RightToLeft  ID
	StartToStart ID
	StartToEnd   ID
	EndToEnd     ID
	EndToStart   ID

	TopToTop       ID
	TopToBottom    ID
	BottomToBottom ID
	BottomToTop    ID

	BaselineToBaseline ID

	// CircleConstraint places the child's center on a circle around the
	// referenced view's center. Angle is in degrees, clockwise from 12 o'clock.
	CircleConstraint ID
	CircleRadius     float64
	CircleAngle      float64
}

// NewConstraintParams returns unconstrained params with the given dimensions.
func NewConstraintParams(width, height Dimension) *ConstraintParams {
	return &ConstraintParams{Params: Params{Width: width, Height: height}}
}

// references lists every ID-valued relation, so rewrites cannot miss a kind.
func (p *ConstraintParams) references() []*ID {
	return []*ID{
		&p.LeftToLeft, &p.LeftToRight, &p.RightToRight, &p.RightToLeft,
		&p.StartToStart, &p.StartToEnd, &p.EndToEnd, &p.EndToStart,
		&p.TopToTop, &p.TopToBottom, &p.BottomToBottom, &p.BottomToTop,
		&p.BaselineToBaseline,
		&p.CircleConstraint,
	}
}

// ReplaceReference rewrites every relation pointing at old to point at
// replacement, and returns how many were rewritten.
func (p *ConstraintParams) ReplaceReference(old, replacement ID) int {
	if old == NoID {
		return 0
	}
	n := 0
	for _, ref := range p.references() {
		if *ref == old {
			*ref = replacement
			n++
		}
	}
	return n
}

// References reports whether any relation points at id.
func (p *ConstraintParams) References(id ID) bool {
	for _, ref := range p.references() {
		if *ref == id {
			return true
		}
	}
	return false
}

// ConstraintLayout positions children by ID references to siblings.
type ConstraintLayout struct {
	GroupBase
	solved    map[View]graphics.Rect
	resolving map[View]bool
}

// NewConstraintLayout creates an empty constraint layout.
func NewConstraintLayout(ctx *Context) *ConstraintLayout {
	c := &ConstraintLayout{}
	c.Init(ctx, c)
	return c
}

// Kind returns the group's type name for dumps.
func (c *ConstraintLayout) Kind() string {
	return "constraint"
}

// ConvertLayoutParams wraps plain params into ConstraintParams.
func (c *ConstraintLayout) ConvertLayoutParams(params LayoutParams) LayoutParams {
	if cp, ok := params.(*ConstraintParams); ok {
		return cp
	}
	base := params.Base()
	return &ConstraintParams{Params: *base}
}

// ReplaceReferences rewrites every child's relation to old so it names
// replacement instead. It returns the number of rewritten relations.
func (c *ConstraintLayout) ReplaceReferences(old, replacement ID) int {
	n := 0
	for _, child := range c.children {
		if cp, ok := child.LayoutParams().(*ConstraintParams); ok {
			n += cp.ReplaceReference(old, replacement)
		}
	}
	return n
}

// OnMeasure measures children against the offered space and wraps the largest.
func (c *ConstraintLayout) OnMeasure(available graphics.Size) graphics.Size {
	return c.measureOverlaid(available)
}

// OnLayout solves every child's rect. Children are resolved on demand, so
// a child is always placed after the siblings it references. Cyclic
// references fall back to the layout's origin.
func (c *ConstraintLayout) OnLayout(size graphics.Size) {
	c.solved = make(map[View]graphics.Rect, len(c.children))
	c.resolving = make(map[View]bool)
	for _, child := range c.children {
		child.Measure(size)
	}
	for _, child := range c.children {
		c.resolve(child, size)
	}
	c.solved = nil
	c.resolving = nil
}

func (c *ConstraintLayout) resolve(child View, size graphics.Size) graphics.Rect {
	if rect, ok := c.solved[child]; ok {
		return rect
	}
	m := child.MeasuredSize()
	if c.resolving[child] {
		return graphics.RectFromLTWH(0, 0, m.Width, m.Height)
	}
	c.resolving[child] = true
	defer delete(c.resolving, child)

	cp, _ := child.LayoutParams().(*ConstraintParams)
	if cp == nil {
		cp = &ConstraintParams{}
	}
	parent := graphics.RectFromLTWH(0, 0, size.Width, size.Height)

	// anchor resolves a reference to the target's rect.
	anchor := func(id ID) (graphics.Rect, View, bool) {
		if id == NoID {
			return graphics.Rect{}, nil, false
		}
		if id == ParentID {
			return parent, nil, true
		}
		target := c.childByID(id)
		if target == nil || target == child {
			return graphics.Rect{}, nil, false
		}
		return c.resolve(target, size), target, true
	}
	edge := func(pairs ...edgeRef) (float64, bool) {
		for _, p := range pairs {
			if rect, _, ok := anchor(p.id); ok {
				return p.pick(rect), true
			}
		}
		return 0, false
	}

	width, height := m.Width, m.Height

	left, hasLeft := edge(
		edgeRef{cp.LeftToLeft, rectLeft}, edgeRef{cp.LeftToRight, rectRight},
		edgeRef{cp.StartToStart, rectLeft}, edgeRef{cp.StartToEnd, rectRight},
	)
	right, hasRight := edge(
		edgeRef{cp.RightToRight, rectRight}, edgeRef{cp.RightToLeft, rectLeft},
		edgeRef{cp.EndToEnd, rectRight}, edgeRef{cp.EndToStart, rectLeft},
	)
	var x float64
	switch {
	case hasLeft && hasRight && cp.Width == MatchParent:
		x, width = left, math.Max(0, right-left)
	case hasLeft && hasRight:
		x = left + (right-left-width)/2
	case hasLeft:
		x = left
	case hasRight:
		x = right - width
	}

	top, hasTop := edge(edgeRef{cp.TopToTop, rectTop}, edgeRef{cp.TopToBottom, rectBottom})
	bottom, hasBottom := edge(edgeRef{cp.BottomToBottom, rectBottom}, edgeRef{cp.BottomToTop, rectTop})
	var y float64
	switch {
	case hasTop && hasBottom && cp.Height == MatchParent:
		y, height = top, math.Max(0, bottom-top)
	case hasTop && hasBottom:
		y = top + (bottom-top-height)/2
	case hasTop:
		y = top
	case hasBottom:
		y = bottom - height
	default:
		if rect, target, ok := anchor(cp.BaselineToBaseline); ok && target != nil {
			if tb, cb := target.Baseline(), child.Baseline(); tb >= 0 && cb >= 0 {
				y = rect.Top + tb - cb
			} else {
				y = rect.Bottom - height
			}
		}
	}

	if rect, _, ok := anchor(cp.CircleConstraint); ok {
		rad := cp.CircleAngle * math.Pi / 180
		center := rect.Center()
		x = center.X + cp.CircleRadius*math.Sin(rad) - width/2
		y = center.Y - cp.CircleRadius*math.Cos(rad) - height/2
	}

	if width != m.Width || height != m.Height {
		child.Measure(graphics.Size{Width: width, Height: height})
	}
	rect := graphics.RectFromLTWH(x, y, width, height)
	child.Layout(rect)
	c.solved[child] = rect
	return rect
}

func (c *ConstraintLayout) childByID(id ID) View {
	for _, child := range c.children {
		if child.ID() == id {
			return child
		}
	}
	return nil
}

type edgeRef struct {
	id   ID
	pick func(graphics.Rect) float64
}

func rectLeft(r graphics.Rect) float64   { return r.Left }
func rectRight(r graphics.Rect) float64  { return r.Right }
func rectTop(r graphics.Rect) float64    { return r.Top }
func rectBottom(r graphics.Rect) float64 { return r.Bottom }
