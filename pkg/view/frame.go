package view

import "github.com/go-drift/pagestatus/pkg/graphics"

// Frame is a pass-through container. Children are overlaid at its origin,
// first child at the bottom, and the frame adds no layout semantics of its
// own. It is the container status substitution splices in.
type Frame struct {
	GroupBase
}

// NewFrame creates an empty frame.
func NewFrame(ctx *Context) *Frame {
	f := &Frame{}
	f.Init(ctx, f)
	return f
}

// PassThrough reports that the frame only holds children.
func (f *Frame) PassThrough() bool {
	return true
}

// Kind returns the frame's type name for dumps.
func (f *Frame) Kind() string {
	return "frame"
}

// OnMeasure measures children against the offered space and wraps the largest.
func (f *Frame) OnMeasure(available graphics.Size) graphics.Size {
	return f.measureOverlaid(available)
}

// OnLayout places every child at the origin with its measured size.
func (f *Frame) OnLayout(size graphics.Size) {
	layoutOverlaid(f.children, size)
}

// Baseline returns the baseline of the first non-gone child, so that
// siblings aligned to the frame line up with its content.
func (f *Frame) Baseline() float64 {
	for _, child := range f.children {
		if child.Visibility() == Gone {
			continue
		}
		if b := child.Baseline(); b >= 0 {
			return child.Bounds().Top + b
		}
		return -1
	}
	return -1
}

// measureOverlaid measures every child against available and returns the
// size wrapping the largest one.
func (g *GroupBase) measureOverlaid(available graphics.Size) graphics.Size {
	var size graphics.Size
	for _, child := range g.children {
		g.measureChild(child, available)
		if child.Visibility() == Gone {
			continue
		}
		m := child.MeasuredSize()
		size.Width = max(size.Width, m.Width)
		size.Height = max(size.Height, m.Height)
	}
	return size
}

func layoutOverlaid(children []View, size graphics.Size) {
	for _, child := range children {
		child.Measure(size)
		m := child.MeasuredSize()
		child.Layout(graphics.RectFromLTWH(0, 0, m.Width, m.Height))
	}
}
