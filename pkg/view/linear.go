package view

import (
	"fmt"

	"github.com/go-drift/pagestatus/pkg/graphics"
)

// Orientation selects the stacking axis of a Linear group.
type Orientation int

const (
	// Vertical stacks children top to bottom.
	Vertical Orientation = iota
	// Horizontal stacks children left to right.
	Horizontal
)

// String returns a human-readable representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Linear stacks its children along one axis. Gone children take no space.
type Linear struct {
	GroupBase
	orientation Orientation
}

// NewLinear creates an empty linear group.
func NewLinear(ctx *Context, orientation Orientation) *Linear {
	l := &Linear{orientation: orientation}
	l.Init(ctx, l)
	return l
}

// Orientation returns the stacking axis.
func (l *Linear) Orientation() Orientation {
	return l.orientation
}

// Kind returns the group's type name for dumps.
func (l *Linear) Kind() string {
	return "linear"
}

// OnMeasure stacks children, offering each the space left by the previous ones.
func (l *Linear) OnMeasure(available graphics.Size) graphics.Size {
	var size graphics.Size
	remaining := available
	for _, child := range l.children {
		l.measureChild(child, remaining)
		if child.Visibility() == Gone {
			continue
		}
		m := child.MeasuredSize()
		if l.orientation == Vertical {
			size.Height += m.Height
			size.Width = max(size.Width, m.Width)
			remaining.Height = max(0, remaining.Height-m.Height)
		} else {
			size.Width += m.Width
			size.Height = max(size.Height, m.Height)
			remaining.Width = max(0, remaining.Width-m.Width)
		}
	}
	return size
}

// OnLayout places children one after another. Each child keeps its
// measured extent along the axis and is re-measured across it against the
// final size, so MatchParent children stretch to the group.
func (l *Linear) OnLayout(size graphics.Size) {
	var cursor float64
	for _, child := range l.children {
		if child.Visibility() == Gone {
			child.Layout(graphics.Rect{})
			continue
		}
		m := child.MeasuredSize()
		if l.orientation == Vertical {
			child.Measure(graphics.Size{Width: size.Width, Height: m.Height})
			m = child.MeasuredSize()
			child.Layout(graphics.RectFromLTWH(0, cursor, m.Width, m.Height))
			cursor += m.Height
		} else {
			child.Measure(graphics.Size{Width: m.Width, Height: size.Height})
			m = child.MeasuredSize()
			child.Layout(graphics.RectFromLTWH(cursor, 0, m.Width, m.Height))
			cursor += m.Width
		}
	}
}
