package view

import "github.com/go-drift/pagestatus/pkg/graphics"

// Text displays a string. Its intrinsic size comes from the context's
// text measurer.
type Text struct {
	Base
	text    string
	metrics graphics.TextMetrics
}

// NewText creates a text view.
func NewText(ctx *Context, text string) *Text {
	t := &Text{text: text}
	t.Init(ctx, t)
	return t
}

// Text returns the displayed string.
func (t *Text) Text() string {
	return t.text
}

// SetText replaces the displayed string and requests layout.
func (t *Text) SetText(text string) {
	if t.text == text {
		return
	}
	t.text = text
	t.RequestLayout()
}

// Kind returns the view's type name for dumps.
func (t *Text) Kind() string {
	return "text"
}

// OnMeasure returns the measured extent of the text.
func (t *Text) OnMeasure(available graphics.Size) graphics.Size {
	t.metrics = t.ctx.Measurer().Measure(t.text)
	return t.metrics.Size
}

// Baseline returns the first line's baseline.
func (t *Text) Baseline() float64 {
	if t.metrics.Lines == 0 {
		t.metrics = t.ctx.Measurer().Measure(t.text)
	}
	return t.metrics.Baseline
}

// Box is a leaf with a fixed intrinsic size, e.g. an image or a spinner.
type Box struct {
	Base
	intrinsic graphics.Size
	label     string
}

// NewBox creates a box with the given intrinsic size.
func NewBox(ctx *Context, width, height float64) *Box {
	b := &Box{intrinsic: graphics.Size{Width: width, Height: height}}
	b.Init(ctx, b)
	return b
}

// Label returns the box's descriptive label.
func (b *Box) Label() string {
	return b.label
}

// SetLabel sets a descriptive label shown in dumps.
func (b *Box) SetLabel(label string) {
	b.label = label
}

// Kind returns the view's type name for dumps.
func (b *Box) Kind() string {
	return "box"
}

// OnMeasure returns the intrinsic size.
func (b *Box) OnMeasure(available graphics.Size) graphics.Size {
	return b.intrinsic
}
