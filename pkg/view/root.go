package view

import "github.com/go-drift/pagestatus/pkg/graphics"

// Root is the top of a view tree: a frame with a fixed window size.
type Root struct {
	Frame
	size graphics.Size
}

// NewRoot creates a root for a window of the given size.
func NewRoot(ctx *Context, size graphics.Size) *Root {
	r := &Root{size: size}
	r.Init(ctx, r)
	r.params = NewParams(Dimension(size.Width), Dimension(size.Height))
	return r
}

// Kind returns the root's type name for dumps.
func (r *Root) Kind() string {
	return "root"
}

// Size returns the window size.
func (r *Root) Size() graphics.Size {
	return r.size
}

// Resize changes the window size and requests layout.
func (r *Root) Resize(size graphics.Size) {
	if r.size == size {
		return
	}
	r.size = size
	r.params = NewParams(Dimension(size.Width), Dimension(size.Height))
	r.RequestLayout()
}

// Flush measures and lays out the tree if anything requested layout.
// It reports whether a pass ran.
func (r *Root) Flush() bool {
	if !r.needsLayout {
		return false
	}
	r.Measure(r.size)
	r.Layout(graphics.RectFromLTWH(0, 0, r.size.Width, r.size.Height))
	return true
}
