package view

import (
	stderrors "errors"
	"fmt"
	"slices"

	"github.com/go-drift/pagestatus/pkg/graphics"
)

var (
	// ErrHasParent is returned when adding a view that is already attached.
	ErrHasParent = stderrors.New("view already has a parent")
	// ErrIndexOutOfRange is returned for insertion indexes outside [0, ChildCount()].
	ErrIndexOutOfRange = stderrors.New("child index out of range")
	// ErrNilView is returned when adding a nil view.
	ErrNilView = stderrors.New("nil view")
)

// Group is a view that holds an ordered list of children.
type Group interface {
	View
	ChildCount() int
	ChildAt(index int) View
	IndexOf(child View) int
	Children() []View
	// AddView attaches child at index (-1 appends). Non-nil params replace
	// the child's params; either way they are converted to the group's
	// own params type.
	AddView(child View, index int, params LayoutParams) error
	// RemoveView detaches child. It reports false if child was not a child
	// of this group.
	RemoveView(child View) bool
}

// paramsConverter is implemented by groups that need their own params type.
type paramsConverter interface {
	ConvertLayoutParams(params LayoutParams) LayoutParams
}

// GroupBase provides child bookkeeping for containers.
type GroupBase struct {
	Base
	children []View
}

// ChildCount returns the number of children.
func (g *GroupBase) ChildCount() int {
	return len(g.children)
}

// ChildAt returns the child at index, or nil if index is out of range.
func (g *GroupBase) ChildAt(index int) View {
	if index < 0 || index >= len(g.children) {
		return nil
	}
	return g.children[index]
}

// IndexOf returns the index of child, or -1.
func (g *GroupBase) IndexOf(child View) int {
	return slices.Index(g.children, child)
}

// Children returns a copy of the child list.
func (g *GroupBase) Children() []View {
	return slices.Clone(g.children)
}

// VisitChildren calls visitor for each child in order.
func (g *GroupBase) VisitChildren(visitor func(View)) {
	for _, child := range g.children {
		visitor(child)
	}
}

// measureChild measures child within available, passing on whether this
// group's own content space is exact.
func (g *GroupBase) measureChild(child View, available graphics.Size) {
	child.base().measure(available, g.exactW, g.exactH)
}

// AddView attaches child at index.
func (g *GroupBase) AddView(child View, index int, params LayoutParams) error {
	if child == nil {
		return ErrNilView
	}
	if child.Parent() != nil {
		return fmt.Errorf("add view %d: %w", child.ID(), ErrHasParent)
	}
	if index == -1 {
		index = len(g.children)
	}
	if index < 0 || index > len(g.children) {
		return fmt.Errorf("add view %d at %d (count %d): %w", child.ID(), index, len(g.children), ErrIndexOutOfRange)
	}
	if params == nil {
		params = child.LayoutParams()
	}
	if params == nil {
		params = WrapParams()
	}
	if conv, ok := g.self.(paramsConverter); ok {
		params = conv.ConvertLayoutParams(params)
	}

	g.children = slices.Insert(g.children, index, child)
	cb := child.base()
	cb.parent = g.self.(Group)
	cb.params = params
	cb.needsLayout = true
	g.RequestLayout()
	return nil
}

// RemoveView detaches child.
func (g *GroupBase) RemoveView(child View) bool {
	index := g.IndexOf(child)
	if index < 0 {
		return false
	}
	g.children = slices.Delete(g.children, index, index+1)
	child.base().parent = nil
	g.RequestLayout()
	return true
}

// ReferenceRewriter is implemented by groups whose children refer to
// siblings by ID.
type ReferenceRewriter interface {
	// ReplaceReferences points every child relation naming old at
	// replacement and returns how many were rewritten.
	ReplaceReferences(old, replacement ID) int
}

// Remeasurer is implemented by groups that cache per-child state during
// measure and must measure again after their children change.
type Remeasurer interface {
	Remeasure()
}
