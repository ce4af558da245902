package view

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/pagestatus/pkg/graphics"
)

// ErrStaleDependency is returned when the coordinator's dependency order
// still holds a view that is no longer one of its children. It means the
// children changed without a re-measure.
var ErrStaleDependency = stderrors.New("stale dependency order")

// Behavior lets a child of a CoordinatorLayout react to its siblings.
type Behavior interface {
	// LayoutDependsOn reports whether child depends on dependency.
	LayoutDependsOn(parent *CoordinatorLayout, child, dependency View) bool
	// OnDependentViewChanged is called after dependency changed. It reports
	// whether child changed its own position or size.
	OnDependentViewChanged(parent *CoordinatorLayout, child, dependency View) bool
}

// CoordinatorParams attach an optional Behavior and anchor to a child of a
// CoordinatorLayout. A child with AnchorID set depends on that sibling.
type CoordinatorParams struct {
	Params
	Behavior Behavior
	AnchorID ID
}

// NewCoordinatorParams returns params with the given dimensions and behavior.
func NewCoordinatorParams(width, height Dimension, behavior Behavior) *CoordinatorParams {
	return &CoordinatorParams{Params: Params{Width: width, Height: height}, Behavior: behavior}
}

// CoordinatorLayout overlays its children like a Frame, and orders them so
// that every child comes after the siblings it depends on. The order is
// computed during Measure and reused until the next one.
type CoordinatorLayout struct {
	GroupBase
	sorted []View
}

// NewCoordinatorLayout creates an empty coordinator.
func NewCoordinatorLayout(ctx *Context) *CoordinatorLayout {
	c := &CoordinatorLayout{}
	c.Init(ctx, c)
	return c
}

// Kind returns the group's type name for dumps.
func (c *CoordinatorLayout) Kind() string {
	return "coordinator"
}

// ConvertLayoutParams wraps plain params into CoordinatorParams.
func (c *CoordinatorLayout) ConvertLayoutParams(params LayoutParams) LayoutParams {
	if cp, ok := params.(*CoordinatorParams); ok {
		return cp
	}
	return &CoordinatorParams{Params: *params.Base()}
}

// DependencySorted returns the cached dependency order.
func (c *CoordinatorLayout) DependencySorted() []View {
	return append([]View(nil), c.sorted...)
}

// OnMeasure rebuilds the dependency order, then measures children in it.
func (c *CoordinatorLayout) OnMeasure(available graphics.Size) graphics.Size {
	c.prepareChildren()
	var size graphics.Size
	for _, child := range c.sorted {
		c.measureChild(child, available)
		if child.Visibility() == Gone {
			continue
		}
		m := child.MeasuredSize()
		size.Width = max(size.Width, m.Width)
		size.Height = max(size.Height, m.Height)
	}
	return size
}

// OnLayout places children at the origin in dependency order.
func (c *CoordinatorLayout) OnLayout(size graphics.Size) {
	layoutOverlaid(c.sorted, size)
}

// Remeasure rebuilds the dependency order, measures the coordinator again
// against the space it was last offered and requests layout. The order is
// rebuilt even when the coordinator is gone.
func (c *CoordinatorLayout) Remeasure() {
	c.prepareChildren()
	c.measure(c.available, c.exactW, c.exactH)
	c.RequestLayout()
}

// ReplaceReferences points every child anchored at old to replacement.
func (c *CoordinatorLayout) ReplaceReferences(old, replacement ID) int {
	if old == NoID {
		return 0
	}
	n := 0
	for _, child := range c.children {
		if cp, ok := child.LayoutParams().(*CoordinatorParams); ok && cp.AnchorID == old {
			cp.AnchorID = replacement
			n++
		}
	}
	return n
}

// DispatchDependentViewChanged notifies every child that depends on
// changed, in dependency order.
func (c *CoordinatorLayout) DispatchDependentViewChanged(changed View) error {
	for _, child := range c.sorted {
		if child.Parent() != Group(c) {
			return fmt.Errorf("dispatch from view %d: view %d: %w", changed.ID(), child.ID(), ErrStaleDependency)
		}
	}
	for _, child := range c.sorted {
		if child == changed || !c.dependsOn(child, changed) {
			continue
		}
		if cp, ok := child.LayoutParams().(*CoordinatorParams); ok && cp.Behavior != nil {
			if cp.Behavior.OnDependentViewChanged(c, child, changed) {
				c.RequestLayout()
			}
		}
	}
	return nil
}

func (c *CoordinatorLayout) dependsOn(child, dependency View) bool {
	cp, ok := child.LayoutParams().(*CoordinatorParams)
	if !ok {
		return false
	}
	if cp.AnchorID != NoID && cp.AnchorID == dependency.ID() {
		return true
	}
	return cp.Behavior != nil && cp.Behavior.LayoutDependsOn(c, child, dependency)
}

// prepareChildren orders children so dependencies come first. Ties keep
// child order; children caught in a cycle are appended in child order.
func (c *CoordinatorLayout) prepareChildren() {
	n := len(c.children)
	indegree := make([]int, n)
	dependents := make([][]int, n)
	for i, child := range c.children {
		for j, dep := range c.children {
			if i != j && c.dependsOn(child, dep) {
				indegree[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	sorted := make([]View, 0, n)
	done := make([]bool, n)
	for len(sorted) < n {
		next := -1
		for i := range n {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		done[next] = true
		sorted = append(sorted, c.children[next])
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}
	for i, child := range c.children {
		if !done[i] {
			sorted = append(sorted, child)
		}
	}
	c.sorted = sorted
}
