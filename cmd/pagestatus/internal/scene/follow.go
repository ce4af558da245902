package scene

import "github.com/go-drift/pagestatus/pkg/view"

// Follow is a coordinator behavior for a child anchored to a sibling. It
// also follows the sibling when a status slot wraps it.
type Follow struct {
	Changes int
}

// LayoutDependsOn reports whether dependency is, or contains, child's anchor.
func (f *Follow) LayoutDependsOn(parent *view.CoordinatorLayout, child, dependency view.View) bool {
	cp, ok := child.LayoutParams().(*view.CoordinatorParams)
	if !ok || cp.AnchorID == view.NoID {
		return false
	}
	return view.FindByID(dependency, cp.AnchorID) != nil
}

// OnDependentViewChanged counts the change and asks for a new layout.
func (f *Follow) OnDependentViewChanged(parent *view.CoordinatorLayout, child, dependency view.View) bool {
	f.Changes++
	return true
}
