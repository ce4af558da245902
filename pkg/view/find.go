package view

// Walk calls visit for v and its descendants, depth first, parents before
// children. Returning false from visit skips the view's children.
func Walk(v View, visit func(View) bool) {
	if v == nil || !visit(v) {
		return
	}
	if g, ok := v.(Group); ok {
		for _, child := range g.Children() {
			Walk(child, visit)
		}
	}
}

// FindByID returns the first view in the subtree with the given ID, or nil.
func FindByID(root View, id ID) View {
	if id == NoID {
		return nil
	}
	var found View
	Walk(root, func(v View) bool {
		if found != nil {
			return false
		}
		if v.ID() == id {
			found = v
			return false
		}
		return true
	})
	return found
}

// IsPassThrough reports whether g only holds children without laying them
// out relative to each other.
func IsPassThrough(g Group) bool {
	p, ok := g.(interface{ PassThrough() bool })
	return ok && p.PassThrough()
}
