package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/pagestatus/pkg/view"
)

// Finder locates views in a tree.
type Finder interface {
	// Evaluate returns all matching views under root (depth-first pre-order).
	Evaluate(root view.View) []view.View
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	views  []view.View
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() view.View {
	if len(r.views) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no views: %s", desc))
	}
	return r.views[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() view.View {
	if len(r.views) == 0 {
		return nil
	}
	return r.views[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) view.View {
	if index < 0 || index >= len(r.views) {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.views), desc))
	}
	return r.views[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []view.View {
	return r.views
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.views)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.views) > 0
}

// Evaluate runs finder against root.
func Evaluate(root view.View, finder Finder) FinderResult {
	return FinderResult{views: finder.Evaluate(root), finder: finder}
}

// --- Concrete finders ---

// typeFinder matches views of the specified type.
type typeFinder struct {
	viewType reflect.Type
	typeName string
}

func (f *typeFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, func(v view.View) bool {
		return reflect.TypeOf(v) == f.viewType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType returns a finder that matches views of type T, e.g.
// ByType[*view.Frame]().
func ByType[T view.View]() Finder {
	t := reflect.TypeFor[T]()
	return &typeFinder{viewType: t, typeName: t.String()}
}

// idFinder matches views by ID.
type idFinder struct {
	id view.ID
}

func (f *idFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, func(v view.View) bool {
		return f.id != view.NoID && v.ID() == f.id
	})
}

func (f *idFinder) Description() string {
	return fmt.Sprintf("ByID(%d)", f.id)
}

// ByID returns a finder that matches views with the given ID.
func ByID(id view.ID) Finder {
	return &idFinder{id: id}
}

// nameFinder matches views whose ID is registered under a name.
type nameFinder struct {
	name string
}

func (f *nameFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, func(v view.View) bool {
		return v.ID() != view.NoID && v.Context().NameOf(v.ID()) == f.name
	})
}

func (f *nameFinder) Description() string {
	return fmt.Sprintf("ByName(%q)", f.name)
}

// ByName returns a finder that matches views whose ID was registered
// under name, as layouts do for their id fields.
func ByName(name string) Finder {
	return &nameFinder{name: name}
}

// textFinder matches view.Text views by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, func(v view.View) bool {
		t, ok := v.(*view.Text)
		return ok && t.Text() == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches [view.Text] with exact content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches view.Text views containing a substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, func(v view.View) bool {
		t, ok := v.(*view.Text)
		return ok && strings.Contains(t.Text(), f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches [view.Text] containing
// the given substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// predicateFinder matches views satisfying a predicate.
type predicateFinder struct {
	fn   func(view.View) bool
	desc string
}

func (f *predicateFinder) Evaluate(root view.View) []view.View {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches views satisfying fn.
func ByPredicate(fn func(view.View) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds views matching 'matching' that are descendants
// of views matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root view.View) []view.View {
	var results []view.View
	seen := make(map[view.View]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		g, ok := ancestor.(view.Group)
		if !ok {
			continue
		}
		// Search within each ancestor's subtree, skipping the ancestor itself.
		for _, child := range g.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches views satisfying 'matching'
// that are descendants of views matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// views that satisfy the predicate.
func collectMatches(root view.View, predicate func(view.View) bool) []view.View {
	var results []view.View
	view.Walk(root, func(v view.View) bool {
		if predicate(v) {
			results = append(results, v)
		}
		return true
	})
	return results
}
