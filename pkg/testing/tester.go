package testing

import (
	"testing"

	"github.com/go-drift/pagestatus/pkg/graphics"
	"github.com/go-drift/pagestatus/pkg/platform"
	"github.com/go-drift/pagestatus/pkg/view"
)

const (
	// DefaultTestWidth is the default logical width of the test root.
	DefaultTestWidth = 320
	// DefaultTestHeight is the default logical height of the test root.
	DefaultTestHeight = 240
)

// ViewTester owns a view tree for a test. Pump runs what was posted
// through platform.Dispatch and then lays the tree out, like one turn of
// the UI loop.
type ViewTester struct {
	ctx        *view.Context
	root       *view.Root
	dispatches []func()
}

// NewViewTester creates a tester with an empty root of the default size.
// Call Cleanup() when done, or use NewViewTesterWithT() instead.
func NewViewTester() *ViewTester {
	ctx := view.NewContext()
	t := &ViewTester{
		ctx:  ctx,
		root: view.NewRoot(ctx, graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}),
	}
	// Route platform.Dispatch to this tester so dispatched work runs in Pump.
	platform.RegisterDispatch(t.Dispatch)
	return t
}

// NewViewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewViewTesterWithT(t *testing.T) *ViewTester {
	tester := NewViewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unregisters the tester's dispatch function.
func (t *ViewTester) Cleanup() {
	platform.RegisterDispatch(nil)
}

// Context returns the context every view of the tester is created with.
func (t *ViewTester) Context() *view.Context {
	return t.ctx
}

// Root returns the root of the tree.
func (t *ViewTester) Root() *view.Root {
	return t.root
}

// SetSize resizes the root.
func (t *ViewTester) SetSize(size graphics.Size) {
	t.root.Resize(size)
}

// Load registers a YAML layout document with the context's inflater.
func (t *ViewTester) Load(layouts string) error {
	return t.ctx.Inflater().Load([]byte(layouts))
}

// MustLoad is Load that panics on error.
func (t *ViewTester) MustLoad(layouts string) {
	if err := t.Load(layouts); err != nil {
		panic(err)
	}
}

// Mount inflates the named layout, appends it to the root and pumps.
func (t *ViewTester) Mount(layout string) (view.View, error) {
	v, err := t.ctx.Inflater().Inflate(layout, t.root)
	if err != nil {
		return nil, err
	}
	if err := t.root.AddView(v, -1, nil); err != nil {
		return nil, err
	}
	t.Pump()
	return v, nil
}

// MustMount is Mount that panics on error.
func (t *ViewTester) MustMount(layout string) view.View {
	v, err := t.Mount(layout)
	if err != nil {
		panic(err)
	}
	return v
}

// Pump runs queued dispatches, then measures and lays out the tree if
// anything requested layout.
func (t *ViewTester) Pump() {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.root.Flush()
}

// Dispatch queues a callback for the next Pump, mirroring platform.Dispatch.
func (t *ViewTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Find evaluates a finder against the tree.
func (t *ViewTester) Find(finder Finder) FinderResult {
	return Evaluate(t.root, finder)
}

// Dump returns view.Dump of the whole tree.
func (t *ViewTester) Dump() string {
	return view.Dump(t.root)
}
