package status_test

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/pagestatus/pkg/errors"
	"github.com/go-drift/pagestatus/pkg/status"
	pstest "github.com/go-drift/pagestatus/pkg/testing"
	"github.com/go-drift/pagestatus/pkg/view"
)

const statusLayouts = `
version: v1.0.0
layouts:
  list:
    type: linear
    width: match
    height: match
    children:
      - type: text
        id: header
        text: Inbox
      - type: linear
        id: messages
        children:
          - type: text
            text: first message
          - type: text
            text: second message
  loading:
    type: frame
    children:
      - type: text
        text: Loading...
  empty:
    type: text
    id: empty
    text: Nothing here
`

func newPage(t *testing.T) (*pstest.ViewTester, view.View) {
	t.Helper()
	tester := pstest.NewViewTesterWithT(t)
	if err := tester.Load(statusLayouts); err != nil {
		t.Fatal(err)
	}
	if _, err := tester.Mount("list"); err != nil {
		t.Fatal(err)
	}
	return tester, tester.Find(pstest.ByName("messages")).First()
}

func TestReplacementStatus_ShowAndHide(t *testing.T) {
	tester, anchor := newPage(t)
	handler := pstest.NewRecordingHandler("Loading")
	tr, err := status.NewReplacement(anchor, status.NewBuilder().
		Add("loading", handler.Status()).
		Add("content", func() status.DisplayStatus { return status.ContentStatus() }),
		status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}
	frame := tr.Slot().Container

	if err := tr.Transform("loading", status.Params{"progress": 10}); err != nil {
		t.Fatal(err)
	}
	tester.Pump()
	if anchor.Parent() != nil {
		t.Fatal("content still attached while loading")
	}
	if frame.ChildCount() != 1 || handler.LastView != frame.ChildAt(0) {
		t.Fatalf("loading content not in the slot:\n%s", tester.Dump())
	}
	if handler.Shows != 1 || handler.LastParams["progress"] != 10 {
		t.Fatalf("show hook: %d calls, params %v", handler.Shows, handler.LastParams)
	}

	// Showing again without a hide is a no-op.
	loading, _ := tr.Status("loading")
	if err := loading.ShowView(nil); err != nil {
		t.Fatal(err)
	}
	if handler.Shows != 1 || frame.ChildCount() != 1 {
		t.Fatal("repeated show inserted or notified again")
	}

	if err := tr.Transform("content", nil); err != nil {
		t.Fatal(err)
	}
	if anchor.Parent() != frame || frame.ChildCount() != 1 {
		t.Fatalf("content not restored:\n%s", tester.Dump())
	}
	if handler.Hides != 1 {
		t.Fatalf("hide hook called %d times", handler.Hides)
	}

	// The loading view is cached, not inflated again.
	if err := tr.Transform("loading", nil); err != nil {
		t.Fatal(err)
	}
	if handler.Inflates != 1 {
		t.Fatalf("inflated %d times", handler.Inflates)
	}
	if !tester.Find(pstest.ByText("Loading")).Exists() {
		t.Fatal("loading text not in tree")
	}
}

func TestReplacementStatus_LayoutHandler(t *testing.T) {
	tester, anchor := newPage(t)
	tr, err := status.NewReplacement(anchor, status.NewBuilder().
		Add("loading", func() status.DisplayStatus { return status.NewReplacementStatus(status.Layout("loading")) }).
		Add("empty", func() status.DisplayStatus { return status.NewReplacementStatus(status.Layout("empty")) }),
		status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}

	if err := tr.Transform("empty", nil); err != nil {
		t.Fatal(err)
	}
	tester.Pump()
	empty := tester.Find(pstest.ByText("Nothing here"))
	if empty.Count() != 1 {
		t.Fatalf("empty layout shown %d times:\n%s", empty.Count(), tester.Dump())
	}
	header := tester.Find(pstest.ByName("header")).First()
	if got, want := view.AbsoluteBounds(empty.First()).Top, header.Bounds().Bottom; got != want {
		t.Fatalf("empty content at y=%v, want %v", got, want)
	}

	if err := tr.Transform("loading", nil); err != nil {
		t.Fatal(err)
	}
	if tester.Find(pstest.ByText("Nothing here")).Exists() || !tester.Find(pstest.ByText("Loading...")).Exists() {
		t.Fatalf("unexpected tree:\n%s", tester.Dump())
	}
}

func TestReplacementStatus_UnexpectedParent(t *testing.T) {
	tester, anchor := newPage(t)
	handler := pstest.NewRecordingHandler("Loading")
	tr, err := status.NewReplacement(anchor, status.NewBuilder().
		Add("loading", handler.Status()).
		Add("content", func() status.DisplayStatus { return status.ContentStatus() }),
		status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Transform("loading", nil); err != nil {
		t.Fatal(err)
	}
	if err := tr.Transform("content", nil); err != nil {
		t.Fatal(err)
	}

	// Someone else adopts the cached loading view.
	elsewhere := view.NewFrame(tester.Context())
	if err := elsewhere.AddView(handler.LastView, -1, nil); err != nil {
		t.Fatal(err)
	}

	err = tr.Transform("loading", nil)
	if !stderrors.Is(err, errors.ErrUnexpectedParent) {
		t.Fatalf("expected ErrUnexpectedParent, got %v", err)
	}
	if current, _ := tr.CurrentStatusName(); current != "loading" {
		t.Fatalf("current = %q", current)
	}
	if handler.LastView.Parent() != view.Group(elsewhere) {
		t.Fatal("view was taken from its new parent")
	}
}

func TestReplacementStatus_ClampsIndex(t *testing.T) {
	ctx := view.NewContext()
	container := view.NewFrame(ctx)
	first, second := view.NewBox(ctx, 1, 1), view.NewBox(ctx, 1, 1)
	_ = container.AddView(first, -1, nil)
	_ = container.AddView(second, -1, nil)

	tests := []struct {
		index int
		want  int
	}{
		{index: 1, want: 1},
		{index: 0, want: 0},
		{index: 5, want: 2},
		{index: -1, want: 2},
	}
	for _, tt := range tests {
		rs := status.NewReplacementStatus(pstest.NewRecordingHandler("x"))
		rs.Attach(&status.Slot{Container: container, Index: tt.index})
		if err := rs.ShowView(nil); err != nil {
			t.Fatalf("index %d: %v", tt.index, err)
		}
		if got := container.IndexOf(rs.Child()); got != tt.want {
			t.Fatalf("index %d: inserted at %d, want %d", tt.index, got, tt.want)
		}
		rs.HideView()
	}
}

func TestReplacementStatus_NotAttached(t *testing.T) {
	rs := status.NewReplacementStatus(pstest.NewRecordingHandler("x"))
	if err := rs.ShowView(nil); !stderrors.Is(err, errors.ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
	rs.HideView()
}

func TestReplacementStatus_HideBeforeShow(t *testing.T) {
	ctx := view.NewContext()
	handler := pstest.NewRecordingHandler("x")
	rs := status.NewReplacementStatus(handler)
	rs.Attach(&status.Slot{Container: view.NewFrame(ctx), Index: -1})

	rs.HideView()
	if handler.Hides != 0 || handler.Inflates != 0 {
		t.Fatal("hide before show inflated or notified")
	}
}

func TestReplacementStatus_NilContent(t *testing.T) {
	ctx := view.NewContext()
	rs := status.NewReplacementStatus(status.HandlerFunc(func(status.InflateContext, view.Group) (view.View, error) {
		return nil, nil
	}))
	rs.Attach(&status.Slot{Container: view.NewFrame(ctx), Index: -1})
	if err := rs.ShowView(nil); errors.KindOf(err) != errors.KindMisconfigured {
		t.Fatalf("expected misconfigured error, got %v", err)
	}
}

func TestReplacementStatus_InflateError(t *testing.T) {
	_, anchor := newPage(t)
	tr, err := status.NewReplacement(anchor, status.NewBuilder().
		Add("broken", func() status.DisplayStatus { return status.NewReplacementStatus(status.Layout("missing")) }),
		status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Transform("broken", nil); !stderrors.Is(err, errors.ErrInflate) {
		t.Fatalf("expected ErrInflate, got %v", err)
	}
}
