package status_test

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/pagestatus/pkg/status"
	pstest "github.com/go-drift/pagestatus/pkg/testing"
	"github.com/go-drift/pagestatus/pkg/view"
)

func TestSimpleStatus(t *testing.T) {
	ctx := view.NewContext()
	progress := view.NewText(ctx, "Loading")
	errorText := view.NewText(ctx, "Failed")

	tr, err := status.New(status.NewBuilder().
		Add("loading", func() status.DisplayStatus { return status.NewSimpleStatus(progress) }).
		Add("error", func() status.DisplayStatus { return status.NewSimpleStatus(errorText) }).
		Add("idle", func() status.DisplayStatus { return status.NewSimpleStatus(nil) }))
	if err != nil {
		t.Fatal(err)
	}

	if err := tr.Transform("loading", nil); err != nil {
		t.Fatal(err)
	}
	if progress.Visibility() != view.Visible || errorText.Visibility() != view.Gone {
		t.Fatalf("loading: progress %v, error %v", progress.Visibility(), errorText.Visibility())
	}
	if err := tr.Transform("idle", nil); err != nil {
		t.Fatal(err)
	}
	if progress.Visibility() != view.Gone || errorText.Visibility() != view.Gone {
		t.Fatal("idle left a view visible")
	}
}

func TestStubStatus(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	tester.MustLoad(`
version: v1.0.0
layouts:
  page:
    type: linear
    children:
      - type: text
        text: Title
      - type: stub
        id: errorStub
        layout: error
        inflatedId: errorPanel
  error:
    type: text
    text: Something went wrong
`)
	tester.MustMount("page")
	stub, ok := tester.Find(pstest.ByName("errorStub")).First().(*view.Stub)
	if !ok {
		t.Fatal("stub not found")
	}

	tr, err := status.New(status.NewBuilder().
		Add("content", func() status.DisplayStatus { return status.StatusFuncs{} }).
		Add("error", func() status.DisplayStatus { return status.NewStubStatus(stub) }))
	if err != nil {
		t.Fatal(err)
	}

	// Hiding before the first show must not inflate.
	if err := tr.Transform("content", nil); err != nil {
		t.Fatal(err)
	}
	if stub.Inflated() != nil {
		t.Fatal("stub inflated while hidden")
	}

	if err := tr.Transform("error", nil); err != nil {
		t.Fatal(err)
	}
	tester.Pump()
	panel := tester.Find(pstest.ByName("errorPanel"))
	if panel.Count() != 1 || panel.First().Visibility() != view.Visible {
		t.Fatalf("error panel not shown:\n%s", tester.Dump())
	}
	if stub.Parent() != nil {
		t.Fatal("stub still in the tree")
	}

	if err := tr.Transform("content", nil); err != nil {
		t.Fatal(err)
	}
	if panel.First().Visibility() != view.Gone {
		t.Fatal("error panel still visible")
	}
	if err := tr.Transform("error", nil); err != nil {
		t.Fatal(err)
	}
	if got := tester.Find(pstest.ByText("Something went wrong")).Count(); got != 1 {
		t.Fatalf("error layout inflated %d times", got)
	}
}

func TestStatusFuncs(t *testing.T) {
	boom := stderrors.New("boom")
	var hidden int
	st := status.StatusFuncs{
		Show: func(status.Params) error { return boom },
		Hide: func() { hidden++ },
	}
	if err := st.ShowView(nil); err != boom {
		t.Fatalf("ShowView = %v", err)
	}
	st.HideView()
	if hidden != 1 {
		t.Fatalf("hidden = %d", hidden)
	}

	var empty status.StatusFuncs
	if err := empty.ShowView(nil); err != nil {
		t.Fatal(err)
	}
	empty.HideView()
}

func TestParams_String(t *testing.T) {
	p := status.Params{"message": "offline", "code": 503}
	if s, ok := p.String("message"); !ok || s != "offline" {
		t.Fatalf("message = %q, %v", s, ok)
	}
	if _, ok := p.String("code"); ok {
		t.Fatal("non-string reported as string")
	}
	if _, ok := status.Params(nil).String("missing"); ok {
		t.Fatal("nil params reported a value")
	}
}
