package status_test

import (
	stderrors "errors"
	"fmt"
	"slices"
	"testing"

	"github.com/go-drift/pagestatus/pkg/errors"
	"github.com/go-drift/pagestatus/pkg/graphics"
	"github.com/go-drift/pagestatus/pkg/status"
	pstest "github.com/go-drift/pagestatus/pkg/testing"
	"github.com/go-drift/pagestatus/pkg/view"
)

// tracer logs its hooks under a label.
type tracer struct {
	label string
	log   *[]string
}

func (tr tracer) OnViewShow(view.View) { *tr.log = append(*tr.log, "show:"+tr.label) }
func (tr tracer) OnViewHide(view.View) { *tr.log = append(*tr.log, "hide:"+tr.label) }

// decorated registers one recording handler wrapped depth times.
func decorated(t *testing.T, depth int, log *[]string) (*status.Transformer, *pstest.RecordingHandler, view.Group) {
	t.Helper()
	ctx := view.NewContext()
	root := view.NewRoot(ctx, graphics.Size{Width: 200, Height: 100})
	anchor := view.NewText(ctx, "content")
	if err := root.AddView(anchor, -1, nil); err != nil {
		t.Fatal(err)
	}
	handler := pstest.NewRecordingHandler("loading")
	factory := func() status.DisplayStatus {
		rs := status.NewReplacementStatus(handler)
		for i := range depth {
			var err error
			if rs, err = status.Decorate(rs, tracer{label: fmt.Sprint(i), log: log}); err != nil {
				t.Fatal(err)
			}
		}
		return rs
	}
	tr, err := status.NewReplacement(anchor, status.NewBuilder().
		Add("loading", factory).
		Add("content", func() status.DisplayStatus { return status.ContentStatus() }),
		status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}
	return tr, handler, tr.Slot().Container
}

func TestDecorate_Transparent(t *testing.T) {
	for _, depth := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("depth=%d", depth), func(t *testing.T) {
			var log []string
			tr, handler, container := decorated(t, depth, &log)

			for range 2 {
				if err := tr.Transform("loading", nil); err != nil {
					t.Fatal(err)
				}
				if err := tr.Transform("content", nil); err != nil {
					t.Fatal(err)
				}
			}
			if err := tr.Transform("loading", nil); err != nil {
				t.Fatal(err)
			}

			if handler.Inflates != 1 || handler.Shows != 3 || handler.Hides != 2 {
				t.Fatalf("inflates=%d shows=%d hides=%d", handler.Inflates, handler.Shows, handler.Hides)
			}
			if container.ChildCount() != 1 || container.ChildAt(0) != handler.LastView {
				t.Fatalf("slot holds %d children", container.ChildCount())
			}
			if len(log) != 5*depth {
				t.Fatalf("decorations fired %d hooks, want %d", len(log), 5*depth)
			}
		})
	}
}

func TestDecorate_HookOrder(t *testing.T) {
	var log []string
	tr, _, _ := decorated(t, 2, &log)

	if err := tr.Transform("loading", nil); err != nil {
		t.Fatal(err)
	}
	if err := tr.Transform("content", nil); err != nil {
		t.Fatal(err)
	}
	want := []string{"show:0", "show:1", "hide:0", "hide:1"}
	if !slices.Equal(log, want) {
		t.Fatalf("hooks = %v, want %v", log, want)
	}
}

func TestDecorate_SharesState(t *testing.T) {
	ctx := view.NewContext()
	container := view.NewFrame(ctx)
	inner := status.NewReplacementStatus(pstest.NewRecordingHandler("x"))
	outer, err := status.Decorate(inner, status.HookFuncs{})
	if err != nil {
		t.Fatal(err)
	}

	outer.Attach(&status.Slot{Container: container, Index: -1})
	if inner.Slot() != outer.Slot() {
		t.Fatal("decoration has its own slot")
	}
	if err := outer.ShowView(nil); err != nil {
		t.Fatal(err)
	}
	if inner.Child() == nil || inner.Child() != outer.Child() {
		t.Fatal("decoration has its own content")
	}

	// Either end hides the shared content.
	inner.HideView()
	if container.ChildCount() != 0 {
		t.Fatal("content still shown")
	}
}

func TestHookFuncs(t *testing.T) {
	var calls []string
	ctx := view.NewContext()
	v := view.NewText(ctx, "x")

	status.HookFuncs{Show: func(view.View) { calls = append(calls, "show") }}.OnViewShowParams(v, nil)
	status.HookFuncs{
		Show:       func(view.View) { calls = append(calls, "show") },
		ShowParams: func(_ view.View, p status.Params) { calls = append(calls, "params:"+fmt.Sprint(p["n"])) },
	}.OnViewShowParams(v, status.Params{"n": 1})
	status.HookFuncs{Hide: func(view.View) { calls = append(calls, "hide") }}.OnViewHide(v)
	status.HookFuncs{}.OnViewShowParams(v, nil)
	status.HookFuncs{}.OnViewHide(v)

	want := []string{"show", "params:1", "hide"}
	if !slices.Equal(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestDecorate_ParamsHook(t *testing.T) {
	var got status.Params
	ctx := view.NewContext()
	container := view.NewFrame(ctx)
	rs, err := status.Decorate(status.NewReplacementStatus(pstest.NewRecordingHandler("x")), status.HookFuncs{
		ShowParams: func(_ view.View, p status.Params) { got = p },
	})
	if err != nil {
		t.Fatal(err)
	}
	rs.Attach(&status.Slot{Container: container, Index: -1})
	if err := rs.ShowView(status.Params{"message": "offline"}); err != nil {
		t.Fatal(err)
	}
	if msg, _ := got.String("message"); msg != "offline" {
		t.Fatalf("params = %v", got)
	}
}

type hideOnly struct{ hides *int }

func (h hideOnly) OnViewHide(view.View) { *h.hides++ }

func TestDecorate_Rejects(t *testing.T) {
	rs := status.NewReplacementStatus(pstest.NewRecordingHandler("x"))
	tests := []struct {
		name  string
		inner *status.ReplacementStatus
		d     status.Decoration
	}{
		{"nil inner", nil, status.HookFuncs{}},
		{"nil decoration", rs, nil},
		{"no hooks", rs, struct{ Label string }{"plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := status.Decorate(tt.inner, tt.d)
			if got != nil || !stderrors.Is(err, errors.ErrMisconfigured) {
				t.Fatalf("Decorate() = %v, %v", got, err)
			}
		})
	}

	var hides int
	if _, err := status.Decorate(rs, hideOnly{&hides}); err != nil {
		t.Fatalf("hide-only decoration rejected: %v", err)
	}
}
