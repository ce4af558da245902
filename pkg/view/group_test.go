package view

import (
	"errors"
	"testing"

	"github.com/go-drift/pagestatus/pkg/graphics"
)

func TestAddView_AppendsAndInserts(t *testing.T) {
	ctx := NewContext()
	f := NewFrame(ctx)
	a, b, c := NewBox(ctx, 1, 1), NewBox(ctx, 2, 2), NewBox(ctx, 3, 3)

	if err := f.AddView(a, -1, nil); err != nil {
		t.Fatalf("append a: %v", err)
	}
	if err := f.AddView(b, -1, nil); err != nil {
		t.Fatalf("append b: %v", err)
	}
	if err := f.AddView(c, 1, nil); err != nil {
		t.Fatalf("insert c: %v", err)
	}

	want := []View{a, c, b}
	for i, v := range want {
		if f.ChildAt(i) != v {
			t.Fatalf("child %d: got %v, want %v", i, f.ChildAt(i), v)
		}
	}
	if c.Parent() != Group(f) {
		t.Fatalf("expected c's parent to be the frame")
	}
	if f.IndexOf(b) != 2 {
		t.Fatalf("IndexOf(b) = %d, want 2", f.IndexOf(b))
	}
}

func TestAddView_Errors(t *testing.T) {
	ctx := NewContext()
	f := NewFrame(ctx)
	other := NewFrame(ctx)
	attached := NewBox(ctx, 1, 1)
	if err := other.AddView(attached, -1, nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		child View
		index int
		want  error
	}{
		{"nil child", nil, -1, ErrNilView},
		{"already attached", attached, -1, ErrHasParent},
		{"index past end", NewBox(ctx, 1, 1), 1, ErrIndexOutOfRange},
		{"negative index", NewBox(ctx, 1, 1), -2, ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.AddView(tt.child, tt.index, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if f.ChildCount() != 0 {
				t.Fatalf("failed add left %d children", f.ChildCount())
			}
		})
	}
}

func TestAddView_ParamsFallback(t *testing.T) {
	ctx := NewContext()
	f := NewFrame(ctx)

	own := NewBox(ctx, 1, 1)
	own.SetLayoutParams(NewParams(5, 6))
	if err := f.AddView(own, -1, nil); err != nil {
		t.Fatal(err)
	}
	if got := own.LayoutParams().Base(); got.Width != 5 || got.Height != 6 {
		t.Fatalf("own params replaced: %v", got)
	}

	bare := NewBox(ctx, 1, 1)
	if err := f.AddView(bare, -1, nil); err != nil {
		t.Fatal(err)
	}
	if got := bare.LayoutParams().Base(); got.Width != WrapContent || got.Height != WrapContent {
		t.Fatalf("expected wrap params, got %v", got)
	}

	explicit := NewBox(ctx, 1, 1)
	explicit.SetLayoutParams(NewParams(5, 6))
	if err := f.AddView(explicit, -1, FillParams()); err != nil {
		t.Fatal(err)
	}
	if got := explicit.LayoutParams().Base(); got.Width != MatchParent {
		t.Fatalf("explicit params ignored: %v", got)
	}
}

func TestAddView_ConvertsParams(t *testing.T) {
	ctx := NewContext()
	c := NewConstraintLayout(ctx)
	child := NewBox(ctx, 1, 1)
	if err := c.AddView(child, -1, NewParams(7, WrapContent)); err != nil {
		t.Fatal(err)
	}
	cp, ok := child.LayoutParams().(*ConstraintParams)
	if !ok {
		t.Fatalf("expected *ConstraintParams, got %T", child.LayoutParams())
	}
	if cp.Width != 7 {
		t.Fatalf("width lost in conversion: %v", cp.Width)
	}
}

func TestRemoveView(t *testing.T) {
	ctx := NewContext()
	f := NewFrame(ctx)
	a := NewBox(ctx, 1, 1)
	_ = f.AddView(a, -1, nil)

	if !f.RemoveView(a) {
		t.Fatal("expected RemoveView to report true")
	}
	if a.Parent() != nil {
		t.Fatal("removed view still has a parent")
	}
	if f.RemoveView(a) {
		t.Fatal("expected second RemoveView to report false")
	}
	if err := NewFrame(ctx).AddView(a, -1, nil); err != nil {
		t.Fatalf("removed view cannot be re-added: %v", err)
	}
}

func TestRequestLayout_PropagatesToRoot(t *testing.T) {
	ctx := NewContext()
	root := NewRoot(ctx, graphics.Size{Width: 50, Height: 50})
	f := NewFrame(ctx)
	leaf := NewText(ctx, "x")
	_ = root.AddView(f, -1, nil)
	_ = f.AddView(leaf, -1, nil)

	if !root.Flush() {
		t.Fatal("expected first flush to run")
	}
	if root.Flush() {
		t.Fatal("expected clean tree not to flush")
	}

	leaf.SetText("longer")
	if !f.NeedsLayout() || !root.NeedsLayout() {
		t.Fatal("expected ancestors to need layout")
	}
	if !root.Flush() {
		t.Fatal("expected flush after text change")
	}
	if leaf.NeedsLayout() {
		t.Fatal("leaf still dirty after flush")
	}
}
