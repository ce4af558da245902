package status_test

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/pagestatus/pkg/errors"
	"github.com/go-drift/pagestatus/pkg/graphics"
	"github.com/go-drift/pagestatus/pkg/status"
	pstest "github.com/go-drift/pagestatus/pkg/testing"
	"github.com/go-drift/pagestatus/pkg/view"
)

func depth(v view.View) int {
	d := 0
	for p := v.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

func TestSubstitute_SplicesGeneralContainer(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	list := view.NewLinear(ctx, view.Vertical)
	_ = tester.Root().AddView(list, -1, view.FillParams())
	header := view.NewText(ctx, "Header")
	anchor := view.NewText(ctx, "Content")
	footer := view.NewText(ctx, "Footer")
	params := view.NewParams(view.MatchParent, 30)
	_ = list.AddView(header, -1, nil)
	_ = list.AddView(anchor, -1, params)
	_ = list.AddView(footer, -1, nil)

	slot, err := status.NewSubstituter().Substitute(anchor)
	if err != nil {
		t.Fatal(err)
	}

	frame, ok := slot.Container.(*view.Frame)
	if !ok {
		t.Fatalf("container is %T, want *view.Frame", slot.Container)
	}
	if list.ChildAt(1) != view.View(frame) || list.ChildCount() != 3 {
		t.Fatalf("frame not spliced at the anchor's index:\n%s", view.Dump(list))
	}
	if frame.LayoutParams() != view.LayoutParams(params) {
		t.Fatal("frame did not take the anchor's params")
	}
	if anchor.Parent() != view.Group(frame) || frame.ChildCount() != 1 {
		t.Fatal("anchor not moved into the frame")
	}
	if p := anchor.LayoutParams().Base(); p.Width != view.MatchParent || p.Height != view.MatchParent {
		t.Fatalf("anchor params = %v, want fill", p)
	}
	if frame.ID() == view.NoID || frame.ID() == anchor.ID() {
		t.Fatalf("frame id = %d", frame.ID())
	}
	if slot.Index != -1 || slot.Anchor != view.View(anchor) {
		t.Fatalf("slot = %+v", slot)
	}

	tester.Pump()
	if got := anchor.Bounds().Height(); got != 30 {
		t.Fatalf("anchor height = %v, want 30", got)
	}
}

func TestSubstitute_ReusesPassThroughParent(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	frame := view.NewFrame(ctx)
	_ = tester.Root().AddView(frame, -1, view.FillParams())
	anchor := view.NewText(ctx, "Content")
	_ = frame.AddView(anchor, -1, nil)

	slot, err := status.NewSubstituter().Substitute(anchor)
	if err != nil {
		t.Fatal(err)
	}
	if slot.Container != view.Group(frame) || anchor.Parent() != view.Group(frame) {
		t.Fatal("pass-through parent was not reused as is")
	}
}

func TestSubstitute_SiblingsShareContainerNotSlot(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	frame := view.NewFrame(ctx)
	_ = tester.Root().AddView(frame, -1, view.FillParams())
	first := view.NewText(ctx, "First")
	second := view.NewText(ctx, "Second")
	_ = frame.AddView(first, -1, nil)
	_ = frame.AddView(second, -1, nil)

	subst := status.NewSubstituter()
	anchored := func(anchor view.View, loading string) *status.Transformer {
		tr, err := status.NewReplacement(anchor, status.NewBuilder().
			Add("loading", pstest.NewRecordingHandler(loading).Status()).
			Add("content", func() status.DisplayStatus { return status.ContentStatus() }),
			status.WithSubstituter(subst))
		if err != nil {
			t.Fatal(err)
		}
		return tr
	}
	ta, tb := anchored(first, "Loading first"), anchored(second, "Loading second")

	if ta.Slot() == tb.Slot() || ta.Slot().Container != tb.Slot().Container {
		t.Fatal("siblings should share the container through separate slots")
	}
	if tb.Slot().Anchor != view.View(second) {
		t.Fatalf("second slot anchored at %v", tb.Slot().Anchor)
	}
	content, _ := tb.Status("content")
	if got := content.(*status.ReplacementStatus).Child(); got != view.View(second) {
		t.Fatalf("content of the second transformer is %v", got)
	}

	if err := tb.Transform("loading", nil); err != nil {
		t.Fatal(err)
	}
	if first.Parent() != view.Group(frame) || second.Parent() != nil {
		t.Fatalf("second transformer touched the wrong region:\n%s", view.Dump(frame))
	}
	if err := ta.Transform("loading", nil); err != nil {
		t.Fatal(err)
	}
	if first.Parent() != nil || frame.ChildCount() != 2 {
		t.Fatalf("expected both loading views only:\n%s", view.Dump(frame))
	}
	if err := tb.Transform("content", nil); err != nil {
		t.Fatal(err)
	}
	if second.Parent() != view.Group(frame) || first.Parent() != nil {
		t.Fatalf("regions not independent:\n%s", view.Dump(frame))
	}
	if slot, _ := subst.Lookup(frame); slot != ta.Slot() {
		t.Fatal("Lookup should return the first slot recorded for the container")
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	list := view.NewLinear(ctx, view.Vertical)
	_ = tester.Root().AddView(list, -1, view.FillParams())
	anchor := view.NewText(ctx, "Content")
	_ = list.AddView(anchor, -1, nil)
	before := depth(anchor)

	subst := status.NewSubstituter()
	newTransformer := func() *status.Transformer {
		tr, err := status.NewReplacement(anchor, status.NewBuilder().
			Add("loading", pstest.NewRecordingHandler("Loading").Status()).
			Add("content", func() status.DisplayStatus { return status.ContentStatus() }),
			status.WithSubstituter(subst))
		if err != nil {
			t.Fatal(err)
		}
		return tr
	}
	first, second := newTransformer(), newTransformer()

	if first.Slot() != second.Slot() {
		t.Fatal("transformers anchored at the same view got different slots")
	}
	if got := depth(anchor); got != before+1 {
		t.Fatalf("depth went from %d to %d", before, got)
	}

	// Anchoring at the container itself reuses it as well.
	slot, err := subst.Substitute(first.Slot().Container)
	if err != nil {
		t.Fatal(err)
	}
	if slot != first.Slot() {
		t.Fatal("substituting the container produced a new slot")
	}
	if list.ChildCount() != 1 {
		t.Fatalf("list has %d children", list.ChildCount())
	}
}

func TestSubstitute_DetachedAnchor(t *testing.T) {
	ctx := view.NewContext()
	_, err := status.NewSubstituter().Substitute(view.NewText(ctx, "alone"))
	if !stderrors.Is(err, errors.ErrDetachedAnchor) {
		t.Fatalf("expected ErrDetachedAnchor, got %v", err)
	}

	_, err = status.NewReplacement(view.NewText(ctx, "alone"),
		status.NewBuilder().Add("content", func() status.DisplayStatus { return status.ContentStatus() }),
		status.WithSubstituter(status.NewSubstituter()))
	if errors.KindOf(err) != errors.KindDetachedAnchor {
		t.Fatalf("expected detached anchor error, got %v", err)
	}
}

func TestNewReplacement_EmptyBuilderLeavesTree(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	list := view.NewLinear(ctx, view.Vertical)
	_ = tester.Root().AddView(list, -1, view.FillParams())
	anchor := view.NewText(ctx, "Content")
	_ = list.AddView(anchor, -1, nil)

	tr, err := status.NewReplacement(anchor, status.NewBuilder(), status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Slot() != nil || anchor.Parent() != view.Group(list) {
		t.Fatal("empty builder changed the tree")
	}
}

func TestNewReplacement_RejectsPlainStatus(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	anchor := view.NewText(tester.Context(), "Content")
	_ = tester.Root().AddView(anchor, -1, nil)

	_, err := status.NewReplacement(anchor,
		status.NewBuilder().Add("content", func() status.DisplayStatus { return status.NewSimpleStatus(anchor) }),
		status.WithSubstituter(status.NewSubstituter()))
	if !stderrors.Is(err, errors.ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}

func TestSubstitute_Forget(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	frame := view.NewFrame(ctx)
	_ = tester.Root().AddView(frame, -1, nil)
	anchor := view.NewText(ctx, "Content")
	_ = frame.AddView(anchor, -1, nil)

	subst := status.NewSubstituter()
	if _, err := subst.Substitute(anchor); err != nil {
		t.Fatal(err)
	}
	if _, ok := subst.Lookup(frame); !ok {
		t.Fatal("slot not recorded")
	}
	subst.Forget(frame)
	if _, ok := subst.Lookup(frame); ok {
		t.Fatal("slot still recorded after Forget")
	}
	again, err := subst.Substitute(anchor)
	if err != nil {
		t.Fatal(err)
	}
	if again.Container != view.Group(frame) {
		t.Fatal("forgotten anchor not substituted again")
	}
}

func TestSubstitute_HiddenAnchorKeepsSlot(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	list := view.NewLinear(ctx, view.Vertical)
	_ = tester.Root().AddView(list, -1, view.FillParams())
	anchor := view.NewText(ctx, "Content")
	_ = list.AddView(anchor, -1, nil)

	subst := status.NewSubstituter()
	tr, err := status.NewReplacement(anchor, status.NewBuilder().
		Add("loading", pstest.NewRecordingHandler("Loading").Status()).
		Add("content", func() status.DisplayStatus { return status.ContentStatus() }),
		status.WithSubstituter(subst))
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Transform("loading", nil); err != nil {
		t.Fatal(err)
	}
	if anchor.Parent() != nil {
		t.Fatal("anchor still attached while loading")
	}
	slot, err := subst.Substitute(anchor)
	if err != nil {
		t.Fatalf("substituting a hidden anchor: %v", err)
	}
	if slot != tr.Slot() {
		t.Fatal("hidden anchor got a new slot")
	}
}

// constraintScene places an anchor in the middle of a constraint layout
// and one sibling per relation kind around it.
type constraintScene struct {
	layout   *view.ConstraintLayout
	anchor   *view.Text
	siblings []view.View
	params   []*view.ConstraintParams
}

func newConstraintScene(tester *pstest.ViewTester) *constraintScene {
	ctx := tester.Context()
	s := &constraintScene{layout: view.NewConstraintLayout(ctx)}
	_ = tester.Root().AddView(s.layout, -1, view.FillParams())

	s.anchor = view.NewText(ctx, "Anchored")
	s.anchor.SetID(ctx.IDFor("anchor"))
	ap := view.NewConstraintParams(view.WrapContent, view.WrapContent)
	ap.LeftToLeft, ap.RightToRight = view.ParentID, view.ParentID
	ap.TopToTop, ap.BottomToBottom = view.ParentID, view.ParentID
	_ = s.layout.AddView(s.anchor, -1, ap)

	a := s.anchor.ID()
	relations := []func(p *view.ConstraintParams){
		func(p *view.ConstraintParams) { p.LeftToRight, p.TopToTop = a, a },
		func(p *view.ConstraintParams) { p.RightToLeft, p.BottomToBottom = a, a },
		func(p *view.ConstraintParams) { p.StartToEnd, p.TopToBottom = a, a },
		func(p *view.ConstraintParams) { p.EndToStart, p.BottomToTop = a, a },
		func(p *view.ConstraintParams) { p.LeftToLeft, p.RightToRight = a, a },
		func(p *view.ConstraintParams) { p.StartToStart, p.EndToEnd = a, a },
		func(p *view.ConstraintParams) { p.BaselineToBaseline, p.LeftToLeft = a, view.ParentID },
		func(p *view.ConstraintParams) { p.CircleConstraint, p.CircleRadius, p.CircleAngle = a, 60, 45 },
	}
	for _, relate := range relations {
		p := view.NewConstraintParams(view.WrapContent, view.WrapContent)
		relate(p)
		sibling := view.NewBox(ctx, 12, 6)
		_ = s.layout.AddView(sibling, -1, p)
		s.siblings = append(s.siblings, sibling)
		s.params = append(s.params, p)
	}
	return s
}

func (s *constraintScene) bounds() []graphics.Rect {
	rects := []graphics.Rect{view.AbsoluteBounds(s.anchor)}
	for _, v := range s.siblings {
		rects = append(rects, view.AbsoluteBounds(v))
	}
	return rects
}

func TestSubstitute_RewritesConstraintReferences(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 300, Height: 200})
	scene := newConstraintScene(tester)
	tester.Pump()
	before := scene.bounds()
	anchorID := scene.anchor.ID()

	tr, err := status.NewReplacement(scene.anchor, status.NewBuilder().
		Add("content", func() status.DisplayStatus { return status.ContentStatus() }),
		status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}
	frame := tr.Slot().Container

	rewritten := 0
	for i, p := range scene.params {
		if p.References(anchorID) {
			t.Fatalf("sibling %d still references the anchor", i)
		}
		if !p.References(frame.ID()) {
			t.Fatalf("sibling %d does not reference the frame", i)
		}
		rewritten += p.ReplaceReference(frame.ID(), frame.ID())
	}
	if rewritten != 14 {
		t.Fatalf("%d relations point at the frame, want 14", rewritten)
	}

	tester.Pump()
	after := scene.bounds()
	for i := range before {
		if !after[i].ApproxEqual(before[i]) {
			t.Fatalf("view %d moved from %v to %v\n%s", i, before[i], after[i], tester.Dump())
		}
	}
	if !view.AbsoluteBounds(frame).ApproxEqual(before[0]) {
		t.Fatalf("frame bounds %v differ from the anchor's %v", view.AbsoluteBounds(frame), before[0])
	}
}

func TestSubstitute_AnchorWithoutIDSkipsRewrite(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	layout := view.NewConstraintLayout(ctx)
	_ = tester.Root().AddView(layout, -1, view.FillParams())
	anchor := view.NewText(ctx, "no id")
	_ = layout.AddView(anchor, -1, nil)
	p := view.NewConstraintParams(view.WrapContent, view.WrapContent)
	_ = layout.AddView(view.NewBox(ctx, 1, 1), -1, p)

	if _, err := status.NewSubstituter().Substitute(anchor); err != nil {
		t.Fatal(err)
	}
	if p.LeftToLeft != view.NoID || p.TopToTop != view.NoID {
		t.Fatal("unset relations were rewritten")
	}
}

func TestSubstitute_RemeasuresCoordinator(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	coordinator := view.NewCoordinatorLayout(ctx)
	_ = tester.Root().AddView(coordinator, -1, view.FillParams())
	anchor := view.NewText(ctx, "Content")
	_ = coordinator.AddView(anchor, -1, nil)
	_ = coordinator.AddView(view.NewBox(ctx, 4, 4), -1, nil)
	tester.Pump()

	tr, err := status.NewReplacement(anchor, status.NewBuilder().
		Add("loading", pstest.NewRecordingHandler("Loading").Status()),
		status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}

	// No layout pass ran since the splice; the order must already be fresh.
	frame := tr.Slot().Container
	if err := coordinator.DispatchDependentViewChanged(frame); err != nil {
		t.Fatalf("dispatch after substitution: %v", err)
	}
	if sorted := coordinator.DependencySorted(); sorted[0] != view.View(frame) {
		t.Fatalf("sorted[0] = %v, want the frame", sorted[0])
	}
}

func TestSubstitute_RewritesCoordinatorAnchors(t *testing.T) {
	tester := pstest.NewViewTesterWithT(t)
	ctx := tester.Context()
	coordinator := view.NewCoordinatorLayout(ctx)
	_ = tester.Root().AddView(coordinator, -1, view.FillParams())
	fab := view.NewBox(ctx, 4, 4)
	fp := view.NewCoordinatorParams(view.WrapContent, view.WrapContent, nil)
	anchor := view.NewText(ctx, "Content")
	anchor.SetID(ctx.IDFor("content"))
	fp.AnchorID = anchor.ID()
	_ = coordinator.AddView(fab, -1, fp)
	_ = coordinator.AddView(anchor, -1, nil)
	tester.Pump()

	tr, err := status.NewReplacement(anchor, status.NewBuilder().
		Add("loading", pstest.NewRecordingHandler("Loading").Status()),
		status.WithSubstituter(status.NewSubstituter()))
	if err != nil {
		t.Fatal(err)
	}
	frame := tr.Slot().Container
	if fp.AnchorID != frame.ID() {
		t.Fatalf("AnchorID = %d, want the frame %d", fp.AnchorID, frame.ID())
	}
	sorted := coordinator.DependencySorted()
	if len(sorted) != 2 || sorted[0] != view.View(frame) || sorted[1] != view.View(fab) {
		t.Fatalf("sorted = %v, want [frame fab]", sorted)
	}
}
