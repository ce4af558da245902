package status

import (
	"fmt"
	"sync"

	"github.com/go-drift/pagestatus/pkg/errors"
	"github.com/go-drift/pagestatus/pkg/view"
)

// Slot is where replacement content for one anchor is inserted.
type Slot struct {
	// Container receives the replacement content.
	Container view.Group
	// Index is the insertion index in Container, or -1 to append. Indexes
	// past the end are clamped.
	Index int
	// Anchor is the view the slot stands in for.
	Anchor view.View
}

// insertIndex returns the index to insert at given the current child count.
func (s *Slot) insertIndex() int {
	n := s.Container.ChildCount()
	if s.Index < 0 || s.Index > n {
		return n
	}
	return s.Index
}

// Substituter installs slots in live view trees. It performs the tree
// surgery for an anchor at most once and remembers every container it
// produced or adopted, so later requests for the same anchor reuse it.
// Anchors sharing a pass-through container share the container but each
// get their own slot.
//
// It is safe for concurrent use, though the trees it operates on are not.
type Substituter struct {
	mu      sync.Mutex
	anchors map[view.View]*Slot
	// containers maps a container to the slot recorded first for it.
	containers map[view.Group]*Slot
}

// NewSubstituter returns a substituter with no known containers.
func NewSubstituter() *Substituter {
	return &Substituter{
		anchors:    make(map[view.View]*Slot),
		containers: make(map[view.Group]*Slot),
	}
}

// DefaultSubstituter is used by transformers built without WithSubstituter,
// so that transformers anchored at the same view share one slot.
var DefaultSubstituter = NewSubstituter()

// Lookup returns the first slot recorded for container.
func (s *Substituter) Lookup(container view.Group) (*Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.containers[container]
	return slot, ok
}

// Forget drops every slot recorded for container. The tree is left as is.
func (s *Substituter) Forget(container view.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.containers, container)
	for anchor, slot := range s.anchors {
		if slot.Container == container {
			delete(s.anchors, anchor)
		}
	}
}

// Substitute returns the slot for anchor, creating it if needed.
//
// If anchor's parent is a pass-through container, that parent becomes the
// slot's container and content is appended to it. Otherwise the anchor is
// spliced out: a new Frame takes its index, params and place in the
// parent, and the anchor moves into the frame, filling it. Siblings that
// referred to the anchor by ID are rewritten to refer to the frame, and a
// parent caching per-child state is measured again.
//
// The slot recorded for anchor is returned as is on later calls, also
// while a status has taken the anchor out of the tree.
func (s *Substituter) Substitute(anchor view.View) (*Slot, error) {
	const op = "status.Substitute"
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot, ok := s.anchors[anchor]; ok {
		return slot, nil
	}
	if g, ok := anchor.(view.Group); ok {
		if slot, ok := s.containers[g]; ok {
			return slot, nil
		}
	}
	parent := anchor.Parent()
	if parent == nil {
		return nil, errors.New(op, errors.KindDetachedAnchor, "", fmt.Errorf("anchor %s: %w", describe(anchor), errors.ErrDetachedAnchor))
	}
	if _, known := s.containers[parent]; known || view.IsPassThrough(parent) {
		return s.record(&Slot{Container: parent, Index: -1, Anchor: anchor}), nil
	}

	index := parent.IndexOf(anchor)
	params := anchor.LayoutParams()
	parent.RemoveView(anchor)

	frame := view.NewFrame(anchor.Context())
	frame.SetID(anchor.Context().GenerateID())
	if err := parent.AddView(frame, index, params); err != nil {
		return nil, errors.New(op, errors.KindUnknown, "", fmt.Errorf("splice %s: %w", describe(anchor), err))
	}
	if err := frame.AddView(anchor, -1, view.FillParams()); err != nil {
		return nil, errors.New(op, errors.KindUnknown, "", fmt.Errorf("splice %s: %w", describe(anchor), err))
	}

	if rw, ok := parent.(view.ReferenceRewriter); ok && anchor.ID() != view.NoID {
		rw.ReplaceReferences(anchor.ID(), frame.ID())
	}
	if rm, ok := parent.(view.Remeasurer); ok {
		rm.Remeasure()
	}

	return s.record(&Slot{Container: frame, Index: -1, Anchor: anchor}), nil
}

func (s *Substituter) record(slot *Slot) *Slot {
	s.anchors[slot.Anchor] = slot
	if _, ok := s.containers[slot.Container]; !ok {
		s.containers[slot.Container] = slot
	}
	return slot
}

func describe(v view.View) string {
	if name := v.Context().NameOf(v.ID()); name != "" {
		return fmt.Sprintf("%s #%s", view.KindOf(v), name)
	}
	return fmt.Sprintf("%s #%d", view.KindOf(v), v.ID())
}
