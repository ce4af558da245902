package status

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-drift/pagestatus/pkg/errors"
	"github.com/go-drift/pagestatus/pkg/platform"
	"github.com/go-drift/pagestatus/pkg/view"
)

// Option configures a Transformer.
type Option func(*options)

type options struct {
	thread      platform.ThreadChecker
	logger      *slog.Logger
	substituter *Substituter
}

// WithThread binds the transformer to the given thread instead of the
// goroutine constructing it. A *platform.Looper can be passed directly.
func WithThread(thread platform.ThreadChecker) Option {
	return func(o *options) {
		if thread != nil {
			o.thread = thread
		}
	}
}

// WithLogger sets the logger applied transitions are logged to at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSubstituter sets the substituter used to install the slot.
func WithSubstituter(s *Substituter) Option {
	return func(o *options) {
		if s != nil {
			o.substituter = s
		}
	}
}

// Transformer switches between named statuses, showing at most one at a
// time. It must only be used from the thread it is bound to; it does no
// locking of its own.
type Transformer struct {
	thread   platform.ThreadChecker
	logger   *slog.Logger
	names    []string
	statuses map[string]DisplayStatus
	slot     *Slot

	visible    bool
	current    string
	hasCurrent bool
	params     Params
}

// New builds a transformer for statuses that manage their own views, such
// as SimpleStatus. Replacement statuses need an anchor; use NewReplacement.
func New(b *Builder, opts ...Option) (*Transformer, error) {
	const op = "status.New"
	t, _, err := newTransformer(op, b, opts)
	if err != nil {
		return nil, err
	}
	for _, name := range b.names {
		st, err := create(op, name, b.factories[name])
		if err != nil {
			return nil, err
		}
		if _, ok := st.(*ReplacementStatus); ok {
			return nil, errors.Errorf(op, errors.KindMisconfigured, name, "replacement status needs an anchor, use NewReplacement")
		}
		t.statuses[name] = st
	}
	return t, nil
}

// NewReplacement builds a transformer whose statuses replace anchor. Every
// status must be a *ReplacementStatus, possibly decorated. The slot is
// installed when the first status is registered, so an empty builder
// leaves the tree untouched.
func NewReplacement(anchor view.View, b *Builder, opts ...Option) (*Transformer, error) {
	const op = "status.NewReplacement"
	t, o, err := newTransformer(op, b, opts)
	if err != nil {
		return nil, err
	}
	for _, name := range b.names {
		st, err := create(op, name, b.factories[name])
		if err != nil {
			return nil, err
		}
		rs, ok := st.(*ReplacementStatus)
		if !ok {
			return nil, errors.Errorf(op, errors.KindMisconfigured, name, "%T is not a replacement status, use New", st)
		}
		if t.slot == nil {
			slot, err := o.substituter.Substitute(anchor)
			if err != nil {
				return nil, err
			}
			t.slot = slot
		}
		rs.Attach(t.slot)
		t.statuses[name] = rs
	}
	return t, nil
}

func newTransformer(op string, b *Builder, opts []Option) (*Transformer, *options, error) {
	o := &options{
		thread:      platform.CurrentThread(),
		logger:      slog.Default(),
		substituter: DefaultSubstituter,
	}
	for _, opt := range opts {
		opt(o)
	}
	if !o.thread.IsCurrent() {
		return nil, nil, errors.New(op, errors.KindWrongThread, "", nil)
	}
	if b == nil {
		return nil, nil, errors.Errorf(op, errors.KindMisconfigured, "", "nil builder")
	}
	if err := b.Err(); err != nil {
		return nil, nil, err
	}
	return &Transformer{
		thread:   o.thread,
		logger:   o.logger,
		names:    slices.Clone(b.names),
		statuses: make(map[string]DisplayStatus, len(b.names)),
		visible:  true,
	}, o, nil
}

func create(op, name string, factory Factory) (DisplayStatus, error) {
	st := factory()
	if st == nil {
		return nil, errors.Errorf(op, errors.KindMisconfigured, name, "factory returned nil")
	}
	return st, nil
}

// Transform makes name the current status. If the transformer is visible
// every other status is hidden and name's status is shown with params;
// otherwise the transition is only recorded. Nil params become empty.
//
// It fails without changing anything when called off the owning thread or
// for an unregistered name.
func (t *Transformer) Transform(name string, params Params) error {
	const op = "status.Transform"
	if !t.thread.IsCurrent() {
		return errors.New(op, errors.KindWrongThread, name, nil)
	}
	target, ok := t.statuses[name]
	if !ok {
		return errors.New(op, errors.KindUnknownStatus, name, fmt.Errorf("registered statuses are %v: %w", t.names, errors.ErrUnknownStatus))
	}
	if params == nil {
		params = Params{}
	}
	t.current, t.hasCurrent, t.params = name, true, params
	if !t.visible {
		t.logger.Debug("status recorded", "status", name, "visible", false)
		return nil
	}
	return t.apply(op, name, target, params)
}

// TransformStatus is Transform for enum-like status names.
func (t *Transformer) TransformStatus(name fmt.Stringer, params Params) error {
	return t.Transform(name.String(), params)
}

func (t *Transformer) apply(op, name string, target DisplayStatus, params Params) error {
	for _, other := range t.names {
		if other != name {
			t.statuses[other].HideView()
		}
	}
	if err := target.ShowView(params); err != nil {
		return errors.New(op, errors.KindOf(err), name, err)
	}
	t.logger.Debug("status shown", "status", name, "params", len(params))
	return nil
}

// Visible reports whether statuses are shown. It is true initially.
func (t *Transformer) Visible() bool {
	return t.visible
}

// SetVisible mutes or unmutes the transformer. Muting hides every status
// but keeps the current one recorded; unmuting shows it again. Setting the
// current value does nothing.
func (t *Transformer) SetVisible(visible bool) error {
	const op = "status.SetVisible"
	if !t.thread.IsCurrent() {
		return errors.New(op, errors.KindWrongThread, "", nil)
	}
	if t.visible == visible {
		return nil
	}
	t.visible = visible
	if !visible {
		for _, name := range t.names {
			t.statuses[name].HideView()
		}
		t.logger.Debug("statuses hidden")
		return nil
	}
	if !t.hasCurrent {
		return nil
	}
	return t.apply(op, t.current, t.statuses[t.current], t.params)
}

// CurrentStatusName returns the name of the last recorded transition.
func (t *Transformer) CurrentStatusName() (string, bool) {
	return t.current, t.hasCurrent
}

// CurrentParams returns the params of the last recorded transition, or nil.
func (t *Transformer) CurrentParams() Params {
	return t.params
}

// StatusNames returns the registered names in registration order.
func (t *Transformer) StatusNames() []string {
	return slices.Clone(t.names)
}

// Status returns the status registered under name.
func (t *Transformer) Status(name string) (DisplayStatus, bool) {
	st, ok := t.statuses[name]
	return st, ok
}

// Slot returns the slot replacement statuses are shown in, or nil for a
// transformer built with New or from an empty builder.
func (t *Transformer) Slot() *Slot {
	return t.slot
}
