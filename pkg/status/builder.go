package status

import (
	"fmt"
	"slices"

	"github.com/go-drift/pagestatus/pkg/errors"
)

// Builder collects status registrations before a Transformer is built.
// Registering a name twice replaces the earlier factory but keeps its
// position in the registration order.
type Builder struct {
	names     []string
	factories map[string]Factory
	err       error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{factories: make(map[string]Factory)}
}

// Add registers factory under name. Problems are reported when the
// Transformer is built.
func (b *Builder) Add(name string, factory Factory) *Builder {
	switch {
	case b.err != nil:
		return b
	case name == "":
		b.err = errors.Errorf("status.Builder.Add", errors.KindMisconfigured, "", "empty status name")
		return b
	case factory == nil:
		b.err = errors.Errorf("status.Builder.Add", errors.KindMisconfigured, name, "nil factory")
		return b
	}
	if _, ok := b.factories[name]; !ok {
		b.names = append(b.names, name)
	}
	b.factories[name] = factory
	return b
}

// AddStatus registers factory under name.String(), so enum-like values
// can be used as status names.
func (b *Builder) AddStatus(name fmt.Stringer, factory Factory) *Builder {
	return b.Add(name.String(), factory)
}

// Names returns the registered names in registration order.
func (b *Builder) Names() []string {
	return slices.Clone(b.names)
}

// Err returns the first registration problem, if any.
func (b *Builder) Err() error {
	return b.err
}
