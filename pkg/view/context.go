package view

import "github.com/go-drift/pagestatus/pkg/graphics"

// Context carries what every view in one tree shares: the ID registry,
// the layout inflater and the text measurer.
type Context struct {
	nextID   ID
	names    map[string]ID
	ids      map[ID]string
	inflater *Inflater
	measurer *graphics.TextMeasurer
}

// NewContext creates a context with an empty inflater and the default
// text measurer.
func NewContext() *Context {
	ctx := &Context{
		names:    make(map[string]ID),
		ids:      make(map[ID]string),
		measurer: graphics.DefaultTextMeasurer(),
	}
	ctx.inflater = newInflater(ctx)
	return ctx
}

// GenerateID returns a fresh identity that no named or generated view uses.
func (c *Context) GenerateID() ID {
	c.nextID++
	return c.nextID
}

// IDFor returns the identity registered for name, allocating one on first use.
func (c *Context) IDFor(name string) ID {
	if id, ok := c.names[name]; ok {
		return id
	}
	id := c.GenerateID()
	c.names[name] = id
	c.ids[id] = name
	return id
}

// NameOf returns the name id was registered under, or "".
func (c *Context) NameOf(id ID) string {
	return c.ids[id]
}

// Inflater returns the context's layout inflater.
func (c *Context) Inflater() *Inflater {
	return c.inflater
}

// Measurer returns the text measurer used by text views.
func (c *Context) Measurer() *graphics.TextMeasurer {
	return c.measurer
}

// SetMeasurer replaces the text measurer. Nil restores the default.
func (c *Context) SetMeasurer(m *graphics.TextMeasurer) {
	if m == nil {
		m = graphics.DefaultTextMeasurer()
	}
	c.measurer = m
}
