package view

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/pagestatus/pkg/errors"
)

// Document is a set of named layouts.
//
//	version: v1.0.0
//	layouts:
//	  loading:
//	    type: frame
//	    children:
//	      - type: text
//	        text: Loading...
type Document struct {
	Version string           `yaml:"version"`
	Layouts map[string]*Node `yaml:"layouts"`
}

// Node describes one view of a layout.
type Node struct {
	Type        string            `yaml:"type"`
	ID          string            `yaml:"id,omitempty"`
	Width       *Dimension        `yaml:"width,omitempty"`
	Height      *Dimension        `yaml:"height,omitempty"`
	Text        string            `yaml:"text,omitempty"`
	Orientation string            `yaml:"orientation,omitempty"`
	Visibility  string            `yaml:"visibility,omitempty"`
	Constraints map[string]string `yaml:"constraints,omitempty"`
	Circle      *CircleNode       `yaml:"circle,omitempty"`
	Behavior    string            `yaml:"behavior,omitempty"`
	Anchor      string            `yaml:"anchor,omitempty"`
	Layout      string            `yaml:"layout,omitempty"`
	InflatedID  string            `yaml:"inflatedId,omitempty"`
	Children    []*Node           `yaml:"children,omitempty"`
}

// CircleNode is the circular constraint of a node.
type CircleNode struct {
	Ref    string  `yaml:"ref"`
	Radius float64 `yaml:"radius"`
	Angle  float64 `yaml:"angle"`
}

// UnmarshalYAML accepts "match", "wrap" or a number of pixels.
func (d *Dimension) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "match", "match_parent":
		*d = MatchParent
		return nil
	case "wrap", "wrap_content":
		*d = WrapContent
		return nil
	}
	f, err := strconv.ParseFloat(value.Value, 64)
	if err != nil || f < 0 {
		return fmt.Errorf("line %d: invalid dimension %q", value.Line, value.Value)
	}
	*d = Dimension(f)
	return nil
}

// MarshalYAML writes the form UnmarshalYAML reads.
func (d Dimension) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Inflater builds view trees from YAML layouts. Names used for ids and
// constraint references are resolved through the owning Context, so every
// inflation of a layout yields the same IDs.
type Inflater struct {
	ctx       *Context
	layouts   map[string]*Node
	behaviors map[string]func() Behavior
}

func newInflater(ctx *Context) *Inflater {
	return &Inflater{
		ctx:       ctx,
		layouts:   make(map[string]*Node),
		behaviors: make(map[string]func() Behavior),
	}
}

// Load parses a YAML document and registers its layouts. The document's
// version must be a valid v1 semantic version, and its layout names must
// not already be registered.
func (in *Inflater) Load(data []byte) error {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.New("view.Inflater.Load", errors.KindInflate, "", err)
	}
	return in.LoadDocument(&doc)
}

// LoadDocument registers the layouts of an already parsed document.
func (in *Inflater) LoadDocument(doc *Document) error {
	const op = "view.Inflater.Load"
	if !semver.IsValid(doc.Version) {
		return errors.Errorf(op, errors.KindInflate, "", "invalid layout version %q", doc.Version)
	}
	if major := semver.Major(doc.Version); major != "v1" {
		return errors.Errorf(op, errors.KindInflate, "", "unsupported layout version %s", major)
	}
	for name := range doc.Layouts {
		if _, ok := in.layouts[name]; ok {
			return errors.Errorf(op, errors.KindInflate, "", "layout %q already loaded", name)
		}
	}
	for name, node := range doc.Layouts {
		if node == nil {
			return errors.Errorf(op, errors.KindInflate, "", "layout %q is empty", name)
		}
		in.layouts[name] = node
	}
	return nil
}

// RegisterBehavior makes a coordinator behavior available to layouts by name.
func (in *Inflater) RegisterBehavior(name string, factory func() Behavior) {
	in.behaviors[name] = factory
}

// Has reports whether a layout is registered under name.
func (in *Inflater) Has(name string) bool {
	_, ok := in.layouts[name]
	return ok
}

// Names returns the registered layout names, sorted.
func (in *Inflater) Names() []string {
	names := make([]string, 0, len(in.layouts))
	for name := range in.layouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Inflate builds a fresh view tree for the named layout. The root's params
// are built for parent, which may be nil, but the root is not attached.
func (in *Inflater) Inflate(name string, parent Group) (View, error) {
	node, ok := in.layouts[name]
	if !ok {
		return nil, errors.Errorf("view.Inflater.Inflate", errors.KindInflate, "", "unknown layout %q", name)
	}
	v, err := in.build(node, parent)
	if err != nil {
		return nil, errors.New("view.Inflater.Inflate", errors.KindInflate, "", fmt.Errorf("layout %q: %w", name, err))
	}
	return v, nil
}

func (in *Inflater) build(node *Node, parent Group) (View, error) {
	var v View
	switch node.Type {
	case "frame", "":
		v = NewFrame(in.ctx)
	case "linear":
		o := Vertical
		switch node.Orientation {
		case "", "vertical":
		case "horizontal":
			o = Horizontal
		default:
			return nil, fmt.Errorf("unknown orientation %q", node.Orientation)
		}
		v = NewLinear(in.ctx, o)
	case "constraint":
		v = NewConstraintLayout(in.ctx)
	case "coordinator":
		v = NewCoordinatorLayout(in.ctx)
	case "text":
		v = NewText(in.ctx, node.Text)
	case "box":
		b := NewBox(in.ctx, dimensionPx(node.Width), dimensionPx(node.Height))
		b.SetLabel(node.Text)
		v = b
	case "stub":
		if node.Layout == "" {
			return nil, fmt.Errorf("stub without layout")
		}
		s := NewStub(in.ctx, node.Layout)
		if node.InflatedID != "" {
			s.InflatedID = in.ctx.IDFor(node.InflatedID)
		}
		v = s
	default:
		return nil, fmt.Errorf("unknown view type %q", node.Type)
	}

	if node.ID != "" {
		v.SetID(in.ctx.IDFor(node.ID))
	}
	if node.Visibility != "" {
		vis, err := parseVisibility(node.Visibility)
		if err != nil {
			return nil, err
		}
		v.SetVisibility(vis)
	}
	params, err := in.params(node, parent)
	if err != nil {
		return nil, err
	}
	v.SetLayoutParams(params)

	if len(node.Children) > 0 {
		group, ok := v.(Group)
		if !ok {
			return nil, fmt.Errorf("%s cannot have children", node.Type)
		}
		for _, childNode := range node.Children {
			child, err := in.build(childNode, group)
			if err != nil {
				return nil, err
			}
			if err := group.AddView(child, -1, nil); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// params builds the params the node asks for, in the type parent uses.
func (in *Inflater) params(node *Node, parent Group) (LayoutParams, error) {
	// A box's width and height are its intrinsic size.
	base := Params{Width: WrapContent, Height: WrapContent}
	if node.Type != "box" {
		if node.Width != nil {
			base.Width = *node.Width
		}
		if node.Height != nil {
			base.Height = *node.Height
		}
	}

	_, inConstraint := parent.(*ConstraintLayout)
	if inConstraint || len(node.Constraints) > 0 || node.Circle != nil {
		cp := &ConstraintParams{Params: base}
		for relation, target := range node.Constraints {
			ref, ok := cp.relation(relation)
			if !ok {
				return nil, fmt.Errorf("unknown constraint %q", relation)
			}
			*ref = in.reference(target)
		}
		if node.Circle != nil {
			cp.CircleConstraint = in.reference(node.Circle.Ref)
			cp.CircleRadius = node.Circle.Radius
			cp.CircleAngle = node.Circle.Angle
		}
		return cp, nil
	}

	_, inCoordinator := parent.(*CoordinatorLayout)
	if inCoordinator || node.Behavior != "" || node.Anchor != "" {
		cp := &CoordinatorParams{Params: base}
		if node.Behavior != "" {
			factory, ok := in.behaviors[node.Behavior]
			if !ok {
				return nil, fmt.Errorf("unknown behavior %q", node.Behavior)
			}
			cp.Behavior = factory()
		}
		if node.Anchor != "" {
			cp.AnchorID = in.reference(node.Anchor)
		}
		return cp, nil
	}
	return &base, nil
}

func (in *Inflater) reference(name string) ID {
	if name == "parent" {
		return ParentID
	}
	return in.ctx.IDFor(name)
}

// relation maps a YAML relation name to its field.
func (p *ConstraintParams) relation(name string) (*ID, bool) {
	switch name {
	case "leftToLeft":
		return &p.LeftToLeft, true
	case "leftToRight":
		return &p.LeftToRight, true
	case "rightToRight":
		return &p.RightToRight, true
	case "rightToLeft":
		return &p.RightToLeft, true
	case "startToStart":
		return &p.StartToStart, true
	case "startToEnd":
		return &p.StartToEnd, true
	case "endToEnd":
		return &p.EndToEnd, true
	case "endToStart":
		return &p.EndToStart, true
	case "topToTop":
		return &p.TopToTop, true
	case "topToBottom":
		return &p.TopToBottom, true
	case "bottomToBottom":
		return &p.BottomToBottom, true
	case "bottomToTop":
		return &p.BottomToTop, true
	case "baselineToBaseline":
		return &p.BaselineToBaseline, true
	}
	return nil, false
}

func parseVisibility(s string) (Visibility, error) {
	switch s {
	case "visible":
		return Visible, nil
	case "invisible":
		return Invisible, nil
	case "gone":
		return Gone, nil
	}
	return Visible, fmt.Errorf("unknown visibility %q", s)
}

// dimensionPx returns a box's intrinsic extent; sentinels count as zero.
func dimensionPx(d *Dimension) float64 {
	if d == nil || *d < 0 {
		return 0
	}
	return float64(*d)
}
