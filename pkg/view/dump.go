package view

import (
	"fmt"
	"strings"
)

// Dump renders the subtree rooted at v, one view per line, indented by
// depth. Each line shows the view's kind, its name or ID, its bounds and
// any non-default visibility or text. The output only depends on the tree.
//
//	root 0,0 40x10
//	  frame #7 0,0 40x10
//	    text #content 0,0 35x13 "Loaded"
func Dump(v View) string {
	var sb strings.Builder
	dump(&sb, v, 0)
	return sb.String()
}

func dump(sb *strings.Builder, v View, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(KindOf(v))
	if id := v.ID(); id != NoID {
		if name := v.Context().NameOf(id); name != "" {
			fmt.Fprintf(sb, " #%s", name)
		} else {
			fmt.Fprintf(sb, " #%d", id)
		}
	}
	b := v.Bounds()
	fmt.Fprintf(sb, " %g,%g %gx%g", b.Left, b.Top, b.Width(), b.Height())
	if vis := v.Visibility(); vis != Visible {
		fmt.Fprintf(sb, " [%s]", vis)
	}
	switch t := v.(type) {
	case *Text:
		fmt.Fprintf(sb, " %q", t.Text())
	case *Box:
		if t.Label() != "" {
			fmt.Fprintf(sb, " %q", t.Label())
		}
	case *Stub:
		fmt.Fprintf(sb, " -> %s", t.LayoutName())
	}
	sb.WriteByte('\n')
	if g, ok := v.(Group); ok {
		for _, child := range g.Children() {
			dump(sb, child, depth+1)
		}
	}
}

// KindOf returns the type name a view reports for dumps.
func KindOf(v View) string {
	if k, ok := v.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return fmt.Sprintf("%T", v)
}
