package view

import (
	"fmt"
	"strconv"
)

// Dimension is a width or height in logical pixels, or one of the
// MatchParent / WrapContent sentinels.
type Dimension float64

const (
	// MatchParent makes a view as large as the space its parent offers.
	MatchParent Dimension = -1
	// WrapContent makes a view as large as its content.
	WrapContent Dimension = -2
)

// String returns "match", "wrap" or the pixel value.
func (d Dimension) String() string {
	switch d {
	case MatchParent:
		return "match"
	case WrapContent:
		return "wrap"
	default:
		return strconv.FormatFloat(float64(d), 'f', -1, 64)
	}
}

// inner returns the space a view may use for its content on one axis and
// whether that space is exact.
func (d Dimension) inner(available float64, exact bool) (float64, bool) {
	switch {
	case d == MatchParent:
		return available, exact
	case d == WrapContent || d < 0:
		return available, false
	default:
		return float64(d), true
	}
}

// resolve returns the final size on one axis.
func (d Dimension) resolve(available float64, exact bool, intrinsic float64) float64 {
	switch {
	case d == MatchParent && exact:
		return available
	case d == MatchParent || d == WrapContent:
		return min(intrinsic, available)
	case d < 0:
		return 0
	default:
		return float64(d)
	}
}

// LayoutParams describe how a parent sizes and places a child.
// Containers with extra per-child settings define their own params types
// embedding Params.
type LayoutParams interface {
	Base() *Params
}

// Params are the layout params every container understands.
type Params struct {
	Width  Dimension
	Height Dimension
}

// Base returns p.
func (p *Params) Base() *Params {
	return p
}

// String returns a compact representation of the params.
func (p *Params) String() string {
	return fmt.Sprintf("%sx%s", p.Width, p.Height)
}

// NewParams returns params with the given dimensions.
func NewParams(width, height Dimension) *Params {
	return &Params{Width: width, Height: height}
}

// FillParams returns params that fill the parent in both directions.
func FillParams() *Params {
	return NewParams(MatchParent, MatchParent)
}

// WrapParams returns params that wrap the content in both directions.
func WrapParams() *Params {
	return NewParams(WrapContent, WrapContent)
}

func paramsOf(v View) *Params {
	if p := v.LayoutParams(); p != nil {
		if base := p.Base(); base != nil {
			return base
		}
	}
	return WrapParams()
}
