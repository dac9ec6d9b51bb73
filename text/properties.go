// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"golang.org/x/image/math/fixed"

	"paratext/font"
)

// Alignment selects how a line's content is positioned between the shape's
// inner edges (§3, "Layout properties").
type Alignment uint8

const (
	Left Alignment = iota
	Right
	Center
	JustifyLeft
	JustifyRight
)

// Direction is the paragraph's base direction.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

// LayoutProperties configures a LayoutParagraph call (§3, "Layout properties").
type LayoutProperties struct {
	Align Alignment
	// Indent, in 1/64 px, applies to the first logical line and any line
	// immediately following a MUST break, never in Center mode.
	Indent fixed.Int26_6
	Base   Direction
	// UnderlineFont overrides per-glyph underline metrics when non-nil.
	UnderlineFont *font.Handle
	// URLs is the ordered table that CodepointAttribute.LinkID indexes into
	// (1-based; 0 means no link).
	URLs []string
	// OptimizeLineBreaks selects the Knuth-Plass-style total-badness fitter
	// over the greedy one (§4.4).
	OptimizeLineBreaks bool
	// Rounding is the rounding granularity for glyph x/y positions; must
	// divide 64.
	Rounding fixed.Int26_6
}

// round rounds v to the nearest multiple of g (a divisor of 64). g == 0
// means no rounding.
func round(v, g fixed.Int26_6) fixed.Int26_6 {
	if g <= 0 {
		return v
	}
	half := g / 2
	if v >= 0 {
		return ((v + half) / g) * g
	}
	return -((-v + half) / g) * g
}
