// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"golang.org/x/image/math/fixed"

	"paratext/font"
)

// CommandKind tags a DrawCommand's variant (§3, "Drawing command"; §9,
// "Polymorphism" — modeled as a tagged union, not a class hierarchy).
type CommandKind uint8

const (
	CmdGlyph CommandKind = iota
	CmdRect
	CmdImage
)

// DrawCommand is one absolutely positioned drawing instruction, in 1/64 px.
type DrawCommand struct {
	Kind CommandKind

	X, Y          fixed.Int26_6
	Width, Height fixed.Int26_6
	Color         [4]uint8
	Blur          fixed.Int26_6

	Font  *font.Handle
	Glyph font.GlyphIndex

	URL string
}

// LinkInfo groups every rectangle opened by codepoints sharing one link id,
// in first-appearance order (§4.4, "Links are merged").
type LinkInfo struct {
	URL   string
	Rects []Rect
}

// Rect is an axis-aligned box in 1/64 px.
type Rect struct {
	X, Y, Width, Height fixed.Int26_6
}

func (r Rect) translated(dx, dy fixed.Int26_6) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Layout is the layouter's output: an ordered sequence of drawing commands
// plus bounding box, first baseline and link table (§3, "Layout").
type Layout struct {
	Commands []DrawCommand
	Links    []LinkInfo

	Left, Right, Height fixed.Int26_6
	FirstBaseline       fixed.Int26_6
	hasBaseline         bool
	hasBounds           bool
}

// addLink appends rect to the link entry for url, creating one if this is
// url's first appearance in the layout.
func (l *Layout) addLink(url string, rect Rect) {
	if url == "" {
		return
	}
	for i := range l.Links {
		if l.Links[i].URL == url {
			l.Links[i].Rects = append(l.Links[i].Rects, rect)
			return
		}
	}
	l.Links = append(l.Links, LinkInfo{URL: url, Rects: []Rect{rect}})
}

func (l *Layout) setFirstBaseline(y fixed.Int26_6) {
	if !l.hasBaseline {
		l.FirstBaseline = y
		l.hasBaseline = true
	}
}

func (l *Layout) unionBounds(left, right, height fixed.Int26_6) {
	if !l.hasBounds {
		l.Left, l.Right, l.Height = left, right, height
		l.hasBounds = true
		return
	}
	if left < l.Left {
		l.Left = left
	}
	if right > l.Right {
		l.Right = right
	}
	if height > l.Height {
		l.Height = height
	}
}

// Shift translates every command and every link rectangle by (dx, dy). It
// does not recompute the bounding box (§4.6: "does not update the bounding
// box numerics (caller's contract)").
func (l *Layout) Shift(dx, dy fixed.Int26_6) {
	for i := range l.Commands {
		l.Commands[i].X += dx
		l.Commands[i].Y += dy
	}
	for i := range l.Links {
		for j := range l.Links[i].Rects {
			l.Links[i].Rects[j] = l.Links[i].Rects[j].translated(dx, dy)
		}
	}
}

// Append copies other's commands and link rectangles translated by
// (dx, dy), unions the bounding box, and adopts other's FirstBaseline iff
// the receiver is currently empty (§4.6).
func (l *Layout) Append(other *Layout, dx, dy fixed.Int26_6) {
	if other == nil {
		return
	}
	empty := !l.hasBaseline && !l.hasBounds
	for _, c := range other.Commands {
		c.X += dx
		c.Y += dy
		l.Commands = append(l.Commands, c)
	}
	for _, link := range other.Links {
		for _, r := range link.Rects {
			l.addLink(link.URL, r.translated(dx, dy))
		}
	}
	l.unionBounds(other.Left+dx, other.Right+dx, other.Height+dy)
	if empty && other.hasBaseline {
		l.setFirstBaseline(other.FirstBaseline + dy)
	}
}
