// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"errors"
	"sort"

	"golang.org/x/image/math/fixed"

	"paratext/font"
)

// ErrAttributeMissing names the condition where a codepoint position is not
// covered by any interval in an AttributeIndex (§7, "Attribute-missing").
// The layout pipeline does not return it: LayoutParagraph lays out an
// uncovered codepoint with the zero CodepointAttribute instead.
var ErrAttributeMissing = errors.New("text: no attribute covers the queried codepoint")

// Flag bits carried on a CodepointAttribute.
type Flag uint8

const (
	// FlagUnderline draws an underline rectangle under each glyph shaped
	// from a flagged codepoint.
	FlagUnderline Flag = 1 << iota
)

// Shadow is one shadow layer behind a glyph or rectangle, offsets in 1/64 px.
type Shadow struct {
	Color     [4]uint8
	DX, DY    fixed.Int26_6
	BlurRadius fixed.Int26_6
}

// CodepointAttribute is the set of typographic properties assigned to a
// codepoint (§3, "Codepoint attribute").
type CodepointAttribute struct {
	Color [4]uint8
	Font  *font.Handle
	// Language is a lower-case, dash-separated BCP-47-ish tag, e.g. "en-us".
	Language string
	Flags    Flag
	Shadows  []Shadow
	// Inlay, if non-nil, replaces this codepoint's glyph with a spliced
	// sub-layout (§3, "Layout", and §9 "cyclic/shared ownership").
	Inlay *Layout
	// BaselineShift is in 1/64 px; positive is up.
	BaselineShift fixed.Int26_6
	// LinkID is 0 for no link, else 1+index into LayoutProperties.URLs.
	LinkID int
}

// interval is a half-open codepoint range [Start, End) carrying an attribute.
// Later insertions win over earlier ones on overlap, per "attributes compose
// by replacement: the rightmost assignment on an interval wins."
type interval struct {
	start, end int
	attr       CodepointAttribute
}

// AttributeIndex maps codepoint positions to CodepointAttributes using a
// split-interval map keyed by half-open intervals (§3, "Attribute index").
//
// Modeled as a flat, sorted slice of non-overlapping intervals rather than a
// tree: layouts are built once from a small number of attribute assignments,
// so insertion cost is dominated by the split/merge work regardless of the
// backing structure, and a slice keeps Lookup and iteration simple (the
// teacher's font family resolution favors similarly small closed-form
// structures over generic trees, see font/family.go).
type AttributeIndex struct {
	intervals []interval
}

// NewAttributeIndex creates an index covering [0, length) with a default
// attribute; Set narrows or overrides sub-ranges of it.
func NewAttributeIndex(length int, def CodepointAttribute) *AttributeIndex {
	if length <= 0 {
		return &AttributeIndex{}
	}
	return &AttributeIndex{intervals: []interval{{0, length, def}}}
}

// Set assigns attr to [start, end), splitting and overriding any existing
// coverage of that range. The rightmost (most recent) Set call wins.
func (a *AttributeIndex) Set(start, end int, attr CodepointAttribute) {
	if end <= start {
		return
	}
	var next []interval
	inserted := false
	for _, iv := range a.intervals {
		if iv.end <= start || iv.start >= end {
			next = append(next, iv)
			continue
		}
		if iv.start < start {
			next = append(next, interval{iv.start, start, iv.attr})
		}
		if !inserted {
			next = append(next, interval{start, end, attr})
			inserted = true
		}
		if iv.end > end {
			next = append(next, interval{end, iv.end, iv.attr})
		}
	}
	if !inserted {
		next = append(next, interval{start, end, attr})
	}
	sort.Slice(next, func(i, j int) bool { return next[i].start < next[j].start })
	a.intervals = next
}

// Lookup returns the attribute covering codepoint position i.
func (a *AttributeIndex) Lookup(i int) (CodepointAttribute, bool) {
	// Linear scan: interval counts in practice are small (tens, not
	// thousands) since they come from explicit attribute assignments, not
	// per-codepoint entries.
	for _, iv := range a.intervals {
		if i >= iv.start && i < iv.end {
			return iv.attr, true
		}
	}
	return CodepointAttribute{}, false
}

// isBidiControl reports whether r is one of the embedding control codepoints
// exempt from the attribute-coverage invariant (§3).
func isBidiControl(r rune) bool {
	switch r {
	case '‪', '‫', '‬':
		return true
	}
	return false
}
