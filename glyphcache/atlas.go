// SPDX-License-Identifier: Unlicense OR MIT

// Package glyphcache provides the LRU glyph paint cache and skyline-packed
// texture atlas a back end uses to rasterize drawing commands (spec.md
// §3, "Glyph paint cache" / "Texture atlas", and §4.5). Grounded on
// original_source/include/stll/internal/rectanglePacker.h and
// original_source/src/output/rectanglepacker.cpp, which implement the same
// skyline bin-packing scheme this package ports to Go.
package glyphcache

import "errors"

// ErrAtlasFull is returned by Atlas.Allocate when a placement would exceed
// the atlas's height; the caller clears the atlas (bumping its version)
// and retries (spec.md §7, "Atlas-full").
var ErrAtlasFull = errors.New("glyphcache: allocation exceeds atlas bounds")

// AtlasRect is the placement of one entry inside the atlas, plus the
// glyph-bitmap offsets (Left, Top) carried through unchanged so a back end
// can reconstruct the draw-time offset from the origin.
type AtlasRect struct {
	X, Y, Width, Height int
	Left, Top           int
}

type skylineSegment struct {
	x, y, width int
}

// Atlas packs rectangular entries into a fixed W×H grid via skyline
// bin-packing: the free surface is an ordered list of (x, y, width)
// segments describing the current top contour of used space.
type Atlas struct {
	width, height int
	skyline       []skylineSegment
	version       uint64
}

// NewAtlas returns an empty atlas of the given pixel dimensions.
func NewAtlas(width, height int) *Atlas {
	return &Atlas{
		width:   width,
		height:  height,
		skyline: []skylineSegment{{x: 0, y: 0, width: width}},
		version: 1,
	}
}

// Version reports the atlas's monotonic content version; it increments on
// every allocation that places a non-empty rectangle and on Clear. Back ends compare versions to
// decide when to reupload texture data (§3, "Texture atlas entry").
func (a *Atlas) Version() uint64 { return a.version }

// Clear resets the atlas to empty and bumps its version.
func (a *Atlas) Clear() {
	a.skyline = []skylineSegment{{x: 0, y: 0, width: a.width}}
	a.version++
}

// Allocate places a width×height rectangle, returning its position. left
// and top are the glyph-bitmap origin offsets, stored in the result
// unchanged. Zero-area rectangles (the empty-outline case) allocate no
// atlas space and always succeed.
func (a *Atlas) Allocate(width, height, left, top int) (AtlasRect, error) {
	if width <= 0 || height <= 0 {
		return AtlasRect{Left: left, Top: top}, nil
	}
	bestIdx, bestY := -1, 0
	for i := range a.skyline {
		y, ok := a.fits(i, width)
		if !ok {
			continue
		}
		if bestIdx == -1 || y < bestY {
			bestIdx, bestY = i, y
		}
	}
	if bestIdx == -1 || bestY+height > a.height {
		return AtlasRect{}, ErrAtlasFull
	}
	x := a.skyline[bestIdx].x
	a.place(x, bestY, width, height)
	a.version++
	return AtlasRect{X: x, Y: bestY, Width: width, Height: height, Left: left, Top: top}, nil
}

// fits reports the height a width-wide rectangle would sit at if placed
// starting at skyline segment i — the max y across every segment it would
// cover — and whether it fits within the atlas width at all.
func (a *Atlas) fits(i, width int) (int, bool) {
	x := a.skyline[i].x
	if x+width > a.width {
		return 0, false
	}
	maxY, remaining := 0, width
	for j := i; j < len(a.skyline) && remaining > 0; j++ {
		seg := a.skyline[j]
		if seg.y > maxY {
			maxY = seg.y
		}
		remaining -= seg.width
	}
	if remaining > 0 {
		return 0, false
	}
	return maxY, true
}

// place rebuilds the skyline in a shadow slice with [x, x+width) raised to
// y+height, then swaps it in, per §4.5 ("the skyline vector is rebuilt in
// a shadow buffer and swapped in").
func (a *Atlas) place(x, y, width, height int) {
	endX, topY := x+width, y+height
	var next []skylineSegment
	inserted := false
	for _, seg := range a.skyline {
		segEnd := seg.x + seg.width
		if segEnd <= x || seg.x >= endX {
			next = append(next, seg)
			continue
		}
		if seg.x < x {
			next = append(next, skylineSegment{x: seg.x, y: seg.y, width: x - seg.x})
		}
		if !inserted {
			next = append(next, skylineSegment{x: x, y: topY, width: width})
			inserted = true
		}
		if segEnd > endX {
			next = append(next, skylineSegment{x: endX, y: seg.y, width: segEnd - endX})
		}
	}
	if !inserted {
		next = append(next, skylineSegment{x: x, y: topY, width: width})
	}
	a.skyline = mergeSkyline(next)
}

func mergeSkyline(segs []skylineSegment) []skylineSegment {
	if len(segs) == 0 {
		return segs
	}
	merged := []skylineSegment{segs[0]}
	for _, s := range segs[1:] {
		last := &merged[len(merged)-1]
		if last.y == s.y && last.x+last.width == s.x {
			last.width += s.width
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
