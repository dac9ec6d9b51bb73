// SPDX-License-Identifier: Unlicense OR MIT

package glyphcache

import (
	"container/list"

	"golang.org/x/image/math/fixed"

	"paratext/font"
)

// BlurThreshold is the blur radius above which sub-pixel arrangement is
// forced to SubpixelNone: past this point the blur hides sub-pixel detail
// and tripling the raster width is wasted work (§4.5).
const BlurThreshold fixed.Int26_6 = 2 * 64

// NormalizeSub applies the blur/sub-pixel interaction rule from §4.5.
func NormalizeSub(sub font.SubpixelArrangement, blur fixed.Int26_6) font.SubpixelArrangement {
	if blur > BlurThreshold {
		return font.SubpixelNone
	}
	return sub
}

// Key identifies one cache entry. Glyph entries set Font and Glyph;
// rectangle entries (used for blurred filled rects, §3) leave both zero
// and set RectWidth/RectHeight instead, sharing the same cache and LRU
// discipline under a distinct key shape.
type Key struct {
	Font      *font.Handle
	Glyph     font.GlyphIndex
	Sub       font.SubpixelArrangement
	Blur      fixed.Int26_6
	RectWidth  int
	RectHeight int
}

func (k Key) isRect() bool { return k.Font == nil && (k.RectWidth != 0 || k.RectHeight != 0) }

// Entry is a cached, atlas-placed glyph or rectangle paint.
type Entry struct {
	Bitmap font.GlyphBitmap
	Rect   AtlasRect
	elem   *list.Element
}

// Cache is the LRU glyph paint cache backed by a single Atlas (§3, "Glyph
// paint cache"; §4.5). Grounded on the doubly-linked-list LRU the teacher
// keeps for its own glyph cache (since deleted from this tree as its API
// no longer fits, per DESIGN.md); container/list reproduces the same
// most-recently-used-at-front discipline without hand-rolled pointer
// bookkeeping the teacher's own version wouldn't need either.
type Cache struct {
	limit   int
	entries map[Key]*Entry
	lru     *list.List
	atlas   *Atlas
}

// New returns a cache that evicts down to limit entries and packs bitmaps
// into an atlasWidth x atlasHeight atlas.
func New(limit, atlasWidth, atlasHeight int) *Cache {
	return &Cache{
		limit:   limit,
		entries: make(map[Key]*Entry),
		lru:     list.New(),
		atlas:   NewAtlas(atlasWidth, atlasHeight),
	}
}

// Atlas returns the cache's backing atlas.
func (c *Cache) Atlas() *Atlas { return c.atlas }

// Get looks up k, marking it most-recently-used on a hit.
func (c *Cache) Get(k Key) (*Entry, bool) {
	e, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(e.elem)
	return e, true
}

// Put inserts bmp under k, allocating atlas space for it, and trims the
// cache to its limit. If k is already present, the existing entry is
// returned unchanged (callers should Get first; Put is safe to call
// unconditionally since it no-ops on a pre-existing key).
func (c *Cache) Put(k Key, bmp font.GlyphBitmap) (*Entry, error) {
	if e, ok := c.entries[k]; ok {
		c.lru.MoveToFront(e.elem)
		return e, nil
	}
	rect, err := c.atlas.Allocate(bmp.Width, bmp.Height, bmp.Left, bmp.Top)
	if err != nil {
		return nil, err
	}
	e := &Entry{Bitmap: bmp, Rect: rect}
	e.elem = c.lru.PushFront(k)
	c.entries[k] = e
	c.trim()
	return e, nil
}

// trim evicts down to the cache's limit. Rectangle entries are considered
// cheap to regenerate and are evicted before any glyph entry, even when a
// glyph entry is less recently used (§4.5).
func (c *Cache) trim() {
	for len(c.entries) > c.limit {
		victim := c.lru.Back()
		for e := c.lru.Back(); e != nil; e = e.Prev() {
			if e.Value.(Key).isRect() {
				victim = e
				break
			}
		}
		if victim == nil {
			return
		}
		key := victim.Value.(Key)
		c.lru.Remove(victim)
		delete(c.entries, key)
	}
}

// Clear drops every entry and resets the atlas, for the atlas-full
// recovery path (§4.5, §7 "Atlas-full").
func (c *Cache) Clear() {
	c.entries = make(map[Key]*Entry)
	c.lru.Init()
	c.atlas.Clear()
}

// Len reports the number of cached entries.
func (c *Cache) Len() int { return len(c.entries) }

// Pad pads bmp by blur's pixel spread on every side, plus one extra
// column on the right so sub-pixel sampling during blit never reads past
// the buffer, and applies the three-pass box blur when blur > 0 (§4.5).
func Pad(bmp font.GlyphBitmap, blur fixed.Int26_6) font.GlyphBitmap {
	spread := int(blur) / 64
	if spread < 0 {
		spread = 0
	}
	padW := bmp.Width + 2*spread + 1
	padH := bmp.Height + 2*spread
	if padW < 1 {
		padW = 1
	}
	if padH < 1 {
		padH = 1
	}
	out := make([]byte, padW*padH)
	for y := 0; y < bmp.Height; y++ {
		srcBase := y * bmp.Pitch
		dstBase := (y+spread)*padW + spread
		copy(out[dstBase:dstBase+bmp.Width], bmp.Alpha[srcBase:srcBase+bmp.Width])
	}
	if blur > 0 {
		BlurAlpha(out, padW, padH, padW, float64(blur)/64)
	}
	return font.GlyphBitmap{
		Alpha:  out,
		Width:  padW,
		Height: padH,
		Pitch:  padW,
		Left:   bmp.Left - spread,
		Top:    bmp.Top - spread,
	}
}
