// SPDX-License-Identifier: Unlicense OR MIT

package glyphcache

import (
	"testing"

	"paratext/font"
)

func bitmap(w, h int) font.GlyphBitmap {
	return font.GlyphBitmap{Alpha: make([]byte, w*h), Width: w, Height: h, Pitch: w}
}

func TestCachePutGet(t *testing.T) {
	c := New(10, 256, 256)
	k := Key{Glyph: 5}
	if _, err := c.Put(k, bitmap(8, 8)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	e, ok := c.Get(k)
	if !ok {
		t.Fatal("Get after Put: not found")
	}
	if e.Bitmap.Width != 8 || e.Bitmap.Height != 8 {
		t.Fatalf("got bitmap %+v", e.Bitmap)
	}
}

func TestCacheTrimsLRU(t *testing.T) {
	c := New(2, 256, 256)
	for i := font.GlyphIndex(0); i < 3; i++ {
		if _, err := c.Put(Key{Glyph: i}, bitmap(4, 4)); err != nil {
			t.Fatalf("Put %d: %v", i, err)
		}
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2 after trimming to limit", c.Len())
	}
	if _, ok := c.Get(Key{Glyph: 0}); ok {
		t.Fatal("oldest glyph entry should have been evicted")
	}
	if _, ok := c.Get(Key{Glyph: 2}); !ok {
		t.Fatal("most recent glyph entry should survive")
	}
}

func TestCacheEvictsRectEntriesFirst(t *testing.T) {
	c := New(2, 256, 256)
	rectKey := Key{RectWidth: 4, RectHeight: 4}
	glyphKey := Key{Glyph: 1}
	if _, err := c.Put(rectKey, bitmap(4, 4)); err != nil {
		t.Fatalf("Put rect: %v", err)
	}
	if _, err := c.Put(glyphKey, bitmap(4, 4)); err != nil {
		t.Fatalf("Put glyph: %v", err)
	}
	// Touch the rect entry last, so by pure recency it would survive; the
	// cache should still prefer evicting it over the glyph entry.
	c.Get(rectKey)
	if _, err := c.Put(Key{Glyph: 2}, bitmap(4, 4)); err != nil {
		t.Fatalf("Put third: %v", err)
	}
	if _, ok := c.Get(rectKey); ok {
		t.Fatal("rectangle entry should be evicted before a glyph entry regardless of recency")
	}
	if _, ok := c.Get(glyphKey); !ok {
		t.Fatal("glyph entry should survive while a rect entry remains evictable")
	}
}

func TestCacheClearResetsAtlasVersion(t *testing.T) {
	c := New(10, 64, 64)
	c.Put(Key{Glyph: 1}, bitmap(4, 4))
	v := c.Atlas().Version()
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", c.Len())
	}
	if c.Atlas().Version() <= v {
		t.Fatal("Clear did not bump atlas version")
	}
}

func TestNormalizeSubForcesNoneAboveThreshold(t *testing.T) {
	if got := NormalizeSub(font.SubpixelHorizontalRGB, BlurThreshold+1); got != font.SubpixelNone {
		t.Fatalf("NormalizeSub above threshold = %v, want SubpixelNone", got)
	}
	if got := NormalizeSub(font.SubpixelHorizontalRGB, 0); got != font.SubpixelHorizontalRGB {
		t.Fatalf("NormalizeSub at zero blur = %v, want unchanged", got)
	}
}

func TestPadAddsSpreadAndExtraColumn(t *testing.T) {
	bmp := bitmap(4, 4)
	padded := Pad(bmp, 0)
	if padded.Width != 5 || padded.Height != 4 {
		t.Fatalf("Pad(blur=0) = %dx%d, want 5x4 (one extra column)", padded.Width, padded.Height)
	}
}
