package font

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

func goRegular(t *testing.T) BytesResource {
	t.Helper()
	return BytesResource{Desc: "Go Regular (test)", Data: goregular.TTF}
}

func TestCacheOpenIsIdempotent(t *testing.T) {
	c := NewCache()
	r := goRegular(t)
	h1, err := c.Open(r, fixed.I(16))
	if err != nil {
		t.Fatal(err)
	}
	h2, err := c.Open(r, fixed.I(16))
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("Open did not return the cached handle for an identical (resource, size)")
	}
	h3, err := c.Open(r, fixed.I(32))
	if err != nil {
		t.Fatal(err)
	}
	if h3 == h1 {
		t.Errorf("Open returned the same handle for two different pixel sizes")
	}
	if h3.parsed != h1.parsed {
		t.Errorf("Open re-parsed a resource that was already parsed at a different size")
	}
}

func TestCacheMetricsPositive(t *testing.T) {
	c := NewCache()
	h, err := c.Open(goRegular(t), fixed.I(16))
	if err != nil {
		t.Fatal(err)
	}
	if h.Ascender() <= 0 {
		t.Errorf("ascender = %v, want > 0", h.Ascender())
	}
	if h.Height() <= 0 {
		t.Errorf("height = %v, want > 0", h.Height())
	}
}

func TestContainsGlyph(t *testing.T) {
	c := NewCache()
	h, err := c.Open(goRegular(t), fixed.I(16))
	if err != nil {
		t.Fatal(err)
	}
	if !h.ContainsGlyph('A') {
		t.Errorf("expected Go Regular to contain 'A'")
	}
}

func TestCollectionClosest(t *testing.T) {
	c := NewCache()
	h, err := c.Open(goRegular(t), fixed.I(16))
	if err != nil {
		t.Fatal(err)
	}
	var col Collection
	col.Register(Font{Typeface: "Go"}, h)
	col.Register(Font{Typeface: "Go", Weight: Bold}, h)

	got, ok := col.Closest(Font{Typeface: "Go", Weight: SemiBold})
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Font.Weight != Bold {
		t.Errorf("closest weight = %v, want %v (nearer to SemiBold than Normal)", got.Font.Weight, Bold)
	}

	_, ok = col.Closest(Font{Typeface: "Unknown"})
	if !ok {
		t.Fatal("expected fallback to the default face")
	}
}
