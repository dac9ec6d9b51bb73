package font

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// defaultProbeSize is an arbitrary pixel size used only to register the
// default collection's faces; callers reopen each face at the size they
// actually need via Cache.Open, which reuses the already-parsed face.
var defaultProbeSize = fixed.I(16)

// DefaultCollection returns a Collection populated with the bundled "Go"
// font family, for zero-configuration use and tests. Grounded on the
// teacher's font/gofont package, which serves the same role.
func DefaultCollection(cache *Cache) (*Collection, error) {
	reg := []struct {
		fnt Font
		ttf []byte
	}{
		{Font{Typeface: "Go"}, goregular.TTF},
		{Font{Typeface: "Go", Style: Italic}, goitalic.TTF},
		{Font{Typeface: "Go", Weight: Bold}, gobold.TTF},
		{Font{Typeface: "Go", Weight: Bold, Style: Italic}, gobolditalic.TTF},
		{Font{Typeface: "Go", Variant: "Mono"}, gomono.TTF},
	}
	var col Collection
	for _, r := range reg {
		desc := string(r.fnt.Typeface) + "/" + string(r.fnt.Variant) + "/" + r.fnt.Style.String() + "/" + r.fnt.Weight.String()
		h, err := cache.Open(BytesResource{Desc: desc, Data: r.ttf}, defaultProbeSize)
		if err != nil {
			return nil, err
		}
		col.Register(r.fnt, h)
	}
	return &col, nil
}
