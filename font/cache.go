package font

import (
	"bytes"
	"fmt"
	"sync"

	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Cache opens font resources and caches handles by (resource, pixel-size),
// per §2 component 1. A Cache must not be shared across goroutines that
// lay out paragraphs concurrently (§5): the underlying shaping library is
// not re-entrant on a shared instance.
type Cache struct {
	mu     sync.Mutex
	parsed map[string]*parsedFace
	opened map[openKey]*Handle
}

type openKey struct {
	desc    string
	pxPerEm fixed.Int26_6
}

// NewCache creates an empty font cache.
func NewCache() *Cache {
	return &Cache{
		parsed: make(map[string]*parsedFace),
		opened: make(map[openKey]*Handle),
	}
}

// Open returns a cached Handle for resource at pxPerEm, parsing and
// shaping-probing the resource on first use only.
func (c *Cache) Open(resource Resource, pxPerEm fixed.Int26_6) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := openKey{resource.Description(), pxPerEm}
	if h, ok := c.opened[key]; ok {
		return h, nil
	}

	p, ok := c.parsed[resource.Description()]
	if !ok {
		data, err := resource.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFontOpen, err)
		}
		face, err := tsfont.ParseTTF(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFontOpen, err)
		}
		if _, ok := face.NominalGlyph('A'); !ok {
			if _, ok := face.NominalGlyph(' '); !ok {
				return nil, ErrNoCmap
			}
		}
		hb := &shaping.HarfbuzzShaper{}
		hb.SetFontCacheSize(32)
		p = &parsedFace{face: face, hb: hb}
		c.parsed[resource.Description()] = p
	}

	ascender, descender, height := probeMetrics(p, pxPerEm)
	h := &Handle{
		resource:  resource,
		pxPerEm:   pxPerEm,
		parsed:    p,
		ascender:  ascender,
		descender: descender,
		height:    height,
		// Underline metrics are not exposed by go-text/typesetting's face
		// surface in any form observed in the example corpus; approximate
		// with the conventional typographic ratios.
		underlinePosition:  pxPerEm / 10,
		underlineThickness: maxFixed(64, pxPerEm/14),
	}
	c.opened[key] = h
	return h, nil
}

func maxFixed(a, b fixed.Int26_6) fixed.Int26_6 {
	if a > b {
		return a
	}
	return b
}
