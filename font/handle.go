package font

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/opentype/api"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Errors returned by font opening and rendering, per the outline-library
// contract of the core's external interfaces.
var (
	ErrFontOpen    = errors.New("font: resource could not be opened")
	ErrNoCmap      = errors.New("font: no Unicode character map")
	ErrGlyphRender = errors.New("font: glyph could not be rendered")
)

// SubpixelArrangement selects how a rasterized glyph is arranged for
// sub-pixel-accurate display.
type SubpixelArrangement uint8

const (
	SubpixelNone SubpixelArrangement = iota
	SubpixelHorizontalRGB
	SubpixelHorizontalBGR
	SubpixelVerticalRGB
	SubpixelVerticalBGR
)

// Horizontal reports whether the arrangement subsamples along the x axis.
func (s SubpixelArrangement) Horizontal() bool {
	return s == SubpixelHorizontalRGB || s == SubpixelHorizontalBGR
}

// Resource identifies a font's source bytes. Two resources describing the
// same bytes should compare equal so the cache can key on them.
type Resource interface {
	// Description is a stable, human-readable identifier for the resource
	// (e.g. a file path or embedded-font name). Used as the persisted-layout
	// font table key (§6).
	Description() string
	// Open returns the font file bytes.
	Open() ([]byte, error)
}

// BytesResource is a Resource backed by an in-memory font file, such as an
// embedded font.
type BytesResource struct {
	Desc string
	Data []byte
}

func (b BytesResource) Description() string  { return b.Desc }
func (b BytesResource) Open() ([]byte, error) { return b.Data, nil }

// GlyphIndex is a font-local glyph identifier.
type GlyphIndex = tsfont.GID

// parsedFace holds the result of parsing a font resource once; it is
// independent of pixel size and shared by every Handle opened against it.
type parsedFace struct {
	face tsfont.Face
	hb   *shaping.HarfbuzzShaper
}

// Handle is a font opened and cached at a particular pixel size. It exposes
// the metrics and outline-rasterization contract that the rest of the
// engine depends on (§6, "From the outline library").
type Handle struct {
	resource Resource
	pxPerEm  fixed.Int26_6
	parsed   *parsedFace

	ascender  fixed.Int26_6
	descender fixed.Int26_6
	height    fixed.Int26_6

	underlinePosition  fixed.Int26_6
	underlineThickness fixed.Int26_6
}

// Face returns the go-text/typesetting face backing this handle, for use
// as shaping.Input.Face.
func (h *Handle) Face() tsfont.Face { return h.parsed.face }

// Shape runs the shaper back end over in, which must reference this
// handle's Face (§6, "From the shaper back end"). The engine treats the
// result as opaque beyond cluster indices, which it remaps to source
// codepoint positions itself.
func (h *Handle) Shape(in shaping.Input) shaping.Output {
	return h.parsed.hb.Shape(in)
}

// Resource returns the resource this handle was opened from.
func (h *Handle) Resource() Resource { return h.resource }

// PxPerEm returns the pixel size this handle was opened at.
func (h *Handle) PxPerEm() fixed.Int26_6 { return h.pxPerEm }

func (h *Handle) Ascender() fixed.Int26_6  { return h.ascender }
func (h *Handle) Descender() fixed.Int26_6 { return h.descender }
func (h *Handle) Height() fixed.Int26_6    { return h.height }

func (h *Handle) UnderlinePosition() fixed.Int26_6  { return h.underlinePosition }
func (h *Handle) UnderlineThickness() fixed.Int26_6 { return h.underlineThickness }

// ContainsGlyph reports whether the face's Unicode character map covers r.
func (h *Handle) ContainsGlyph(r rune) bool {
	_, ok := h.parsed.face.NominalGlyph(r)
	return ok
}

// GlyphIndexFor looks up the glyph index for a rune via the face's cmap.
func (h *Handle) GlyphIndexFor(r rune) (GlyphIndex, bool) {
	return h.parsed.face.NominalGlyph(r)
}

// GlyphBitmap is the rasterized result of one (font, glyph, sub-pixel)
// tuple, before any blur or cache padding is applied (§3, "Glyph paint").
type GlyphBitmap struct {
	// Alpha holds width*height coverage bytes, row-major, pitch == width.
	// Horizontal sub-pixel arrangements triple Width/Pitch before this
	// bitmap is produced (the rasterization itself runs at 3x horizontal
	// resolution; see RenderGlyph).
	Alpha  []byte
	Width  int
	Height int
	Pitch  int
	// Left, Top are the offsets from the glyph origin (the "dot") to the
	// top-left corner of Alpha, in integer pixels.
	Left, Top int
}

// RenderGlyph rasterizes glyph id at this handle's pixel size, tripling the
// horizontal resolution for horizontal sub-pixel arrangements (§4.5).
func (h *Handle) RenderGlyph(gid GlyphIndex, sp SubpixelArrangement) (GlyphBitmap, error) {
	data := h.parsed.face.GlyphData(gid)
	outline, ok := data.(api.GlyphOutline)
	if !ok {
		// Bitmap-only glyphs (emoji etc.) are out of scope for alpha-mask
		// rasterization; report as unrenderable rather than silently blank.
		return GlyphBitmap{}, fmt.Errorf("%w: glyph %d has no vector outline", ErrGlyphRender, gid)
	}
	upem := float32(h.parsed.face.Upem())
	if upem == 0 {
		upem = 1000
	}
	scale := fixedToFloat(h.pxPerEm) / upem
	xScale := scale
	if sp.Horizontal() {
		xScale *= 3
	}

	minX, minY, maxX, maxY := outlineBounds(outline, xScale, scale)
	if maxX <= minX || maxY <= minY {
		return GlyphBitmap{Left: int(minX), Top: int(-maxY)}, nil
	}
	w := int(maxX-minX) + 1
	ht := int(maxY-minY) + 1

	ras := vector.NewRasterizer(w, ht)
	drawOutline(ras, outline, xScale, scale, minX, maxY)

	mask := image.NewAlpha(image.Rect(0, 0, w, ht))
	ras.Draw(mask, mask.Bounds(), image.NewUniform(color.Alpha{A: 0xff}), image.Point{})

	return GlyphBitmap{
		Alpha:  mask.Pix,
		Width:  w,
		Height: ht,
		Pitch:  mask.Stride,
		Left:   int(minX),
		Top:    int(-maxY),
	}, nil
}

// probeMetrics obtains line metrics (ascender/descender/height) for a font
// at a given size. go-text/typesetting only exposes these scaled quantities
// through shaping.Output.LineBounds (as the teacher's toLine uses them), so
// a minimal single-space shape is the grounded way to obtain them; see
// DESIGN.md.
func probeMetrics(p *parsedFace, pxPerEm fixed.Int26_6) (ascender, descender, height fixed.Int26_6) {
	in := shaping.Input{
		Text:      []rune{' '},
		RunStart:  0,
		RunEnd:    1,
		Direction: di.DirectionLTR,
		Face:      p.face,
		Size:      pxPerEm,
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}
	out := p.hb.Shape(in)
	return out.LineBounds.Ascent, -out.LineBounds.Descent, out.LineBounds.LineHeight()
}

func fixedToFloat(f fixed.Int26_6) float32 { return float32(f) / 64 }

func outlineBounds(o api.GlyphOutline, xScale, yScale float32) (minX, minY, maxX, maxY float32) {
	first := true
	visit := func(x, y float32) {
		x *= xScale
		y *= yScale
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, seg := range o.Segments {
		n := segArgCount(seg.Op)
		for i := 0; i < n; i++ {
			visit(seg.Args[i].X, seg.Args[i].Y)
		}
	}
	return
}

func segArgCount(op api.SegmentOp) int {
	switch op {
	case api.SegmentOpQuadTo:
		return 2
	case api.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

// drawOutline feeds the glyph's segments into the rasterizer. originX and
// topY are the scaled-space bounding box min-X and max-Y computed by
// outlineBounds; they translate the glyph so it sits flush against the
// rasterizer's (0,0) origin with y flipped from font-up to image-down.
func drawOutline(ras *vector.Rasterizer, o api.GlyphOutline, xScale, yScale, originX, topY float32) {
	pt := func(a api.SegmentPoint) (float32, float32) {
		return a.X*xScale - originX, topY - a.Y*yScale
	}
	for _, seg := range o.Segments {
		switch seg.Op {
		case api.SegmentOpMoveTo:
			x, y := pt(seg.Args[0])
			ras.MoveTo(x, y)
		case api.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			ras.LineTo(x, y)
		case api.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			ras.QuadTo(cx, cy, x, y)
		case api.SegmentOpCubeTo:
			c0x, c0y := pt(seg.Args[0])
			c1x, c1y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			ras.CubeTo(c0x, c0y, c1x, c1y, x, y)
		}
	}
}
