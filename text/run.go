// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/exp/slices"
	"golang.org/x/image/math/fixed"

	"paratext/font"
)

const (
	runeSoftHyphen = '­'
	runeHyphen     = '‐'
	runeHyphenMinus = '-'
)

// DrawFragment is one draw-command fragment in run-local coordinates,
// relative to the run's origin (x) and baseline (y) (§4.3).
type DrawFragment struct {
	Layer int
	Kind  CommandKind

	DX, DY        fixed.Int26_6
	Width, Height fixed.Int26_6
	Color         [4]uint8
	Blur          fixed.Int26_6

	Font  *font.Handle
	Glyph font.GlyphIndex
	URL   string
}

type linkFragment struct {
	linkID int
	rect   Rect // run-local
}

// Run is an unbreakable chunk produced by the run builder (§3, "Run
// (internal)").
type Run struct {
	Start, End int // codepoint index range [Start, End)
	Level      int
	Break      BreakClass
	Font       *font.Handle
	IsSpace       bool
	IsSoftHyphen  bool

	Ascender, Descender fixed.Int26_6
	Width               fixed.Int26_6

	Fragments []DrawFragment
	Links     []linkFragment

	Inlay *Layout
}

// isRunBreaker reports whether r should never be merged into a multi-rune
// run: spaces, newlines and soft hyphens each form single-codepoint runs
// (§4.3).
func isRunBreaker(r rune) bool {
	return unicode.IsSpace(r) || r == runeSoftHyphen
}

// runSpan is a codepoint range sharing run-builder identity, before
// shaping.
type runSpan struct {
	start, end int
	level      int
	brk        BreakClass
	attr       CodepointAttribute
}

// buildRunSpans walks text left to right, skipping bidi controls, and
// splits it into maximal runs per the extension rule in §4.3.
func buildRunSpans(text []rune, attrs *AttributeIndex, levels []int, breaks []BreakClass) []runSpan {
	var spans []runSpan
	i := 0
	n := len(text)
	for i < n {
		if isBidiControl(text[i]) {
			i++
			continue
		}
		a, ok := attrs.Lookup(i)
		if !ok {
			a = CodepointAttribute{}
		}
		start := i
		brk := gapClass(breaks, i)
		breaker := isRunBreaker(text[i])
		i++
		if !breaker {
			for i < n {
				if isBidiControl(text[i]) {
					break
				}
				if isRunBreaker(text[i]) {
					break
				}
				next, ok := attrs.Lookup(i)
				if !ok {
					next = CodepointAttribute{}
				}
				if next.Font != a.Font || next.Language != a.Language ||
					next.BaselineShift != a.BaselineShift ||
					next.Inlay != nil || a.Inlay != nil ||
					levels[i] != levels[start] {
					break
				}
				prevGap := gapClass(breaks, i-1)
				if prevGap == AllowBreak || prevGap == MustBreak {
					break
				}
				brk = gapClass(breaks, i)
				i++
			}
		}
		spans = append(spans, runSpan{start: start, end: i, level: levels[start], brk: brk, attr: a})
	}
	return spans
}

// gapClass returns the break classification of the gap after codepoint i,
// or NoBreak past the end of the text.
func gapClass(breaks []BreakClass, i int) BreakClass {
	if i < 0 || i >= len(breaks) {
		return NoBreak
	}
	return breaks[i]
}

// langScript splits a BCP-47-ish language tag into its language subtag and
// an optional trailing four-letter ISO-15924 script subtag (§4.3).
func langScript(tag string) (lang string, script string) {
	parts := strings.SplitN(tag, "-", 2)
	lang = parts[0]
	if len(parts) == 2 {
		rest := strings.SplitN(parts[1], "-", 2)
		if len(rest[0]) == 4 {
			script = rest[0]
		}
	}
	return lang, script
}

// TopLayer is the sentinel DrawFragment.Layer value for a run's own paint
// (the glyph, or an underline/inlay fragment not itself a shadow), as
// opposed to a numbered shadow layer 0..k-1 (§3, "Run (internal)"). Lines
// are emitted in two passes — every shadow layer across every run on the
// line, in increasing layer order, then every TopLayer fragment — so
// shadows never overprint glyphs of the same line regardless of which run
// contributed which shadow count.
const TopLayer = -1

// shapeRun invokes the shaper back end for one run span and produces its
// draw fragments, in run-local coordinates (§4.3). Color, shadows,
// underline flag and link id are re-looked-up per codepoint via the
// shaper's cluster mapping, since the run-extension rule does not require
// them to be uniform across a run.
func shapeRun(text []rune, span runSpan, attrs *AttributeIndex, underlineFont *font.Handle, round fixed.Int26_6) Run {
	if span.attr.Inlay != nil {
		return shapeInlayRun(span, round)
	}
	r := Run{
		Start: span.start,
		End:   span.end,
		Level: span.level,
		Break: span.brk,
		Font:  span.attr.Font,
	}
	if span.end-span.start == 1 && unicode.IsSpace(text[span.start]) {
		r.IsSpace = true
	}
	if span.end-span.start == 1 && text[span.start] == runeSoftHyphen {
		r.IsSoftHyphen = true
	}
	h := span.attr.Font
	if h == nil {
		return r
	}
	r.Ascender = h.Ascender() + span.attr.BaselineShift
	r.Descender = h.Descender() + span.attr.BaselineShift

	dir := di.DirectionLTR
	if span.level%2 == 1 {
		dir = di.DirectionRTL
	}
	langTag, scriptTag := langScript(span.attr.Language)
	if langTag == "" {
		langTag = "en"
	}
	scr := language.Latin
	if scriptTag != "" {
		if parsed, err := language.ParseScript(scriptTag); err == nil {
			scr = parsed
		}
	}

	runeText := text
	runStart, runEnd := span.start, span.end
	if r.IsSoftHyphen {
		// Shape a single hyphen glyph rather than the source U+00AD (§4.3).
		runeText = []rune{hyphenGlyphRune(h)}
		runStart, runEnd = 0, 1
	}

	in := shaping.Input{
		Text:      runeText,
		RunStart:  runStart,
		RunEnd:    runEnd,
		Direction: dir,
		Face:      h.Face(),
		Size:      h.PxPerEm(),
		Script:    scr,
		Language:  language.NewLanguage(langTag),
	}
	out := h.Shape(in)

	// Grow the fragment slice once for the worst case (one top-layer
	// fragment per glyph, ignoring shadows/underline) rather than letting
	// append reallocate repeatedly, matching the teacher's scratch-buffer
	// growth pattern in splitByScript/splitByFaces.
	r.Fragments = slices.Grow(r.Fragments, len(out.Glyphs))

	var x fixed.Int26_6
	for _, g := range out.Glyphs {
		srcIdx := span.start + g.ClusterIndex
		ga := span.attr
		if !r.IsSoftHyphen {
			if a, ok := attrs.Lookup(srcIdx); ok {
				ga = a
			}
		}
		gx := round64(x+g.XOffset, round)
		gy := round64(g.YOffset-ga.BaselineShift, round)

		for i, sh := range ga.Shadows {
			r.Fragments = append(r.Fragments, DrawFragment{
				Layer: i, Kind: CmdGlyph,
				DX: gx + sh.DX, DY: gy + sh.DY,
				Color: sh.Color, Blur: sh.BlurRadius,
				Font: h, Glyph: font.GlyphIndex(g.GlyphID),
			})
		}
		r.Fragments = append(r.Fragments, DrawFragment{
			Layer: TopLayer, Kind: CmdGlyph,
			DX: gx, DY: gy,
			Color: ga.Color,
			Font:  h, Glyph: font.GlyphIndex(g.GlyphID),
		})

		if ga.Flags&FlagUnderline != 0 {
			uf := h
			if underlineFont != nil {
				uf = underlineFont
			}
			thickness := uf.UnderlineThickness()
			if thickness < 64 {
				thickness = 64
			}
			uy := gy - (uf.UnderlinePosition() + thickness/2)
			for i, sh := range ga.Shadows {
				r.Fragments = append(r.Fragments, DrawFragment{
					Layer: i, Kind: CmdRect,
					DX: gx + sh.DX, DY: uy + sh.DY,
					Width: g.XAdvance, Height: thickness,
					Color: sh.Color, Blur: sh.BlurRadius,
				})
			}
			r.Fragments = append(r.Fragments, DrawFragment{
				Layer: TopLayer, Kind: CmdRect,
				DX: gx, DY: uy,
				Width: g.XAdvance, Height: thickness,
				Color: ga.Color,
			})
		}

		if ga.LinkID != 0 {
			r.Links = append(r.Links, linkFragment{
				linkID: ga.LinkID,
				rect:   Rect{X: x, Y: -r.Ascender, Width: g.XAdvance, Height: r.Ascender - r.Descender},
			})
		}

		x += g.XAdvance
		r.Width += g.XAdvance
	}
	return r
}

// round64 rounds v to the nearest multiple of g, or leaves it unrounded
// when g <= 0 (LayoutProperties.Rounding's default), matching round's
// no-op-at-zero convention rather than silently forcing whole-pixel
// rounding.
func round64(v, g fixed.Int26_6) fixed.Int26_6 {
	return round(v, g)
}

// hyphenGlyphRune picks U+2010 if h's font covers it, else falls back to
// U+002D (§4.2).
func hyphenGlyphRune(h *font.Handle) rune {
	if h.ContainsGlyph(runeHyphen) {
		return runeHyphen
	}
	return runeHyphenMinus
}

// shapeInlayRun produces the run for an inlaid sub-layout: its own draw
// commands translated onto TopLayer at the inlay's glyph position, shifted
// up by ascender-1 so its top sits at the line's top (§4.3).
func shapeInlayRun(span runSpan, round fixed.Int26_6) Run {
	inlay := span.attr.Inlay
	r := Run{Start: span.start, End: span.end, Level: span.level, Break: span.brk, Inlay: inlay}
	if inlay == nil {
		return r
	}
	r.Width = inlay.Right - inlay.Left
	r.Ascender = inlay.Height
	r.Descender = 0
	for _, c := range inlay.Commands {
		r.Fragments = append(r.Fragments, DrawFragment{
			Layer: TopLayer, Kind: c.Kind,
			DX: c.X - inlay.Left, DY: c.Y - (r.Ascender - 1),
			Width: c.Width, Height: c.Height,
			Color: c.Color, Blur: c.Blur,
			Font: c.Font, Glyph: c.Glyph, URL: c.URL,
		})
	}
	return r
}
