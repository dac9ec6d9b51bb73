// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"golang.org/x/text/unicode/bidi"
)

// bidiLevels assigns one UAX #9 embedding level per codepoint in text, given
// a paragraph base direction, plus the maximum level encountered (§4.1).
//
// Grounded on the teacher's splitBidi (text/gotext.go), which drives
// golang.org/x/text/unicode/bidi the same way: set the paragraph string and
// default direction, then read back resolved runs via Paragraph.Order().
// That API only exposes flattened, already-resolved direction runs rather
// than the raw per-rune levels produced by the UAX #9 resolution algorithm,
// so nested embeddings collapse to a two-level approximation: the base level
// (0 for LTR, 1 for RTL) for runs matching the base direction, one level
// higher for runs running against it.
// This still satisfies the two contracts the core relies on (§4.1): levels
// alternate parity between LTR and RTL runs, and embedding controls are
// carried through unaffected. See DESIGN.md for the tradeoff.
func bidiLevels(text []rune, base Direction) (levels []int, maxLevel int) {
	levels = make([]int, len(text))
	if len(text) == 0 {
		return levels, 0
	}
	def := bidi.LeftToRight
	if base == RTL {
		def = bidi.RightToLeft
	}
	var p bidi.Paragraph
	p.SetString(string(text), bidi.DefaultDirection(def))
	order, err := p.Order()
	if err != nil {
		return levels, 0
	}
	pos := 0
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		_, end := run.Pos()
		runLevel := 0
		switch {
		case run.Direction() == bidi.RightToLeft:
			runLevel = 1
		case base == RTL:
			runLevel = 2
		}
		if runLevel > maxLevel {
			maxLevel = runLevel
		}
		for pos <= end && pos < len(levels) {
			levels[pos] = runLevel
			pos++
		}
	}
	for ; pos < len(levels); pos++ {
		levels[pos] = 0
	}
	return levels, maxLevel
}
