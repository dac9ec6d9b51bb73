// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"github.com/gioui/uax/segment"
	"github.com/gioui/uax/uax14"

	"paratext/hyphen"
)

// BreakClass classifies an inter-codepoint gap (§4.2).
type BreakClass uint8

const (
	NoBreak BreakClass = iota
	AllowBreak
	MustBreak
	InsideChar
)

// breakOpportunities classifies every inter-codepoint gap in text: result[i]
// is the classification of the gap between text[i] and text[i+1], so
// len(result) == len(text)-1 for len(text) >= 1.
//
// Grounded on the vendored github.com/gioui/uax/uax14 + segment packages
// (esimov-caire/vendor/github.com/gioui/uax): a segment.Segmenter driven by
// uax14.NewLineWrap reports each maximal run between break opportunities;
// the gap at the end of each reported segment (save the last) is classified
// by the segmenter's primary penalty, everything else defaults to NoBreak
// since the segmenter never stops elsewhere.
func breakOpportunities(text []rune) []BreakClass {
	n := len(text)
	if n <= 1 {
		return nil
	}
	result := make([]BreakClass, n-1)
	seg := segment.NewSegmenter(uax14.NewLineWrap())
	seg.InitFromSlice(text)
	pos := 0
	for seg.Next() {
		runes := seg.Runes()
		pos += len(runes)
		gap := pos - 1
		if gap < 0 || gap >= len(result) {
			continue
		}
		penalty, _ := seg.Penalties()
		result[gap] = classifyPenalty(penalty)
	}
	return result
}

func classifyPenalty(penalty int) BreakClass {
	switch {
	case penalty <= uax14.PenaltyForMustBreak/2:
		return MustBreak
	case penalty >= uax14.PenaltyToSuppressBreak:
		return NoBreak
	default:
		return AllowBreak
	}
}

// breakOpportunitiesByLanguage classifies break opportunities per §4.2's
// "language-scoped sub-segments" rule: langOf(i) gives the language tag at
// codepoint i, and each maximal same-language sub-segment is classified
// independently, extended by one trailing codepoint beyond the sub-segment
// boundary (when available) so the classifier does not force a spurious
// break at the sub-segment end.
func breakOpportunitiesByLanguage(text []rune, langOf func(i int) string) []BreakClass {
	n := len(text)
	if n <= 1 {
		return nil
	}
	result := make([]BreakClass, n-1)
	start := 0
	for start < n {
		lang := langOf(start)
		end := start + 1
		for end < n && langOf(end) == lang {
			end++
		}
		subEnd := end
		if subEnd < n {
			subEnd++ // one extra trailing codepoint
		}
		sub := breakOpportunities(text[start:subEnd])
		for i := start; i < end && i-start < len(sub); i++ {
			result[i] = sub[i-start]
		}
		start = end
	}
	return result
}

// applyHyphenation augments ALLOW_BREAK opportunities inside word interiors
// using a per-language hyphenation dictionary registry, per §4.2. wordStart
// and wordEnd bound a single word (no existing break inside it); hyphen
// points found strictly inside the word become ALLOW_BREAK gaps.
func applyHyphenation(text []rune, classes []BreakClass, wordStart, wordEnd int, lang string, reg *hyphen.Registry) {
	if reg == nil || wordEnd-wordStart < 2 {
		return
	}
	points, ok := reg.Hyphenate(lang, text[wordStart:wordEnd])
	if !ok {
		return
	}
	for _, p := range points {
		gap := wordStart + p - 1
		if gap <= wordStart-1 || gap >= wordEnd-1 || gap < 0 || gap >= len(classes) {
			continue
		}
		if classes[gap] == NoBreak {
			classes[gap] = AllowBreak
		}
	}
}
