// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"paratext/hyphen"
)

// LayoutParagraph runs the full pipeline over text and its attrs against shape,
// following props, and returns the resulting drawing commands, bounding box
// and link table (§3, "Layout function"; §6, "To callers").
//
// The pipeline: resolve bidi embedding levels, classify line-break
// opportunities (augmented by hyphenation inside word interiors when reg is
// supplied), build unbreakable runs, shape each run, fit the runs into lines
// (greedy or optimizing per props.OptimizeLineBreaks), then reorder, justify
// and emit each line's drawing commands.
func LayoutParagraph(text []rune, attrs *AttributeIndex, shape Shape, props LayoutProperties, reg *hyphen.Registry) *Layout {
	layout := &Layout{}
	if len(text) == 0 {
		return layout
	}

	levels, _ := bidiLevels(text, props.Base)
	breaks := breakOpportunitiesByLanguage(text, func(i int) string {
		a, ok := attrs.Lookup(i)
		if !ok {
			return ""
		}
		return a.Language
	})
	applyHyphenationToWords(text, breaks, attrs, reg)

	spans := buildRunSpans(text, attrs, levels, breaks)
	runs := make([]Run, len(spans))
	for i, span := range spans {
		runs[i] = shapeRun(text, span, attrs, props.UnderlineFont, props.Rounding)
	}

	var lines []line
	if props.OptimizeLineBreaks {
		lines = fitLinesOptimizing(runs, shape, props.Indent, props.Align == Center, 0)
	} else {
		lines = fitLinesGreedy(runs, shape, props.Indent, props.Align == Center, 0)
	}

	for i, ln := range lines {
		emitLine(ln, shape, props, i == len(lines)-1, layout)
	}
	return layout
}

// applyHyphenationToWords scans text for maximal runs of codepoints that are
// neither run breakers (spaces, newlines, soft hyphens) nor bidi controls,
// cut at every existing break opportunity, and offers each to
// applyHyphenation, using the language tag of the word's first codepoint.
func applyHyphenationToWords(text []rune, breaks []BreakClass, attrs *AttributeIndex, reg *hyphen.Registry) {
	if reg == nil {
		return
	}
	n := len(text)
	i := 0
	for i < n {
		if !isWordRune(text[i]) {
			i++
			continue
		}
		start := i
		for i < n && isWordRune(text[i]) {
			if i > start {
				gap := i - 1
				if gap >= 0 && gap < len(breaks) && breaks[gap] != NoBreak {
					break
				}
			}
			i++
		}
		a, _ := attrs.Lookup(start)
		applyHyphenation(text, breaks, start, i, a.Language, reg)
	}
}

func isWordRune(r rune) bool {
	return !isRunBreaker(r) && !isBidiControl(r)
}
