// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func mkRun(width fixed.Int26_6, brk BreakClass, isSpace bool) Run {
	return Run{Width: width, Break: brk, IsSpace: isSpace, Ascender: 10 * 64, Descender: -2 * 64}
}

func TestFitLinesGreedyBreaksOnOverflow(t *testing.T) {
	// "aaaa bbbb cccc" as three word-runs plus two space-runs, each word
	// 50px wide and each space 15px wide, in a shape 120px wide: the first
	// line should fit "aaaa bbbb" (115px) but not a trailing space plus a
	// third word.
	word := func() Run { return mkRun(50*64, AllowBreak, false) }
	space := func() Run { r := mkRun(15*64, AllowBreak, true); return r }
	runs := []Run{word(), space(), word(), space(), word()}
	shape := RectangleShape{Width: 120 * 64}
	lines := fitLinesGreedy(runs, shape, 0, false, 0)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if len(lines[0].runs) != 3 {
		t.Fatalf("line 0 has %d runs, want 3 (word, space, word)", len(lines[0].runs))
	}
	if len(lines[1].runs) != 1 {
		t.Fatalf("line 1 has %d runs, want 1", len(lines[1].runs))
	}
}

func TestFitLinesGreedyCommitsOverfullChunkWhenLineEmpty(t *testing.T) {
	// A single word wider than the shape must still be committed alone
	// rather than producing an empty line forever.
	runs := []Run{mkRun(200*64, MustBreak, false)}
	shape := RectangleShape{Width: 50 * 64}
	lines := fitLinesGreedy(runs, shape, 0, false, 0)
	if len(lines) != 1 || len(lines[0].runs) != 1 {
		t.Fatalf("got %d lines, want 1 committed line", len(lines))
	}
}

func TestFitLinesGreedyIndentOnFirstLineAndAfterForced(t *testing.T) {
	runs := []Run{
		mkRun(10*64, MustBreak, false),
		mkRun(10*64, NoBreak, false),
	}
	shape := RectangleShape{Width: 100 * 64}
	lines := fitLinesGreedy(runs, shape, 20*64, false, 0)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].indent != 20*64 {
		t.Fatalf("line 0 indent = %v, want 20*64 (first line of paragraph)", lines[0].indent)
	}
	if lines[1].indent != 20*64 {
		t.Fatalf("line 1 indent = %v, want 20*64 (line after a MUST break)", lines[1].indent)
	}
}

func TestFitLinesGreedyNoIndentInCenterMode(t *testing.T) {
	runs := []Run{mkRun(10 * 64, NoBreak, false)}
	shape := RectangleShape{Width: 100 * 64}
	lines := fitLinesGreedy(runs, shape, 20*64, true, 0)
	if lines[0].indent != 0 {
		t.Fatalf("indent in center mode = %v, want 0", lines[0].indent)
	}
}

func TestSuppressSoftHyphenClearsWidthAndFragments(t *testing.T) {
	r := Run{Width: 64, IsSoftHyphen: true, Fragments: []DrawFragment{{}}}
	out := suppressSoftHyphen(r)
	if out.Width != 0 || out.Fragments != nil {
		t.Fatalf("suppressSoftHyphen did not clear width/fragments: %+v", out)
	}
}

func TestCandidateWidthExcludesNonTerminalSoftHyphen(t *testing.T) {
	runs := []Run{
		{Width: 10 * 64, IsSoftHyphen: true},
		{Width: 20 * 64},
	}
	if w := candidateWidth(runs, 0); w != 20*64 {
		t.Fatalf("candidateWidth = %v, want 20*64 (non-terminal soft hyphen excluded)", w)
	}
	terminal := []Run{{Width: 10 * 64, IsSoftHyphen: true}}
	if w := candidateWidth(terminal, 0); w != 10*64 {
		t.Fatalf("candidateWidth (terminal soft hyphen) = %v, want 10*64", w)
	}
}

func TestFitLinesOptimizingRespectsForcedSegments(t *testing.T) {
	runs := []Run{
		mkRun(10*64, MustBreak, false),
		mkRun(10*64, AllowBreak, false),
		mkRun(10*64, NoBreak, false),
	}
	shape := RectangleShape{Width: 1000 * 64}
	lines := fitLinesOptimizing(runs, shape, 0, false, 0)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (forced break partitions segments)", len(lines))
	}
	if len(lines[0].runs) != 1 {
		t.Fatalf("segment 0 has %d runs, want 1", len(lines[0].runs))
	}
	if len(lines[1].runs) != 2 {
		t.Fatalf("segment 1 has %d runs, want 2", len(lines[1].runs))
	}
}

func TestFitLinesOptimizingIndentsEverySegmentFirstLine(t *testing.T) {
	runs := []Run{
		mkRun(10*64, MustBreak, false),
		mkRun(10*64, NoBreak, false),
	}
	shape := RectangleShape{Width: 1000 * 64}
	lines := fitLinesOptimizing(runs, shape, 5*64, false, 0)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, ln := range lines {
		if ln.indent != 5*64 {
			t.Fatalf("line %d indent = %v, want 5*64 (first line of its own forced segment)", i, ln.indent)
		}
	}
}

func TestLineBadnessPenalizesHyphenationAndOverfull(t *testing.T) {
	base := lineBadness(50*64, 100*64, false, false)
	hyphenated := lineBadness(50*64, 100*64, true, false)
	if hyphenated <= base {
		t.Fatal("hyphenated badness should exceed non-hyphenated badness for the same fit")
	}
	consecutive := lineBadness(50*64, 100*64, true, true)
	if consecutive <= hyphenated {
		t.Fatal("consecutive hyphenation should be penalized more than a single one")
	}
	overfull := lineBadness(150*64, 100*64, false, false)
	if overfull <= base {
		t.Fatal("an overfull line should be penalized far more than an underfull one")
	}
}
