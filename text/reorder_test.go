// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func labelRuns(labels ...int) []Run {
	runs := make([]Run, len(labels))
	for i, l := range labels {
		runs[i] = Run{Level: l, Width: 10 * 64, Ascender: 10 * 64, Descender: -2 * 64}
	}
	// stash the label in Start so tests can identify runs after reordering.
	for i := range runs {
		runs[i].Start = labels[i]
	}
	return runs
}

func startsOf(runs []Run) []int {
	out := make([]int, len(runs))
	for i, r := range runs {
		out[i] = r.Start
	}
	return out
}

func TestReorderForDisplayAllLTRIsIdentity(t *testing.T) {
	runs := labelRuns(0, 0, 0)
	out := reorderForDisplay(runs, 0)
	got := startsOf(out)
	want := []int{0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReorderForDisplayReversesSingleRTLSpan(t *testing.T) {
	// Runs carry a position label in Start (reused as an identity tag, not
	// a codepoint index) so the reversal is easy to observe.
	runs := []Run{{Level: 0, Start: 1}, {Level: 1, Start: 2}, {Level: 1, Start: 3}, {Level: 0, Start: 4}}
	out := reorderForDisplay(runs, 1)
	got := startsOf(out)
	want := []int{1, 3, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReorderForDisplayNestedLevels(t *testing.T) {
	// level sequence 0 1 2 1 0: level>=2 reverses the single middle run
	// (no-op), then level>=1 reverses the whole [1,2,1] span.
	runs := []Run{{Level: 0, Start: 1}, {Level: 1, Start: 2}, {Level: 2, Start: 3}, {Level: 1, Start: 4}, {Level: 0, Start: 5}}
	out := reorderForDisplay(runs, 2)
	got := startsOf(out)
	want := []int{1, 4, 3, 2, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestEmitLineLeftAlignStartsAtIndent(t *testing.T) {
	runs := []Run{{Width: 20 * 64, Ascender: 10 * 64, Descender: -2 * 64, Fragments: []DrawFragment{
		{Layer: TopLayer, Kind: CmdGlyph, DX: 0, DY: 0},
	}}}
	ln := line{runs: runs, y: 100 * 64, ascender: 10 * 64, descender: -2 * 64, indent: 5 * 64}
	shape := RectangleShape{Width: 200 * 64}
	layout := &Layout{}
	emitLine(ln, shape, LayoutProperties{Align: Left}, true, layout)
	if len(layout.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(layout.Commands))
	}
	if layout.Commands[0].X != 5*64 {
		t.Fatalf("X = %v, want 5*64 (indent)", layout.Commands[0].X)
	}
	if layout.Commands[0].Y != 100*64 {
		t.Fatalf("Y = %v, want the line's baseline", layout.Commands[0].Y)
	}
}

func TestEmitLineRightAlignFlushesToRightEdge(t *testing.T) {
	runs := []Run{{Width: 20 * 64, Ascender: 10 * 64, Descender: -2 * 64, Fragments: []DrawFragment{
		{Layer: TopLayer, Kind: CmdGlyph},
	}}}
	ln := line{runs: runs, y: 0, ascender: 10 * 64, descender: -2 * 64}
	shape := RectangleShape{Width: 200 * 64}
	layout := &Layout{}
	emitLine(ln, shape, LayoutProperties{Align: Right}, true, layout)
	want := 200*64 - 20*64
	if layout.Commands[0].X != fixed.Int26_6(want) {
		t.Fatalf("X = %v, want %v (flush right)", layout.Commands[0].X, want)
	}
}

func TestEmitLineCentersContent(t *testing.T) {
	runs := []Run{{Width: 20 * 64, Ascender: 10 * 64, Descender: -2 * 64, Fragments: []DrawFragment{
		{Layer: TopLayer, Kind: CmdGlyph},
	}}}
	ln := line{runs: runs, y: 0, ascender: 10 * 64, descender: -2 * 64}
	shape := RectangleShape{Width: 200 * 64}
	layout := &Layout{}
	emitLine(ln, shape, LayoutProperties{Align: Center}, true, layout)
	want := (200*64 - 20*64) / 2
	if layout.Commands[0].X != fixed.Int26_6(want) {
		t.Fatalf("X = %v, want %v (centered)", layout.Commands[0].X, want)
	}
}

func TestEmitLineJustifiesNonLastLine(t *testing.T) {
	word := Run{Width: 20 * 64, Ascender: 10 * 64, Descender: -2 * 64, Fragments: []DrawFragment{{Layer: TopLayer, Kind: CmdGlyph}}}
	space := Run{Width: 10 * 64, IsSpace: true, Ascender: 10 * 64, Descender: -2 * 64}
	runs := []Run{word, space, word}
	ln := line{runs: runs, y: 0, ascender: 10 * 64, descender: -2 * 64, forced: false}
	shape := RectangleShape{Width: 100 * 64}
	layout := &Layout{}
	emitLine(ln, shape, LayoutProperties{Align: JustifyLeft}, false, layout)
	if len(layout.Commands) != 2 {
		t.Fatalf("got %d commands, want 2 glyph commands", len(layout.Commands))
	}
	// contentWidth = 50; spaceLeft = 50; spaceAdder = 50 (one space run).
	if layout.Commands[0].X != 0 {
		t.Fatalf("first word X = %v, want 0", layout.Commands[0].X)
	}
	wantSecond := 20*64 + 10*64 + 50*64
	if layout.Commands[1].X != fixed.Int26_6(wantSecond) {
		t.Fatalf("second word X = %v, want %v (widened by spaceAdder)", layout.Commands[1].X, wantSecond)
	}
}

func TestEmitLineDoesNotJustifyLastLine(t *testing.T) {
	word := Run{Width: 20 * 64, Ascender: 10 * 64, Descender: -2 * 64, Fragments: []DrawFragment{{Layer: TopLayer, Kind: CmdGlyph}}}
	space := Run{Width: 10 * 64, IsSpace: true, Ascender: 10 * 64, Descender: -2 * 64}
	runs := []Run{word, space, word}
	ln := line{runs: runs, y: 0, ascender: 10 * 64, descender: -2 * 64}
	shape := RectangleShape{Width: 100 * 64}
	layout := &Layout{}
	emitLine(ln, shape, LayoutProperties{Align: JustifyLeft}, true, layout)
	wantSecond := 20*64 + 10*64
	if layout.Commands[1].X != fixed.Int26_6(wantSecond) {
		t.Fatalf("second word X = %v, want %v (no justification on last line)", layout.Commands[1].X, wantSecond)
	}
}

func TestEmitLineShadowLayersEmitBeforeTopLayer(t *testing.T) {
	run := Run{Width: 10 * 64, Ascender: 10 * 64, Descender: -2 * 64, Fragments: []DrawFragment{
		{Layer: TopLayer, Kind: CmdGlyph, Color: [4]uint8{255, 255, 255, 255}},
		{Layer: 0, Kind: CmdGlyph, Color: [4]uint8{0, 0, 0, 128}},
	}}
	ln := line{runs: []Run{run}, y: 0, ascender: 10 * 64, descender: -2 * 64}
	shape := RectangleShape{Width: 100 * 64}
	layout := &Layout{}
	emitLine(ln, shape, LayoutProperties{Align: Left}, true, layout)
	if len(layout.Commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(layout.Commands))
	}
	if layout.Commands[0].Color != ([4]uint8{0, 0, 0, 128}) {
		t.Fatal("shadow layer should be emitted first")
	}
	if layout.Commands[1].Color != ([4]uint8{255, 255, 255, 255}) {
		t.Fatal("the run's own paint (TopLayer) should be emitted last")
	}
}

func TestEmitLineSetsFirstBaselineOnce(t *testing.T) {
	run := Run{Width: 10 * 64, Ascender: 10 * 64, Descender: -2 * 64}
	shape := RectangleShape{Width: 100 * 64}
	layout := &Layout{}
	emitLine(line{runs: []Run{run}, y: 50 * 64, ascender: 10 * 64, descender: -2 * 64}, shape, LayoutProperties{}, false, layout)
	emitLine(line{runs: []Run{run}, y: 200 * 64, ascender: 10 * 64, descender: -2 * 64}, shape, LayoutProperties{}, true, layout)
	if layout.FirstBaseline != 50*64 {
		t.Fatalf("FirstBaseline = %v, want the first line's baseline (50*64)", layout.FirstBaseline)
	}
}

func TestEmitLineLinkRectsTranslatedAndMerged(t *testing.T) {
	run := Run{
		Width: 10 * 64, Ascender: 10 * 64, Descender: -2 * 64,
		Links: []linkFragment{{linkID: 1, rect: Rect{X: 0, Y: -10 * 64, Width: 10 * 64, Height: 12 * 64}}},
	}
	shape := RectangleShape{Width: 100 * 64}
	layout := &Layout{}
	props := LayoutProperties{Align: Left, URLs: []string{"https://example.invalid"}}
	emitLine(line{runs: []Run{run}, y: 50 * 64, ascender: 10 * 64, descender: -2 * 64}, shape, props, true, layout)
	if len(layout.Links) != 1 {
		t.Fatalf("got %d links, want 1", len(layout.Links))
	}
	if layout.Links[0].URL != "https://example.invalid" {
		t.Fatalf("link URL = %q", layout.Links[0].URL)
	}
	if layout.Links[0].Rects[0].Y != 50*64-10*64 {
		t.Fatalf("link rect Y = %v, want translated by the line's baseline", layout.Links[0].Rects[0].Y)
	}
}
