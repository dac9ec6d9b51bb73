// SPDX-License-Identifier: Unlicense OR MIT

package text

import "golang.org/x/image/math/fixed"

// reorderForDisplay applies the UAX #9 reordering rule to a fitted line's
// runs: for each level from maxLevel down to 1, every maximal subspan whose
// runs carry that level or higher is reversed in place (§4.4, "Reordering").
func reorderForDisplay(runs []Run, maxLevel int) []Run {
	order := append([]Run{}, runs...)
	for level := maxLevel; level >= 1; level-- {
		i := 0
		for i < len(order) {
			if order[i].Level < level {
				i++
				continue
			}
			j := i
			for j < len(order) && order[j].Level >= level {
				j++
			}
			reverseRuns(order[i:j])
			i = j
		}
	}
	return order
}

func reverseRuns(s []Run) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// emitLine reorders, justifies and positions one fitted line, appending its
// drawing commands and link rectangles to layout (§4.4, "Justification and
// emission"). isLastLine suppresses justification on a paragraph's final
// visual line, matching ordinary typesetting practice.
func emitLine(ln line, shape Shape, props LayoutProperties, isLastLine bool, layout *Layout) {
	top := ln.y - ln.ascender
	bottom := ln.y - ln.descender
	availLeft := shape.InnerLeft(top, bottom)
	availRight := shape.InnerRight(top, bottom)
	avail := availRight - availLeft

	maxLevel := 0
	for _, r := range ln.runs {
		if r.Level > maxLevel {
			maxLevel = r.Level
		}
	}
	display := reorderForDisplay(ln.runs, maxLevel)

	var lineWidth fixed.Int26_6
	numSpaces := 0
	for _, r := range ln.runs {
		lineWidth += r.Width
		if r.IsSpace {
			numSpaces++
		}
	}
	spaceLeft := avail - ln.indent - lineWidth

	justified := (props.Align == JustifyLeft || props.Align == JustifyRight) &&
		!isLastLine && !ln.forced && numSpaces > 0

	var spaceAdder fixed.Int26_6
	if justified {
		spaceAdder = spaceLeft / fixed.Int26_6(numSpaces)
	}

	var originX fixed.Int26_6
	switch {
	case justified:
		originX = availLeft + ln.indent
	case props.Align == Right, props.Align == JustifyRight:
		originX = availLeft + spaceLeft
	case props.Align == Center:
		originX = availLeft + spaceLeft/2
	default: // Left, JustifyLeft (non-justified: last line, forced line, or no spaces)
		originX = availLeft + ln.indent
	}

	type placed struct {
		run *Run
		x   fixed.Int26_6
	}
	placedRuns := make([]placed, len(display))
	x := originX
	for i := range display {
		placedRuns[i] = placed{run: &display[i], x: x}
		w := display[i].Width
		if justified && display[i].IsSpace {
			w += spaceAdder
		}
		x += w
	}

	maxLayer := -1
	for _, r := range ln.runs {
		for _, f := range r.Fragments {
			if f.Layer > maxLayer {
				maxLayer = f.Layer
			}
		}
	}

	emitOne := func(p placed, layer int) {
		widen := fixed.Int26_6(0)
		if justified && p.run.IsSpace {
			widen = spaceAdder
		}
		for _, f := range p.run.Fragments {
			if f.Layer != layer {
				continue
			}
			w := f.Width
			if widen != 0 && f.Kind == CmdRect {
				w += widen
			}
			layout.Commands = append(layout.Commands, DrawCommand{
				Kind: f.Kind,
				X:    p.x + f.DX, Y: ln.y + f.DY,
				Width: w, Height: f.Height,
				Color: f.Color, Blur: f.Blur,
				Font: f.Font, Glyph: f.Glyph, URL: f.URL,
			})
		}
	}

	for layer := 0; layer <= maxLayer; layer++ {
		for _, p := range placedRuns {
			emitOne(p, layer)
		}
	}
	for _, p := range placedRuns {
		emitOne(p, TopLayer)
	}

	for _, p := range placedRuns {
		widen := fixed.Int26_6(0)
		if justified && p.run.IsSpace {
			widen = spaceAdder
		}
		for _, lf := range p.run.Links {
			if lf.linkID < 1 || lf.linkID-1 >= len(props.URLs) {
				continue
			}
			url := props.URLs[lf.linkID-1]
			if url == "" {
				continue
			}
			rect := Rect{
				X: p.x + lf.rect.X, Y: ln.y + lf.rect.Y,
				Width: lf.rect.Width + widen, Height: lf.rect.Height,
			}
			layout.addLink(url, rect)
		}
	}

	if !layout.hasBaseline {
		layout.setFirstBaseline(ln.y)
	}
	layout.unionBounds(shape.OuterLeft(top, bottom), shape.OuterRight(top, bottom), bottom)
}
