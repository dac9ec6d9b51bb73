// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// line is one committed, not-yet-reordered/justified line of runs plus the
// metrics used to place it (§4.4).
type line struct {
	runs                   []Run
	y, ascender, descender fixed.Int26_6
	indent                 fixed.Int26_6
	forced                 bool
	firstOfParagraph       bool
}

// suppressSoftHyphen clears a soft-hyphen run's width and fragments: it is
// only ever rendered when it is the final run of a committed line (§4.4).
func suppressSoftHyphen(r Run) Run {
	r.Width = 0
	r.Fragments = nil
	return r
}

// candidateWidth sums run widths for a prospective line, excluding every
// non-terminal soft hyphen (only the line's last run may render as one),
// plus indent when applicable.
func candidateWidth(runs []Run, indent fixed.Int26_6) fixed.Int26_6 {
	var w fixed.Int26_6
	for i, r := range runs {
		if r.IsSoftHyphen && i != len(runs)-1 {
			continue
		}
		w += r.Width
	}
	return w + indent
}

func lineMetrics(runs []Run) (ascender, descender fixed.Int26_6) {
	first := true
	for _, r := range runs {
		if first {
			ascender, descender = r.Ascender, r.Descender
			first = false
			continue
		}
		if r.Ascender > ascender {
			ascender = r.Ascender
		}
		if r.Descender < descender {
			descender = r.Descender
		}
	}
	return ascender, descender
}

// nextChunkEnd returns the index just past the next run-builder chunk
// starting at i: the chunk extends until a run carrying an ALLOW/MUST
// break, or until the run just before a space whose own trailing break is
// ALLOW/MUST (§4.4, step 2).
func nextChunkEnd(runs []Run, i int) int {
	j := i
	for j < len(runs) {
		j++
		if runs[j-1].Break == AllowBreak || runs[j-1].Break == MustBreak {
			break
		}
		if j < len(runs) && runs[j].IsSpace && (runs[j].Break == AllowBreak || runs[j].Break == MustBreak) {
			break
		}
	}
	return j
}

// fitLinesGreedy implements the §4.4 greedy algorithm.
func fitLinesGreedy(runs []Run, shape Shape, indent fixed.Int26_6, center bool, startY fixed.Int26_6) []line {
	var lines []line
	y := startY
	i := 0
	firstOfParagraph := true
	forcedPrev := false
	for i < len(runs) {
		for i < len(runs) && runs[i].IsSpace {
			i++
		}
		if i >= len(runs) {
			break
		}
		useIndent := (firstOfParagraph || forcedPrev) && !center
		var ind fixed.Int26_6
		if useIndent {
			ind = indent
		}

		var committed []Run
		forced := false
		for i < len(runs) {
			j := nextChunkEnd(runs, i)
			chunk := runs[i:j]
			asc, desc := lineMetrics(append(append([]Run{}, committed...), chunk...))
			avail := shape.InnerRight(y, y+asc-desc) - shape.InnerLeft(y, y+asc-desc)
			width := candidateWidth(append(append([]Run{}, committed...), chunk...), ind)
			if width <= avail || len(committed) == 0 {
				committed = append(committed, chunk...)
				i = j
				if chunk[len(chunk)-1].Break == MustBreak {
					forced = true
					break
				}
				continue
			}
			break
		}
		for idx := 0; idx < len(committed)-1; idx++ {
			if committed[idx].IsSoftHyphen {
				committed[idx] = suppressSoftHyphen(committed[idx])
			}
		}
		asc, desc := lineMetrics(committed)
		lines = append(lines, line{runs: committed, y: y + asc, ascender: asc, descender: desc, indent: ind, forced: forced, firstOfParagraph: firstOfParagraph})
		y += asc - desc
		firstOfParagraph = false
		forcedPrev = forced
	}
	return lines
}

// fitLinesOptimizing implements the §4.4 optimizing (Knuth-Plass-style)
// fitter: forced breaks partition the run list into independent segments,
// and within each segment a forward dynamic program picks the break set
// minimizing total badness. Available width is evaluated at each forced
// segment's starting y for every candidate (the only concrete Shape is
// rectangular and does not vary with y); ties prefer fewer hyphenations,
// then earlier breaks, matching greedy whenever greedy is already optimal.
func fitLinesOptimizing(runs []Run, shape Shape, indent fixed.Int26_6, center bool, startY fixed.Int26_6) []line {
	segments := splitForcedSegments(runs)
	var lines []line
	y := startY
	firstOfParagraph := true
	for segIdx, seg := range segments {
		segLines := optimizeSegment(seg, shape, indent, center, y, firstOfParagraph)
		for i := range segLines {
			segLines[i].y = y + segLines[i].ascender
			y += segLines[i].ascender - segLines[i].descender
		}
		lines = append(lines, segLines...)
		firstOfParagraph = false
		_ = segIdx
	}
	return lines
}

func splitForcedSegments(runs []Run) [][]Run {
	var segs [][]Run
	start := 0
	for i, r := range runs {
		if r.Break == MustBreak {
			segs = append(segs, runs[start:i+1])
			start = i + 1
		}
	}
	if start < len(runs) || len(segs) == 0 {
		segs = append(segs, runs[start:])
	}
	return segs
}

func breakCandidateIndices(seg []Run) []int {
	var idx []int
	for i, r := range seg {
		if r.Break == AllowBreak || r.Break == MustBreak {
			idx = append(idx, i+1)
		}
	}
	if len(idx) == 0 || idx[len(idx)-1] != len(seg) {
		idx = append(idx, len(seg))
	}
	return idx
}

func lineBadness(width, avail fixed.Int26_6, hyphenated, prevHyphenated bool) float64 {
	if avail <= 0 {
		avail = 1
	}
	remaining := float64(avail-width) / float64(avail)
	b := remaining * remaining * 1000
	if width > avail {
		b += 1e6 * float64(width-avail)
	}
	if hyphenated {
		b += 50
		if prevHyphenated {
			b += 100
		}
	}
	return b
}

func optimizeSegment(seg []Run, shape Shape, indent fixed.Int26_6, center bool, bandY fixed.Int26_6, firstOfParagraph bool) []line {
	// Skip leading spaces, matching the greedy fitter's step 1.
	start := 0
	for start < len(seg) && seg[start].IsSpace {
		start++
	}
	seg = seg[start:]
	if len(seg) == 0 {
		return nil
	}
	candidates := breakCandidateIndices(seg)
	n := len(candidates)
	const inf = math.MaxFloat64
	best := make([]float64, n+1)
	from := make([]int, n+1)
	hyph := make([]bool, n+1)
	hyphCount := make([]int, n+1)
	for i := 1; i <= n; i++ {
		best[i] = inf
	}
	for k := 1; k <= n; k++ {
		end := candidates[k-1]
		for j := 0; j < k; j++ {
			if best[j] == inf {
				continue
			}
			from0 := 0
			if j > 0 {
				from0 = candidates[j-1]
			}
			chunk := seg[from0:end]
			if len(chunk) == 0 {
				continue
			}
			ind := fixed.Int26_6(0)
			if j == 0 && !center {
				ind = indent
			}
			asc, desc := lineMetrics(chunk)
			avail := shape.InnerRight(bandY, bandY+asc-desc) - shape.InnerLeft(bandY, bandY+asc-desc)
			width := candidateWidth(chunk, ind)
			isHy := chunk[len(chunk)-1].IsSoftHyphen
			b := lineBadness(width, avail, isHy, hyph[j])
			total := best[j] + b
			count := hyphCount[j]
			if isHy {
				count++
			}
			if total < best[k] || (total == best[k] && count < hyphCount[k]) {
				best[k], from[k], hyph[k], hyphCount[k] = total, j, isHy, count
			}
		}
	}
	// Reconstruct the chosen break sequence.
	var cuts []int
	for k := n; k > 0; k = from[k] {
		cuts = append([]int{candidates[k-1]}, cuts...)
	}
	var lines []line
	prevEnd := 0
	firstLine := true
	for _, end := range cuts {
		committed := append([]Run{}, seg[prevEnd:end]...)
		for idx := 0; idx < len(committed)-1; idx++ {
			if committed[idx].IsSoftHyphen {
				committed[idx] = suppressSoftHyphen(committed[idx])
			}
		}
		asc, desc := lineMetrics(committed)
		forced := len(committed) > 0 && committed[len(committed)-1].Break == MustBreak
		ind := fixed.Int26_6(0)
		if firstLine && !center {
			ind = indent
		}
		lines = append(lines, line{runs: committed, ascender: asc, descender: desc, indent: ind, forced: forced, firstOfParagraph: firstLine && firstOfParagraph})
		prevEnd = end
		firstLine = false
	}
	return lines
}
