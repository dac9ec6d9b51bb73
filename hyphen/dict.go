// SPDX-License-Identifier: Unlicense OR MIT

// Package hyphen loads OpenOffice-format hyphenation dictionaries and
// computes hyphenation points inside words, per spec.md §4.2 and §6
// ("Hyphenation dictionary format").
//
// No hyphenation library appears anywhere in the retrieved example corpus
// (teacher or otherwise); this package is a from-scratch, standard-library
// implementation of Liang's pattern-based hyphenation algorithm, the
// classic TeX/libhyphen/OpenOffice ".dic" format, grounded on
// original_source/src/hyphen/hyphen.h and
// original_source/include/stll/hyphendictionaries.h. The original
// implements this with a compiled finite-state machine for speed; this
// package instead matches patterns by direct substring lookup in a map,
// which is simpler and asymptotically worse but behaviorally equivalent
// for the dictionary sizes layout engines typically load. See DESIGN.md.
package hyphen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ErrDictionaryLoad reports a malformed hyphenation dictionary (§7,
// "Dictionary-load"). Registration of the offending dictionary fails; the
// caller's layout proceeds without it.
var ErrDictionaryLoad = errors.New("hyphen: malformed dictionary")

// Dict is a loaded hyphenation dictionary for one or more languages.
type Dict struct {
	patterns map[string][]int8
	lhmin    int
	rhmin    int
}

// Load parses an OpenOffice ".dic" hyphenation dictionary from r. The file
// must be UTF-8 encoded; its first line is conventionally a charset
// declaration (ignored beyond requiring it be present).
func Load(r io.Reader) (*Dict, error) {
	d := &Dict{patterns: make(map[string][]int8), lhmin: 2, rhmin: 2}
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, fmt.Errorf("%w: empty dictionary", ErrDictionaryLoad)
	}
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if err := d.loadLine(line); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDictionaryLoad, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDictionaryLoad, err)
	}
	return d, nil
}

func (d *Dict) loadLine(line string) error {
	switch {
	case strings.HasPrefix(line, "LEFTHYPHENMIN"):
		n, err := strconv.Atoi(strings.TrimSpace(line[len("LEFTHYPHENMIN"):]))
		if err != nil {
			return err
		}
		d.lhmin = n
		return nil
	case strings.HasPrefix(line, "RIGHTHYPHENMIN"):
		n, err := strconv.Atoi(strings.TrimSpace(line[len("RIGHTHYPHENMIN"):]))
		if err != nil {
			return err
		}
		d.rhmin = n
		return nil
	case strings.HasPrefix(line, "COMPOUNDLEFTHYPHENMIN"), strings.HasPrefix(line, "COMPOUNDRIGHTHYPHENMIN"),
		strings.HasPrefix(line, "NOHYPHEN"), strings.HasPrefix(line, "CASE"), strings.HasPrefix(line, "NEXTLEVEL"):
		// Compound-word, no-hyphenate-list, case-folding and multi-level
		// directives are not exercised by this engine's hyphenation
		// contract (§4.2 only requires ALLOW_BREAK opportunities inside
		// word interiors); recognized and ignored rather than rejected as
		// malformed.
		return nil
	}
	return d.loadPattern(line)
}

// loadPattern parses one pattern line, e.g. ".hy2ph3en1", into a run of
// letters and the breakpoint weights (0-9) interleaved between them, and
// records it keyed by the letters alone.
func (d *Dict) loadPattern(line string) error {
	var letters strings.Builder
	weights := []int8{0}
	for _, r := range line {
		if r >= '0' && r <= '9' {
			weights[len(weights)-1] = int8(r - '0')
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		letters.WriteRune(unicode.ToLower(r))
		weights = append(weights, 0)
	}
	key := letters.String()
	if key == "" {
		return fmt.Errorf("pattern %q has no letters", line)
	}
	d.patterns[key] = weights
	return nil
}

// Hyphenate returns the hyphenation points for word: positions p (1 <=
// p < len(word)) such that a line may break between word[p-1] and word[p],
// honoring the dictionary's left/right hyphen minima.
func (d *Dict) Hyphenate(word []rune) []int {
	if len(word) < d.lhmin+d.rhmin {
		return nil
	}
	lower := make([]rune, len(word))
	for i, r := range word {
		lower[i] = unicode.ToLower(r)
	}
	padded := append([]rune{'.'}, append(lower, '.')...)
	scores := make([]int8, len(padded)+1)
	for start := 0; start < len(padded); start++ {
		for end := start + 1; end <= len(padded); end++ {
			weights, ok := d.patterns[string(padded[start:end])]
			if !ok {
				continue
			}
			for i, w := range weights {
				pos := start + i
				if pos < len(scores) && w > scores[pos] {
					scores[pos] = w
				}
			}
		}
	}
	var points []int
	for i := d.lhmin; i <= len(word)-d.rhmin; i++ {
		// word gap i (break between word[i-1] and word[i]) corresponds to
		// padded[i] vs padded[i+1], i.e. padded-gap position i+1 (the
		// leading '.' shifts every word index up by one in padded).
		if scores[i+1] > 0 && scores[i+1]%2 != 0 {
			points = append(points, i)
		}
	}
	return points
}
