// SPDX-License-Identifier: Unlicense OR MIT

package hyphen

import "strings"

// Registry maps BCP-47-ish language tags to loaded dictionaries, with
// prefix fallback (e.g. "en-us" falls back to "en" if no exact entry
// exists). Grounded on original_source/src/hyphendictionaries.cpp's
// getHyphenDict, which performs the same fallback against its own
// tag-to-dictionary map.
type Registry struct {
	dicts map[string]*Dict
}

// NewRegistry returns an empty registry; dictionaries are added with Add.
func NewRegistry() *Registry {
	return &Registry{dicts: make(map[string]*Dict)}
}

// Add registers d under lang, e.g. "en-us" or "de". An existing entry for
// the same tag is replaced.
func (r *Registry) Add(lang string, d *Dict) {
	r.dicts[strings.ToLower(lang)] = d
}

// lookup resolves lang to a dictionary, falling back to progressively
// shorter "-"-separated prefixes (e.g. "en-us" -> "en"), the way
// getHyphenDict walks from the full tag down to its primary subtag.
func (r *Registry) lookup(lang string) *Dict {
	lang = strings.ToLower(lang)
	for {
		if d, ok := r.dicts[lang]; ok {
			return d
		}
		i := strings.LastIndex(lang, "-")
		if i < 0 {
			return nil
		}
		lang = lang[:i]
	}
}

// Hyphenate finds hyphenation points in word for the given language tag,
// matching the exact signature consumed by text.applyHyphenation. ok is
// false when no dictionary covers lang; points is nil (not an error) when
// a dictionary was found but offers no hyphenation points for word.
func (r *Registry) Hyphenate(lang string, word []rune) (points []int, ok bool) {
	d := r.lookup(lang)
	if d == nil {
		return nil, false
	}
	return d.Hyphenate(word), true
}
