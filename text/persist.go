// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"encoding/json"

	"golang.org/x/image/math/fixed"

	"paratext/font"
)

// persistedFont is one entry in a persisted layout's font table, keyed by
// the font's resource description and pixel size (§6, "Persisted layout
// format"). Font identity round-trips through this pair, not a pointer.
type persistedFont struct {
	Description string          `json:"description"`
	PxPerEm     fixed.Int26_6   `json:"pxPerEm"`
}

type persistedCommand struct {
	Kind  string        `json:"kind"`
	X     fixed.Int26_6 `json:"x"`
	Y     fixed.Int26_6 `json:"y"`
	Width fixed.Int26_6 `json:"width,omitempty"`
	Height fixed.Int26_6 `json:"height,omitempty"`
	Color *[4]uint8      `json:"color,omitempty"`
	Blur  fixed.Int26_6  `json:"blur,omitempty"`
	Font  int            `json:"font,omitempty"` // 1-based index into the font table; 0 means none
	Glyph uint32         `json:"glyph,omitempty"`
	URL   string         `json:"url,omitempty"`
}

type persistedLink struct {
	URL   string `json:"url"`
	Rects []persistedRect `json:"rects"`
}

type persistedRect struct {
	X, Y, Width, Height fixed.Int26_6
}

func (r persistedRect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]fixed.Int26_6{r.X, r.Y, r.Width, r.Height})
}

func (r *persistedRect) UnmarshalJSON(b []byte) error {
	var a [4]fixed.Int26_6
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	r.X, r.Y, r.Width, r.Height = a[0], a[1], a[2], a[3]
	return nil
}

type persistedLayout struct {
	Left          fixed.Int26_6 `json:"left,omitempty"`
	Right         fixed.Int26_6 `json:"right,omitempty"`
	Height        fixed.Int26_6 `json:"height,omitempty"`
	FirstBaseline fixed.Int26_6 `json:"firstBaseline,omitempty"`

	Fonts    []persistedFont     `json:"fonts,omitempty"`
	Commands []persistedCommand  `json:"commands"`
	Links    []persistedLink     `json:"links,omitempty"`
}

var commandKindNames = map[CommandKind]string{
	CmdGlyph: "glyph",
	CmdRect:  "rect",
	CmdImage: "image",
}

var commandKindValues = map[string]CommandKind{
	"glyph": CmdGlyph,
	"rect":  CmdRect,
	"image": CmdImage,
}

// Marshal encodes l as the persisted JSON layout format (§6). Font handles
// are deduplicated into a table keyed by (resource description, pixel
// size); commands reference it by 1-based index, 0 meaning no font.
func Marshal(l *Layout) ([]byte, error) {
	p := persistedLayout{
		Left: l.Left, Right: l.Right, Height: l.Height,
		FirstBaseline: l.FirstBaseline,
	}
	fontIndex := map[*font.Handle]int{}
	fontIndexOf := func(h *font.Handle) int {
		if h == nil {
			return 0
		}
		if idx, ok := fontIndex[h]; ok {
			return idx
		}
		p.Fonts = append(p.Fonts, persistedFont{
			Description: h.Resource().Description(),
			PxPerEm:     h.PxPerEm(),
		})
		idx := len(p.Fonts)
		fontIndex[h] = idx
		return idx
	}
	for _, c := range l.Commands {
		pc := persistedCommand{
			Kind: commandKindNames[c.Kind],
			X: c.X, Y: c.Y, Width: c.Width, Height: c.Height,
			Blur: c.Blur, URL: c.URL,
			Font:  fontIndexOf(c.Font),
			Glyph: uint32(c.Glyph),
		}
		if c.Color != ([4]uint8{}) {
			col := c.Color
			pc.Color = &col
		}
		p.Commands = append(p.Commands, pc)
	}
	for _, link := range l.Links {
		pl := persistedLink{URL: link.URL}
		for _, r := range link.Rects {
			pl.Rects = append(pl.Rects, persistedRect{r.X, r.Y, r.Width, r.Height})
		}
		p.Links = append(p.Links, pl)
	}
	return json.Marshal(p)
}

// Unmarshal decodes the persisted JSON layout format back into a Layout.
// resolve maps a font table entry's (description, pxPerEm) back to an open
// *font.Handle; it is called at most once per distinct table entry.
func Unmarshal(data []byte, resolve func(description string, pxPerEm fixed.Int26_6) *font.Handle) (*Layout, error) {
	var p persistedLayout
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	handles := make([]*font.Handle, len(p.Fonts)+1) // index 0 == nil
	for i, pf := range p.Fonts {
		if resolve != nil {
			handles[i+1] = resolve(pf.Description, pf.PxPerEm)
		}
	}
	l := &Layout{
		Left: p.Left, Right: p.Right, Height: p.Height,
		FirstBaseline: p.FirstBaseline,
		hasBaseline:   true,
		hasBounds:     true,
	}
	for _, pc := range p.Commands {
		cmd := DrawCommand{
			Kind: commandKindValues[pc.Kind],
			X: pc.X, Y: pc.Y, Width: pc.Width, Height: pc.Height,
			Blur: pc.Blur, URL: pc.URL,
			Glyph: font.GlyphIndex(pc.Glyph),
		}
		if pc.Color != nil {
			cmd.Color = *pc.Color
		}
		if pc.Font >= 1 && pc.Font < len(handles) {
			cmd.Font = handles[pc.Font]
		}
		l.Commands = append(l.Commands, cmd)
	}
	for _, pl := range p.Links {
		link := LinkInfo{URL: pl.URL}
		for _, r := range pl.Rects {
			link.Rects = append(link.Rects, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
		}
		l.Links = append(l.Links, link)
	}
	return l, nil
}
