package font

// Collection resolves a requested Font to the closest registered FontFace,
// per §2 component 2 and §4.7 (grounded on the teacher's faceOrderer /
// closestFont / weightDistance in text/gotext.go).
type Collection struct {
	def    Font
	faces  map[Font]FontFace
	order  []Font
	hasDef bool
}

// Register adds a face for the given font description. The first face
// registered becomes the collection's default.
func (c *Collection) Register(fnt Font, handle *Handle) {
	if c.faces == nil {
		c.faces = make(map[Font]FontFace)
	}
	if !c.hasDef {
		c.def = fnt
		c.hasDef = true
	}
	c.faces[fnt] = FontFace{Font: fnt, Handle: handle}
	c.order = append(c.order, fnt)
}

// Closest resolves want to the nearest registered FontFace, per the
// ordering in §4.7: exact match; same typeface/variant/style nearest
// weight (ties toward lighter, then nearest stretch); Regular style in the
// same typeface; the default face.
func (c *Collection) Closest(want Font) (FontFace, bool) {
	if face, ok := c.faces[want]; ok {
		return face, true
	}
	if best, ok := c.closestInTypeface(want); ok {
		return c.faces[best], true
	}
	regular := want
	regular.Style = Regular
	if best, ok := c.closestInTypeface(regular); ok {
		return c.faces[best], true
	}
	if c.hasDef {
		return c.faces[c.def], true
	}
	return FontFace{}, false
}

func (c *Collection) closestInTypeface(want Font) (Font, bool) {
	var (
		found bool
		match Font
	)
	for _, cf := range c.order {
		if cf.Typeface != want.Typeface || cf.Variant != want.Variant || cf.Style != want.Style {
			continue
		}
		if !found {
			found = true
			match = cf
			continue
		}
		cDist := weightDistance(want.Weight, cf.Weight)
		mDist := weightDistance(want.Weight, match.Weight)
		switch {
		case cDist < mDist:
			match = cf
		case cDist == mDist && cf.Weight < match.Weight:
			match = cf
		case cDist == mDist && cf.Weight == match.Weight:
			if stretchDistance(want.Stretch, cf.Stretch) < stretchDistance(want.Stretch, match.Stretch) {
				match = cf
			}
		}
	}
	return match, found
}

// weightDistance returns the distance value between two font weights.
func weightDistance(a, b Weight) int {
	ai, bi := int(a)+400, int(b)+400
	if ai < bi {
		return bi - ai
	}
	return ai - bi
}

func stretchDistance(a, b Stretch) int {
	ai, bi := int(a), int(b)
	if ai < bi {
		return bi - ai
	}
	return ai - bi
}
