// SPDX-License-Identifier: Unlicense OR MIT

package text

import "golang.org/x/image/math/fixed"

// Shape abstracts the region content is laid out into, exposing the inner
// and outer left/right edges at a vertical band (§3, "Shape"; §9,
// "Polymorphism": modeled as an interface with a rectangle variant).
type Shape interface {
	// InnerLeft and InnerRight bound the content area for the band
	// [top, bottom), in 1/64 px.
	InnerLeft(top, bottom fixed.Int26_6) fixed.Int26_6
	InnerRight(top, bottom fixed.Int26_6) fixed.Int26_6
	// OuterLeft and OuterRight bound the reported bounding box for the
	// same band.
	OuterLeft(top, bottom fixed.Int26_6) fixed.Int26_6
	OuterRight(top, bottom fixed.Int26_6) fixed.Int26_6
}

// RectangleShape is the concrete rectangular Shape: inner and outer edges
// are both 0 and Width, independent of the band.
type RectangleShape struct {
	Width fixed.Int26_6
}

func (r RectangleShape) InnerLeft(_, _ fixed.Int26_6) fixed.Int26_6  { return 0 }
func (r RectangleShape) InnerRight(_, _ fixed.Int26_6) fixed.Int26_6 { return r.Width }
func (r RectangleShape) OuterLeft(_, _ fixed.Int26_6) fixed.Int26_6  { return 0 }
func (r RectangleShape) OuterRight(_, _ fixed.Int26_6) fixed.Int26_6 { return r.Width }
