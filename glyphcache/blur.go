// SPDX-License-Identifier: Unlicense OR MIT

package glyphcache

import "math"

// boxBlurSizes computes three box-blur widths (device pixels) that
// approximate a Gaussian of the given standard deviation, via the method
// in P. Kovesi, "Fast Almost-Gaussian Filtering" (DICTA 2010) — the
// standard three-box construction spec.md §4.5 calls for ("a fixed
// three-pass box-blur approximation of a Gaussian, widths derived from
// the desired standard deviation").
func boxBlurSizes(sigma float64) [3]int {
	if sigma <= 0 {
		return [3]int{}
	}
	const n = 3
	wIdeal := math.Sqrt(12*sigma*sigma/n + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	if wl < 1 {
		wl = 1
	}
	wu := wl + 2
	mIdeal := (12*sigma*sigma - n*float64(wl*wl) - 4*n*float64(wl) - 3*n) / (-4*float64(wl) - 4)
	m := int(math.Round(mIdeal))
	var sizes [3]int
	for i := 0; i < n; i++ {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

// BlurAlpha box-blurs an alpha mask in place across three passes,
// approximating a Gaussian blur of standard deviation sigmaPx device
// pixels.
func BlurAlpha(pix []byte, width, height, stride int, sigmaPx float64) {
	if width <= 0 || height <= 0 {
		return
	}
	for _, size := range boxBlurSizes(sigmaPx) {
		if size <= 0 {
			continue
		}
		radius := size / 2
		boxBlurHorizontal(pix, width, height, stride, radius)
		boxBlurVertical(pix, width, height, stride, radius)
	}
}

func boxBlurHorizontal(pix []byte, width, height, stride, radius int) {
	if radius <= 0 {
		return
	}
	row := make([]byte, width)
	for y := 0; y < height; y++ {
		base := y * stride
		copy(row, pix[base:base+width])
		for x := 0; x < width; x++ {
			sum, count := 0, 0
			for k := -radius; k <= radius; k++ {
				xi := x + k
				if xi < 0 || xi >= width {
					continue
				}
				sum += int(row[xi])
				count++
			}
			pix[base+x] = byte(sum / count)
		}
	}
}

func boxBlurVertical(pix []byte, width, height, stride, radius int) {
	if radius <= 0 {
		return
	}
	col := make([]byte, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			col[y] = pix[y*stride+x]
		}
		for y := 0; y < height; y++ {
			sum, count := 0, 0
			for k := -radius; k <= radius; k++ {
				yi := y + k
				if yi < 0 || yi >= height {
					continue
				}
				sum += int(col[yi])
				count++
			}
			pix[y*stride+x] = byte(sum / count)
		}
	}
}
