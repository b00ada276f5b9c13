package bicubic

import (
	"fmt"
	"math"
)

// offsetTolerance is the distance from zero below which a fractional offset
// is treated as an exact hit on a source sample.
const offsetTolerance = 1e-7

// Interpolate evaluates the Catmull-Rom cubic through four equally spaced
// samples at offset t in [0, 1] between p1 and p2.
// p0 and p3 are the outer neighbours of p1 and p2.
func Interpolate(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t

	term3 := (-0.5*p0 + 1.5*p1 - 1.5*p2 + 0.5*p3) * t3
	term2 := (p0 - 2.5*p1 + 2*p2 - 0.5*p3) * t2
	term1 := (-0.5*p0 + 0.5*p2) * t

	return term3 + term2 + term1 + p1
}

// Interpolate2 is Interpolate with the outer neighbours replaced by the
// nearest known sample, for use when only two samples exist.
func Interpolate2(p1, p2, t float64) float64 {
	return Interpolate(p1, p1, p2, p2, t)
}

// SamplingCoords returns the four coordinates along one axis whose samples
// feed the cubic kernel around nearest. It requires 0 <= nearest < axisLength.
//
// Index 1 is always nearest. Near the low edge index 0 repeats nearest, near
// the high edge index 2 repeats nearest and index 3 falls back to nearest-1
// (or nearest when the axis is shorter than two samples on that side).
func SamplingCoords(nearest, axisLength int) [4]int {
	c := [4]int{nearest - 1, nearest, nearest + 1, nearest + 2}
	if c[0] < 0 {
		c[0] = nearest
	}
	if c[2] >= axisLength {
		c[2] = nearest
	}
	if c[3] >= axisLength {
		c[3] = nearest - 1
		if c[3] < 0 {
			c[3] = nearest
		}
	}
	return c
}

// interpolatePixels applies the kernel to each channel independently and
// clamps the results to the 8-bit range.
func interpolatePixels(p *[4]Pixel, t float64) Pixel {
	return Pixel{
		R: clampFloat(Interpolate(p[0].R, p[1].R, p[2].R, p[3].R, t)),
		G: clampFloat(Interpolate(p[0].G, p[1].G, p[2].G, p[3].G, t)),
		B: clampFloat(Interpolate(p[0].B, p[1].B, p[2].B, p[3].B, t)),
		A: clampFloat(Interpolate(p[0].A, p[1].A, p[2].A, p[3].A, t)),
	}
}

// interpolateAlongY samples column x around row yNear.
func interpolateAlongY(src *raster, x, yNear int, yOffset float64) Pixel {
	if isZero(yOffset) {
		return src.at(x, yNear)
	}

	var samples [4]Pixel
	for i, y := range SamplingCoords(yNear, src.height) {
		samples[i] = src.at(x, y)
	}
	return interpolatePixels(&samples, yOffset)
}

// computePixel returns the value of destination pixel (i, j) of a
// dstW x dstH resize of src. The cubic kernel runs along Y first, then X.
func computePixel(src *raster, i, j, dstW, dstH int) Pixel {
	// transformed x and y in source space
	x := float64(src.width) / float64(dstW) * float64(i)
	y := float64(src.height) / float64(dstH) * float64(j)

	floorX := math.Floor(x)
	floorY := math.Floor(y)
	xOffset := x - floorX
	yOffset := y - floorY
	xNear := int(floorX)
	yNear := int(floorY)

	if xNear >= src.width || yNear >= src.height {
		panic(fmt.Sprintf("nearest source pixel (%d,%d) outside %dx%d source for destination (%d,%d)",
			xNear, yNear, src.width, src.height, i, j))
	}

	var columns [4]Pixel
	for k, xc := range SamplingCoords(xNear, src.width) {
		columns[k] = interpolateAlongY(src, xc, yNear, yOffset)
	}

	if isZero(xOffset) {
		c := columns[1]
		return Pixel{R: clampFloat(c.R), G: clampFloat(c.G), B: clampFloat(c.B), A: clampFloat(c.A)}
	}
	return interpolatePixels(&columns, xOffset)
}

func isZero(v float64) bool {
	return math.Abs(v) <= offsetTolerance
}

// clampFloat limits v to [0, 255].
func clampFloat(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// clamp returns the uint8 value of v clamped to the range [0, 255]
func clamp(v float64) uint8 {
	if v > 255 { // overshoot
		return 255
	} else if v < 0 { // undershoot
		return 0
	} else {
		return uint8(math.Round(v))
	}
}
