package bicubic

import (
	"sync"

	errorsGo "github.com/go-errors/errors"
)

// opaque is the alpha value reported for pixels of 3 channel images.
const opaque = 255

// Pixel holds the four channel values of one pixel while it is being computed.
type Pixel struct {
	R, G, B, A float64
}

// raster is a flat, row-major, channel-interleaved 8-bit pixel buffer.
type raster struct {
	width    int
	height   int
	channels int
	pix      []uint8
}

func newRaster(width, height, channels int) *raster {
	return &raster{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]uint8, width*height*channels),
	}
}

// offset is the only place where coordinates are turned into buffer indices.
// Out of range coordinates are a broken caller contract and panic.
func (r *raster) offset(x, y int) int {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		panic(errorsGo.Errorf("pixel (%d,%d) out of bounds for %dx%d raster", x, y, r.width, r.height))
	}
	off := (y*r.width + x) * r.channels
	if off+r.channels > len(r.pix) {
		panic(errorsGo.Errorf("pixel (%d,%d) beyond buffer of length %d", x, y, len(r.pix)))
	}
	return off
}

// at reads a pixel. It never mutates and is safe for concurrent use.
func (r *raster) at(x, y int) Pixel {
	off := r.offset(x, y)
	p := Pixel{
		R: float64(r.pix[off]),
		G: float64(r.pix[off+1]),
		B: float64(r.pix[off+2]),
		A: opaque,
	}
	if r.channels == 4 {
		p.A = float64(r.pix[off+3])
	}
	return p
}

// canvas is the destination of a resize. set is its only mutator.
type canvas struct {
	mu  sync.Mutex
	dst *raster
}

func newCanvas(width, height, channels int) *canvas {
	return &canvas{dst: newRaster(width, height, channels)}
}

func (c *canvas) set(x, y int, p Pixel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	off := c.dst.offset(x, y)
	c.dst.pix[off] = clamp(p.R)
	c.dst.pix[off+1] = clamp(p.G)
	c.dst.pix[off+2] = clamp(p.B)
	if c.dst.channels == 4 {
		c.dst.pix[off+3] = clamp(p.A)
	}
}
