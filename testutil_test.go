package bicubic

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// newPatternBuffer returns a deterministic pseudo random buffer.
func newPatternBuffer(width, height, channels int, seed uint64) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	buf := make([]byte, width*height*channels)
	for i := range buf {
		buf[i] = uint8(rng.UintN(256))
	}
	return buf
}

func newPatternImage(t testing.TB, width, height, channels int, opts ...Option) *Image {
	t.Helper()
	img, err := NewFromBuffer(width, height, channels, newPatternBuffer(width, height, channels, uint64(width*31+height)), opts...)
	require.NoError(t, err)
	return img
}

// newPNG encodes a width x height image with the given alpha everywhere.
func newPNG(t testing.TB, width, height int, alpha uint8) []byte {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 40), uint8(y * 40), 200, alpha})
		}
	}
	b := new(bytes.Buffer)
	require.NoError(t, png.Encode(b, m))
	return b.Bytes()
}
