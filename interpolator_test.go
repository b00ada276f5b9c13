package bicubic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	t.Run("return the sample itself for uniform input", func(t *testing.T) {
		for _, v := range []float64{0, 1, 17, 127.5, 254, 255} {
			for _, u := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
				assert.Equal(t, v, Interpolate(v, v, v, v, u), "v=%v t=%v", v, u)
			}
		}
	})

	t.Run("hit p1 at t=0 and p2 at t=1", func(t *testing.T) {
		samples := [][4]float64{
			{0, 100, 200, 255},
			{255, 0, 255, 0},
			{12.5, 80, 3, 199},
		}
		for _, p := range samples {
			assert.Equal(t, p[1], Interpolate(p[0], p[1], p[2], p[3], 0))
			assert.InDelta(t, p[2], Interpolate(p[0], p[1], p[2], p[3], 1), 1e-9)
		}
	})

	t.Run("reproduce a straight line", func(t *testing.T) {
		assert.InDelta(t, 150, Interpolate(0, 100, 200, 300, 0.5), 1e-9)
		assert.InDelta(t, 125, Interpolate(0, 100, 200, 300, 0.25), 1e-9)
	})

	t.Run("match the midpoint of the catmull-rom spline", func(t *testing.T) {
		assert.InDelta(t, 152.8125, Interpolate(0, 100, 200, 255, 0.5), 1e-9)
	})

	t.Run("two point form duplicates the outer samples", func(t *testing.T) {
		for _, u := range []float64{0, 0.3, 0.5, 1} {
			assert.Equal(t, Interpolate(40, 40, 90, 90, u), Interpolate2(40, 90, u))
		}
		assert.InDelta(t, 65, Interpolate2(40, 90, 0.5), 1e-9)
	})
}

func TestSamplingCoords(t *testing.T) {
	t.Run("stay inside the axis and keep nearest second", func(t *testing.T) {
		for axisLength := 1; axisLength <= 12; axisLength++ {
			for nearest := range axisLength {
				c := SamplingCoords(nearest, axisLength)
				assert.Equal(t, nearest, c[1])
				for i, v := range c {
					assert.True(t, v >= 0 && v < axisLength,
						"coord %d = %d out of [0,%d) for nearest %d", i, v, axisLength, nearest)
				}
			}
		}
	})

	tests := []struct {
		name       string
		nearest    int
		axisLength int
		want       [4]int
	}{
		{"interior", 3, 10, [4]int{2, 3, 4, 5}},
		{"low edge repeats nearest", 0, 10, [4]int{0, 0, 1, 2}},
		{"next to high edge falls back to nearest-1", 8, 10, [4]int{7, 8, 9, 7}},
		{"high edge", 9, 10, [4]int{8, 9, 9, 8}},
		{"two sample axis at start", 0, 2, [4]int{0, 0, 1, 0}},
		{"single sample axis", 0, 1, [4]int{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SamplingCoords(tt.nearest, tt.axisLength))
		})
	}
}

func TestComputePixel(t *testing.T) {
	src := &raster{width: 3, height: 2, channels: 3, pix: []uint8{
		10, 20, 30, 40, 50, 60, 70, 80, 90,
		15, 25, 35, 45, 55, 65, 75, 85, 95,
	}}

	t.Run("zero offsets read the source pixel", func(t *testing.T) {
		got := computePixel(src, 1, 1, 3, 2)
		assert.Equal(t, Pixel{R: 45, G: 55, B: 65, A: 255}, got)
	})

	t.Run("alpha of 3 channel images stays opaque", func(t *testing.T) {
		got := computePixel(src, 3, 1, 7, 5)
		assert.Equal(t, float64(255), got.A)
	})

	t.Run("panic when the mapping leaves the source", func(t *testing.T) {
		assert.Panics(t, func() { computePixel(src, 6, 0, 3, 2) })
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, uint8(0), clamp(-31.875))
	assert.Equal(t, uint8(255), clamp(286.875))
	assert.Equal(t, uint8(128), clamp(127.5))
	assert.Equal(t, uint8(7), clamp(7.2))
}
