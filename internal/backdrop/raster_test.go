package backdrop

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

var opaqueWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func alphaAt(r *Raster, x, y int) uint8 {
	return r.Image().RGBAAt(x, y).A
}

func TestRasterFillFades(t *testing.T) {
	r := NewRaster(4, 4)
	r.Fill(Palette.Fade.Alpha(FadeAlpha))
	require.Equal(t, color.RGBA{A: 13}, r.Image().RGBAAt(2, 2))

	for i := 0; i < 200; i++ {
		r.Fill(Palette.Fade.Alpha(FadeAlpha))
	}
	require.Greater(t, alphaAt(r, 0, 0), uint8(200))
}

func TestRasterFillCircle(t *testing.T) {
	r := NewRaster(100, 100)
	r.FillCircle(50, 50, 3, opaqueWhite)
	require.GreaterOrEqual(t, alphaAt(r, 50, 50), uint8(254))
	require.GreaterOrEqual(t, alphaAt(r, 49, 49), uint8(254))
	require.Zero(t, alphaAt(r, 0, 0))
	require.Zero(t, alphaAt(r, 60, 50))
}

func TestRasterTranslucentCircle(t *testing.T) {
	r := NewRaster(20, 20)
	r.FillCircle(10, 10, 2.5, Palette.Particle.Alpha(0.5))
	c := r.Image().RGBAAt(10, 10)
	require.InDelta(t, 128, int(c.A), 1)
	require.InDelta(t, 100, int(c.R), 2)
}

func TestRasterClipsShapes(t *testing.T) {
	r := NewRaster(100, 100)
	before := r.Snapshot()

	r.FillCircle(-100, -100, 3, opaqueWhite)
	r.StrokeLine(-50, 500, -10, 900, 2, opaqueWhite)
	require.Equal(t, before.Pix, r.Image().Pix)

	require.NotPanics(t, func() {
		r.FillCircle(0, 0, 3, opaqueWhite)
		r.FillCircle(100, 100, 3, opaqueWhite)
		r.StrokePath([]Point{{X: -50, Y: -50}, {X: 150, Y: 150}, {X: 160, Y: -40}}, 2, opaqueWhite)
	})
	require.GreaterOrEqual(t, alphaAt(r, 0, 0), uint8(254))
}

func TestRasterStrokeLine(t *testing.T) {
	r := NewRaster(100, 100)
	r.StrokeLine(10, 50, 90, 50, 2, opaqueWhite)
	require.GreaterOrEqual(t, alphaAt(r, 50, 49), uint8(254))
	require.GreaterOrEqual(t, alphaAt(r, 50, 50), uint8(254))
	require.Zero(t, alphaAt(r, 50, 60))
	require.Zero(t, alphaAt(r, 5, 50))
}

func TestRasterThinLineIsFaint(t *testing.T) {
	r := NewRaster(100, 100)
	r.StrokeLine(10, 50, 90, 50, LinkWidth, opaqueWhite)
	a := alphaAt(r, 50, 49) + alphaAt(r, 50, 50)
	require.InDelta(t, 128, int(a), 2)
}

func TestRasterStrokePathJointsCoveredOnce(t *testing.T) {
	r := NewRaster(100, 100)
	half := Palette.Spiral.Alpha(0.5)
	r.StrokePath([]Point{{X: 10, Y: 50}, {X: 50, Y: 50}, {X: 50, Y: 90}}, 4, half)
	require.InDelta(t, 128, int(alphaAt(r, 49, 50)), 1)
	require.InDelta(t, 128, int(alphaAt(r, 50, 50)), 1)
}

func TestRasterIgnoresDegenerateInput(t *testing.T) {
	r := NewRaster(10, 10)
	before := r.Snapshot()
	r.FillCircle(5, 5, 0, opaqueWhite)
	r.FillCircle(5, 5, 2, color.NRGBA{})
	r.StrokePath([]Point{{X: 1, Y: 1}}, 2, opaqueWhite)
	r.StrokeLine(3, 3, 3, 3, 2, opaqueWhite)
	require.Equal(t, before.Pix, r.Image().Pix)
}

func TestRasterResizeClears(t *testing.T) {
	r := NewRaster(30, 30)
	r.FillCircle(15, 15, 5, opaqueWhite)
	r.Resize(50, 40)

	w, h := r.Size()
	require.Equal(t, 50, w)
	require.Equal(t, 40, h)
	for _, b := range r.Image().Pix {
		require.Zero(t, b)
	}

	r.Resize(-1, 0)
	w, h = r.Size()
	require.Zero(t, w)
	require.Zero(t, h)
	require.NotPanics(t, func() {
		r.Fill(opaqueWhite)
		r.FillCircle(0, 0, 2, opaqueWhite)
	})
}
