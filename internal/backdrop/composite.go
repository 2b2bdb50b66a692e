package backdrop

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// glow is a radial colour spot fading to transparent at GlowExtentStop of
// its farthest-corner extent. Centres are fractions of the frame size.
type glow struct {
	col     RGB
	alpha   float64
	cx, cy  float64
	ellipse bool
}

// Painted bottom to top.
var backdropGlows = []glow{
	{col: Palette.GlowBlue, alpha: 0.2, cx: 0.5, cy: 0.5, ellipse: true},
	{col: Palette.GlowPink, alpha: 0.3, cx: 0.8, cy: 0.7, ellipse: true},
	{col: Palette.GlowViolet, alpha: 0.4, cx: 0.2, cy: 0.3, ellipse: true},
	{col: Palette.GlowOrchid, alpha: 0.4 * 0.6, cx: 0.3, cy: 0.5},
	{col: Palette.GlowRose, alpha: 0.3 * 0.4, cx: 0.7, cy: 0.5},
}

// Composer builds final frames: static gradient base, the particle layer at
// LayerOpacity, then a vignette. Base and vignette are cached per size.
type Composer struct {
	Backdrop bool

	w, h     int
	base     *image.RGBA
	vignette *image.Alpha
	out      *image.RGBA
}

func NewComposer(backdrop bool) *Composer {
	return &Composer{Backdrop: backdrop}
}

// Compose returns the w x h frame for layer. A nil or mismatched layer yields
// the static background only. The returned image is reused by the next call.
func (c *Composer) Compose(layer *image.RGBA, w, h int) *image.RGBA {
	if w != c.w || h != c.h || c.out == nil {
		c.rebuild(w, h)
	}
	copy(c.out.Pix, c.base.Pix)
	r := c.out.Bounds()

	if layer != nil && layer.Bounds() == r {
		opacity := uint32(255)
		if c.Backdrop {
			opacity = uint32(math.Round(LayerOpacity * 255))
		}
		blendOver(c.out.Pix, layer.Pix, opacity)
	}
	if c.vignette != nil {
		draw.DrawMask(c.out, r, image.Black, image.Point{}, c.vignette, image.Point{}, draw.Over)
	}
	return c.out
}

func (c *Composer) rebuild(w, h int) {
	c.w, c.h = max(w, 0), max(h, 0)
	rect := image.Rect(0, 0, c.w, c.h)
	c.out = image.NewRGBA(rect)
	c.base = image.NewRGBA(rect)
	c.vignette = nil

	if !c.Backdrop {
		draw.Draw(c.base, rect, image.Black, image.Point{}, draw.Src)
		return
	}

	c.vignette = image.NewAlpha(rect)
	fw, fh := float64(c.w), float64(c.h)
	halfDiag := math.Hypot(fw/2, fh/2)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			col := baseGradient(px, py, fw, fh)
			for _, g := range backdropGlows {
				col = g.over(col, px, py, fw, fh)
			}
			if a := shimmerAlpha(px, py, fw, fh); a > 0 {
				for k := range col {
					col[k] = col[k]*(1-a) + 255*a
				}
			}
			i := c.base.PixOffset(x, y)
			c.base.Pix[i+0] = uint8(clampF(col[0], 0, 255) + 0.5)
			c.base.Pix[i+1] = uint8(clampF(col[1], 0, 255) + 0.5)
			c.base.Pix[i+2] = uint8(clampF(col[2], 0, 255) + 0.5)
			c.base.Pix[i+3] = 255

			rho := 0.0
			if halfDiag > 0 {
				rho = math.Hypot(px-fw/2, py-fh/2) / halfDiag
			}
			c.vignette.Pix[c.vignette.PixOffset(x, y)] = uint8(clampF(rho, 0, 1)*VignetteAlpha*255 + 0.5)
		}
	}
}

// blendOver composites premultiplied src over dst with a constant opacity.
func blendOver(dst, src []uint8, opacity uint32) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += 4 {
		sa := uint32(src[i+3]) * opacity / 255
		if sa == 0 {
			continue
		}
		inv := 255 - sa
		for k := 0; k < 3; k++ {
			s := uint32(src[i+k]) * opacity / 255
			dst[i+k] = uint8(min(s+uint32(dst[i+k])*inv/255, 255))
		}
		dst[i+3] = uint8(min(sa+uint32(dst[i+3])*inv/255, 255))
	}
}

// baseGradient is the 135 degree linear gradient through Palette.Base.
func baseGradient(x, y, w, h float64) [3]float64 {
	t := 0.0
	if w+h > 0 {
		t = clampF((x+y)/(w+h), 0, 1)
	}
	seg := t * float64(len(Palette.Base)-1)
	i := min(int(seg), len(Palette.Base)-2)
	c := lerpRGB(Palette.Base[i], Palette.Base[i+1], seg-float64(i))
	return [3]float64{float64(c.R), float64(c.G), float64(c.B)}
}

func (g glow) over(dst [3]float64, x, y, w, h float64) [3]float64 {
	cx, cy := g.cx*w, g.cy*h
	sx, sy := math.Max(cx, w-cx), math.Max(cy, h-cy)

	var rho float64
	if g.ellipse {
		rx, ry := sx*math.Sqrt2, sy*math.Sqrt2
		if rx == 0 || ry == 0 {
			return dst
		}
		rho = math.Hypot((x-cx)/rx, (y-cy)/ry)
	} else {
		r := math.Hypot(sx, sy)
		if r == 0 {
			return dst
		}
		rho = math.Hypot(x-cx, y-cy) / r
	}
	if rho >= GlowExtentStop {
		return dst
	}
	a := g.alpha * (1 - rho/GlowExtentStop)
	dst[0] = dst[0]*(1-a) + float64(g.col.R)*a
	dst[1] = dst[1]*(1-a) + float64(g.col.G)*a
	dst[2] = dst[2]*(1-a) + float64(g.col.B)*a
	return dst
}

// shimmerAlpha is the white highlight at (x, y). The 45 degree gradient spans
// 2w x 2h anchored at the top-left, so its midline crosses the frame from
// the top-left corner toward the bottom-right.
func shimmerAlpha(x, y, w, h float64) float64 {
	if w+h <= 0 {
		return 0
	}
	t := (x + 2*h - y) / (2 * (w + h))
	d := math.Abs(t - 0.5)
	if d >= ShimmerHalfWidth {
		return 0
	}
	return ShimmerAlpha * (1 - d/ShimmerHalfWidth)
}
