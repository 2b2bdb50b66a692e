package backdrop

import "image/color"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Alpha returns the colour with a straight (non-premultiplied) alpha in [0..1].
func (c RGB) Alpha(a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clampF(a, 0, 1)*255 + 0.5)}
}

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{R: lerpU8(a.R, b.R, t), G: lerpU8(a.G, b.G, t), B: lerpU8(a.B, b.B, t)}
}

var Palette = struct {
	Particle RGB
	Link     RGB
	Spiral   RGB
	Fade     RGB

	// Backdrop gradient stops at 0, 25, 50, 75 and 100%.
	Base [5]RGB

	GlowViolet RGB
	GlowPink   RGB
	GlowBlue   RGB
	GlowOrchid RGB
	GlowRose   RGB
}{
	Particle: RGB{R: 200, G: 150, B: 255},
	Link:     RGB{R: 180, G: 130, B: 255},
	Spiral:   RGB{R: 220, G: 180, B: 255},
	Fade:     RGB{R: 0, G: 0, B: 0},

	Base: [5]RGB{
		{R: 0x1a, G: 0x0b, B: 0x2e},
		{R: 0x16, G: 0x21, B: 0x3e},
		{R: 0x0f, G: 0x34, B: 0x60},
		{R: 0x53, G: 0x34, B: 0x83},
		{R: 0x7b, G: 0x2c, B: 0xbf},
	},

	GlowViolet: RGB{R: 147, G: 51, B: 234},
	GlowPink:   RGB{R: 219, G: 39, B: 119},
	GlowBlue:   RGB{R: 59, G: 130, B: 246},
	GlowOrchid: RGB{R: 168, G: 85, B: 247},
	GlowRose:   RGB{R: 236, G: 72, B: 153},
}
