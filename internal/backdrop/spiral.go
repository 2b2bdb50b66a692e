package backdrop

import "math"

// SpiralPhase is the rotation offset of spiral i at time t.
func SpiralPhase(t float64, i int) float64 {
	return math.Mod(t+float64(i)*SpiralPhaseStep, 2*math.Pi)
}

// SpiralAlpha oscillates in [0.01, 0.05].
func SpiralAlpha(t float64, i int) float64 {
	return SpiralBaseAlpha + SpiralAlphaSwing*math.Sin(2*t+float64(i))
}

// spiralSteps is the number of samples in [0, SpiralSweep).
var spiralSteps = int(math.Ceil(SpiralSweep / SpiralAngleStep))

// SpiralRenderer draws the decorative overlay. It reads nothing but the
// loop time and the surface size.
type SpiralRenderer struct {
	pts []Point
}

// Trace samples one archimedean spiral around (cx, cy) reaching maxR at the
// end of the sweep. The returned slice is reused by the next call.
func (sr *SpiralRenderer) Trace(cx, cy, maxR, phase float64) []Point {
	sr.pts = sr.pts[:0]
	for k := 0; k < spiralSteps; k++ {
		a := float64(k) * SpiralAngleStep
		r := a / SpiralSweep * maxR
		sr.pts = append(sr.pts, Point{
			X: cx + math.Cos(a+phase)*r,
			Y: cy + math.Sin(a+phase)*r,
		})
	}
	return sr.pts
}

func (sr *SpiralRenderer) Draw(s Surface, t float64) {
	w, h := s.Size()
	cx, cy := float64(w)/2, float64(h)/2
	maxR := float64(max(w, h)) * SpiralRadiusScale
	for i := 0; i < SpiralCount; i++ {
		pts := sr.Trace(cx, cy, maxR, SpiralPhase(t, i))
		s.StrokePath(pts, SpiralWidth, Palette.Spiral.Alpha(SpiralAlpha(t, i)))
	}
}
