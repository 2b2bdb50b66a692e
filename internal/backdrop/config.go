package backdrop

import "math"

// Particle field.
const (
	ParticleCount  = 100
	ParticleMaxVel = 0.25 // per axis, px/tick
	ParticleMinR   = 1.0
	ParticleSpanR  = 2.0 // radius in [ParticleMinR, ParticleMinR+ParticleSpanR)
	ParticleMinA   = 0.2
	ParticleSpanA  = 0.5 // opacity in [ParticleMinA, ParticleMinA+ParticleSpanA)
)

// Proximity links.
const (
	LinkDistance = 150.0
	LinkMaxAlpha = 0.3
	LinkWidth    = 0.5

	// Fields larger than this use the bucket grid instead of the full pair scan.
	LinkGridThreshold = 128
)

// Spiral overlay.
const (
	SpiralCount       = 3
	SpiralSweep       = math.Pi * 4
	SpiralAngleStep   = 0.1
	SpiralPhaseStep   = 2.0
	SpiralRadiusScale = 0.6
	SpiralWidth       = 2.0
	SpiralBaseAlpha   = 0.03
	SpiralAlphaSwing  = 0.02
)

// Loop.
const (
	TimeStep  = 0.005
	FadeAlpha = 0.05
)

// Composition of the final frame.
const (
	LayerOpacity   = 0.8
	VignetteAlpha  = 0.4
	GlowExtentStop = 0.5

	// Diagonal highlight band: white at ShimmerAlpha on the midline, fading
	// out ShimmerHalfWidth either side, laid over a gradient twice the frame.
	ShimmerAlpha     = 0.1 * 0.3
	ShimmerHalfWidth = 0.2
)
