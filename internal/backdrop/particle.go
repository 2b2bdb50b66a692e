package backdrop

// Particle is a point mass drifting at constant velocity inside the surface.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Radius  float64 // [1..3)
	Opacity float64 // [0.2..0.7)
}

func newParticle(r *Rand, w, h float64) Particle {
	return Particle{
		X:       r.Float64() * w,
		Y:       r.Float64() * h,
		VX:      r.RangeF(-ParticleMaxVel, ParticleMaxVel),
		VY:      r.RangeF(-ParticleMaxVel, ParticleMaxVel),
		Radius:  r.RangeF(ParticleMinR, ParticleMinR+ParticleSpanR),
		Opacity: r.RangeF(ParticleMinA, ParticleMinA+ParticleSpanA),
	}
}

// Step advances one tick and reflects off the [0,w]x[0,h] bounds. The
// position is never clamped; it may overshoot by one velocity step.
func (p *Particle) Step(w, h float64) {
	p.X += p.VX
	p.Y += p.VY
	p.VX = reflect(p.X, p.VX, w)
	p.VY = reflect(p.Y, p.VY, h)
}

// reflect points v back toward the interior when pos has left [0, max].
func reflect(pos, v, max float64) float64 {
	switch {
	case pos < 0 && v < 0:
		return -v
	case pos > max && v > 0:
		return -v
	}
	return v
}
