package backdrop

// Field owns the particle collection for one mounted visualization. It keeps
// a non-owning reference to the surface to read the current bounds.
type Field struct {
	surface Surface
	P       []Particle
}

func NewField(s Surface, r *Rand) *Field {
	return newField(s, ParticleCount, r)
}

func newField(s Surface, n int, r *Rand) *Field {
	w, h := s.Size()
	f := &Field{
		surface: s,
		P:       make([]Particle, 0, n),
	}
	for i := 0; i < n; i++ {
		f.P = append(f.P, newParticle(r, float64(w), float64(h)))
	}
	return f
}

func (f *Field) Update() {
	w, h := f.surface.Size()
	fw, fh := float64(w), float64(h)
	for i := range f.P {
		f.P[i].Step(fw, fh)
	}
}

func (f *Field) Draw(s Surface) {
	for i := range f.P {
		p := &f.P[i]
		s.FillCircle(p.X, p.Y, p.Radius, Palette.Particle.Alpha(p.Opacity))
	}
}
