package backdrop

import (
	"cmp"
	"math"
	"slices"
)

// Link is an edge of the proximity graph between particles A < B.
type Link struct {
	A, B  int
	Dist  float64
	Alpha float64
}

// LinkAlpha maps a pair distance to stroke alpha. Pairs at or beyond
// LinkDistance are not linked.
func LinkAlpha(d float64) (float64, bool) {
	if d >= LinkDistance {
		return 0, false
	}
	return (1 - d/LinkDistance) * LinkMaxAlpha, true
}

// LinkRenderer draws the proximity graph. Nothing is carried between frames
// except reusable buffers.
type LinkRenderer struct {
	links []Link
	grid  neighborGrid
}

// Compute returns all links ordered by (A, B). The returned slice is reused
// by the next call.
func (lr *LinkRenderer) Compute(ps []Particle, w, h int) []Link {
	lr.links = lr.links[:0]
	if len(ps) <= LinkGridThreshold {
		for i := range ps {
			for j := i + 1; j < len(ps); j++ {
				lr.add(ps, i, j)
			}
		}
		return lr.links
	}

	lr.grid.build(ps, float64(w), float64(h), LinkDistance)
	lr.grid.candidates(func(i, j int) { lr.add(ps, i, j) })
	slices.SortFunc(lr.links, func(a, b Link) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})
	return lr.links
}

func (lr *LinkRenderer) add(ps []Particle, i, j int) {
	d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
	a, ok := LinkAlpha(d)
	if !ok {
		return
	}
	if i > j {
		i, j = j, i
	}
	lr.links = append(lr.links, Link{A: i, B: j, Dist: d, Alpha: a})
}

func (lr *LinkRenderer) Draw(s Surface, ps []Particle) {
	w, h := s.Size()
	for _, l := range lr.Compute(ps, w, h) {
		p, q := &ps[l.A], &ps[l.B]
		s.StrokeLine(p.X, p.Y, q.X, q.Y, LinkWidth, Palette.Link.Alpha(l.Alpha))
	}
}
