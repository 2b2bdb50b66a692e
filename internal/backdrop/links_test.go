package backdrop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinkAlpha(t *testing.T) {
	tests := []struct {
		name   string
		d      float64
		alpha  float64
		linked bool
	}{
		{"coincident", 0, 0.3, true},
		{"half", 75, 0.15, true},
		{"near threshold", 149.999, 0.3 * (1 - 149.999/150), true},
		{"at threshold", 150, 0, false},
		{"beyond", 400, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := LinkAlpha(tc.d)
			require.Equal(t, tc.linked, ok)
			require.InDelta(t, tc.alpha, a, 1e-12)
		})
	}
}

func TestComputeLinksPairs(t *testing.T) {
	ps := []Particle{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 300, Y: 0},
		{X: 300, Y: 0},
		{X: 0, Y: 150},
	}
	var lr LinkRenderer
	links := lr.Compute(ps, 800, 600)

	require.Len(t, links, 2)
	require.Equal(t, 0, links[0].A)
	require.Equal(t, 1, links[0].B)
	require.InDelta(t, 0.1, links[0].Alpha, 1e-12)

	// (0,4) sits exactly at the threshold and is skipped.
	require.Equal(t, 2, links[1].A)
	require.Equal(t, 3, links[1].B)
	require.Equal(t, 0.0, links[1].Dist)
	require.InDelta(t, LinkMaxAlpha, links[1].Alpha, 1e-12)
}

func TestLinkDrawStrokes(t *testing.T) {
	ps := []Particle{{X: 10, Y: 10}, {X: 40, Y: 50}, {X: 700, Y: 500}}
	s := newRecorder(800, 600)
	var lr LinkRenderer
	lr.Draw(s, ps)

	require.Equal(t, 1, s.count(opLine))
	o := s.ops[0]
	require.Equal(t, LinkWidth, o.width)
	require.Equal(t, Palette.Link.Alpha((1-50.0/150)*0.3), o.c)
}

func bruteLinks(ps []Particle) []Link {
	var out []Link
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if a, ok := LinkAlpha(d); ok {
				out = append(out, Link{A: i, B: j, Dist: d, Alpha: a})
			}
		}
	}
	return out
}

func TestGridMatchesPairScan(t *testing.T) {
	s := newRecorder(1000, 700)
	f := newField(s, 600, NewRand(11))
	// Out of bounds, as after a shrinking resize.
	f.P[0].X, f.P[0].Y = -80, 900
	f.P[1].X, f.P[1].Y = 1140, -20
	f.P[2].X, f.P[2].Y = 1100, -60

	var lr LinkRenderer
	got := lr.Compute(f.P, 1000, 700)
	want := bruteLinks(f.P)
	require.NotEmpty(t, want)
	require.Equal(t, want, got)
}

func TestGridSmallSurface(t *testing.T) {
	var g neighborGrid
	ps := []Particle{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 500, Y: 500}}
	g.build(ps, 0, 0, LinkDistance)
	require.Equal(t, 1, g.cols)
	require.Equal(t, 1, g.rows)

	pairs := 0
	g.candidates(func(i, j int) { pairs++ })
	require.Equal(t, 3, pairs)
}

func BenchmarkLinksPairScan(b *testing.B) {
	f := NewField(newRecorder(1920, 1080), NewRand(1))
	var lr LinkRenderer
	for i := 0; i < b.N; i++ {
		lr.Compute(f.P, 1920, 1080)
	}
}

func BenchmarkLinksGrid(b *testing.B) {
	f := newField(newRecorder(1920, 1080), 2000, NewRand(1))
	var lr LinkRenderer
	for i := 0; i < b.N; i++ {
		lr.Compute(f.P, 1920, 1080)
	}
}
