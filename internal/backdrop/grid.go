package backdrop

import "math"

// neighborGrid buckets particle indices into square cells of the link
// distance so only adjacent cells need pair checks. Particles outside the
// surface are clamped into the border cells, which keeps every pair closer
// than one cell within adjacent buckets.
type neighborGrid struct {
	cell       float64
	cols, rows int
	cells      [][]int
}

func (g *neighborGrid) build(ps []Particle, w, h, cell float64) {
	g.cell = cell
	g.cols = max(1, int(math.Ceil(w/cell)))
	g.rows = max(1, int(math.Ceil(h/cell)))

	n := g.cols * g.rows
	if cap(g.cells) < n {
		g.cells = make([][]int, n)
	}
	g.cells = g.cells[:n]
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}

	for i := range ps {
		cx := clamp(int(math.Floor(ps[i].X/cell)), 0, g.cols-1)
		cy := clamp(int(math.Floor(ps[i].Y/cell)), 0, g.rows-1)
		k := cy*g.cols + cx
		g.cells[k] = append(g.cells[k], i)
	}
}

// Forward half of the 3x3 neighbourhood; visits each unordered cell pair once.
var gridForward = [4][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// candidates calls fn once for every unordered pair in the same or adjacent cells.
func (g *neighborGrid) candidates(fn func(i, j int)) {
	for cy := 0; cy < g.rows; cy++ {
		for cx := 0; cx < g.cols; cx++ {
			home := g.cells[cy*g.cols+cx]
			for a := 0; a < len(home); a++ {
				for b := a + 1; b < len(home); b++ {
					fn(home[a], home[b])
				}
			}
			for _, off := range gridForward {
				nx, ny := cx+off[0], cy+off[1]
				if nx < 0 || nx >= g.cols || ny >= g.rows {
					continue
				}
				for _, i := range home {
					for _, j := range g.cells[ny*g.cols+nx] {
						fn(i, j)
					}
				}
			}
		}
	}
}
