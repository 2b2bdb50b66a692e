package backdrop

import (
	"errors"
	"image/color"
)

// ErrSurfaceUnavailable is returned by hosts that cannot hand out a drawing surface.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Point is a surface-pixel coordinate.
type Point struct {
	X, Y float64
}

// Surface is the 2D drawable the visualization paints onto. All drawing is
// source-over with straight-alpha colours. Resize discards the contents.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)

	Fill(c color.NRGBA)
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	StrokePath(pts []Point, width float64, c color.NRGBA)
}
