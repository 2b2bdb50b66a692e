package backdrop

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// circleK places cubic control points for a quarter circle.
const circleK = 0.5522847498

// Raster is a CPU Surface backed by an *image.RGBA. Shapes are rasterized
// into their clipped bounding box only.
type Raster struct {
	img *image.RGBA
	z   vector.Rasterizer
	src image.Uniform
}

func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the pixel buffer; the previous contents are dropped.
func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image exposes the live pixel buffer. It is replaced on Resize.
func (r *Raster) Image() *image.RGBA { return r.img }

// Snapshot returns a copy of the current pixels.
func (r *Raster) Snapshot() *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

func (r *Raster) Fill(c color.NRGBA) {
	if c.A == 0 {
		return
	}
	r.src.C = c
	draw.Draw(r.img, r.img.Bounds(), &r.src, image.Point{}, draw.Over)
}

func (r *Raster) FillCircle(x, y, rad float64, c color.NRGBA) {
	if rad <= 0 || c.A == 0 {
		return
	}
	box, ok := r.clip(x-rad, y-rad, x+rad, y+rad)
	if !ok {
		return
	}
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	cx, cy := float32(x-ox), float32(y-oy)
	rr := float32(rad)
	k := float32(circleK) * rr

	r.z.Reset(box.Dx(), box.Dy())
	r.z.MoveTo(cx+rr, cy)
	r.z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	r.z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	r.z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	r.z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	r.z.ClosePath()
	r.paint(box, c)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.StrokePath([]Point{{X: x0, Y: y0}, {X: x1, Y: y1}}, width, c)
}

// StrokePath strokes an open polyline with butt caps. Segment quads share one
// path so overlaps at the joints are covered once.
func (r *Raster) StrokePath(pts []Point, width float64, c color.NRGBA) {
	if len(pts) < 2 || width <= 0 || c.A == 0 {
		return
	}
	hw := width * 0.5
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	box, ok := r.clip(minX-hw, minY-hw, maxX+hw, maxY+hw)
	if !ok {
		return
	}
	ox, oy := float64(box.Min.X), float64(box.Min.Y)

	r.z.Reset(box.Dx(), box.Dy())
	drawn := false
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		r.z.MoveTo(float32(a.X+nx-ox), float32(a.Y+ny-oy))
		r.z.LineTo(float32(b.X+nx-ox), float32(b.Y+ny-oy))
		r.z.LineTo(float32(b.X-nx-ox), float32(b.Y-ny-oy))
		r.z.LineTo(float32(a.X-nx-ox), float32(a.Y-ny-oy))
		r.z.ClosePath()
		drawn = true
	}
	if drawn {
		r.paint(box, c)
	}
}

func (r *Raster) paint(box image.Rectangle, c color.NRGBA) {
	r.src.C = c
	r.z.DrawOp = draw.Over
	r.z.Draw(r.img, box, &r.src, image.Point{})
}

// clip returns the integer pixel box covering the float bounds, intersected
// with the buffer. The rasterizer does not clip its destination rectangle.
func (r *Raster) clip(x0, y0, x1, y1 float64) (image.Rectangle, bool) {
	box := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1))+1, int(math.Ceil(y1))+1,
	).Intersect(r.img.Bounds())
	return box, !box.Empty()
}
