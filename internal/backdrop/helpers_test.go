package backdrop

import (
	"context"
	"errors"
	"image/color"
)

type opKind int

const (
	opFill opKind = iota
	opCircle
	opLine
	opPath
)

type op struct {
	kind  opKind
	c     color.NRGBA
	width float64
	n     int
}

// recorder is a Surface that only logs calls.
type recorder struct {
	w, h int
	ops  []op
	hook func(op)
}

func newRecorder(w, h int) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Resize(w, h int)  { r.w, r.h = w, h }

func (r *recorder) log(o op) {
	r.ops = append(r.ops, o)
	if r.hook != nil {
		r.hook(o)
	}
}

func (r *recorder) Fill(c color.NRGBA) { r.log(op{kind: opFill, c: c}) }

func (r *recorder) FillCircle(x, y, rad float64, c color.NRGBA) {
	r.log(op{kind: opCircle, c: c})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.log(op{kind: opLine, c: c, width: width, n: 2})
}

func (r *recorder) StrokePath(pts []Point, width float64, c color.NRGBA) {
	r.log(op{kind: opPath, c: c, width: width, n: len(pts)})
}

func (r *recorder) count(k opKind) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == k {
			n++
		}
	}
	return n
}

// fakeHost hands out a fixed surface and records listener traffic.
type fakeHost struct {
	surface    Surface
	surfaceErr error
	resizeErr  error
	w, h       int

	listeners map[int]func(w, h int)
	nextID    int
	frames    int
	onFrame   func(n int) error
}

func newFakeHost(s Surface, w, h int) *fakeHost {
	return &fakeHost{surface: s, w: w, h: h, listeners: make(map[int]func(w, h int))}
}

func (f *fakeHost) Surface() (Surface, error) { return f.surface, f.surfaceErr }
func (f *fakeHost) Size() (int, int)          { return f.w, f.h }

func (f *fakeHost) OnResize(fn func(w, h int)) (func(), error) {
	if f.resizeErr != nil {
		return nil, f.resizeErr
	}
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() { delete(f.listeners, id) }, nil
}

func (f *fakeHost) resize(w, h int) {
	f.w, f.h = w, h
	for _, fn := range f.listeners {
		fn(w, h)
	}
}

func (f *fakeHost) NextFrame(ctx context.Context) error {
	f.frames++
	if f.onFrame != nil {
		return f.onFrame(f.frames)
	}
	return nil
}

// stopAfter returns a frame hook that closes the host after n frames.
func stopAfter(n int) func(int) error {
	return func(frame int) error {
		if frame >= n {
			return ErrHostClosed
		}
		return nil
	}
}

var errBoom = errors.New("boom")
