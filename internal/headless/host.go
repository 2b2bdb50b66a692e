// Package headless mounts the backdrop without a display: frames are paced
// by a rate limiter and the result is written out as an image.
package headless

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/time/rate"

	"ouroboros/internal/backdrop"
)

// Host is an offscreen viewport. Resize requests are queued and delivered
// at the next frame boundary so they never overlap a tick.
type Host struct {
	mu        sync.Mutex
	w, h      int
	pending   *image.Point
	listeners map[int]func(w, h int)
	nextID    int

	raster  *backdrop.Raster
	limiter *rate.Limiter
	budget  int
	frames  int
}

// New creates a w x h host. fps <= 0 disables pacing; budget > 0 closes the
// host after that many frames.
func New(w, h int, fps float64, budget int) *Host {
	limit := rate.Inf
	if fps > 0 && !math.IsInf(fps, 1) {
		limit = rate.Limit(fps)
	}
	return &Host{
		w:         w,
		h:         h,
		listeners: make(map[int]func(w, h int)),
		raster:    backdrop.NewRaster(w, h),
		limiter:   rate.NewLimiter(limit, 1),
		budget:    budget,
	}
}

func (h *Host) Surface() (backdrop.Surface, error) { return h.raster, nil }

// Raster is the surface handed to the visualization.
func (h *Host) Raster() *backdrop.Raster { return h.raster }

func (h *Host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w, h.h
}

func (h *Host) OnResize(fn func(w, h int)) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}, nil
}

// Listeners reports how many resize listeners are registered.
func (h *Host) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// Resize changes the viewport at the next frame boundary.
func (h *Host) Resize(w, hh int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = &image.Point{X: w, Y: hh}
}

func (h *Host) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

func (h *Host) NextFrame(ctx context.Context) error {
	h.mu.Lock()
	h.frames++
	done := h.budget > 0 && h.frames >= h.budget
	h.mu.Unlock()
	if done {
		return backdrop.ErrHostClosed
	}

	if err := h.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("frame pacing: %w", ctxErr)
		}
		// The limiter refuses early when the next slot lies past the deadline.
		if _, ok := ctx.Deadline(); ok {
			return fmt.Errorf("frame pacing: %w: %v", context.DeadlineExceeded, err)
		}
		return fmt.Errorf("frame pacing: %w", err)
	}
	h.deliverResize()
	return nil
}

func (h *Host) deliverResize() {
	h.mu.Lock()
	p := h.pending
	h.pending = nil
	var fns []func(w, h int)
	if p != nil {
		h.w, h.h = p.X, p.Y
		for _, fn := range h.listeners {
			fns = append(fns, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(p.X, p.Y)
	}
}
