package backdrop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Host is the environment a Visualization is mounted into.
type Host interface {
	Scheduler

	// Surface acquires the drawing surface.
	Surface() (Surface, error)
	// Size is the current viewport size in device pixels.
	Size() (w, h int)
	// OnResize registers a listener called synchronously on viewport changes.
	OnResize(fn func(w, h int)) (remove func(), err error)
}

type options struct {
	seed   uint64
	seeded bool
}

type Option func(*options)

// WithSeed makes particle seeding reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// Visualization is one mounted particle backdrop.
type Visualization struct {
	host    Host
	surface Surface
	field   *Field
	loop    *Loop

	removeResize func()
	unmount      sync.Once
	degraded     error
}

// Mount sizes the host surface, registers the resize listener and seeds the
// field. It never fails: when the host cannot provide a surface or resize
// events the visualization is degraded and Run does nothing.
func Mount(host Host, opts ...Option) *Visualization {
	o := options{seed: uint64(time.Now().UnixNano())}
	for _, opt := range opts {
		opt(&o)
	}

	v := &Visualization{host: host}

	s, err := host.Surface()
	if err == nil && s == nil {
		err = ErrSurfaceUnavailable
	}
	if err != nil {
		v.degrade(fmt.Errorf("acquire surface: %w", err))
		return v
	}

	w, h := host.Size()
	s.Resize(w, h)

	remove, err := host.OnResize(func(w, h int) { s.Resize(w, h) })
	if err != nil {
		v.degrade(fmt.Errorf("register resize listener: %w", err))
		return v
	}

	v.surface = s
	v.removeResize = remove
	v.field = NewField(s, NewRand(o.seed))
	v.loop = NewLoop(s, v.field)
	v.loop.Start()
	return v
}

func (v *Visualization) degrade(err error) {
	v.degraded = err
	log.Printf("backdrop: running without particle layer: %v", err)
}

// Degraded reports why the particle layer is not running, or nil.
func (v *Visualization) Degraded() error { return v.degraded }

func (v *Visualization) Field() *Field { return v.field }
func (v *Visualization) Loop() *Loop   { return v.loop }

// Run drives the render loop on the calling goroutine and unmounts when it
// stops. Host closure and context cancellation are normal exits.
func (v *Visualization) Run(ctx context.Context) error {
	if v.loop == nil {
		return nil
	}
	defer v.Unmount()

	if err := v.loop.Run(ctx, v.host); !normalStop(err) {
		return fmt.Errorf("render loop: %w", err)
	}
	return nil
}

func normalStop(err error) bool {
	return err == nil ||
		errors.Is(err, ErrHostClosed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Unmount removes the resize listener and cancels the loop. It is idempotent
// and may be called from any goroutine, including mid-frame.
func (v *Visualization) Unmount() {
	v.unmount.Do(func() {
		if v.removeResize != nil {
			v.removeResize()
		}
		if v.loop != nil {
			v.loop.Cancel()
		}
	})
}
