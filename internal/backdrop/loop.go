package backdrop

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrHostClosed is returned by a Scheduler whose host has gone away.
var ErrHostClosed = errors.New("host closed")

// Scheduler blocks until the host is ready for the next frame. Hosts deliver
// resize events from inside NextFrame so they never overlap a tick.
type Scheduler interface {
	NextFrame(ctx context.Context) error
}

type LoopState int32

const (
	LoopIdle LoopState = iota
	LoopRunning
	LoopCancelled
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "idle"
	case LoopRunning:
		return "running"
	case LoopCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Loop runs the frame pipeline. It owns the animation clock; a new Loop
// starts again at time zero.
type Loop struct {
	surface Surface
	field   *Field
	links   LinkRenderer
	spiral  SpiralRenderer

	time   float64
	frames uint64
	state  atomic.Int32
}

func NewLoop(s Surface, f *Field) *Loop {
	return &Loop{surface: s, field: f}
}

func (l *Loop) State() LoopState { return LoopState(l.state.Load()) }
func (l *Loop) Time() float64    { return l.time }
func (l *Loop) Frames() uint64   { return l.frames }

// Start moves Idle to Running. It reports false for a cancelled loop.
func (l *Loop) Start() bool {
	return l.state.CompareAndSwap(int32(LoopIdle), int32(LoopRunning)) ||
		l.State() == LoopRunning
}

// Cancel is terminal. A tick already in progress completes; no new tick starts.
func (l *Loop) Cancel() {
	l.state.Store(int32(LoopCancelled))
}

// Tick runs one frame if the loop is running and reports whether it did.
func (l *Loop) Tick() bool {
	if l.State() != LoopRunning {
		return false
	}
	l.time += TimeStep
	l.surface.Fill(Palette.Fade.Alpha(FadeAlpha))
	l.field.Update()
	l.field.Draw(l.surface)
	l.links.Draw(l.surface, l.field.P)
	l.spiral.Draw(l.surface, l.time)
	l.frames++
	return true
}

// Run ticks once per host frame until the loop is cancelled, ctx is done or
// the host closes. The first tick runs immediately.
func (l *Loop) Run(ctx context.Context, sched Scheduler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.Tick() || l.State() != LoopRunning {
			return nil
		}
		if err := sched.NextFrame(ctx); err != nil {
			return err
		}
	}
}

// Idle keeps the host presenting frames without ticking anything, for a
// degraded mount. It stops when the host closes or ctx ends.
func Idle(ctx context.Context, sched Scheduler) error {
	for {
		if err := sched.NextFrame(ctx); err != nil {
			if normalStop(err) {
				return nil
			}
			return err
		}
	}
}
