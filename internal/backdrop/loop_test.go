package backdrop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLoop(s Surface) *Loop {
	return NewLoop(s, NewField(s, NewRand(5)))
}

func TestTickOrder(t *testing.T) {
	s := newRecorder(800, 600)
	l := newTestLoop(s)
	require.True(t, l.Start())
	require.True(t, l.Tick())

	require.Equal(t, opFill, s.ops[0].kind)
	require.Equal(t, Palette.Fade.Alpha(FadeAlpha), s.ops[0].c)
	require.Equal(t, uint8(13), s.ops[0].c.A)

	for _, o := range s.ops[1 : 1+ParticleCount] {
		require.Equal(t, opCircle, o.kind)
	}
	tail := s.ops[len(s.ops)-SpiralCount:]
	for _, o := range tail {
		require.Equal(t, opPath, o.kind)
	}
	for _, o := range s.ops[1+ParticleCount : len(s.ops)-SpiralCount] {
		require.Equal(t, opLine, o.kind)
	}
}

func TestTickAdvancesLoopTime(t *testing.T) {
	l := newTestLoop(newRecorder(200, 200))
	require.Equal(t, 0.0, l.Time())
	l.Start()
	for i := 0; i < 3; i++ {
		l.Tick()
	}
	require.InDelta(t, 0.015, l.Time(), 1e-12)
	require.Equal(t, uint64(3), l.Frames())

	// Each loop owns its clock.
	other := newTestLoop(newRecorder(200, 200))
	require.Equal(t, 0.0, other.Time())
}

func TestLoopStates(t *testing.T) {
	s := newRecorder(100, 100)
	l := newTestLoop(s)
	require.Equal(t, LoopIdle, l.State())
	require.False(t, l.Tick())
	require.Empty(t, s.ops)

	require.True(t, l.Start())
	require.True(t, l.Start())
	require.Equal(t, LoopRunning, l.State())

	l.Cancel()
	require.Equal(t, LoopCancelled, l.State())
	require.False(t, l.Start())
	require.False(t, l.Tick())
	require.Equal(t, "cancelled", l.State().String())
}

func TestRunTicksOncePerFrame(t *testing.T) {
	s := newRecorder(300, 200)
	h := newFakeHost(s, 300, 200)
	h.onFrame = stopAfter(4)

	l := newTestLoop(s)
	l.Start()
	err := l.Run(context.Background(), h)
	require.ErrorIs(t, err, ErrHostClosed)
	require.Equal(t, uint64(4), l.Frames())
	require.Equal(t, 4, h.frames)
}

func TestRunSkipsPendingFrameAfterCancel(t *testing.T) {
	s := newRecorder(300, 200)
	h := newFakeHost(s, 300, 200)
	l := newTestLoop(s)
	h.onFrame = func(n int) error {
		if n == 2 {
			l.Cancel()
		}
		return nil
	}

	l.Start()
	require.NoError(t, l.Run(context.Background(), h))
	require.Equal(t, uint64(2), l.Frames())
	require.Equal(t, 2, h.frames)
}

func TestRunStopsOnContext(t *testing.T) {
	s := newRecorder(300, 200)
	h := newFakeHost(s, 300, 200)
	ctx, cancel := context.WithCancel(context.Background())
	h.onFrame = func(n int) error {
		if n == 3 {
			cancel()
		}
		return nil
	}

	l := newTestLoop(s)
	l.Start()
	require.ErrorIs(t, l.Run(ctx, h), context.Canceled)
	require.Equal(t, uint64(3), l.Frames())
}

func TestRunPropagatesHostError(t *testing.T) {
	s := newRecorder(300, 200)
	h := newFakeHost(s, 300, 200)
	h.onFrame = func(int) error { return errBoom }

	l := newTestLoop(s)
	l.Start()
	require.ErrorIs(t, l.Run(context.Background(), h), errBoom)
	require.Equal(t, uint64(1), l.Frames())
}

func TestIdle(t *testing.T) {
	tests := []struct {
		name    string
		hook    func(int) error
		wantErr error
		frames  int
	}{
		{"host closes", stopAfter(4), nil, 4},
		{"cancelled", func(n int) error {
			if n == 2 {
				return context.Canceled
			}
			return nil
		}, nil, 2},
		{"host error", func(int) error { return errBoom }, errBoom, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRecorder(100, 100)
			h := newFakeHost(s, 100, 100)
			h.onFrame = tt.hook

			err := Idle(context.Background(), h)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.frames, h.frames)
			require.Empty(t, s.ops)
		})
	}
}
