// Package term mounts the backdrop on a terminal. Each cell shows two
// vertically stacked samples of the composed frame using a half-block glyph.
package term

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"ouroboros/internal/backdrop"
)

const halfBlock = '▀'

type Config struct {
	FPS        float64
	CellWidth  int // surface pixels per cell column
	CellHeight int // surface pixels per cell row
	Backdrop   bool
}

type Host struct {
	screen tcell.Screen
	cfg    Config

	raster  *backdrop.Raster
	comp    *backdrop.Composer
	samples *image.RGBA

	ticker *time.Ticker
	events chan tcell.Event
	quit   chan struct{}
	close  sync.Once

	mu         sync.Mutex
	cols, rows int
	onResize   func(w, h int)
}

// Open initializes screen and starts reading its events.
func Open(screen tcell.Screen, cfg Config) (*Host, error) {
	if cfg.CellWidth <= 0 || cfg.CellHeight <= 0 {
		return nil, fmt.Errorf("cell size %dx%d: must be positive", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	h := &Host{
		screen: screen,
		cfg:    cfg,
		raster: backdrop.NewRaster(0, 0),
		comp:   backdrop.NewComposer(cfg.Backdrop),
		ticker: time.NewTicker(time.Duration(float64(time.Second) / cfg.FPS)),
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
	}
	h.cols, h.rows = screen.Size()

	go h.poll()
	return h, nil
}

func (h *Host) poll() {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case h.events <- ev:
		case <-h.quit:
			return
		}
	}
}

func (h *Host) Close() {
	h.close.Do(func() {
		close(h.quit)
		h.ticker.Stop()
		h.screen.Fini()
	})
}

func (h *Host) Surface() (backdrop.Surface, error) { return h.raster, nil }

// Size is the viewport in surface pixels.
func (h *Host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cols * h.cfg.CellWidth, h.rows * h.cfg.CellHeight
}

// OnResize keeps a single listener; a later registration replaces it.
func (h *Host) OnResize(fn func(w, h int)) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onResize = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.onResize = nil
	}, nil
}

// NextFrame shows the current surface and waits for the next tick,
// handling terminal events in between.
func (h *Host) NextFrame(ctx context.Context) error {
	h.present()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.ticker.C:
			return nil
		case ev := <-h.events:
			if err := h.handle(ev); err != nil {
				return err
			}
		}
	}
}

func (h *Host) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return backdrop.ErrHostClosed
		}
	case *tcell.EventResize:
		h.screen.Sync()
		cols, rows := h.screen.Size()
		h.mu.Lock()
		h.cols, h.rows = cols, rows
		fn := h.onResize
		h.mu.Unlock()
		if fn != nil {
			fn(cols*h.cfg.CellWidth, rows*h.cfg.CellHeight)
		}
	}
	return nil
}

func (h *Host) present() {
	h.mu.Lock()
	cols, rows := h.cols, h.rows
	h.mu.Unlock()
	if cols <= 0 || rows <= 0 {
		return
	}

	frame := h.comp.Compose(h.raster.Image(), cols*h.cfg.CellWidth, rows*h.cfg.CellHeight)

	want := image.Rect(0, 0, cols, rows*2)
	if h.samples == nil || h.samples.Bounds() != want {
		h.samples = image.NewRGBA(want)
	}
	draw.ApproxBiLinear.Scale(h.samples, want, frame, frame.Bounds(), draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := h.samples.RGBAAt(x, y*2)
			bot := h.samples.RGBAAt(x, y*2+1)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			h.screen.SetContent(x, y, halfBlock, nil, st)
		}
	}
	h.screen.Show()
}
