// Package window mounts the backdrop in a resizable desktop window. The
// composed frame is uploaded to a texture and drawn on a fullscreen quad.
package window

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"ouroboros/internal/backdrop"
)

type Config struct {
	Width, Height int
	Title         string
	VSync         bool
	Backdrop      bool
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d: must be positive", c.Width, c.Height)
	}
	return nil
}

// Host owns the GL context. All methods must run on the goroutine that
// called Open, with that goroutine locked to its OS thread.
type Host struct {
	win    *glfw.Window
	pres   *presenter
	raster *backdrop.Raster
	comp   *backdrop.Composer

	mu       sync.Mutex
	fbW, fbH int
	onResize func(w, h int)
}

func initWindow(cfg Config) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return win, nil
}

func Open(cfg Config) (*Host, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	win, err := initWindow(cfg)
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	pres, err := newPresenter()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("presenter: %w", err)
	}

	h := &Host{
		win:    win,
		pres:   pres,
		raster: backdrop.NewRaster(0, 0),
		comp:   backdrop.NewComposer(cfg.Backdrop),
	}
	h.fbW, h.fbH = win.GetFramebufferSize()
	win.SetFramebufferSizeCallback(h.framebufferSized)
	return h, nil
}

func (h *Host) Close() {
	h.pres.destroy()
	h.win.Destroy()
	glfw.Terminate()
}

func (h *Host) Surface() (backdrop.Surface, error) { return h.raster, nil }

// Size is the framebuffer size, which differs from the window size on
// high-density displays.
func (h *Host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fbW, h.fbH
}

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

func (h *Host) framebufferSized(_ *glfw.Window, w, hh int) {
	h.mu.Lock()
	h.fbW, h.fbH = w, hh
	fn := h.onResize
	h.mu.Unlock()
	if fn != nil {
		fn(w, hh)
	}
}

// NextFrame presents the surface and processes window events. With vsync
// on, SwapBuffers blocks until the next refresh.
func (h *Host) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w, hh := h.Size()
	if w > 0 && hh > 0 {
		frame := h.comp.Compose(h.raster.Image(), w, hh)
		h.pres.draw(frame)
		h.win.SwapBuffers()
	}

	glfw.PollEvents()
	if h.win.ShouldClose() || h.win.GetKey(glfw.KeyEscape) == glfw.Press {
		return backdrop.ErrHostClosed
	}
	return nil
}
