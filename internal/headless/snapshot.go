package headless

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"ouroboros/internal/backdrop"
)

type SnapshotConfig struct {
	Width, Height int
	Frames        int
	FPS           float64
	Seed          uint64
	Seeded        bool
	Backdrop      bool
	Out           string
}

// Snapshot renders cfg.Frames frames and writes the composed last frame as PNG.
func Snapshot(ctx context.Context, cfg SnapshotConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("snapshot size %dx%d: must be positive", cfg.Width, cfg.Height)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("snapshot frames %d: must be positive", cfg.Frames)
	}

	host := New(cfg.Width, cfg.Height, cfg.FPS, cfg.Frames)
	var opts []backdrop.Option
	if cfg.Seeded {
		opts = append(opts, backdrop.WithSeed(cfg.Seed))
	}

	viz := backdrop.Mount(host, opts...)
	if err := viz.Run(ctx); err != nil {
		return err
	}

	var layer *image.RGBA
	if viz.Degraded() == nil {
		layer = host.Raster().Image()
	}
	w, h := host.Size()
	frame := backdrop.NewComposer(cfg.Backdrop).Compose(layer, w, h)
	return WritePNG(cfg.Out, frame)
}

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
