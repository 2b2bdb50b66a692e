// Package config resolves host settings from defaults, an optional YAML
// file, OUROBOROS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	fileName  = "config"
	fileType  = "yaml"
	homeDir   = ".ouroboros"
	envPrefix = "OUROBOROS"
)

// Keys understood in the config file. Environment variables use the
// upper-case key with the OUROBOROS_ prefix.
const (
	KeySeed       = "seed"
	KeyWidth      = "width"
	KeyHeight     = "height"
	KeyTitle      = "title"
	KeyVSync      = "vsync"
	KeyBackdrop   = "backdrop"
	KeyFPS        = "fps"
	KeyCellWidth  = "cell_width"
	KeyCellHeight = "cell_height"
	KeyFrames     = "frames"
	KeyOut        = "out"
)

type Settings struct {
	Seed   uint64
	Seeded bool // false means seed from the clock

	Width, Height int
	Title         string
	VSync         bool
	Backdrop      bool

	FPS                   float64
	CellWidth, CellHeight int

	Frames int
	Out    string
}

// Dir returns ~/.ouroboros.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", homeDir)
	}
	return filepath.Join(home, homeDir)
}

func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWidth, 1280)
	v.SetDefault(KeyHeight, 720)
	v.SetDefault(KeyTitle, "ouroboros")
	v.SetDefault(KeyVSync, true)
	v.SetDefault(KeyBackdrop, true)
	v.SetDefault(KeyFPS, 60)
	v.SetDefault(KeyCellWidth, 8)
	v.SetDefault(KeyCellHeight, 16)
	v.SetDefault(KeyFrames, 120)
	v.SetDefault(KeyOut, "ouroboros.png")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads path, or FilePath when path is empty. Only a missing default
// file is ignored.
func Load(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = FilePath()
	}
	v.SetConfigFile(path)
	v.SetConfigType(fileType)

	if err := v.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

func Resolve(v *viper.Viper) (Settings, error) {
	s := Settings{
		Seed:       v.GetUint64(KeySeed),
		Seeded:     v.IsSet(KeySeed),
		Width:      v.GetInt(KeyWidth),
		Height:     v.GetInt(KeyHeight),
		Title:      v.GetString(KeyTitle),
		VSync:      v.GetBool(KeyVSync),
		Backdrop:   v.GetBool(KeyBackdrop),
		FPS:        v.GetFloat64(KeyFPS),
		CellWidth:  v.GetInt(KeyCellWidth),
		CellHeight: v.GetInt(KeyCellHeight),
		Frames:     v.GetInt(KeyFrames),
		Out:        v.GetString(KeyOut),
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%s/%s %dx%d: must be positive", KeyWidth, KeyHeight, s.Width, s.Height)
	case s.FPS < 0:
		return fmt.Errorf("%s %g: must not be negative", KeyFPS, s.FPS)
	case s.CellWidth <= 0 || s.CellHeight <= 0:
		return fmt.Errorf("%s/%s %dx%d: must be positive", KeyCellWidth, KeyCellHeight, s.CellWidth, s.CellHeight)
	case s.Frames <= 0:
		return fmt.Errorf("%s %d: must be positive", KeyFrames, s.Frames)
	}
	return nil
}
