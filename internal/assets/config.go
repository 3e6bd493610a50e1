package assets

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ironsheep/placeholder-assets/internal/raster"
	"github.com/ironsheep/placeholder-assets/internal/tone"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvOutputDir  = "PLACEHOLDER_ASSETS_OUT"
	EnvPNGMode    = "PLACEHOLDER_ASSETS_PNG_MODE"
	EnvSampleRate = "PLACEHOLDER_ASSETS_SAMPLE_RATE"
	EnvVolume     = "PLACEHOLDER_ASSETS_VOLUME"
	EnvLogLevel   = "PLACEHOLDER_ASSETS_LOG_LEVEL"
)

// Config controls where and how assets are written.
type Config struct {
	// OutputDir is the root of the asset tree.
	OutputDir string `json:"output_dir"`

	// SpritesDir and SoundsDir are relative to OutputDir.
	SpritesDir string `json:"sprites_dir"`
	SoundsDir  string `json:"sounds_dir"`

	PNGMode    raster.Mode `json:"-"`
	SampleRate int         `json:"sample_rate"`
	Volume     float64     `json:"volume"`

	// Debug enables per-file log lines.
	Debug bool `json:"-"`
}

// DefaultConfig returns the layout the game expects: assets/sprites and
// assets/sounds, solid PNGs, 44.1 kHz audio at 30% volume.
func DefaultConfig() Config {
	return Config{
		OutputDir:  "assets",
		SpritesDir: "sprites",
		SoundsDir:  "sounds",
		PNGMode:    raster.ModeSolid,
		SampleRate: tone.DefaultSampleRate,
		Volume:     tone.DefaultVolume,
	}
}

// ConfigFromEnv returns DefaultConfig with environment overrides applied.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(EnvPNGMode); v != "" {
		m, err := raster.ParseMode(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvPNGMode, err)
		}
		cfg.PNGMode = m
	}
	if v := os.Getenv(EnvSampleRate); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSampleRate, err)
		}
		if n <= 0 || int64(n) > tone.MaxSampleRate {
			return cfg, fmt.Errorf("%s: %w: %d", EnvSampleRate, tone.ErrInvalidSampleRate, n)
		}
		cfg.SampleRate = n
	}
	if v := os.Getenv(EnvVolume); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvVolume, err)
		}
		cfg.Volume = f
	}
	cfg.Debug = os.Getenv(EnvLogLevel) == "debug"

	return cfg, nil
}
