package assets

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ironsheep/placeholder-assets/internal/raster"
	"github.com/ironsheep/placeholder-assets/internal/tone"
	"github.com/ironsheep/placeholder-assets/internal/wav"
)

// Result describes one written asset.
type Result struct {
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`

	// Placeholder is set for sprites written with raster.ModePlaceholder.
	// Such files are not renderable unless they are 1x1.
	Placeholder bool `json:"placeholder,omitempty"`

	// Samples is the clip length of a sound.
	Samples int `json:"samples,omitempty"`
}

// Generator writes manifest assets under a Config's output tree.
type Generator struct {
	cfg      Config
	manifest *Manifest
	fs       FS
}

// NewGenerator returns a Generator. A nil manifest selects DefaultManifest and
// a nil fs selects OSFS.
func NewGenerator(cfg Config, m *Manifest, fs FS) *Generator {
	if m == nil {
		m = DefaultManifest()
	}
	if fs == nil {
		fs = OSFS{}
	}
	return &Generator{cfg: cfg, manifest: m, fs: fs}
}

// Manifest returns the generator's manifest.
func (g *Generator) Manifest() *Manifest { return g.manifest }

// SpritesPath returns the directory sprites are written to.
func (g *Generator) SpritesPath() string {
	return filepath.Join(g.cfg.OutputDir, g.cfg.SpritesDir)
}

// SoundsPath returns the directory sounds are written to.
func (g *Generator) SoundsPath() string {
	return filepath.Join(g.cfg.OutputDir, g.cfg.SoundsDir)
}

// Generate writes the named assets, or every asset when names is empty.
//
// Names are resolved before anything is written, so an unknown name leaves
// the tree untouched. Both asset directories are always created. The first
// failure stops generation; results for files already written are returned
// with the error.
func (g *Generator) Generate(names ...string) ([]Result, error) {
	entries, err := g.resolve(names)
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{g.SpritesPath(), g.SoundsPath()} {
		if err := g.fs.MkdirAll(dir); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		var r Result
		var err error
		switch e.Kind {
		case KindSprite:
			r, err = g.writeSprite(*e.Sprite)
		case KindSound:
			r, err = g.writeSound(*e.Sound)
		}
		if err != nil {
			return results, err
		}
		if g.cfg.Debug {
			log.Printf("wrote %s (%d bytes)", r.Path, r.Bytes)
		}
		results = append(results, r)
	}
	return results, nil
}

func (g *Generator) resolve(names []string) ([]Entry, error) {
	if len(names) == 0 {
		names = g.manifest.Names()
	}
	entries := make([]Entry, 0, len(names))
	seen := make(map[string]bool)
	for _, n := range names {
		e, err := g.manifest.Lookup(n)
		if err != nil {
			return nil, err
		}
		if seen[e.Name()] {
			continue
		}
		seen[e.Name()] = true
		entries = append(entries, e)
	}
	return entries, nil
}

func (g *Generator) writeSprite(s SpriteSpec) (Result, error) {
	d, err := s.Descriptor()
	if err != nil {
		return Result{}, err
	}
	data, err := raster.EncodeMode(g.cfg.PNGMode, d)
	if err != nil {
		return Result{}, fmt.Errorf("sprite %s: %w", s.Name, err)
	}

	placeholder := g.cfg.PNGMode == raster.ModePlaceholder
	if placeholder && (d.Width != 1 || d.Height != 1) {
		log.Printf("warning: %s is a %dx%d placeholder with a fixed pixel payload; decoders will reject it",
			s.Name, d.Width, d.Height)
	}

	p := filepath.Join(g.SpritesPath(), s.Name)
	if err := g.fs.WriteFile(p, data); err != nil {
		return Result{}, err
	}
	return Result{Name: s.Name, Kind: KindSprite, Path: p, Bytes: len(data), Placeholder: placeholder}, nil
}

func (g *Generator) writeSound(s SoundSpec) (Result, error) {
	samples, err := tone.Sequence(s.ToneList(), g.cfg.SampleRate, g.cfg.Volume)
	if err != nil {
		return Result{}, fmt.Errorf("sound %s: %w", s.Name, err)
	}
	data, err := wav.Bytes(samples, g.cfg.SampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("sound %s: %w", s.Name, err)
	}

	p := filepath.Join(g.SoundsPath(), s.Name)
	if err := g.fs.WriteFile(p, data); err != nil {
		return Result{}, err
	}
	return Result{Name: s.Name, Kind: KindSound, Path: p, Bytes: len(data), Samples: len(samples)}, nil
}
