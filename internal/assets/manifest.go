// Package assets describes the prototype's placeholder sprites and sounds and
// writes them to an output tree.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/ironsheep/placeholder-assets/internal/raster"
	"github.com/ironsheep/placeholder-assets/internal/tone"
)

// ErrUnknownAsset is returned by Lookup for a name not in the manifest.
var ErrUnknownAsset = errors.New("unknown asset")

// ErrAmbiguousAsset is returned by Lookup for a stem shared by several assets.
var ErrAmbiguousAsset = errors.New("ambiguous asset")

// Kind distinguishes sprites from sounds.
type Kind string

const (
	KindSprite Kind = "sprite"
	KindSound  Kind = "sound"
)

// SpriteSpec is one solid-color PNG.
type SpriteSpec struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"`
}

// Descriptor parses the sprite's color and returns the raster descriptor.
func (s SpriteSpec) Descriptor() (raster.Descriptor, error) {
	c, err := raster.ParseColor(s.Color)
	if err != nil {
		return raster.Descriptor{}, fmt.Errorf("sprite %s: %w", s.Name, err)
	}
	return raster.Descriptor{Width: s.Width, Height: s.Height, Color: c}, nil
}

// ToneSpec is one step of a sound.
type ToneSpec struct {
	Frequency  float64 `json:"frequency"`
	DurationMS int     `json:"duration_ms"`
}

// SoundSpec is a WAV clip made of tones played back to back.
type SoundSpec struct {
	Name  string     `json:"name"`
	Tones []ToneSpec `json:"tones"`
}

// ToneList converts the spec to tone.Tone values.
func (s SoundSpec) ToneList() []tone.Tone {
	out := make([]tone.Tone, len(s.Tones))
	for i, t := range s.Tones {
		out[i] = tone.Tone{
			Frequency: t.Frequency,
			Duration:  time.Duration(t.DurationMS) * time.Millisecond,
		}
	}
	return out
}

// Manifest lists every asset the generator can write.
type Manifest struct {
	Sprites []SpriteSpec `json:"sprites"`
	Sounds  []SoundSpec  `json:"sounds"`
}

// Entry is a manifest item resolved by Lookup.
type Entry struct {
	Kind   Kind
	Sprite *SpriteSpec
	Sound  *SoundSpec
}

// Name returns the entry's file name.
func (e Entry) Name() string {
	if e.Sprite != nil {
		return e.Sprite.Name
	}
	return e.Sound.Name
}

// DefaultManifest returns the assets the game prototype loads.
func DefaultManifest() *Manifest {
	chime := func(freqs ...float64) []ToneSpec {
		out := make([]ToneSpec, len(freqs))
		for i, f := range freqs {
			out[i] = ToneSpec{Frequency: f, DurationMS: 150}
		}
		return out
	}

	return &Manifest{
		Sprites: []SpriteSpec{
			{Name: "bird.png", Width: 40, Height: 40, Color: "#FFD700"},
			{Name: "pipe-top.png", Width: 80, Height: 200, Color: "#228B22"},
			{Name: "pipe-bottom.png", Width: 80, Height: 200, Color: "#228B22"},
			{Name: "background.png", Width: 800, Height: 600, Color: "#87CEEB"},
		},
		Sounds: []SoundSpec{
			{Name: "jump.wav", Tones: []ToneSpec{{Frequency: 800, DurationMS: 200}}},
			{Name: "correct.wav", Tones: chime(440, 554, 659)}, // A, C#, E ascending
			{Name: "wrong.wav", Tones: chime(659, 554, 440)},
			{Name: "crash.wav", Tones: []ToneSpec{{Frequency: 150, DurationMS: 300}}},
		},
	}
}

// LoadManifest reads a JSON manifest from path and validates it.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks names, sizes, colors and tones.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool)
	checkName := func(name, ext string) error {
		key := strings.ToLower(name)
		switch {
		case name == "":
			return errors.New("manifest: empty asset name")
		case name != path.Base(name) || strings.Contains(name, `\`):
			return fmt.Errorf("manifest: asset name %q must not contain a directory", name)
		case !strings.EqualFold(path.Ext(name), ext):
			return fmt.Errorf("manifest: asset %q must end in %s", name, ext)
		case seen[key]:
			return fmt.Errorf("manifest: duplicate asset %q", name)
		}
		seen[key] = true
		return nil
	}

	for _, s := range m.Sprites {
		if err := checkName(s.Name, ".png"); err != nil {
			return err
		}
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("manifest: sprite %s: %w: %dx%d", s.Name, raster.ErrInvalidDimensions, s.Width, s.Height)
		}
		if _, err := s.Descriptor(); err != nil {
			return fmt.Errorf("manifest: %w", err)
		}
	}
	for _, s := range m.Sounds {
		if err := checkName(s.Name, ".wav"); err != nil {
			return err
		}
		if len(s.Tones) == 0 {
			return fmt.Errorf("manifest: sound %s has no tones", s.Name)
		}
		for i, t := range s.Tones {
			if t.Frequency <= 0 || t.DurationMS < 0 {
				return fmt.Errorf("manifest: sound %s tone %d: %w", s.Name, i, tone.ErrInvalidTone)
			}
		}
	}
	return nil
}

// Names returns every asset name, sprites first, in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Sprites)+len(m.Sounds))
	for _, s := range m.Sprites {
		names = append(names, s.Name)
	}
	for _, s := range m.Sounds {
		names = append(names, s.Name)
	}
	return names
}

// Lookup finds an asset by file name, or by file name without extension.
//
// An exact file name always wins. A bare stem shared by several assets
// returns ErrAmbiguousAsset. Unknown names return ErrUnknownAsset; the message
// suggests close matches.
func (m *Manifest) Lookup(name string) (Entry, error) {
	want := strings.ToLower(strings.TrimSpace(name))

	var stem []Entry
	for i := range m.Sprites {
		e := Entry{Kind: KindSprite, Sprite: &m.Sprites[i]}
		switch matchName(m.Sprites[i].Name, want) {
		case matchExact:
			return e, nil
		case matchStem:
			stem = append(stem, e)
		}
	}
	for i := range m.Sounds {
		e := Entry{Kind: KindSound, Sound: &m.Sounds[i]}
		switch matchName(m.Sounds[i].Name, want) {
		case matchExact:
			return e, nil
		case matchStem:
			stem = append(stem, e)
		}
	}

	switch len(stem) {
	case 0:
	case 1:
		return stem[0], nil
	default:
		names := make([]string, len(stem))
		for i, e := range stem {
			names[i] = e.Name()
		}
		return Entry{}, fmt.Errorf("%w %q matches %s", ErrAmbiguousAsset, name, strings.Join(names, ", "))
	}

	if s := m.Suggest(name); len(s) > 0 {
		return Entry{}, fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownAsset, name, strings.Join(s, ", "))
	}
	return Entry{}, fmt.Errorf("%w %q", ErrUnknownAsset, name)
}

type match int

const (
	matchNone match = iota
	matchExact
	matchStem
)

func matchName(assetName, want string) match {
	n := strings.ToLower(assetName)
	switch {
	case n == want:
		return matchExact
	case strings.TrimSuffix(n, path.Ext(n)) == want:
		return matchStem
	}
	return matchNone
}

// Suggest returns up to three asset names within edit distance of name,
// closest first.
func (m *Manifest) Suggest(name string) []string {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil
	}

	type cand struct {
		name string
		dist int
	}
	var cands []cand
	for _, n := range m.Names() {
		lower := strings.ToLower(n)
		stem := strings.TrimSuffix(lower, path.Ext(lower))
		d := levenshtein.ComputeDistance(want, lower)
		if ds := levenshtein.ComputeDistance(want, stem); ds < d {
			d = ds
		}
		if d <= suggestLimit(len(stem)) {
			cands = append(cands, cand{n, d})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	if len(cands) > 3 {
		cands = cands[:3]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
