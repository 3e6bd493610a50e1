// Package tone synthesizes the short sine-wave clips used as placeholder
// sound effects.
//
// Samples are signed 16-bit mono PCM. A tone of duration d at sample rate r
// has int(r*d) samples taken at t = i/r, so the clip ends one sample before d.
package tone

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// DefaultSampleRate is CD-quality mono.
	DefaultSampleRate = 44100

	// DefaultVolume is the peak amplitude as a fraction of full scale.
	DefaultVolume = 0.3

	// MaxSampleRate keeps the 16-bit mono byte rate within a uint32.
	MaxSampleRate = math.MaxUint32 / 2

	// MaxSamples is the longest clip a 16-bit mono WAV data chunk can hold.
	MaxSamples = (math.MaxUint32 - 36) / 2
)

// Parameter errors returned by Generate and Sequence.
var (
	ErrInvalidSampleRate = errors.New("tone: sample rate out of range")
	ErrInvalidVolume     = errors.New("tone: volume must be within [0, 1]")
	ErrInvalidTone       = errors.New("tone: invalid tone")
	ErrTooLong           = errors.New("tone: clip exceeds MaxSamples")
)

// Tone is a single sine at Frequency Hz lasting Duration.
type Tone struct {
	Frequency float64       `json:"frequency"`
	Duration  time.Duration `json:"duration"`
}

// SampleCount returns the number of samples t occupies at sampleRate.
func (t Tone) SampleCount(sampleRate int) int {
	return int(float64(sampleRate) * t.Duration.Seconds())
}

// countSamples is SampleCount with the MaxSamples bound checked before the
// float result is converted.
func (t Tone) countSamples(sampleRate int) (int, error) {
	n := float64(sampleRate) * t.Duration.Seconds()
	if n > MaxSamples {
		return 0, fmt.Errorf("%w: %v at %d Hz", ErrTooLong, t.Duration, sampleRate)
	}
	return int(n), nil
}

func (t Tone) validate() error {
	if t.Frequency <= 0 || math.IsNaN(t.Frequency) || math.IsInf(t.Frequency, 0) {
		return fmt.Errorf("%w: frequency %v", ErrInvalidTone, t.Frequency)
	}
	if t.Duration < 0 {
		return fmt.Errorf("%w: duration %v", ErrInvalidTone, t.Duration)
	}
	return nil
}

func checkParams(sampleRate int, volume float64) error {
	if sampleRate <= 0 || int64(sampleRate) > MaxSampleRate {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidSampleRate, sampleRate, int64(MaxSampleRate))
	}
	if volume < 0 || volume > 1 || math.IsNaN(volume) {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, volume)
	}
	return nil
}

// Generate samples t at sampleRate with peak amplitude volume*32767.
func Generate(t Tone, sampleRate int, volume float64) ([]int16, error) {
	if err := checkParams(sampleRate, volume); err != nil {
		return nil, err
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	n, err := t.countSamples(sampleRate)
	if err != nil {
		return nil, err
	}
	return appendTone(make([]int16, 0, n), t, sampleRate, volume), nil
}

// Sequence samples each tone in order and concatenates the results.
func Sequence(tones []Tone, sampleRate int, volume float64) ([]int16, error) {
	if err := checkParams(sampleRate, volume); err != nil {
		return nil, err
	}

	var total int64
	for i, t := range tones {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("tone %d: %w", i, err)
		}
		n, err := t.countSamples(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("tone %d: %w", i, err)
		}
		total += int64(n)
		if total > MaxSamples {
			return nil, fmt.Errorf("%w: %d samples", ErrTooLong, total)
		}
	}

	out := make([]int16, 0, total)
	for _, t := range tones {
		out = appendTone(out, t, sampleRate, volume)
	}
	return out, nil
}

func appendTone(dst []int16, t Tone, sampleRate int, volume float64) []int16 {
	n := t.SampleCount(sampleRate)
	step := 2 * math.Pi * t.Frequency / float64(sampleRate)
	amp := volume * math.MaxInt16
	for i := 0; i < n; i++ {
		// Conversion truncates toward zero.
		dst = append(dst, int16(amp*math.Sin(step*float64(i))))
	}
	return dst
}
