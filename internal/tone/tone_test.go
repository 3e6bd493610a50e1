package tone

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestGenerate_SampleCount(t *testing.T) {
	tests := []struct {
		name string
		tone Tone
		rate int
		want int
	}{
		{"jump", Tone{800, 200 * time.Millisecond}, 44100, 8820},
		{"crash", Tone{150, 300 * time.Millisecond}, 44100, 13230},
		{"chime step", Tone{440, 150 * time.Millisecond}, 44100, 6615},
		{"low rate", Tone{100, time.Second}, 8000, 8000},
		{"empty", Tone{440, 0}, 44100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Generate(tt.tone, tt.rate, DefaultVolume)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if len(s) != tt.want {
				t.Errorf("got %d samples, want %d", len(s), tt.want)
			}
		})
	}
}

func TestGenerate_Amplitude(t *testing.T) {
	volume := 0.3
	s, err := Generate(Tone{800, 200 * time.Millisecond}, 44100, volume)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	limit := int16(volume * math.MaxInt16)
	var peak int16
	for _, v := range s {
		if v > limit || v < -limit {
			t.Fatalf("sample %d out of range ±%d", v, limit)
		}
		if v > peak {
			peak = v
		}
	}
	if peak < limit-50 {
		t.Errorf("peak %d, want close to %d", peak, limit)
	}
	if s[0] != 0 {
		t.Errorf("first sample: got %d, want 0", s[0])
	}
}

func TestGenerate_KnownSamples(t *testing.T) {
	// 1 Hz at 4 samples per second lands on quarter turns.
	s, err := Generate(Tone{1, time.Second}, 4, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []int16{0, 32767, 0, -32767}
	if len(s) != len(want) {
		t.Fatalf("got %d samples, want %d", len(s), len(want))
	}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, s[i], want[i])
		}
	}
}

func TestGenerate_Silence(t *testing.T) {
	s, err := Generate(Tone{440, 10 * time.Millisecond}, 44100, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i, v := range s {
		if v != 0 {
			t.Fatalf("sample %d: got %d, want 0", i, v)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	ok := Tone{440, time.Second}
	tests := []struct {
		name   string
		tone   Tone
		rate   int
		volume float64
		want   error
	}{
		{"zero rate", ok, 0, 0.3, ErrInvalidSampleRate},
		{"huge rate", ok, 1 << 60, 0.3, ErrInvalidSampleRate},
		{"rate past wav limit", ok, MaxSampleRate + 1, 0.3, ErrInvalidSampleRate},
		{"too long", Tone{440, 24 * time.Hour}, 44100, 0.3, ErrTooLong},
		{"negative rate", ok, -1, 0.3, ErrInvalidSampleRate},
		{"volume high", ok, 44100, 1.5, ErrInvalidVolume},
		{"volume negative", ok, 44100, -0.1, ErrInvalidVolume},
		{"zero frequency", Tone{0, time.Second}, 44100, 0.3, ErrInvalidTone},
		{"negative duration", Tone{440, -time.Second}, 44100, 0.3, ErrInvalidTone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.tone, tt.rate, tt.volume); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	tones := []Tone{
		{440, 150 * time.Millisecond},
		{554, 150 * time.Millisecond},
		{659, 150 * time.Millisecond},
	}
	s, err := Sequence(tones, 44100, 0.3)
	if err != nil {
		t.Fatalf("Sequence failed: %v", err)
	}
	if len(s) != 3*6615 {
		t.Fatalf("got %d samples, want %d", len(s), 3*6615)
	}

	for i, tn := range tones {
		want, _ := Generate(tn, 44100, 0.3)
		got := s[i*6615 : (i+1)*6615]
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("tone %d sample %d: got %d, want %d", i, j, got[j], want[j])
			}
		}
	}
}

func TestSequence_InvalidTone(t *testing.T) {
	_, err := Sequence([]Tone{{440, time.Second}, {-1, time.Second}}, 44100, 0.3)
	if !errors.Is(err, ErrInvalidTone) {
		t.Errorf("got %v, want ErrInvalidTone", err)
	}
}

func TestSequence_Limits(t *testing.T) {
	if _, err := Sequence([]Tone{{440, time.Second}}, 1<<60, 0.3); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("huge rate: got %v, want ErrInvalidSampleRate", err)
	}

	// Each tone fits on its own; together they do not.
	half := Tone{440, 7 * time.Hour}
	if half.SampleCount(44100) > MaxSamples {
		t.Fatal("single tone should be within MaxSamples")
	}
	if _, err := Sequence([]Tone{half, half}, 44100, 0.3); !errors.Is(err, ErrTooLong) {
		t.Errorf("combined: got %v, want ErrTooLong", err)
	}
}
