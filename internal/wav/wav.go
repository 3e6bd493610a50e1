// Package wav writes mono 16-bit PCM samples in a RIFF/WAVE container.
//
// Encoding goes through github.com/go-audio/wav. ReadHeader is a strict
// check of the canonical 44-byte layout that encoder produces.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

const (
	// HeaderSize is the length of the canonical header written by Encode.
	HeaderSize = 44

	formatPCM     = 1
	channels      = 1
	bitsPerSample = 16
	blockAlign    = channels * bitsPerSample / 8

	// MaxSampleRate keeps the header's byte rate within a uint32.
	MaxSampleRate = math.MaxUint32 / blockAlign

	// MaxSamples keeps the RIFF size (36 + data bytes) within a uint32.
	MaxSamples = (math.MaxUint32 - 36) / blockAlign
)

var (
	// ErrInvalidHeader is returned by ReadHeader for anything but a canonical
	// PCM header.
	ErrInvalidHeader = errors.New("wav: invalid header")

	// ErrInvalidSampleRate is returned for a rate outside (0, MaxSampleRate].
	ErrInvalidSampleRate = errors.New("wav: sample rate out of range")

	// ErrTooLong is returned when the samples do not fit a WAV data chunk.
	ErrTooLong = errors.New("wav: too many samples")
)

// Header is the canonical 44-byte RIFF/WAVE header.
type Header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + DataSize
	Format        [4]byte // "WAVE"
	FmtID         [4]byte // "fmt "
	FmtSize       uint32  // 16 for PCM
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte // "data"
	DataSize      uint32
}

// Frames returns the number of samples described by the header.
func (h Header) Frames() int {
	if h.BlockAlign == 0 {
		return 0
	}
	return int(h.DataSize) / int(h.BlockAlign)
}

// Encode writes a complete WAV file for samples to w.
func Encode(w io.Writer, samples []int16, sampleRate int) error {
	data, err := Bytes(samples, sampleRate)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write wav: %w", err)
	}
	return nil
}

// Bytes returns the complete WAV file for samples.
func Bytes(samples []int16, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 || int64(sampleRate) > MaxSampleRate {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if int64(len(samples)) > MaxSamples {
		return nil, fmt.Errorf("%w: %d", ErrTooLong, len(samples))
	}

	pcm := make([]int, len(samples))
	for i, s := range samples {
		pcm[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           pcm,
		SourceBitDepth: bitsPerSample,
	}

	ws := &seekBuffer{buf: make([]byte, 0, HeaderSize+len(samples)*blockAlign)}
	enc := gowav.NewEncoder(ws, sampleRate, bitsPerSample, channels, formatPCM)
	// Write is called even for no samples so the header and data chunk exist.
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish wav: %w", err)
	}
	return ws.buf, nil
}

// ReadHeader reads and validates a canonical mono 16-bit PCM header.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	switch {
	case string(h.ChunkID[:]) != "RIFF" || string(h.Format[:]) != "WAVE":
		return h, fmt.Errorf("%w: not a RIFF/WAVE stream", ErrInvalidHeader)
	case string(h.FmtID[:]) != "fmt " || h.FmtSize != 16:
		return h, fmt.Errorf("%w: unexpected fmt chunk", ErrInvalidHeader)
	case h.AudioFormat != formatPCM:
		return h, fmt.Errorf("%w: audio format %d is not PCM", ErrInvalidHeader, h.AudioFormat)
	case string(h.DataID[:]) != "data":
		return h, fmt.Errorf("%w: data chunk not at offset 36", ErrInvalidHeader)
	case h.ChunkSize != 36+h.DataSize:
		return h, fmt.Errorf("%w: RIFF size %d does not match data size %d", ErrInvalidHeader, h.ChunkSize, h.DataSize)
	}
	return h, nil
}

// seekBuffer is an in-memory io.WriteSeeker. The encoder seeks back to patch
// the RIFF and data sizes once all samples are written.
type seekBuffer struct {
	buf []byte
	pos int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.buf) {
		if end > cap(b.buf) {
			grown := make([]byte, len(b.buf), 2*end)
			copy(grown, b.buf)
			b.buf = grown
		}
		b.buf = b.buf[:end]
	}
	copy(b.buf[b.pos:], p)
	b.pos = end
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.buf))
	default:
		return 0, fmt.Errorf("wav: invalid whence %d", whence)
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("wav: negative seek position")
	}
	b.pos = int(next)
	return next, nil
}
