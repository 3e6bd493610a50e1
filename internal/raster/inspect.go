package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// ChunkInfo summarizes one chunk of an inspected stream.
type ChunkInfo struct {
	Type        string `json:"type"`
	Length      int    `json:"length"`
	StoredCRC   uint32 `json:"stored_crc"`
	ComputedCRC uint32 `json:"computed_crc"`
	CRCOK       bool   `json:"crc_ok"`
}

// Header holds the decoded IHDR fields.
type Header struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	BitDepth    uint8 `json:"bit_depth"`
	ColorType   uint8 `json:"color_type"`
	Compression uint8 `json:"compression"`
	Filter      uint8 `json:"filter"`
	Interlace   uint8 `json:"interlace"`
}

// Report is the result of Inspect.
type Report struct {
	// Chunks lists every chunk read, in stream order.
	Chunks []ChunkInfo `json:"chunks"`

	// Header is nil when no IHDR chunk was found.
	Header *Header `json:"header,omitempty"`

	// WellFormed is true when the stream is exactly signature, IHDR, one or
	// more IDAT, and an empty IEND, with every CRC valid.
	WellFormed bool `json:"well_formed"`

	// Placeholder is true when the pixel data is PlaceholderIDAT. Such a
	// stream does not carry Width x Height pixels.
	Placeholder bool `json:"placeholder"`

	// Renderable is true when a strict decoder produced a full image.
	Renderable bool `json:"renderable"`

	// DecodeError holds the strict decoder's error when Renderable is false.
	DecodeError string `json:"decode_error,omitempty"`

	// Problems lists structural defects found while reading chunks.
	Problems []string `json:"problems,omitempty"`
}

// Inspect parses a PNG stream, validates its chunk structure and tries a
// strict decode.
//
// An error is returned only when the signature is missing; all other defects
// are recorded in the Report.
func Inspect(data []byte) (*Report, error) {
	chunks, err := ReadChunks(data)
	if errors.Is(err, ErrBadSignature) {
		return nil, err
	}

	r := &Report{}
	if err != nil {
		r.Problems = append(r.Problems, err.Error())
	}

	var idat []byte
	for _, c := range chunks {
		sum := Checksum(c.Type, c.Data)
		r.Chunks = append(r.Chunks, ChunkInfo{
			Type:        c.Type,
			Length:      len(c.Data),
			StoredCRC:   c.CRC,
			ComputedCRC: sum,
			CRCOK:       sum == c.CRC,
		})
		switch c.Type {
		case "IHDR":
			if r.Header != nil {
				r.Problems = append(r.Problems, "duplicate IHDR chunk")
				continue
			}
			if len(c.Data) != 13 {
				r.Problems = append(r.Problems, fmt.Sprintf("IHDR has %d bytes, want 13", len(c.Data)))
				continue
			}
			r.Header = &Header{
				Width:       int(binary.BigEndian.Uint32(c.Data[0:4])),
				Height:      int(binary.BigEndian.Uint32(c.Data[4:8])),
				BitDepth:    c.Data[8],
				ColorType:   c.Data[9],
				Compression: c.Data[10],
				Filter:      c.Data[11],
				Interlace:   c.Data[12],
			}
		case "IDAT":
			idat = append(idat, c.Data...)
		}
	}

	r.Problems = append(r.Problems, checkOrder(chunks)...)
	r.WellFormed = len(r.Problems) == 0
	r.Placeholder = bytes.Equal(idat, PlaceholderIDAT)

	img, derr := decode(data)
	switch {
	case derr != nil:
		r.DecodeError = derr.Error()
	case r.Header != nil && (img.Bounds().Dx() != r.Header.Width || img.Bounds().Dy() != r.Header.Height):
		r.DecodeError = fmt.Sprintf("decoded %dx%d, header declares %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), r.Header.Width, r.Header.Height)
	default:
		r.Renderable = true
	}

	return r, nil
}

// InspectFile reads path and inspects its contents.
func InspectFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return Inspect(data)
}

// checkOrder verifies the IHDR, IDAT..., IEND sequence this package writes.
func checkOrder(chunks []Chunk) []string {
	var problems []string
	if len(chunks) == 0 {
		return []string{"no chunks"}
	}
	if chunks[0].Type != "IHDR" {
		problems = append(problems, fmt.Sprintf("first chunk is %s, want IHDR", chunks[0].Type))
	}

	last := chunks[len(chunks)-1]
	if last.Type != "IEND" {
		problems = append(problems, "missing IEND chunk")
	} else if len(last.Data) != 0 {
		problems = append(problems, fmt.Sprintf("IEND has %d bytes, want 0", len(last.Data)))
	}

	idats := 0
	for _, c := range chunks {
		if c.Type == "IDAT" {
			idats++
		}
	}
	if idats == 0 {
		problems = append(problems, "missing IDAT chunk")
	}
	return problems
}

// VerifySolid decodes data and checks that every pixel is c.
func VerifySolid(data []byte, c RGB) error {
	img, err := decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	return checkUniform(img, c)
}

// decode reads the declared size first so a header claiming more than
// MaxPixels is refused before any pixel buffer is allocated.
func decode(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return imaging.Decode(bytes.NewReader(data))
}

func checkUniform(img image.Image, c RGB) error {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := rgba.PixOffset(x, y)
			p := rgba.Pix[i : i+4]
			if p[0] != c.R || p[1] != c.G || p[2] != c.B || p[3] != 0xff {
				return fmt.Errorf("pixel (%d,%d) is #%02X%02X%02X alpha %d, want %s",
					x, y, p[0], p[1], p[2], p[3], c.Hex())
			}
		}
	}
	return nil
}
