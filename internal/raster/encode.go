package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zlib"
)

// ErrInvalidDimensions is returned when a requested width or height is not
// a positive PNG dimension.
var ErrInvalidDimensions = errors.New("raster: invalid dimensions")

// MaxPixels bounds the area of images that are filled in memory. Encode
// allocates nothing per pixel and is not subject to it.
const MaxPixels = 1 << 26

// ErrImageTooLarge is returned when width*height exceeds MaxPixels. It wraps
// ErrInvalidDimensions.
var ErrImageTooLarge = fmt.Errorf("%w: image exceeds %d pixels", ErrInvalidDimensions, MaxPixels)

// ErrUnknownMode is returned by ParseMode for an unrecognized mode name.
var ErrUnknownMode = errors.New("raster: unknown PNG mode")

// PlaceholderIDAT is the fixed zlib payload written by Encode.
var PlaceholderIDAT = []byte{0x78, 0x9c, 0x62, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01}

// IHDR field values written by both encoders: 8-bit truecolor, deflate,
// adaptive filtering, no interlace.
const (
	bitDepth      = 8
	colorTypeRGB  = 2
	compressDefl  = 0
	filterAdapt   = 0
	interlaceNone = 0
)

// Descriptor describes one solid-color image.
type Descriptor struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Color  RGB `json:"color"`
}

// Mode selects how pixel data is produced.
type Mode int

const (
	// ModeSolid writes a real width x height fill.
	ModeSolid Mode = iota
	// ModePlaceholder writes PlaceholderIDAT regardless of size.
	ModePlaceholder
)

func (m Mode) String() string {
	switch m {
	case ModeSolid:
		return "solid"
	case ModePlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "solid" or "placeholder" to a Mode. The empty string
// selects ModeSolid.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return ModeSolid, nil
	case "placeholder":
		return ModePlaceholder, nil
	default:
		return 0, fmt.Errorf("%w: %q (want solid or placeholder)", ErrUnknownMode, s)
	}
}

// Encode returns a PNG stream with the given IHDR dimensions and the fixed
// placeholder pixel payload.
//
// The color is accepted for signature compatibility with EncodeSolid and is
// not written anywhere. Only the chunk structure is valid; see Inspect.
func Encode(width, height int, c RGB) ([]byte, error) {
	if err := validate(width, height); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeStream(&buf, width, height, PlaceholderIDAT); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeSolid returns a strictly decodable PNG of the given size where every
// pixel is c.
func EncodeSolid(width, height int, c RGB) ([]byte, error) {
	if err := validateArea(width, height); err != nil {
		return nil, err
	}
	return EncodeImage(imaging.New(width, height, c.NRGBA()))
}

// EncodeImage encodes img as an 8-bit truecolor PNG. Alpha is discarded.
func EncodeImage(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if err := validateArea(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}

	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	var z bytes.Buffer
	zw, err := zlib.NewWriterLevel(&z, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}

	// One filter-type byte (0, none) followed by RGB triples per row.
	row := make([]byte, 1+3*w)
	for y := 0; y < h; y++ {
		pix := src.Pix[y*src.Stride : y*src.Stride+4*w]
		for x := 0; x < w; x++ {
			copy(row[1+3*x:4+3*x], pix[4*x:4*x+3])
		}
		if _, err := zw.Write(row); err != nil {
			return nil, fmt.Errorf("failed to compress row %d: %w", y, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish zlib stream: %w", err)
	}

	var buf bytes.Buffer
	if err := writeStream(&buf, w, h, z.Bytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeMode encodes d with the encoder selected by mode.
func EncodeMode(mode Mode, d Descriptor) ([]byte, error) {
	switch mode {
	case ModeSolid:
		return EncodeSolid(d.Width, d.Height, d.Color)
	case ModePlaceholder:
		return Encode(d.Width, d.Height, d.Color)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

func validate(width, height int) error {
	if width <= 0 || height <= 0 || width > math.MaxInt32 || height > math.MaxInt32 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// validateArea applies validate and the MaxPixels budget. Both sides are at
// most MaxInt32, so the product cannot overflow int64.
func validateArea(width, height int) error {
	if err := validate(width, height); err != nil {
		return err
	}
	if int64(width)*int64(height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height)
	}
	return nil
}

// writeStream writes signature, IHDR, a single IDAT and IEND.
func writeStream(buf *bytes.Buffer, width, height int, idat []byte) error {
	buf.Write(Signature)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = bitDepth
	ihdr[9] = colorTypeRGB
	ihdr[10] = compressDefl
	ihdr[11] = filterAdapt
	ihdr[12] = interlaceNone

	if err := WriteChunk(buf, "IHDR", ihdr); err != nil {
		return err
	}
	if err := WriteChunk(buf, "IDAT", idat); err != nil {
		return err
	}
	return WriteChunk(buf, "IEND", nil)
}
