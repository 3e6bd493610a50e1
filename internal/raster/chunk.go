package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// Signature is the 8-byte magic that starts every PNG stream.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var (
	// ErrBadSignature is returned when a stream does not start with Signature.
	ErrBadSignature = errors.New("raster: missing PNG signature")

	// ErrTruncatedChunk is returned when a chunk record runs past the end of the data.
	ErrTruncatedChunk = errors.New("raster: truncated chunk")

	// ErrChecksumMismatch is returned when a stored CRC does not match the computed one.
	ErrChecksumMismatch = errors.New("raster: chunk checksum mismatch")
)

// Chunk is a single type-tagged record of a PNG stream.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32 // stored checksum, as read or as written
}

// Checksum returns the CRC-32 of a chunk's type tag followed by its data.
func Checksum(typ string, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write([]byte(typ))
	h.Write(data)
	return h.Sum32()
}

// ValidChunkType reports whether typ is four ASCII letters.
func ValidChunkType(typ string) bool {
	if len(typ) != 4 {
		return false
	}
	for i := 0; i < len(typ); i++ {
		c := typ[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// WriteChunk serializes one chunk to w.
func WriteChunk(w io.Writer, typ string, data []byte) error {
	if !ValidChunkType(typ) {
		return fmt.Errorf("raster: chunk type %q must be 4 ASCII letters", typ)
	}

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], typ)

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], Checksum(typ, data))

	for _, b := range [][]byte{hdr[:], data, sum[:]} {
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("failed to write %s chunk: %w", typ, err)
		}
	}
	return nil
}

// ReadChunks splits a PNG stream into its chunks.
//
// The signature is required. Reading stops after IEND; trailing bytes are
// ignored. A record whose stored CRC differs from the computed value yields
// ErrChecksumMismatch together with the chunks read so far, including the
// bad one.
func ReadChunks(data []byte) ([]Chunk, error) {
	if !bytes.HasPrefix(data, Signature) {
		return nil, ErrBadSignature
	}
	rest := data[len(Signature):]

	var chunks []Chunk
	for len(rest) > 0 {
		if len(rest) < 12 {
			return chunks, fmt.Errorf("%w: %d trailing bytes", ErrTruncatedChunk, len(rest))
		}
		n := binary.BigEndian.Uint32(rest[:4])
		if uint64(n)+12 > uint64(len(rest)) {
			return chunks, fmt.Errorf("%w: %s declares %d bytes, %d available",
				ErrTruncatedChunk, rest[4:8], n, len(rest)-12)
		}

		c := Chunk{
			Type: string(rest[4:8]),
			Data: rest[8 : 8+n],
			CRC:  binary.BigEndian.Uint32(rest[8+n : 12+n]),
		}
		chunks = append(chunks, c)
		rest = rest[12+n:]

		if got := Checksum(c.Type, c.Data); got != c.CRC {
			return chunks, fmt.Errorf("%w: %s stored %08X, computed %08X",
				ErrChecksumMismatch, c.Type, c.CRC, got)
		}
		if c.Type == "IEND" {
			break
		}
	}
	return chunks, nil
}
