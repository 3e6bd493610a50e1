// Package raster writes and inspects the PNG files used as placeholder sprites.
//
// Two encoders are provided:
//
//   - Encode reproduces the minimal generator the sprites were first built with.
//     It writes a valid signature, IHDR, IDAT and IEND, but the IDAT payload is a
//     fixed nine-byte zlib stream regardless of the requested size or color.
//     Output is well formed at the chunk level and is not a renderable image
//     for any size but 1x1.
//   - EncodeSolid writes a real truecolor image filled with one color. Strict
//     decoders accept it.
//
// # Chunk Layout
//
// Every chunk is serialized as:
//
//	length (4 bytes, big-endian) | type (4 bytes) | data | CRC-32 (4 bytes, big-endian)
//
// The CRC covers type and data only. It is the IEEE CRC-32 (reflected
// polynomial 0xEDB88320, initial value and final XOR 0xFFFFFFFF).
//
// # Inspection
//
// Inspect parses any PNG byte stream back into chunks, checks each CRC, and
// attempts a strict decode. The resulting Report separates structural
// validity from renderability, so placeholder output is flagged instead of
// passing for a correct image.
package raster
