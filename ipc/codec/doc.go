// Package codec implements the fixed-layout binary wire codec for the
// automation service's ABI. It is the single place in the subsystem that
// knows byte offsets, padding and field widths; everything above it works
// with typed values from the common package.
//
// The peer is a pre-existing native process, so the layouts here must
// reproduce its struct packing bit-for-bit. For that reason the codec is
// written as an explicit offset-table (de)serializer on encoding/binary
// rather than on a general-purpose serialization library: self-describing
// formats cannot match a foreign ABI.
//
// Decoding rules:
//
//   - The 32-byte response header is mandatory; shorter buffers fail
//     with common.ErrMalformedResponse and nothing is read out of bounds.
//
//   - DesktopElement records tolerate truncation: a short buffer yields
//     nil instead of an error so partial scans can succeed with fewer
//     elements than the advertised count.
//
//   - Fixed-width string fields are NUL-scanned and UTF-8 decoded with
//     replacement of invalid sequences; string decoding never fails.
package codec
