// Package lzw implements the adaptive, variable-width LZW codec used by
// the archive container in package archive. It is a streaming codec: the
// encoder consumes a byte stream and emits codes through a bit-packed
// writer, and the decoder does the reverse over a fixed-length compressed
// region.
package lzw

import "errors"

const (
	// minCodeWidth is the code width codes start at; the first 256 codes
	// are the single-byte literals seeded into every dictionary.
	minCodeWidth = 9

	// maxCode is the hard ceiling on the dictionary: once next_code
	// reaches it, both encoder and decoder freeze (no resets, no further
	// inserts).
	maxCode = 1 << 16

	// baseCodeCount is the number of single-byte codes seeded up front.
	baseCodeCount = 256
)

// ErrDamaged is returned by the decoder when the compressed stream cannot
// be resolved into a valid dictionary reference: an unknown code arrives
// with no previous match to fall back on (KwKwK requires one), or a code
// points past anything the dictionary could legally contain yet. The
// archive reader turns this into damage handling per its configured
// policy; it is never a host I/O failure.
var ErrDamaged = errors.New("lzw: damaged or corrupted stream")

// bitLen returns the number of bits needed to represent n, matching
// Python's int.bit_length() — the width-update rule in both encoder and
// decoder is defined directly in terms of it.
func bitLen(n uint32) int {
	bits := 0
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}
