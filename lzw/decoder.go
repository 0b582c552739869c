package lzw

import "io"

// boundedSource reads at most cSize bytes from r, one at a time, hashing
// every byte it hands out and flipping eof once the region is exhausted.
// It implements io.ByteReader so a bitReader can sit on top of it without
// knowing anything about region bounds or hashing.
type boundedSource struct {
	r         io.Reader
	remaining int64
	h         *hasher
	eof       bool
}

func (s *boundedSource) ReadByte() (byte, error) {
	if s.remaining <= 0 {
		return 0, io.EOF
	}

	var buf [1]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return 0, err
	}

	s.remaining--
	s.h.Write(buf[:])
	if s.remaining == 0 {
		s.eof = true
	}
	return buf[0], nil
}

// decEntry is a back-pointer dictionary entry: the sequence it represents
// is entries[prefix]'s sequence with b appended. Base entries (the 256
// seeded single bytes) have prefix -1. first and length are cached at
// insertion time so resolving a code's first byte or total length never
// requires walking the whole chain.
type decEntry struct {
	prefix int32
	b      byte
	first  byte
	length int
}

// Decoder performs adaptive LZW decompression, mirroring Encoder's state
// machine: a dictionary (here code -> sequence, via back-pointer chains),
// a current code width, and a bit reader layered over a hash-tracking,
// region-bounded byte source.
type Decoder struct {
	br  *bitReader
	src *boundedSource

	entries  []decEntry
	codeSize int
	nextCode uint32

	// previous holds the code for previous_string; -1 means empty (only
	// true before the first code of the stream is decoded).
	previous int32
}

// NewDecoder creates a Decoder that reads exactly cSize compressed bytes
// from r.
func NewDecoder(r io.Reader, cSize int64) *Decoder {
	src := &boundedSource{r: r, remaining: cSize, h: newHasher()}

	entries := make([]decEntry, baseCodeCount, maxCode)
	for i := 0; i < baseCodeCount; i++ {
		entries[i] = decEntry{prefix: -1, b: byte(i), first: byte(i), length: 1}
	}

	return &Decoder{
		br:       newBitReader(src),
		src:      src,
		entries:  entries,
		codeSize: minCodeWidth,
		nextCode: baseCodeCount,
		previous: -1,
	}
}

// expand reconstructs the byte sequence already held in the dictionary
// for code by walking its back-pointer chain.
func (d *Decoder) expand(code uint32) []byte {
	e := d.entries[code]
	out := make([]byte, e.length)
	c := int32(code)
	for i := e.length - 1; i >= 0; i-- {
		ent := d.entries[c]
		out[i] = ent.b
		c = ent.prefix
	}
	return out
}

// resolve returns the byte sequence code refers to, handling the classic
// KwKwK case (code == next_code, not yet inserted) by reconstructing it
// from previous_string. Any other unknown code is damage.
func (d *Decoder) resolve(code uint32) ([]byte, error) {
	if code < uint32(len(d.entries)) {
		return d.expand(code), nil
	}

	if code == d.nextCode {
		if d.previous == -1 {
			return nil, ErrDamaged
		}
		prev := d.expand(uint32(d.previous))
		out := make([]byte, len(prev)+1)
		copy(out, prev)
		out[len(prev)] = prev[0]
		return out, nil
	}

	return nil, ErrDamaged
}

// Decode drains the compressed region into dst, one symbol at a time,
// stopping when the bounded source is exhausted. It returns ErrDamaged
// for an unresolvable code and the underlying error for any I/O failure
// on dst; neither case leaves the dictionary in a usable state, matching
// the per-file lifetime of both dictionary and bit buffer.
func (d *Decoder) Decode(dst io.Writer) error {
	for {
		code := d.br.ReadCode(d.codeSize)

		if d.src.eof {
			if code != 0 {
				seq, err := d.resolve(code)
				if err != nil {
					return err
				}
				if _, err := dst.Write(seq); err != nil {
					return err
				}
			}
			return nil
		}

		seq, err := d.resolve(code)
		if err != nil {
			return err
		}
		if _, err := dst.Write(seq); err != nil {
			return err
		}

		if d.previous != -1 && d.nextCode < maxCode {
			d.entries = append(d.entries, decEntry{
				prefix: d.previous,
				b:      seq[0],
				first:  d.entries[d.previous].first,
				length: d.entries[d.previous].length + 1,
			})
			d.nextCode++
			d.codeSize = bitLen(d.nextCode + 1)
		}

		d.previous = int32(code)
	}
}

// Hash returns the MD5 digest of the compressed bytes consumed so far.
// Call it after Decode returns to compare against the stored header
// hash.
func (d *Decoder) Hash() [16]byte {
	return d.src.h.Sum()
}
