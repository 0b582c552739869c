package lzw

import "io"

// teeWriter forwards every byte written through it to both a hasher and
// the real destination, while counting the bytes that make it through —
// this is how the encoder produces c_size and the content hash in the
// same pass, without buffering the whole compressed payload.
type teeWriter struct {
	dst io.Writer
	h   *hasher
	n   int64
}

func (t *teeWriter) Write(p []byte) (int, error) {
	if _, err := t.h.Write(p); err != nil {
		return 0, err
	}
	n, err := t.dst.Write(p)
	t.n += int64(n)
	return n, err
}

// Encoder performs adaptive LZW compression of a single file's byte
// stream. Its dictionary is an open-addressed table keyed by
// (parent code, next byte) rather than by full byte strings: this
// preserves O(1) lookup while avoiding quadratic string concatenation,
// and keeps dictionary, bit writer, hasher and running counters all
// owned by one file-scoped value.
type Encoder struct {
	bw  *bitWriter
	tee *teeWriter

	dict     map[uint32]uint32 // (parent<<8 | byte) -> code
	codeSize int
	nextCode uint32

	// current holds the code for current_string as accumulated so far;
	// -1 means current_string is empty (only true before the first byte
	// and, degenerately, for a zero-length input).
	current int32
}

// NewEncoder creates an Encoder that writes its compressed output to dst.
func NewEncoder(dst io.Writer) *Encoder {
	h := newHasher()
	t := &teeWriter{dst: dst, h: h}
	return &Encoder{
		bw:       newBitWriter(t),
		tee:      t,
		dict:     make(map[uint32]uint32),
		codeSize: minCodeWidth,
		nextCode: baseCodeCount,
		current:  -1,
	}
}

func dictKey(parent int32, b byte) uint32 {
	return uint32(parent)<<8 | uint32(b)
}

// Encode streams src through the encoder to completion, returning the
// compressed byte count (c_size) and the MD5 hash of the compressed
// stream the container records alongside it.
func (e *Encoder) Encode(src io.Reader) (int64, [16]byte, error) {
	var buf [32 * 1024]byte
	for {
		n, rerr := src.Read(buf[:])
		for i := 0; i < n; i++ {
			if err := e.step(buf[i]); err != nil {
				return 0, [16]byte{}, err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return 0, [16]byte{}, rerr
		}
	}

	if err := e.finish(); err != nil {
		return 0, [16]byte{}, err
	}
	return e.tee.n, e.tee.h.Sum(), nil
}

// step processes one input byte per the per-byte operation in the LZW
// encoder contract: extend the current match if possible, otherwise emit
// the prefix, grow the dictionary, and restart the match on b.
func (e *Encoder) step(b byte) error {
	if e.current == -1 {
		// current_string == "" + b is trivially in the dictionary: every
		// single byte is seeded as its own code.
		e.current = int32(b)
		return nil
	}

	key := dictKey(e.current, b)
	if code, ok := e.dict[key]; ok {
		e.current = int32(code)
		return nil
	}

	if err := e.bw.WriteCode(uint32(e.current), e.codeSize); err != nil {
		return err
	}

	if e.nextCode < maxCode {
		e.dict[key] = e.nextCode
		e.nextCode++
		e.codeSize = bitLen(e.nextCode)
	}

	e.current = int32(b)
	return nil
}

// finish appends the sentinel byte implicitly (current_string's trailing
// byte never gets looked up again, so there's nothing to append it to),
// flushes the final prefix code, then writes the one extra byte the
// container format requires at end of stream regardless of how many bits
// were still pending.
func (e *Encoder) finish() error {
	if e.current != -1 {
		if err := e.bw.WriteCode(uint32(e.current), e.codeSize); err != nil {
			return err
		}
	}
	return e.bw.Flush()
}
