package lzw

import "io"

// bitWriter accumulates codes of varying width into a wide bit buffer and
// flushes whole bytes out to the wrapped writer as they become available,
// generalizing fixed-width word packing into an arbitrary bit-width
// accumulator driven one code at a time.
type bitWriter struct {
	w       io.Writer
	buff    uint64
	pending int
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: w}
}

// WriteCode appends code, width bits wide, at the high end of the pending
// bits, then flushes every whole byte that becomes available.
func (bw *bitWriter) WriteCode(code uint32, width int) error {
	bw.buff |= uint64(code) << uint(bw.pending)
	bw.pending += width

	var out [1]byte
	for bw.pending >= 8 {
		out[0] = byte(bw.buff)
		if _, err := bw.w.Write(out[:]); err != nil {
			return err
		}
		bw.buff >>= 8
		bw.pending -= 8
	}
	return nil
}

// Flush forces out one final byte regardless of how many bits are still
// pending. The decoder tolerates the resulting trailing padding bits
// because its own termination is driven by the stored compressed size,
// not by a bit count.
func (bw *bitWriter) Flush() error {
	_, err := bw.w.Write([]byte{byte(bw.buff)})
	return err
}

// bitReader pulls fixed-width codes from a byte source, low bits first.
// It has no notion of end-of-region; callers that need to detect the end
// of a bounded stream do so through the source they hand it (see
// boundedSource in decoder.go).
type bitReader struct {
	src       io.ByteReader
	buff      uint64
	available int
}

func newBitReader(src io.ByteReader) *bitReader {
	return &bitReader{src: src}
}

// ReadCode extracts the next width-bit code, refilling from src as needed.
// If src runs out mid-refill, ReadCode stops silently and extracts
// whatever bits remain, with the missing high bits reading as zero.
func (br *bitReader) ReadCode(width int) uint32 {
	for br.available < width {
		b, err := br.src.ReadByte()
		if err != nil {
			break
		}
		br.buff |= uint64(b) << uint(br.available)
		br.available += 8
	}

	mask := uint64(1)<<uint(width) - 1
	code := uint32(br.buff & mask)
	br.buff >>= uint(width)
	br.available -= width
	return code
}
