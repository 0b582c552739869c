package lzw

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// A corrupted stream whose very first code is already out of the base
// range (so previous_string is still empty) must surface as damage.
func TestDecoderDamageOnUnknownFirstCode(t *testing.T) {
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	// 256 is the first non-literal code; decoding it as the very first
	// code of a stream is never legal since nothing has been inserted
	// into the dictionary yet.
	require.NoError(t, bw.WriteCode(256, minCodeWidth))
	require.NoError(t, bw.Flush())

	dec := NewDecoder(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	var out bytes.Buffer
	err := dec.Decode(&out)
	require.ErrorIs(t, err, ErrDamaged)
}

func TestDecoderDamageOnOutOfRangeCode(t *testing.T) {
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	// Valid first code (a literal), followed by a code far beyond
	// next_code — never valid under KwKwK either.
	require.NoError(t, bw.WriteCode(5, minCodeWidth))
	require.NoError(t, bw.WriteCode(999, minCodeWidth))
	require.NoError(t, bw.Flush())

	dec := NewDecoder(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	var out bytes.Buffer
	err := dec.Decode(&out)
	require.ErrorIs(t, err, ErrDamaged)
}

func TestDecoderKwKwKCase(t *testing.T) {
	// Encode "abcabc" by hand won't trivially hit KwKwK; easier to just
	// round-trip data known to exercise it (repeated-prefix patterns
	// reliably trigger the classic case) and confirm no damage results.
	payload := []byte("ababababababab")

	var compressed bytes.Buffer
	enc := NewEncoder(&compressed)
	cSize, _, err := enc.Encode(bytes.NewReader(payload))
	require.NoError(t, err)

	dec := NewDecoder(bytes.NewReader(compressed.Bytes()), cSize)
	var out bytes.Buffer
	require.NoError(t, dec.Decode(&out))
	require.Equal(t, payload, out.Bytes())
}
