package lzw

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// code_size never decreases during a single file.
func TestEncoderCodeWidthMonotonic(t *testing.T) {
	payload := randomBytes(t, 1<<18, 42)

	var out bytes.Buffer
	enc := NewEncoder(&out)

	last := enc.codeSize
	// Drive step() directly so we can observe codeSize after every byte.
	for _, b := range payload {
		require.NoError(t, enc.step(b))
		require.GreaterOrEqual(t, enc.codeSize, last)
		last = enc.codeSize
	}
}

// next_code never exceeds 2^16.
func TestEncoderDictionaryBound(t *testing.T) {
	payload := randomBytes(t, 1<<21, 43)

	var out bytes.Buffer
	enc := NewEncoder(&out)
	for _, b := range payload {
		require.NoError(t, enc.step(b))
		require.LessOrEqual(t, enc.nextCode, uint32(maxCode))
	}
}

// c_size equals exactly the number of bytes the encoder writes after
// the reserved header.
func TestEncoderReportsExactByteCount(t *testing.T) {
	payload := randomBytes(t, 10000, 44)

	var out bytes.Buffer
	enc := NewEncoder(&out)
	cSize, _, err := enc.Encode(bytes.NewReader(payload))
	require.NoError(t, err)
	require.EqualValues(t, out.Len(), cSize)
}

func TestDictKeyDistinctForDistinctInputs(t *testing.T) {
	require.NotEqual(t, dictKey(1, 2), dictKey(2, 1))
	require.NotEqual(t, dictKey(-1, 0), dictKey(0, 0))
}

func TestBitLen(t *testing.T) {
	cases := map[uint32]int{
		0:     0,
		1:     1,
		255:   8,
		256:   9,
		257:   9,
		511:   9,
		512:   10,
		65535: 16,
		65536: 17,
	}
	for n, want := range cases {
		require.Equal(t, want, bitLen(n), "bitLen(%d)", n)
	}
}

func TestEncoderDeterministic(t *testing.T) {
	payload := randomBytes(t, 5000, rand.Int63())

	var out1, out2 bytes.Buffer
	_, h1, err := NewEncoder(&out1).Encode(bytes.NewReader(payload))
	require.NoError(t, err)
	_, h2, err := NewEncoder(&out2).Encode(bytes.NewReader(payload))
	require.NoError(t, err)

	require.Equal(t, out1.Bytes(), out2.Bytes())
	require.Equal(t, h1, h2)
}
