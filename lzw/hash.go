package lzw

import (
	"crypto/md5"
	"hash"
)

// hasher incrementally hashes the compressed byte stream of a single
// file. The wire format hard-codes MD5 (see the per-file header layout in
// package archive); this is a spec-mandated algorithm choice, not a
// discretionary one, so it stays on the standard library rather than
// reaching for a third-party hash package.
type hasher struct {
	h hash.Hash
}

func newHasher() *hasher {
	return &hasher{h: md5.New()}
}

func (h *hasher) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

// Sum finalizes and returns the 16-byte digest. It may be called only
// once per file; the dictionary (and thus the hasher) is recreated
// per-entry by the caller.
func (h *hasher) Sum() [16]byte {
	var out [16]byte
	copy(out[:], h.h.Sum(nil))
	return out
}
