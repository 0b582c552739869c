// Package archive implements the container format that frames one or
// more LZW-compressed files (package lzw) into a single archive: a
// leading file count, then one header-plus-payload record per entry.
package archive

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// fixedHeaderSize is the width of the fixed-layout portion of a header:
// mode(2) + atime(8) + mtime(8) + hash(16) + c_size(8) + size(8) +
// path_length(2) = 52 bytes, per the field layout below.
const fixedHeaderSize = 2 + 8 + 8 + 16 + 8 + 8 + 2

// nameLengthSize accounts for the trailing name_length byte that follows
// the variable-length path.
const nameLengthSize = 1

// reservedHeaderSize returns the total number of bytes a header occupies
// before its payload, including the variable-length path and name:
// 53 + path_length + name_length.
func reservedHeaderSize(pathLen, nameLen int) int {
	return fixedHeaderSize + nameLengthSize + pathLen + nameLen
}

// Header is the fixed-plus-variable per-file record described in the
// container format: filesystem metadata captured at compression time,
// the content hash and size of the compressed payload, and the relative
// path/name the entry restores to.
type Header struct {
	Mode       uint16
	Atime      float64
	Mtime      float64
	Hash       [16]byte
	CSize      uint64
	Size       uint64
	PathLength uint16
	Path       string
	NameLength uint8
	Name       string
}

// HeaderSize returns the number of bytes this header occupies on disk,
// including its variable-length tails.
func (h Header) HeaderSize() int {
	return reservedHeaderSize(len(h.Path), len(h.Name))
}

// MaxPathLength and MaxNameLength are the format's hard ceilings, imposed
// by the width of their respective length-prefix fields.
const (
	MaxPathLength = math.MaxUint16
	MaxNameLength = math.MaxUint8
	// MaxEntries is the archive-wide ceiling on file count, imposed by
	// the single-byte f_count prefix.
	MaxEntries = math.MaxUint8
)

// WritePlaceholder writes the reserved zero-filled header slot a Writer
// backfills once the compressed size and hash are known. It must write
// exactly reservedHeaderSize(len(path), len(name)) bytes.
func WritePlaceholder(w io.Writer, path, name string) (int, error) {
	n := reservedHeaderSize(len(path), len(name))
	buf := make([]byte, n)
	written, err := w.Write(buf)
	if err != nil {
		return written, errors.Wrap(err, "archive: write header placeholder")
	}
	return written, nil
}

// Encode serializes h in the field order and widths the format defines.
func (h Header) Encode() ([]byte, error) {
	if int(h.PathLength) != len(h.Path) {
		return nil, errors.Errorf("archive: path_length %d does not match path %q", h.PathLength, h.Path)
	}
	if int(h.NameLength) != len(h.Name) {
		return nil, errors.Errorf("archive: name_length %d does not match name %q", h.NameLength, h.Name)
	}

	buf := make([]byte, h.HeaderSize())
	off := 0

	binary.LittleEndian.PutUint16(buf[off:], h.Mode)
	off += 2

	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(h.Atime))
	off += 8

	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(h.Mtime))
	off += 8

	copy(buf[off:], h.Hash[:])
	off += 16

	binary.LittleEndian.PutUint64(buf[off:], h.CSize)
	off += 8

	binary.LittleEndian.PutUint64(buf[off:], h.Size)
	off += 8

	binary.LittleEndian.PutUint16(buf[off:], h.PathLength)
	off += 2

	off += copy(buf[off:], h.Path)

	buf[off] = h.NameLength
	off++

	off += copy(buf[off:], h.Name)

	return buf, nil
}

// ReadHeader parses one header from r in field order, returning the
// decoded Header. It reads exactly HeaderSize() bytes for the header it
// finds, positioning r at the start of the compressed payload.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header

	fixed := make([]byte, fixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return h, errors.Wrap(err, "archive: read header")
	}

	off := 0
	h.Mode = binary.LittleEndian.Uint16(fixed[off:])
	off += 2

	h.Atime = math.Float64frombits(binary.LittleEndian.Uint64(fixed[off:]))
	off += 8

	h.Mtime = math.Float64frombits(binary.LittleEndian.Uint64(fixed[off:]))
	off += 8

	copy(h.Hash[:], fixed[off:off+16])
	off += 16

	h.CSize = binary.LittleEndian.Uint64(fixed[off:])
	off += 8

	h.Size = binary.LittleEndian.Uint64(fixed[off:])
	off += 8

	h.PathLength = binary.LittleEndian.Uint16(fixed[off:])
	off += 2

	path := make([]byte, h.PathLength)
	if h.PathLength > 0 {
		if _, err := io.ReadFull(r, path); err != nil {
			return h, errors.Wrap(err, "archive: read header path")
		}
	}
	h.Path = string(path)

	var nameLenBuf [1]byte
	if _, err := io.ReadFull(r, nameLenBuf[:]); err != nil {
		return h, errors.Wrap(err, "archive: read header name_length")
	}
	h.NameLength = nameLenBuf[0]

	name := make([]byte, h.NameLength)
	if h.NameLength > 0 {
		if _, err := io.ReadFull(r, name); err != nil {
			return h, errors.Wrap(err, "archive: read header name")
		}
	}
	h.Name = string(name)

	return h, nil
}
