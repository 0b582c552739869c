package archive

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/razzie/lzwarchiver/lzw"
)

// Writer streams each input file through the LZW encoder into an
// archive, reserving header space up front and backfilling it once the
// compressed size and hash are known — see writeEntry for why.
type Writer struct {
	f *os.File
}

// NewWriter opens archiveName for writing and returns a Writer over it.
func NewWriter(archiveName string) (*Writer, error) {
	f, err := os.Create(archiveName)
	if err != nil {
		return nil, errors.Wrapf(err, "archive: create %s", archiveName)
	}
	return &Writer{f: f}, nil
}

// Close closes the underlying archive file.
func (w *Writer) Close() error {
	return w.f.Close()
}

// WriteArchive compresses every entry into the archive in order,
// preceded by the single f_count byte. len(entries) must not exceed
// MaxEntries; larger batches must be split by the caller.
func (w *Writer) WriteArchive(entries []InputEntry) error {
	if len(entries) > MaxEntries {
		return errors.Errorf("archive: %d entries exceeds the %d-entry format limit", len(entries), MaxEntries)
	}

	if _, err := w.f.Write([]byte{byte(len(entries))}); err != nil {
		return errors.Wrap(err, "archive: write file count")
	}

	for _, entry := range entries {
		if err := w.writeEntry(entry); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry implements a reserve-then-backfill pattern: the header's
// c_size and hash fields are only known once the
// encoder finishes, so we reserve a zero-filled placeholder, stream the
// compressed payload immediately after it, then seek back and write the
// real header in place. This avoids buffering the whole compressed
// payload in memory just to learn its length.
func (w *Writer) writeEntry(entry InputEntry) error {
	mode, atime, mtime, size, err := captureMetadata(entry.FilePath)
	if err != nil {
		return err
	}

	placeholderSize, err := WritePlaceholder(w.f, entry.Path, entry.Name)
	if err != nil {
		return err
	}

	src, err := os.Open(entry.FilePath)
	if err != nil {
		return errors.Wrapf(err, "archive: open %s", entry.FilePath)
	}
	defer src.Close()

	enc := lzw.NewEncoder(w.f)
	cSize, hash, err := enc.Encode(src)
	if err != nil {
		return errors.Wrapf(err, "archive: compress %s", entry.FilePath)
	}

	header := Header{
		Mode:       mode,
		Atime:      atime,
		Mtime:      mtime,
		Hash:       hash,
		CSize:      uint64(cSize),
		Size:       size,
		PathLength: uint16(len(entry.Path)),
		Path:       entry.Path,
		NameLength: uint8(len(entry.Name)),
		Name:       entry.Name,
	}

	if _, err := w.f.Seek(-(int64(placeholderSize) + cSize), io.SeekCurrent); err != nil {
		return errors.Wrap(err, "archive: seek back to header")
	}

	encoded, err := header.Encode()
	if err != nil {
		return err
	}
	if _, err := w.f.Write(encoded); err != nil {
		return errors.Wrap(err, "archive: write header")
	}

	if _, err := w.f.Seek(cSize, io.SeekCurrent); err != nil {
		return errors.Wrap(err, "archive: seek past payload")
	}

	return nil
}
