package archive

import (
	"io"
	"os"
	"path/filepath"

	stderrors "errors"

	"github.com/pkg/errors"

	"github.com/razzie/lzwarchiver/lzw"
)

// Reader parses the archive's leading file count and then, per entry,
// its header and compressed payload in turn — see Unpack.
type Reader struct {
	f         *os.File
	fileCount int
}

// NewReader opens archiveName and reads its leading f_count byte.
func NewReader(archiveName string) (*Reader, error) {
	f, err := os.Open(archiveName)
	if err != nil {
		return nil, errors.Wrapf(err, "archive: open %s", archiveName)
	}

	var countByte [1]byte
	if _, err := io.ReadFull(f, countByte[:]); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "archive: read file count")
	}

	return &Reader{f: f, fileCount: int(countByte[0])}, nil
}

// Close closes the underlying archive file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Unpack extracts every entry into outputDir, applying metadata restore
// and the damage policy in turn. warn receives one notice per damaged
// entry, or one for a whole-archive rollback under ArchiveNotDamage.
func (r *Reader) Unpack(outputDir string, restore bool, policy Policy, warn Warner) error {
	if warn == nil {
		warn = nopWarner{}
	}

	var unpacked []string

	for i := 0; i < r.fileCount; i++ {
		header, err := ReadHeader(r.f)
		if err != nil {
			return err
		}

		dir := filepath.Join(outputDir, header.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "archive: mkdir %s", dir)
		}
		outPath := filepath.Join(dir, header.Name)

		payloadStart, err := r.f.Seek(0, io.SeekCurrent)
		if err != nil {
			return errors.Wrap(err, "archive: tell")
		}

		damagedDecode, decHash, err := r.unpackEntry(header, outPath)
		if err != nil {
			return err
		}

		// The reader never reads more than c_size bytes of payload per
		// entry regardless of how far the decoder actually got, and is
		// always positioned exactly at the next header afterward.
		if _, err := r.f.Seek(payloadStart+int64(header.CSize), io.SeekStart); err != nil {
			return errors.Wrap(err, "archive: seek to next entry")
		}

		if damagedDecode {
			if done := applyDamagePolicy(policy, warn, header.Name, outPath, &unpacked); done {
				return nil
			}
			continue
		}

		// Only entries that decoded structurally clean are considered
		// "unpacked" for rollback purposes at this point — a hash
		// mismatch caught below still counts as unpacked-then-rolled-back.
		unpacked = append(unpacked, outPath)

		if restore {
			if err := RestoreMetadata(outPath, header); err != nil {
				return err
			}
		}

		if decHash != header.Hash {
			if done := applyDamagePolicy(policy, warn, header.Name, outPath, &unpacked); done {
				return nil
			}
		}
	}

	return nil
}

// applyDamagePolicy runs the damage-handling state machine for one
// damaged entry. It returns true when the caller should stop processing
// further entries (ArchiveNotDamage).
func applyDamagePolicy(policy Policy, warn Warner, name, outPath string, unpacked *[]string) bool {
	switch policy {
	case ArchiveNotDamage:
		warn.Warnf("archive not unpacked: %s damaged", name)
		for _, f := range *unpacked {
			os.Remove(f)
		}
		return true
	case FilesNotDamage:
		warn.Warnf("%s not unpacked: damaged", name)
		os.Remove(outPath)
		return false
	default: // IgnoreDamage
		warn.Warnf("%s damaged!", name)
		return false
	}
}

// unpackEntry decodes one entry's payload into outPath. It returns
// damaged=true when the decoder signalled an unresolvable code; any
// other error is a fatal host I/O failure, not damage.
func (r *Reader) unpackEntry(header Header, outPath string) (damaged bool, hash [16]byte, err error) {
	out, err := os.Create(outPath)
	if err != nil {
		return false, hash, errors.Wrapf(err, "archive: create %s", outPath)
	}
	defer out.Close()

	dec := lzw.NewDecoder(r.f, int64(header.CSize))
	if decErr := dec.Decode(out); decErr != nil {
		if stderrors.Is(decErr, lzw.ErrDamaged) {
			return true, hash, nil
		}
		return false, hash, errors.Wrapf(decErr, "archive: decompress %s", outPath)
	}

	return false, dec.Hash(), nil
}
