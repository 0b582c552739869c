package archive

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// EntryInfo is the subset of a Header the listing command needs, parsed
// without ever running the decoder — this is what makes listing cheap
// even on a damaged archive.
type EntryInfo struct {
	Path  string
	Name  string
	Size  uint64
	CSize uint64
	Hash  [16]byte
}

// ListEntries parses every header in archiveName in order, skipping over
// each compressed payload via Seek rather than decoding it. The result
// must match, field for field, what the Writer recorded.
func ListEntries(archiveName string) ([]EntryInfo, error) {
	f, err := os.Open(archiveName)
	if err != nil {
		return nil, errors.Wrapf(err, "archive: open %s", archiveName)
	}
	defer f.Close()

	var countByte [1]byte
	if _, err := io.ReadFull(f, countByte[:]); err != nil {
		return nil, errors.Wrap(err, "archive: read file count")
	}
	count := int(countByte[0])

	entries := make([]EntryInfo, 0, count)
	for i := 0; i < count; i++ {
		header, err := ReadHeader(f)
		if err != nil {
			return nil, err
		}

		entries = append(entries, EntryInfo{
			Path:  header.Path,
			Name:  header.Name,
			Size:  header.Size,
			CSize: header.CSize,
			Hash:  header.Hash,
		})

		if _, err := f.Seek(int64(header.CSize), io.SeekCurrent); err != nil {
			return nil, errors.Wrap(err, "archive: seek past payload")
		}
	}

	return entries, nil
}
