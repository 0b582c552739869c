package archive

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// InputEntry names one file to compress together with the path/name pair
// its header will record — path is relative to the directory's parent
// when the input was a directory, or "./" for a top-level file, and name
// is always the basename.
type InputEntry struct {
	Path     string
	Name     string
	FilePath string
}

// FlattenInputs walks the host-selected compress targets (files or
// directories) into the flat list of file entries the Writer expects,
// deriving path/name for both the single-file and directory cases.
func FlattenInputs(targets []string) ([]InputEntry, error) {
	var entries []InputEntry

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, errors.Wrapf(err, "archive: stat %s", target)
		}

		if !info.IsDir() {
			entries = append(entries, InputEntry{
				Path:     "./",
				Name:     filepath.Base(target),
				FilePath: target,
			})
			continue
		}

		dirName := filepath.Dir(target)
		err = filepath.Walk(target, func(p string, fi os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if fi.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(dirName, filepath.Dir(p))
			if err != nil {
				return err
			}

			entries = append(entries, InputEntry{
				Path:     rel,
				Name:     fi.Name(),
				FilePath: p,
			})
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "archive: walk %s", target)
		}
	}

	return entries, nil
}
