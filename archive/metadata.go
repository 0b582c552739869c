package archive

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

// captureMetadata reads the mode, atime and mtime a Header records for
// path, as they stood at compression time.
func captureMetadata(path string) (mode uint16, atime, mtime float64, size uint64, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, 0, 0, errors.Wrapf(err, "archive: stat %s", path)
	}
	a, m := statTimes(info)
	return statMode(info), a, m, uint64(info.Size()), nil
}

// RestoreMetadata applies the mode and access/modification times
// recorded in h to the file at path. It is only invoked when the caller
// has requested metadata restoration (the -r/--restore-metadata flag).
func RestoreMetadata(path string, h Header) error {
	if err := os.Chmod(path, os.FileMode(h.Mode)); err != nil {
		return errors.Wrapf(err, "archive: chmod %s", path)
	}
	at := time.Unix(0, int64(h.Atime*1e9))
	mt := time.Unix(0, int64(h.Mtime*1e9))
	if err := os.Chtimes(path, at, mt); err != nil {
		return errors.Wrapf(err, "archive: chtimes %s", path)
	}
	return nil
}
