//go:build !unix

package archive

import "os"

// statTimes falls back to ModTime for both atime and mtime on platforms
// without a POSIX stat_t; the format has no portable atime source outside
// unix.
func statTimes(info os.FileInfo) (atime, mtime float64) {
	m := info.ModTime()
	sec := float64(m.UnixNano()) / 1e9
	return sec, sec
}

// statMode falls back to the permission bits Go's FileInfo exposes
// portably; full POSIX mode bits aren't available off-unix.
func statMode(info os.FileInfo) uint16 {
	return uint16(info.Mode().Perm())
}
