//go:build unix

package archive

import (
	"os"
	"syscall"
)

// statTimes extracts atime/mtime (seconds since epoch, as the header's
// on-wire float64 fields require) from a file's platform-specific stat
// structure. Falls back to ModTime for both when the stat_t isn't
// available, which should not happen on a unix target.
func statTimes(info os.FileInfo) (atime, mtime float64) {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		m := info.ModTime()
		sec := float64(m.UnixNano()) / 1e9
		return sec, sec
	}
	return float64(sys.Atim.Sec) + float64(sys.Atim.Nsec)/1e9,
		float64(sys.Mtim.Sec) + float64(sys.Mtim.Nsec)/1e9
}

// statMode returns the raw POSIX st_mode field (type bits and permission
// bits together), as captured straight from the platform stat_t.
func statMode(info os.FileInfo) uint16 {
	if sys, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint16(sys.Mode)
	}
	return uint16(info.Mode().Perm())
}
