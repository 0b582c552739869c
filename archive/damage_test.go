package archive

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// spyWarner counts the warnings it receives so tests can assert exactly
// how many damage notices fired, without caring about their wording.
type spyWarner struct {
	calls int
}

func (s *spyWarner) Warnf(string, ...interface{}) {
	s.calls++
}

// corruptTail overwrites one byte near the end of path with zero,
// flipping whatever LZW codes live in that region without unraveling the
// stream's structural validity — the corrupted entry still decodes, but
// to the wrong bytes, so its hash check fails.
func corruptTail(t *testing.T, path string, offsetFromEnd int64) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)

	_, err = f.Seek(info.Size()-offsetFromEnd, io.SeekStart)
	require.NoError(t, err)
	_, err = f.Write([]byte{0})
	require.NoError(t, err)
}

// IgnoreDamage keeps whatever the decoder produced for a damaged entry
// and warns exactly once, but still unpacks every entry.
func TestUnpackIgnoreDamageKeepsDamagedFile(t *testing.T) {
	dir := t.TempDir()
	f0 := writeTestFile(t, dir, "0.txt", randomContent(11, 4096))

	archivePath := filepath.Join(dir, "arch.lzw")
	w, err := NewWriter(archivePath)
	require.NoError(t, err)
	require.NoError(t, w.WriteArchive([]InputEntry{{Path: "./", Name: "0.txt", FilePath: f0}}))
	require.NoError(t, w.Close())

	corruptTail(t, archivePath, 10)

	outDir := t.TempDir()
	r, err := NewReader(archivePath)
	require.NoError(t, err)
	defer r.Close()

	warner := &spyWarner{}
	require.NoError(t, r.Unpack(outDir, false, IgnoreDamage, warner))

	require.Equal(t, 1, warner.calls)
	require.FileExists(t, filepath.Join(outDir, "./", "0.txt"))
}

// ArchiveNotDamage rolls back every file unpacked during the run,
// including the damaged one, and stops processing further entries.
func TestUnpackArchiveNotDamageRemovesEverything(t *testing.T) {
	dir := t.TempDir()
	f0 := writeTestFile(t, dir, "0.txt", randomContent(12, 4096))

	archivePath := filepath.Join(dir, "arch.lzw")
	w, err := NewWriter(archivePath)
	require.NoError(t, err)
	require.NoError(t, w.WriteArchive([]InputEntry{{Path: "./", Name: "0.txt", FilePath: f0}}))
	require.NoError(t, w.Close())

	corruptTail(t, archivePath, 10)

	outDir := t.TempDir()
	r, err := NewReader(archivePath)
	require.NoError(t, err)
	defer r.Close()

	warner := &spyWarner{}
	require.NoError(t, r.Unpack(outDir, false, ArchiveNotDamage, warner))

	require.Equal(t, 1, warner.calls)
	require.NoFileExists(t, filepath.Join(outDir, "./", "0.txt"))
}

// FilesNotDamage unpacks every undamaged entry and removes only the
// damaged one, leaving the rest of the archive's contents intact.
func TestUnpackFilesNotDamageKeepsOnlyUndamagedFiles(t *testing.T) {
	dir := t.TempDir()
	f0 := writeTestFile(t, dir, "0.txt", randomContent(13, 2048))
	f1 := writeTestFile(t, dir, "1.txt", randomContent(14, 4096))

	archivePath := filepath.Join(dir, "arch.lzw")
	w, err := NewWriter(archivePath)
	require.NoError(t, err)
	entries := []InputEntry{
		{Path: "./", Name: "0.txt", FilePath: f0},
		{Path: "./", Name: "1.txt", FilePath: f1},
	}
	require.NoError(t, w.WriteArchive(entries))
	require.NoError(t, w.Close())

	// The archive's last bytes belong to the last entry written (1.txt),
	// so this leaves 0.txt untouched and damages only 1.txt.
	corruptTail(t, archivePath, 10)

	outDir := t.TempDir()
	r, err := NewReader(archivePath)
	require.NoError(t, err)
	defer r.Close()

	warner := &spyWarner{}
	require.NoError(t, r.Unpack(outDir, false, FilesNotDamage, warner))

	require.Equal(t, 1, warner.calls)
	require.FileExists(t, filepath.Join(outDir, "./", "0.txt"))
	require.NoFileExists(t, filepath.Join(outDir, "./", "1.txt"))
}
