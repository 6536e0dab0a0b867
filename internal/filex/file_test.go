package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsReadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.txt")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o600))

	require.NoError(t, IsReadable(path))
	require.Error(t, IsReadable(filepath.Join(dir, "missing.txt")))
}

func TestSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o600))

	n, err := Size(path)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)

	_, err = Size(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	sum, err := Checksum(path)
	require.NoError(t, err)
	// sha256("hello")
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)

	_, err = Checksum(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}
