package marker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissing(t *testing.T) {
	_, ok, err := Read(filepath.Join(t.TempDir(), "last-run"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "last-run")
	at := time.Date(2024, time.May, 4, 18, 30, 15, 250_000_000, time.UTC)

	require.NoError(t, Write(path, at))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1714847415250", string(raw))

	got, ok, err := Read(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(at))
}

func TestReadToleratesTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-run")
	require.NoError(t, os.WriteFile(path, []byte("1700000000000\n"), 0o644))

	got, ok, err := Read(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), got.UnixMilli())
}

func TestReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-run")
	require.NoError(t, os.WriteFile(path, []byte("yesterday"), 0o644))

	_, _, err := Read(path)
	assert.ErrorContains(t, err, "malformed")
}
