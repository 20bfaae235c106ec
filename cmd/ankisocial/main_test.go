package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/conorfennell/ankisocial/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every location the collection search and config loading
// consult at empty temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("ANKISOCIAL_DB", "")
	t.Setenv("ANKISOCIAL_MASTODON_URL", "")
	t.Setenv("ANKISOCIAL_MASTODON_TOKEN", "")
}

func TestRunWithoutCollection(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	code := run(nil, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "No Anki collection found")
	assert.Empty(t, stdout.String(), "no partial report is printed")
}

func TestRunWithCollection(t *testing.T) {
	isolate(t)
	db := storagetest.NewCollection(t,
		[]storagetest.Review{{At: time.Now().Add(-time.Hour), Duration: time.Minute}},
		[]time.Time{time.Now().Add(-2 * time.Hour)})
	markerPath := filepath.Join(t.TempDir(), "last-run")
	var stdout, stderr bytes.Buffer

	code := run([]string{"--db", db, "--marker", markerPath}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "You have 1 cards.")
	assert.Contains(t, stdout.String(), "Upcoming achievements")
	assert.FileExists(t, markerPath)
}

func TestRunRejectsBadFlag(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--no-such-flag"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
}
