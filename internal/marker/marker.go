// Package marker persists the time of the previous run.
package marker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
)

// DefaultPath returns <user config dir>/ankisocial/last-run.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "ankisocial", "last-run"), nil
}

// Read returns the stored timestamp. ok is false when no marker exists yet.
func Read(path string) (t time.Time, ok bool, err error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read marker %s: %w", path, err)
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed marker %s: %w", path, err)
	}
	return domain.FromMillis(ms), true, nil
}

// Write stores t, creating the parent directory if needed.
func Write(path string, t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create marker dir: %w", err)
	}
	data := strconv.FormatInt(domain.Millis(t), 10)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write marker %s: %w", path, err)
	}
	return nil
}
