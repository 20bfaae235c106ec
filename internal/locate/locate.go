// Package locate finds an Anki collection in the platform's usual places.
package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CollectionFile is the name Anki gives each profile's database.
const CollectionFile = "collection.anki2"

// ErrNotFound is returned when no collection exists under any search root.
var ErrNotFound = errors.New("no anki collection found")

var appNames = []string{"anki", "Anki2"}

// Roots returns the directories searched by Find, in priority order.
func Roots() []string {
	var bases []string
	if dir, err := os.UserConfigDir(); err == nil {
		bases = append(bases, dir)
	}
	if dir := dataHome(); dir != "" {
		bases = append(bases, dir)
	}

	var roots []string
	for _, app := range appNames {
		for _, b := range bases {
			roots = append(roots, filepath.Join(b, app))
		}
	}
	return roots
}

// dataHome follows the XDG base directory convention.
func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// Find returns the first collection below the default roots.
func Find() (string, error) {
	return FindIn(Roots()...)
}

// FindIn walks each root in turn and returns the first collection file found.
// Missing roots are skipped.
func FindIn(roots ...string) (string, error) {
	for _, root := range roots {
		path, err := findUnder(root)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
	}
	return "", ErrNotFound
}

var errFound = errors.New("found")

func findUnder(root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			// Unreadable subtrees are not fatal for a search.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == CollectionFile {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", fmt.Errorf("error walking directory %s: %w", root, err)
	}
	return found, nil
}
