// Package storagetest builds throwaway collection files for tests.
package storagetest

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
	"github.com/conorfennell/ankisocial/internal/storage"
	_ "modernc.org/sqlite"
)

// Review is one revlog row to seed.
type Review struct {
	At       time.Time
	Duration time.Duration
}

// NewCollection writes a collection containing the given reviews and card
// creations to a temp dir and returns its path. Timestamps must be unique
// per log at millisecond precision.
func NewCollection(tb testing.TB, reviews []Review, cards []time.Time) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "collection.anki2")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		tb.Fatalf("open fixture: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(storage.CollectionSchema); err != nil {
		tb.Fatalf("apply fixture schema: %v", err)
	}
	for _, r := range reviews {
		if _, err := db.Exec(`INSERT INTO revlog (id, time) VALUES (?, ?)`,
			domain.Millis(r.At), r.Duration.Milliseconds()); err != nil {
			tb.Fatalf("seed review %v: %v", r.At, err)
		}
	}
	for _, c := range cards {
		if _, err := db.Exec(`INSERT INTO cards (id) VALUES (?)`, domain.Millis(c)); err != nil {
			tb.Fatalf("seed card %v: %v", c, err)
		}
	}
	return path
}
