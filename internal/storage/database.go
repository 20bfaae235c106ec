package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// ErrNotCollection is returned by Open when the file lacks the review or card log.
var ErrNotCollection = errors.New("not an anki collection")

// DB is a read-only view of a collection's review and card-creation logs.
type DB struct {
	conn *sql.DB
}

// Open connects to the collection at path in immutable read-only mode, so a
// running Anki instance writing to the same file cannot be disturbed.
func Open(path string) (*DB, error) {
	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := checkTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// readOnlyDSN builds a sqlite URI filename. The path is made absolute so the
// URI never carries an authority component.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: "mode=ro&immutable=1",
	}
	return u.String(), nil
}

func checkTables(db *sql.DB) error {
	for _, name := range requiredTables {
		var n int
		err := db.QueryRow(
			`SELECT count() FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
		).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to inspect schema: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: missing table %s", ErrNotCollection, name)
		}
	}
	return nil
}

func tableFor(log domain.Log) (string, error) {
	switch log {
	case domain.Reviews:
		return "revlog", nil
	case domain.Cards:
		return "cards", nil
	default:
		return "", fmt.Errorf("unknown log %d", int(log))
	}
}

// CountBefore counts events in log whose timestamp is strictly less than before.
func (db *DB) CountBefore(ctx context.Context, log domain.Log, before time.Time) (int64, error) {
	table, err := tableFor(log)
	if err != nil {
		return 0, err
	}
	var n int64
	err = db.conn.QueryRowContext(ctx,
		`SELECT count() FROM `+table+` WHERE id < ?`, domain.Millis(before),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s before %d: %w", log, domain.Millis(before), err)
	}
	return n, nil
}

// CountBetween counts events in log strictly inside the window (after, before).
func (db *DB) CountBetween(ctx context.Context, log domain.Log, after, before time.Time) (int64, error) {
	table, err := tableFor(log)
	if err != nil {
		return 0, err
	}
	var n int64
	err = db.conn.QueryRowContext(ctx,
		`SELECT count() FROM `+table+` WHERE id > ? AND id < ?`,
		domain.Millis(after), domain.Millis(before),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s between %d and %d: %w",
			log, domain.Millis(after), domain.Millis(before), err)
	}
	return n, nil
}

// SumDurationBefore returns the total review duration in milliseconds for
// reviews strictly before before. An empty log sums to zero.
func (db *DB) SumDurationBefore(ctx context.Context, before time.Time) (int64, error) {
	var sum sql.NullInt64
	err := db.conn.QueryRowContext(ctx,
		`SELECT sum(time) FROM revlog WHERE id < ?`, domain.Millis(before),
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum review time before %d: %w", domain.Millis(before), err)
	}
	return sum.Int64, nil
}

// FirstEvent returns the timestamp of the oldest event in log. ok is false
// when the log is empty.
func (db *DB) FirstEvent(ctx context.Context, log domain.Log) (first time.Time, ok bool, err error) {
	table, err := tableFor(log)
	if err != nil {
		return time.Time{}, false, err
	}
	var ms sql.NullInt64
	if err := db.conn.QueryRowContext(ctx, `SELECT min(id) FROM `+table).Scan(&ms); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to find first %s event: %w", log, err)
	}
	if !ms.Valid {
		return time.Time{}, false, nil
	}
	return domain.FromMillis(ms.Int64), true, nil
}
