package domain

import "time"

// Log identifies one of the append-only event logs in a collection.
type Log int

const (
	// Reviews is the review log. Each entry carries a duration in milliseconds.
	Reviews Log = iota
	// Cards is the card-creation log.
	Cards
)

func (l Log) String() string {
	switch l {
	case Reviews:
		return "reviews"
	case Cards:
		return "cards"
	default:
		return "unknown"
	}
}

// Millis returns t as milliseconds since the Unix epoch, the unit used for
// event identifiers in the collection.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis is the inverse of Millis, in the local time zone.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
