package score_test

import (
	"context"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
)

type review struct {
	at  time.Time
	dur time.Duration
}

// memStore answers the aggregate queries from slices, with the same bound
// semantics as the sqlite accessor.
type memStore struct {
	reviews []review
	cards   []time.Time
	calls   int
}

func (m *memStore) times(log domain.Log) []int64 {
	var out []int64
	switch log {
	case domain.Reviews:
		for _, r := range m.reviews {
			out = append(out, domain.Millis(r.at))
		}
	case domain.Cards:
		for _, c := range m.cards {
			out = append(out, domain.Millis(c))
		}
	}
	return out
}

func (m *memStore) CountBefore(_ context.Context, log domain.Log, before time.Time) (int64, error) {
	m.calls++
	var n int64
	for _, ts := range m.times(log) {
		if ts < domain.Millis(before) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountBetween(_ context.Context, log domain.Log, after, before time.Time) (int64, error) {
	m.calls++
	var n int64
	for _, ts := range m.times(log) {
		if ts > domain.Millis(after) && ts < domain.Millis(before) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) SumDurationBefore(_ context.Context, before time.Time) (int64, error) {
	m.calls++
	var sum int64
	for _, r := range m.reviews {
		if domain.Millis(r.at) < domain.Millis(before) {
			sum += r.dur.Milliseconds()
		}
	}
	return sum, nil
}

// reviewDays returns one review at 09:00 on each of the given days before today.
func reviewDays(today time.Time, daysAgo ...int) []review {
	out := make([]review, 0, len(daysAgo))
	for _, d := range daysAgo {
		out = append(out, review{at: today.AddDate(0, 0, -d).Add(9 * time.Hour), dur: time.Minute})
	}
	return out
}

func dayRange(from, to int) []int {
	var out []int
	for d := from; d <= to; d++ {
		out = append(out, d)
	}
	return out
}
