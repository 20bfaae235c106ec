// Package report gathers collection statistics and renders the console report.
package report

import (
	"context"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
)

// CreationWindowDays is the width of one bucket in the card creation history.
const CreationWindowDays = 30

// creationWindows is how many buckets the creation history covers.
const creationWindows = 11

// Source is the read access the statistics need.
type Source interface {
	CountBefore(ctx context.Context, log domain.Log, before time.Time) (int64, error)
	CountBetween(ctx context.Context, log domain.Log, after, before time.Time) (int64, error)
	SumDurationBefore(ctx context.Context, before time.Time) (int64, error)
	FirstEvent(ctx context.Context, log domain.Log) (time.Time, bool, error)
}

// Window is an event count over (From, To).
type Window struct {
	From  time.Time
	To    time.Time
	Count int64
}

// Stats are the totals and histories printed above the achievements.
type Stats struct {
	Now     time.Time
	Cards   int64
	Reviews int64

	// FirstReview is zero when the review log is empty.
	FirstReview    time.Time
	DaysSinceFirst int64
	ReviewsPerDay  float64

	Spent         time.Duration
	MinutesPerDay float64

	// Daily holds one window per calendar day, newest first.
	Daily []Window
	// Creations holds card creations per 30-day window, newest first.
	Creations []Window
}

// Gather reads the statistics as of now.
func Gather(ctx context.Context, src Source, now time.Time, days int) (Stats, error) {
	st := Stats{Now: now}
	var err error

	if st.Cards, err = src.CountBefore(ctx, domain.Cards, now); err != nil {
		return Stats{}, err
	}
	if st.Reviews, err = src.CountBefore(ctx, domain.Reviews, now); err != nil {
		return Stats{}, err
	}

	first, ok, err := src.FirstEvent(ctx, domain.Reviews)
	if err != nil {
		return Stats{}, err
	}
	if ok {
		st.FirstReview = first
		if elapsed := now.Sub(first); elapsed > 0 {
			st.DaysSinceFirst = int64(elapsed / (24 * time.Hour))
		}
	}

	ms, err := src.SumDurationBefore(ctx, now)
	if err != nil {
		return Stats{}, err
	}
	st.Spent = time.Duration(ms) * time.Millisecond

	st.ReviewsPerDay = perDay(float64(st.Reviews), st.DaysSinceFirst)
	st.MinutesPerDay = perDay(float64(st.Spent/time.Minute), st.DaysSinceFirst)

	midnight := domain.Midnight(now)
	for i := 0; i < days; i++ {
		from := midnight.AddDate(0, 0, -i)
		to := midnight.AddDate(0, 0, 1-i)
		if to.After(now) {
			to = now
		}
		n, err := src.CountBetween(ctx, domain.Reviews, from, to)
		if err != nil {
			return Stats{}, err
		}
		st.Daily = append(st.Daily, Window{From: from, To: to, Count: n})
	}

	for i := 1; i <= creationWindows; i++ {
		from := midnight.AddDate(0, 0, -CreationWindowDays*i)
		to := midnight.AddDate(0, 0, -CreationWindowDays*(i-1))
		n, err := src.CountBetween(ctx, domain.Cards, from, to)
		if err != nil {
			return Stats{}, err
		}
		st.Creations = append(st.Creations, Window{From: from, To: to, Count: n})
	}

	return st, nil
}

// perDay divides total by days, returning 0 when no full day has elapsed.
func perDay(total float64, days int64) float64 {
	if days <= 0 {
		return 0
	}
	return total / float64(days)
}
