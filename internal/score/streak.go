package score

import (
	"context"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
)

const (
	// MaxFreezeDays is how many consecutive idle days a streak survives.
	// The allowance refills on every day with at least one review.
	MaxFreezeDays = 2
	// LookbackDays bounds the backward scan.
	LookbackDays = 365 * 10
)

// Diagram glyphs.
const (
	glyphReview = "*"
	glyphFreeze = "f"
	glyphWeek   = "|"
)

// StreakMode selects which run a Streak score reports.
type StreakMode int

const (
	// Current reports the run ending today and stops at the first break.
	Current StreakMode = iota
	// Best reports the longest run anywhere in the lookback window.
	Best
)

// Streak counts consecutive review days, tolerating up to MaxFreezeDays idle
// days in a row.
type Streak struct {
	base
	store EventStore
	mode  StreakMode
}

// NewStreak returns a streak score in the given mode.
func NewStreak(name, description string, ladder Ladder, store EventStore, mode StreakMode) *Streak {
	return &Streak{
		base:  base{name: name, description: description, ladder: ladder},
		store: store,
		mode:  mode,
	}
}

// Calculate scans backward one calendar day at a time from the day of asOf.
// A day counts when a review falls strictly inside it; the newest day is cut
// off at asOf.
//
// The diagram holds one glyph per day of the reported run, oldest first,
// with a week marker in front of every Monday.
func (s *Streak) Calculate(ctx context.Context, asOf time.Time) (Result, error) {
	today := domain.Midnight(asOf)

	var run, best int64
	var diagram, bestDiagram string
	freeze := MaxFreezeDays

	for daysAgo := 0; daysAgo < LookbackDays; daysAgo++ {
		from := today.AddDate(0, 0, -daysAgo)
		to := today.AddDate(0, 0, 1-daysAgo)
		if to.After(asOf) {
			to = asOf
		}

		n, err := s.store.CountBetween(ctx, domain.Reviews, from, to)
		if err != nil {
			return Result{}, err
		}

		var glyph string
		switch {
		case n > 0:
			run++
			freeze = MaxFreezeDays
			glyph = glyphReview
		case freeze > 0:
			freeze--
			glyph = glyphFreeze
		default:
			if s.mode == Current {
				return Result{Value: run, Diagram: "Streak diagram: " + diagram}, nil
			}
			run = 0
			diagram = ""
			continue
		}

		diagram = glyph + diagram
		if from.Weekday() == time.Monday {
			diagram = glyphWeek + diagram
		}
		if run > best {
			best = run
			bestDiagram = diagram
		}
	}

	if s.mode == Current {
		return Result{Value: run, Diagram: "Streak diagram: " + diagram}, nil
	}
	return Result{Value: best, Diagram: "Best streak diagram: " + bestDiagram}, nil
}
