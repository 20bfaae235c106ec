// Package score evaluates study scores against a collection's event logs and
// compares them with milestone ladders.
package score

import (
	"context"
	"fmt"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
)

// EventStore is the read-only aggregate access scores need.
type EventStore interface {
	CountBefore(ctx context.Context, log domain.Log, before time.Time) (int64, error)
	CountBetween(ctx context.Context, log domain.Log, after, before time.Time) (int64, error)
	SumDurationBefore(ctx context.Context, before time.Time) (int64, error)
}

// Result is the outcome of a single Calculate call.
type Result struct {
	Value int64
	// Diagram is a day-by-day glyph rendering, only set by streak scores.
	Diagram string
}

// Score is a named value computed from the event logs, with a ladder of
// milestones worth announcing.
type Score interface {
	Name() string
	Ladder() Ladder
	// Describe renders the achievement text for one ladder threshold.
	Describe(threshold int64) string
	// Calculate evaluates the score using only events before asOf.
	Calculate(ctx context.Context, asOf time.Time) (Result, error)
}

// Ladder is a strictly increasing list of thresholds.
type Ladder []int64

// Achieved returns the prefix of the ladder that value has reached.
func (l Ladder) Achieved(value int64) []int64 {
	i := 0
	for i < len(l) && l[i] <= value {
		i++
	}
	return l[:i:i]
}

// Next returns the first threshold above value. ok is false once every
// threshold has been reached.
func (l Ladder) Next(value int64) (threshold int64, ok bool) {
	for _, t := range l {
		if t > value {
			return t, true
		}
	}
	return 0, false
}

// Valid reports whether the ladder is non-empty, positive and strictly increasing.
func (l Ladder) Valid() bool {
	if len(l) == 0 {
		return false
	}
	for i, t := range l {
		if t <= 0 || (i > 0 && t <= l[i-1]) {
			return false
		}
	}
	return true
}

// AchievedThresholds returns every threshold of s reached as of asOf.
func AchievedThresholds(ctx context.Context, s Score, asOf time.Time) ([]int64, error) {
	res, err := s.Calculate(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("calculate %s: %w", s.Name(), err)
	}
	return s.Ladder().Achieved(res.Value), nil
}

// NextThreshold returns the next threshold of s not yet reached as of asOf
// together with the current value.
func NextThreshold(ctx context.Context, s Score, asOf time.Time) (threshold, current int64, ok bool, err error) {
	res, err := s.Calculate(ctx, asOf)
	if err != nil {
		return 0, 0, false, fmt.Errorf("calculate %s: %w", s.Name(), err)
	}
	threshold, ok = s.Ladder().Next(res.Value)
	return threshold, res.Value, ok, nil
}

// base carries the fields every score variant shares.
type base struct {
	name        string
	description string
	ladder      Ladder
}

func (b base) Name() string   { return b.name }
func (b base) Ladder() Ladder { return b.ladder }

func (b base) Describe(threshold int64) string {
	return fmt.Sprintf(b.description, threshold)
}
