package score

import (
	"context"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
)

// Simple is a score backed by a single bounded aggregate query.
type Simple struct {
	base
	measure func(ctx context.Context, asOf time.Time) (int64, error)
}

// NewCounter returns a score counting the events of log.
func NewCounter(name, description string, ladder Ladder, store EventStore, log domain.Log) *Simple {
	return &Simple{
		base: base{name: name, description: description, ladder: ladder},
		measure: func(ctx context.Context, asOf time.Time) (int64, error) {
			return store.CountBefore(ctx, log, asOf)
		},
	}
}

// NewDuration returns a score summing review time, expressed in whole units
// (rounded down).
func NewDuration(name, description string, ladder Ladder, store EventStore, unit time.Duration) *Simple {
	perUnit := unit.Milliseconds()
	return &Simple{
		base: base{name: name, description: description, ladder: ladder},
		measure: func(ctx context.Context, asOf time.Time) (int64, error) {
			ms, err := store.SumDurationBefore(ctx, asOf)
			if err != nil {
				return 0, err
			}
			if perUnit <= 0 {
				return ms, nil
			}
			return ms / perUnit, nil
		},
	}
}

// Calculate implements Score.
func (s *Simple) Calculate(ctx context.Context, asOf time.Time) (Result, error) {
	v, err := s.measure(ctx, asOf)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v}, nil
}
