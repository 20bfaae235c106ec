// Package achievement turns score ladders into announced milestones.
//
// Achievements are plain rendered strings. Two scores whose descriptions
// render to the same text for some threshold produce a single achievement;
// callers relying on per-score identity should give each score a distinct
// description.
package achievement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/conorfennell/ankisocial/internal/score"
)

// Set is a collection of rendered achievements.
type Set map[string]struct{}

// Sorted returns the achievements in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Standing is one score's state at the later bound of an evaluation.
type Standing struct {
	Name    string
	Value   int64
	Diagram string
	// Next is the upcoming threshold; HasNext is false once the ladder is done.
	Next    int64
	HasNext bool
}

// Summary is everything a report needs from one evaluation.
type Summary struct {
	Unlocked  Set
	Upcoming  []string
	Standings []Standing
}

// Engine evaluates an ordered collection of scores.
type Engine struct {
	scores []score.Score
}

// New returns an engine over scores, kept in registration order.
func New(scores ...score.Score) *Engine {
	return &Engine{scores: scores}
}

// UnlockedBetween returns the achievements reached as of later but not as of earlier.
func (e *Engine) UnlockedBetween(ctx context.Context, earlier, later time.Time) (Set, error) {
	unlocked := Set{}
	for _, s := range e.scores {
		before, err := score.AchievedThresholds(ctx, s, earlier)
		if err != nil {
			return nil, err
		}
		after, err := score.AchievedThresholds(ctx, s, later)
		if err != nil {
			return nil, err
		}
		addDelta(unlocked, s, before, after)
	}
	return unlocked, nil
}

// Upcoming describes the next threshold of every score that has one, in
// registration order.
func (e *Engine) Upcoming(ctx context.Context, asOf time.Time) ([]string, error) {
	var out []string
	for _, s := range e.scores {
		next, current, ok, err := score.NextThreshold(ctx, s, asOf)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, upcomingLine(s.Name(), next, current))
		}
	}
	return out, nil
}

// Evaluate computes the delta since lastRun and the standings as of now,
// calculating each score once per bound.
func (e *Engine) Evaluate(ctx context.Context, now, lastRun time.Time) (Summary, error) {
	sum := Summary{Unlocked: Set{}}
	for _, s := range e.scores {
		cur, err := s.Calculate(ctx, now)
		if err != nil {
			return Summary{}, fmt.Errorf("calculate %s: %w", s.Name(), err)
		}
		prev := cur
		if !lastRun.Equal(now) {
			if prev, err = s.Calculate(ctx, lastRun); err != nil {
				return Summary{}, fmt.Errorf("calculate %s: %w", s.Name(), err)
			}
		}

		ladder := s.Ladder()
		addDelta(sum.Unlocked, s, ladder.Achieved(prev.Value), ladder.Achieved(cur.Value))

		st := Standing{Name: s.Name(), Value: cur.Value, Diagram: cur.Diagram}
		st.Next, st.HasNext = ladder.Next(cur.Value)
		if st.HasNext {
			sum.Upcoming = append(sum.Upcoming, upcomingLine(s.Name(), st.Next, cur.Value))
		}
		sum.Standings = append(sum.Standings, st)
	}
	return sum, nil
}

func addDelta(into Set, s score.Score, before, after []int64) {
	seen := make(map[int64]bool, len(before))
	for _, t := range before {
		seen[t] = true
	}
	for _, t := range after {
		if !seen[t] {
			into[s.Describe(t)] = struct{}{}
		}
	}
}

func upcomingLine(name string, next, current int64) string {
	return fmt.Sprintf("%s: %d (currently %d)", name, next, current)
}
