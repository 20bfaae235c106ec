package app

import (
	"fmt"
	"time"

	"github.com/conorfennell/ankisocial/internal/config"
	"github.com/conorfennell/ankisocial/internal/domain"
	"github.com/conorfennell/ankisocial/internal/score"
)

// BuildScores turns configured score settings into scores over store, in order.
func BuildScores(settings []config.ScoreSettings, store score.EventStore) ([]score.Score, error) {
	scores := make([]score.Score, 0, len(settings))
	for _, s := range settings {
		ladder := score.Ladder(s.Ladder)
		var sc score.Score
		switch s.Kind {
		case config.KindReviews:
			sc = score.NewCounter(s.Name, s.Description, ladder, store, domain.Reviews)
		case config.KindCards:
			sc = score.NewCounter(s.Name, s.Description, ladder, store, domain.Cards)
		case config.KindMinutes:
			sc = score.NewDuration(s.Name, s.Description, ladder, store, time.Minute)
		case config.KindHours:
			sc = score.NewDuration(s.Name, s.Description, ladder, store, time.Hour)
		case config.KindDays:
			sc = score.NewDuration(s.Name, s.Description, ladder, store, 24*time.Hour)
		case config.KindCurrentStreak:
			sc = score.NewStreak(s.Name, s.Description, ladder, store, score.Current)
		case config.KindBestStreak:
			sc = score.NewStreak(s.Name, s.Description, ladder, store, score.Best)
		default:
			return nil, fmt.Errorf("unknown score kind %q for %s", s.Kind, s.Name)
		}
		scores = append(scores, sc)
	}
	return scores, nil
}
