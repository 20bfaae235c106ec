package score_test

import (
	"context"
	"testing"
	"time"

	"github.com/conorfennell/ankisocial/internal/domain"
	"github.com/conorfennell/ankisocial/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLadder(t *testing.T) {
	ladder := score.Ladder{10, 25, 50}

	testCases := []struct {
		value    int64
		achieved []int64
		next     int64
		hasNext  bool
	}{
		{value: 0, achieved: nil, next: 10, hasNext: true},
		{value: 9, achieved: nil, next: 10, hasNext: true},
		{value: 10, achieved: []int64{10}, next: 25, hasNext: true},
		{value: 49, achieved: []int64{10, 25}, next: 50, hasNext: true},
		{value: 50, achieved: []int64{10, 25, 50}, hasNext: false},
		{value: 5000, achieved: []int64{10, 25, 50}, hasNext: false},
	}

	for _, tc := range testCases {
		got := ladder.Achieved(tc.value)
		if len(tc.achieved) == 0 {
			assert.Empty(t, got, "value %d", tc.value)
		} else {
			assert.Equal(t, tc.achieved, got, "value %d", tc.value)
		}

		next, ok := ladder.Next(tc.value)
		assert.Equal(t, tc.hasNext, ok, "value %d", tc.value)
		if tc.hasNext {
			assert.Equal(t, tc.next, next, "value %d", tc.value)
		}
	}
}

func TestLadderAchievedDoesNotAlias(t *testing.T) {
	ladder := score.Ladder{1, 2, 3}
	got := ladder.Achieved(2)
	got = append(got, 99)
	assert.Equal(t, score.Ladder{1, 2, 3}, ladder)
	assert.Len(t, got, 3)
}

func TestLadderValid(t *testing.T) {
	assert.True(t, score.Ladder{1, 3, 10}.Valid())
	assert.False(t, score.Ladder{}.Valid())
	assert.False(t, score.Ladder{0, 3}.Valid())
	assert.False(t, score.Ladder{3, 3}.Valid())
	assert.False(t, score.Ladder{5, 3}.Valid())
}

func TestCounterScore(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	for i := 0; i < 10; i++ {
		store.reviews = append(store.reviews, review{at: now.Add(-time.Duration(i+1) * time.Minute)})
	}
	s := score.NewCounter("reviews", "reviewed %d cards", score.Ladder{10, 25}, store, domain.Reviews)
	ctx := context.Background()

	achieved, err := score.AchievedThresholds(ctx, s, now)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, achieved)

	next, current, ok, err := score.NextThreshold(ctx, s, now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(25), next)
	assert.Equal(t, int64(10), current)

	achieved, err = score.AchievedThresholds(ctx, s, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, achieved)

	assert.Equal(t, "reviewed 10 cards", s.Describe(10))
	assert.Equal(t, "reviews", s.Name())
}

func TestDurationScore(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty log is zero", func(t *testing.T) {
		s := score.NewDuration("hours", "%d hours", score.Ladder{1}, &memStore{}, time.Hour)
		res, err := s.Calculate(context.Background(), now)
		require.NoError(t, err)
		assert.Zero(t, res.Value)
	})

	t.Run("rounds down to whole units", func(t *testing.T) {
		store := &memStore{reviews: []review{
			{at: now.Add(-3 * time.Hour), dur: 90 * time.Minute},
			{at: now.Add(-2 * time.Hour), dur: 29*time.Minute + 59*time.Second},
			{at: now.Add(time.Hour), dur: 10 * time.Hour},
		}}
		hours := score.NewDuration("hours", "%d hours", score.Ladder{1}, store, time.Hour)
		res, err := hours.Calculate(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Value)

		minutes := score.NewDuration("minutes", "%d minutes", score.Ladder{1}, store, time.Minute)
		res, err = minutes.Calculate(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(119), res.Value)
	})
}
