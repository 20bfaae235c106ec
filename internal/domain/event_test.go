package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMidnight(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	at := time.Date(2024, time.March, 5, 17, 42, 9, 123, loc)

	got := Midnight(at)

	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestMillisRoundTrip(t *testing.T) {
	at := time.Date(2023, time.November, 1, 8, 0, 0, 0, time.UTC)
	ms := Millis(at)

	assert.Equal(t, int64(1698825600000), ms)
	assert.True(t, FromMillis(ms).Equal(at))
}

func TestLogString(t *testing.T) {
	assert.Equal(t, "reviews", Reviews.String())
	assert.Equal(t, "cards", Cards.String())
	assert.Equal(t, "unknown", Log(42).String())
}
