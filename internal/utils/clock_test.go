package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	t.Run("should use the clock zone for the date", func(t *testing.T) {
		// 2026-10-01 20:00 UTC is already 2026-10-02 in Busan
		clock := &MockClock{FixedNow: time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC).In(FestivalZone)}

		assert.Equal(t, "2026-10-02", Today(clock))
	})

	t.Run("should follow mock clock changes", func(t *testing.T) {
		clock := &MockClock{}
		clock.SetNow(time.Date(2026, 10, 2, 23, 30, 0, 0, FestivalZone))
		assert.Equal(t, "2026-10-02", Today(clock))

		clock.Advance(time.Hour)

		assert.Equal(t, "2026-10-03", Today(clock))
	})
}

func TestFestivalClock(t *testing.T) {
	now := NewFestivalClock().Now()

	_, offset := now.Zone()
	assert.Equal(t, 9*60*60, offset)
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}
