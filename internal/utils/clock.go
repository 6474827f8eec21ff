package utils

import (
	"sync"
	"time"
)

// FestivalZone is Korea Standard Time. Korea has no daylight saving, so a fixed zone
// works without the tz database.
var FestivalZone = time.FixedZone("KST", 9*60*60)

type Clock interface {
	Now() time.Time
}

// SystemClock reads wall time in Location, or the local zone when Location is nil.
type SystemClock struct {
	Location *time.Location
}

func NewFestivalClock() *SystemClock {
	return &SystemClock{Location: FestivalZone}
}

func (s *SystemClock) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

type MockClock struct {
	mu       sync.RWMutex
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FixedNow = now
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FixedNow = m.FixedNow.Add(d)
}

// Today returns the calendar date of the clock's now, in the clock's own zone, as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(time.DateOnly)
}
