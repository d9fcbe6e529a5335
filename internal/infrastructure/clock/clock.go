package clock

import (
	"sync"
	"time"

	"mecanica_xpto_os/internal/usecase/interfaces"
)

// System reads the wall clock in UTC.
type System struct{}

var _ interfaces.IClock = System{}

func (System) Now() time.Time { return time.Now().UTC() }

// Manual is a settable clock for jobs replays and tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

var _ interfaces.IClock = (*Manual)(nil)

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
