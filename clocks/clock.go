package clocks

import (
	"sync"
	"time"
)

// Clock is the only source of time and suspension for recording and replay.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

func Since(clock Clock, t time.Time) time.Duration {
	return clock.Now().Sub(t)
}

type realClock struct{}

var _ Clock = realClock{}

func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Sim is a simulated clock. After advances simulated time by d and fires immediately,
// so a single cooperative task observes exact, jitter-free timestamps.
type Sim struct {
	mu  sync.Mutex
	now time.Time
}

var _ Clock = new(Sim)

func NewSim(start time.Time) *Sim {
	return &Sim{
		now: start,
	}
}

func (s *Sim) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Sim) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- s.Advance(d)
	return ch
}

func (s *Sim) Advance(d time.Duration) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.now = s.now.Add(d)
	}
	return s.now
}
