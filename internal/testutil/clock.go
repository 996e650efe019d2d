// Package testutil holds test doubles shared across packages.
package testutil

import (
	"sync"
	"time"

	"github.com/calvinalkan/cipherviz/pkg/playback"
)

// Scheduler is a manual clock implementing [playback.Scheduler]. Nothing
// fires until Advance moves time past a timer's deadline.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*Timer
}

// Timer is a callback registered with a Scheduler.
type Timer struct {
	s       *Scheduler
	at      time.Duration
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

// NewScheduler returns a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc implements [playback.Scheduler].
func (s *Scheduler) AfterFunc(d time.Duration, f func()) playback.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Timer{s: s, at: s.now + d, delay: d, f: f}
	s.timers = append(s.timers, t)

	return t
}

// Advance moves time forward by d, running every live timer that comes due
// in deadline order. Timers scheduled by callbacks fire too if they fall
// inside the window. It returns the number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	fired := 0

	for {
		var next *Timer

		for _, t := range s.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}

			if next == nil || t.at < next.at {
				next = t
			}
		}

		if next == nil {
			break
		}

		s.now = next.at
		next.fired = true
		fired++

		s.mu.Unlock()
		next.f()
		s.mu.Lock()
	}

	s.now = target
	s.mu.Unlock()

	return fired
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}

	return n
}

// Last returns the most recently scheduled timer, or nil.
func (s *Scheduler) Last() *Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.timers) == 0 {
		return nil
	}

	return s.timers[len(s.timers)-1]
}

// Stop implements [playback.Timer].
func (t *Timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	live := !t.stopped && !t.fired
	t.stopped = true

	return live
}

// Stopped reports whether Stop was called.
func (t *Timer) Stopped() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	return t.stopped
}

// Delay returns the duration the timer was scheduled with.
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// Fire runs the callback unconditionally, the way a timer that fired just
// before Stop was called would.
func (t *Timer) Fire() {
	t.f()
}
