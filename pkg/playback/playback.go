// Package playback steps through a precomputed cipher trace, either on
// demand or on a fixed interval.
//
// A [Sequencer] is a small state machine:
//
//	Idle    --Play-->         Playing
//	Playing --Pause-->        Paused
//	Playing --last step-->    Paused
//	any     --Step/Goto-->    Paused
//	any     --Reset/Load-->   Idle (index 0)
//
// Automatic advancing is driven by a cancellable scheduled callback. Every
// callback carries the generation it was scheduled in; a callback that
// fires after Pause, Reset or a manual step is ignored.
package playback

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// DefaultInterval is the delay between automatic steps.
const DefaultInterval = 800 * time.Millisecond

// State is the playback state.
type State int

// State constants.
const (
	Idle State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The default uses [time.AfterFunc].
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Frame is what observers see after every change.
type Frame struct {
	Index int
	Total int
	State State
	Step  cipher.Step
}

// Options configures a Sequencer. Zero values select defaults.
type Options struct {
	Interval  time.Duration
	Scheduler Scheduler
}

// Sequencer advances an index over a fixed list of steps. It is safe for
// concurrent use; observers are called without the lock held, one frame
// at a time and in order.
type Sequencer struct {
	mu        sync.Mutex
	steps     []cipher.Step
	index     int
	state     State
	interval  time.Duration
	sched     Scheduler
	timer     Timer
	gen       uint64
	observers map[int]func(Frame)
	nextObs   int
	closed    bool

	queue      []Frame
	delivering bool
}

// New returns an idle sequencer positioned at the first step.
func New(steps []cipher.Step, opts Options) *Sequencer {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	if opts.Scheduler == nil {
		opts.Scheduler = realScheduler{}
	}

	return &Sequencer{
		steps:     cloneSteps(steps),
		interval:  opts.Interval,
		sched:     opts.Scheduler,
		observers: make(map[int]func(Frame)),
	}
}

// OnChange registers an observer and returns a function that removes it.
func (s *Sequencer) OnChange(fn func(Frame)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Len returns the number of steps.
func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.steps)
}

// State returns the current state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Interval returns the delay between automatic steps.
func (s *Sequencer) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.interval
}

// Current returns the current index and step. ok is false when there are
// no steps.
func (s *Sequencer) Current() (int, cipher.Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.steps) == 0 {
		return 0, cipher.Step{}, false
	}

	return s.index, s.steps[s.index], true
}

// Frame returns a snapshot of the current position.
func (s *Sequencer) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.frameLocked()
}

// Play starts automatic advancing. At the last step it rewinds to the first
// step first. It returns false when there is nothing to play.
func (s *Sequencer) Play() bool {
	s.mu.Lock()

	if s.closed || len(s.steps) == 0 {
		s.mu.Unlock()

		return false
	}

	if s.state == Playing {
		s.mu.Unlock()

		return true
	}

	if s.index >= len(s.steps)-1 {
		s.index = 0
	}

	s.state = Playing
	s.scheduleLocked()

	s.notifyUnlock()

	return true
}

// Pause stops automatic advancing. It is a no-op unless playing.
func (s *Sequencer) Pause() {
	s.mu.Lock()

	if s.state != Playing {
		s.mu.Unlock()

		return
	}

	s.cancelLocked()
	s.state = Paused

	s.notifyUnlock()
}

// Toggle pauses when playing and plays otherwise.
func (s *Sequencer) Toggle() {
	if s.State() == Playing {
		s.Pause()

		return
	}

	s.Play()
}

// StepForward moves one step ahead (clamped) and pauses.
func (s *Sequencer) StepForward() {
	s.move(func(i int) int { return i + 1 })
}

// StepBackward moves one step back (clamped) and pauses.
func (s *Sequencer) StepBackward() {
	s.move(func(i int) int { return i - 1 })
}

// Goto jumps to index i, clamped to the valid range, and pauses.
func (s *Sequencer) Goto(i int) {
	s.move(func(int) int { return i })
}

func (s *Sequencer) move(next func(int) int) {
	s.mu.Lock()

	if s.closed || len(s.steps) == 0 {
		s.mu.Unlock()

		return
	}

	s.cancelLocked()
	s.index = clamp(next(s.index), 0, len(s.steps)-1)
	s.state = Paused

	s.notifyUnlock()
}

// Reset cancels playback and returns to the first step.
func (s *Sequencer) Reset() {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return
	}

	s.cancelLocked()
	s.index = 0
	s.state = Idle

	s.notifyUnlock()
}

// Load replaces the steps and resets.
func (s *Sequencer) Load(steps []cipher.Step) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return
	}

	s.cancelLocked()
	s.steps = cloneSteps(steps)
	s.index = 0
	s.state = Idle

	s.notifyUnlock()
}

// SetInterval changes the delay between automatic steps. Non-positive
// values are ignored. A pending step is rescheduled with the new delay.
func (s *Sequencer) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.interval = d

	if s.state == Playing {
		s.cancelLocked()
		s.scheduleLocked()
	}
}

// Close cancels any pending step. Later calls are no-ops.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.state = Idle
	s.closed = true
}

// PlayToEnd plays from the current position (or from the start, if at the
// end) and blocks until the last step is reached, playback is paused or
// reset, or ctx is done.
func (s *Sequencer) PlayToEnd(ctx context.Context) error {
	done := make(chan struct{})

	var once sync.Once

	unsubscribe := s.OnChange(func(f Frame) {
		if f.State != Playing {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	if !s.Play() {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.Pause()

		return ctx.Err()
	}
}

// tick is the scheduled callback for generation gen.
func (s *Sequencer) tick(gen uint64) {
	s.mu.Lock()

	if s.closed || gen != s.gen || s.state != Playing {
		s.mu.Unlock()

		return
	}

	s.timer = nil

	if s.index < len(s.steps)-1 {
		s.index++
	}

	if s.index >= len(s.steps)-1 {
		s.state = Paused
	} else {
		s.scheduleLocked()
	}

	s.notifyUnlock()
}

func (s *Sequencer) scheduleLocked() {
	s.gen++
	gen := s.gen
	s.timer = s.sched.AfterFunc(s.interval, func() { s.tick(gen) })
}

func (s *Sequencer) cancelLocked() {
	s.gen++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Sequencer) frameLocked() Frame {
	f := Frame{Index: s.index, Total: len(s.steps), State: s.state}
	if len(s.steps) > 0 {
		f.Step = s.steps[s.index]
	}

	return f
}

// notifyUnlock queues the current frame and releases the lock. Frames are
// delivered in the order they were queued by whichever caller is not
// already delivering; observers may call back into the sequencer.
func (s *Sequencer) notifyUnlock() {
	s.queue = append(s.queue, s.frameLocked())

	if s.delivering {
		s.mu.Unlock()

		return
	}

	s.delivering = true

	for len(s.queue) > 0 {
		frame := s.queue[0]
		s.queue = s.queue[1:]

		observers := make([]func(Frame), 0, len(s.observers))
		for _, id := range slices.Sorted(maps.Keys(s.observers)) {
			observers = append(observers, s.observers[id])
		}

		s.mu.Unlock()

		for _, fn := range observers {
			fn(frame)
		}

		s.mu.Lock()
	}

	s.delivering = false
	s.mu.Unlock()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func cloneSteps(steps []cipher.Step) []cipher.Step {
	out := make([]cipher.Step, len(steps))
	copy(out, steps)

	return out
}
