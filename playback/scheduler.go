// ABOUTME: Playback scheduler that replays a trace over time with pause, step, replay and cancel
// ABOUTME: Emissions are queued under the lock and delivered outside it, stale epochs are dropped

// Package playback replays step traces over wall clock or virtual time.
package playback

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"algoviz/trace"
)

// Speed bounds; requested speeds are clamped into this range
const (
	MinSpeed     = 0.25
	MaxSpeed     = 8.0
	DefaultSpeed = 1.0
)

// Scheduler errors
var (
	ErrEmptyTrace = errors.New("trace has no steps")
	ErrNoTrace    = errors.New("no trace loaded")
	ErrRunning    = errors.New("playback is running")
	ErrNotRunning = errors.New("playback is not running")
	ErrNotPaused  = errors.New("playback is not paused")
	ErrCompleted  = errors.New("playback already completed")
	ErrClosed     = errors.New("scheduler is closed")
)

// Mode is the playback state
type Mode int

// Playback modes
const (
	Idle Mode = iota
	Running
	Paused
	Completed
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// EventKind distinguishes step emissions from the completion signal
type EventKind int

// Event kinds
const (
	StepEvent EventKind = iota
	CompleteEvent
)

// Event is delivered to the handler for every emitted step and once on completion.
// An event already handed to the handler when Start, Load or Stop begins a new
// epoch still arrives, so consumers drop events whose Epoch is not current.
type Event struct {
	Epoch uint64
	Kind  EventKind
	Index int
	Total int
	Step  trace.Step
}

// State is a point in time view of the scheduler
type State struct {
	Mode      Mode
	Epoch     uint64
	Speed     float64
	Algorithm string
	// Emitted is the number of steps delivered so far in this epoch
	Emitted int
	Total   int
	// Last is the most recently emitted step, nil before the first emission
	Last *trace.Step
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithBaseDelay sets the display duration of a weight 1 step at speed 1
func WithBaseDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.base = d
		}
	}
}

// WithDebug injects a debug logger
func WithDebug(debugf func(string, ...interface{})) Option {
	return func(s *Scheduler) {
		if debugf != nil {
			s.debugf = debugf
		}
	}
}

// WithSpeed sets the initial speed
func WithSpeed(speed float64) Option {
	return func(s *Scheduler) {
		s.speed = ClampSpeed(speed)
	}
}

// ClampSpeed limits speed to [MinSpeed, MaxSpeed]
func ClampSpeed(speed float64) float64 {
	return min(max(speed, MinSpeed), MaxSpeed)
}

// Scheduler owns at most one outstanding timer. Every Start, Replay and Stop
// begins a new epoch; events carry the epoch they were produced in.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	handler func(Event)
	base    time.Duration
	debugf  func(string, ...interface{})

	tr     trace.Trace
	mode   Mode
	cursor int
	speed  float64
	epoch  uint64
	closed bool

	// timer bookkeeping; gen invalidates callbacks of replaced timers
	timer     Timer
	gen       uint64
	dueAt     time.Time
	remaining time.Duration

	queue    []Event
	draining bool
}

// New creates an idle scheduler delivering events to handler
func New(clock Clock, handler func(Event), opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:   clock,
		handler: handler,
		base:    trace.DefaultBaseDelay,
		debugf:  func(string, ...interface{}) {},
		speed:   DefaultSpeed,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start cancels any active playback and plays tr from the first step.
// A non-positive speed keeps the current speed.
func (s *Scheduler) Start(tr trace.Trace, speed float64) error {
	if tr.Empty() {
		return ErrEmptyTrace
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return ErrClosed
	}

	if speed > 0 {
		s.speed = ClampSpeed(speed)
	}

	s.reset(tr)
	s.mode = Running
	s.debugf("[PLAYBACK] start %s: %d steps, speed %.2f, epoch %d", tr.Algorithm(), tr.Len(), s.speed, s.epoch)
	s.advance()
	s.mu.Unlock()

	s.drain()

	return nil
}

// Load cancels any active playback and parks tr paused before its first step
func (s *Scheduler) Load(tr trace.Trace) error {
	if tr.Empty() {
		return ErrEmptyTrace
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.reset(tr)
	s.mode = Paused
	s.debugf("[PLAYBACK] load %s: %d steps, epoch %d", tr.Algorithm(), tr.Len(), s.epoch)

	return nil
}

// Pause stops the timer and remembers how much of the current step's
// display time is left
func (s *Scheduler) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if s.mode != Running {
		return ErrNotRunning
	}

	s.remaining = max(s.dueAt.Sub(s.clock.Now()), 0)
	s.cancel()
	s.mode = Paused
	s.debugf("[PLAYBACK] pause at %d/%d, %v left", s.cursor, s.tr.Len(), s.remaining)

	return nil
}

// Resume continues a paused playback
func (s *Scheduler) Resume() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return ErrClosed
	}

	if s.mode != Paused {
		s.mu.Unlock()

		return ErrNotPaused
	}

	s.mode = Running
	s.debugf("[PLAYBACK] resume at %d/%d", s.cursor, s.tr.Len())

	if s.cursor == 0 {
		s.advance()
	} else {
		s.schedule(s.remaining)
	}
	s.mu.Unlock()

	s.drain()

	return nil
}

// StepForward emits the next step immediately while playback is not running.
// Emitting the final step completes the trace.
func (s *Scheduler) StepForward() error {
	s.mu.Lock()

	switch {
	case s.closed:
		s.mu.Unlock()

		return ErrClosed
	case s.tr.Empty():
		s.mu.Unlock()

		return ErrNoTrace
	case s.mode == Running:
		s.mu.Unlock()

		return ErrRunning
	case s.mode == Completed:
		s.mu.Unlock()

		return ErrCompleted
	}

	step := s.emit()
	s.remaining = trace.Delay(step, s.base, s.speed)

	if s.cursor == s.tr.Len() {
		s.complete()
	}
	s.mu.Unlock()

	s.drain()

	return nil
}

// Replay restarts the loaded trace from its first step in a new epoch
func (s *Scheduler) Replay() error {
	s.mu.Lock()
	tr := s.tr
	s.mu.Unlock()

	if tr.Empty() {
		return ErrNoTrace
	}

	return s.Start(tr, 0)
}

// Stop cancels playback and discards the trace
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.reset(trace.Trace{})
	s.debugf("[PLAYBACK] stop, epoch %d", s.epoch)

	return nil
}

// SetSpeed changes the speed; a pending delay is rescaled so the step
// already on screen is neither repeated nor skipped
func (s *Scheduler) SetSpeed(speed float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	old := s.speed
	s.speed = ClampSpeed(speed)

	if old == s.speed {
		return nil
	}

	ratio := old / s.speed

	switch s.mode {
	case Running:
		if s.timer != nil {
			left := max(s.dueAt.Sub(s.clock.Now()), 0)
			s.cancel()
			s.schedule(time.Duration(float64(left) * ratio))
		}
	case Paused:
		s.remaining = time.Duration(float64(s.remaining) * ratio)
	}

	s.debugf("[PLAYBACK] speed %.2f -> %.2f", old, s.speed)

	return nil
}

// Close cancels playback; every later call returns ErrClosed
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.cancel()
	s.closed = true
	s.queue = nil

	return nil
}

// State returns a snapshot of the playback state
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Mode:      s.mode,
		Epoch:     s.epoch,
		Speed:     s.speed,
		Algorithm: s.tr.Algorithm(),
		Emitted:   s.cursor,
		Total:     s.tr.Len(),
	}

	if s.cursor > 0 {
		last := s.tr.At(s.cursor - 1)
		st.Last = &last
	}

	return st
}

// reset cancels the timer, opens a new epoch and installs tr. Caller holds mu.
func (s *Scheduler) reset(tr trace.Trace) {
	s.cancel()
	s.epoch++
	s.tr = tr
	s.cursor = 0
	s.remaining = 0
	s.mode = Idle
}

// advance emits the step at the cursor and schedules the next tick, or
// completes once the final step has been shown. Caller holds mu.
func (s *Scheduler) advance() {
	if s.cursor == s.tr.Len() {
		s.complete()

		return
	}

	step := s.emit()
	s.schedule(trace.Delay(step, s.base, s.speed))
}

// emit queues the step at the cursor and moves past it. Caller holds mu.
func (s *Scheduler) emit() trace.Step {
	step := s.tr.At(s.cursor)
	s.queue = append(s.queue, Event{
		Epoch: s.epoch,
		Kind:  StepEvent,
		Index: s.cursor,
		Total: s.tr.Len(),
		Step:  step,
	})
	s.cursor++

	return step
}

func (s *Scheduler) complete() {
	s.cancel()
	s.mode = Completed
	s.queue = append(s.queue, Event{Epoch: s.epoch, Kind: CompleteEvent, Index: s.cursor - 1, Total: s.tr.Len()})
	s.debugf("[PLAYBACK] complete %s, epoch %d", s.tr.Algorithm(), s.epoch)
}

func (s *Scheduler) schedule(d time.Duration) {
	s.gen++
	gen := s.gen
	s.dueAt = s.clock.Now().Add(d)
	s.timer = s.clock.AfterFunc(d, func() { s.fire(gen) })
}

func (s *Scheduler) cancel() {
	s.gen++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.mode != Running {
		s.mu.Unlock()

		return
	}

	s.timer = nil
	s.advance()
	s.mu.Unlock()

	s.drain()
}

// drain delivers queued events in order. Only one goroutine drains at a
// time; events queued by re-entrant calls are picked up by the active loop.
func (s *Scheduler) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()

		return
	}

	s.draining = true

	for len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]

		if s.closed || ev.Epoch != s.epoch {
			continue
		}

		s.mu.Unlock()
		s.deliver(ev)
		s.mu.Lock()
	}

	s.draining = false
	s.mu.Unlock()
}

func (s *Scheduler) deliver(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.debugf("[PLAYBACK] PANIC in handler: %v\n%s", r, debug.Stack())

			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()

			panic(r)
		}
	}()

	s.handler(ev)
}
