// Package session implements the focus countdown. A Timer is owned by a
// single goroutine: every method, including tick callbacks delivered by the
// scheduler, must run on that goroutine.
package session

import (
	"errors"
	"fmt"
	"time"

	"focusflow/internal/core/clock"
	"focusflow/internal/core/model"
	"focusflow/internal/feedback"
)

var (
	// ErrInvalidDuration is returned when a session is started with a non-positive length.
	ErrInvalidDuration = errors.New("invalid session duration")
	// ErrUnknownMode is returned for modes outside the fixed set.
	ErrUnknownMode = errors.New("unknown focus mode")
)

// Animator receives presentation animation requests.
type Animator interface {
	Pulse(repeat bool)
	Settle()
}

type nopAnimator struct{}

func (nopAnimator) Pulse(bool) {}
func (nopAnimator) Settle()    {}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	Mode         model.Mode
}

// Timer is the focus session countdown state machine.
type Timer struct {
	options   Config
	scheduler clock.Scheduler
	feedback  feedback.Sink
	animator  Animator
	now       func() time.Time

	mode       model.Mode
	remaining  int
	total      int
	running    bool
	tick       clock.Handle
	ticking    bool
	generation uint64
	closed     bool
	events     []chan Event
}

// New creates an idle Timer. Nil feedback and animator are replaced with no-ops.
func New(options Config, scheduler clock.Scheduler, sink feedback.Sink, animator Animator) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if !options.Mode.Valid() {
		options.Mode = model.ModeDeepWork
	}
	if sink == nil {
		sink = feedback.Nop{}
	}
	if animator == nil {
		animator = nopAnimator{}
	}
	return &Timer{
		options:   options,
		scheduler: scheduler,
		feedback:  sink,
		animator:  animator,
		now:       time.Now,
		mode:      options.Mode,
	}
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	if timer.closed {
		close(ch)
		return ch
	}
	timer.events = append(timer.events, ch)
	return ch
}

// SelectMode changes the focus mode without touching the countdown.
func (timer *Timer) SelectMode(mode model.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	timer.mode = mode
	timer.feedback.Notify(feedback.Selection)
	timer.emit(EventModeChanged)
	return nil
}

// Start begins a countdown of the given minutes, replacing any running one.
func (timer *Timer) Start(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, minutes)
	}

	timer.cancelTick()
	timer.remaining = minutes * 60
	timer.total = timer.remaining
	timer.running = true
	timer.scheduleTick()

	timer.feedback.Notify(feedback.Success)
	timer.animator.Pulse(true)
	timer.emit(EventStarted)
	return nil
}

// Stop abandons the running countdown. It is a no-op when idle.
func (timer *Timer) Stop() {
	if !timer.running {
		return
	}
	timer.cancelTick()
	timer.running = false
	timer.remaining = 0

	timer.feedback.Notify(feedback.Warning)
	timer.animator.Settle()
	timer.emit(EventStopped)
}

// Tick advances the countdown by one second. It is a no-op when idle, so a
// tick delivered after Stop is harmless.
func (timer *Timer) Tick() {
	if !timer.running {
		return
	}

	timer.remaining--
	if timer.remaining > 0 {
		timer.emit(EventProgress)
		return
	}

	timer.remaining = 0
	timer.running = false
	timer.cancelTick()

	timer.feedback.Notify(feedback.Success)
	timer.animator.Settle()
	timer.emit(EventCompleted)
}

// Close releases the tick source and closes observers. Safe to call twice.
func (timer *Timer) Close() {
	if timer.closed {
		return
	}
	timer.cancelTick()
	timer.running = false
	timer.closed = true

	events := timer.events
	timer.events = nil
	for _, ch := range events {
		close(ch)
	}
}

// Mode returns the selected focus mode.
func (timer *Timer) Mode() model.Mode {
	return timer.mode
}

// Remaining returns the seconds left in the countdown.
func (timer *Timer) Remaining() int {
	return timer.remaining
}

// Running reports whether a countdown is in progress.
func (timer *Timer) Running() bool {
	return timer.running
}

// State returns Idle or Running.
func (timer *Timer) State() State {
	if timer.running {
		return StateRunning
	}
	return StateIdle
}

// Progress returns the elapsed fraction of the current countdown.
func (timer *Timer) Progress() float64 {
	if timer.total <= 0 || !timer.running {
		return 0
	}
	progress := float64(timer.total-timer.remaining) / float64(timer.total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Display formats the remaining time as mm:ss.
func (timer *Timer) Display() string {
	return FormatSeconds(timer.remaining)
}

// Snapshot returns the presentation view of the timer.
func (timer *Timer) Snapshot() Snapshot {
	return Snapshot{
		State:     timer.State(),
		Mode:      timer.mode,
		Remaining: timer.remaining,
		Total:     timer.total,
		Progress:  timer.Progress(),
		Display:   timer.Display(),
	}
}

// FormatSeconds formats seconds as zero padded mm:ss. Hours fold into minutes.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (timer *Timer) scheduleTick() {
	if timer.scheduler == nil {
		return
	}
	timer.generation++
	generation := timer.generation
	timer.tick = timer.scheduler.Schedule(timer.options.TickInterval, func() {
		// Callbacks dispatched before a cancel can still arrive.
		if generation != timer.generation {
			return
		}
		timer.Tick()
	})
	timer.ticking = true
}

func (timer *Timer) cancelTick() {
	if !timer.ticking {
		return
	}
	timer.ticking = false
	timer.generation++
	timer.scheduler.Cancel(timer.tick)
}

func (timer *Timer) emit(eventType EventType) {
	event := Event{
		Type:      eventType,
		State:     timer.State(),
		Mode:      timer.mode,
		Remaining: timer.remaining,
		Progress:  timer.Progress(),
		At:        timer.now(),
	}
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}
