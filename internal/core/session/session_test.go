package session

import (
	"errors"
	"testing"
	"time"

	"focusflow/internal/core/clock"
	"focusflow/internal/core/model"
	"focusflow/internal/feedback"
)

type cueLog struct {
	kinds []feedback.Kind
}

func (log *cueLog) Notify(kind feedback.Kind) {
	log.kinds = append(log.kinds, kind)
}

func (log *cueLog) count(kind feedback.Kind) int {
	total := 0
	for _, recorded := range log.kinds {
		if recorded == kind {
			total++
		}
	}
	return total
}

func (log *cueLog) reset() {
	log.kinds = nil
}

type animLog struct {
	pulses  []bool
	settles int
}

func (log *animLog) Pulse(repeat bool) {
	log.pulses = append(log.pulses, repeat)
}

func (log *animLog) Settle() {
	log.settles++
}

type fixture struct {
	timer     *Timer
	scheduler *clock.Manual
	cues      *cueLog
	anims     *animLog
	events    <-chan Event
}

func newFixture() *fixture {
	scheduler := clock.NewManual()
	cues := &cueLog{}
	anims := &animLog{}
	timer := New(Config{}, scheduler, cues, anims)
	return &fixture{
		timer:     timer,
		scheduler: scheduler,
		cues:      cues,
		anims:     anims,
		events:    timer.Subscribe(8192),
	}
}

func drainEvents(events <-chan Event) []Event {
	var collected []Event
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, event)
		default:
			return collected
		}
	}
}

func countEvents(events []Event, eventType EventType) int {
	total := 0
	for _, event := range events {
		if event.Type == eventType {
			total++
		}
	}
	return total
}

func TestNewTimerIsIdle(t *testing.T) {
	f := newFixture()

	if f.timer.Running() {
		t.Error("new timer should not be running")
	}
	if f.timer.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", f.timer.Remaining())
	}
	if f.timer.Mode() != model.ModeDeepWork {
		t.Errorf("expected deep work default, got %s", f.timer.Mode())
	}
	if f.timer.State() != StateIdle {
		t.Errorf("expected idle state, got %s", f.timer.State())
	}
	if f.timer.Display() != "00:00" {
		t.Errorf("expected 00:00, got %s", f.timer.Display())
	}
}

func TestCountdownCompletes(t *testing.T) {
	for _, minutes := range []int{1, 2, 25} {
		f := newFixture()
		if err := f.timer.Start(minutes); err != nil {
			t.Fatalf("start %d: %v", minutes, err)
		}
		f.cues.reset()
		drainEvents(f.events)

		f.scheduler.Advance(minutes * 60)

		if f.timer.Remaining() != 0 || f.timer.Running() {
			t.Errorf("%dm: expected 0/idle, got %d/%v", minutes, f.timer.Remaining(), f.timer.Running())
		}
		if f.cues.count(feedback.Success) != 1 {
			t.Errorf("%dm: expected one completion cue, got %v", minutes, f.cues.kinds)
		}
		if f.cues.count(feedback.Warning) != 0 {
			t.Errorf("%dm: completion must not emit the stop warning: %v", minutes, f.cues.kinds)
		}

		events := drainEvents(f.events)
		if countEvents(events, EventCompleted) != 1 || countEvents(events, EventStopped) != 0 {
			t.Errorf("%dm: expected a single completed event, got %d completed %d stopped", minutes,
				countEvents(events, EventCompleted), countEvents(events, EventStopped))
		}
		if f.scheduler.Active() != 0 {
			t.Errorf("%dm: tick source still active after completion", minutes)
		}
	}
}

func TestZeroTransitionIsAtomic(t *testing.T) {
	f := newFixture()
	_ = f.timer.Start(1)
	drainEvents(f.events)

	f.scheduler.Advance(60)
	for _, event := range drainEvents(f.events) {
		if event.Remaining == 0 && event.State == StateRunning {
			t.Fatalf("observed running state at zero: %+v", event)
		}
	}
}

func TestTickWhileIdleIsNoop(t *testing.T) {
	f := newFixture()

	f.timer.Tick()
	if f.timer.Remaining() != 0 {
		t.Errorf("idle tick changed remaining to %d", f.timer.Remaining())
	}

	_ = f.timer.Start(25)
	f.timer.Stop()
	f.timer.Tick()
	if f.timer.Remaining() != 0 || f.timer.Running() {
		t.Errorf("tick after stop changed state: %d/%v", f.timer.Remaining(), f.timer.Running())
	}
}

func TestStopAfterTicks(t *testing.T) {
	f := newFixture()
	_ = f.timer.Start(25)
	f.scheduler.Advance(10)
	if f.timer.Remaining() != 25*60-10 {
		t.Fatalf("expected %d remaining, got %d", 25*60-10, f.timer.Remaining())
	}
	f.cues.reset()
	drainEvents(f.events)

	f.timer.Stop()

	if f.timer.Remaining() != 0 || f.timer.Running() {
		t.Errorf("expected 0/idle after stop, got %d/%v", f.timer.Remaining(), f.timer.Running())
	}
	if len(f.cues.kinds) != 1 || f.cues.kinds[0] != feedback.Warning {
		t.Errorf("expected only the warning cue, got %v", f.cues.kinds)
	}
	events := drainEvents(f.events)
	if countEvents(events, EventStopped) != 1 || countEvents(events, EventCompleted) != 0 {
		t.Errorf("expected one stopped event, got %v", events)
	}
	if f.anims.settles != 1 {
		t.Errorf("expected one settle request, got %d", f.anims.settles)
	}
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	f := newFixture()
	f.timer.Stop()
	if len(f.cues.kinds) != 0 || f.anims.settles != 0 {
		t.Errorf("idle stop emitted cues %v settles %d", f.cues.kinds, f.anims.settles)
	}
}

func TestStartRestarts(t *testing.T) {
	f := newFixture()
	_ = f.timer.Start(10)
	f.scheduler.Advance(3)
	_ = f.timer.Start(5)

	if f.timer.Remaining() != 300 {
		t.Errorf("expected 300 after restart, got %d", f.timer.Remaining())
	}
	if f.scheduler.Active() != 1 {
		t.Errorf("expected a single live tick source, got %d", f.scheduler.Active())
	}

	f.scheduler.Fire()
	if f.timer.Remaining() != 299 {
		t.Errorf("expected one decrement per tick, got %d", f.timer.Remaining())
	}
}

func TestStartRejectsNonPositive(t *testing.T) {
	f := newFixture()
	for _, minutes := range []int{0, -5} {
		err := f.timer.Start(minutes)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("Start(%d): expected ErrInvalidDuration, got %v", minutes, err)
		}
	}
	if f.timer.Running() || len(f.cues.kinds) != 0 {
		t.Error("rejected start changed state or emitted cues")
	}
}

func TestStartRequestsRepeatingPulse(t *testing.T) {
	f := newFixture()
	_ = f.timer.Start(25)
	if len(f.anims.pulses) != 1 || !f.anims.pulses[0] {
		t.Errorf("expected one repeating pulse, got %v", f.anims.pulses)
	}
	if f.cues.count(feedback.Success) != 1 {
		t.Errorf("expected a success cue on start, got %v", f.cues.kinds)
	}
}

func TestSelectModeIndependentOfCountdown(t *testing.T) {
	f := newFixture()
	_ = f.timer.Start(25)
	f.scheduler.Advance(5)
	f.cues.reset()

	if err := f.timer.SelectMode(model.ModeCreativeFlow); err != nil {
		t.Fatalf("select mode: %v", err)
	}

	if f.timer.Mode() != model.ModeCreativeFlow {
		t.Errorf("expected creative flow, got %s", f.timer.Mode())
	}
	if !f.timer.Running() || f.timer.Remaining() != 25*60-5 {
		t.Errorf("mode change altered countdown: %d/%v", f.timer.Remaining(), f.timer.Running())
	}
	if len(f.cues.kinds) != 1 || f.cues.kinds[0] != feedback.Selection {
		t.Errorf("expected selection cue, got %v", f.cues.kinds)
	}
}

func TestSelectModeRejectsUnknown(t *testing.T) {
	f := newFixture()
	if err := f.timer.SelectMode(model.Mode("siesta")); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	if f.timer.Mode() != model.ModeDeepWork {
		t.Errorf("mode changed to %s", f.timer.Mode())
	}
}

func TestTeardownCancelsOnce(t *testing.T) {
	f := newFixture()
	_ = f.timer.Start(1)
	f.timer.Stop()
	f.timer.Close()
	f.timer.Close()

	if f.scheduler.Scheduled() != 1 || f.scheduler.Cancelled() != 1 {
		t.Errorf("expected 1 schedule and 1 cancel, got %d/%d", f.scheduler.Scheduled(), f.scheduler.Cancelled())
	}

	f = newFixture()
	_ = f.timer.Start(1)
	f.scheduler.Advance(60)
	f.timer.Stop()
	f.timer.Close()
	if f.scheduler.Cancelled() != 1 {
		t.Errorf("completion then close cancelled %d times", f.scheduler.Cancelled())
	}
}

func TestCloseReleasesRunningTick(t *testing.T) {
	f := newFixture()
	_ = f.timer.Start(25)
	f.timer.Close()

	if f.scheduler.Active() != 0 {
		t.Errorf("close left %d tick sources", f.scheduler.Active())
	}
	drainEvents(f.events)
	if _, ok := <-f.events; ok {
		t.Error("expected observer channel to be closed")
	}
}

func TestStaleTickAfterRestartIsIgnored(t *testing.T) {
	scheduler := &capturingScheduler{}
	timer := New(Config{}, scheduler, nil, nil)

	_ = timer.Start(10)
	stale := scheduler.callbacks[0]
	_ = timer.Start(5)

	stale()
	if timer.Remaining() != 300 {
		t.Errorf("stale tick decremented restarted countdown to %d", timer.Remaining())
	}
	scheduler.callbacks[1]()
	if timer.Remaining() != 299 {
		t.Errorf("live tick did not decrement: %d", timer.Remaining())
	}
}

func TestSnapshot(t *testing.T) {
	f := newFixture()
	_ = f.timer.Start(1)
	f.scheduler.Advance(15)

	snapshot := f.timer.Snapshot()
	if snapshot.State != StateRunning || snapshot.Remaining != 45 || snapshot.Display != "00:45" {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}
	if snapshot.Progress != 0.25 {
		t.Errorf("expected progress 0.25, got %f", snapshot.Progress)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{-3, "00:00"},
		{0, "00:00"},
		{59, "00:59"},
		{900, "15:00"},
		{3600, "60:00"},
	}
	for _, test := range tests {
		if got := FormatSeconds(test.seconds); got != test.expected {
			t.Errorf("FormatSeconds(%d) = %s, expected %s", test.seconds, got, test.expected)
		}
	}
}

// capturingScheduler keeps every callback, even cancelled ones.
type capturingScheduler struct {
	callbacks []func()
}

func (scheduler *capturingScheduler) Schedule(_ time.Duration, callback func()) clock.Handle {
	scheduler.callbacks = append(scheduler.callbacks, callback)
	return clock.Handle(len(scheduler.callbacks))
}

func (scheduler *capturingScheduler) Cancel(clock.Handle) {}
