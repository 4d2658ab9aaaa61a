// Package clock provides the repeating tick source used by the focus timer.
package clock

import (
	"sync"
	"time"
)

// Handle identifies a scheduled repeating callback.
type Handle uint64

// Scheduler runs a callback repeatedly until the handle is cancelled.
type Scheduler interface {
	Schedule(interval time.Duration, callback func()) Handle
	Cancel(handle Handle)
}

// Dispatcher hands a function to the goroutine that owns UI state.
type Dispatcher func(func())

// Direct runs the function on the calling goroutine.
func Direct(fn func()) {
	fn()
}

// TickerScheduler drives callbacks from time.Ticker goroutines and marshals
// every invocation through a Dispatcher.
type TickerScheduler struct {
	mu       sync.Mutex
	dispatch Dispatcher
	next     Handle
	active   map[Handle]chan struct{}
}

// NewTickerScheduler creates a scheduler. A nil dispatcher calls back directly.
func NewTickerScheduler(dispatch Dispatcher) *TickerScheduler {
	if dispatch == nil {
		dispatch = Direct
	}
	return &TickerScheduler{
		dispatch: dispatch,
		active:   make(map[Handle]chan struct{}),
	}
}

// Schedule starts a repeating callback.
func (scheduler *TickerScheduler) Schedule(interval time.Duration, callback func()) Handle {
	if interval <= 0 {
		interval = time.Second
	}

	scheduler.mu.Lock()
	scheduler.next++
	handle := scheduler.next
	stopCh := make(chan struct{})
	scheduler.active[handle] = stopCh
	scheduler.mu.Unlock()

	go scheduler.run(interval, stopCh, callback)
	return handle
}

// Cancel stops a repeating callback. Unknown or already cancelled handles are ignored.
func (scheduler *TickerScheduler) Cancel(handle Handle) {
	scheduler.mu.Lock()
	stopCh, ok := scheduler.active[handle]
	if ok {
		delete(scheduler.active, handle)
	}
	scheduler.mu.Unlock()

	if ok {
		close(stopCh)
	}
}

// Active returns the number of running callbacks.
func (scheduler *TickerScheduler) Active() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.active)
}

func (scheduler *TickerScheduler) run(interval time.Duration, stopCh chan struct{}, callback func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			scheduler.dispatch(callback)
		}
	}
}
