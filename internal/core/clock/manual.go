package clock

import "time"

// Manual is a Scheduler advanced by hand. It is meant for tests and for
// hosts that already own a frame loop.
type Manual struct {
	next      Handle
	callbacks map[Handle]func()
	order     []Handle
	scheduled int
	cancelled int
}

// NewManual creates an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{callbacks: make(map[Handle]func())}
}

// Schedule registers a callback. The interval is ignored.
func (manual *Manual) Schedule(_ time.Duration, callback func()) Handle {
	manual.next++
	manual.callbacks[manual.next] = callback
	manual.order = append(manual.order, manual.next)
	manual.scheduled++
	return manual.next
}

// Cancel removes a callback. Only the first cancel of a live handle is counted.
func (manual *Manual) Cancel(handle Handle) {
	if _, ok := manual.callbacks[handle]; !ok {
		return
	}
	delete(manual.callbacks, handle)
	manual.cancelled++
}

// Fire invokes every live callback once, in scheduling order.
func (manual *Manual) Fire() {
	for _, handle := range append([]Handle(nil), manual.order...) {
		if callback, ok := manual.callbacks[handle]; ok {
			callback()
		}
	}
}

// Advance fires n times.
func (manual *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		manual.Fire()
	}
}

// Active returns the number of live callbacks.
func (manual *Manual) Active() int {
	return len(manual.callbacks)
}

// Scheduled returns how many callbacks were ever scheduled.
func (manual *Manual) Scheduled() int {
	return manual.scheduled
}

// Cancelled returns how many live handles were cancelled.
func (manual *Manual) Cancelled() int {
	return manual.cancelled
}
