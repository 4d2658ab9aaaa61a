// Package feedback delivers fire-and-forget user cues for controller
// transitions. On phones these are haptics; on the desktop they are short
// audio tones.
package feedback

import (
	"log"
	"sync"
)

// Kind classifies a cue.
type Kind string

const (
	Success   Kind = "success"
	Warning   Kind = "warning"
	Selection Kind = "selection"
)

// Sink receives cues. Implementations must not block the caller.
type Sink interface {
	Notify(kind Kind)
}

// Nop discards every cue.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(Kind) {}

// LogSink writes each cue to the standard logger.
type LogSink struct {
	Prefix string
}

// Notify logs the cue.
func (sink LogSink) Notify(kind Kind) {
	prefix := sink.Prefix
	if prefix == "" {
		prefix = "feedback"
	}
	log.Printf("%s: %s", prefix, kind)
}

// Multi forwards cues to several sinks in order.
type Multi []Sink

// Notify forwards the cue.
func (multi Multi) Notify(kind Kind) {
	for _, sink := range multi {
		if sink != nil {
			sink.Notify(kind)
		}
	}
}

// Switch forwards cues only while enabled.
type Switch struct {
	mu      sync.Mutex
	sink    Sink
	enabled bool
}

// NewSwitch wraps a sink.
func NewSwitch(sink Sink, enabled bool) *Switch {
	return &Switch{sink: sink, enabled: enabled}
}

// SetEnabled turns forwarding on or off.
func (toggle *Switch) SetEnabled(enabled bool) {
	toggle.mu.Lock()
	toggle.enabled = enabled
	toggle.mu.Unlock()
}

// Notify forwards the cue when enabled.
func (toggle *Switch) Notify(kind Kind) {
	toggle.mu.Lock()
	enabled := toggle.enabled
	sink := toggle.sink
	toggle.mu.Unlock()
	if enabled && sink != nil {
		sink.Notify(kind)
	}
}
