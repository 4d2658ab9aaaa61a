package session

import (
	"time"

	"focusflow/internal/core/model"
)

// State represents the current timer mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// EventType defines the type of timer event.
type EventType string

const (
	EventModeChanged EventType = "mode_changed"
	EventStarted     EventType = "started"
	EventProgress    EventType = "progress"
	EventStopped     EventType = "stopped"
	EventCompleted   EventType = "completed"
)

// Event represents a timer update for observers.
type Event struct {
	Type      EventType
	State     State
	Mode      model.Mode
	Remaining int
	Progress  float64
	At        time.Time
}

// Snapshot is a read-only view of the timer for presentation layers.
type Snapshot struct {
	State     State
	Mode      model.Mode
	Remaining int
	Total     int
	Progress  float64
	Display   string
}
