package recording

import (
	"time"

	"focusflow/internal/core/model"
)

// State represents the recorder mode.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
)

// EventType defines the type of recorder event.
type EventType string

const (
	EventStarted       EventType = "started"
	EventStopped       EventType = "stopped"
	EventFinished      EventType = "finished"
	EventCaptureFailed EventType = "capture_failed"
	EventFacingChanged EventType = "facing_changed"
)

// Event represents a recorder update for observers. Asset is set on
// EventFinished, Err on EventCaptureFailed. Auto marks transitions the
// device initiated, such as hitting the duration cap.
type Event struct {
	Type   EventType
	State  State
	Facing model.Facing
	Asset  *model.Asset
	Err    error
	Auto   bool
	At     time.Time
}
