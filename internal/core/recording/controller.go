// Package recording implements the camera recorder state machine on top of
// an external capture device. A Controller is owned by a single goroutine;
// device callbacks are marshaled back to it through a clock.Dispatcher.
package recording

import (
	"context"
	"fmt"
	"log"
	"time"

	"focusflow/internal/core/clock"
	"focusflow/internal/core/model"
	"focusflow/internal/feedback"
)

// Device performs the actual capture. Begin and End must return
// immediately and call done exactly once, from any goroutine. Begin's done
// fires when the recording file is finalized, whether End was called or
// the device hit MaxDuration on its own. Close finishes any active
// recording and returns once it is finalized.
type Device interface {
	Begin(ctx context.Context, config model.CaptureConfig, done func(model.Asset, error))
	End(ctx context.Context, done func(error))
	SetFacing(facing model.Facing)
	Close() error
}

// Animator receives presentation animation requests.
type Animator interface {
	Pulse(repeat bool)
	Settle()
}

type nopAnimator struct{}

func (nopAnimator) Pulse(bool) {}
func (nopAnimator) Settle()    {}

// Config contains runtime options for Controller.
type Config struct {
	Capture model.CaptureConfig
	// RevertOnCaptureFailure returns the controller to idle when the device
	// fails the active recording. Off by default: the recorder then stays in
	// the recording state until stopped, and the failure is only reported.
	RevertOnCaptureFailure bool
}

// Controller is the recorder state machine.
type Controller struct {
	options  Config
	device   Device
	dispatch clock.Dispatcher
	feedback feedback.Sink
	animator Animator
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	recording bool
	facing    model.Facing
	take      uint64
	pending   uint64
	closed    bool
	lastErr   error
	events    []chan Event
}

// New creates an idle controller facing the back camera. A nil dispatcher
// runs device callbacks on the calling goroutine.
func New(options Config, dispatch clock.Dispatcher, sink feedback.Sink, animator Animator) *Controller {
	if options.Capture.MaxDuration <= 0 {
		options.Capture.MaxDuration = model.DefaultMaxRecording
	}
	if !options.Capture.Quality.Valid() {
		options.Capture.Quality = model.Quality1080p
	}
	if dispatch == nil {
		dispatch = clock.Direct
	}
	if sink == nil {
		sink = feedback.Nop{}
	}
	if animator == nil {
		animator = nopAnimator{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		options:  options,
		dispatch: dispatch,
		feedback: sink,
		animator: animator,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		facing:   model.FacingBack,
	}
}

// BindDevice attaches a capture device, replacing any previous one. Passing
// nil unbinds. The device cannot change during a recording.
func (controller *Controller) BindDevice(device Device) error {
	if controller.recording {
		return fmt.Errorf("%w: cannot change device while recording", ErrInvalidState)
	}
	if controller.closed {
		return fmt.Errorf("%w: controller closed", ErrInvalidState)
	}
	controller.device = device
	if device != nil {
		device.SetFacing(controller.facing)
	}
	return nil
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	if controller.closed {
		close(ch)
		return ch
	}
	controller.events = append(controller.events, ch)
	return ch
}

// SetCaptureConfig updates duration cap and quality for the next recording.
func (controller *Controller) SetCaptureConfig(config model.CaptureConfig) {
	if config.MaxDuration > 0 {
		controller.options.Capture.MaxDuration = config.MaxDuration
	}
	if config.Quality.Valid() {
		controller.options.Capture.Quality = config.Quality
	}
}

// StartRecording flips to recording immediately and asks the device to
// begin. It is a no-op while already recording.
func (controller *Controller) StartRecording() error {
	if controller.closed || controller.device == nil {
		return ErrDeviceUnavailable
	}
	if controller.recording {
		return nil
	}
	if controller.pending != 0 {
		return ErrFinalizing
	}

	controller.take++
	take := controller.take
	controller.pending = take
	controller.recording = true
	controller.lastErr = nil

	controller.feedback.Notify(feedback.Success)
	controller.animator.Pulse(true)
	controller.emit(Event{Type: EventStarted})

	config := controller.options.Capture
	config.Facing = controller.facing
	controller.device.Begin(controller.ctx, config, func(asset model.Asset, err error) {
		controller.dispatch(func() {
			controller.handleBegin(take, asset, err)
		})
	})
	return nil
}

// StopRecording flips to idle immediately and asks the device to finish.
// A device failure arrives later as EventCaptureFailed and does not roll
// the state back. It is a no-op when idle.
func (controller *Controller) StopRecording() {
	if !controller.recording {
		return
	}
	controller.applyStop(false)
	controller.endDevice()
}

// ToggleFacing switches between front and back cameras. It fails with
// ErrInvalidState while recording.
func (controller *Controller) ToggleFacing() error {
	if controller.recording {
		return fmt.Errorf("%w: cannot switch camera while recording", ErrInvalidState)
	}
	controller.facing = controller.facing.Flip()
	if controller.device != nil {
		controller.device.SetFacing(controller.facing)
	}
	controller.feedback.Notify(feedback.Selection)
	controller.emit(Event{Type: EventFacingChanged})
	return nil
}

// Close stops any recording in progress, releases the device and closes
// observers. The device finalizes the recording inside its own Close.
// Safe to call twice.
func (controller *Controller) Close() error {
	if controller.closed {
		return nil
	}
	if controller.recording {
		controller.applyStop(false)
	}
	controller.closed = true

	var err error
	if controller.device != nil {
		if closeErr := controller.device.Close(); closeErr != nil {
			err = &CaptureError{Op: "close", Err: closeErr}
		}
		controller.device = nil
	}
	controller.cancel()

	events := controller.events
	controller.events = nil
	for _, ch := range events {
		close(ch)
	}
	return err
}

// Recording reports whether a capture is in progress.
func (controller *Controller) Recording() bool {
	return controller.recording
}

// Facing returns the selected camera.
func (controller *Controller) Facing() model.Facing {
	return controller.facing
}

// State returns Idle or Recording.
func (controller *Controller) State() State {
	if controller.recording {
		return StateRecording
	}
	return StateIdle
}

// Finalizing reports whether a stopped take is still being written out.
// StartRecording fails with ErrFinalizing until it is.
func (controller *Controller) Finalizing() bool {
	return !controller.recording && controller.pending != 0
}

// Bound reports whether a capture device is attached.
func (controller *Controller) Bound() bool {
	return controller.device != nil
}

// LastError returns the most recent device failure since the last start.
func (controller *Controller) LastError() error {
	return controller.lastErr
}

func (controller *Controller) applyStop(auto bool) {
	controller.recording = false
	controller.feedback.Notify(feedback.Warning)
	controller.animator.Settle()
	controller.emit(Event{Type: EventStopped, Auto: auto})
}

func (controller *Controller) endDevice() {
	device := controller.device
	device.End(controller.ctx, func(err error) {
		if err == nil {
			return
		}
		controller.dispatch(func() {
			// Close cancels the context under an in-flight End.
			if controller.closed {
				return
			}
			controller.fail(&CaptureError{Op: "end", Err: err})
		})
	})
}

func (controller *Controller) handleBegin(take uint64, asset model.Asset, err error) {
	if controller.closed {
		if err != nil {
			log.Printf("recording: capture failed after close: %v", err)
		}
		return
	}
	if take == controller.pending {
		controller.pending = 0
	}
	active := controller.recording && take == controller.take

	if err != nil {
		controller.fail(&CaptureError{Op: "begin", Err: err})
		if active && controller.options.RevertOnCaptureFailure {
			controller.applyStop(true)
		}
		return
	}

	if active {
		controller.applyStop(true)
	}
	controller.emit(Event{Type: EventFinished, Asset: &asset, Auto: active})
}

func (controller *Controller) fail(err *CaptureError) {
	controller.lastErr = err
	log.Printf("recording: %v", err)
	controller.emit(Event{Type: EventCaptureFailed, Err: err})
}

func (controller *Controller) emit(event Event) {
	event.State = controller.State()
	event.Facing = controller.facing
	event.At = controller.now()
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
