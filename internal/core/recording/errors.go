package recording

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceUnavailable means no capture device is bound, typically because
	// camera access was not granted or no camera exists.
	ErrDeviceUnavailable = errors.New("capture device unavailable")
	// ErrInvalidState is returned for operations the current state forbids.
	ErrInvalidState = errors.New("invalid recorder state")
	// ErrFinalizing is returned by StartRecording while the device is still
	// writing out the previous take.
	ErrFinalizing = errors.New("previous recording is still finalizing")
)

// CaptureError is a failure reported by the capture device.
type CaptureError struct {
	Op  string
	Err error
}

func (err *CaptureError) Error() string {
	return fmt.Sprintf("capture %s: %v", err.Op, err.Err)
}

func (err *CaptureError) Unwrap() error {
	return err.Err
}
