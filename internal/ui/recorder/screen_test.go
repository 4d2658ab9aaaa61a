package recorder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/core/recording"

	"fyne.io/fyne/v2/test"
)

type stubDevice struct {
	begins []func(model.Asset, error)
	ends   int
	facing model.Facing
}

func (device *stubDevice) Begin(_ context.Context, _ model.CaptureConfig, done func(model.Asset, error)) {
	device.begins = append(device.begins, done)
}

func (device *stubDevice) End(_ context.Context, done func(error)) {
	device.ends++
	done(nil)
}

func (device *stubDevice) SetFacing(facing model.Facing) { device.facing = facing }

func (device *stubDevice) Close() error { return nil }

func newScreen(t *testing.T, device recording.Device) (*Screen, *recording.Controller, *[]error) {
	t.Helper()
	return newScreenWithRetry(t, device, nil)
}

func newScreenWithRetry(t *testing.T, device recording.Device, onRetry func(*recording.Controller)) (*Screen, *recording.Controller, *[]error) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	controller := recording.New(recording.Config{}, nil, nil, nil)
	if device != nil {
		if err := controller.BindDevice(device); err != nil {
			t.Fatalf("bind: %v", err)
		}
	}
	t.Cleanup(func() { _ = controller.Close() })

	var retry func()
	if onRetry != nil {
		retry = func() { onRetry(controller) }
	}
	var errs []error
	screen := New(controller, retry, func(err error) { errs = append(errs, err) })
	return screen, controller, &errs
}

func TestUnboundDevice(t *testing.T) {
	screen, _, errs := newScreen(t, nil)

	if screen.statusText.Text != "Camera unavailable" {
		t.Errorf("unexpected status %q", screen.statusText.Text)
	}
	if !screen.recordButton.Disabled() {
		t.Error("record should be disabled without a camera")
	}

	screen.toggleRecording()
	if len(*errs) != 1 || !errors.Is((*errs)[0], recording.ErrDeviceUnavailable) {
		t.Errorf("expected device unavailable, got %v", *errs)
	}
}

func TestRecordAndStop(t *testing.T) {
	device := &stubDevice{}
	screen, controller, _ := newScreen(t, device)

	test.Tap(screen.recordButton)
	if !controller.Recording() {
		t.Fatal("expected recording")
	}
	if screen.recordButton.Text != "Stop" {
		t.Errorf("expected stop label, got %q", screen.recordButton.Text)
	}
	if !screen.flipButton.Disabled() {
		t.Error("flip should be disabled while recording")
	}

	test.Tap(screen.recordButton)
	if controller.Recording() {
		t.Error("expected stopped")
	}
	if device.ends != 1 {
		t.Errorf("expected one End, got %d", device.ends)
	}
	if screen.recordButton.Text != "Record" {
		t.Errorf("expected record label, got %q", screen.recordButton.Text)
	}
	if !screen.recordButton.Disabled() || screen.statusText.Text != "Saving" {
		t.Errorf("record should wait for the file, disabled=%v status=%q", screen.recordButton.Disabled(), screen.statusText.Text)
	}

	device.begins[0](model.Asset{Path: "/videos/take.mp4"}, nil)
	screen.HandleEvent(recording.Event{Type: recording.EventFinished})
	if screen.recordButton.Disabled() || screen.statusText.Text != "Ready" {
		t.Errorf("expected ready after finalize, disabled=%v status=%q", screen.recordButton.Disabled(), screen.statusText.Text)
	}
}

func TestRetryCamera(t *testing.T) {
	device := &stubDevice{}
	attempts := 0
	screen, controller, _ := newScreenWithRetry(t, nil, func(controller *recording.Controller) {
		attempts++
		if attempts == 2 {
			_ = controller.BindDevice(device)
		}
	})

	if !screen.retryButton.Visible() {
		t.Fatal("retry should be offered without a camera")
	}

	test.Tap(screen.retryButton)
	if controller.Bound() || !screen.retryButton.Visible() {
		t.Error("failed retry should keep the retry action")
	}

	test.Tap(screen.retryButton)
	if !controller.Bound() {
		t.Fatal("expected the camera bound after retry")
	}
	if screen.retryButton.Visible() {
		t.Error("retry should hide once a camera is bound")
	}
	if screen.recordButton.Disabled() || screen.statusText.Text != "Ready" {
		t.Errorf("expected ready, disabled=%v status=%q", screen.recordButton.Disabled(), screen.statusText.Text)
	}
}

func TestRetryHiddenWithoutHandler(t *testing.T) {
	screen, _, _ := newScreen(t, nil)
	if screen.retryButton.Visible() {
		t.Error("retry shown without a handler")
	}
}

func TestFlipCamera(t *testing.T) {
	device := &stubDevice{}
	screen, controller, _ := newScreen(t, device)

	test.Tap(screen.flipButton)
	if controller.Facing() != model.FacingFront || device.facing != model.FacingFront {
		t.Errorf("expected front camera, controller=%s device=%s", controller.Facing(), device.facing)
	}
	if screen.facingText.Text != "front camera" {
		t.Errorf("unexpected facing text %q", screen.facingText.Text)
	}
}

func TestHandleFinishedEvent(t *testing.T) {
	screen, _, _ := newScreen(t, &stubDevice{})

	started := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	screen.HandleEvent(recording.Event{
		Type: recording.EventFinished,
		Asset: &model.Asset{
			Path:       "/videos/focusflow-abc.mp4",
			StartedAt:  started,
			FinishedAt: started.Add(12 * time.Second),
		},
	})
	if !strings.Contains(screen.savedLabel.Text, "focusflow-abc.mp4") {
		t.Errorf("expected saved file name, got %q", screen.savedLabel.Text)
	}
	if !strings.Contains(screen.savedLabel.Text, "12s") {
		t.Errorf("expected duration, got %q", screen.savedLabel.Text)
	}
}

func TestHandleCaptureFailure(t *testing.T) {
	screen, _, errs := newScreen(t, &stubDevice{})

	cause := &recording.CaptureError{Op: "begin", Err: errors.New("boom")}
	screen.HandleEvent(recording.Event{Type: recording.EventCaptureFailed, Err: cause})

	var captureErr *recording.CaptureError
	if len(*errs) != 1 || !errors.As((*errs)[0], &captureErr) {
		t.Errorf("expected capture error, got %v", *errs)
	}
}
