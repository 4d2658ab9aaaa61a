package capture

import (
	"errors"
	"testing"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/core/recording"
)

// uiQueue collects dispatched callbacks so the test goroutine plays the UI
// thread.
type uiQueue chan func()

func (queue uiQueue) dispatch(fn func()) {
	queue <- fn
}

func (queue uiQueue) runUntil(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !condition() {
		select {
		case fn := <-queue:
			fn()
		case <-deadline:
			t.Fatal("condition not reached")
		}
	}
}

func TestRestartWaitsForSlowFinalize(t *testing.T) {
	resolver := staticResolver{model.FacingBack: {Format: "v4l2", Device: "/dev/video2"}}
	procs := []*fakeProcess{newFakeProcess(false), newFakeProcess(true)}
	spawns := 0
	device := newDevice(Options{FFmpegPath: "ffmpeg", OutputDir: t.TempDir(), Grace: 50 * time.Millisecond}, resolver,
		func(string, []string) (process, error) {
			proc := procs[spawns]
			spawns++
			return proc, nil
		})

	queue := make(uiQueue, 16)
	controller := recording.New(recording.Config{}, queue.dispatch, nil, nil)
	if err := controller.BindDevice(device); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = controller.Close() }()

	if err := controller.StartRecording(); err != nil {
		t.Fatalf("start: %v", err)
	}
	controller.StopRecording()

	if err := controller.StartRecording(); !errors.Is(err, recording.ErrFinalizing) {
		t.Fatalf("expected ErrFinalizing while ffmpeg finalizes, got %v", err)
	}
	if controller.Recording() {
		t.Fatal("recorder reports recording with no ffmpeg running")
	}
	if spawns != 1 {
		t.Fatalf("expected one ffmpeg, got %d", spawns)
	}

	queue.runUntil(t, func() bool { return !controller.Finalizing() })
	if procs[0].kills != 1 {
		t.Errorf("expected the stuck ffmpeg to be killed, got %d kills", procs[0].kills)
	}

	if err := controller.StartRecording(); err != nil {
		t.Fatalf("start after finalize: %v", err)
	}
	if !controller.Recording() || spawns != 2 {
		t.Errorf("expected a second ffmpeg, recording=%v spawns=%d", controller.Recording(), spawns)
	}
}
