package platform

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"focusflow/internal/core/model"
)

func TestPortFromNameIsStable(t *testing.T) {
	first := portFromName("FocusFlow")
	if first != portFromName("FocusFlow") {
		t.Error("port changed between calls")
	}
	if first < 20000 || first > 39999 {
		t.Errorf("port %d outside range", first)
	}
}

func TestSingleInstanceActivatesRunningCopy(t *testing.T) {
	appName := "focusflow-test-" + time.Now().Format("150405.000000000")
	activated := make(chan struct{}, 1)

	guard, err := AcquireSingleInstance(appName, func() {
		activated <- struct{}{}
	})
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	_, err = AcquireSingleInstance(appName, nil)
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Error("running instance was not activated")
	}

	if err := guard.Release(); err != nil {
		t.Errorf("release: %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Errorf("second release: %v", err)
	}
}

func TestCameraInputOverride(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Skip("linux checks for the device node")
	}
	service := NewService(map[model.Facing]string{model.FacingFront: " custom "})
	input, err := service.CameraInput(model.FacingFront)
	if err != nil {
		t.Fatalf("camera input: %v", err)
	}
	if input.Device != "custom" {
		t.Errorf("expected override, got %q", input.Device)
	}
}

func TestCameraInputMissingDevice(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("only linux probes device nodes")
	}
	service := NewService(map[model.Facing]string{model.FacingBack: "/nonexistent/video9"})
	_, err := service.CameraInput(model.FacingBack)
	if !errors.Is(err, ErrNoCamera) {
		t.Errorf("expected ErrNoCamera, got %v", err)
	}
}

func TestVideosDir(t *testing.T) {
	dir, err := NewService(nil).GetVideosDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	if dir == "" {
		t.Error("empty videos dir")
	}
}
