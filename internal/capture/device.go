package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/platform"

	"github.com/google/uuid"
)

var (
	// ErrBusy is returned when Begin is called while a recording is active.
	ErrBusy = errors.New("capture already in progress")
	// ErrEndTimeout is returned when ffmpeg ignores the quit request.
	ErrEndTimeout = errors.New("capture did not finish in time")
)

// InputResolver maps a camera to its ffmpeg input.
type InputResolver interface {
	CameraInput(facing model.Facing) (platform.CameraInput, error)
}

// Options configures a Device.
type Options struct {
	FFmpegPath string
	OutputDir  string
	// Grace is how long End waits for ffmpeg to finalize before killing it.
	Grace time.Duration
}

// Device is an ffmpeg-backed capture device.
type Device struct {
	mu       sync.Mutex
	options  Options
	resolver InputResolver
	start    func(name string, args []string) (process, error)
	now      func() time.Time
	facing   model.Facing
	active   *take
}

type take struct {
	proc   process
	asset  model.Asset
	exited chan struct{}
	mu     sync.Mutex
	ending bool
}

// Open locates ffmpeg, checks that at least one camera exists and
// prepares the output directory.
func Open(options Options, resolver InputResolver) (*Device, error) {
	if options.FFmpegPath == "" {
		options.FFmpegPath = "ffmpeg"
	}
	path, err := exec.LookPath(options.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg not found: %v", platform.ErrNoCamera, err)
	}
	options.FFmpegPath = path

	_, backErr := resolver.CameraInput(model.FacingBack)
	_, frontErr := resolver.CameraInput(model.FacingFront)
	if backErr != nil && frontErr != nil {
		return nil, backErr
	}

	if err := os.MkdirAll(options.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return newDevice(options, resolver, startExec), nil
}

func newDevice(options Options, resolver InputResolver, start func(string, []string) (process, error)) *Device {
	if options.Grace <= 0 {
		options.Grace = 5 * time.Second
	}
	return &Device{
		options:  options,
		resolver: resolver,
		start:    start,
		now:      time.Now,
		facing:   model.FacingBack,
	}
}

// SetFacing records the selected camera. The camera of a recording is fixed
// by the CaptureConfig passed to Begin.
func (device *Device) SetFacing(facing model.Facing) {
	device.mu.Lock()
	device.facing = facing
	device.mu.Unlock()
}

// Facing returns the last selected camera.
func (device *Device) Facing() model.Facing {
	device.mu.Lock()
	defer device.mu.Unlock()
	return device.facing
}

// Begin spawns ffmpeg. done receives the asset once the file is finalized.
func (device *Device) Begin(ctx context.Context, config model.CaptureConfig, done func(model.Asset, error)) {
	fail := func(err error) {
		go done(model.Asset{}, err)
	}
	if err := ctx.Err(); err != nil {
		fail(err)
		return
	}

	device.mu.Lock()
	defer device.mu.Unlock()
	if device.active != nil {
		fail(ErrBusy)
		return
	}

	input, err := device.resolver.CameraInput(config.Facing)
	if err != nil {
		fail(err)
		return
	}

	id := uuid.NewString()
	output := filepath.Join(device.options.OutputDir, "focusflow-"+id+".mp4")
	proc, err := device.start(device.options.FFmpegPath, BuildArgs(input, config, output))
	if err != nil {
		fail(err)
		return
	}
	log.Printf("capture: started %s (%s %s, %s, cap %s)", id, input.Format, input.Device, config.Quality, config.MaxDuration)

	current := &take{
		proc: proc,
		asset: model.Asset{
			ID:        id,
			Path:      output,
			Facing:    config.Facing,
			Quality:   config.Quality,
			StartedAt: device.now(),
		},
		exited: make(chan struct{}),
	}
	device.active = current
	go device.watch(current, done)
}

// End asks the active ffmpeg to finish. With nothing recording it succeeds.
func (device *Device) End(ctx context.Context, done func(error)) {
	device.mu.Lock()
	current := device.active
	grace := device.options.Grace
	device.mu.Unlock()

	if current == nil {
		go done(nil)
		return
	}
	go func() {
		done(device.finish(ctx, current, grace))
	}()
}

// Close finishes any active recording and waits for ffmpeg to exit.
func (device *Device) Close() error {
	device.mu.Lock()
	current := device.active
	grace := device.options.Grace
	device.mu.Unlock()

	if current == nil {
		return nil
	}
	return device.finish(context.Background(), current, grace)
}

func (device *Device) finish(ctx context.Context, current *take, grace time.Duration) error {
	current.mu.Lock()
	current.ending = true
	current.mu.Unlock()

	if err := current.proc.Interrupt(); err != nil {
		log.Printf("capture: %s: %v", current.asset.ID, err)
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-current.exited:
		return nil
	case <-timer.C:
		_ = current.proc.Kill()
		<-current.exited
		return ErrEndTimeout
	case <-ctx.Done():
		_ = current.proc.Kill()
		<-current.exited
		return ctx.Err()
	}
}

func (device *Device) watch(current *take, done func(model.Asset, error)) {
	err := current.proc.Wait()
	finished := device.now()

	device.mu.Lock()
	if device.active == current {
		device.active = nil
	}
	device.mu.Unlock()

	current.mu.Lock()
	ending := current.ending
	current.mu.Unlock()
	close(current.exited)

	asset := current.asset
	asset.FinishedAt = finished
	if err != nil {
		// ffmpeg may exit non-zero after a quit request yet leave a playable file.
		if ending && fileHasData(asset.Path) {
			log.Printf("capture: %s finished with %v", asset.ID, err)
			done(asset, nil)
			return
		}
		done(model.Asset{}, fmt.Errorf("ffmpeg: %w", err))
		return
	}
	log.Printf("capture: finished %s after %s", asset.ID, asset.Duration().Round(time.Millisecond))
	done(asset, nil)
}

func fileHasData(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
