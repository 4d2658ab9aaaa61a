package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"focusflow/internal/core/model"
)

// ErrNoCamera indicates no capture input exists for the requested camera.
var ErrNoCamera = errors.New("camera not available")

// CameraInput names an ffmpeg input for one physical camera.
type CameraInput struct {
	Format string
	Device string
}

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	GetVideosDir() (string, error)
	CameraInput(facing model.Facing) (CameraInput, error)
}

type platformService struct {
	overrides map[model.Facing]string
}

// NewService returns a platform-specific implementation. Non-empty
// overrides replace the default capture device name per camera.
func NewService(overrides map[model.Facing]string) Service {
	cleaned := make(map[model.Facing]string)
	for facing, device := range overrides {
		if device = strings.TrimSpace(device); device != "" {
			cleaned[facing] = device
		}
	}
	return &platformService{overrides: cleaned}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// GetVideosDir returns the user's videos folder.
func (service *platformService) GetVideosDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get videos dir: %w", err)
	}
	return filepath.Join(homeDir, videosFolder), nil
}

// CameraInput resolves the capture input for a camera.
func (service *platformService) CameraInput(facing model.Facing) (CameraInput, error) {
	input, ok := defaultCameraInputs()[facing]
	if !ok {
		return CameraInput{}, fmt.Errorf("%w: %s", ErrNoCamera, facing)
	}
	if device, ok := service.overrides[facing]; ok {
		input.Device = device
	}
	if !cameraPresent(input) {
		return CameraInput{}, fmt.Errorf("%w: %s (%s)", ErrNoCamera, facing, input.Device)
	}
	return input, nil
}
