//go:build linux

package platform

import (
	"os"
	"path/filepath"

	"focusflow/internal/core/model"
)

const videosFolder = "Videos"

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

// Built-in webcams usually face the user and register first; each v4l2
// camera exposes a capture node and a metadata node.
func defaultCameraInputs() map[model.Facing]CameraInput {
	return map[model.Facing]CameraInput{
		model.FacingFront: {Format: "v4l2", Device: "/dev/video0"},
		model.FacingBack:  {Format: "v4l2", Device: "/dev/video2"},
	}
}

func cameraPresent(input CameraInput) bool {
	info, err := os.Stat(input.Device)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeDevice != 0
}
