//go:build darwin

package platform

import (
	"path/filepath"

	"focusflow/internal/core/model"
)

const videosFolder = "Movies"

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

// avfoundation devices are addressed as "<video index>:<audio index>".
func defaultCameraInputs() map[model.Facing]CameraInput {
	return map[model.Facing]CameraInput{
		model.FacingFront: {Format: "avfoundation", Device: "0:0"},
		model.FacingBack:  {Format: "avfoundation", Device: "1:0"},
	}
}

func cameraPresent(input CameraInput) bool {
	return input.Device != ""
}
