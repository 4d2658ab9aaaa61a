//go:build windows

package platform

import (
	"path/filepath"

	"focusflow/internal/core/model"
)

const videosFolder = "Videos"

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func defaultCameraInputs() map[model.Facing]CameraInput {
	return map[model.Facing]CameraInput{
		model.FacingFront: {Format: "dshow", Device: "video=Integrated Camera"},
		model.FacingBack:  {Format: "dshow", Device: "video=Rear Camera"},
	}
}

func cameraPresent(input CameraInput) bool {
	return input.Device != ""
}
