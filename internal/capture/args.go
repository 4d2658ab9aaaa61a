package capture

import (
	"fmt"
	"strconv"

	"focusflow/internal/core/model"
	"focusflow/internal/platform"
)

// BuildArgs returns the ffmpeg arguments for one recording.
func BuildArgs(input platform.CameraInput, config model.CaptureConfig, output string) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-f", input.Format}
	if input.Format == "avfoundation" {
		args = append(args, "-framerate", "30")
	}
	args = append(args, "-i", input.Device)

	if config.MaxDuration > 0 {
		args = append(args, "-t", strconv.FormatFloat(config.MaxDuration.Seconds(), 'f', -1, 64))
	}
	if height := config.Quality.Height(); height > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=-2:%d", height))
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
	)
	if input.Format == "avfoundation" {
		args = append(args, "-c:a", "aac")
	}
	return append(args, "-movflags", "+faststart", output)
}
