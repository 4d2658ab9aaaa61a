package preferences

import (
	"time"

	"focusflow/internal/core/model"
)

// LanguageSystem follows the system locale.
const LanguageSystem = "system"

// Settings defines editable user preferences.
type Settings struct {
	DefaultMode  model.Mode
	SoundEnabled bool
	Volume       float64

	MaxRecording time.Duration
	Quality      model.Quality
	VideosDir    string
	FrontCamera  string
	BackCamera   string

	Language string
}

// DefaultSettings returns default settings for FocusFlow.
func DefaultSettings() Settings {
	return Settings{
		DefaultMode:  model.ModeDeepWork,
		SoundEnabled: true,
		Volume:       -1,
		MaxRecording: model.DefaultMaxRecording,
		Quality:      model.Quality1080p,
		Language:     LanguageSystem,
	}
}

// CaptureConfig converts settings to a capture configuration for a camera.
func (settings Settings) CaptureConfig(facing model.Facing) model.CaptureConfig {
	config := model.DefaultCaptureConfig()
	if settings.MaxRecording > 0 {
		config.MaxDuration = settings.MaxRecording
	}
	if settings.Quality.Valid() {
		config.Quality = settings.Quality
	}
	config.Facing = facing
	return config
}

// CameraOverrides returns the user-configured capture device names.
func (settings Settings) CameraOverrides() map[model.Facing]string {
	return map[model.Facing]string{
		model.FacingFront: settings.FrontCamera,
		model.FacingBack:  settings.BackCamera,
	}
}
