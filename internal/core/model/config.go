package model

import "time"

// Facing identifies the physical camera used for capture.
type Facing string

const (
	FacingBack  Facing = "back"
	FacingFront Facing = "front"
)

// Flip returns the opposite camera.
func (facing Facing) Flip() Facing {
	if facing == FacingFront {
		return FacingBack
	}
	return FacingFront
}

// Quality is a capture resolution preset.
type Quality string

const (
	Quality480p  Quality = "480p"
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
	Quality2160p Quality = "2160p"
)

// DefaultMaxRecording is the single-recording duration cap handed to capture devices.
const DefaultMaxRecording = 60 * time.Second

// Height returns the vertical resolution of the preset, or 0 if unknown.
func (quality Quality) Height() int {
	switch quality {
	case Quality480p:
		return 480
	case Quality720p:
		return 720
	case Quality1080p:
		return 1080
	case Quality2160p:
		return 2160
	default:
		return 0
	}
}

// Valid reports whether the preset is known.
func (quality Quality) Valid() bool {
	return quality.Height() > 0
}

// CaptureConfig is passed to a capture device when a recording begins.
type CaptureConfig struct {
	MaxDuration time.Duration
	Quality     Quality
	Facing      Facing
}

// DefaultCaptureConfig returns the 60 second 1080p back-camera config.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		MaxDuration: DefaultMaxRecording,
		Quality:     Quality1080p,
		Facing:      FacingBack,
	}
}

// Asset describes a finished recording.
type Asset struct {
	ID         string
	Path       string
	Facing     Facing
	Quality    Quality
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the recording ran.
func (asset Asset) Duration() time.Duration {
	if asset.FinishedAt.Before(asset.StartedAt) {
		return 0
	}
	return asset.FinishedAt.Sub(asset.StartedAt)
}
