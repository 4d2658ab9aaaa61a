package model

import (
	"image/color"
	"time"
)

// Mode identifies a focus mode.
type Mode string

const (
	ModeDeepWork     Mode = "deep_work"
	ModeLightStudy   Mode = "light_study"
	ModeCreativeFlow Mode = "creative_flow"
)

// ModeInfo carries the presentation attributes of a focus mode.
type ModeInfo struct {
	Mode   Mode
	Label  string
	Icon   string
	Accent color.NRGBA
}

var modes = []ModeInfo{
	{Mode: ModeDeepWork, Label: "Deep Work", Icon: "brain", Accent: color.NRGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}},
	{Mode: ModeLightStudy, Label: "Light Study", Icon: "book-open-variant", Accent: color.NRGBA{R: 0x7F, G: 0xB0, B: 0x69, A: 0xFF}},
	{Mode: ModeCreativeFlow, Label: "Creative Flow", Icon: "palette", Accent: color.NRGBA{R: 0xE6, G: 0x7E, B: 0x22, A: 0xFF}},
}

// Modes returns all focus modes in display order.
func Modes() []ModeInfo {
	return append([]ModeInfo(nil), modes...)
}

// Info returns the attributes of a mode.
func (mode Mode) Info() (ModeInfo, bool) {
	for _, info := range modes {
		if info.Mode == mode {
			return info, true
		}
	}
	return ModeInfo{}, false
}

// Valid reports whether mode is one of the known focus modes.
func (mode Mode) Valid() bool {
	_, ok := mode.Info()
	return ok
}

// Preset is a fixed countdown duration offered on the focus screen.
type Preset struct {
	Label   string
	Minutes int
}

// Duration returns the preset length.
func (preset Preset) Duration() time.Duration {
	return time.Duration(preset.Minutes) * time.Minute
}

// Presets returns the 25, 45 and 60 minute presets.
func Presets() []Preset {
	return []Preset{
		{Label: "25m", Minutes: 25},
		{Label: "45m", Minutes: 45},
		{Label: "60m", Minutes: 60},
	}
}
