package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Volume bounds are effects.Volume exponents (base 2).
const (
	minVolume = -4.0
	maxVolume = 0.0
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)

	mode         *widget.Select
	sound        *widget.Check
	volume       *widget.Slider
	maxRecording *widget.Entry
	quality      *widget.Select
	videosDir    *widget.Entry
	frontCamera  *widget.Entry
	backCamera   *widget.Entry
	language     *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("FocusFlow " + i18n.T("Preferences"))

	mode := widget.NewSelect(modeLabels(), nil)
	sound := widget.NewCheck(i18n.T("Feedback sounds"), nil)

	volume := widget.NewSlider(minVolume, maxVolume)
	volume.Step = 0.25

	maxRecording := widget.NewEntry()
	quality := widget.NewSelect(qualityOptions(), nil)
	videosDir := widget.NewEntry()
	videosDir.SetPlaceHolder("~/Videos")
	frontCamera := widget.NewEntry()
	frontCamera.SetPlaceHolder("default")
	backCamera := widget.NewEntry()
	backCamera.SetPlaceHolder("default")
	language := widget.NewSelect(append([]string{LanguageSystem}, i18n.Supported()...), nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Focus"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel(i18n.T("Default mode")), mode),
		sound,
		widget.NewLabel(i18n.T("Feedback volume")),
		volume,
		widget.NewLabelWithStyle(i18n.T("Record"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel(i18n.T("Max recording")), maxRecording, widget.NewLabel(i18n.T("sec"))),
		container.NewHBox(widget.NewLabel(i18n.T("Quality")), quality),
		widget.NewLabel(i18n.T("Videos folder")),
		videosDir,
		widget.NewLabel(i18n.T("Front camera device")),
		frontCamera,
		widget.NewLabel(i18n.T("Back camera device")),
		backCamera,
		container.NewHBox(widget.NewLabel(i18n.T("Language")), language),
	)

	saveButton := widget.NewButton(i18n.T("Save"), nil)
	cancelButton := widget.NewButton(i18n.T("Cancel"), nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form))
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 560))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		mode:         mode,
		sound:        sound,
		volume:       volume,
		maxRecording: maxRecording,
		quality:      quality,
		videosDir:    videosDir,
		frontCamera:  frontCamera,
		backCamera:   backCamera,
		language:     language,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = prefs.handleCancel

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	if info, ok := settings.DefaultMode.Info(); ok {
		prefs.mode.SetSelected(info.Label)
	}
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.volume.SetValue(clampVolume(settings.Volume))
	prefs.maxRecording.SetText(fmt.Sprintf("%d", int(settings.MaxRecording.Seconds())))
	prefs.quality.SetSelected(string(settings.Quality))
	prefs.videosDir.SetText(settings.VideosDir)
	prefs.frontCamera.SetText(settings.FrontCamera)
	prefs.backCamera.SetText(settings.BackCamera)
	if settings.Language == "" {
		prefs.language.SetSelected(LanguageSystem)
	} else {
		prefs.language.SetSelected(settings.Language)
	}
}

// Settings returns the settings last applied or saved.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	for _, info := range model.Modes() {
		if info.Label == prefs.mode.Selected {
			settings.DefaultMode = info.Mode
		}
	}
	settings.SoundEnabled = prefs.sound.Checked
	settings.Volume = clampVolume(prefs.volume.Value)

	if seconds, ok := parsePositiveInt(prefs.maxRecording.Text); ok {
		settings.MaxRecording = time.Duration(seconds) * time.Second
	}
	if quality := model.Quality(prefs.quality.Selected); quality.Valid() {
		settings.Quality = quality
	}

	settings.VideosDir = strings.TrimSpace(prefs.videosDir.Text)
	settings.FrontCamera = strings.TrimSpace(prefs.frontCamera.Text)
	settings.BackCamera = strings.TrimSpace(prefs.backCamera.Text)
	if prefs.language.Selected != "" {
		settings.Language = prefs.language.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// handleCancel drops unsaved edits.
func (prefs *Window) handleCancel() {
	prefs.UpdateSettings(prefs.settings)
	prefs.window.Hide()
}

func modeLabels() []string {
	modes := model.Modes()
	labels := make([]string, 0, len(modes))
	for _, info := range modes {
		labels = append(labels, info.Label)
	}
	return labels
}

func qualityOptions() []string {
	return []string{
		string(model.Quality480p),
		string(model.Quality720p),
		string(model.Quality1080p),
		string(model.Quality2160p),
	}
}

func clampVolume(volume float64) float64 {
	if volume < minVolume {
		return minVolume
	}
	if volume > maxVolume {
		return maxVolume
	}
	return volume
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
