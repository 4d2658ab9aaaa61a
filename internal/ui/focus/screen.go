// Package focus renders the focus session screen on top of a session.Timer.
package focus

import (
	"image/color"

	"focusflow/internal/core/model"
	"focusflow/internal/core/session"
	"focusflow/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	trackColor = color.NRGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0x40}
	textColor  = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Screen is the focus timer view.
type Screen struct {
	timer   *session.Timer
	onError func(error)

	root        fyne.CanvasObject
	dial        *fyne.Container
	layout      *dialLayout
	ring        *canvas.Circle
	timerText   *canvas.Text
	modeText    *canvas.Text
	progress    *widget.ProgressBar
	modeButtons map[model.Mode]*widget.Button
	presets     []*widget.Button
	stopButton  *widget.Button
}

// New builds the screen. onError receives failures from user actions.
func New(timer *session.Timer, onError func(error)) *Screen {
	screen := &Screen{
		timer:       timer,
		onError:     onError,
		layout:      &dialLayout{scale: 1},
		modeButtons: make(map[model.Mode]*widget.Button),
	}

	modeRow := container.NewGridWithColumns(len(model.Modes()))
	for _, info := range model.Modes() {
		mode := info.Mode
		button := widget.NewButtonWithIcon(i18n.T(info.Label), modeIcon(info.Icon), func() {
			screen.selectMode(mode)
		})
		screen.modeButtons[mode] = button
		modeRow.Add(button)
	}

	screen.ring = canvas.NewCircle(color.Transparent)
	screen.ring.StrokeWidth = 8
	screen.ring.StrokeColor = trackColor

	screen.timerText = canvas.NewText("00:00", textColor)
	screen.timerText.TextSize = 48
	screen.timerText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	screen.timerText.Alignment = fyne.TextAlignCenter

	screen.modeText = canvas.NewText("", textColor)
	screen.modeText.TextSize = 14
	screen.modeText.Alignment = fyne.TextAlignCenter

	label := container.NewVBox(screen.timerText, screen.modeText)
	screen.dial = container.New(screen.layout, screen.ring, label)

	screen.progress = widget.NewProgressBar()
	screen.progress.TextFormatter = func() string { return "" }

	presetRow := container.NewGridWithColumns(len(model.Presets()))
	for _, preset := range model.Presets() {
		minutes := preset.Minutes
		button := widget.NewButton(preset.Label, func() {
			screen.start(minutes)
		})
		screen.presets = append(screen.presets, button)
		presetRow.Add(button)
	}

	screen.stopButton = widget.NewButtonWithIcon(i18n.T("Stop"), theme.MediaStopIcon(), screen.stop)

	controls := container.NewVBox(screen.progress, presetRow, screen.stopButton)
	screen.root = container.NewBorder(modeRow, controls, nil, nil, screen.dial)

	screen.Render(timer.Snapshot())
	return screen
}

// Content returns the root canvas object.
func (screen *Screen) Content() fyne.CanvasObject {
	return screen.root
}

// Render updates every widget from a timer snapshot.
func (screen *Screen) Render(snapshot session.Snapshot) {
	info, _ := snapshot.Mode.Info()

	screen.timerText.Text = snapshot.Display
	screen.timerText.Refresh()
	screen.modeText.Text = i18n.T(info.Label)
	screen.modeText.Refresh()

	if snapshot.State == session.StateRunning {
		screen.ring.StrokeColor = info.Accent
		screen.stopButton.Enable()
	} else {
		screen.ring.StrokeColor = trackColor
		screen.stopButton.Disable()
	}
	screen.ring.Refresh()
	screen.progress.SetValue(snapshot.Progress)

	for mode, button := range screen.modeButtons {
		if mode == snapshot.Mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}
}

// SetScale resizes the dial. It must run on the UI goroutine.
func (screen *Screen) SetScale(scale float32) {
	screen.layout.scale = scale
	screen.dial.Refresh()
}

func (screen *Screen) selectMode(mode model.Mode) {
	if err := screen.timer.SelectMode(mode); err != nil {
		screen.report(err)
	}
	screen.Render(screen.timer.Snapshot())
}

func (screen *Screen) start(minutes int) {
	if err := screen.timer.Start(minutes); err != nil {
		screen.report(err)
	}
	screen.Render(screen.timer.Snapshot())
}

func (screen *Screen) stop() {
	screen.timer.Stop()
	screen.Render(screen.timer.Snapshot())
}

func (screen *Screen) report(err error) {
	if screen.onError != nil {
		screen.onError(err)
	}
}

func modeIcon(name string) fyne.Resource {
	switch name {
	case "brain":
		return theme.ComputerIcon()
	case "book-open-variant":
		return theme.DocumentIcon()
	case "palette":
		return theme.ColorPaletteIcon()
	default:
		return theme.InfoIcon()
	}
}
