// Package recorder renders the camera recording screen on top of a
// recording.Controller.
package recorder

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/core/recording"
	"focusflow/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	previewColor = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF}
	idleDot      = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	recordingDot = color.NRGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF}
)

// Screen is the recorder view.
type Screen struct {
	controller *recording.Controller
	onRetry    func()
	onError    func(error)

	root         fyne.CanvasObject
	preview      *canvas.Rectangle
	statusText   *canvas.Text
	facingText   *canvas.Text
	savedLabel   *widget.Label
	dot          *canvas.Circle
	dotLayout    *pulseLayout
	dotHolder    *fyne.Container
	recordButton *widget.Button
	flipButton   *widget.Button
	retryButton  *widget.Button
}

// New builds the screen. onRetry probes for a camera again while none is
// bound. onError receives failures from user actions and capture failures
// reported through HandleEvent.
func New(controller *recording.Controller, onRetry func(), onError func(error)) *Screen {
	screen := &Screen{
		controller: controller,
		onRetry:    onRetry,
		onError:    onError,
		dotLayout:  &pulseLayout{scale: 1},
	}

	screen.preview = canvas.NewRectangle(previewColor)
	screen.preview.CornerRadius = 12

	screen.statusText = canvas.NewText("", color.White)
	screen.statusText.TextSize = 18
	screen.statusText.TextStyle = fyne.TextStyle{Bold: true}
	screen.statusText.Alignment = fyne.TextAlignCenter

	screen.facingText = canvas.NewText("", color.White)
	screen.facingText.TextSize = 12
	screen.facingText.Alignment = fyne.TextAlignCenter

	screen.retryButton = widget.NewButtonWithIcon(i18n.T("Retry camera"), theme.ViewRefreshIcon(), screen.retry)
	overlay := container.NewCenter(container.NewVBox(screen.statusText, screen.facingText, screen.retryButton))
	previewArea := container.NewStack(screen.preview, overlay)

	screen.dot = canvas.NewCircle(idleDot)
	screen.dotHolder = container.New(screen.dotLayout, screen.dot)

	screen.recordButton = widget.NewButtonWithIcon(i18n.T("Record"), theme.MediaRecordIcon(), screen.toggleRecording)
	screen.recordButton.Importance = widget.DangerImportance
	screen.flipButton = widget.NewButtonWithIcon(i18n.T("Switch camera"), theme.ViewRefreshIcon(), screen.flip)

	screen.savedLabel = widget.NewLabel("")
	screen.savedLabel.Truncation = fyne.TextTruncateEllipsis

	controls := container.NewVBox(
		container.NewGridWithColumns(3, screen.dotHolder, screen.recordButton, screen.flipButton),
		screen.savedLabel,
	)
	screen.root = container.NewBorder(nil, controls, nil, nil, previewArea)

	screen.Render()
	return screen
}

// Content returns the root canvas object.
func (screen *Screen) Content() fyne.CanvasObject {
	return screen.root
}

// Render updates widgets from the controller state.
func (screen *Screen) Render() {
	screen.retryButton.Hide()
	switch {
	case !screen.controller.Bound():
		screen.statusText.Text = i18n.T("Camera unavailable")
		screen.recordButton.Disable()
		if screen.onRetry != nil {
			screen.retryButton.Show()
		}
	case screen.controller.Recording():
		screen.statusText.Text = i18n.T("Recording")
		screen.recordButton.Enable()
	case screen.controller.Finalizing():
		screen.statusText.Text = i18n.T("Saving")
		screen.recordButton.Disable()
	default:
		screen.statusText.Text = i18n.T("Ready")
		screen.recordButton.Enable()
	}
	screen.statusText.Refresh()

	screen.facingText.Text = facingLabel(screen.controller.Facing())
	screen.facingText.Refresh()

	if screen.controller.Recording() {
		screen.recordButton.SetText(i18n.T("Stop"))
		screen.recordButton.SetIcon(theme.MediaStopIcon())
		screen.flipButton.Disable()
		screen.dot.FillColor = recordingDot
	} else {
		screen.recordButton.SetText(i18n.T("Record"))
		screen.recordButton.SetIcon(theme.MediaRecordIcon())
		screen.flipButton.Enable()
		screen.dot.FillColor = idleDot
	}
	screen.dot.Refresh()
}

// HandleEvent reacts to controller events. It must run on the UI goroutine.
func (screen *Screen) HandleEvent(event recording.Event) {
	switch event.Type {
	case recording.EventFinished:
		if event.Asset != nil {
			screen.savedLabel.SetText(fmt.Sprintf("%s: %s (%s)", i18n.T("Saved"),
				filepath.Base(event.Asset.Path), event.Asset.Duration().Round(100*time.Millisecond)))
		}
	case recording.EventCaptureFailed:
		screen.report(event.Err)
	}
	screen.Render()
}

// SetScale resizes the recording indicator. It must run on the UI goroutine.
func (screen *Screen) SetScale(scale float32) {
	screen.dotLayout.scale = scale
	screen.dotHolder.Refresh()
}

func (screen *Screen) toggleRecording() {
	if screen.controller.Recording() {
		screen.controller.StopRecording()
	} else if err := screen.controller.StartRecording(); err != nil {
		screen.report(err)
	}
	screen.Render()
}

func (screen *Screen) retry() {
	if screen.onRetry != nil {
		screen.onRetry()
	}
	screen.Render()
}

func (screen *Screen) flip() {
	if err := screen.controller.ToggleFacing(); err != nil {
		screen.report(err)
	}
	screen.Render()
}

func (screen *Screen) report(err error) {
	if err != nil && screen.onError != nil {
		screen.onError(err)
	}
}

func facingLabel(facing model.Facing) string {
	if facing == model.FacingFront {
		return i18n.T("front camera")
	}
	return i18n.T("back camera")
}

// pulseLayout centers a single dot sized by scale.
type pulseLayout struct {
	scale float32
}

const dotSize = float32(18)

func (layout *pulseLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	side := dotSize * layout.scale
	for _, object := range objects {
		object.Resize(fyne.NewSize(side, side))
		object.Move(fyne.NewPos((size.Width-side)/2, (size.Height-side)/2))
	}
}

func (layout *pulseLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(dotSize*1.4, dotSize*1.4)
}
