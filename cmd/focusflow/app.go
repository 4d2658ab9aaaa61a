package main

import (
	"errors"
	"fmt"
	"log"

	"focusflow/internal/capture"
	"focusflow/internal/core/recording"
	"focusflow/internal/core/session"
	"focusflow/internal/feedback"
	"focusflow/internal/i18n"
	"focusflow/internal/platform"
	"focusflow/internal/storage"
	"focusflow/internal/ui/focus"
	"focusflow/internal/ui/preferences"
	"focusflow/internal/ui/recorder"
	"focusflow/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
)

// appShell holds the wiring between controllers and the desktop surfaces.
// All methods run on the UI goroutine.
type appShell struct {
	app      fyne.App
	window   fyne.Window
	desktop  desktop.App
	store    *storage.Store
	settings preferences.Settings

	timer      *session.Timer
	controller *recording.Controller
	device     *capture.Device
	sounds     *feedback.Switch
	toneSink   *feedback.ToneSink

	focus    *focus.Screen
	recorder *recorder.Screen
	tray     *tray.Manager

	// rebindPending defers a camera change until the recorder is idle.
	rebindPending bool

	idleIcon fyne.Resource
	runIcon  fyne.Resource
	recIcon  fyne.Resource
}

func (shell *appShell) handleTimerEvent(event session.Event) {
	if shell.focus != nil {
		shell.focus.Render(shell.timer.Snapshot())
	}

	switch event.Type {
	case session.EventStarted, session.EventProgress:
		shell.setTrayStatus(fmt.Sprintf(i18n.T("%s remaining"), session.FormatSeconds(event.Remaining)))
	case session.EventCompleted:
		shell.setTrayStatus(i18n.T("Session complete"))
		shell.app.SendNotification(fyne.NewNotification("FocusFlow", i18n.T("Session complete")))
	case session.EventStopped:
		shell.setTrayStatus(i18n.T("idle"))
	}
	if shell.tray != nil {
		shell.tray.SetRunning(event.State == session.StateRunning)
	}
	shell.refreshTrayIcon()
}

func (shell *appShell) handleRecorderEvent(event recording.Event) {
	if shell.recorder != nil {
		shell.recorder.HandleEvent(event)
	}
	if event.Type == recording.EventFinished && event.Asset != nil {
		log.Printf("recorder: saved %s (auto=%v)", event.Asset.Path, event.Auto)
	}
	if shell.rebindPending && shell.recorderIdle() {
		shell.rebindPending = false
		shell.bindCamera()
		if shell.recorder != nil {
			shell.recorder.Render()
		}
	}
	if shell.tray != nil {
		shell.tray.SetRecording(event.State == recording.StateRecording)
	}
	shell.refreshTrayIcon()
}

func (shell *appShell) applySettings(updated preferences.Settings) {
	cameraChanged := updated.VideosDir != shell.settings.VideosDir ||
		updated.FrontCamera != shell.settings.FrontCamera ||
		updated.BackCamera != shell.settings.BackCamera
	languageChanged := updated.Language != shell.settings.Language
	shell.settings = updated

	if shell.store != nil {
		if err := shell.store.Save(updated); err != nil {
			shell.showError(err)
		}
	}

	shell.sounds.SetEnabled(updated.SoundEnabled)
	if shell.toneSink != nil {
		shell.toneSink.SetVolume(updated.Volume)
	}
	shell.controller.SetCaptureConfig(updated.CaptureConfig(shell.controller.Facing()))

	if cameraChanged {
		if shell.recorderIdle() {
			shell.bindCamera()
		} else {
			shell.rebindPending = true
			log.Printf("recorder: camera settings apply after the current recording")
		}
	}
	if languageChanged {
		log.Printf("i18n: language change applies after restart")
	}
	if shell.recorder != nil {
		shell.recorder.Render()
	}
}

// bindCamera opens the capture device for the current settings. Without a
// camera the controller is left unbound.
func (shell *appShell) bindCamera() {
	service := platform.NewService(shell.settings.CameraOverrides())
	outputDir := shell.settings.VideosDir
	if outputDir == "" {
		videosDir, err := service.GetVideosDir()
		if err != nil {
			log.Printf("recorder: %v", err)
			return
		}
		outputDir = videosDir
	}

	device, err := capture.Open(capture.Options{OutputDir: outputDir}, service)
	if err != nil {
		log.Printf("recorder: camera unavailable: %v", err)
		if shell.device != nil {
			if bindErr := shell.controller.BindDevice(nil); bindErr == nil {
				_ = shell.device.Close()
				shell.device = nil
			}
		}
		return
	}

	if err := shell.controller.BindDevice(device); err != nil {
		log.Printf("recorder: %v", err)
		_ = device.Close()
		return
	}
	if shell.device != nil {
		_ = shell.device.Close()
	}
	shell.device = device
	log.Printf("recorder: writing to %s", outputDir)
}

func (shell *appShell) recorderIdle() bool {
	return !shell.controller.Recording() && !shell.controller.Finalizing()
}

// showError puts err in a dialog. Capture failures are already logged by
// the recorder.
func (shell *appShell) showError(err error) {
	var captureErr *recording.CaptureError
	if !errors.As(err, &captureErr) {
		log.Printf("ui: %v", err)
	}
	if shell.window != nil {
		dialog.ShowError(err, shell.window)
	}
}

func (shell *appShell) setTrayStatus(status string) {
	if shell.tray != nil {
		shell.tray.SetStatus(status)
	}
}

func (shell *appShell) refreshTrayIcon() {
	if shell.desktop == nil {
		return
	}
	switch {
	case shell.controller.Recording():
		shell.desktop.SetSystemTrayIcon(shell.recIcon)
	case shell.timer.Running():
		shell.desktop.SetSystemTrayIcon(shell.runIcon)
	default:
		shell.desktop.SetSystemTrayIcon(shell.idleIcon)
	}
}
