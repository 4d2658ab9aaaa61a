package main

import (
	"log"
	"os"
	"time"

	"focusflow/internal/core/clock"
	"focusflow/internal/core/model"
	"focusflow/internal/core/recording"
	"focusflow/internal/core/session"
	"focusflow/internal/feedback"
	"focusflow/internal/i18n"
	"focusflow/internal/platform"
	"focusflow/internal/storage"
	"focusflow/internal/ui/animation"
	"focusflow/internal/ui/focus"
	"focusflow/internal/ui/preferences"
	"focusflow/internal/ui/recorder"
	"focusflow/internal/ui/tray"
	"focusflow/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const (
	appName = "FocusFlow"
	appID   = "com.focusflow.app"
)

func main() {
	var mainWindow fyne.Window
	guard, err := platform.AcquireSingleInstance(appName, func() {
		fyne.Do(func() {
			if mainWindow != nil {
				mainWindow.Show()
				mainWindow.RequestFocus()
			}
		})
	})
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings := preferences.DefaultSettings()
	store, err := storage.NewStore(platform.NewService(nil), appName)
	if err != nil {
		log.Printf("settings: %v", err)
	} else if loaded, loadErr := store.Load(); loadErr != nil {
		log.Printf("settings: %v", loadErr)
	} else {
		settings = loaded
	}
	applyLanguage(settings.Language)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.LogoIdle))
	mainWindow = fyneApp.NewWindow(appName)

	sounds := feedback.NewSwitch(feedback.Nop{}, settings.SoundEnabled)
	toneSink, err := feedback.NewToneSink(settings.Volume)
	if err != nil {
		log.Printf("feedback: audio cues disabled: %v", err)
	} else {
		sounds = feedback.NewSwitch(toneSink, settings.SoundEnabled)
	}

	var focusScreen *focus.Screen
	var recorderScreen *recorder.Screen

	timerEngine := animation.New(animation.TimerConfig(), func(scale float32) {
		fyne.Do(func() {
			if focusScreen != nil {
				focusScreen.SetScale(scale)
			}
		})
	})
	recordEngine := animation.New(animation.RecordConfig(), func(scale float32) {
		fyne.Do(func() {
			if recorderScreen != nil {
				recorderScreen.SetScale(scale)
			}
		})
	})

	scheduler := clock.NewTickerScheduler(fyne.Do)
	timer := session.New(session.Config{
		TickInterval: time.Second,
		Mode:         settings.DefaultMode,
	}, scheduler, feedback.Multi{feedback.LogSink{Prefix: "focus"}, sounds}, timerEngine)

	controller := recording.New(recording.Config{
		Capture: settings.CaptureConfig(model.FacingBack),
	}, fyne.Do, feedback.Multi{feedback.LogSink{Prefix: "recorder"}, sounds}, recordEngine)

	shell := &appShell{
		app:        fyneApp,
		window:     mainWindow,
		store:      store,
		settings:   settings,
		timer:      timer,
		controller: controller,
		sounds:     sounds,
		toneSink:   toneSink,
		idleIcon:   resources.MustLogo(resources.LogoIdle),
		runIcon:    resources.MustLogo(resources.LogoRunning),
		recIcon:    resources.MustLogo(resources.LogoRecording),
	}
	shell.bindCamera()

	focusScreen = focus.New(timer, shell.showError)
	recorderScreen = recorder.New(controller, shell.bindCamera, shell.showError)
	shell.focus = focusScreen
	shell.recorder = recorderScreen

	focusTab := container.NewTabItemWithIcon(i18n.T("Focus"), theme.HistoryIcon(), focusScreen.Content())
	recordTab := container.NewTabItemWithIcon(i18n.T("Record"), theme.MediaVideoIcon(), recorderScreen.Content())
	tabs := container.NewAppTabs(focusTab, recordTab)
	tabs.SetTabLocation(container.TabLocationBottom)
	tabs.OnSelected = func(item *container.TabItem) {
		if item != recordTab && controller.Recording() {
			controller.StopRecording()
			recorderScreen.Render()
		}
	}

	prefsWindow := preferences.New(fyneApp, settings, shell.applySettings)
	mainWindow.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu(appName,
		fyne.NewMenuItem(i18n.T("Preferences"), prefsWindow.Show),
	)))
	mainWindow.SetContent(tabs)
	mainWindow.Resize(fyne.NewSize(420, 680))

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		shell.desktop = desktopApp
		shell.tray = tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				mainWindow.Show()
				mainWindow.RequestFocus()
			},
			OnStartSession: func(minutes int) {
				if err := timer.Start(minutes); err != nil {
					shell.showError(err)
				}
				focusScreen.Render(timer.Snapshot())
			},
			OnStopSession: func() {
				timer.Stop()
				focusScreen.Render(timer.Snapshot())
			},
			OnStopRecording: func() {
				controller.StopRecording()
				recorderScreen.Render()
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(shell.idleIcon)
		mainWindow.SetCloseIntercept(func() {
			if controller.Recording() {
				controller.StopRecording()
				recorderScreen.Render()
			}
			mainWindow.Hide()
		})
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	timerEvents := timer.Subscribe(16)
	go func() {
		for event := range timerEvents {
			fyne.Do(func() {
				shell.handleTimerEvent(event)
			})
		}
	}()

	recorderEvents := controller.Subscribe(16)
	go func() {
		for event := range recorderEvents {
			fyne.Do(func() {
				shell.handleRecorderEvent(event)
			})
		}
	}()

	mainWindow.Show()
	fyneApp.Run()

	timerEngine.Stop()
	recordEngine.Stop()
	timer.Close()
	if err := controller.Close(); err != nil {
		log.Printf("recorder: close: %v", err)
	}
	timerEngine.Wait()
	recordEngine.Wait()
}

func applyLanguage(language string) {
	if language == "" || language == preferences.LanguageSystem || os.Getenv(i18n.LangEnv) != "" {
		log.Printf("i18n: using %s", i18n.Detect())
		return
	}
	log.Printf("i18n: using %s", i18n.SetLang(language))
}
