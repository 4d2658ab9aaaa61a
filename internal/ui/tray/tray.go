package tray

import (
	"fmt"

	"focusflow/internal/core/model"
	"focusflow/internal/i18n"

	"fyne.io/fyne/v2"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow          func()
	OnStartSession  func(minutes int)
	OnStopSession   func()
	OnStopRecording func()
	OnPreferences   func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	host        MenuHost
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	stopItem    *fyne.MenuItem
	recordItem  *fyne.MenuItem
	statusLabel string
	running     bool
	recording   bool
	menu        *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:        host,
		callbacks:   callbacks,
		statusLabel: i18n.T("idle"),
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	presets := make([]*fyne.MenuItem, 0, len(model.Presets()))
	for _, preset := range model.Presets() {
		minutes := preset.Minutes
		presets = append(presets, fyne.NewMenuItem(preset.Label, func() {
			if manager.callbacks.OnStartSession != nil {
				manager.callbacks.OnStartSession(minutes)
			}
		}))
	}
	manager.startItem = fyne.NewMenuItem(i18n.T("Start session"), nil)
	manager.startItem.ChildMenu = fyne.NewMenu("", presets...)

	manager.stopItem = fyne.NewMenuItem(i18n.T("Stop session"), func() {
		if manager.callbacks.OnStopSession != nil {
			manager.callbacks.OnStopSession()
		}
	})
	manager.recordItem = fyne.NewMenuItem(i18n.T("Stop recording"), func() {
		if manager.callbacks.OnStopRecording != nil {
			manager.callbacks.OnStopRecording()
		}
	})

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning toggles session-related menu items.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	manager.refreshMenu()
}

// SetRecording toggles recording-related menu items.
func (manager *Manager) SetRecording(recording bool) {
	manager.recording = recording
	manager.refreshStatus()
}

// Menu returns the menu last pushed to the tray.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.recording {
		status = fmt.Sprintf("%s (%s)", status, i18n.T("Recording"))
	}
	manager.statusItem.Label = fmt.Sprintf(i18n.T("Status: %s"), status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	manager.stopItem.Disabled = !manager.running
	manager.recordItem.Disabled = !manager.recording

	manager.menu = fyne.NewMenu("FocusFlow",
		manager.statusItem,
		fyne.NewMenuItem(i18n.T("Show FocusFlow"), func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.stopItem,
		manager.recordItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Preferences"), func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem(i18n.T("Quit"), func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}
