package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnNext        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	title      string
	statusItem *fyne.MenuItem
	nextItem   *fyne.MenuItem
	items      []*fyne.MenuItem
	callbacks  Callbacks
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
		status:    "starting...",
	}

	manager.statusItem = fyne.NewMenuItem(manager.status, nil)
	manager.statusItem.Disabled = true
	manager.nextItem = fyne.NewMenuItem("Start work", invoke(&manager.callbacks.OnNext))

	manager.items = []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", invoke(&manager.callbacks.OnShow)),
		manager.nextItem,
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	}
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line, e.g. "Work · round 2 · 12:34".
func (manager *Manager) SetStatus(status string) {
	if status == manager.status {
		return
	}
	manager.status = status
	manager.statusItem.Label = status
	manager.refreshMenu()
}

// SetNextLabel names what the Next item will start.
func (manager *Manager) SetNextLabel(label string) {
	if label == manager.nextItem.Label {
		return
	}
	manager.nextItem.Label = label
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.status
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title, manager.items...))
	}
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
