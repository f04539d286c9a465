package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/shhac/minisql/internal/command"
)

// commandMenuItem turns a command into a menu item that runs it through run.
func commandMenuItem(c command.Command, run func(command.Command)) *fyne.MenuItem {
	item := fyne.NewMenuItem(c.Label(), func() { run(c) })
	item.Icon = c.Icon()
	return item
}

// buildMainMenu creates the File and Help menus. Fyne appends Quit to the
// first menu on its own.
func (w *MainWindow) buildMainMenu() *fyne.MainMenu {
	newItem := fyne.NewMenuItem("New Connection...", w.connectionsPanel.TriggerNew)
	newItem.Icon = theme.ContentAddIcon()

	editItem := fyne.NewMenuItem("Edit Connection...", w.connectionsPanel.TriggerEdit)
	editItem.Icon = theme.DocumentCreateIcon()

	prefsItem := fyne.NewMenuItem("Preferences...", w.showPreferences)
	prefsItem.Icon = theme.SettingsIcon()

	if err := w.app.LoadError(); err != nil {
		newItem.Disabled = true
		editItem.Disabled = true
	}

	fileMenu := fyne.NewMenu("File",
		newItem,
		editItem,
		fyne.NewMenuItemSeparator(),
		prefsItem,
	)

	helpItems := make([]*fyne.MenuItem, 0, 4)
	for _, c := range w.app.HelpCommands() {
		helpItems = append(helpItems, commandMenuItem(c, w.runCommand))
	}
	helpItems = append(helpItems,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Keyboard Shortcuts", func() { ShowShortcutDialog(w.window) }),
		fyne.NewMenuItem("About", func() { ShowAboutDialog(w.window, w.app.LogPath()) }),
	)
	helpMenu := fyne.NewMenu("Help", helpItems...)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}
