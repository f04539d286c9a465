package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/shhac/minisql/internal/ui.Version=1.2.3"
var Version = "dev"

// ShowAboutDialog displays information about Mini SQL Query.
func ShowAboutDialog(parent fyne.Window, logPath string) {
	content := container.NewVBox(
		widget.NewLabelWithStyle("Mini SQL Query", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("A small database query tool"),
		widget.NewLabel("Version "+Version),
		widget.NewSeparator(),
		widget.NewLabel("Built with Fyne and Go"),
	)
	if logPath != "" {
		lbl := widget.NewLabel("Log: " + logPath)
		lbl.Wrapping = fyne.TextWrapBreak
		content.Add(lbl)
	}
	dialog.ShowCustom("About Mini SQL Query", "Close", content, parent)
}

// shortcutList is shown by the shortcut reference dialog.
var shortcutList = []struct{ action, key string }{
	{"New Connection", "⌘ N"},
	{"Edit Connection", "⌘ E"},
	{"Connect / Disconnect", "⌘ ⇧ C"},
	{"Preferences", "⌘ ,"},
}

// ShowShortcutDialog displays a reference of all keyboard shortcuts.
func ShowShortcutDialog(parent fyne.Window) {
	grid := container.NewGridWithColumns(2)
	for _, s := range shortcutList {
		grid.Add(widget.NewLabel(s.action))
		grid.Add(widget.NewLabelWithStyle(s.key, fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}))
	}

	dialog.ShowCustom("Keyboard Shortcuts", "Close", container.NewVScroll(grid), parent)
}
