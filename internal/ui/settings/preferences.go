package settings

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Preference keys (must match the constants used elsewhere in the app).
const (
	PrefConnectTimeout = "connectTimeout"
	PrefTheme          = "appTheme"
)

// DefaultConnectTimeout is the timeout in seconds when none is saved.
const DefaultConnectTimeout = 15.0

var themeLabels = []string{"System Default", "Light", "Dark"}

// PreferencesCallbacks provides hooks for the preferences dialog to apply changes.
type PreferencesCallbacks struct {
	OnThemeChange   func(mode string) // Called with "system", "dark", or "light"
	OnTimeoutChange func(seconds float64)
}

// ConnectTimeout returns the saved connect timeout in seconds.
func ConnectTimeout(a fyne.App) float64 {
	return a.Preferences().FloatWithFallback(PrefConnectTimeout, DefaultConnectTimeout)
}

// ShowPreferencesDialog displays the preferences dialog with General and Appearance tabs.
func ShowPreferencesDialog(a fyne.App, window fyne.Window, callbacks PreferencesCallbacks) {
	prefs := a.Preferences()

	// --- General tab ---

	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(strconv.FormatFloat(ConnectTimeout(a), 'f', -1, 64))
	timeoutEntry.Validator = func(s string) error {
		_, err := parseTimeout(s)
		return err
	}

	generalTab := container.NewTabItem("General", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Connect Timeout (seconds)", timeoutEntry),
		),
		widget.NewLabel("How long Connect and Test wait for the database to answer."),
	))

	// --- Appearance tab ---

	themeSelector := widget.NewSelect(themeLabels, nil)
	themeSelector.SetSelected(themeLabel(prefs.StringWithFallback(PrefTheme, "system")))

	appearanceTab := container.NewTabItem("Appearance", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Theme", themeSelector),
		),
	))

	tabs := container.NewAppTabs(generalTab, appearanceTab)

	dlg := dialog.NewCustomConfirm("Preferences", "Save", "Cancel", tabs, func(save bool) {
		if !save {
			return
		}

		if val, err := parseTimeout(timeoutEntry.Text); err == nil {
			prefs.SetFloat(PrefConnectTimeout, val)
			if callbacks.OnTimeoutChange != nil {
				callbacks.OnTimeoutChange(val)
			}
		}

		mode := themeMode(themeSelector.Selected)
		prefs.SetString(PrefTheme, mode)
		if callbacks.OnThemeChange != nil {
			callbacks.OnThemeChange(mode)
		}
	}, window)

	dlg.Resize(fyne.NewSize(500, 350))
	dlg.Show()
}

type timeoutError string

func (e timeoutError) Error() string { return string(e) }

// parseTimeout accepts a positive number of seconds.
func parseTimeout(s string) (float64, error) {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, timeoutError("enter a number of seconds")
	}
	if val <= 0 {
		return 0, timeoutError("timeout must be greater than zero")
	}
	return val, nil
}

func themeMode(label string) string {
	switch label {
	case "Dark":
		return "dark"
	case "Light":
		return "light"
	default:
		return "system"
	}
}

func themeLabel(mode string) string {
	switch mode {
	case "dark":
		return "Dark"
	case "light":
		return "Light"
	default:
		return "System Default"
	}
}
