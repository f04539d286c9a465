package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/shhac/minisql/internal/ui/settings"
)

// forcedVariant wraps a theme to force a specific variant (light/dark)
type forcedVariant struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

// Color returns the color for the forced variant, ignoring the passed variant
func (f *forcedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return f.Theme.Color(name, f.variant)
}

// themeFor maps a mode ("dark", "light", anything else for system) to a theme.
func themeFor(mode string) fyne.Theme {
	switch mode {
	case "dark":
		return &forcedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantDark}
	case "light":
		return &forcedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantLight}
	default:
		return theme.DefaultTheme()
	}
}

// ApplyTheme sets the application theme based on the mode.
func ApplyTheme(a fyne.App, mode string) {
	a.Settings().SetTheme(themeFor(mode))
}

// LoadThemePreference loads and applies the saved theme preference
func LoadThemePreference(a fyne.App) {
	ApplyTheme(a, a.Preferences().StringWithFallback(settings.PrefTheme, "system"))
}
