package ui

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/minisql/internal/command"
	"github.com/shhac/minisql/internal/domain"
	apperrors "github.com/shhac/minisql/internal/errors"
	"github.com/shhac/minisql/internal/logging"
	"github.com/shhac/minisql/internal/model"
)

type nopOpener struct{}

func (nopOpener) OpenURL(*url.URL) error { return nil }

type fakeApp struct {
	state     *model.ApplicationState
	connState *model.ConnectionUIState
	list      *domain.ConnectionDefinitionList
	loadErr   error
	ran       []string
	timeout   float64
}

func newFakeApp(loadErr error) *fakeApp {
	f := &fakeApp{
		state:     model.NewApplicationState(),
		connState: model.NewConnectionUIState(),
		list:      domain.NewConnectionDefinitionList(),
		loadErr:   loadErr,
	}
	_ = f.state.Loaded.Set(loadErr == nil)
	return f
}

func (f *fakeApp) State() *model.ApplicationState { return f.state }
func (f *fakeApp) Definition(name string) (domain.ConnectionDefinition, bool) {
	return f.list.FindByName(name)
}
func (f *fakeApp) DefaultName() string                                               { return f.list.DefaultName }
func (f *fakeApp) ProviderNames() []string                                           { return nil }
func (f *fakeApp) AddDefinition(domain.ConnectionDefinition) error                   { return nil }
func (f *fakeApp) UpdateDefinition(_, _ domain.ConnectionDefinition) error           { return nil }
func (f *fakeApp) RemoveDefinition(domain.ConnectionDefinition) error                { return nil }
func (f *fakeApp) SetDefault(string) error                                           { return nil }
func (f *fakeApp) TestDefinition(context.Context, domain.ConnectionDefinition) error { return nil }
func (f *fakeApp) ConnectionState() *model.ConnectionUIState                         { return f.connState }
func (f *fakeApp) Logger() *slog.Logger                                              { return logging.NewNopLogger() }
func (f *fakeApp) LoadError() error                                                  { return f.loadErr }
func (f *fakeApp) LogPath() string                                                   { return "" }
func (f *fakeApp) SetConnectTimeout(seconds float64)                                 { f.timeout = seconds }
func (f *fakeApp) Connect(context.Context, string) error                             { return nil }
func (f *fakeApp) Disconnect() error                                                 { return nil }

func (f *fakeApp) HelpCommands() []command.Command {
	return []command.Command{
		command.NewEmailAuthorCommand(nopOpener{}),
		command.NewWebsiteCommand(nopOpener{}),
	}
}

func (f *fakeApp) RunCommand(c command.Command) error {
	f.ran = append(f.ran, c.Label())
	return c.Execute()
}

func menuLabels(m *fyne.Menu) []string {
	labels := make([]string, 0, len(m.Items))
	for _, item := range m.Items {
		labels = append(labels, item.Label)
	}
	return labels
}

func TestMainWindow_Menu(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	mw := NewMainWindow(fyneApp, newFakeApp(nil))
	menu := mw.buildMainMenu()
	require.Len(t, menu.Items, 2)

	assert.Equal(t, "File", menu.Items[0].Label)
	assert.Equal(t, []string{"New Connection...", "Edit Connection...", "", "Preferences..."}, menuLabels(menu.Items[0]))
	assert.False(t, menu.Items[0].Items[0].Disabled)

	assert.Equal(t, "Help", menu.Items[1].Label)
	assert.Equal(t,
		[]string{"Email the Author", "Visit the Website", "", "Keyboard Shortcuts", "About"},
		menuLabels(menu.Items[1]))
	assert.NotNil(t, menu.Items[1].Items[0].Icon)
}

func TestMainWindow_HelpMenuRunsCommand(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	app := newFakeApp(nil)
	mw := NewMainWindow(fyneApp, app)

	mw.buildMainMenu().Items[1].Items[0].Action()
	assert.Equal(t, []string{"Email the Author"}, app.ran)
}

func TestMainWindow_LoadErrorDisablesEditing(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	loadErr := &apperrors.DeserializationError{Source: "connection definitions", Err: errors.New("bad")}
	mw := NewMainWindow(fyneApp, newFakeApp(loadErr))

	menu := mw.buildMainMenu()
	assert.True(t, menu.Items[0].Items[0].Disabled)
	assert.True(t, menu.Items[0].Items[1].Disabled)
	assert.NotEmpty(t, mw.Window().Canvas().Overlays().List(), "load error dialog is shown")
}

func TestMainWindow_AppliesSavedTimeout(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()
	fyneApp.Preferences().SetFloat("connectTimeout", 7)

	app := newFakeApp(nil)
	NewMainWindow(fyneApp, app)
	assert.Equal(t, 7.0, app.timeout)
}

func TestCommandMenuItem(t *testing.T) {
	var got command.Command
	c := command.NewFunc("Do It", theme.InfoIcon(), nil)

	item := commandMenuItem(c, func(c command.Command) { got = c })
	assert.Equal(t, "Do It", item.Label)
	assert.Equal(t, theme.InfoIcon(), item.Icon)

	item.Action()
	assert.Same(t, c, got)
}

func TestThemeFor(t *testing.T) {
	dark, ok := themeFor("dark").(*forcedVariant)
	require.True(t, ok)
	assert.Equal(t, theme.VariantDark, dark.variant)

	light, ok := themeFor("light").(*forcedVariant)
	require.True(t, ok)
	assert.Equal(t, theme.VariantLight, light.variant)

	_, forced := themeFor("system").(*forcedVariant)
	assert.False(t, forced)
}

func TestMainWindow_ConnectFailureEditOpensDefinition(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	app := newFakeApp(nil)
	app.list.AddDefinition(domain.ConnectionDefinition{Name: "prod", ProviderName: "Npgsql", ConnectionString: "host=db"})
	app.state.SyncDefinitions(app.list)
	mw := NewMainWindow(fyneApp, app)

	actions := mw.connectFailureActions("prod")
	assert.Contains(t, actions, "Retry")
	assert.Contains(t, actions, "Settings")
	require.Contains(t, actions, "Edit Connection")

	actions["Edit Connection"]()

	selected, _ := app.state.SelectedName.Get()
	assert.Equal(t, "prod", selected)
	assert.Len(t, mw.Window().Canvas().Overlays().List(), 1, "edit dialog is shown")
}
