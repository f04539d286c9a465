package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/minisql/internal/command"
	"github.com/shhac/minisql/internal/model"
	"github.com/shhac/minisql/internal/ui/connections"
	uierrors "github.com/shhac/minisql/internal/ui/errors"
	"github.com/shhac/minisql/internal/ui/settings"
)

// AppController defines the interface for app-level operations needed by the UI
type AppController interface {
	connections.Controller

	ConnectionState() *model.ConnectionUIState
	Logger() *slog.Logger
	LoadError() error
	LogPath() string
	SetConnectTimeout(seconds float64)
	Connect(ctx context.Context, name string) error
	Disconnect() error
	HelpCommands() []command.Command
	RunCommand(cmd command.Command) error
}

// MainWindow manages the main application window and its layout.
type MainWindow struct {
	fyneApp fyne.App
	window  fyne.Window
	state   *model.ApplicationState
	logger  *slog.Logger
	app     AppController

	connState *model.ConnectionUIState

	connectionsPanel *connections.Panel
	sessionLabel     *widget.Label
	disconnectBtn    *widget.Button
	statusBar        *uierrors.StatusBar
}

// NewMainWindow creates the main window:
//   - Left side: connections panel
//   - Right side: current session (top), status bar (bottom)
func NewMainWindow(fyneApp fyne.App, app AppController) *MainWindow {
	window := fyneApp.NewWindow("Mini SQL Query")

	mw := &MainWindow{
		fyneApp:   fyneApp,
		window:    window,
		state:     app.State(),
		logger:    app.Logger(),
		app:       app,
		connState: app.ConnectionState(),
	}

	LoadThemePreference(fyneApp)
	if v := fyneApp.Preferences().Float(settings.PrefConnectTimeout); v > 0 {
		app.SetConnectTimeout(v)
	}

	mw.connectionsPanel = connections.NewPanel(app, mw.logger, window)
	mw.statusBar = uierrors.NewStatusBar(mw.connState)
	mw.sessionLabel = widget.NewLabel("")
	mw.sessionLabel.Wrapping = fyne.TextWrapWord
	mw.disconnectBtn = widget.NewButtonWithIcon("Disconnect", theme.LogoutIcon(), mw.handleDisconnect)

	mw.wireCallbacks()
	mw.SetContent()
	window.SetMainMenu(mw.buildMainMenu())
	mw.setupKeyboardShortcuts()

	window.Resize(fyne.NewSize(1000, 650))

	if err := app.LoadError(); err != nil {
		mw.statusBar.SetReadOnly(true)
		uierrors.ShowAppError(err, window, nil)
	}

	return mw
}

// wireCallbacks sets up all the event handlers and connects components
func (w *MainWindow) wireCallbacks() {
	w.connectionsPanel.SetOnError(w.showError)
	w.connectionsPanel.SetOnConnect(w.handleConnect)

	listener := binding.NewDataListener(w.updateSession)
	w.state.Connected.AddListener(listener)
	w.connState.Message.AddListener(listener)
	w.updateSession()
}

func (w *MainWindow) updateSession() {
	connected, _ := w.state.Connected.Get()
	if !connected {
		w.sessionLabel.SetText("Pick a connection on the left and press Connect.")
		w.disconnectBtn.Disable()
		return
	}
	msg, _ := w.connState.Message.Get()
	w.sessionLabel.SetText(msg)
	w.disconnectBtn.Enable()
}

// handleConnect opens the named definition in the background.
func (w *MainWindow) handleConnect(name string) {
	go func() {
		err := w.app.Connect(context.Background(), name)
		if err == nil {
			w.logger.Info("connected", slog.String("name", name))
			return
		}
		w.logger.Error("connection failed", slog.String("name", name), slog.Any("error", err))
		fyne.Do(func() {
			uierrors.ShowAppErrorWithActions(err, w.window, w.connectFailureActions(name))
		})
	}()
}

// connectFailureActions handles the buttons offered when connecting to
// name fails.
func (w *MainWindow) connectFailureActions(name string) uierrors.Actions {
	return uierrors.Actions{
		"Retry":           func() { w.handleConnect(name) },
		"Edit Connection": func() { w.connectionsPanel.EditDefinition(name) },
		"Settings":        w.showPreferences,
	}
}

func (w *MainWindow) handleDisconnect() {
	go func() {
		if err := w.app.Disconnect(); err != nil {
			w.logger.Error("disconnect failed", slog.Any("error", err))
			fyne.Do(func() { w.showError(err) })
		}
	}()
}

// toggleConnection disconnects when connected, otherwise connects the
// selected definition, falling back to the default.
func (w *MainWindow) toggleConnection() {
	if connected, _ := w.state.Connected.Get(); connected {
		w.handleDisconnect()
		return
	}
	if def, ok := w.connectionsPanel.Selected(); ok {
		w.handleConnect(def.Name)
		return
	}
	if name := w.app.DefaultName(); name != "" {
		w.handleConnect(name)
	}
}

func (w *MainWindow) showPreferences() {
	settings.ShowPreferencesDialog(w.fyneApp, w.window, settings.PreferencesCallbacks{
		OnThemeChange: func(mode string) {
			ApplyTheme(w.fyneApp, mode)
		},
		OnTimeoutChange: w.app.SetConnectTimeout,
	})
}

// runCommand executes a menu command and reports failures.
func (w *MainWindow) runCommand(c command.Command) {
	if err := w.app.RunCommand(c); err != nil {
		w.showError(err)
	}
}

func (w *MainWindow) showError(err error) {
	uierrors.ShowAppError(err, w.window, nil)
}

// SetContent builds and sets the main window layout.
//
//	┌─────────────────┬──────────────────────────────┐
//	│                 │      Session                 │
//	│  Connections    │                              │
//	│                 ├──────────────────────────────┤
//	│                 │      Status Bar              │
//	└─────────────────┴──────────────────────────────┘
func (w *MainWindow) SetContent() {
	session := widget.NewCard("Session", "",
		container.NewVBox(w.sessionLabel, container.NewHBox(w.disconnectBtn)))

	rightPanel := container.NewBorder(
		nil,
		w.statusBar,
		nil,
		nil,
		container.NewVScroll(session),
	)

	mainSplit := container.NewHSplit(w.connectionsPanel, rightPanel)
	mainSplit.SetOffset(0.4)

	w.window.SetContent(mainSplit)
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}
