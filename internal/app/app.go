package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/shhac/minisql/internal/command"
	"github.com/shhac/minisql/internal/domain"
	apperrors "github.com/shhac/minisql/internal/errors"
	"github.com/shhac/minisql/internal/logging"
	"github.com/shhac/minisql/internal/model"
	"github.com/shhac/minisql/internal/provider"
	"github.com/shhac/minisql/internal/storage"
)

// App is the main application coordinator, responsible for wiring
// together all components and managing their lifecycle.
type App struct {
	fyneApp     fyne.App
	window      fyne.Window
	config      *Config
	logger      *slog.Logger
	logFile     *logging.Logger
	storage     storage.Repository
	providers   *provider.Registry
	connManager *provider.ConnectionManager
	state       *model.ApplicationState
	connUIState *model.ConnectionUIState

	// definitions is nil when loading failed; loadErr then says why.
	definitions *domain.ConnectionDefinitionList
	loadErr     error
}

// New creates a new App instance with the given configuration.
// This performs all dependency injection and wiring.
func New(fyneApp fyne.App, cfg *Config) (*App, error) {
	logFile, err := logging.InitLogger("minisql", cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	storagePath := cfg.StoragePath
	if storagePath == "" {
		storagePath, err = storage.DefaultStoragePath()
		if err != nil {
			return nil, fmt.Errorf("failed to determine storage path: %w", err)
		}
	}

	logFile.Info("initializing minisql",
		slog.Bool("debug", cfg.Debug),
		slog.String("storage_path", storagePath),
		slog.Duration("connect_timeout", cfg.ConnectTimeout),
	)

	repo := storage.NewXMLRepository(storagePath, logFile.Logger)
	a := newApp(fyneApp, cfg, logFile.Logger, repo)
	a.logFile = logFile
	return a, nil
}

// newApp wires an App from already-built dependencies.
func newApp(fyneApp fyne.App, cfg *Config, logger *slog.Logger, repo storage.Repository) *App {
	providers := provider.DefaultRegistry()
	connManager := provider.NewConnectionManager(providers, cfg.ConnectTimeout, logger)

	a := &App{
		fyneApp:     fyneApp,
		config:      cfg,
		logger:      logger,
		storage:     repo,
		providers:   providers,
		connManager: connManager,
		state:       model.NewApplicationState(),
		connUIState: model.NewConnectionUIState(),
	}

	connManager.SetStateCallback(func(connState provider.ConnectionState, message string) {
		var uiState string
		switch connState {
		case provider.StateConnecting:
			uiState = "connecting"
		case provider.StateConnected:
			uiState = "connected"
		case provider.StateError:
			uiState = "error"
		default:
			uiState = "disconnected"
		}

		_ = a.connUIState.State.Set(uiState)
		_ = a.connUIState.Message.Set(message)
		_ = a.state.Connected.Set(connState == provider.StateConnected)
	})

	a.reload()
	return a
}

// reload reads the registry from storage. On failure no definitions are
// exposed at all, rather than a partial list.
func (a *App) reload() {
	list, err := a.storage.LoadDefinitions()
	if err != nil {
		a.logger.Error("failed to load connection definitions", slog.Any("error", err))
		a.definitions = nil
		a.loadErr = err
		_ = a.state.Loaded.Set(false)
		a.state.SyncDefinitions(domain.NewConnectionDefinitionList())
		return
	}

	a.definitions = list
	a.loadErr = nil
	_ = a.state.Loaded.Set(true)
	a.state.SyncDefinitions(list)

	if err := list.Validate(); err != nil {
		a.logger.Warn("connection definitions need attention", slog.Any("error", err))
	}
	if def, ok := list.Default(); ok {
		_ = a.state.SelectedName.Set(def.Name)
	}
	a.logger.Info("connection definitions loaded", slog.Int("count", list.Len()))
}

// Run starts the application and displays the main window.
// This is a blocking call that runs the Fyne event loop.
func (a *App) Run(window fyne.Window) {
	a.window = window
	a.logger.Info("starting application")
	a.window.ShowAndRun()
}

// Shutdown closes the open connection and the log file.
func (a *App) Shutdown() {
	if err := a.connManager.Disconnect(); err != nil {
		a.logger.Warn("disconnect on shutdown failed", slog.Any("error", err))
	}
	a.logger.Info("application shutdown complete")
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// State returns the application state for use by UI components.
func (a *App) State() *model.ApplicationState { return a.state }

// ConnectionState returns the bindings for the status bar.
func (a *App) ConnectionState() *model.ConnectionUIState { return a.connUIState }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// FyneApp returns the underlying Fyne application instance.
func (a *App) FyneApp() fyne.App { return a.fyneApp }

// LoadError reports why the registry could not be loaded, or nil.
func (a *App) LoadError() error { return a.loadErr }

// LogPath returns the log file location, or "" when logging to nowhere.
func (a *App) LogPath() string {
	if a.logFile == nil {
		return ""
	}
	return a.logFile.Path()
}

// ProviderNames lists the providers a definition can use.
func (a *App) ProviderNames() []string { return a.providers.Names() }

// SetConnectTimeout applies a changed preference.
func (a *App) SetConnectTimeout(seconds float64) {
	a.connManager.SetTimeout(secondsToDuration(seconds))
}

// Definitions returns a snapshot of the registry.
func (a *App) Definitions() []domain.ConnectionDefinition {
	if a.definitions == nil {
		return nil
	}
	return a.definitions.Definitions()
}

// Definition looks a definition up by name.
func (a *App) Definition(name string) (domain.ConnectionDefinition, bool) {
	if a.definitions == nil {
		return domain.ConnectionDefinition{}, false
	}
	return a.definitions.FindByName(name)
}

// DefaultName returns the name of the default definition.
func (a *App) DefaultName() string {
	if a.definitions == nil {
		return ""
	}
	return a.definitions.DefaultName
}

// AddDefinition appends def and saves. The first definition added to an
// empty registry becomes the default.
func (a *App) AddDefinition(def domain.ConnectionDefinition) error {
	def = normalize(def)
	return a.edit("add", def.Name, func(list *domain.ConnectionDefinitionList) error {
		if err := checkName(list, def.Name, ""); err != nil {
			return err
		}
		list.AddDefinition(def)
		if list.DefaultName == "" {
			list.DefaultName = def.Name
		}
		return nil
	})
}

// UpdateDefinition replaces old with updated and saves. Renaming the
// default definition carries the default along.
func (a *App) UpdateDefinition(old, updated domain.ConnectionDefinition) error {
	updated = normalize(updated)
	return a.edit("update", updated.Name, func(list *domain.ConnectionDefinitionList) error {
		if err := checkName(list, updated.Name, old.Name); err != nil {
			return err
		}
		if !list.ReplaceDefinition(old, updated) {
			return fmt.Errorf("connection %q no longer exists", old.Name)
		}
		if list.DefaultName == old.Name {
			list.DefaultName = updated.Name
		}
		return nil
	})
}

// RemoveDefinition deletes def and saves. Removing the default clears it.
func (a *App) RemoveDefinition(def domain.ConnectionDefinition) error {
	return a.edit("remove", def.Name, func(list *domain.ConnectionDefinitionList) error {
		if !list.RemoveDefinition(def) {
			return fmt.Errorf("connection %q no longer exists", def.Name)
		}
		if list.DefaultName == def.Name {
			list.DefaultName = ""
		}
		return nil
	})
}

// SetDefault marks name as the default definition and saves.
func (a *App) SetDefault(name string) error {
	return a.edit("set default", name, func(list *domain.ConnectionDefinitionList) error {
		if _, ok := list.FindByName(name); !ok {
			return apperrors.ValidationError{Field: "Default", Message: fmt.Sprintf("no connection named %q", name)}
		}
		list.DefaultName = name
		return nil
	})
}

// Connect opens the named definition through the connection manager.
func (a *App) Connect(ctx context.Context, name string) error {
	def, ok := a.Definition(name)
	if !ok {
		return apperrors.ValidationError{Field: "Connection", Message: fmt.Sprintf("no connection named %q", name)}
	}
	return a.connManager.Connect(ctx, def)
}

// Disconnect closes the open connection.
func (a *App) Disconnect() error {
	return a.connManager.Disconnect()
}

// TestDefinition checks that def can be opened, without keeping it open.
func (a *App) TestDefinition(ctx context.Context, def domain.ConnectionDefinition) error {
	return a.connManager.Test(ctx, normalize(def))
}

// HelpCommands returns the commands for the Help menu.
func (a *App) HelpCommands() []command.Command {
	return []command.Command{
		command.NewEmailAuthorCommand(a.fyneApp),
		command.NewWebsiteCommand(a.fyneApp),
	}
}

// RunCommand executes cmd, tagging launch failures so they classify as such.
func (a *App) RunCommand(cmd command.Command) error {
	a.logger.Debug("running command", slog.String("label", cmd.Label()))
	err := cmd.Execute()
	if err == nil {
		return nil
	}
	a.logger.Warn("command failed", slog.String("label", cmd.Label()), slog.Any("error", err))
	if _, isURL := cmd.(*command.ShowURLCommand); isURL {
		return fmt.Errorf("%w: %w", apperrors.ErrLaunchFailed, err)
	}
	return err
}

func (a *App) editable() error {
	if a.definitions == nil {
		return fmt.Errorf("connection definitions are read-only until the file loads: %w", a.loadErr)
	}
	return nil
}

// edit applies mutate to a copy of the registry and saves it. The copy
// replaces the registry, and the bindings are refreshed, only once the
// save succeeds; on any error the registry is left as it was.
func (a *App) edit(op, name string, mutate func(list *domain.ConnectionDefinitionList) error) error {
	if err := a.editable(); err != nil {
		return err
	}

	next := a.definitions.Clone()
	if err := mutate(next); err != nil {
		return err
	}

	if err := a.storage.SaveDefinitions(next); err != nil {
		a.logger.Error("failed to save connection definitions",
			slog.String("op", op),
			slog.String("name", name),
			slog.Any("error", err))
		return fmt.Errorf("save connections: %w", err)
	}

	a.definitions = next
	a.state.SyncDefinitions(next)
	a.logger.Info("connection definitions saved",
		slog.String("op", op),
		slog.String("name", name))
	return nil
}

// checkName rejects empty names and names already used by another
// definition. The registry itself allows duplicates; the editor does not
// create them.
func checkName(list *domain.ConnectionDefinitionList, name, current string) error {
	if name == "" {
		return apperrors.ValidationError{Field: "Name", Message: "name is required"}
	}
	if name == current {
		return nil
	}
	if _, taken := list.FindByName(name); taken {
		return apperrors.ValidationError{Field: "Name", Message: fmt.Sprintf("a connection named %q already exists", name)}
	}
	return nil
}

func normalize(def domain.ConnectionDefinition) domain.ConnectionDefinition {
	def.Name = strings.TrimSpace(def.Name)
	def.ProviderName = strings.TrimSpace(def.ProviderName)
	return def
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
