package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shhac/minisql/internal/domain"
	apperrors "github.com/shhac/minisql/internal/errors"
)

// ConnectionState represents the current state of the database connection
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateError
)

// String returns a human-readable representation of the connection state
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// DefaultConnectTimeout bounds the initial ping when none is configured.
const DefaultConnectTimeout = 15 * time.Second

// ConnectionManager owns the single open database handle the UI works with.
type ConnectionManager struct {
	registry *Registry
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.RWMutex
	db      *gorm.DB
	current domain.ConnectionDefinition
	state   ConnectionState

	onStateChange func(state ConnectionState, message string)
}

// NewConnectionManager creates a manager resolving providers through registry.
func NewConnectionManager(registry *Registry, timeout time.Duration, logger *slog.Logger) *ConnectionManager {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	return &ConnectionManager{
		registry: registry,
		timeout:  timeout,
		logger:   logger,
		state:    StateDisconnected,
	}
}

// SetTimeout changes the ping timeout used by later connects.
func (m *ConnectionManager) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	m.mu.Lock()
	m.timeout = timeout
	m.mu.Unlock()
}

// Connect opens def and verifies it with a ping. On success any previous
// connection is closed and replaced.
func (m *ConnectionManager) Connect(ctx context.Context, def domain.ConnectionDefinition) error {
	m.updateState(StateConnecting, "Connecting to "+def.Name)

	db, err := m.open(ctx, def)
	if err != nil {
		m.logger.Error("failed to connect",
			slog.String("name", def.Name),
			slog.String("provider", def.ProviderName),
			slog.Any("error", err),
		)
		m.updateState(StateError, "Failed to connect: "+err.Error())
		return err
	}

	m.mu.Lock()
	old := m.db
	m.db = db
	m.current = def
	m.mu.Unlock()

	if old != nil {
		go closeDB(old, m.logger)
	}

	m.logger.Info("database connection established",
		slog.String("name", def.Name),
		slog.String("provider", def.ProviderName),
	)
	m.updateState(StateConnected, "Connected to "+def.Name)
	return nil
}

// Test opens def, pings it and closes it again without touching the
// managed connection.
func (m *ConnectionManager) Test(ctx context.Context, def domain.ConnectionDefinition) error {
	db, err := m.open(ctx, def)
	if err != nil {
		m.logger.Debug("connection test failed",
			slog.String("name", def.Name),
			slog.Any("error", err),
		)
		return err
	}
	closeDB(db, m.logger)
	m.logger.Debug("connection test succeeded", slog.String("name", def.Name))
	return nil
}

// Disconnect closes the current connection, if any.
func (m *ConnectionManager) Disconnect() error {
	m.mu.Lock()
	db := m.db
	name := m.current.Name
	m.db = nil
	m.current = domain.ConnectionDefinition{}
	m.mu.Unlock()

	if db == nil {
		m.updateState(StateDisconnected, "Already disconnected")
		return nil
	}

	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		m.logger.Error("failed to close connection",
			slog.String("name", name),
			slog.Any("error", err),
		)
		m.updateState(StateError, "Failed to disconnect: "+err.Error())
		return err
	}

	m.logger.Info("database connection closed", slog.String("name", name))
	m.updateState(StateDisconnected, "Disconnected")
	return nil
}

// DB returns the open connection, or nil when disconnected.
func (m *ConnectionManager) DB() *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

// Current returns the definition of the open connection.
func (m *ConnectionManager) Current() (domain.ConnectionDefinition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.db != nil
}

// State returns the current connection state
func (m *ConnectionManager) State() ConnectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// SetStateCallback registers a callback function to be called on state changes
func (m *ConnectionManager) SetStateCallback(fn func(state ConnectionState, message string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = fn
}

// open builds the gorm handle and pings it, all under the connect timeout.
// Dialector initialisation can talk to the server (the mysql dialector
// queries the version), so the whole open runs in a goroutine; if the
// deadline passes first the handle is closed once that goroutine returns.
func (m *ConnectionManager) open(ctx context.Context, def domain.ConnectionDefinition) (*gorm.DB, error) {
	p, err := m.registry.Lookup(def.ProviderName)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	timeout := m.timeout
	m.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		db  *gorm.DB
		err error
	}
	done := make(chan result, 1)

	go func() {
		db, err := gorm.Open(p.Open(def.ConnectionString), &gorm.Config{
			Logger:               logger.Discard,
			DisableAutomaticPing: true,
		})
		if err != nil {
			done <- result{db, fmt.Errorf("open %s: %w", p.DisplayName, err)}
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			done <- result{db, err}
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			done <- result{db, fmt.Errorf("ping %s: %w", p.DisplayName, err)}
			return
		}
		done <- result{db, nil}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			closeDB(r.db, m.logger)
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConnectionFailed, r.err)
		}
		return r.db, nil
	case <-ctx.Done():
		go func() {
			r := <-done
			closeDB(r.db, m.logger)
		}()
		return nil, fmt.Errorf("%w: open %s: %w", apperrors.ErrConnectionFailed, p.DisplayName, ctx.Err())
	}
}

// updateState updates the connection state and invokes the callback if set
func (m *ConnectionManager) updateState(state ConnectionState, message string) {
	m.mu.Lock()
	m.state = state
	callback := m.onStateChange
	m.mu.Unlock()

	m.logger.Debug("connection state changed",
		slog.String("state", state.String()),
		slog.String("message", message),
	)

	if callback != nil {
		callback(state, message)
	}
}

// closeDB releases the pool behind db. A handle whose dialector never
// got as far as opening a pool is ignored.
func closeDB(db *gorm.DB, log *slog.Logger) {
	if db == nil || db.ConnPool == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database handle", slog.Any("error", err))
	}
}
