package provider

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"github.com/shhac/minisql/internal/domain"
	apperrors "github.com/shhac/minisql/internal/errors"
	"github.com/shhac/minisql/internal/logging"
)

func TestDefaultRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"System.Data.SqlClient", "System.Data.SqlClient", false},
		{"mssql", "System.Data.SqlClient", false},
		{"MySql.Data.MySqlClient", "MySql.Data.MySqlClient", false},
		{"MariaDB", "MySql.Data.MySqlClient", false},
		{"npgsql", "Npgsql", false},
		{"  pg  ", "Npgsql", false},
		{"System.Data.SQLite", "System.Data.SQLite", false},
		{"sqlite3", "System.Data.SQLite", false},
		{"System.Data.OleDb", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.Lookup(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnsupportedProvider)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
			assert.NotNil(t, p.Open)
		})
	}
}

func TestRegistry_Names(t *testing.T) {
	assert.Equal(t, []string{
		"MySql.Data.MySqlClient",
		"Npgsql",
		"System.Data.SQLite",
		"System.Data.SqlClient",
	}, DefaultRegistry().Names())
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := DefaultRegistry()
	r.Register(Provider{Name: "npgsql", DisplayName: "Postgres (custom)", Open: postgres.Open})

	p, err := r.Lookup("postgres")
	require.NoError(t, err)
	assert.Equal(t, "Postgres (custom)", p.DisplayName)
	assert.Len(t, r.Names(), 4)
}

func sqliteDefinition(t *testing.T) domain.ConnectionDefinition {
	t.Helper()
	return domain.ConnectionDefinition{
		Name:             "scratch",
		ProviderName:     "System.Data.SQLite",
		ConnectionString: filepath.Join(t.TempDir(), "scratch.db"),
	}
}

type stateRecorder struct {
	mu     sync.Mutex
	states []ConnectionState
}

func (r *stateRecorder) record(state ConnectionState, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *stateRecorder) get() []ConnectionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ConnectionState(nil), r.states...)
}

func TestConnectionManager_ConnectAndDisconnect(t *testing.T) {
	m := NewConnectionManager(DefaultRegistry(), time.Second, logging.NewNopLogger())
	rec := &stateRecorder{}
	m.SetStateCallback(rec.record)

	def := sqliteDefinition(t)
	require.NoError(t, m.Connect(context.Background(), def))

	assert.Equal(t, StateConnected, m.State())
	assert.NotNil(t, m.DB())
	current, ok := m.Current()
	assert.True(t, ok)
	assert.Equal(t, def, current)

	require.NoError(t, m.Disconnect())
	assert.Equal(t, StateDisconnected, m.State())
	assert.Nil(t, m.DB())
	_, ok = m.Current()
	assert.False(t, ok)

	assert.Equal(t, []ConnectionState{StateConnecting, StateConnected, StateDisconnected}, rec.get())
}

func TestConnectionManager_DisconnectWhenIdle(t *testing.T) {
	m := NewConnectionManager(DefaultRegistry(), 0, logging.NewNopLogger())
	assert.NoError(t, m.Disconnect())
	assert.Equal(t, StateDisconnected, m.State())
}

func TestConnectionManager_UnsupportedProvider(t *testing.T) {
	m := NewConnectionManager(DefaultRegistry(), time.Second, logging.NewNopLogger())

	err := m.Connect(context.Background(), domain.ConnectionDefinition{
		Name:         "legacy",
		ProviderName: "System.Data.OleDb",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedProvider)
	assert.Equal(t, StateError, m.State())
	assert.Nil(t, m.DB())
}

func TestConnectionManager_BadConnectionString(t *testing.T) {
	m := NewConnectionManager(DefaultRegistry(), time.Second, logging.NewNopLogger())

	err := m.Test(context.Background(), domain.ConnectionDefinition{
		Name:             "broken",
		ProviderName:     "mysql",
		ConnectionString: "this is not a dsn",
	})
	assert.ErrorIs(t, err, apperrors.ErrConnectionFailed)
}

func TestConnectionManager_TestLeavesStateAlone(t *testing.T) {
	m := NewConnectionManager(DefaultRegistry(), time.Second, logging.NewNopLogger())

	require.NoError(t, m.Test(context.Background(), sqliteDefinition(t)))
	assert.Equal(t, StateDisconnected, m.State())
	assert.Nil(t, m.DB())
}

func TestConnectionState_String(t *testing.T) {
	assert.Equal(t, "Disconnected", StateDisconnected.String())
	assert.Equal(t, "Connecting", StateConnecting.String())
	assert.Equal(t, "Connected", StateConnected.String())
	assert.Equal(t, "Error", StateError.String())
	assert.Equal(t, "Unknown", ConnectionState(42).String())
}
