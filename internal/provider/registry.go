package provider

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"

	apperrors "github.com/shhac/minisql/internal/errors"
)

// Provider selects the driver a connection string is handed to.
type Provider struct {
	// Name is the identifier stored in connection definitions. The built-in
	// names are the .NET invariant names older files use.
	Name        string
	DisplayName string
	Aliases     []string
	Open        func(dsn string) gorm.Dialector
}

// Registry resolves provider identifiers, case-insensitively and by alias.
type Registry struct {
	providers []Provider
	index     map[string]int
}

// NewRegistry builds a registry from providers. Later entries win on
// conflicting names.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// DefaultRegistry returns the built-in SQL Server, MySQL, PostgreSQL and
// SQLite providers.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Provider{
			Name:        "System.Data.SqlClient",
			DisplayName: "SQL Server",
			Aliases:     []string{"sqlserver", "mssql"},
			Open:        sqlserver.Open,
		},
		Provider{
			Name:        "MySql.Data.MySqlClient",
			DisplayName: "MySQL",
			Aliases:     []string{"mysql", "mariadb"},
			Open:        mysql.Open,
		},
		Provider{
			Name:        "Npgsql",
			DisplayName: "PostgreSQL",
			Aliases:     []string{"postgres", "postgresql", "pg"},
			Open:        postgres.Open,
		},
		Provider{
			Name:        "System.Data.SQLite",
			DisplayName: "SQLite",
			Aliases:     []string{"sqlite", "sqlite3"},
			Open:        sqlite.Open,
		},
	)
}

// Register adds or replaces a provider.
func (r *Registry) Register(p Provider) {
	pos, exists := r.index[key(p.Name)]
	if exists {
		r.providers[pos] = p
	} else {
		pos = len(r.providers)
		r.providers = append(r.providers, p)
	}
	r.index[key(p.Name)] = pos
	for _, alias := range p.Aliases {
		r.index[key(alias)] = pos
	}
}

// Lookup finds a provider by name or alias.
func (r *Registry) Lookup(name string) (Provider, error) {
	pos, ok := r.index[key(name)]
	if !ok {
		return Provider{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedProvider, name)
	}
	return r.providers[pos], nil
}

// Names returns the canonical provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
