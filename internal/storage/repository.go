package storage

import "github.com/shhac/minisql/internal/domain"

// Repository defines persistence operations for the connection registry
type Repository interface {
	// LoadDefinitions returns the saved list. A missing store yields an
	// empty list; an unreadable one yields an error and no list.
	LoadDefinitions() (*domain.ConnectionDefinitionList, error)

	// SaveDefinitions replaces the saved list.
	SaveDefinitions(list *domain.ConnectionDefinitionList) error
}
