package storage

import (
	"sync"

	"github.com/shhac/minisql/internal/domain"
)

// MemoryRepository implements Repository in memory, for tests
type MemoryRepository struct {
	mu      sync.RWMutex
	saved   *domain.ConnectionDefinitionList
	loadErr error
	saveErr error
	saves   int
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// FailLoadsWith makes LoadDefinitions return err, simulating an unreadable store.
func (m *MemoryRepository) FailLoadsWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailSavesWith makes SaveDefinitions return err without storing anything,
// simulating a full disk or read-only directory. nil restores saving.
func (m *MemoryRepository) FailSavesWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// LoadDefinitions returns a copy of the last saved list
func (m *MemoryRepository) LoadDefinitions() (*domain.ConnectionDefinitionList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return domain.NewConnectionDefinitionList(), nil
	}
	return m.saved.Clone(), nil
}

// SaveDefinitions stores a copy of list
func (m *MemoryRepository) SaveDefinitions(list *domain.ConnectionDefinitionList) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = list.Clone()
	m.saves++
	return nil
}

// Saves reports how many times SaveDefinitions succeeded
func (m *MemoryRepository) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
