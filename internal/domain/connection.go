package domain

import (
	"errors"
	"fmt"
	"slices"

	apperrors "github.com/shhac/minisql/internal/errors"
)

// ConnectionDefinition is a named database connection: which provider to use
// and the provider-specific connection string to hand it.
type ConnectionDefinition struct {
	Name             string
	ProviderName     string
	ConnectionString string
	Comment          string // Optional note shown in the details pane
}

// String returns the definition name, which is what list widgets display.
func (d ConnectionDefinition) String() string {
	return d.Name
}

// ConnectionDefinitionList is the ordered set of saved connections plus the
// name of the one the UI should pre-select.
//
// Neither name uniqueness nor DefaultName pointing at an existing entry is
// enforced; use Validate to report those conditions.
type ConnectionDefinitionList struct {
	definitions []ConnectionDefinition

	// DefaultName references a definition by name. Empty means no default.
	DefaultName string
}

// NewConnectionDefinitionList returns an empty list with no default.
func NewConnectionDefinitionList() *ConnectionDefinitionList {
	return &ConnectionDefinitionList{}
}

// Clone returns an independent copy of the list.
func (l *ConnectionDefinitionList) Clone() *ConnectionDefinitionList {
	return &ConnectionDefinitionList{
		definitions: slices.Clone(l.definitions),
		DefaultName: l.DefaultName,
	}
}

// Definitions returns a copy of the definitions in display order, or nil
// when there are none.
func (l *ConnectionDefinitionList) Definitions() []ConnectionDefinition {
	if len(l.definitions) == 0 {
		return nil
	}
	return slices.Clone(l.definitions)
}

// Len returns the number of definitions.
func (l *ConnectionDefinitionList) Len() int {
	return len(l.definitions)
}

// SetDefinitions replaces all definitions with a copy of defs.
func (l *ConnectionDefinitionList) SetDefinitions(defs []ConnectionDefinition) {
	l.definitions = slices.Clone(defs)
}

// AddDefinition appends def. Duplicates are allowed.
func (l *ConnectionDefinitionList) AddDefinition(def ConnectionDefinition) {
	l.definitions = append(l.definitions, def)
}

// RemoveDefinition removes the first definition equal to def and reports
// whether anything was removed.
func (l *ConnectionDefinitionList) RemoveDefinition(def ConnectionDefinition) bool {
	i := slices.Index(l.definitions, def)
	if i < 0 {
		return false
	}
	l.definitions = slices.Delete(l.definitions, i, i+1)
	return true
}

// ReplaceDefinition swaps the first definition equal to old for updated,
// keeping its position.
func (l *ConnectionDefinitionList) ReplaceDefinition(old, updated ConnectionDefinition) bool {
	i := slices.Index(l.definitions, old)
	if i < 0 {
		return false
	}
	l.definitions[i] = updated
	return true
}

// FindByName returns the first definition with the given name.
func (l *ConnectionDefinitionList) FindByName(name string) (ConnectionDefinition, bool) {
	i := slices.IndexFunc(l.definitions, func(d ConnectionDefinition) bool {
		return d.Name == name
	})
	if i < 0 {
		return ConnectionDefinition{}, false
	}
	return l.definitions[i], true
}

// Default resolves DefaultName against the definitions.
func (l *ConnectionDefinitionList) Default() (ConnectionDefinition, bool) {
	if l.DefaultName == "" {
		return ConnectionDefinition{}, false
	}
	return l.FindByName(l.DefaultName)
}

// Validate reports a dangling default and duplicate names. The list stays
// usable either way; callers decide whether to warn or refuse.
func (l *ConnectionDefinitionList) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(l.definitions))
	for _, d := range l.definitions {
		if seen[d.Name] {
			errs = append(errs, apperrors.ValidationError{
				Field:   "Name",
				Message: fmt.Sprintf("duplicate connection name %q", d.Name),
			})
		}
		seen[d.Name] = true
	}

	if l.DefaultName != "" && !seen[l.DefaultName] {
		errs = append(errs, apperrors.ValidationError{
			Field:   "DefaultName",
			Message: fmt.Sprintf("default connection %q does not exist", l.DefaultName),
		})
	}

	return errors.Join(errs...)
}
