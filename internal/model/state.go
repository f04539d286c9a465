package model

import (
	"fyne.io/fyne/v2/data/binding"

	"github.com/shhac/minisql/internal/domain"
)

// ApplicationState holds the fyne bindings the window and panels share.
type ApplicationState struct {
	// DefinitionNames mirrors the registry in display order.
	DefinitionNames binding.StringList
	DefaultName     binding.String
	SelectedName    binding.String

	// Loaded is false when the connections file could not be read; the UI
	// then shows no definitions and disables editing.
	Loaded binding.Bool

	Connected binding.Bool
}

// NewApplicationState creates a new ApplicationState with initialized bindings.
func NewApplicationState() *ApplicationState {
	return &ApplicationState{
		DefinitionNames: binding.NewStringList(),
		DefaultName:     binding.NewString(),
		SelectedName:    binding.NewString(),
		Loaded:          binding.NewBool(),
		Connected:       binding.NewBool(),
	}
}

// SyncDefinitions copies names and default from list into the bindings.
func (s *ApplicationState) SyncDefinitions(list *domain.ConnectionDefinitionList) {
	defs := list.Definitions()
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	_ = s.DefinitionNames.Set(names)
	_ = s.DefaultName.Set(list.DefaultName)
}

// ConnectionUIState represents the UI state for connection status display.
// States: "disconnected", "connecting", "connected", "error"
type ConnectionUIState struct {
	State   binding.String // Connection state
	Message binding.String // Status message
}

// NewConnectionUIState creates a new ConnectionUIState with initialized bindings.
func NewConnectionUIState() *ConnectionUIState {
	state := binding.NewString()
	_ = state.Set("disconnected")

	return &ConnectionUIState{
		State:   state,
		Message: binding.NewString(),
	}
}
