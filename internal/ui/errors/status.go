package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/minisql/internal/model"
)

// StatusBar shows the database connection state. Each state has a
// distinct icon shape, not only a colour.
type StatusBar struct {
	widget.BaseWidget

	state       *model.ConnectionUIState
	statusLabel *widget.Label
	indicator   *widget.Icon
	fileLabel   *widget.Label
}

// NewStatusBar creates a new status bar bound to the given connection state.
func NewStatusBar(state *model.ConnectionUIState) *StatusBar {
	label := widget.NewLabel("Not connected")
	label.Truncation = fyne.TextTruncateEllipsis

	fileLabel := widget.NewLabel("")
	fileLabel.TextStyle = fyne.TextStyle{Italic: true}
	fileLabel.Hide()

	s := &StatusBar{
		state:       state,
		statusLabel: label,
		indicator:   widget.NewIcon(theme.RadioButtonIcon()),
		fileLabel:   fileLabel,
	}
	s.ExtendBaseWidget(s)

	state.State.AddListener(binding.NewDataListener(s.updateStatus))
	state.Message.AddListener(binding.NewDataListener(s.updateStatus))

	s.updateStatus()

	return s
}

// statusText picks the icon and fallback text for a state.
func statusText(state string) (fyne.Resource, string) {
	switch state {
	case "disconnected":
		return theme.RadioButtonIcon(), "Not connected"
	case "connecting":
		return theme.ViewRefreshIcon(), "Connecting..."
	case "connected":
		return theme.ConfirmIcon(), "Connected"
	case "error":
		return theme.ErrorIcon(), "Connection Error"
	default:
		return theme.RadioButtonIcon(), "Unknown state"
	}
}

func (s *StatusBar) updateStatus() {
	stateStr, _ := s.state.State.Get()
	message, _ := s.state.Message.Get()

	icon, text := statusText(stateStr)
	if message != "" {
		text = message
	}
	s.indicator.SetResource(icon)
	s.statusLabel.SetText(text)
}

// SetReadOnly shows or hides the note that connection edits are disabled.
func (s *StatusBar) SetReadOnly(readOnly bool) {
	if readOnly {
		s.fileLabel.SetText("Connections file unreadable, editing disabled")
		s.fileLabel.Show()
		return
	}
	s.fileLabel.Hide()
}

// CreateRenderer implements fyne.Widget.
func (s *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(
		nil, nil,
		container.NewHBox(s.indicator, s.statusLabel),
		s.fileLabel,
	))
}

// SetState is a convenience method to update the connection state.
// State should be one of: "disconnected", "connecting", "connected", "error"
func (s *StatusBar) SetState(state string, message string) {
	_ = s.state.State.Set(state)
	_ = s.state.Message.Set(message)
}
