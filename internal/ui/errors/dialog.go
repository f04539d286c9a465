package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	apperrors "github.com/shhac/minisql/internal/errors"
)

// Actions maps an error action label, such as "Retry" or
// "Edit Connection", to what the button does.
type Actions map[string]func()

// ShowError displays a simple error dialog with the error message.
func ShowError(err error, window fyne.Window) {
	if err == nil {
		return
	}

	dialog.ShowError(err, window)
}

// ShowAppError displays a classified error with recovery suggestions and
// technical details, offering Retry when the error class allows it.
func ShowAppError(err error, window fyne.Window, onRetry func()) {
	var actions Actions
	if onRetry != nil {
		actions = Actions{"Retry": onRetry}
	}
	ShowAppErrorWithActions(err, window, actions)
}

// ShowAppErrorWithActions is ShowAppError with a handler per action label.
// An action the error class suggests gets a button when actions has a
// handler for it, or when the action carries its own.
func ShowAppErrorWithActions(err error, window fyne.Window, actions Actions) {
	if err == nil {
		return
	}

	uiErr := apperrors.ClassifyError(err)
	if uiErr == nil {
		dialog.ShowError(err, window)
		return
	}

	d := dialog.NewCustomWithoutButtons(uiErr.Title, buildContent(uiErr), window)
	d.SetButtons(actionButtons(uiErr, actions, d.Hide))
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// buildContent lays out message, suggestions and collapsed details using
// word-wrapping labels so the dialog does not widen the window.
func buildContent(uiErr *apperrors.UIError) *fyne.Container {
	msgLabel := widget.NewLabel(uiErr.Message)
	msgLabel.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(msgLabel)

	if len(uiErr.Recovery) > 0 {
		content.Add(widget.NewSeparator())
		content.Add(widget.NewLabel("You can:"))
		for _, suggestion := range uiErr.Recovery {
			lbl := widget.NewLabel("• " + suggestion)
			lbl.Wrapping = fyne.TextWrapWord
			content.Add(lbl)
		}
	}

	if uiErr.Details != "" {
		detailsLabel := widget.NewLabel(uiErr.Details)
		detailsLabel.Wrapping = fyne.TextWrapWord
		content.Add(widget.NewAccordion(
			widget.NewAccordionItem("Technical Details", detailsLabel),
		))
	}

	return content
}

// actionButtons returns Close followed by one button per suggested action
// that has a handler. Every button hides the dialog first.
func actionButtons(uiErr *apperrors.UIError, actions Actions, hide func()) []fyne.CanvasObject {
	buttons := []fyne.CanvasObject{widget.NewButton("Close", hide)}

	for _, action := range uiErr.Actions {
		handler := actions[action.Label]
		if handler == nil {
			handler = action.Handler
		}
		if handler == nil {
			continue
		}
		btn := widget.NewButton(action.Label, func() {
			hide()
			handler()
		})
		btn.Importance = widget.HighImportance
		buttons = append(buttons, btn)
	}

	return buttons
}
