package connections

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/minisql/internal/domain"
)

// definitionForm holds the entries of the New / Edit connection dialog.
type definitionForm struct {
	name             *widget.Entry
	provider         *widget.SelectEntry
	connectionString *widget.Entry
	comment          *widget.Entry
	testBtn          *widget.Button
}

// newDefinitionForm builds the entries, pre-filled from initial. The provider
// entry offers the registered names but accepts any text, so definitions
// carrying an unknown provider can still be opened and fixed.
func newDefinitionForm(providers []string, initial domain.ConnectionDefinition, onTest func(domain.ConnectionDefinition)) *definitionForm {
	f := &definitionForm{
		name:             widget.NewEntry(),
		provider:         widget.NewSelectEntry(providers),
		connectionString: widget.NewMultiLineEntry(),
		comment:          widget.NewMultiLineEntry(),
	}

	f.name.SetPlaceHolder("Connection name")
	f.name.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("name is required")
		}
		return nil
	}
	f.provider.SetPlaceHolder("Provider")
	f.connectionString.SetPlaceHolder("Server=...;Database=...")
	f.connectionString.Wrapping = fyne.TextWrapBreak
	f.connectionString.SetMinRowsVisible(3)
	f.comment.SetMinRowsVisible(2)

	f.name.SetText(initial.Name)
	f.provider.SetText(initial.ProviderName)
	f.connectionString.SetText(initial.ConnectionString)
	f.comment.SetText(initial.Comment)

	f.testBtn = widget.NewButton("Test Connection", func() {
		if onTest != nil {
			onTest(f.Definition())
		}
	})
	if onTest == nil {
		f.testBtn.Disable()
	}

	return f
}

// Items returns the form rows in display order.
func (f *definitionForm) Items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Name", f.name),
		widget.NewFormItem("Provider", f.provider),
		widget.NewFormItem("Connection String", f.connectionString),
		widget.NewFormItem("Comment", f.comment),
		widget.NewFormItem("", f.testBtn),
	}
}

// Definition reads the entries back into a definition.
func (f *definitionForm) Definition() domain.ConnectionDefinition {
	return domain.ConnectionDefinition{
		Name:             strings.TrimSpace(f.name.Text),
		ProviderName:     strings.TrimSpace(f.provider.Text),
		ConnectionString: f.connectionString.Text,
		Comment:          f.comment.Text,
	}
}

// ShowDefinitionDialog opens the New / Edit form. onSubmit runs only when
// the user saves.
func ShowDefinitionDialog(
	parent fyne.Window,
	title string,
	providers []string,
	initial domain.ConnectionDefinition,
	onTest func(domain.ConnectionDefinition),
	onSubmit func(domain.ConnectionDefinition),
) {
	form := newDefinitionForm(providers, initial, onTest)

	dlg := dialog.NewForm(title, "Save", "Cancel", form.Items(), func(save bool) {
		if save {
			onSubmit(form.Definition())
		}
	}, parent)
	dlg.Resize(fyne.NewSize(560, 420))
	dlg.Show()
}

// ShowDeleteConfirm shows a confirmation dialog before deleting a connection.
func ShowDeleteConfirm(parent fyne.Window, name string, onConfirm func()) {
	dialog.ShowConfirm("Delete Connection",
		"Are you sure you want to delete connection '"+name+"'? This cannot be undone.",
		func(confirmed bool) {
			if confirmed {
				onConfirm()
			}
		},
		parent,
	)
}

// ShowInfoDialog shows an information dialog
func ShowInfoDialog(parent fyne.Window, title, message string) {
	dialog.ShowInformation(title, message, parent)
}
