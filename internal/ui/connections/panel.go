package connections

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/minisql/internal/domain"
	"github.com/shhac/minisql/internal/model"
)

// Controller is what the panel needs from the application.
type Controller interface {
	State() *model.ApplicationState
	Definition(name string) (domain.ConnectionDefinition, bool)
	DefaultName() string
	ProviderNames() []string
	AddDefinition(def domain.ConnectionDefinition) error
	UpdateDefinition(old, updated domain.ConnectionDefinition) error
	RemoveDefinition(def domain.ConnectionDefinition) error
	SetDefault(name string) error
	TestDefinition(ctx context.Context, def domain.ConnectionDefinition) error
}

const (
	emptyText    = "No saved connections. Use New to add one"
	unloadedText = "Saved connections could not be loaded"
)

// Panel lists the connection definitions and edits them.
type Panel struct {
	widget.BaseWidget

	ctrl   Controller
	state  *model.ApplicationState
	logger *slog.Logger
	window fyne.Window

	listWidget  *widget.List
	selectedID  widget.ListItemID
	placeholder *widget.Label

	providerLabel *widget.Label
	connStrLabel  *widget.Label
	commentLabel  *widget.Label

	newBtn     *widget.Button
	editBtn    *widget.Button
	deleteBtn  *widget.Button
	defaultBtn *widget.Button
	testBtn    *widget.Button
	connectBtn *widget.Button

	onError   func(error)
	onConnect func(name string)

	content *fyne.Container
}

// NewPanel creates the connections panel bound to ctrl's state.
func NewPanel(ctrl Controller, logger *slog.Logger, window fyne.Window) *Panel {
	p := &Panel{
		ctrl:       ctrl,
		state:      ctrl.State(),
		logger:     logger,
		window:     window,
		selectedID: -1,
	}

	p.ExtendBaseWidget(p)
	p.buildUI()
	p.initializeComponents()

	listener := binding.NewDataListener(p.refresh)
	p.state.DefinitionNames.AddListener(listener)
	p.state.DefaultName.AddListener(listener)
	p.state.SelectedName.AddListener(listener)
	p.state.Loaded.AddListener(listener)

	p.refresh()
	return p
}

func (p *Panel) buildUI() {
	p.listWidget = widget.NewListWithData(
		p.state.DefinitionNames,
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(nil), widget.NewLabel("template"))
		},
		func(i binding.DataItem, o fyne.CanvasObject) {
			row := o.(*fyne.Container)
			icon := row.Objects[0].(*widget.Icon)
			label := row.Objects[1].(*widget.Label)

			name, _ := i.(binding.String).Get()
			label.SetText(name)
			if name != "" && name == p.ctrl.DefaultName() {
				icon.SetResource(theme.ConfirmIcon())
				label.TextStyle = fyne.TextStyle{Bold: true}
			} else {
				icon.SetResource(nil)
				label.TextStyle = fyne.TextStyle{}
			}
			label.Refresh()
		},
	)

	p.listWidget.OnSelected = func(id widget.ListItemID) {
		p.selectedID = id
		names, _ := p.state.DefinitionNames.Get()
		if id >= 0 && id < len(names) {
			_ = p.state.SelectedName.Set(names[id])
		}
	}

	p.placeholder = widget.NewLabel(emptyText)
	p.placeholder.Alignment = fyne.TextAlignCenter
	p.placeholder.Wrapping = fyne.TextWrapWord
	p.placeholder.TextStyle = fyne.TextStyle{Italic: true}

	p.providerLabel = widget.NewLabel("")
	p.connStrLabel = widget.NewLabel("")
	p.connStrLabel.Wrapping = fyne.TextWrapBreak
	p.commentLabel = widget.NewLabel("")
	p.commentLabel.Wrapping = fyne.TextWrapWord

	p.newBtn = widget.NewButtonWithIcon("New", theme.ContentAddIcon(), p.handleNew)
	p.editBtn = widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), p.handleEdit)
	p.deleteBtn = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), p.handleDelete)
	p.deleteBtn.Importance = widget.DangerImportance
	p.defaultBtn = widget.NewButtonWithIcon("Set Default", theme.ConfirmIcon(), p.handleSetDefault)
	p.testBtn = widget.NewButton("Test", p.handleTest)
	p.connectBtn = widget.NewButtonWithIcon("Connect", theme.LoginIcon(), p.handleConnect)
	p.connectBtn.Importance = widget.HighImportance
}

// initializeComponents creates the layout once and stores it in p.content.
func (p *Panel) initializeComponents() {
	title := widget.NewLabelWithStyle("Connections", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	details := widget.NewForm(
		widget.NewFormItem("Provider", p.providerLabel),
		widget.NewFormItem("Connection", p.connStrLabel),
		widget.NewFormItem("Comment", p.commentLabel),
	)

	editRow := container.NewGridWithColumns(3, p.newBtn, p.editBtn, p.deleteBtn)
	useRow := container.NewGridWithColumns(3, p.defaultBtn, p.testBtn, p.connectBtn)

	p.content = container.NewBorder(
		title,
		container.NewVBox(widget.NewSeparator(), details, editRow, useRow),
		nil,
		nil,
		container.NewStack(container.NewScroll(p.listWidget), p.placeholder),
	)
}

// CreateRenderer implements the fyne.Widget interface
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// SetOnError sets the handler that presents failures.
func (p *Panel) SetOnError(fn func(error)) {
	p.onError = fn
}

// SetOnConnect sets the handler for the Connect button.
func (p *Panel) SetOnConnect(fn func(name string)) {
	p.onConnect = fn
}

// TriggerNew opens the New Connection dialog (menu and shortcut).
func (p *Panel) TriggerNew() {
	if p.newBtn.Disabled() {
		return
	}
	p.handleNew()
}

// TriggerEdit opens the Edit dialog for the selection.
func (p *Panel) TriggerEdit() {
	if p.editBtn.Disabled() {
		return
	}
	p.handleEdit()
}

// EditDefinition selects name and opens its Edit dialog.
func (p *Panel) EditDefinition(name string) {
	_ = p.state.SelectedName.Set(name)
	p.refresh()
	p.TriggerEdit()
}

// Selected returns the selected definition, if any.
func (p *Panel) Selected() (domain.ConnectionDefinition, bool) {
	name, _ := p.state.SelectedName.Get()
	if name == "" {
		return domain.ConnectionDefinition{}, false
	}
	return p.ctrl.Definition(name)
}

// refresh brings the list, details and buttons in line with the state.
func (p *Panel) refresh() {
	loaded, _ := p.state.Loaded.Get()
	names, _ := p.state.DefinitionNames.Get()

	switch {
	case !loaded:
		p.placeholder.SetText(unloadedText)
		p.placeholder.Show()
	case len(names) == 0:
		p.placeholder.SetText(emptyText)
		p.placeholder.Show()
	default:
		p.placeholder.Hide()
	}

	def, hasSel := p.Selected()
	p.providerLabel.SetText(def.ProviderName)
	p.connStrLabel.SetText(def.ConnectionString)
	p.commentLabel.SetText(def.Comment)

	setEnabled(p.newBtn, loaded)
	setEnabled(p.editBtn, loaded && hasSel)
	setEnabled(p.deleteBtn, loaded && hasSel)
	setEnabled(p.defaultBtn, loaded && hasSel && def.Name != p.ctrl.DefaultName())
	setEnabled(p.testBtn, hasSel)
	setEnabled(p.connectBtn, hasSel)

	p.syncListSelection(names, def.Name, hasSel)
	p.listWidget.Refresh()
}

func (p *Panel) syncListSelection(names []string, selected string, hasSel bool) {
	if !hasSel {
		if p.selectedID >= 0 {
			p.selectedID = -1
			p.listWidget.UnselectAll()
		}
		return
	}
	for i, n := range names {
		if n == selected {
			if i != p.selectedID {
				p.selectedID = i
				p.listWidget.Select(i)
			}
			return
		}
	}
}

func (p *Panel) handleNew() {
	ShowDefinitionDialog(p.window, "New Connection", p.ctrl.ProviderNames(),
		domain.ConnectionDefinition{}, p.testDefinition,
		func(def domain.ConnectionDefinition) {
			if err := p.ctrl.AddDefinition(def); err != nil {
				p.reportError(err)
				return
			}
			p.logger.Info("connection added", slog.String("name", def.Name))
			_ = p.state.SelectedName.Set(def.Name)
		})
}

func (p *Panel) handleEdit() {
	old, ok := p.Selected()
	if !ok {
		return
	}
	ShowDefinitionDialog(p.window, "Edit Connection", p.ctrl.ProviderNames(),
		old, p.testDefinition,
		func(updated domain.ConnectionDefinition) {
			if err := p.ctrl.UpdateDefinition(old, updated); err != nil {
				p.reportError(err)
				return
			}
			p.logger.Info("connection updated",
				slog.String("old_name", old.Name),
				slog.String("name", updated.Name))
			_ = p.state.SelectedName.Set(updated.Name)
		})
}

func (p *Panel) handleDelete() {
	def, ok := p.Selected()
	if !ok {
		return
	}
	ShowDeleteConfirm(p.window, def.Name, func() {
		if err := p.ctrl.RemoveDefinition(def); err != nil {
			p.reportError(err)
			return
		}
		p.logger.Info("connection deleted", slog.String("name", def.Name))
		_ = p.state.SelectedName.Set("")
	})
}

func (p *Panel) handleSetDefault() {
	def, ok := p.Selected()
	if !ok {
		return
	}
	if err := p.ctrl.SetDefault(def.Name); err != nil {
		p.reportError(err)
	}
}

func (p *Panel) handleTest() {
	if def, ok := p.Selected(); ok {
		p.testDefinition(def)
	}
}

func (p *Panel) handleConnect() {
	def, ok := p.Selected()
	if !ok || p.onConnect == nil {
		return
	}
	p.onConnect(def.Name)
}

// testDefinition opens def in the background and reports the outcome.
func (p *Panel) testDefinition(def domain.ConnectionDefinition) {
	p.testBtn.Disable()
	go func() {
		err := p.ctrl.TestDefinition(context.Background(), def)
		fyne.Do(func() {
			p.testBtn.Enable()
			if err != nil {
				p.reportError(err)
				return
			}
			ShowInfoDialog(p.window, "Connection OK", "Connected to '"+def.Name+"' successfully")
		})
	}()
}

func (p *Panel) reportError(err error) {
	p.logger.Warn("connection panel action failed", slog.Any("error", err))
	if p.onError != nil {
		p.onError(err)
	}
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}
