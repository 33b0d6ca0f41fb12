package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TemplateInfo is what the list shows for one template
type TemplateInfo struct {
	Name    string
	PyFiles int
	KvFiles int
	Usable  bool
}

// TemplateList shows the catalog and lets the user pick one template
type TemplateList struct {
	container   *fyne.Container
	list        *widget.List
	detailLabel *widget.Label
	useButton   *widget.Button
	backButton  *widget.Button

	templates []TemplateInfo
	current   int

	selectHandler func(string)
	backHandler   func()
}

// NewTemplateList creates a new template list component
func NewTemplateList() *TemplateList {
	tl := &TemplateList{current: -1}
	tl.createComponents()
	tl.buildLayout()
	return tl
}

// createComponents initializes the list and buttons
func (tl *TemplateList) createComponents() {
	tl.list = widget.NewList(
		func() int { return len(tl.templates) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(tl.templates[id].Name)
		},
	)
	tl.list.OnSelected = func(id widget.ListItemID) {
		tl.current = id
		tl.updateDetail()
	}

	tl.detailLabel = widget.NewLabel("Select a template")
	tl.detailLabel.Wrapping = fyne.TextWrapWord

	tl.useButton = widget.NewButtonWithIcon("Use Template", theme.ConfirmIcon(), func() {
		if tl.selectHandler == nil || tl.current < 0 || tl.current >= len(tl.templates) {
			return
		}
		tl.selectHandler(tl.templates[tl.current].Name)
	})
	tl.useButton.Importance = widget.HighImportance
	tl.useButton.Disable()

	tl.backButton = widget.NewButtonWithIcon("Back", theme.NavigateBackIcon(), func() {
		if tl.backHandler != nil {
			tl.backHandler()
		}
	})
}

// buildLayout constructs the list screen
func (tl *TemplateList) buildLayout() {
	buttons := container.NewHBox(tl.backButton, tl.useButton)
	tl.container = container.NewBorder(
		widget.NewLabelWithStyle("Templates", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewVBox(tl.detailLabel, buttons),
		nil, nil,
		tl.list,
	)
}

func (tl *TemplateList) updateDetail() {
	if tl.current < 0 || tl.current >= len(tl.templates) {
		tl.detailLabel.SetText("Select a template")
		tl.useButton.Disable()
		return
	}

	info := tl.templates[tl.current]
	if !info.Usable {
		tl.detailLabel.SetText(fmt.Sprintf("%s has no class mapping and cannot be used", info.Name))
		tl.useButton.Disable()
		return
	}
	tl.detailLabel.SetText(fmt.Sprintf("%s: %d screen files, %d layout files", info.Name, info.PyFiles, info.KvFiles))
	tl.useButton.Enable()
}

// SetTemplates replaces the listed templates and highlights selected
func (tl *TemplateList) SetTemplates(templates []TemplateInfo, selected string) {
	tl.templates = templates
	tl.current = -1
	tl.list.UnselectAll()
	tl.list.Refresh()

	for i, t := range templates {
		if t.Name == selected {
			tl.list.Select(i)
			break
		}
	}
	tl.updateDetail()
}

// Current returns the highlighted template name, or ""
func (tl *TemplateList) Current() string {
	if tl.current < 0 || tl.current >= len(tl.templates) {
		return ""
	}
	return tl.templates[tl.current].Name
}

// Highlight selects the template at index i as if the user clicked it
func (tl *TemplateList) Highlight(i int) {
	tl.list.Select(i)
}

// Use acts as if the use button was tapped
func (tl *TemplateList) Use() {
	if !tl.useButton.Disabled() {
		tl.useButton.OnTapped()
	}
}

// SetSelectHandler sets the handler called with the chosen template
func (tl *TemplateList) SetSelectHandler(handler func(string)) {
	tl.selectHandler = handler
}

// SetBackHandler sets the handler for the back button
func (tl *TemplateList) SetBackHandler(handler func()) {
	tl.backHandler = handler
}

// GetContainer returns the list container
func (tl *TemplateList) GetContainer() *fyne.Container {
	return tl.container
}
