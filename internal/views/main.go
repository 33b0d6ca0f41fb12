package views

import (
	"fmt"
	"sync"

	"project-creator/internal/models"
	"project-creator/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Screen names the page shown in the content area
type Screen string

const (
	DetailsScreen   Screen = "details"
	TemplatesScreen Screen = "templates"
)

// SuccessTitle heads the dialog shown after a project was created
const SuccessTitle = "Congrat's"

// NoticeKind tells which kind of dialog was last shown
type NoticeKind string

const (
	NoticeWarning NoticeKind = "warning"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice records the most recent dialog
type Notice struct {
	Kind   NoticeKind
	Title  string
	Detail string
}

// MainView represents the main application view using MVC pattern
type MainView struct {
	// UI Components
	window        fyne.Window
	mainContainer *fyne.Container
	content       *fyne.Container
	detailsForm   *components.DetailsForm
	templateList  *components.TemplateList
	statusBar     *components.StatusBar
	progressBar   *components.ProgressBar

	mu         sync.RWMutex
	screen     Screen
	busy       bool
	lastNotice Notice
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
		screen: DetailsScreen,
	}

	view.initializeComponents()
	view.buildLayout()

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents() {
	mv.detailsForm = components.NewDetailsForm()
	mv.templateList = components.NewTemplateList()
	mv.statusBar = components.NewStatusBar()
	mv.progressBar = components.NewProgressBar()
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	mv.content = container.NewStack(
		container.NewVScroll(mv.detailsForm.GetContainer()),
		mv.templateList.GetContainer(),
	)
	mv.templateList.GetContainer().Hide()

	mv.mainContainer = container.NewBorder(
		mv.progressBar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.content,
	)

	mv.window.SetContent(mv.mainContainer)
}

// Event handler setters - called by controller

// SetCreateHandler sets the handler for create requests
func (mv *MainView) SetCreateHandler(handler func(models.ProjectDetails)) {
	mv.detailsForm.SetCreateHandler(handler)
}

// SetBrowseHandler sets the handler for folder browsing
func (mv *MainView) SetBrowseHandler(handler func()) {
	mv.detailsForm.SetBrowseHandler(handler)
}

// SetTemplatesHandler sets the handler for opening the template list
func (mv *MainView) SetTemplatesHandler(handler func()) {
	mv.detailsForm.SetTemplatesHandler(handler)
}

// SetTemplateSelectHandler sets the handler for picking a template
func (mv *MainView) SetTemplateSelectHandler(handler func(string)) {
	mv.templateList.SetSelectHandler(handler)
}

// SetBackHandler sets the handler for leaving the template list
func (mv *MainView) SetBackHandler(handler func()) {
	mv.templateList.SetBackHandler(handler)
}

// UI update methods - called by controller

// ShowDetails switches the content area to the details form
func (mv *MainView) ShowDetails() {
	mv.setScreen(DetailsScreen)
	fyne.Do(func() {
		mv.templateList.GetContainer().Hide()
		mv.content.Objects[0].Show()
		mv.content.Refresh()
	})
}

// ShowTemplates switches the content area to the template list
func (mv *MainView) ShowTemplates(templates []components.TemplateInfo, selected string) {
	mv.setScreen(TemplatesScreen)
	fyne.Do(func() {
		mv.templateList.SetTemplates(templates, selected)
		mv.content.Objects[0].Hide()
		mv.templateList.GetContainer().Show()
		mv.content.Refresh()
	})
}

func (mv *MainView) setScreen(s Screen) {
	mv.mu.Lock()
	mv.screen = s
	mv.mu.Unlock()
}

// Prefill restores remembered form values
func (mv *MainView) Prefill(author, path string, ts models.ThemeSelection, extras models.Extras) {
	fyne.Do(func() {
		mv.detailsForm.Prefill(author, path, ts, extras)
	})
}

// SetTemplate shows the template that will be used
func (mv *MainView) SetTemplate(name string) {
	fyne.Do(func() {
		mv.detailsForm.SetTemplate(name)
	})
}

// SetProjectPath fills the location field
func (mv *MainView) SetProjectPath(path string) {
	fyne.Do(func() {
		mv.detailsForm.SetProjectPath(path)
	})
}

// ClearProjectFields empties title and name after a successful creation
func (mv *MainView) ClearProjectFields() {
	fyne.Do(func() {
		mv.detailsForm.ClearProjectFields()
	})
}

// SetBusy updates UI state for a running creation
func (mv *MainView) SetBusy(busy bool) {
	mv.mu.Lock()
	mv.busy = busy
	mv.mu.Unlock()

	fyne.Do(func() {
		mv.detailsForm.SetBusy(busy)
		mv.progressBar.SetVisible(busy)
		if busy {
			mv.progressBar.SetProgress("Starting...", 0.0)
		}
	})
}

// UpdateProgress updates the progress bar
func (mv *MainView) UpdateProgress(stage string, progress float64) {
	mv.progressBar.SetProgress(stage, progress)
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// SetCatalogInfo shows the number of loaded templates
func (mv *MainView) SetCatalogInfo(count int) {
	mv.statusBar.SetCatalogInfo(count)
}

// SetLastProject shows the last created project in the status bar
func (mv *MainView) SetLastProject(name, size string) {
	mv.statusBar.SetLastProject(name, size)
}

// ShowWarning displays a validation problem with a warning icon
func (mv *MainView) ShowWarning(title, detail string) {
	mv.recordNotice(Notice{Kind: NoticeWarning, Title: title, Detail: detail})

	fyne.Do(func() {
		heading := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		heading.Wrapping = fyne.TextWrapWord
		body := container.NewVBox(heading)
		if detail != "" {
			label := widget.NewLabel(detail)
			label.Wrapping = fyne.TextWrapWord
			body.Add(label)
		}
		content := container.NewBorder(nil, nil, widget.NewIcon(theme.WarningIcon()), nil, body)
		dialog.ShowCustom("Warning", "OK", content, mv.window)
	})
}

// ShowSuccess displays the creation confirmation
func (mv *MainView) ShowSuccess(message string) {
	mv.recordNotice(Notice{Kind: NoticeSuccess, Title: SuccessTitle, Detail: message})

	fyne.Do(func() {
		dialog.ShowInformation(SuccessTitle, message, mv.window)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	mv.recordNotice(Notice{Kind: NoticeError, Title: title, Detail: err.Error()})

	fyne.Do(func() {
		dialog.ShowError(fmt.Errorf("%s: %w", title, err), mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// ShowFolderChooser lets the user pick a folder, starting at start when
// it can be listed. callback is not called when the dialog is dismissed.
func (mv *MainView) ShowFolderChooser(start string, callback func(string)) {
	fyne.Do(func() {
		d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				mv.ShowError("Folder selection failed", err)
				return
			}
			if uri == nil {
				return
			}
			callback(uri.Path())
		}, mv.window)

		if start != "" {
			if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
				d.SetLocation(lister)
			}
		}
		d.Show()
	})
}

func (mv *MainView) recordNotice(n Notice) {
	mv.mu.Lock()
	mv.lastNotice = n
	mv.mu.Unlock()
}

// GetDetailsForm returns the details form component
func (mv *MainView) GetDetailsForm() *components.DetailsForm {
	return mv.detailsForm
}

// GetTemplateList returns the template list component
func (mv *MainView) GetTemplateList() *components.TemplateList {
	return mv.templateList
}

// ViewState represents the current state of the view
type ViewState struct {
	Screen        Screen
	IsBusy        bool
	Template      string
	ProjectPath   string
	StatusMessage string
	LastProject   string
	ProgressValue float64
	ProgressStage string
	LastNotice    Notice
}

// GetViewState returns the current view state
func (mv *MainView) GetViewState() ViewState {
	mv.mu.RLock()
	defer mv.mu.RUnlock()

	return ViewState{
		Screen:        mv.screen,
		IsBusy:        mv.busy,
		Template:      mv.detailsForm.Details().Template,
		ProjectPath:   mv.detailsForm.ProjectPath(),
		StatusMessage: mv.statusBar.GetStatus(),
		LastProject:   mv.statusBar.GetLastProject(),
		ProgressValue: mv.progressBar.GetProgress(),
		ProgressStage: mv.progressBar.GetStage(),
		LastNotice:    mv.lastNotice,
	}
}
