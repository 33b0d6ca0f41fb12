package components

import (
	"project-creator/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DetailsForm collects everything needed to create a project
type DetailsForm struct {
	container *fyne.Container

	titleEntry   *widget.Entry
	nameEntry    *widget.Entry
	versionEntry *widget.Entry
	pathEntry    *widget.Entry
	authorEntry  *widget.Entry
	browseButton *widget.Button

	primary     *ColorPicker
	accent      *ColorPicker
	themeSelect *widget.Select

	gitignoreCheck *widget.Check
	readmeCheck    *widget.Check
	licenseCheck   *widget.Check

	templateLabel   *widget.Label
	templatesButton *widget.Button
	createButton    *widget.Button

	// Event handlers
	browseHandler    func()
	templatesHandler func()
	createHandler    func(models.ProjectDetails)

	template string
}

// NewDetailsForm creates a new details form with default values
func NewDetailsForm() *DetailsForm {
	form := &DetailsForm{}
	form.createComponents()
	form.buildLayout()
	form.setupEventHandlers()
	return form
}

// createComponents initializes all form widgets
func (df *DetailsForm) createComponents() {
	df.titleEntry = widget.NewEntry()
	df.titleEntry.SetPlaceHolder("My Application")
	df.nameEntry = widget.NewEntry()
	df.nameEntry.SetPlaceHolder("MyApplication")
	df.versionEntry = widget.NewEntry()
	df.versionEntry.SetText("1.0.0")
	df.pathEntry = widget.NewEntry()
	df.pathEntry.SetPlaceHolder("Folder the project is created in")
	df.authorEntry = widget.NewEntry()

	df.browseButton = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), nil)

	defaults := models.DefaultTheme()
	df.primary = NewColorPicker("Primary", defaults.PrimaryPalette, defaults.PrimaryHue)
	df.accent = NewColorPicker("Accent", defaults.AccentPalette, defaults.AccentHue)
	df.themeSelect = widget.NewSelect(models.ThemeStyles, nil)
	df.themeSelect.SetSelected(defaults.ThemeStyle)

	df.gitignoreCheck = widget.NewCheck(".gitignore", nil)
	df.readmeCheck = widget.NewCheck("README.md", nil)
	df.licenseCheck = widget.NewCheck("LICENSE", nil)

	df.templateLabel = widget.NewLabel("No template selected")
	df.templatesButton = widget.NewButton("Choose Template", nil)

	df.createButton = widget.NewButtonWithIcon("Create Project", theme.ConfirmIcon(), nil)
	df.createButton.Importance = widget.HighImportance
}

// buildLayout constructs the form layout
func (df *DetailsForm) buildLayout() {
	pathRow := container.NewBorder(nil, nil, nil, df.browseButton, df.pathEntry)

	form := widget.NewForm(
		widget.NewFormItem("Application Title", df.titleEntry),
		widget.NewFormItem("Project Name", df.nameEntry),
		widget.NewFormItem("Version", df.versionEntry),
		widget.NewFormItem("Author", df.authorEntry),
		widget.NewFormItem("Location", pathRow),
	)

	themeCard := widget.NewCard("Theme", "", container.NewVBox(
		df.primary.GetContainer(),
		df.accent.GetContainer(),
		container.NewBorder(nil, nil, widget.NewLabel("Style"), nil, df.themeSelect),
	))

	extrasCard := widget.NewCard("Extra Files", "", container.NewHBox(
		df.gitignoreCheck,
		df.readmeCheck,
		df.licenseCheck,
	))

	templateRow := container.NewBorder(nil, nil, widget.NewLabel("Template:"), df.templatesButton, df.templateLabel)

	df.container = container.NewVBox(
		form,
		templateRow,
		themeCard,
		extrasCard,
		df.createButton,
	)
}

// setupEventHandlers connects widget callbacks to the form handlers
func (df *DetailsForm) setupEventHandlers() {
	df.browseButton.OnTapped = func() {
		if df.browseHandler != nil {
			df.browseHandler()
		}
	}
	df.templatesButton.OnTapped = func() {
		if df.templatesHandler != nil {
			df.templatesHandler()
		}
	}
	df.createButton.OnTapped = func() {
		if df.createHandler != nil {
			df.createHandler(df.Details())
		}
	}
}

// SetBrowseHandler sets the handler for the folder button
func (df *DetailsForm) SetBrowseHandler(handler func()) {
	df.browseHandler = handler
}

// SetTemplatesHandler sets the handler for the template button
func (df *DetailsForm) SetTemplatesHandler(handler func()) {
	df.templatesHandler = handler
}

// SetCreateHandler sets the handler for the create button
func (df *DetailsForm) SetCreateHandler(handler func(models.ProjectDetails)) {
	df.createHandler = handler
}

// Details returns the current form values as entered; trimming and
// validation happen in the service
func (df *DetailsForm) Details() models.ProjectDetails {
	primaryPalette, primaryHue := df.primary.Selection()
	accentPalette, accentHue := df.accent.Selection()

	return models.ProjectDetails{
		ApplicationTitle:   df.titleEntry.Text,
		ProjectName:        df.nameEntry.Text,
		ApplicationVersion: df.versionEntry.Text,
		ProjectPath:        df.pathEntry.Text,
		AuthorName:         df.authorEntry.Text,
		Theme: models.ThemeSelection{
			PrimaryPalette: primaryPalette,
			PrimaryHue:     primaryHue,
			AccentPalette:  accentPalette,
			AccentHue:      accentHue,
			ThemeStyle:     df.themeSelect.Selected,
		},
		Extras: models.Extras{
			Gitignore: df.gitignoreCheck.Checked,
			Readme:    df.readmeCheck.Checked,
			License:   df.licenseCheck.Checked,
		},
		Template: df.template,
	}
}

// Prefill sets the remembered values without touching title, name or version
func (df *DetailsForm) Prefill(author, path string, ts models.ThemeSelection, extras models.Extras) {
	df.authorEntry.SetText(author)
	df.pathEntry.SetText(path)
	df.primary.SetSelection(ts.PrimaryPalette, ts.PrimaryHue)
	df.accent.SetSelection(ts.AccentPalette, ts.AccentHue)
	df.themeSelect.SetSelected(ts.ThemeStyle)
	df.gitignoreCheck.SetChecked(extras.Gitignore)
	df.readmeCheck.SetChecked(extras.Readme)
	df.licenseCheck.SetChecked(extras.License)
}

// SetProjectPath fills the location field
func (df *DetailsForm) SetProjectPath(path string) {
	df.pathEntry.SetText(path)
}

// ProjectPath returns the location field
func (df *DetailsForm) ProjectPath() string {
	return df.pathEntry.Text
}

// SetTemplate shows the selected template
func (df *DetailsForm) SetTemplate(name string) {
	df.template = name
	if name == "" {
		df.templateLabel.SetText("No template selected")
		return
	}
	df.templateLabel.SetText(name)
}

// SetBusy locks the form while a project is being written
func (df *DetailsForm) SetBusy(busy bool) {
	df.primary.SetEnabled(!busy)
	df.accent.SetEnabled(!busy)

	toggles := []fyne.Disableable{
		df.createButton,
		df.templatesButton,
		df.browseButton,
		df.themeSelect,
		df.gitignoreCheck,
		df.readmeCheck,
		df.licenseCheck,
	}
	for _, w := range toggles {
		if busy {
			w.Disable()
		} else {
			w.Enable()
		}
	}
}

// ClearProjectFields empties the per-project fields after a successful creation
func (df *DetailsForm) ClearProjectFields() {
	df.titleEntry.SetText("")
	df.nameEntry.SetText("")
}

// GetContainer returns the form container
func (df *DetailsForm) GetContainer() *fyne.Container {
	return df.container
}
