package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	catalogInfo *widget.Label
	lastProject *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

// createComponents initializes status bar components
func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.catalogInfo = widget.NewLabel("Templates: --")
	sb.lastProject = widget.NewLabel("No project created")
}

// buildLayout constructs the status bar layout
func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.catalogInfo,
		widget.NewSeparator(),
		sb.lastProject,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetCatalogInfo shows how many templates were loaded
func (sb *StatusBar) SetCatalogInfo(count int) {
	fyne.Do(func() {
		sb.catalogInfo.SetText(fmt.Sprintf("Templates: %d", count))
	})
}

// SetLastProject shows the most recently created project
func (sb *StatusBar) SetLastProject(name, size string) {
	fyne.Do(func() {
		sb.lastProject.SetText(fmt.Sprintf("Last: %s (%s)", name, size))
	})
}

// GetLastProject returns the last project text
func (sb *StatusBar) GetLastProject() string {
	return sb.lastProject.Text
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	fyne.Do(func() {
		sb.statusLabel.SetText("Ready")
		sb.lastProject.SetText("No project created")
	})
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// ProgressBar displays creation progress with stage information
type ProgressBar struct {
	container   *fyne.Container
	progressBar *widget.ProgressBar
	stageLabel  *widget.Label
	visible     bool
}

// NewProgressBar creates a new progress bar component
func NewProgressBar() *ProgressBar {
	pb := &ProgressBar{}
	pb.createComponents()
	pb.buildLayout()
	return pb
}

// createComponents initializes progress bar components
func (pb *ProgressBar) createComponents() {
	pb.progressBar = widget.NewProgressBar()
	pb.stageLabel = widget.NewLabel("Ready")
}

// buildLayout constructs the progress bar layout
func (pb *ProgressBar) buildLayout() {
	pb.container = container.NewVBox(
		pb.stageLabel,
		pb.progressBar,
	)
	pb.container.Hide()
}

// SetProgress updates the progress value (0.0 to 1.0) and stage text
func (pb *ProgressBar) SetProgress(stage string, progress float64) {
	if progress < 0.0 {
		progress = 0.0
	} else if progress > 1.0 {
		progress = 1.0
	}
	fyne.Do(func() {
		pb.progressBar.SetValue(progress)
		pb.stageLabel.SetText(stage)
	})
}

// GetProgress returns the current progress value
func (pb *ProgressBar) GetProgress() float64 {
	return pb.progressBar.Value
}

// GetStage returns the current stage
func (pb *ProgressBar) GetStage() string {
	return pb.stageLabel.Text
}

// SetVisible shows or hides the progress bar
func (pb *ProgressBar) SetVisible(visible bool) {
	fyne.Do(func() {
		pb.visible = visible
		if visible {
			pb.container.Show()
		} else {
			pb.container.Hide()
		}
	})
}

// IsVisible returns true if the progress bar is visible
func (pb *ProgressBar) IsVisible() bool {
	return pb.visible
}

// GetContainer returns the progress bar container
func (pb *ProgressBar) GetContainer() *fyne.Container {
	return pb.container
}
