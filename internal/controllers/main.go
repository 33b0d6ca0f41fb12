package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"project-creator/internal/config"
	"project-creator/internal/logger"
	"project-creator/internal/models"
	"project-creator/internal/services"
	"project-creator/internal/views"
	"project-creator/internal/views/components"

	"github.com/dustin/go-humanize"
)

// MainController orchestrates the application using MVC pattern
type MainController struct {
	// Services
	projectService *services.ProjectService

	// Models/Repositories
	catalog *models.TemplateCatalog
	store   *config.Store

	// Views
	mainView *views.MainView

	logger logger.Logger

	// State management
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	creating atomic.Bool
}

// NewMainController creates a new main controller. Creations started
// by the controller are cancelled when ctx ends or Shutdown is called.
func NewMainController(
	ctx context.Context,
	projectService *services.ProjectService,
	catalog *models.TemplateCatalog,
	store *config.Store,
	log logger.Logger,
) *MainController {
	ctx, cancel := context.WithCancel(ctx)
	return &MainController{
		projectService: projectService,
		catalog:        catalog,
		store:          store,
		logger:         log,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// SetMainView associates the main view with this controller and fills it
// from the saved preferences
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
	mc.initializeView()
}

// setupViewEventHandlers connects view events to controller methods
func (mc *MainController) setupViewEventHandlers() {
	mc.mainView.SetCreateHandler(mc.CreateProject)
	mc.mainView.SetBrowseHandler(mc.BrowseFolder)
	mc.mainView.SetTemplatesHandler(mc.ShowTemplates)
	mc.mainView.SetTemplateSelectHandler(mc.SelectTemplate)
	mc.mainView.SetBackHandler(mc.BackToDetails)
}

func (mc *MainController) initializeView() {
	prefs := mc.store.Preferences()

	if prefs.Template != "" {
		if err := mc.catalog.Select(prefs.Template); err != nil {
			mc.logger.Warning("MainController", "remembered template not found", map[string]interface{}{
				"template": prefs.Template,
			})
		}
	}

	mc.mainView.Prefill(prefs.AuthorName, prefs.ProjectPath, prefs.Theme, prefs.Extras)
	mc.mainView.SetTemplate(mc.catalog.Selected())
	mc.mainView.SetCatalogInfo(mc.catalog.Len())
	mc.mainView.UpdateStatus("Ready")
}

// CreateProject validates details and, when they pass, creates the
// project in the background
func (mc *MainController) CreateProject(details models.ProjectDetails) {
	if mc.projectService.IsBusy() || !mc.creating.CompareAndSwap(false, true) {
		mc.handleError("Creation failed", services.ErrCreationInProgress)
		return
	}

	normalized, _, err := mc.projectService.Validate(details)
	if err != nil {
		mc.creating.Store(false)
		mc.handleError("Invalid project details", err)
		return
	}

	mc.mainView.SetBusy(true)
	mc.mainView.UpdateStatus(fmt.Sprintf("Creating %s...", normalized.ProjectName))

	mc.wg.Add(1)
	go mc.performCreation(normalized)
}

// performCreation runs the service and reports the outcome to the view
func (mc *MainController) performCreation(details models.ProjectDetails) {
	defer mc.wg.Done()
	defer mc.creating.Store(false)

	result, err := mc.projectService.CreateProject(mc.ctx, details, mc.mainView.UpdateProgress)

	// another creation owns the busy state
	if errors.Is(err, services.ErrCreationInProgress) {
		mc.handleError("Creation failed", err)
		return
	}

	mc.mainView.SetBusy(false)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			mc.mainView.UpdateStatus("Creation cancelled")
			return
		}
		mc.mainView.UpdateStatus("Creation failed")
		mc.handleError("Creation failed", err)
		return
	}

	mc.mainView.UpdateStatus(services.Summary(result))
	mc.mainView.SetLastProject(result.ProjectName, humanize.Bytes(uint64(result.BytesWritten)))
	mc.mainView.ClearProjectFields()
	mc.mainView.ShowSuccess(models.SuccessMessage(result.ProjectName))

	mc.savePreferences(details)
}

func (mc *MainController) savePreferences(details models.ProjectDetails) {
	prefs := config.Preferences{
		AuthorName:  details.AuthorName,
		ProjectPath: details.ProjectPath,
		Template:    mc.catalog.Selected(),
		Theme:       details.Theme,
		Extras:      details.Extras,
	}
	if err := mc.store.SavePreferences(prefs); err != nil {
		mc.logger.Error("MainController", fmt.Errorf("save preferences: %w", err), nil)
	}
}

// BrowseFolder opens a folder chooser for the project location
func (mc *MainController) BrowseFolder() {
	start := mc.mainView.GetViewState().ProjectPath
	mc.mainView.ShowFolderChooser(start, mc.SetProjectPath)
}

// SetProjectPath stores a chosen folder in the form
func (mc *MainController) SetProjectPath(path string) {
	mc.mainView.SetProjectPath(path)
	mc.logger.Debug("MainController", "project path chosen", map[string]interface{}{
		"path": path,
	})
}

// ShowTemplates lists the catalog
func (mc *MainController) ShowTemplates() {
	names := mc.catalog.Names()
	infos := make([]components.TemplateInfo, 0, len(names))
	for _, name := range names {
		t, err := mc.catalog.Get(name)
		if err != nil {
			continue
		}
		infos = append(infos, components.TemplateInfo{
			Name:    t.Name,
			PyFiles: len(t.PyFiles),
			KvFiles: len(t.KvFiles),
			Usable:  t.HasClasses(),
		})
	}
	mc.mainView.ShowTemplates(infos, mc.catalog.Selected())
}

// SelectTemplate makes name the template for new projects and returns
// to the form
func (mc *MainController) SelectTemplate(name string) {
	if err := mc.catalog.Select(name); err != nil {
		mc.handleError("Template selection failed", err)
		return
	}

	mc.mainView.SetTemplate(name)
	mc.mainView.ShowDetails()
	mc.mainView.UpdateStatus(fmt.Sprintf("Template %s selected", name))
}

// BackToDetails returns to the form without changing the template
func (mc *MainController) BackToDetails() {
	mc.mainView.ShowDetails()
}

// handleError handles application errors with consistent UI feedback.
// Validation problems become warnings; anything else is logged and
// shown as an error.
func (mc *MainController) handleError(title string, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		mc.logger.Debug("MainController", "validation failed", map[string]interface{}{
			"kind":  ve.Kind.String(),
			"title": ve.Title,
		})
		mc.mainView.ShowWarning(ve.Title, ve.Detail)
		return
	}

	mc.logger.Error("MainController", err, map[string]interface{}{
		"context": title,
	})
	mc.mainView.ShowError(title, err)
}

// Wait blocks until background creations have finished
func (mc *MainController) Wait() {
	mc.wg.Wait()
}

// Shutdown cancels a running creation and waits for it to roll back
func (mc *MainController) Shutdown() {
	mc.cancel()
	mc.wg.Wait()
}
