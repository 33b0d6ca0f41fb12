package main

import (
	"context"
	"runtime"

	"project-creator/internal/config"
	"project-creator/internal/controllers"
	"project-creator/internal/logger"
	"project-creator/internal/models"
	"project-creator/internal/services"
	"project-creator/internal/shutdown"
	"project-creator/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// Application represents the main application using MVC architecture
type Application struct {
	// Core components
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	// MVC Components
	controller *controllers.MainController
	view       *views.MainView

	// Lifecycle management
	shutdown *shutdown.Manager
}

func runGUI(rt *runtimeEnv) error {
	catalog, err := rt.loadCatalog()
	if err != nil {
		return err
	}

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	mgr := shutdown.NewManager(context.Background(), rt.log)
	application := NewApplication(app.NewWithID(AppID), rt, catalog, mgr)
	mgr.Listen(func() {
		fyne.Do(application.fyneApp.Quit)
	})

	application.Run()
	return nil
}

// NewApplication creates and initializes the application using dependency injection
func NewApplication(fyneApp fyne.App, rt *runtimeEnv, catalog *models.TemplateCatalog, mgr *shutdown.Manager) *Application {
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(560, 760))
	window.CenterOnScreen()

	rt.log.Info("Application", "starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"config":     rt.configPath,
		"templates":  catalog.Len(),
		"log_level":  rt.cfg.LogLevel,
	})

	// Initialize repositories/models and services
	store := config.NewStore(rt.cfg, rt.configPath)
	stateRepo := models.NewCreationStateRepository()
	projectService := services.NewProjectService(rt.resources, catalog, stateRepo, rt.log)

	// Initialize MVC components
	controller := controllers.NewMainController(mgr.Context(), projectService, catalog, store, rt.log)
	view := views.NewMainView(window)
	controller.SetMainView(view)

	mgr.Register("logger", shutdown.ShutdownFunc(rt.log.Shutdown))
	mgr.Register("controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     rt.log,
		controller: controller,
		view:       view,
		shutdown:   mgr,
	}
	application.setupWindowEvents(projectService)

	return application
}

// Run shows the window and blocks until the application quits
func (a *Application) Run() {
	a.logger.Info("Application", "showing main window", nil)
	a.window.ShowAndRun()
	a.shutdown.Shutdown()
}

// setupWindowEvents asks for confirmation before closing while a
// project is being written
func (a *Application) setupWindowEvents(ps *services.ProjectService) {
	a.window.SetCloseIntercept(func() {
		if !ps.IsBusy() {
			a.window.Close()
			return
		}

		a.view.ShowConfirm(
			"Exit Application",
			"A project is still being created and will be removed. Exit anyway?",
			func(confirmed bool) {
				if confirmed {
					a.logger.Info("Application", "closing during creation", nil)
					a.window.Close()
				}
			},
		)
	})

	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
	})
}
