package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"project-creator/internal/logger"
	"project-creator/internal/models"
	"project-creator/internal/scaffold"

	"github.com/dustin/go-humanize"
)

// Files and folders the base template is expected to contain
const (
	ProjectEntryFile = "project_name.py"
	HotReloaderFile  = "hotreloader.py"
	GitignoreFile    = ".gitignore"
	ReadmeFile       = "README.md"
	LicenseFile      = "LICENSE"
)

var (
	baseclassDir = filepath.Join("libs", "uix", "baseclass")
	kvDir        = filepath.Join("libs", "uix", "kv")

	substitutedExtensions = []string{".py", ".spec"}
)

// ErrCreationInProgress is returned when a second creation is requested
// before the first one finished
var ErrCreationInProgress = errors.New("a project is already being created")

// Resources locates the folders a project is assembled from
type Resources struct {
	BaseTemplate string
	Templates    string
	Misc         string
}

// ProgressFunc receives stage updates during creation
type ProgressFunc func(stage string, progress float64)

// ProjectService turns validated project details into a project on disk
type ProjectService struct {
	resources Resources
	catalog   *models.TemplateCatalog
	state     *models.CreationStateRepository
	logger    logger.Logger
	now       func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(
	resources Resources,
	catalog *models.TemplateCatalog,
	state *models.CreationStateRepository,
	log logger.Logger,
) *ProjectService {
	return &ProjectService{
		resources: resources,
		catalog:   catalog,
		state:     state,
		logger:    log,
		now:       time.Now,
	}
}

// Validate normalizes details and runs the form checks in order:
// required fields, forbidden name characters, parent folder present,
// destination absent. It returns the normalized details and the
// destination path.
func (ps *ProjectService) Validate(details models.ProjectDetails) (models.ProjectDetails, string, error) {
	details = details.Normalized()

	if err := details.CheckRequired(); err != nil {
		return details, "", err
	}
	if err := details.CheckName(); err != nil {
		return details, "", err
	}

	parentExists, err := scaffold.Exists(details.ProjectPath)
	if err != nil {
		return details, "", fmt.Errorf("failed to check project path: %w", err)
	}
	if !parentExists {
		return details, "", models.SourcePathMissingError(details.ProjectPath)
	}

	dest := filepath.Join(details.ProjectPath, details.ProjectName)
	destExists, err := scaffold.Exists(dest)
	if err != nil {
		return details, "", fmt.Errorf("failed to check destination: %w", err)
	}
	if destExists {
		return details, "", models.DestinationExistsError(details.LowerName(), details.ProjectPath)
	}

	if err := details.Theme.Validate(); err != nil {
		return details, "", fmt.Errorf("invalid theme: %w", err)
	}

	return details, dest, nil
}

// CreateProject validates details and writes the new project. If any
// step after the destination folder was created fails, the folder is
// removed again.
func (ps *ProjectService) CreateProject(ctx context.Context, details models.ProjectDetails, progress ProgressFunc) (*models.CreationResult, error) {
	details, dest, err := ps.Validate(details)
	if err != nil {
		return nil, err
	}

	if details.Template == "" {
		details.Template = ps.catalog.Selected()
	}
	tmpl, err := ps.catalog.Get(details.Template)
	if err != nil {
		return nil, err
	}
	if !tmpl.HasClasses() {
		return nil, fmt.Errorf("template %q has no entry in %s", tmpl.Name, ClassesFile)
	}

	if !ps.state.Start(details.ProjectName) {
		return nil, ErrCreationInProgress
	}

	report := func(stage string, p float64) {
		ps.state.UpdateProgress(stage, p)
		if progress != nil {
			progress(stage, p)
		}
	}

	start := ps.now()
	ps.logger.Info("ProjectService", "creating project", map[string]interface{}{
		"project":     details.ProjectName,
		"destination": dest,
		"template":    tmpl.Name,
	})

	result, err := ps.build(ctx, details, tmpl, dest, report)
	if err != nil {
		// a destination that appeared after validation is not ours to remove
		if !errors.Is(err, scaffold.ErrDestinationExists) {
			ps.rollback(dest)
		}
		ps.state.Fail("Failed")
		ps.logger.Error("ProjectService", err, map[string]interface{}{
			"project": details.ProjectName,
		})
		return nil, err
	}

	result.Duration = ps.now().Sub(start)
	ps.state.Complete(result)
	report("Complete", 1.0)

	ps.logger.Info("ProjectService", "project created", map[string]interface{}{
		"project":      result.ProjectName,
		"files_copied": result.FilesCopied,
		"files_edited": result.FilesEdited,
		"size":         humanize.Bytes(uint64(result.BytesWritten)),
		"duration_ms":  result.Duration.Milliseconds(),
	})

	return result, nil
}

func (ps *ProjectService) rollback(dest string) {
	if err := os.RemoveAll(dest); err != nil {
		ps.logger.Error("ProjectService", err, map[string]interface{}{
			"stage":       "rollback",
			"destination": dest,
		})
		return
	}
	ps.logger.Warning("ProjectService", "partial project removed", map[string]interface{}{
		"destination": dest,
	})
}

func (ps *ProjectService) build(
	ctx context.Context,
	details models.ProjectDetails,
	tmpl models.Template,
	dest string,
	report ProgressFunc,
) (*models.CreationResult, error) {
	result := &models.CreationResult{
		ProjectName: details.ProjectName,
		Destination: dest,
		Template:    tmpl.Name,
	}
	lowerName := details.LowerName()

	report("Copying template", 0.1)
	stats, err := scaffold.CopyTree(ctx, ps.resources.BaseTemplate, dest)
	if err != nil {
		return nil, err
	}

	report("Renaming entry point", 0.35)
	if err := os.Rename(
		filepath.Join(dest, ProjectEntryFile),
		filepath.Join(dest, lowerName+".py"),
	); err != nil {
		return nil, fmt.Errorf("rename entry point: %w", err)
	}

	report("Copying screen files", 0.45)
	extra, err := copyAll(ctx, tmpl.PyFiles, filepath.Join(dest, baseclassDir))
	if err != nil {
		return nil, err
	}
	stats.Add(extra)
	extra, err = copyAll(ctx, tmpl.KvFiles, filepath.Join(dest, kvDir))
	if err != nil {
		return nil, err
	}
	stats.Add(extra)

	report("Substituting placeholders", 0.6)
	files, err := scaffold.FindFiles(dest, substitutedExtensions)
	if err != nil {
		return nil, err
	}
	values := Placeholders(details)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		changed, err := scaffold.EditFile(file, values)
		if err != nil {
			return nil, err
		}
		if changed {
			result.FilesEdited++
		}
	}

	report("Writing class mapping", 0.8)
	literal, err := scaffold.PythonLiteral(tmpl.Classes)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", tmpl.Name, err)
	}
	changed, err := scaffold.EditFile(filepath.Join(dest, HotReloaderFile), scaffold.Replacements{
		{Token: "CLASSES", Value: "CLASSES = " + literal},
	})
	if err != nil {
		return nil, err
	}
	if changed {
		result.FilesEdited++
	}

	report("Adding extra files", 0.9)
	misc, edited, err := ps.copyMiscFiles(details, dest)
	if err != nil {
		return nil, err
	}
	stats.Add(misc)
	result.FilesEdited += edited

	result.FilesCopied = stats.Files
	result.BytesWritten = stats.Bytes
	return result, nil
}

func (ps *ProjectService) copyMiscFiles(details models.ProjectDetails, dest string) (scaffold.Stats, int, error) {
	var stats scaffold.Stats
	edited := 0

	type miscFile struct {
		enabled bool
		name    string
		values  scaffold.Replacements
	}
	files := []miscFile{
		{details.Extras.Gitignore, GitignoreFile, nil},
		{details.Extras.Readme, ReadmeFile, scaffold.Replacements{
			{Token: "PROJECT_NAME", Value: details.ProjectName},
		}},
		{details.Extras.License, LicenseFile, scaffold.Replacements{
			{Token: "YEAR", Value: strconv.Itoa(ps.now().Year())},
			{Token: "COPYRIGHT_HOLDER", Value: details.AuthorName},
		}},
	}

	for _, f := range files {
		if !f.enabled {
			continue
		}
		path, n, err := scaffold.CopyInto(filepath.Join(ps.resources.Misc, f.name), dest)
		if err != nil {
			return stats, edited, fmt.Errorf("copy %s: %w", f.name, err)
		}
		stats.Files++
		stats.Bytes += n

		if len(f.values) == 0 {
			continue
		}
		changed, err := scaffold.EditFile(path, f.values)
		if err != nil {
			return stats, edited, err
		}
		if changed {
			edited++
		}
	}
	return stats, edited, nil
}

func copyAll(ctx context.Context, files []string, dir string) (scaffold.Stats, error) {
	var stats scaffold.Stats
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		_, n, err := scaffold.CopyInto(file, dir)
		if err != nil {
			return stats, fmt.Errorf("copy %s: %w", filepath.Base(file), err)
		}
		stats.Files++
		stats.Bytes += n
	}
	return stats, nil
}

// Placeholders returns the ordered token list applied to .py and .spec files
func Placeholders(details models.ProjectDetails) scaffold.Replacements {
	return scaffold.Replacements{
		{Token: "APPLICATION_TITLE", Value: details.ApplicationTitle},
		{Token: "PROJECT_NAME", Value: details.ProjectName},
		{Token: "project_name", Value: details.LowerName()},
		{Token: "APPLICATION_VERSION", Value: details.ApplicationVersion},
		{Token: "AUTHOR_NAME", Value: details.AuthorName},
		{Token: "PRIMARY_PALETTE", Value: details.Theme.PrimaryPalette},
		{Token: "PRIMARY_HUE", Value: details.Theme.PrimaryHue},
		{Token: "ACCENT_PALETTE", Value: details.Theme.AccentPalette},
		{Token: "ACCENT_HUE", Value: details.Theme.AccentHue},
		{Token: "THEME_STYLE", Value: details.Theme.ThemeStyle},
	}
}

// IsBusy reports whether a creation is running
func (ps *ProjectService) IsBusy() bool {
	return ps.state.IsActive()
}

// LastResult returns the latest successful creation, or nil
func (ps *ProjectService) LastResult() *models.CreationResult {
	return ps.state.LastResult()
}

// Summary formats a result for status bars and CLI output
func Summary(r *models.CreationResult) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%s: %d files, %s in %s",
		r.Destination, r.FilesCopied, humanize.Bytes(uint64(r.BytesWritten)), r.Duration.Round(time.Millisecond))
}
