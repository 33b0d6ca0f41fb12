package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"project-creator/internal/logger"
	"project-creator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// newResources lays out a minimal base template, two screen templates
// and the misc folder
func newResources(t *testing.T) Resources {
	t.Helper()
	root := t.TempDir()
	res := Resources{
		BaseTemplate: filepath.Join(root, "base_template"),
		Templates:    filepath.Join(root, "templates"),
		Misc:         filepath.Join(root, "misc"),
	}

	writeFile(t, filepath.Join(res.BaseTemplate, ProjectEntryFile),
		"from libs.project_name import PROJECT_NAME\n"+
			"title = \"APPLICATION_TITLE\"\n"+
			"version = \"APPLICATION_VERSION\"\n"+
			"theme = (\"PRIMARY_PALETTE\", \"PRIMARY_HUE\", \"ACCENT_PALETTE\", \"ACCENT_HUE\", \"THEME_STYLE\")\n")
	writeFile(t, filepath.Join(res.BaseTemplate, HotReloaderFile), "CLASSES\nAUTHOR = \"AUTHOR_NAME\"\n")
	writeFile(t, filepath.Join(res.BaseTemplate, "project.spec"), "name='project_name'\n")
	writeFile(t, filepath.Join(res.BaseTemplate, "libs", "uix", "kv", "root.kv"), "# PROJECT_NAME stays\n")
	require.NoError(t, os.MkdirAll(filepath.Join(res.BaseTemplate, "libs", "uix", "baseclass"), 0o755))

	writeFile(t, filepath.Join(res.Templates, "Blank", "home_screen.py"), "class HomeScreen: # AUTHOR_NAME\n    pass\n")
	writeFile(t, filepath.Join(res.Templates, "Blank", "home_screen.kv"), "<HomeScreen>:\n")
	require.NoError(t, os.MkdirAll(filepath.Join(res.Templates, "Orphan"), 0o755))
	writeFile(t, filepath.Join(res.Templates, ClassesFile),
		`{"Blank": {"HomeScreen": "libs.uix.baseclass.home_screen"}, "Remote": ["A", "B"]}`)

	writeFile(t, filepath.Join(res.Misc, GitignoreFile), "__pycache__/\n")
	writeFile(t, filepath.Join(res.Misc, ReadmeFile), "# PROJECT_NAME\n")
	writeFile(t, filepath.Join(res.Misc, LicenseFile), "Copyright (c) YEAR COPYRIGHT_HOLDER\n")

	return res
}

func newProjectService(t *testing.T, res Resources) (*ProjectService, *models.TemplateCatalog) {
	t.Helper()
	catalog, err := NewTemplateService(res, logger.NoOpLogger{}).LoadCatalog()
	require.NoError(t, err)

	ps := NewProjectService(res, catalog, models.NewCreationStateRepository(), logger.NoOpLogger{})
	ps.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return ps, catalog
}

func validDetails(parent string) models.ProjectDetails {
	return models.ProjectDetails{
		ApplicationTitle:   "  My App  ",
		ProjectName:        "MyApp",
		ApplicationVersion: "1.0.0",
		ProjectPath:        parent,
		AuthorName:         "Ada Lovelace",
		Theme: models.ThemeSelection{
			PrimaryPalette: "Teal",
			PrimaryHue:     "700",
			AccentPalette:  "Pink",
			AccentHue:      "A200",
			ThemeStyle:     "Dark",
		},
		Extras:   models.Extras{Gitignore: true, Readme: true, License: true},
		Template: "Blank",
	}
}

func TestLoadCatalog(t *testing.T) {
	res := newResources(t)
	catalog, err := NewTemplateService(res, logger.NoOpLogger{}).LoadCatalog()
	require.NoError(t, err)

	assert.Equal(t, []string{"Blank", "Orphan", "Remote"}, catalog.Names())
	assert.Equal(t, "Blank", catalog.Selected())

	blank, err := catalog.Get("Blank")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(res.Templates, "Blank", "home_screen.py")}, blank.PyFiles)
	assert.Equal(t, []string{filepath.Join(res.Templates, "Blank", "home_screen.kv")}, blank.KvFiles)
	assert.True(t, blank.HasClasses())

	orphan, err := catalog.Get("Orphan")
	require.NoError(t, err)
	assert.False(t, orphan.HasClasses())

	remote, err := catalog.Get("Remote")
	require.NoError(t, err)
	assert.Empty(t, remote.PyFiles)
	assert.True(t, remote.HasClasses())
}

func TestLoadCatalogSkipsNestedBaseTemplate(t *testing.T) {
	res := newResources(t)
	res.BaseTemplate = filepath.Join(res.Templates, "base_template")
	writeFile(t, filepath.Join(res.BaseTemplate, ProjectEntryFile), "pass\n")

	catalog, err := NewTemplateService(res, logger.NoOpLogger{}).LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"Blank", "Orphan", "Remote"}, catalog.Names())

	_, err = catalog.Get("base_template")
	assert.Error(t, err)
}

func TestLoadCatalogBadClassesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ClassesFile), "{not json")

	_, err := NewTemplateService(Resources{Templates: dir}, logger.NoOpLogger{}).LoadCatalog()
	assert.Error(t, err)
}

func TestCreateProject(t *testing.T) {
	res := newResources(t)
	ps, _ := newProjectService(t, res)
	parent := t.TempDir()

	var stages []string
	result, err := ps.CreateProject(context.Background(), validDetails(parent), func(stage string, _ float64) {
		stages = append(stages, stage)
	})
	require.NoError(t, err)

	dest := filepath.Join(parent, "MyApp")
	assert.Equal(t, dest, result.Destination)
	assert.Equal(t, "Blank", result.Template)
	assert.Equal(t, "Complete", stages[len(stages)-1])

	assert.NoFileExists(t, filepath.Join(dest, ProjectEntryFile))
	entry := readFile(t, filepath.Join(dest, "myapp.py"))
	assert.Equal(t,
		"from libs.myapp import MyApp\n"+
			"title = \"My App\"\n"+
			"version = \"1.0.0\"\n"+
			"theme = (\"Teal\", \"700\", \"Pink\", \"A200\", \"Dark\")\n",
		entry)

	assert.Equal(t,
		"CLASSES = {'HomeScreen': 'libs.uix.baseclass.home_screen'}\nAUTHOR = \"Ada Lovelace\"\n",
		readFile(t, filepath.Join(dest, HotReloaderFile)))
	assert.Equal(t, "name='myapp'\n", readFile(t, filepath.Join(dest, "project.spec")))

	// .kv files are copied but not substituted
	assert.Equal(t, "# PROJECT_NAME stays\n", readFile(t, filepath.Join(dest, "libs", "uix", "kv", "root.kv")))
	assert.Equal(t, "<HomeScreen>:\n", readFile(t, filepath.Join(dest, "libs", "uix", "kv", "home_screen.kv")))
	assert.Equal(t, "class HomeScreen: # Ada Lovelace\n    pass\n",
		readFile(t, filepath.Join(dest, "libs", "uix", "baseclass", "home_screen.py")))

	assert.Equal(t, "__pycache__/\n", readFile(t, filepath.Join(dest, GitignoreFile)))
	assert.Equal(t, "# MyApp\n", readFile(t, filepath.Join(dest, ReadmeFile)))
	assert.Equal(t, "Copyright (c) 2026 Ada Lovelace\n", readFile(t, filepath.Join(dest, LicenseFile)))

	assert.Equal(t, 9, result.FilesCopied)
	assert.Equal(t, 7, result.FilesEdited)
	assert.Same(t, result, ps.LastResult())
	assert.False(t, ps.IsBusy())
	assert.Contains(t, Summary(result), dest)
}

func TestCreateProjectWithoutExtras(t *testing.T) {
	res := newResources(t)
	ps, _ := newProjectService(t, res)
	parent := t.TempDir()

	details := validDetails(parent)
	details.Extras = models.Extras{}
	_, err := ps.CreateProject(context.Background(), details, nil)
	require.NoError(t, err)

	dest := filepath.Join(parent, "MyApp")
	assert.NoFileExists(t, filepath.Join(dest, GitignoreFile))
	assert.NoFileExists(t, filepath.Join(dest, ReadmeFile))
	assert.NoFileExists(t, filepath.Join(dest, LicenseFile))
}

func TestCreateProjectDefaultsToSelectedTemplate(t *testing.T) {
	res := newResources(t)
	ps, catalog := newProjectService(t, res)
	require.NoError(t, catalog.Select("Remote"))
	parent := t.TempDir()

	details := validDetails(parent)
	details.Template = ""
	result, err := ps.CreateProject(context.Background(), details, nil)
	require.NoError(t, err)

	assert.Equal(t, "Remote", result.Template)
	assert.True(t, strings.HasPrefix(readFile(t, filepath.Join(parent, "MyApp", HotReloaderFile)), "CLASSES = ['A', 'B']\n"))
}

func TestValidateOrder(t *testing.T) {
	res := newResources(t)
	ps, _ := newProjectService(t, res)
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "Taken"), 0o755))

	tests := []struct {
		name    string
		mutate  func(d *models.ProjectDetails)
		kind    models.ValidationKind
		message string
	}{
		{
			name:    "blank field",
			mutate:  func(d *models.ProjectDetails) { d.AuthorName = "   " },
			kind:    models.MissingFields,
			message: "Please Fill Up All the Fields!",
		},
		{
			name:    "missing beats forbidden",
			mutate:  func(d *models.ProjectDetails) { d.ProjectName = "a b"; d.ApplicationVersion = "" },
			kind:    models.MissingFields,
			message: "Please Fill Up All the Fields!",
		},
		{
			name:    "forbidden characters echoed",
			mutate:  func(d *models.ProjectDetails) { d.ProjectName = "my-app v2!" },
			kind:    models.ForbiddenCharacters,
			message: "Please Don't Use '!- ' in Project Name",
		},
		{
			name:    "parent missing",
			mutate:  func(d *models.ProjectDetails) { d.ProjectPath = filepath.Join(parent, "nope") },
			kind:    models.SourcePathMissing,
			message: "Folder Path not Exists!",
		},
		{
			name:    "destination exists",
			mutate:  func(d *models.ProjectDetails) { d.ProjectName = "Taken" },
			kind:    models.DestinationExists,
			message: "Folder Named taken is Already Exists! in '" + parent + "'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails(parent)
			tt.mutate(&d)

			_, err := ps.CreateProject(context.Background(), d, nil)
			require.Error(t, err)

			var ve *models.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.kind, ve.Kind)
			assert.Equal(t, tt.message, ve.Title)
		})
	}
}

func TestCreateProjectUnknownTheme(t *testing.T) {
	res := newResources(t)
	ps, _ := newProjectService(t, res)

	d := validDetails(t.TempDir())
	d.Theme.AccentHue = "450"
	_, err := ps.CreateProject(context.Background(), d, nil)
	require.Error(t, err)
	assert.False(t, models.IsValidationError(err))
}

func TestCreateProjectTemplateWithoutClasses(t *testing.T) {
	res := newResources(t)
	ps, _ := newProjectService(t, res)
	parent := t.TempDir()

	d := validDetails(parent)
	d.Template = "Orphan"
	_, err := ps.CreateProject(context.Background(), d, nil)
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(parent, "MyApp"))
}

func TestCreateProjectRollsBackOnFailure(t *testing.T) {
	res := newResources(t)
	require.NoError(t, os.Remove(filepath.Join(res.Misc, LicenseFile)))
	ps, _ := newProjectService(t, res)
	parent := t.TempDir()

	_, err := ps.CreateProject(context.Background(), validDetails(parent), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), LicenseFile)
	assert.NoDirExists(t, filepath.Join(parent, "MyApp"))
	assert.False(t, ps.IsBusy())
	assert.Nil(t, ps.LastResult())
}

func TestCreateProjectMissingEntryPoint(t *testing.T) {
	res := newResources(t)
	require.NoError(t, os.Remove(filepath.Join(res.BaseTemplate, ProjectEntryFile)))
	ps, _ := newProjectService(t, res)
	parent := t.TempDir()

	_, err := ps.CreateProject(context.Background(), validDetails(parent), nil)
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(parent, "MyApp"))
}

func TestCreateProjectCancelled(t *testing.T) {
	res := newResources(t)
	ps, _ := newProjectService(t, res)
	parent := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ps.CreateProject(ctx, validDetails(parent), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, filepath.Join(parent, "MyApp"))
}

func TestCreateProjectRejectsConcurrentRun(t *testing.T) {
	res := newResources(t)
	ps, _ := newProjectService(t, res)
	parent := t.TempDir()

	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := ps.CreateProject(context.Background(), validDetails(parent), func(string, float64) {
			once.Do(func() {
				close(started)
				<-release
			})
		})
		assert.NoError(t, err)
	}()

	<-started
	d := validDetails(parent)
	d.ProjectName = "Second"
	_, err := ps.CreateProject(context.Background(), d, nil)
	assert.ErrorIs(t, err, ErrCreationInProgress)

	close(release)
	wg.Wait()
}

func TestPlaceholdersOrder(t *testing.T) {
	p := Placeholders(validDetails("/tmp").Normalized())
	require.Len(t, p, 10)
	assert.Equal(t, "APPLICATION_TITLE", p[0].Token)
	assert.Equal(t, "My App", p[0].Value)
	assert.Equal(t, "PROJECT_NAME", p[1].Token)
	assert.Equal(t, "project_name", p[2].Token)
	assert.Equal(t, "myapp", p[2].Value)
	assert.Equal(t, "THEME_STYLE", p[9].Token)
}
