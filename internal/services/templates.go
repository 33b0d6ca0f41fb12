package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"project-creator/internal/logger"
	"project-creator/internal/models"
	"project-creator/internal/scaffold"
)

// ClassesFile is the class-mapping file inside the templates folder
const ClassesFile = "classes.json"

// TemplateService discovers the screen templates available on disk
type TemplateService struct {
	templatesDir    string
	baseTemplateDir string
	logger          logger.Logger
}

// NewTemplateService creates a template service reading res.Templates.
// res.BaseTemplate is never listed, even when it lives inside the
// templates folder.
func NewTemplateService(res Resources, log logger.Logger) *TemplateService {
	return &TemplateService{
		templatesDir:    res.Templates,
		baseTemplateDir: res.BaseTemplate,
		logger:          log,
	}
}

// LoadCatalog reads classes.json and every template sub-folder.
// Folders without a classes.json entry and entries without a folder are
// both listed; the former cannot be used for creation.
func (ts *TemplateService) LoadCatalog() (*models.TemplateCatalog, error) {
	classes, err := ts.readClasses()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(ts.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates folder: %w", err)
	}

	byName := make(map[string]models.Template)
	for _, entry := range entries {
		if !entry.IsDir() || ts.isBaseTemplate(entry.Name()) {
			continue
		}
		t, err := ts.loadTemplate(entry.Name())
		if err != nil {
			return nil, err
		}
		t.Classes = classes[entry.Name()]
		byName[t.Name] = t
	}

	for name, raw := range classes {
		if _, ok := byName[name]; !ok {
			byName[name] = models.Template{Name: name, Classes: raw}
		}
	}

	templates := make([]models.Template, 0, len(byName))
	for _, t := range byName {
		if !t.HasClasses() {
			ts.logger.Warning("TemplateService", "template has no class mapping", map[string]interface{}{
				"template": t.Name,
			})
		}
		templates = append(templates, t)
	}

	ts.logger.Debug("TemplateService", "catalog loaded", map[string]interface{}{
		"dir":       ts.templatesDir,
		"templates": len(templates),
	})

	return models.NewTemplateCatalog(templates), nil
}

func (ts *TemplateService) isBaseTemplate(name string) bool {
	if ts.baseTemplateDir == "" {
		return false
	}
	return samePath(filepath.Join(ts.templatesDir, name), ts.baseTemplateDir)
}

func samePath(a, b string) bool {
	return resolvePath(a) == resolvePath(b)
}

func resolvePath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return filepath.Clean(p)
}

func (ts *TemplateService) readClasses() (map[string]json.RawMessage, error) {
	path := filepath.Join(ts.templatesDir, ClassesFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ClassesFile, err)
	}

	classes := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ClassesFile, err)
	}
	return classes, nil
}

func (ts *TemplateService) loadTemplate(name string) (models.Template, error) {
	dir := filepath.Join(ts.templatesDir, name)

	py, err := scaffold.FindFiles(dir, []string{".py"})
	if err != nil {
		return models.Template{}, err
	}
	kv, err := scaffold.FindFiles(dir, []string{".kv"})
	if err != nil {
		return models.Template{}, err
	}

	return models.Template{
		Name:    name,
		PyFiles: py,
		KvFiles: kv,
	}, nil
}
