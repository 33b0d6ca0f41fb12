package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Template is one selectable screen template from the catalog
type Template struct {
	Name    string
	PyFiles []string
	KvFiles []string
	// Classes is the raw classes.json entry for this template
	Classes json.RawMessage
}

// HasClasses reports whether classes.json defined this template
func (t Template) HasClasses() bool {
	return len(t.Classes) > 0
}

// TemplateCatalog holds the loaded templates and the current selection
type TemplateCatalog struct {
	mu        sync.RWMutex
	templates map[string]Template
	selected  string
}

// NewTemplateCatalog creates a catalog from the given templates.
// The first template in name order becomes the selection.
func NewTemplateCatalog(templates []Template) *TemplateCatalog {
	tc := &TemplateCatalog{
		templates: make(map[string]Template, len(templates)),
	}
	for _, t := range templates {
		tc.templates[t.Name] = t
	}
	if names := tc.Names(); len(names) > 0 {
		tc.selected = names[0]
	}
	return tc
}

// Names returns all template names sorted alphabetically
func (tc *TemplateCatalog) Names() []string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	names := make([]string, 0, len(tc.templates))
	for name := range tc.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named template
func (tc *TemplateCatalog) Get(name string) (Template, error) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	t, ok := tc.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q", name)
	}
	return t, nil
}

// Selected returns the currently selected template name
func (tc *TemplateCatalog) Selected() string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.selected
}

// Select changes the current template
func (tc *TemplateCatalog) Select(name string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if _, ok := tc.templates[name]; !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	tc.selected = name
	return nil
}

// Len returns the number of templates
func (tc *TemplateCatalog) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.templates)
}
