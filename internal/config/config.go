package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"project-creator/internal/models"

	"github.com/caarlos0/env/v6"
	"github.com/natefinch/atomic"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "PROJECT_CREATOR_"

const (
	baseTemplateFolder = "base_template"
	templatesFolder    = "templates"
	miscFolder         = "misc"
)

// Config holds every setting the application reads at start-up
type Config struct {
	// ResourcesDir is the root holding base_template/, templates/ and misc/
	ResourcesDir    string `yaml:"resources_dir" env:"RESOURCES_DIR"`
	BaseTemplateDir string `yaml:"base_template_dir,omitempty" env:"BASE_TEMPLATE_DIR"`
	TemplatesDir    string `yaml:"templates_dir,omitempty" env:"TEMPLATES_DIR"`
	MiscDir         string `yaml:"misc_dir,omitempty" env:"MISC_DIR"`

	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile       string `yaml:"log_file,omitempty" env:"LOG_FILE"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb" env:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `yaml:"log_max_backups" env:"LOG_MAX_BACKUPS"`

	Preferences Preferences `yaml:"preferences"`
}

// Preferences are the form values remembered between sessions
type Preferences struct {
	AuthorName  string                `yaml:"author_name,omitempty"`
	ProjectPath string                `yaml:"project_path,omitempty"`
	Template    string                `yaml:"template,omitempty"`
	Theme       models.ThemeSelection `yaml:"theme"`
	Extras      models.Extras         `yaml:"extras"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ResourcesDir:  "assets",
		LogLevel:      "info",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		Preferences: Preferences{
			Theme: models.DefaultTheme(),
			Extras: models.Extras{
				Gitignore: true,
				Readme:    true,
				License:   true,
			},
		},
	}
}

// DefaultPath returns <user config dir>/project-creator/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "project-creator", "config.yaml"), nil
}

// Load builds the configuration from defaults, the YAML file at path
// and the environment, in that order. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := readFile(cfg, path); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Preferences.Theme.Validate(); err != nil {
		cfg.Preferences.Theme = models.DefaultTheme()
	}

	return cfg, nil
}

// readFile overlays the YAML file at path onto cfg
func readFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// RegisterFlags adds the command-line overrides to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("resources", "", "directory holding base_template, templates and misc")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-file", "", "write JSON logs to this file as well as the console")
}

// ApplyFlags copies every flag the user set on fs into c
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	overrides := []struct {
		name string
		dst  *string
	}{
		{"resources", &c.ResourcesDir},
		{"log-level", &c.LogLevel},
		{"log-file", &c.LogFile},
	}

	for _, o := range overrides {
		if fs.Lookup(o.name) == nil || !fs.Changed(o.name) {
			continue
		}
		v, err := fs.GetString(o.name)
		if err != nil {
			return fmt.Errorf("flag --%s: %w", o.name, err)
		}
		*o.dst = v
	}
	return nil
}

// Validate checks values that would otherwise fail later
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.ResourcesDir == "" && (c.BaseTemplateDir == "" || c.TemplatesDir == "" || c.MiscDir == "") {
		return errors.New("resources dir is not set")
	}
	return nil
}

// Paths are the resolved resource folders
type Paths struct {
	BaseTemplate string
	Templates    string
	Misc         string
}

// ResolvePaths fills in folders not set explicitly from ResourcesDir
func (c *Config) ResolvePaths() Paths {
	pick := func(explicit, folder string) string {
		if explicit != "" {
			return explicit
		}
		return filepath.Join(c.ResourcesDir, folder)
	}
	return Paths{
		BaseTemplate: pick(c.BaseTemplateDir, baseTemplateFolder),
		Templates:    pick(c.TemplatesDir, templatesFolder),
		Misc:         pick(c.MiscDir, miscFolder),
	}
}

// Save writes c to path atomically, creating parent directories
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Store gives thread-safe access to the loaded configuration and
// persists preference changes
type Store struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
}

// NewStore wraps cfg; an empty path disables saving
func NewStore(cfg *Config, path string) *Store {
	return &Store{cfg: cfg, path: path}
}

// Config returns a copy of the current configuration
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

// Preferences returns the remembered form values
func (s *Store) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Preferences
}

// SavePreferences records p and writes the config file
func (s *Store) SavePreferences(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Preferences = p
	if s.path == "" {
		return nil
	}

	// only preferences change on disk; env and flag overrides stay out of the file
	onDisk := Default()
	if err := readFile(onDisk, s.path); err != nil {
		return err
	}
	onDisk.Preferences = p
	return onDisk.Save(s.path)
}
