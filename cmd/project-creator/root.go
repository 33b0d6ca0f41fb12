package main

import (
	"fmt"
	"io"
	"os"

	"project-creator/internal/config"
	"project-creator/internal/logger"
	"project-creator/internal/models"
	"project-creator/internal/services"

	"github.com/spf13/cobra"
)

// runtimeEnv is what every command needs once flags are parsed
type runtimeEnv struct {
	cfg        *config.Config
	configPath string
	log        *logger.ZerologAdapter
	resources  services.Resources
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "project-creator",
		Short:         "Create Kivy application projects from templates",
		Long:          "Opens the project creator window. Use the create sub-command to scaffold a project without the GUI.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, os.Stdout)
			if err != nil {
				return err
			}
			defer rt.log.Shutdown()
			return runGUI(rt)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default is <user config dir>/project-creator/config.yaml)")
	config.RegisterFlags(flags)

	cmd.AddCommand(
		newCreateCmd(),
		newTemplatesCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the layered configuration and builds the logger.
// Console logs go to console; pass nil to log only to the file.
func setup(cmd *cobra.Command, console io.Writer) (*runtimeEnv, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.NewFromOptions(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Console:    console,
	})
	if err != nil {
		return nil, err
	}

	paths := cfg.ResolvePaths()
	return &runtimeEnv{
		cfg:        cfg,
		configPath: path,
		log:        log,
		resources: services.Resources{
			BaseTemplate: paths.BaseTemplate,
			Templates:    paths.Templates,
			Misc:         paths.Misc,
		},
	}, nil
}

// loadCatalog reads the template catalog from the configured resources
func (rt *runtimeEnv) loadCatalog() (*models.TemplateCatalog, error) {
	catalog, err := services.NewTemplateService(rt.resources, rt.log).LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return catalog, nil
}
