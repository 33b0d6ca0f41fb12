package main

import (
	"fmt"
	"runtime"

	"project-creator/internal/models"
	"project-creator/internal/services"
	"project-creator/internal/shutdown"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project without opening the window",
		Args:  cobra.NoArgs,
		RunE:  runCreate,
	}

	defaults := models.DefaultTheme()
	flags := cmd.Flags()
	flags.String("title", "", "application title")
	flags.String("name", "", "project name, also the folder name")
	flags.String("version", "1.0.0", "application version")
	flags.String("author", "", "author name")
	flags.String("path", "", "folder the project is created in")
	flags.String("template", "", "screen template (default is the first in the catalog)")
	flags.String("primary-palette", defaults.PrimaryPalette, "primary palette")
	flags.String("primary-hue", defaults.PrimaryHue, "primary hue")
	flags.String("accent-palette", defaults.AccentPalette, "accent palette")
	flags.String("accent-hue", defaults.AccentHue, "accent hue")
	flags.String("theme-style", defaults.ThemeStyle, "Light or Dark")
	flags.Bool("gitignore", false, "add a .gitignore")
	flags.Bool("readme", false, "add a README.md")
	flags.Bool("license", false, "add a LICENSE")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer rt.log.Shutdown()

	catalog, err := rt.loadCatalog()
	if err != nil {
		return err
	}

	details := detailsFromFlags(cmd)
	if details.Template != "" {
		if err := catalog.Select(details.Template); err != nil {
			return err
		}
	}

	mgr := shutdown.NewManager(cmd.Context(), rt.log)
	mgr.Listen(nil)
	defer mgr.Shutdown()

	ps := services.NewProjectService(rt.resources, catalog, models.NewCreationStateRepository(), rt.log)
	result, err := ps.CreateProject(mgr.Context(), details, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, models.SuccessMessage(result.ProjectName))
	fmt.Fprintln(out, services.Summary(result))
	return nil
}

func detailsFromFlags(cmd *cobra.Command) models.ProjectDetails {
	flags := cmd.Flags()
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	on := func(name string) bool {
		v, _ := flags.GetBool(name)
		return v
	}

	return models.ProjectDetails{
		ApplicationTitle:   str("title"),
		ProjectName:        str("name"),
		ApplicationVersion: str("version"),
		ProjectPath:        str("path"),
		AuthorName:         str("author"),
		Theme: models.ThemeSelection{
			PrimaryPalette: str("primary-palette"),
			PrimaryHue:     str("primary-hue"),
			AccentPalette:  str("accent-palette"),
			AccentHue:      str("accent-hue"),
			ThemeStyle:     str("theme-style"),
		},
		Extras: models.Extras{
			Gitignore: on("gitignore"),
			Readme:    on("readme"),
			License:   on("license"),
		},
		Template: str("template"),
	}
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Short:   "List the available screen templates",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.log.Shutdown()

			catalog, err := rt.loadCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range catalog.Names() {
				t, err := catalog.Get(name)
				if err != nil {
					return err
				}
				marker := " "
				if name == catalog.Selected() {
					marker = "*"
				}
				note := ""
				if !t.HasClasses() {
					note = " (no class mapping)"
				}
				fmt.Fprintf(out, "%s %s\t%d py, %d kv%s\n", marker, name, len(t.PyFiles), len(t.KvFiles), note)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", AppName, AppVersion, runtime.Version())
		},
	}
}
