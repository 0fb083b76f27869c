package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"tailwindcli/internal/paths"
	"tailwindcli/internal/settings"
	"tailwindcli/internal/templates"
)

var listTemplatesVerbose bool

func newListTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-templates",
		Short: "List the template files Tailwind scans for classes",
		RunE:  runListTemplates,
	}

	cmd.Flags().BoolVarP(&listTemplatesVerbose, "verbose", "v", false, "Show scan statistics and skipped directories")

	return cmd
}

func runListTemplates(cmd *cobra.Command, _ []string) error {
	pp, s, err := loadSettingsOnly()
	if err != nil {
		return err
	}

	logger, closer := verboseLogger(cmd, pp, listTemplatesVerbose)
	if closer != nil {
		defer closer.Close()
	}

	appDirs, globalDirs := templateDirs(pp.Root, s)
	files, scanErrs := templates.List(appDirs, globalDirs)

	for _, file := range files {
		cmd.Println(file)
	}

	if listTemplatesVerbose {
		cmd.PrintErrf("Scanned %d directories, found %d template files.\n",
			len(appDirs)+len(globalDirs), len(files))
		for _, scanErr := range scanErrs {
			cmd.PrintErrf("Skipped %s\n", scanErr)
			if logger != nil {
				logger.Printf("skipped %s", scanErr)
			}
		}
	}
	return nil
}

// templateDirs derives the scan roots from the settings: each app directory
// contributes its templates/ subdirectory, the global directories are used
// as-is.
func templateDirs(root string, s settings.Settings) (appDirs, globalDirs []string) {
	for _, app := range s.AppDirs {
		appDirs = append(appDirs, filepath.Join(paths.ResolveAgainst(root, app), "templates"))
	}
	for _, dir := range s.TemplateDirs {
		globalDirs = append(globalDirs, paths.ResolveAgainst(root, dir))
	}
	return appDirs, globalDirs
}
