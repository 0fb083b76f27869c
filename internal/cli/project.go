package cli

import (
	"context"

	"tailwindcli/internal/config"
	"tailwindcli/internal/paths"
	"tailwindcli/internal/settings"
)

// project bundles everything a command needs: resolved paths, raw settings,
// and the derived configuration. It is rebuilt on every invocation.
type project struct {
	Paths    paths.ProjectPaths
	Settings settings.Settings
	Config   config.Config
}

// loadProject resolves the project root, reads the settings file, and builds
// the configuration. Validation errors surface immediately.
func loadProject(ctx context.Context) (project, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return project{}, err
	}

	s, err := settings.Load(pp.SettingsFile)
	if err != nil {
		return project{}, err
	}

	cfg, err := config.Resolve(ctx, pp.Root, s)
	if err != nil {
		return project{}, err
	}

	return project{Paths: pp, Settings: s, Config: cfg}, nil
}

// loadSettingsOnly skips configuration resolution for commands that do not
// need the CLI binary (and must not trigger a version lookup).
func loadSettingsOnly() (paths.ProjectPaths, settings.Settings, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return paths.ProjectPaths{}, settings.Settings{}, err
	}

	s, err := settings.Load(pp.SettingsFile)
	if err != nil {
		return paths.ProjectPaths{}, settings.Settings{}, err
	}
	return pp, s, nil
}
