package config

import (
	"github.com/Masterminds/semver/v3"
)

// Config is the resolved, immutable configuration for one command invocation.
// It is rebuilt from the project settings on every run; nothing here persists.
type Config struct {
	VersionStr string
	Version    *semver.Version

	Platform string
	Arch     string

	CLIPath     string
	DownloadURL string

	DistCSS     string
	DistCSSBase string

	// SrcCSS is empty for Tailwind CSS < 4.0.0 unless explicitly configured.
	SrcCSS string
	// ConfigFile is only set for Tailwind CSS < 4.0.0.
	ConfigFile string

	// OverwriteDefault marks SrcCSS as the stock default path, which the
	// bootstrap is allowed to rewrite when its content drifts.
	OverwriteDefault bool

	AutomaticDownload bool
	UseDaisyUI        bool

	BaseDir      string
	StaticDirs   []string
	TemplateDirs []string
	AppDirs      []string

	ServerCommand     []string
	ServerPlusCommand []string
}

// BuildCmd returns the argv for a one-shot minified production build.
func (c Config) BuildCmd() []string {
	result := []string{
		c.CLIPath,
		"--output", c.DistCSS,
		"--minify",
	}
	return c.appendInput(result)
}

// WatchCmd returns the argv for the CLI's watch mode.
func (c Config) WatchCmd() []string {
	result := []string{
		c.CLIPath,
		"--output", c.DistCSS,
		"--watch",
	}
	return c.appendInput(result)
}

func (c Config) appendInput(argv []string) []string {
	if c.SrcCSS != "" {
		argv = append(argv, "--input", c.SrcCSS)
	}
	if c.ConfigFile != "" {
		argv = append(argv, "--config", c.ConfigFile)
	}
	return argv
}
