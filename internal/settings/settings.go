package settings

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied when the corresponding setting is absent.
const (
	DefaultVersion    = "latest"
	DefaultSrcRepo    = "tailwindlabs/tailwindcss"
	DefaultAssetName  = "tailwindcss"
	DefaultCLIPath    = "~/.local/bin"
	DefaultDistCSS    = "css/tailwind.css"
	DefaultSrcCSS     = "css/source.css"
	DefaultConfigFile = "tailwind.config.js"
)

// Settings holds the raw project settings read from tailwind.yaml. Pointer
// fields distinguish "absent" (defaults apply) from "explicitly empty" (a
// validation error for the settings that require a value).
type Settings struct {
	Version           string   `yaml:"version"`
	SrcRepo           *string  `yaml:"src_repo"`
	AssetName         *string  `yaml:"asset_name"`
	CLIPath           string   `yaml:"cli_path"`
	DistCSS           *string  `yaml:"dist_css"`
	SrcCSS            *string  `yaml:"src_css"`
	ConfigFile        *string  `yaml:"config_file"`
	AutomaticDownload *bool    `yaml:"automatic_download"`
	UseDaisyUI        bool     `yaml:"use_daisy_ui"`
	StaticDirs        []string `yaml:"static_dirs"`
	TemplateDirs      []string `yaml:"template_dirs"`
	AppDirs           []string `yaml:"app_dirs"`
	ServerCommand     []string `yaml:"server_command"`
	ServerPlusCommand []string `yaml:"server_plus_command"`
}

// Default returns the baseline settings.
func Default() Settings {
	return Settings{
		Version:           DefaultVersion,
		CLIPath:           DefaultCLIPath,
		ServerCommand:     []string{"python", "manage.py", "runserver"},
		ServerPlusCommand: []string{"python", "manage.py", "runserver_plus"},
	}
}

// Load reads the YAML settings from disk if the file exists, otherwise returns
// the default settings.
func Load(path string) (Settings, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(contents, &s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	s.ApplyDefaults()
	return s, nil
}

// ApplyDefaults restores simple defaults for fields the YAML left empty.
// Pointer fields are deliberately untouched so the resolver can tell absent
// and explicitly empty apart.
func (s *Settings) ApplyDefaults() {
	defaults := Default()

	if s.Version == "" {
		s.Version = defaults.Version
	}
	if s.CLIPath == "" {
		s.CLIPath = defaults.CLIPath
	}
	if len(s.ServerCommand) == 0 {
		s.ServerCommand = defaults.ServerCommand
	}
	if len(s.ServerPlusCommand) == 0 {
		s.ServerPlusCommand = defaults.ServerPlusCommand
	}
}

// AutomaticDownloadValue returns the effective automatic_download flag,
// defaulting to true.
func (s Settings) AutomaticDownloadValue() bool {
	if s.AutomaticDownload == nil {
		return true
	}
	return *s.AutomaticDownload
}
