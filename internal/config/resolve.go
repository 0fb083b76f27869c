package config

import (
	"context"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"tailwindcli/internal/paths"
	"tailwindcli/internal/settings"
)

const userAgent = "tailwindcli/1.0"

// versionFour gates the fields that changed with Tailwind CSS 4: the source
// stylesheet became required and the legacy JS config file was dropped.
var versionFour = semver.MustParse("4.0.0")

// Resolver builds a Config from project settings. The zero value probes the
// running platform and uses a short-timeout HTTP client for "latest" lookups;
// tests override the fields.
type Resolver struct {
	HTTPClient *http.Client
	OS         string
	Machine    string
}

// Resolve builds the resolved configuration for the project rooted at baseDir.
func Resolve(ctx context.Context, baseDir string, s settings.Settings) (Config, error) {
	return Resolver{}.Resolve(ctx, baseDir, s)
}

// Resolve validates the settings and derives every version- and
// platform-dependent value. It fails fast on the first invalid setting.
func (r Resolver) Resolve(ctx context.Context, baseDir string, s settings.Settings) (Config, error) {
	if len(s.StaticDirs) == 0 {
		return Config{}, settingError("static_dirs",
			"static_dirs is empty. Please add a path to your static files.")
	}

	platform, arch, ext := r.normalizePlatform()

	srcRepo, err := requireSetting("src_repo", s.SrcRepo, settings.DefaultSrcRepo)
	if err != nil {
		return Config{}, err
	}

	versionStr, version, err := r.resolveVersion(ctx, srcRepo, s.Version)
	if err != nil {
		return Config{}, err
	}

	assetName, err := requireSetting("asset_name", s.AssetName, settings.DefaultAssetName)
	if err != nil {
		return Config{}, err
	}

	cliPath := resolveCLIPath(baseDir, s.CLIPath, assetName, platform, arch, versionStr, ext)

	downloadURL := "https://github.com/" + srcRepo + "/releases/download/v" + versionStr +
		"/" + assetName + "-" + platform + "-" + arch + ext

	distCSSBase, err := requireSetting("dist_css", s.DistCSS, settings.DefaultDistCSS)
	if err != nil {
		return Config{}, err
	}
	staticRoot := paths.ResolveAgainst(baseDir, s.StaticDirs[0])
	distCSS := filepath.Join(staticRoot, distCSSBase)

	srcCSS, overwriteDefault, err := resolveSrcCSS(staticRoot, s.SrcCSS, version)
	if err != nil {
		return Config{}, err
	}

	configFile, err := resolveConfigFile(baseDir, s.ConfigFile, version)
	if err != nil {
		return Config{}, err
	}

	return Config{
		VersionStr:        versionStr,
		Version:           version,
		Platform:          platform,
		Arch:              arch,
		CLIPath:           cliPath,
		DownloadURL:       downloadURL,
		DistCSS:           distCSS,
		DistCSSBase:       distCSSBase,
		SrcCSS:            srcCSS,
		ConfigFile:        configFile,
		OverwriteDefault:  overwriteDefault,
		AutomaticDownload: s.AutomaticDownloadValue(),
		UseDaisyUI:        s.UseDaisyUI,
		BaseDir:           baseDir,
		StaticDirs:        s.StaticDirs,
		TemplateDirs:      s.TemplateDirs,
		AppDirs:           s.AppDirs,
		ServerCommand:     s.ServerCommand,
		ServerPlusCommand: s.ServerPlusCommand,
	}, nil
}

// requireSetting returns the default when the setting is absent and rejects
// explicitly empty values.
func requireSetting(name string, value *string, fallback string) (string, error) {
	if value == nil {
		return fallback, nil
	}
	if *value == "" {
		return "", mustNotBeEmpty(name)
	}
	return *value, nil
}

// normalizePlatform maps the OS and machine identifiers onto the names the
// upstream release assets use.
func (r Resolver) normalizePlatform() (platform, arch, ext string) {
	platform = r.OS
	if platform == "" {
		platform = runtime.GOOS
	}
	if platform == "darwin" {
		platform = "macos"
	}

	arch = r.Machine
	if arch == "" {
		arch = runtime.GOARCH
	}
	switch arch {
	case "x86_64", "amd64":
		arch = "x64"
	case "aarch64":
		arch = "arm64"
	}

	if platform == "windows" {
		ext = ".exe"
	}
	return platform, arch, ext
}

// resolveCLIPath uses the configured path verbatim when it points at an
// existing executable file; otherwise the path is a directory and the
// platform-specific filename is appended.
func resolveCLIPath(baseDir, configured, asset, platform, arch, version, ext string) string {
	cliPath := configured
	if cliPath == "" {
		cliPath = baseDir
	}
	cliPath = paths.ExpandUser(cliPath)

	if paths.IsExecutableFile(cliPath) {
		if abs, err := filepath.Abs(cliPath); err == nil {
			return abs
		}
		return cliPath
	}

	filename := asset + "-" + platform + "-" + arch + "-" + version + ext
	return filepath.Join(cliPath, filename)
}

// resolveSrcCSS applies the 4.0.0 boundary: the source stylesheet is required
// from 4.0.0 on and optional before it.
func resolveSrcCSS(staticRoot string, setting *string, version *semver.Version) (string, bool, error) {
	if version.Compare(versionFour) >= 0 {
		if setting == nil {
			return filepath.Join(staticRoot, settings.DefaultSrcCSS), true, nil
		}
		if *setting == "" {
			return "", false, mustNotBeEmpty("src_css")
		}
		return filepath.Join(staticRoot, *setting), false, nil
	}

	if setting == nil || *setting == "" {
		return "", false, nil
	}
	return filepath.Join(staticRoot, *setting), false, nil
}

// resolveConfigFile applies the inverse gate: the legacy JS config file is
// required below 4.0.0 and rejected from 4.0.0 on.
func resolveConfigFile(baseDir string, setting *string, version *semver.Version) (string, error) {
	if version.Compare(versionFour) >= 0 {
		if setting != nil && *setting != "" {
			return "", settingError("config_file",
				"config_file is not used with Tailwind CSS >= 4.x.")
		}
		return "", nil
	}

	if setting == nil {
		return filepath.Join(baseDir, settings.DefaultConfigFile), nil
	}
	if *setting == "" {
		return "", mustNotBeEmpty("config_file")
	}
	return filepath.Join(baseDir, *setting), nil
}
