package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProjectPaths captures canonical locations for a tailwindcli project.
type ProjectPaths struct {
	Root         string
	SettingsFile string
	LogsDir      string
}

// Resolve determines the project root using the optional --project flag or the
// current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return newProjectPaths(root), nil
}

func newProjectPaths(root string) ProjectPaths {
	return ProjectPaths{
		Root:         root,
		SettingsFile: filepath.Join(root, "tailwind.yaml"),
		LogsDir:      filepath.Join(root, "logs"),
	}
}

// ResolveAgainst resolves value relative to root unless it is already absolute.
func ResolveAgainst(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// ExpandUser replaces a leading "~" with the current user's home directory.
// The value is returned unchanged when the home directory cannot be detected.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// IsExecutableFile reports whether a path is an existing regular file with at
// least one executable permission bit set.
func IsExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
