// Package css creates the source stylesheet entry file the Tailwind CSS
// binary compiles from.
package css

import (
	"fmt"
	"os"
	"path/filepath"

	"tailwindcli/internal/config"
)

const (
	// DefaultSourceCSS is the stock entry file for Tailwind CSS >= 4.0.0.
	DefaultSourceCSS = "@import \"tailwindcss\";\n"
	// DaisyUISourceCSS additionally loads the DaisyUI plugin.
	DaisyUISourceCSS = "@import \"tailwindcss\";\n@plugin \"daisyui\";\n"
)

// EnsureSourceCSS writes the source stylesheet when it is missing or, for the
// default path, when its content drifted from the expected template. Custom
// paths are never overwritten once created. It reports whether a write
// happened.
func EnsureSourceCSS(cfg config.Config) (bool, error) {
	if cfg.SrcCSS == "" {
		return false, nil
	}

	content := DefaultSourceCSS
	if cfg.UseDaisyUI {
		content = DaisyUISourceCSS
	}

	var write bool
	if cfg.OverwriteDefault {
		write = shouldRecreate(cfg.SrcCSS, content)
	} else {
		_, err := os.Stat(cfg.SrcCSS)
		write = os.IsNotExist(err)
	}
	if !write {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.SrcCSS), 0o755); err != nil {
		return false, fmt.Errorf("prepare source css dir: %w", err)
	}
	if err := os.WriteFile(cfg.SrcCSS, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write source css: %w", err)
	}
	return true, nil
}

func shouldRecreate(path, content string) bool {
	current, err := os.ReadFile(path)
	if err != nil {
		return true
	}
	return string(current) != content
}
