// Package templates discovers the project's template files so Tailwind's
// class scanning has a complete picture of the markup.
package templates

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ScanError records a directory that could not be scanned. These are soft
// errors; discovery continues with the remaining directories.
type ScanError struct {
	Dir    string
	Reason string
}

func (e ScanError) String() string {
	return fmt.Sprintf("%s: %s", e.Dir, e.Reason)
}

// List walks the app template directories followed by the global ones and
// collects .html and .txt files. Discovery order is preserved; the result is
// neither deduplicated nor sorted.
func List(appDirs, globalDirs []string) ([]string, []ScanError) {
	var files []string
	var errs []ScanError

	for _, dir := range appDirs {
		files = scanDir(dir, files, &errs)
	}
	for _, dir := range globalDirs {
		files = scanDir(dir, files, &errs)
	}
	return files, errs
}

func scanDir(dir string, files []string, errs *[]ScanError) []string {
	info, err := os.Stat(dir)
	if err != nil {
		*errs = append(*errs, ScanError{Dir: dir, Reason: "directory does not exist"})
		return files
	}
	if !info.IsDir() {
		*errs = append(*errs, ScanError{Dir: dir, Reason: "path is not a directory"})
		return files
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isTemplateFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		*errs = append(*errs, ScanError{Dir: dir, Reason: walkErr.Error()})
	}
	return files
}

func isTemplateFile(name string) bool {
	return strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".txt")
}
