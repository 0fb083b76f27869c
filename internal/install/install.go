package install

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"tailwindcli/internal/config"
	"tailwindcli/internal/paths"
)

const (
	downloadTimeout = 30 * time.Second
	downloadChunk   = 8192
	userAgent       = "tailwindcli/1.0"
)

// Status describes the outcome of an EnsureCLI call.
type Status string

const (
	StatusExists     Status = "exists"
	StatusDownloaded Status = "downloaded"
)

// NetworkError reports a failed download. Unlike the version lookup, a failed
// binary download is fatal to the command invocation.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ErrDownloadDisabled is returned when the binary is missing and automatic
// downloads are turned off.
type ErrDownloadDisabled struct{}

func (ErrDownloadDisabled) Error() string {
	return "Automatic download of the Tailwind CSS CLI is deactivated. Please download it manually."
}

// ProgressFunc receives periodic download progress. total is zero when the
// server omits a Content-Length header.
type ProgressFunc func(downloaded, total int64)

// Installer downloads the platform-specific Tailwind CSS binary. The zero
// value works; fields exist so tests and the CLI can inject behavior.
// A nil Logger disables logging.
type Installer struct {
	Client   *http.Client
	Cache    *ExistsCache
	Logger   *log.Logger
	Progress ProgressFunc
}

func (i *Installer) logf(format string, v ...any) {
	if i == nil || i.Logger == nil {
		return
	}
	i.Logger.Printf(format, v...)
}

// EnsureCLI makes sure the binary at cfg.CLIPath is present, downloading it
// when needed. The up-to-date check is deliberately weak: existence plus an
// executable bit, never the installed version.
func (i *Installer) EnsureCLI(ctx context.Context, cfg config.Config, force bool) (Status, error) {
	if !force && !cfg.AutomaticDownload {
		if !i.Cache.Exists(cfg.CLIPath) {
			return "", ErrDownloadDisabled{}
		}
		return StatusExists, nil
	}

	if !force && cliUpToDate(cfg.CLIPath) {
		i.logf("cli already present at %s", cfg.CLIPath)
		return StatusExists, nil
	}

	i.logf("downloading %s to %s", cfg.DownloadURL, cfg.CLIPath)
	if err := i.download(ctx, cfg.DownloadURL, cfg.CLIPath); err != nil {
		return "", err
	}

	if err := os.Chmod(cfg.CLIPath, 0o755); err != nil {
		return "", fmt.Errorf("mark cli executable: %w", err)
	}
	i.Cache.Invalidate(cfg.CLIPath)

	return StatusDownloaded, nil
}

// RemoveCLI deletes the binary if it exists and reports whether it did.
func RemoveCLI(cfg config.Config) (bool, error) {
	exists, err := paths.FileExists(cfg.CLIPath)
	if err != nil {
		return false, fmt.Errorf("stat cli: %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := os.Remove(cfg.CLIPath); err != nil {
		return false, fmt.Errorf("remove cli: %w", err)
	}
	return true, nil
}

func cliUpToDate(path string) bool {
	return paths.IsExecutableFile(path)
}

func (i *Installer) download(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("prepare download destination: %w", err)
	}

	client := i.Client
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NetworkError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "download-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := i.copyWithProgress(tmpFile, resp.Body, resp.ContentLength); err != nil {
		tmpFile.Close()
		return &NetworkError{URL: url, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}
	return nil
}

// copyWithProgress streams the body in fixed-size chunks, reporting progress
// after each one. An unknown length becomes a single unsized report at the end.
func (i *Installer) copyWithProgress(dst io.Writer, src io.Reader, total int64) error {
	if total < 0 {
		total = 0
	}

	var downloaded int64
	buf := make([]byte, downloadChunk)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return fmt.Errorf("write temp file: %w", err)
			}
			downloaded += int64(n)
			if i != nil && i.Progress != nil {
				i.Progress(downloaded, total)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read body: %w", readErr)
		}
	}
}
