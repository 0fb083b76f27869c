package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tailwindcli/internal/config"
	"tailwindcli/internal/css"
	"tailwindcli/internal/install"
	"tailwindcli/internal/tui"
)

// existsCacheTTL bounds how long a binary-existence answer stays valid within
// one command invocation.
const existsCacheTTL = 5 * time.Second

// setupEnvironment performs the shared pre-flight for build and watch: the
// CLI binary is downloaded when missing and the source stylesheet is created.
func setupEnvironment(ctx context.Context, cmd *cobra.Command, cfg config.Config, logger *log.Logger) error {
	status, err := ensureCLI(ctx, cmd, cfg, false, logger)
	if err != nil {
		return err
	}
	if status == install.StatusDownloaded {
		cmd.Printf("Downloaded Tailwind CSS CLI to '%s'.\n", cfg.CLIPath)
	}

	created, err := css.EnsureSourceCSS(cfg)
	if err != nil {
		return err
	}
	if created {
		cmd.Printf("Created Tailwind source CSS at '%s'.\n", cfg.SrcCSS)
	}
	return nil
}

// canceledByUser reports whether setup stopped because the user quit the
// download display, printing the clean-stop message when it did.
func canceledByUser(cmd *cobra.Command, err error) bool {
	if errors.Is(err, tui.ErrInterrupted) {
		cmd.Println("Canceled download of the Tailwind CSS CLI.")
		return true
	}
	return false
}

// ensureCLI downloads the binary with an interactive progress display when
// stdout is a terminal, falling back to plain ten-percent-step lines.
func ensureCLI(ctx context.Context, cmd *cobra.Command, cfg config.Config, force bool, logger *log.Logger) (install.Status, error) {
	out := cmd.OutOrStdout()
	cache := install.NewExistsCache(existsCacheTTL)

	if interactiveOut(out) {
		var status install.Status
		model := tui.NewDownloadModel(fmt.Sprintf("Tailwind CSS CLI %s (%s-%s)",
			cfg.VersionStr, cfg.Platform, cfg.Arch))

		err := tui.RunWithWork(ctx, out, model, func(ctx context.Context, send func(tea.Msg)) error {
			inst := &install.Installer{
				Cache:  cache,
				Logger: logger,
				Progress: func(downloaded, total int64) {
					send(tui.ProgressMsg{Downloaded: downloaded, Total: total})
				},
			}
			var ensureErr error
			status, ensureErr = inst.EnsureCLI(ctx, cfg, force)
			return ensureErr
		})
		return status, err
	}

	inst := &install.Installer{
		Cache:    cache,
		Logger:   logger,
		Progress: plainProgress(cmd),
	}
	return inst.EnsureCLI(ctx, cfg, force)
}

// plainProgress prints a line roughly every ten percent, or a byte counter
// when the total size is unknown.
func plainProgress(cmd *cobra.Command) install.ProgressFunc {
	lastStep := -1
	return func(downloaded, total int64) {
		if total <= 0 {
			return
		}
		step := int(downloaded * 10 / total)
		if step > lastStep {
			lastStep = step
			cmd.Printf("Progress: %d%%\n", step*10)
		}
	}
}
