package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tailwindcli/internal/config"
	"tailwindcli/internal/install"
	"tailwindcli/internal/runner"
)

var projectDir string

// Execute runs the root cobra command, mapping the error taxonomy onto user
// messages and exit codes in one place.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", formatError(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tailwindcli",
		Short: "Manage the Tailwind CSS standalone CLI for your project",
	}

	cmd.PersistentFlags().StringVar(&projectDir, "project", "", "Path to project directory")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newListTemplatesCmd())
	cmd.AddCommand(newDownloadCLICmd())
	cmd.AddCommand(newRemoveCLICmd())
	cmd.AddCommand(newRunserverCmd())

	return cmd
}

// formatError produces the single user-facing line for each error class:
// configuration errors verbatim, process errors with their captured stderr,
// download failures with the URL, everything else prefixed generically.
func formatError(err error) string {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return cfgErr.Error()
	}

	var disabled install.ErrDownloadDisabled
	if errors.As(err, &disabled) {
		return disabled.Error()
	}

	var netErr *install.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Sprintf("Failed to download Tailwind CSS CLI: %v", netErr.Err)
	}

	var procErr *runner.ProcessError
	if errors.As(err, &procErr) {
		return procErr.Error()
	}

	return fmt.Sprintf("error: %v", err)
}
