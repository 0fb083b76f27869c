package cli

import (
	"github.com/spf13/cobra"

	"tailwindcli/internal/install"
)

func newDownloadCLICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download-cli",
		Short: "Download the Tailwind CSS CLI binary",
		RunE:  runDownloadCLI,
	}
}

func runDownloadCLI(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject(cmd.Context())
	if err != nil {
		return err
	}

	// Force bypasses both the existence cache and the automatic_download
	// setting; an explicit download request always wins.
	if _, err := ensureCLI(cmd.Context(), cmd, proj.Config, true, nil); err != nil {
		if canceledByUser(cmd, err) {
			return nil
		}
		return err
	}
	cmd.Printf("Downloaded Tailwind CSS CLI to '%s'.\n", proj.Config.CLIPath)
	return nil
}

func newRemoveCLICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-cli",
		Short: "Remove the Tailwind CSS CLI binary",
		RunE:  runRemoveCLI,
	}
}

func runRemoveCLI(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject(cmd.Context())
	if err != nil {
		return err
	}

	removed, err := install.RemoveCLI(proj.Config)
	if err != nil {
		return err
	}
	if removed {
		cmd.Printf("Removed Tailwind CSS CLI at '%s'.\n", proj.Config.CLIPath)
	} else {
		cmd.Printf("Tailwind CSS CLI not found at '%s'.\n", proj.Config.CLIPath)
	}
	return nil
}
