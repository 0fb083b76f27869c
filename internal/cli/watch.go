package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tailwindcli/internal/runner"
)

var watchVerbose bool

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the stylesheet on every file change",
		RunE:  runWatch,
	}

	cmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Show detailed watcher information")

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proj, err := loadProject(ctx)
	if err != nil {
		return err
	}
	cfg := proj.Config

	logger, closer := verboseLogger(cmd, proj.Paths, watchVerbose)
	if closer != nil {
		defer closer.Close()
	}

	if err := setupEnvironment(ctx, cmd, cfg, logger); err != nil {
		if canceledByUser(cmd, err) {
			return nil
		}
		return err
	}

	if watchVerbose {
		cmd.Printf("Command:     %s\n", strings.Join(cfg.WatchCmd(), " "))
	}

	// The watcher runs until interrupted; its output streams through so the
	// user sees each rebuild as it happens.
	_, err = runner.CmdRunner{}.Run(ctx, cfg.WatchCmd(), runner.RunOptions{
		Dir:    cfg.BaseDir,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		if ctx.Err() != nil {
			cmd.Println("Stopped watching for changes.")
			return nil
		}
		return err
	}
	return nil
}
