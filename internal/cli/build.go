package cli

import (
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tailwindcli/internal/logx"
	"tailwindcli/internal/paths"
	"tailwindcli/internal/runner"
)

var (
	buildForce   bool
	buildVerbose bool
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a minified production stylesheet",
		RunE:  runBuild,
	}

	cmd.Flags().BoolVar(&buildForce, "force", false, "Rebuild even if the output is up to date")
	cmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Show detailed build information")

	return cmd
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proj, err := loadProject(ctx)
	if err != nil {
		return err
	}
	cfg := proj.Config

	logger, closer := verboseLogger(cmd, proj.Paths, buildVerbose)
	if closer != nil {
		defer closer.Close()
	}
	if buildVerbose {
		cmd.Printf("Source CSS:  %s\n", nonEmptyOrDash(cfg.SrcCSS))
		cmd.Printf("Output CSS:  %s (%s)\n", cfg.DistCSS, cfg.DistCSSBase)
		cmd.Printf("CLI path:    %s\n", cfg.CLIPath)
		cmd.Printf("Version:     %s\n", cfg.VersionStr)
	}

	if err := setupEnvironment(ctx, cmd, cfg, logger); err != nil {
		if canceledByUser(cmd, err) {
			return nil
		}
		return err
	}

	if !buildForce && !shouldRebuild(cfg.SrcCSS, cfg.DistCSS) {
		cmd.Printf("Production stylesheet '%s' is up to date. Use --force to rebuild.\n", cfg.DistCSS)
		return nil
	}

	if buildVerbose {
		cmd.Printf("Command:     %s\n", strings.Join(cfg.BuildCmd(), " "))
	}

	start := time.Now()
	_, err = runner.CmdRunner{}.Run(ctx, cfg.BuildCmd(), runner.RunOptions{Dir: cfg.BaseDir})
	if err != nil {
		if ctx.Err() != nil {
			cmd.Println("Canceled building production stylesheet.")
			return nil
		}
		return err
	}

	if buildVerbose {
		cmd.Printf("Build completed in %.3fs\n", time.Since(start).Seconds())
	}
	cmd.Printf("Built production stylesheet '%s'.\n", cfg.DistCSS)
	return nil
}

// shouldRebuild compares modification times; a missing file on either side
// forces a rebuild.
func shouldRebuild(srcCSS, distCSS string) bool {
	if srcCSS == "" {
		return true
	}

	distInfo, err := os.Stat(distCSS)
	if err != nil {
		return true
	}
	srcInfo, err := os.Stat(srcCSS)
	if err != nil {
		return true
	}
	return srcInfo.ModTime().After(distInfo.ModTime())
}

// verboseLogger opens the project log file when verbose output is requested.
// Logging failures degrade to no logger rather than aborting the command.
func verboseLogger(cmd *cobra.Command, pp paths.ProjectPaths, verbose bool) (*log.Logger, io.Closer) {
	if !verbose {
		return nil, nil
	}
	logger, closer, err := logx.New(pp, cmd.Name())
	if err != nil {
		cmd.PrintErrf("warning: %v\n", err)
		return nil, nil
	}
	return logger, closer
}

func nonEmptyOrDash(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return value
}
