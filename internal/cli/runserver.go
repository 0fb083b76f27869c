package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"tailwindcli/internal/supervisor"
)

var forceDefaultServer bool

func newRunserverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runserver [server args]",
		Short: "Run the development server together with the Tailwind watcher",
		Long: "Starts the Tailwind watch process and the development server as a\n" +
			"supervised pair. Extra arguments are passed through to the server\n" +
			"command unchanged.",
		Args: cobra.ArbitraryArgs,
		RunE: runRunserver,
	}

	cmd.Flags().BoolVar(&forceDefaultServer, "force-default-server", false,
		"Use server_command even when server_plus_command is available")

	return cmd
}

func runRunserver(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(cmd.Context())
	if err != nil {
		return err
	}
	cfg := proj.Config

	if err := setupEnvironment(cmd.Context(), cmd, cfg, nil); err != nil {
		if canceledByUser(cmd, err) {
			return nil
		}
		return err
	}

	serverCmd := selectServerCommand(cfg.ServerCommand, cfg.ServerPlusCommand, forceDefaultServer)
	serverCmd = append(serverCmd, args...)

	watchCmd, err := selfWatchCommand(proj.Paths.Root)
	if err != nil {
		return err
	}

	cmd.Printf("Starting: %s\n", strings.Join(serverCmd, " "))

	sup := supervisor.New(supervisor.Options{
		Dir:    cfg.BaseDir,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Notify: func(format string, a ...any) {
			cmd.Printf(format+"\n", a...)
		},
	})
	return sup.Run(watchCmd, serverCmd)
}

// selectServerCommand prefers the plus command when its prerequisites are
// available, keeping the plain command as fallback.
func selectServerCommand(serverCmd, plusCmd []string, forceDefault bool) []string {
	if forceDefault || len(plusCmd) == 0 {
		return append([]string(nil), serverCmd...)
	}
	if !plusCommandAvailable(serverCmd, plusCmd) {
		return append([]string(nil), serverCmd...)
	}
	return append([]string(nil), plusCmd...)
}

// plusCommandAvailable checks the plus command's prerequisites. A distinct
// executable on PATH is enough; when both commands share an interpreter, the
// interpreter must be able to import the runserver_plus dependencies.
func plusCommandAvailable(serverCmd, plusCmd []string) bool {
	interp, err := exec.LookPath(plusCmd[0])
	if err != nil {
		return false
	}
	if len(serverCmd) == 0 || plusCmd[0] != serverCmd[0] {
		return true
	}
	probe := exec.Command(interp, "-c", "import django_extensions, werkzeug")
	return probe.Run() == nil
}

// selfWatchCommand builds the argv that re-invokes this binary in watch mode
// for the same project.
func selfWatchCommand(root string) ([]string, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate own executable: %w", err)
	}
	return []string{self, "--project", root, "watch"}, nil
}
