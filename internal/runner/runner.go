package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

type RunOptions struct {
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes external commands. The tailwind binary is only ever driven
// through this interface so commands can be faked in tests.
type Runner interface {
	Run(ctx context.Context, argv []string, opts RunOptions) (RunResult, error)
}

type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, argv []string, opts RunOptions) (RunResult, error) {
	if len(argv) == 0 {
		return RunResult{}, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer

	stdoutWriter := io.Writer(&stdoutBuf)
	if opts.Stdout != nil {
		stdoutWriter = io.MultiWriter(&stdoutBuf, opts.Stdout)
	}
	stderrWriter := io.Writer(&stderrBuf)
	if opts.Stderr != nil {
		stderrWriter = io.MultiWriter(&stderrBuf, opts.Stderr)
	}

	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	err := cmd.Run()
	result := RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}
	if err != nil {
		return result, wrapRunError(argv, result, err)
	}
	return result, nil
}

var _ Runner = CmdRunner{}

// ProcessError reports a non-zero exit of an external command, carrying the
// captured standard error for the user-facing message.
type ProcessError struct {
	Argv     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		detail = "An unknown error occurred."
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Argv[0], e.ExitCode, detail)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func wrapRunError(argv []string, result RunResult, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ProcessError{
			Argv:     argv,
			ExitCode: exitErr.ExitCode(),
			Stderr:   string(result.Stderr),
			Err:      err,
		}
	}
	return err
}
