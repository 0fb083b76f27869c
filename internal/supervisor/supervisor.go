// Package supervisor runs the Tailwind watch process and the development
// server side by side and guarantees they are torn down together.
package supervisor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

// State tracks the supervisor lifecycle. Stopped is terminal and only reached
// once every child is confirmed dead.
type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StateShuttingDown
	StateStopped
)

// Options tune the supervisor. Zero values fall back to defaults.
type Options struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer

	// StartupGrace lets the watcher initialize before the server starts.
	// This ordering is a heuristic, not a strict dependency.
	StartupGrace time.Duration
	PollInterval time.Duration
	StopTimeout  time.Duration

	// Notify receives user-facing status lines. Optional.
	Notify func(format string, args ...any)
}

const (
	defaultStartupGrace = 1 * time.Second
	defaultPollInterval = 500 * time.Millisecond
	defaultStopTimeout  = 5 * time.Second
)

// Supervisor owns exactly two child processes for the duration of one Run
// call. The shutdown flag is the only value shared between the signal
// handler goroutine and the monitor loop.
type Supervisor struct {
	opts     Options
	children []*child
	shutdown atomic.Bool
	state    atomic.Int32
}

type child struct {
	name string
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (c *child) alive() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// exitCode returns the exit code of a finished child, 0 when it succeeded.
func (c *child) exitCode() int {
	var exitErr *exec.ExitError
	if errors.As(c.err, &exitErr) {
		return exitErr.ExitCode()
	}
	if c.err != nil {
		return -1
	}
	return 0
}

// New creates a supervisor with defaults applied.
func New(opts Options) *Supervisor {
	if opts.StartupGrace == 0 {
		opts.StartupGrace = defaultStartupGrace
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.StopTimeout == 0 {
		opts.StopTimeout = defaultStopTimeout
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Supervisor{opts: opts}
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

func (s *Supervisor) notify(format string, args ...any) {
	if s.opts.Notify != nil {
		s.opts.Notify(format, args...)
	}
}

// Run launches the watch command, then the server command, and blocks until
// both have exited or a shutdown was requested. Ordinary child exits never
// produce an error; only a failed launch does, and teardown runs first.
func (s *Supervisor) Run(watchCmd, serverCmd []string) error {
	s.shutdown.Store(false)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		// Release the forwarder goroutine; Stop guarantees no further sends.
		signal.Stop(sigCh)
		close(sigCh)
	}()

	go func() {
		if _, ok := <-sigCh; ok {
			s.notify("Shutdown signal received, stopping processes...")
			s.shutdown.Store(true)
		}
	}()

	if err := s.launch(watchCmd, serverCmd); err != nil {
		s.teardown()
		return err
	}
	s.state.Store(int32(StateRunning))

	s.monitor()
	s.teardown()
	return nil
}

func (s *Supervisor) launch(watchCmd, serverCmd []string) error {
	watcher, err := s.start("watcher", watchCmd)
	if err != nil {
		return fmt.Errorf("start watch process: %w", err)
	}
	s.children = append(s.children, watcher)
	s.notify("Started Tailwind CSS watch process")

	// Give the watcher a moment to initialize before the server starts.
	time.Sleep(s.opts.StartupGrace)

	server, err := s.start("server", serverCmd)
	if err != nil {
		return fmt.Errorf("start server process: %w", err)
	}
	s.children = append(s.children, server)
	s.notify("Started development server")

	return nil
}

func (s *Supervisor) start(name string, argv []string) (*child, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = s.opts.Dir
	cmd.Stdout = s.opts.Stdout
	cmd.Stderr = s.opts.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	c := &child{name: name, cmd: cmd, done: make(chan struct{})}
	go func() {
		c.err = cmd.Wait()
		close(c.done)
	}()
	return c, nil
}

// monitor polls until a shutdown is requested or no child remains alive. One
// child failing with a non-zero status triggers full teardown.
func (s *Supervisor) monitor() {
	for !s.shutdown.Load() && s.anyAlive() {
		time.Sleep(s.opts.PollInterval)

		for _, c := range s.children {
			if !c.alive() && c.exitCode() != 0 {
				s.notify("Process %s exited with code %d", c.name, c.exitCode())
				s.shutdown.Store(true)
				break
			}
		}
	}
}

func (s *Supervisor) anyAlive() bool {
	for _, c := range s.children {
		if c.alive() {
			return true
		}
	}
	return false
}

// teardown terminates every remaining child: graceful signal first, then a
// kill after the stop timeout. Errors from already-dead processes are
// swallowed. It is safe to call more than once.
func (s *Supervisor) teardown() {
	s.state.Store(int32(StateShuttingDown))

	for _, c := range s.children {
		if !c.alive() {
			continue
		}

		_ = c.cmd.Process.Signal(syscall.SIGTERM)

		select {
		case <-c.done:
		case <-time.After(s.opts.StopTimeout):
			_ = c.cmd.Process.Kill()
			<-c.done
		}
	}

	s.children = nil
	s.state.Store(int32(StateStopped))
}
