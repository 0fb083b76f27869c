package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the user quits the progress display before
// the background work finished. The work is canceled and awaited first.
var ErrInterrupted = errors.New("canceled by user")

// RunWithWork creates a bubbletea program, launches workFn in a goroutine,
// and blocks until both the program and the work have finished. workFn
// receives a context that is canceled when the program exits early and a
// send callback that wraps tea.Program.Send.
func RunWithWork(ctx context.Context, out io.Writer, model DownloadModel, workFn func(ctx context.Context, send func(tea.Msg)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithOutput(out))

	done := make(chan error, 1)
	go func() {
		// Let bubbletea start its event loop and render the initial frame.
		time.Sleep(50 * time.Millisecond)

		err := workFn(ctx, p.Send)
		done <- err
		if err != nil {
			p.Send(ErrorMsg{Err: err})
			return
		}
		p.Send(WorkDoneMsg{})
	}()

	finalModel, runErr := p.Run()
	cancel()
	workErr := <-done

	if runErr != nil {
		return runErr
	}
	if m, ok := finalModel.(DownloadModel); ok {
		if m.Interrupted() {
			return ErrInterrupted
		}
		if m.Err() != nil {
			return m.Err()
		}
	}
	return workErr
}
