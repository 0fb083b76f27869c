// Package tui renders an interactive progress display for CLI downloads.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	tickInterval = 150 * time.Millisecond
	barWidth     = 40
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg drives the spinner animation.
type tickMsg time.Time

// DownloadModel is a bubbletea model showing a single download: spinner,
// progress bar when the total size is known, byte counter otherwise.
type DownloadModel struct {
	title string
	bar   progress.Model

	downloaded int64
	total      int64

	done        bool
	interrupted bool
	err         error
	tick        int
}

// NewDownloadModel creates a model titled with the download target.
func NewDownloadModel(title string) DownloadModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = barWidth
	return DownloadModel{title: title, bar: bar}
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m DownloadModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m DownloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case ProgressMsg:
		m.downloaded = msg.Downloaded
		m.total = msg.Total
		return m, nil

	case WorkDoneMsg:
		m.done = true
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.interrupted = true
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m DownloadModel) View() string {
	if m.done && m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteByte('\n')

	if m.total > 0 {
		pct := float64(m.downloaded) / float64(m.total)
		if pct > 1 {
			pct = 1
		}
		fmt.Fprintf(&b, "%s %s of %s\n",
			m.bar.ViewAs(pct), FormatBytes(m.downloaded), FormatBytes(m.total))
	} else {
		fmt.Fprintf(&b, "%s downloaded\n", FormatBytes(m.downloaded))
	}

	if !m.done {
		spinner := spinnerFrames[m.tick%len(spinnerFrames)]
		fmt.Fprintf(&b, "\n%s Downloading...\n", spinner)
	}
	return b.String()
}

// Done returns whether the model has finished.
func (m DownloadModel) Done() bool {
	return m.done
}

// Interrupted returns whether the user quit before the work finished.
func (m DownloadModel) Interrupted() bool {
	return m.interrupted
}

// Err returns any fatal error that occurred.
func (m DownloadModel) Err() error {
	return m.err
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
