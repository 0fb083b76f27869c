package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDownloadModelTracksProgress(t *testing.T) {
	m := NewDownloadModel("tailwindcss-linux-x64")

	next, _ := m.Update(ProgressMsg{Downloaded: 512, Total: 1024})
	m = next.(DownloadModel)

	view := m.View()
	if !strings.Contains(view, "512 B of 1.0 KiB") {
		t.Fatalf("expected byte counts in view: %q", view)
	}
}

func TestDownloadModelUnknownTotal(t *testing.T) {
	m := NewDownloadModel("cli")

	next, _ := m.Update(ProgressMsg{Downloaded: 2048})
	m = next.(DownloadModel)

	view := m.View()
	if !strings.Contains(view, "2.0 KiB downloaded") {
		t.Fatalf("expected unsized counter in view: %q", view)
	}
}

func TestDownloadModelFinishesOnWorkDone(t *testing.T) {
	m := NewDownloadModel("cli")

	next, cmd := m.Update(WorkDoneMsg{})
	m = next.(DownloadModel)

	if !m.Done() {
		t.Fatal("model should be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestDownloadModelUserQuitMarksInterrupted(t *testing.T) {
	m := NewDownloadModel("cli")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(DownloadModel)

	if !m.Interrupted() {
		t.Fatal("ctrl+c should mark the model interrupted")
	}
	if !m.Done() {
		t.Fatal("interrupted model should be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestDownloadModelPropagatesError(t *testing.T) {
	m := NewDownloadModel("cli")

	next, _ := m.Update(ErrorMsg{Err: errors.New("boom")})
	m = next.(DownloadModel)

	if m.Err() == nil {
		t.Fatal("error not recorded")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Fatalf("error missing from view: %q", m.View())
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Fatalf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
