package tui

// ProgressMsg reports download progress. Total is zero when the server did
// not send a Content-Length header.
type ProgressMsg struct {
	Downloaded int64
	Total      int64
}

// WorkDoneMsg signals that the background work has completed.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}
