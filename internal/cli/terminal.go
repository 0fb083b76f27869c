package cli

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// interactiveOut reports whether out is a terminal capable of rendering the
// live download display. Piped output and dumb terminals get plain lines.
func interactiveOut(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && !strings.EqualFold(term, "dumb")
}
