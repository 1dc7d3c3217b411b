package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/arthur-debert/gpm/pkg/ui/output/styles"
	"github.com/mattn/go-isatty"
)

// Terminal writes status lines to w
type Terminal struct {
	mu          sync.Mutex
	w           io.Writer
	interactive bool
	inProgress  bool
	lastWidth   int
}

// NewTerminal creates a reporter for w. In-place progress is only used
// when w is a terminal.
func NewTerminal(w io.Writer) *Terminal {
	interactive := IsTerminal(w)
	if !interactive {
		styles.DisableColor()
	}
	return &Terminal{w: w, interactive: interactive}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Report writes one complete line, closing any open progress line first
func (t *Terminal) Report(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.endProgress()
	fmt.Fprintln(t.w, line)
}

// Progress re-renders the progress line. Non-interactive writers only get
// the final 100% line.
func (t *Terminal) Progress(label string, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	text := FormatProgress(label, percent)

	if !t.interactive {
		if percent == 100 {
			fmt.Fprintln(t.w, text)
		}
		return
	}

	pad := ""
	if t.lastWidth > len(text) {
		pad = strings.Repeat(" ", t.lastWidth-len(text))
	}
	fmt.Fprint(t.w, "\r"+styles.Render("Progress", text)+pad)
	t.lastWidth = len(text)
	t.inProgress = true

	if percent == 100 {
		t.endProgress()
	}
}

func (t *Terminal) endProgress() {
	if t.inProgress {
		fmt.Fprintln(t.w)
		t.inProgress = false
		t.lastWidth = 0
	}
}

// FormatProgress renders label followed by a right-aligned percentage
func FormatProgress(label string, percent int) string {
	return fmt.Sprintf("%s %5s", label, fmt.Sprintf("%d%%", percent))
}
