// Package confirmations provides the yes/no prompts used during a run.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Console asks questions on a terminal. Every question defaults to no.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewConsole creates a console confirmer. The pterm prompt is only used
// when both in and out are terminals; otherwise answers are read line by
// line from in.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: isTTY(in) && isTTY(out),
	}
}

func isTTY(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Confirm asks question and blocks for the answer
func (c *Console) Confirm(question string) (bool, error) {
	if c.interactive {
		answer, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(false).
			Show(question)
		if err != nil {
			return false, errors.Wrap(err, errors.ErrInternal, "failed to read answer")
		}
		return answer, nil
	}

	fmt.Fprintf(c.out, "%s [y/N] ", question)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to read answer")
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(c.out)
	}
	return ParseAnswer(line), nil
}

// ParseAnswer interprets a typed answer; anything but y or yes is no
func ParseAnswer(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// AssumeYes answers every question with yes without prompting
type AssumeYes struct{}

// Confirm always returns true
func (AssumeYes) Confirm(string) (bool, error) {
	return true, nil
}
