// Package interactive provides interactive prompts for user confirmation.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter handles confirmation prompts.
type Prompter struct {
	in      io.Reader
	out     io.Writer
	scanner *bufio.Scanner
}

// NewPrompter creates a prompter with stdin/stdout.
func NewPrompter() *Prompter {
	return NewPrompterWithIO(os.Stdin, os.Stdout)
}

// NewPrompterWithIO creates a prompter with custom input/output (for testing).
func NewPrompterWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:      in,
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// IsTerminal checks if stdin is a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ask prints a prompt and returns the next input line, trimmed of
// surrounding whitespace. Returns io.EOF when the input is exhausted.
func (p *Prompter) Ask(format string, args ...interface{}) (string, error) {
	_, _ = fmt.Fprintf(p.out, format, args...)

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Confirm displays a question and reads a yes/no response. Anything but
// an explicit yes counts as no.
func (p *Prompter) Confirm(format string, args ...interface{}) bool {
	answer, err := p.Ask(format+" [y/N] ", args...)
	if err != nil {
		return false
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
