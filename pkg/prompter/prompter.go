// Package prompter provides the default template.Prompter: a stdin
// prompt that hides input for sensitive prompts.
package prompter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/slumberhq/slumber/pkg/template"
)

// Stdin prompts the user on the given writer (typically os.Stderr)
// and reads a single line from the given reader (typically os.Stdin).
type Stdin struct {
	In  io.Reader
	Out io.Writer
}

// NewStdin returns a Stdin prompter wired to the process's standard
// streams.
func NewStdin() *Stdin {
	return &Stdin{In: os.Stdin, Out: os.Stderr}
}

// Prompt implements template.Prompter. The returned channel carries
// exactly one value (or is closed without one, on read failure or when
// ctx is done first) and is never written to again.
func (s *Stdin) Prompt(ctx context.Context, p template.Prompt) (<-chan string, error) {
	ch := make(chan string, 1)

	go func() {
		defer close(ch)

		fmt.Fprintf(s.Out, "%s: ", p.Label)

		var line string
		var err error
		if p.Sensitive {
			line, err = readSensitive(s.In)
		} else {
			line, err = bufio.NewReader(s.In).ReadString('\n')
		}
		if err != nil && err != io.EOF {
			return
		}

		select {
		case ch <- trimNewline(line):
		case <-ctx.Done():
		}
	}()

	return ch, nil
}

func readSensitive(r io.Reader) (string, error) {
	f, ok := r.(*os.File)
	if !ok {
		return bufio.NewReader(r).ReadString('\n')
	}
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Println()
	return string(b), err
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
