// Package console reads answers to prompts from a line-oriented input.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console writes prompts to out and reads one line per prompt from in.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
	echo   bool
}

// New creates a console over in/out. Prompts are written exactly as given.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// NewWithPipedEcho is New, but when in is not an interactive terminal a
// newline is written after each answered prompt. Piped input is never echoed
// by a terminal, so without it consecutive prompts share one line.
func NewWithPipedEcho(in io.Reader, out io.Writer) *Console {
	c := New(in, out)
	c.echo = !isTerminal(in)
	return c
}

// NewStdio creates a console bound to the process standard streams.
func NewStdio(pipedEcho bool) *Console {
	if pipedEcho {
		return NewWithPipedEcho(os.Stdin, os.Stdout)
	}
	return New(os.Stdin, os.Stdout)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type readResult struct {
	line string
	err  error
}

// ReadLine prints prompt and returns the next input line without its line
// terminator. It returns ctx.Err() if the context ends first. io.EOF is
// returned only when the input ends before any data was read.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}

	ch := make(chan readResult, 1)
	go func() {
		line, err := c.reader.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if c.echo && prompt != "" {
			fmt.Fprintln(c.out)
		}
		if res.err != nil {
			if !errors.Is(res.err, io.EOF) || res.line == "" {
				return "", res.err
			}
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}
