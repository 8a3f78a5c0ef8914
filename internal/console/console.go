// Package console is the operator's side of the interactive session: a
// prompt is written, one line is read back.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console asks the operator questions and prints messages
type Console interface {
	// Ask writes prompt and returns the next line of input without its
	// line terminator.
	Ask(prompt string) (string, error)
	// Say prints a message followed by a newline
	Say(format string, args ...interface{})
}

// Confirm asks a yes/no question. Only "yes" (any case) counts as yes.
func Confirm(c Console, prompt string) (bool, error) {
	answer, err := c.Ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

// Line is a Console over line-oriented streams such as a terminal
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a console reading answers from in and writing to out
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask implements Console. End of input reads as an empty answer so every
// prompt loop terminates when stdin is closed.
func (l *Line) Ask(prompt string) (string, error) {
	if _, err := io.WriteString(l.out, prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := l.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		_, _ = io.WriteString(l.out, "\n")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Say implements Console
func (l *Line) Say(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(l.out, format+"\n", args...)
}
