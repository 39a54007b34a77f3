package bugg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decision is the outcome of a confirmation prompt.
type Decision int

const (
	DecisionPending Decision = iota
	DecisionConfirmed
	DecisionDeclined
)

func (d Decision) String() string {
	switch d {
	case DecisionConfirmed:
		return "confirmed"
	case DecisionDeclined:
		return "declined"
	default:
		return "pending"
	}
}

// Confirmer asks the operator a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(prompt string) (Decision, error)
}

// LineConfirmer reads y/n answers line by line, reprompting on anything else.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer creates a confirmer that writes prompts to out and reads
// answers from in.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm writes prompt and waits for "y" or "n" (case-insensitive).
// Input ending before an answer returns ErrNoResponse.
func (c *LineConfirmer) Confirm(prompt string) (Decision, error) {
	if _, err := fmt.Fprintln(c.out, prompt); err != nil {
		return DecisionPending, err
	}

	for {
		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return DecisionPending, fmt.Errorf("reading answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return DecisionConfirmed, nil
		case "n":
			return DecisionDeclined, nil
		}

		if errors.Is(err, io.EOF) {
			return DecisionPending, ErrNoResponse
		}
		fmt.Fprintln(c.out, "Please enter 'y' or 'n'")
	}
}

var _ Confirmer = (*LineConfirmer)(nil)
