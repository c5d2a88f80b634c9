// Package prompt provides the line-based double confirmation used before a rollback.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt texts and the answers that pass them.
const (
	FirstQuestion  = "Are you sure you want to rollback to the last commit? (yes/no): "
	SecondQuestion = "Type 'ROLLBACK' to confirm you want to discard ALL changes: "

	// FirstAnswer is compared case-insensitively.
	FirstAnswer = "yes"

	// ConfirmToken must be typed exactly.
	ConfirmToken = "ROLLBACK"
)

// LinePrompter asks two sequential questions on a line-oriented terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading answers from in and
// writing questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks for "yes" and then for the exact ROLLBACK token.
// End of input is treated as a "no". The second question is only asked
// when the first one passes.
func (p *LinePrompter) Confirm(ctx context.Context) (bool, error) {
	answer, err := p.ask(ctx, FirstQuestion)
	if err != nil || !strings.EqualFold(answer, FirstAnswer) {
		return false, err
	}

	if _, err := fmt.Fprintln(p.out); err != nil {
		return false, err
	}

	answer, err = p.ask(ctx, SecondQuestion)
	if err != nil {
		return false, err
	}
	return answer == ConfirmToken, nil
}

// ask writes the question and reads one line. A final line without a
// newline still counts as an answer.
func (p *LinePrompter) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
