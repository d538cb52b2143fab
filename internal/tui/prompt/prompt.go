// Package prompt implements the shell's confirmation and editor
// collaborators, either as terminal UIs or on a plain line reader.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-minishell/internal/shell"
	"github.com/jakoblorz/go-minishell/internal/tui/components"
)

// HuhConfirmer asks yes/no questions with a huh confirm form.
type HuhConfirmer struct {
	theme *huh.Theme
}

// NewHuhConfirmer creates a HuhConfirmer using theme.
func NewHuhConfirmer(theme *huh.Theme) *HuhConfirmer {
	return &HuhConfirmer{theme: theme}
}

// Confirm shows the form; aborting it counts as "no".
func (c *HuhConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).
		WithTheme(c.theme).
		WithShowHelp(true)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// LineConfirmer asks on out and reads the answer as one line from in.
// Only "y" and "yes" confirm.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer shares in with the caller so answers and commands are
// read from the same stream.
func NewLineConfirmer(in *bufio.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: in, out: out}
}

func (c *LineConfirmer) Confirm(_ context.Context, question string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", question); err != nil {
		return false, err
	}

	answer, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) {
		_, _ = fmt.Fprintln(c.out)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// TerminalEditor runs the full-screen editor component.
type TerminalEditor struct {
	opts []tea.ProgramOption
}

// NewTerminalEditor creates a TerminalEditor. opts are appended to the
// alt-screen default.
func NewTerminalEditor(opts ...tea.ProgramOption) *TerminalEditor {
	return &TerminalEditor{opts: opts}
}

func (e *TerminalEditor) Edit(ctx context.Context, req shell.EditRequest) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, e.opts...)
	model, err := components.NewEditor(req.Name, req.Content, req.Save)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
