package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/go-minishell/internal/logging"
	"github.com/jakoblorz/go-minishell/internal/shell"
	"github.com/jakoblorz/go-minishell/internal/tui"
)

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\033[H\033[2J"

// REPL is the line-oriented presentation layer: it prints the prompt,
// hands each finished line to the shell and appends the result.
type REPL struct {
	shell  *shell.Shell
	in     *bufio.Reader
	out    io.Writer
	prompt *template.Template
	color  bool
	logger *slog.Logger
}

// REPLOption configures a REPL.
type REPLOption func(*REPL)

// WithPrompt sets the prompt template.
func WithPrompt(tmpl *template.Template) REPLOption {
	return func(r *REPL) {
		r.prompt = tmpl
	}
}

// WithColor enables lipgloss styling of prompt, banner and errors.
func WithColor(enabled bool) REPLOption {
	return func(r *REPL) {
		r.color = enabled
	}
}

// WithREPLLogger sets the diagnostic logger.
func WithREPLLogger(l *slog.Logger) REPLOption {
	return func(r *REPL) {
		r.logger = l
	}
}

// NewREPL creates a REPL reading lines from in.
func NewREPL(sh *shell.Shell, in *bufio.Reader, out io.Writer, opts ...REPLOption) *REPL {
	r := &REPL{
		shell:  sh,
		in:     in,
		out:    out,
		prompt: template.Must(ParsePromptTemplate(DefaultPromptTemplate)),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run shows the banner and processes lines until "exit" or end of input.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.write(r.banner()); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.writePrompt(); err != nil {
			return err
		}

		line, readErr := r.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read input: %w", readErr)
		}
		eof := errors.Is(readErr, io.EOF)
		if eof && line == "" {
			return r.write("\n")
		}

		exit, err := r.show(r.shell.Execute(ctx, line))
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		if eof {
			return nil
		}
	}
}

// RunLines executes lines in order without banner or prompt, stopping
// early on "exit".
func (r *REPL) RunLines(ctx context.Context, lines []string) error {
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		exit, err := r.show(r.shell.Execute(ctx, line))
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
	return nil
}

// show appends a result to the output and reports whether the shell
// should terminate.
func (r *REPL) show(res shell.Result) (bool, error) {
	if res.Err != nil {
		r.logger.Debug("command reported error", "error", res.Err)
	}

	switch res.Action {
	case shell.ActionClear:
		if err := r.write(clearScreen); err != nil {
			return false, err
		}
		return false, r.write(r.banner())
	case shell.ActionExit:
		return true, r.write(res.Output)
	}

	if res.Err != nil {
		return false, r.write(r.styleLines(tui.ErrorStyle, res.Output))
	}
	return false, r.write(res.Output)
}

func (r *REPL) banner() string {
	return r.styleLines(tui.TitleStyle, shell.Banner)
}

func (r *REPL) writePrompt() error {
	prompt, err := renderPrompt(r.prompt, PromptData{Cwd: r.shell.Session().Cwd()})
	if err != nil {
		r.logger.Warn("failed to render prompt", "error", err)
		prompt = DefaultPromptTemplate
	}
	if r.color {
		prompt = tui.PromptStyle.Render(prompt)
	}
	return r.write(prompt)
}

// styleLines styles each line on its own so multi-line text is not
// padded into a block.
func (r *REPL) styleLines(style lipgloss.Style, text string) string {
	if !r.color || text == "" {
		return text
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	out := strings.Join(lines, "\n")
	if strings.HasSuffix(text, "\n") {
		out += "\n"
	}
	return out
}

func (r *REPL) write(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(r.out, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
