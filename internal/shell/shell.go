// Package shell implements the command dispatcher: it parses one input
// line, runs the matching command against a filesystem and a session,
// and returns the text to display.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jakoblorz/go-minishell/internal/filesystem"
	"github.com/jakoblorz/go-minishell/internal/logging"
	"github.com/jakoblorz/go-minishell/internal/session"
)

// Banner is shown when the shell starts and after "clear".
const Banner = "Welcome to the Custom Terminal!\nType 'help' for a list of commands.\n"

// Action tells the presentation layer what to do besides printing Output.
type Action int

const (
	ActionNone Action = iota
	// ActionClear: reset the display before printing Output.
	ActionClear
	// ActionExit: print Output and terminate with success status.
	ActionExit
)

// Result is the outcome of one input line. Output is already formatted,
// including the rendered error when Err is set.
type Result struct {
	Output string
	Action Action
	Err    error
}

// Command is one parsed input line.
type Command struct {
	Name     string
	Argument string
}

// Parse splits line on its first space. Everything after the space,
// trimmed, is the argument.
func Parse(line string) Command {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	return Command{Name: name, Argument: strings.TrimSpace(arg)}
}

// Shell dispatches input lines. Execute may be called from multiple
// goroutines; commands run one at a time.
type Shell struct {
	mu      sync.Mutex
	fs      filesystem.FileSystem
	session *session.Session
	reg     *registry

	confirmer Confirmer
	editor    Editor
	logger    *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithConfirmer sets who answers the yes/no question before a non-empty
// directory is removed with bare "rm". Without one every such removal is
// cancelled.
func WithConfirmer(c Confirmer) Option {
	return func(s *Shell) {
		s.confirmer = c
	}
}

// WithEditor sets the view "nano" opens.
func WithEditor(e Editor) Option {
	return func(s *Shell) {
		s.editor = e
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Shell operating on fs with sess as its working directory.
func New(fs filesystem.FileSystem, sess *session.Session, opts ...Option) (*Shell, error) {
	reg, err := buildRegistry()
	if err != nil {
		return nil, err
	}

	s := &Shell{
		fs:        fs,
		session:   sess,
		reg:       reg,
		confirmer: denyAll{},
		editor:    noEditor{},
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Session returns the shell's session.
func (s *Shell) Session() *session.Session {
	return s.session
}

// Execute runs one input line. Empty lines produce an empty Result.
func (s *Shell) Execute(ctx context.Context, line string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := Parse(line)
	if cmd.Name == "" {
		return Result{}
	}

	s.logger.Debug("executing command", "command", cmd.Name, "cwd", s.session.Cwd())

	c, ok := s.reg.resolve(cmd.Name)
	if !ok {
		return Result{
			Output: fmt.Sprintf("Unknown command: %s\n", strings.TrimSpace(line)),
			Err:    fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name),
		}
	}

	res, err := c.Run(ctx, s, cmd.Argument)
	if err != nil {
		s.logger.Debug("command failed", "command", cmd.Name, "kind", KindOf(err).String(), "error", err)
		return Result{Output: Render(err) + "\n", Err: err}
	}
	return res
}

// CommandInfo describes a registered command.
type CommandInfo struct {
	Name string
	Help []HelpLine
}

// Commands lists the dispatch table in registration order.
func (s *Shell) Commands() []CommandInfo {
	cmds := s.reg.commands()
	out := make([]CommandInfo, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, CommandInfo{Name: c.Name, Help: c.Help})
	}
	return out
}

func text(format string, args ...any) (Result, error) {
	return Result{Output: fmt.Sprintf(format, args...)}, nil
}
