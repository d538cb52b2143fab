package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jakoblorz/go-minishell/internal/filesystem"
	"github.com/jakoblorz/go-minishell/internal/logging"
	"github.com/jakoblorz/go-minishell/internal/session"
	"github.com/jakoblorz/go-minishell/internal/shell"
	"github.com/jakoblorz/go-minishell/internal/tui"
	"github.com/jakoblorz/go-minishell/internal/tui/prompt"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// RootCommand holds the flags of the minishell command
type RootCommand struct {
	fs filesystem.FileSystem

	dir      string
	root     string
	sandbox  bool
	commands []string
	prompt   string
	noColor  bool
	logLevel string
}

// NewRootCommand creates the root command. fs backs the shell unless
// --root or --sandbox select another filesystem.
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	c := &RootCommand{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "minishell",
		Short: "A minimal interactive file shell",
		Long: `A minimal interactive shell for basic file operations.

Create, read, list and remove files and directories, change the working
directory and edit text files. Type 'help' inside the shell for commands.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         c.Run,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&c.dir, "dir", "", "initial working directory (default: current directory)")
	flags.StringVar(&c.root, "root", "", "confine the shell to this directory, which it sees as /")
	flags.BoolVar(&c.sandbox, "sandbox", false, "run against an empty in-memory filesystem")
	flags.StringArrayVarP(&c.commands, "command", "c", nil, "execute a command line and exit (repeatable)")
	flags.StringVar(&c.prompt, "prompt", DefaultPromptTemplate, "prompt template, sprig functions available (e.g. '{{ .Cwd | base }} > ')")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&c.logLevel, "log-level", "warn", "diagnostic log level: debug, info, warn or error")
	rootCmd.MarkFlagsMutuallyExclusive("root", "sandbox")

	return rootCmd
}

// Run starts the shell
func (c *RootCommand) Run(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(cmd.ErrOrStderr(), c.logLevel)
	if err != nil {
		return err
	}

	promptTmpl, err := ParsePromptTemplate(c.prompt)
	if err != nil {
		return err
	}

	fsys, startDir, err := c.fileSystem()
	if err != nil {
		return err
	}

	sess, err := session.New(fsys, startDir)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	interactive := isTerminal(cmd.InOrStdin()) && isTerminal(out)

	opts := []shell.Option{shell.WithLogger(logger)}
	if interactive {
		opts = append(opts,
			shell.WithConfirmer(prompt.NewHuhConfirmer(tui.NewHuhTheme())),
			shell.WithEditor(prompt.NewTerminalEditor()),
		)
	} else {
		opts = append(opts, shell.WithConfirmer(prompt.NewLineConfirmer(in, out)))
	}

	sh, err := shell.New(fsys, sess, opts...)
	if err != nil {
		return fmt.Errorf("failed to create shell: %w", err)
	}

	logger.Debug("starting shell", "cwd", sess.Cwd(), "interactive", interactive)

	repl := NewREPL(sh, in, out,
		WithPrompt(promptTmpl),
		WithColor(interactive && !c.noColor),
		WithREPLLogger(logger),
	)

	if len(c.commands) > 0 {
		return repl.RunLines(cmd.Context(), c.commands)
	}
	return repl.Run(cmd.Context())
}

// fileSystem picks the backend and the directory the session starts in.
func (c *RootCommand) fileSystem() (filesystem.FileSystem, string, error) {
	switch {
	case c.sandbox:
		return filesystem.NewMemoryFileSystem(), jailedDir(c.dir), nil
	case c.root != "":
		root, err := filepath.Abs(c.root)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve root %s: %w", c.root, err)
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, "", fmt.Errorf("invalid root: %w", err)
		}
		if !info.IsDir() {
			return nil, "", fmt.Errorf("invalid root: %s is not a directory", root)
		}
		return filesystem.NewJailedFileSystem(root), jailedDir(c.dir), nil
	}

	if c.dir == "" {
		wd, err := c.fs.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return c.fs, wd, nil
	}
	dir, err := filepath.Abs(c.dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve directory %s: %w", c.dir, err)
	}
	return c.fs, dir, nil
}

// jailedDir interprets --dir inside a jailed or in-memory filesystem,
// where the root is "/".
func jailedDir(dir string) string {
	if dir == "" {
		return "/"
	}
	return filepath.Join("/", dir)
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand(filesystem.NewOSFileSystem())

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
