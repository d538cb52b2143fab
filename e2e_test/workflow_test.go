package e2e_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jakoblorz/go-minishell/internal/filesystem"
	"github.com/jakoblorz/go-minishell/internal/session"
	"github.com/jakoblorz/go-minishell/internal/shell"
	"github.com/jakoblorz/go-minishell/internal/tui/prompt"
	"github.com/stretchr/testify/require"
)

type step struct {
	line string
	want string
}

func newShell(t *testing.T, fsys filesystem.FileSystem, dir string, opts ...shell.Option) *shell.Shell {
	t.Helper()

	sess, err := session.New(fsys, dir)
	require.NoError(t, err)
	sh, err := shell.New(fsys, sess, opts...)
	require.NoError(t, err)
	return sh
}

func play(t *testing.T, sh *shell.Shell, steps []step) {
	t.Helper()

	for _, s := range steps {
		res := sh.Execute(context.Background(), s.line)
		require.Equal(t, s.want, res.Output, "output of %q", s.line)
	}
}

// editTo saves fixed content whenever nano opens a file.
func editTo(content string) shell.Option {
	return shell.WithEditor(shell.EditorFunc(func(_ context.Context, req shell.EditRequest) error {
		return req.Save(content)
	}))
}

func alwaysConfirm() shell.Option {
	return shell.WithConfirmer(shell.ConfirmFunc(func(context.Context, string) (bool, error) {
		return true, nil
	}))
}

func TestFullWorkflow(t *testing.T) {
	backends := map[string]func(t *testing.T) filesystem.FileSystem{
		"memory": func(*testing.T) filesystem.FileSystem { return filesystem.NewMemoryFileSystem() },
		"jailed": func(t *testing.T) filesystem.FileSystem { return filesystem.NewJailedFileSystem(t.TempDir()) },
	}

	for name, newFS := range backends {
		t.Run(name, func(t *testing.T) {
			fsys := newFS(t)
			sh := newShell(t, fsys, "/", editTo("hello from nano"), alwaysConfirm())

			play(t, sh, []step{
				{"ls", ""},
				{"mkdir project", "Directory created: project\n"},
				{"cd project", "Current directory: /project\n"},
				{"touch readme.md", "File created: readme.md\n"},
				{"cat readme.md", "\n"},
				{"nano readme.md", "File saved: readme.md\n"},
				{"cat readme.md", "hello from nano\n"},
				{"mkdir src", "Directory created: src\n"},
				{"cd src", "Current directory: /project/src\n"},
				{"touch main.go", "File created: main.go\n"},
				{"cd ..", "Current directory: /project\n"},
				{"ls", "readme.md\nsrc\n"},
				{"rm src", "Directory deleted: src\n"},
				{"rm readme.md", "File deleted: readme.md\n"},
				{"ls", ""},
				{"cd /", "Current directory: /\n"},
				{"rm -r project", "Directory and contents deleted: project\n"},
				{"cat project", "Error: File not found.\n"},
			})

			require.False(t, fsys.Exists("/project"))
			require.Equal(t, "/", sh.Session().Cwd())
		})
	}
}

func TestWorkflow_ExistingNamesAreIOFailures(t *testing.T) {
	sh := newShell(t, filesystem.NewMemoryFileSystem(), "/")

	play(t, sh, []step{
		{"mkdir docs", "Directory created: docs\n"},
		{"touch docs/a.txt", "File created: docs/a.txt\n"},
	})

	for _, line := range []string{"mkdir docs", "touch docs/a.txt", "touch docs", "mkdir missing/child"} {
		res := sh.Execute(context.Background(), line)
		require.ErrorIs(t, res.Err, shell.ErrIOFailure, line)
		require.True(t, strings.HasPrefix(res.Output, "Error: "), res.Output)
	}
}

func TestWorkflow_RemovingCurrentDirectory(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem()
	sh := newShell(t, fsys, "/")

	play(t, sh, []step{
		{"mkdir a", "Directory created: a\n"},
		{"cd a", "Current directory: /a\n"},
		{"mkdir b", "Directory created: b\n"},
		{"cd b", "Current directory: /a/b\n"},
		{"rm -r /a", "Directory and contents deleted: /a\nCurrent directory: /\n"},
		{"ls", ""},
	})
}

func TestWorkflow_JailedShellStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "outside-"+filepath.Base(root)+".txt")
	t.Cleanup(func() { _ = os.Remove(outside) })

	sh := newShell(t, filesystem.NewJailedFileSystem(root), "/")

	play(t, sh, []step{
		{"cd ..", "Current directory: /\n"},
		{"touch ../" + filepath.Base(outside), "File created: ../" + filepath.Base(outside) + "\n"},
	})

	_, err := os.Stat(outside)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, filepath.Base(outside)))
	require.NoError(t, err)
}

func TestWorkflow_HelpListsEveryCommand(t *testing.T) {
	sh := newShell(t, filesystem.NewMemoryFileSystem(), "/")

	res := sh.Execute(context.Background(), "help")
	require.NoError(t, res.Err)
	for _, name := range []string{"help", "clear", "exit", "touch", "cat", "nano", "cd", "ls", "mkdir", "rm"} {
		require.True(t, strings.Contains(res.Output, " - "+name), "help misses %s", name)
	}
}

// terminalEditor drives the real editor with keys, ctrl+s being "\x13".
func terminalEditor(keys string) shell.Option {
	return shell.WithEditor(prompt.NewTerminalEditor(
		tea.WithInput(strings.NewReader(keys)),
		tea.WithOutput(io.Discard),
	))
}

func TestWorkflow_NanoSavesFilesUnchanged(t *testing.T) {
	root := t.TempDir()
	content := "key:\tvalue\r\n\tindented\r\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.txt"), []byte(content), 0644))

	sh := newShell(t, filesystem.NewJailedFileSystem(root), "/", terminalEditor("\x13"))

	play(t, sh, []step{
		{"nano config.txt", "File saved: config.txt\n"},
	})

	data, err := os.ReadFile(filepath.Join(root, "config.txt"))
	require.NoError(t, err)
	require.Equal(t, content, string(data))
}

func TestWorkflow_NanoRefusesOversizedFiles(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem()
	content := strings.Repeat("line\n", 10050)
	require.NoError(t, fsys.WriteFile("/big.txt", []byte(content), 0644))

	sh := newShell(t, fsys, "/", terminalEditor("\x13"))

	res := sh.Execute(context.Background(), "nano big.txt")
	require.ErrorIs(t, res.Err, shell.ErrIOFailure)
	require.True(t, strings.HasPrefix(res.Output, "Error: file cannot be edited"), res.Output)

	data, err := fsys.ReadFile("/big.txt")
	require.NoError(t, err)
	require.Equal(t, content, string(data))
}
