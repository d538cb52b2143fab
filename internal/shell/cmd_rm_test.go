package shell

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/jakoblorz/go-minishell/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func populate(mfs *filesystem.MockFileSystem) {
	mfs.AddFile("/workspace/d/top.txt", []byte("1"))
	mfs.AddFile("/workspace/d/sub/mid.txt", []byte("2"))
	mfs.AddFile("/workspace/d/sub/deeper/leaf.txt", []byte("3"))
	mfs.AddDir("/workspace/d/empty")
}

func TestRm_File(t *testing.T) {
	h := newHarness(t)
	h.fs.AddFile("/workspace/a.txt", nil)

	res := h.run(t, "rm a.txt")
	require.NoError(t, res.Err)
	require.Equal(t, "File deleted: a.txt\n", res.Output)
	require.False(t, h.fs.Exists("/workspace/a.txt"))
}

func TestRm_NotFound(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, "rm ghost")
	require.ErrorIs(t, res.Err, ErrNotFound)
	require.Equal(t, "Error: File or directory not found.\n", res.Output)
}

func TestRm_EmptyDirectoryNeedsNoConfirmation(t *testing.T) {
	h := newHarness(t).answering(false)
	h.fs.AddDir("/workspace/empty")

	res := h.run(t, "rm empty")
	require.NoError(t, res.Err)
	require.Equal(t, "Directory deleted: empty\n", res.Output)
	require.False(t, h.fs.Exists("/workspace/empty"))
	require.Empty(t, h.asked)
}

func TestRm_NonEmptyDirectoryDeclined(t *testing.T) {
	h := newHarness(t).answering(false)
	populate(h.fs)
	before := h.fs.Paths()

	res := h.run(t, "rm d")
	require.NoError(t, res.Err)
	require.Equal(t, "Deletion cancelled.\n", res.Output)
	require.Equal(t, []string{"The directory d is not empty. Delete contents?"}, h.asked)
	require.Equal(t, before, h.fs.Paths())
}

func TestRm_NonEmptyDirectoryConfirmed(t *testing.T) {
	h := newHarness(t).answering(true)
	populate(h.fs)

	res := h.run(t, "rm d")
	require.NoError(t, res.Err)
	require.Equal(t, "Directory deleted: d\n", res.Output)
	require.Len(t, h.asked, 1)
	require.Equal(t, []string{"/", "/workspace"}, h.fs.Paths())
}

func TestRm_ConfirmerErrorCancels(t *testing.T) {
	h := newHarness(t, WithConfirmer(ConfirmFunc(func(context.Context, string) (bool, error) {
		return true, errors.New("no terminal")
	})))
	populate(h.fs)

	res := h.run(t, "rm d")
	require.NoError(t, res.Err)
	require.Equal(t, "Deletion cancelled.\n", res.Output)
	require.True(t, h.fs.Exists("/workspace/d/sub/deeper/leaf.txt"))
}

func TestRm_DefaultConfirmerDenies(t *testing.T) {
	h := newHarness(t)
	populate(h.fs)

	res := h.run(t, "rm d")
	require.Equal(t, "Deletion cancelled.\n", res.Output)
	require.True(t, h.fs.Exists("/workspace/d/top.txt"))
}

func TestRmRecursive_DeletesWithoutConfirmation(t *testing.T) {
	h := newHarness(t).answering(false)
	populate(h.fs)

	res := h.run(t, "rm -r d")
	require.NoError(t, res.Err)
	require.Equal(t, "Directory and contents deleted: d\n", res.Output)
	require.Empty(t, h.asked)
	require.Equal(t, []string{"/", "/workspace"}, h.fs.Paths())
}

func TestRmRecursive_NotADirectory(t *testing.T) {
	h := newHarness(t)
	h.fs.AddFile("/workspace/file.txt", []byte("x"))

	res := h.run(t, "rm -r file.txt")
	require.ErrorIs(t, res.Err, ErrNotADirectory)
	require.Equal(t, "Error: file.txt is not a directory.\n", res.Output)
	require.True(t, h.fs.Exists("/workspace/file.txt"))

	res = h.run(t, "rm -r ghost")
	require.ErrorIs(t, res.Err, ErrNotADirectory)
	require.Equal(t, "Error: ghost is not a directory.\n", res.Output)
}

func TestRmRecursive_BestEffort(t *testing.T) {
	h := newHarness(t)
	populate(h.fs)
	h.fs.FailOn(filesystem.OpRemove, "/workspace/d/sub/mid.txt", fs.ErrPermission)

	res := h.run(t, "rm -r d")
	require.NoError(t, res.Err)
	require.Contains(t, res.Output, "Directory partially deleted: d")
	require.Contains(t, res.Output, "Warning: could not delete /workspace/d/sub/mid.txt")

	require.True(t, h.fs.Exists("/workspace/d/sub/mid.txt"))
	require.False(t, h.fs.Exists("/workspace/d/sub/deeper"))
	require.False(t, h.fs.Exists("/workspace/d/top.txt"))
	require.False(t, h.fs.Exists("/workspace/d/empty"))
}

func TestRm_RemovingWorkingDirectoryMovesUp(t *testing.T) {
	h := newHarness(t)
	populate(h.fs)

	require.NoError(t, h.run(t, "cd d/sub").Err)

	res := h.run(t, "rm -r /workspace/d")
	require.NoError(t, res.Err)
	require.Equal(t, "Directory and contents deleted: /workspace/d\nCurrent directory: /workspace\n", res.Output)
	require.Equal(t, "/workspace", h.shell.Session().Cwd())
}
