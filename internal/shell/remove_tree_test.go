package shell

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jakoblorz/go-minishell/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestRemoveTree_DeepestFirst(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	populate(mfs)

	report, err := RemoveTree(mfs, "/workspace/d")
	require.NoError(t, err)
	require.True(t, report.OK())
	require.Equal(t, "/workspace/d", report.Deleted[len(report.Deleted)-1])

	for i := 1; i < len(report.Deleted); i++ {
		require.GreaterOrEqual(t, depth(report.Deleted[i-1]), depth(report.Deleted[i]),
			"%s removed before %s", report.Deleted[i-1], report.Deleted[i])
	}
	require.Len(t, report.Deleted, 7)
	require.False(t, mfs.Exists("/workspace/d"))
}

func TestRemoveTree_ContinuesAfterFailures(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	populate(mfs)
	mfs.FailOn(filesystem.OpRemove, "/workspace/d/sub/deeper/leaf.txt", fs.ErrPermission)

	report, err := RemoveTree(mfs, "/workspace/d")
	require.NoError(t, err)
	require.False(t, report.OK())

	failed := map[string]error{}
	for _, f := range report.Failures {
		failed[f.Path] = f.Err
	}
	require.Len(t, failed, 4)
	require.True(t, errors.Is(failed["/workspace/d/sub/deeper/leaf.txt"], fs.ErrPermission))
	require.Contains(t, failed, "/workspace/d/sub/deeper")
	require.Contains(t, failed, "/workspace/d/sub")
	require.Contains(t, failed, "/workspace/d")

	require.False(t, mfs.Exists("/workspace/d/top.txt"))
	require.False(t, mfs.Exists("/workspace/d/sub/mid.txt"))
	require.False(t, mfs.Exists("/workspace/d/empty"))
}

func TestRemoveTree_MissingRoot(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()

	_, err := RemoveTree(mfs, "/workspace/ghost")
	require.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestRemoveTree_OnDisk(t *testing.T) {
	dir := t.TempDir()
	osfs := filesystem.NewOSFileSystem()

	root := dir + "/tree"
	require.NoError(t, osfs.Mkdir(root, 0755))
	require.NoError(t, osfs.Mkdir(root+"/a", 0755))
	require.NoError(t, osfs.Mkdir(root+"/a/b", 0755))
	require.NoError(t, osfs.WriteFile(root+"/a/b/c.txt", []byte("c"), 0644))
	require.NoError(t, osfs.WriteFile(root+"/z.txt", []byte("z"), 0644))

	report, err := RemoveTree(osfs, root)
	require.NoError(t, err)
	require.True(t, report.OK(), "failures: %v", report.Failures)
	require.False(t, osfs.Exists(root))
	require.True(t, osfs.IsDir(dir))
}

func TestRemoveTree_InMemory(t *testing.T) {
	mem := filesystem.NewMemoryFileSystem()
	require.NoError(t, mem.Mkdir("/x", 0755))
	require.NoError(t, mem.Mkdir("/x/y", 0755))
	require.NoError(t, mem.WriteFile("/x/y/f", []byte("f"), 0644))

	report, err := RemoveTree(mem, "/x")
	require.NoError(t, err)
	require.True(t, report.OK(), "failures: %v", report.Failures)
	require.False(t, mem.Exists("/x"))
}

func TestDepth(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/", 0},
		{"/a", 1},
		{"/a/", 1},
		{"/a/b", 2},
		{"/a/./b/../c/d", 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, depth(tt.path), tt.path)
	}
}

// removeRecorder notes every Remove attempt, successful or not.
type removeRecorder struct {
	filesystem.FileSystem
	attempts []string
}

func (r *removeRecorder) Remove(path string) error {
	r.attempts = append(r.attempts, path)
	return r.FileSystem.Remove(path)
}

func TestRemoveTree_RootIsAttemptedLast(t *testing.T) {
	mem := filesystem.NewMemoryFileSystem()
	require.NoError(t, mem.Mkdir("/a", 0755))
	require.NoError(t, mem.Mkdir("/a/b", 0755))
	require.NoError(t, mem.WriteFile("/a/b/c.txt", []byte("c"), 0644))
	require.NoError(t, mem.WriteFile("/x.txt", []byte("x"), 0644))

	rec := &removeRecorder{FileSystem: mem}
	report, err := RemoveTree(rec, "/")
	require.NoError(t, err)

	require.Equal(t, []string{"/a/b/c.txt", "/a/b", "/a", "/x.txt", "/"}, rec.attempts)
	require.Equal(t, []string{"/a/b/c.txt", "/a/b", "/a", "/x.txt"}, report.Deleted)
	require.Len(t, report.Failures, 1)
	require.Equal(t, "/", report.Failures[0].Path)

	entries, err := mem.ReadDir("/")
	require.NoError(t, err)
	require.Empty(t, entries)
}
