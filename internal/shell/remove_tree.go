package shell

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakoblorz/go-minishell/internal/filesystem"
)

// DeleteFailure records one entry RemoveTree could not handle.
type DeleteFailure struct {
	Path string
	Err  error
}

// DeleteReport is the outcome of a best-effort recursive delete.
type DeleteReport struct {
	Deleted  []string
	Failures []DeleteFailure
}

// OK reports whether every entry was deleted.
func (r DeleteReport) OK() bool {
	return len(r.Failures) == 0
}

// RemoveTree deletes root and everything below it. Entries are removed
// deepest first so every directory is empty when its turn comes. A
// failing entry is recorded and the remaining entries are still
// attempted. The returned error is only set when root itself cannot be
// walked.
func RemoveTree(fsys filesystem.FileSystem, root string) (DeleteReport, error) {
	var report DeleteReport
	var paths []string

	root = filepath.Clean(root)
	err := fsys.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil && path == root {
				return err
			}
			report.Failures = append(report.Failures, DeleteFailure{Path: path, Err: err})
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return report, err
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return depth(paths[i]) > depth(paths[j])
	})

	for _, p := range paths {
		if err := fsys.Remove(p); err != nil {
			report.Failures = append(report.Failures, DeleteFailure{Path: p, Err: err})
			continue
		}
		report.Deleted = append(report.Deleted, p)
	}
	return report, nil
}

// depth counts path elements; "/" has none.
func depth(path string) int {
	n := 0
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if part != "" && part != "." {
			n++
		}
	}
	return n
}
