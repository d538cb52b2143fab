package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over the file operations the shell
// performs, so commands can run against disk, a jail or memory.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// CreateFile creates an empty file and fails with fs.ErrExist if
	// anything already exists at path.
	CreateFile(path string, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	// Remove removes a file or an empty directory.
	Remove(path string) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	// Mkdir creates a single directory. The parent must exist.
	Mkdir(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	IsDir(path string) bool
	Getwd() (string, error)

	// File walking
	WalkDir(root string, fn fs.WalkDirFunc) error
}
