// Package session holds the per-shell working directory and resolves
// command arguments against it.
package session

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-minishell/internal/filesystem"
)

// Session is the state of one running shell. It is not safe for
// concurrent use; the dispatcher serializes access.
type Session struct {
	fs  filesystem.FileSystem
	cwd string
}

// New creates a session whose working directory is dir. dir must be an
// absolute path naming an existing directory.
func New(fs filesystem.FileSystem, dir string) (*Session, error) {
	if !filepath.IsAbs(dir) {
		return nil, fmt.Errorf("working directory must be absolute: %s", dir)
	}
	dir = filepath.Clean(dir)
	if !fs.IsDir(dir) {
		return nil, fmt.Errorf("working directory does not exist: %s", dir)
	}
	return &Session{fs: fs, cwd: dir}, nil
}

// NewFromFileSystem starts a session in the filesystem's own working
// directory.
func NewFromFileSystem(fs filesystem.FileSystem) (*Session, error) {
	wd, err := fs.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	return New(fs, wd)
}

// Cwd returns the current working directory.
func (s *Session) Cwd() string {
	return s.cwd
}

// Resolve joins arg onto the working directory. Absolute arguments are
// returned cleaned; the result is always absolute.
func (s *Session) Resolve(arg string) string {
	if filepath.IsAbs(arg) {
		return filepath.Clean(arg)
	}
	return filepath.Join(s.cwd, arg)
}

// Chdir resolves dir and makes it the working directory if it names an
// existing directory. On failure the working directory is unchanged.
func (s *Session) Chdir(dir string) (string, error) {
	target := s.Resolve(dir)
	if !s.fs.IsDir(target) {
		return "", fmt.Errorf("not a directory: %s", target)
	}
	s.cwd = target
	return target, nil
}

// Recover moves the working directory up to its nearest existing
// ancestor after it has been removed from under the session. It reports
// whether the working directory changed.
func (s *Session) Recover() (string, bool) {
	if s.fs.IsDir(s.cwd) {
		return s.cwd, false
	}
	dir := s.cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return s.cwd, false
		}
		dir = parent
		if s.fs.IsDir(dir) {
			s.cwd = dir
			return dir, true
		}
	}
}
