package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// BillyFileSystem implements FileSystem on top of a go-billy filesystem.
// Paths are absolute within the billy root; the working directory is
// always "/".
type BillyFileSystem struct {
	bfs billy.Filesystem
}

// NewBillyFileSystem wraps an existing billy.Filesystem.
func NewBillyFileSystem(bfs billy.Filesystem) *BillyFileSystem {
	return &BillyFileSystem{bfs: bfs}
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *BillyFileSystem {
	return NewBillyFileSystem(memfs.New())
}

// NewJailedFileSystem creates a filesystem chrooted at root on disk.
// Paths are joined under root, so ".." cannot climb past "/". Symlinks
// inside root are still followed wherever they point.
func NewJailedFileSystem(root string) *BillyFileSystem {
	return NewBillyFileSystem(osfs.New(root))
}

// normalize converts paths to use forward slashes consistently.
func normalize(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	if path == "." || path == "" {
		return "/"
	}
	return path
}

func isRoot(path string) bool {
	return path == "/"
}

// rootInfo describes "/" for backends that do not track the root as an entry.
type rootInfo struct{}

func (rootInfo) Name() string       { return "/" }
func (rootInfo) Size() int64        { return 0 }
func (rootInfo) Mode() fs.FileMode  { return fs.ModeDir | 0755 }
func (rootInfo) ModTime() time.Time { return time.Time{} }
func (rootInfo) IsDir() bool        { return true }
func (rootInfo) Sys() interface{}   { return nil }

func (b *BillyFileSystem) ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if b.IsDir(path) {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	f, err := b.bfs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func (b *BillyFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	path = normalize(path)
	if err := b.requireParent("open", path); err != nil {
		return err
	}
	if b.IsDir(path) {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}
	f, err := b.bfs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (b *BillyFileSystem) CreateFile(path string, perm fs.FileMode) error {
	path = normalize(path)
	if b.Exists(path) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	}
	if err := b.requireParent("open", path); err != nil {
		return err
	}
	f, err := b.bfs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	return f.Close()
}

func (b *BillyFileSystem) Rename(oldPath, newPath string) error {
	return b.bfs.Rename(normalize(oldPath), normalize(newPath))
}

func (b *BillyFileSystem) Remove(path string) error {
	path = normalize(path)
	if isRoot(path) {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrPermission}
	}
	if b.IsDir(path) {
		entries, err := b.ReadDir(path)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
		}
	}
	return b.bfs.Remove(path)
}

// ReadDir lists a directory sorted by name.
func (b *BillyFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	path = normalize(path)
	info, err := b.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "readdirent", Path: path, Err: errors.New("not a directory")}
	}

	infos, err := b.bfs.ReadDir(path)
	if err != nil {
		if isRoot(path) && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func (b *BillyFileSystem) Mkdir(path string, perm fs.FileMode) error {
	path = normalize(path)
	if b.Exists(path) {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	if err := b.requireParent("mkdir", path); err != nil {
		return err
	}
	// the parent exists, so MkdirAll creates exactly one directory
	return b.bfs.MkdirAll(path, perm)
}

func (b *BillyFileSystem) Stat(path string) (fs.FileInfo, error) {
	path = normalize(path)
	info, err := b.bfs.Stat(path)
	if err != nil && isRoot(path) {
		return rootInfo{}, nil
	}
	return info, err
}

func (b *BillyFileSystem) Exists(path string) bool {
	_, err := b.Stat(path)
	return err == nil
}

func (b *BillyFileSystem) IsDir(path string) bool {
	info, err := b.Stat(path)
	return err == nil && info.IsDir()
}

func (b *BillyFileSystem) Getwd() (string, error) {
	return "/", nil
}

// WalkDir walks the tree rooted at root in lexical order, following the
// contract of filepath.WalkDir.
func (b *BillyFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	root = normalize(root)
	info, err := b.Stat(root)
	if err != nil {
		err = fn(root, nil, err)
	} else {
		err = b.walkDir(root, fs.FileInfoToDirEntry(info), fn)
	}
	if err == fs.SkipDir || err == fs.SkipAll {
		return nil
	}
	return err
}

func (b *BillyFileSystem) walkDir(path string, d fs.DirEntry, fn fs.WalkDirFunc) error {
	if err := fn(path, d, nil); err != nil || !d.IsDir() {
		if err == fs.SkipDir && d.IsDir() {
			err = nil
		}
		return err
	}

	entries, err := b.ReadDir(path)
	if err != nil {
		if err = fn(path, d, err); err != nil {
			if err == fs.SkipDir && d.IsDir() {
				err = nil
			}
			return err
		}
	}

	for _, entry := range entries {
		if err := b.walkDir(b.bfs.Join(path, entry.Name()), entry, fn); err != nil {
			if err == fs.SkipDir {
				break
			}
			return err
		}
	}
	return nil
}

func (b *BillyFileSystem) requireParent(op, path string) error {
	parent := normalize(filepath.Dir(path))
	if !b.IsDir(parent) {
		return &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
	}
	return nil
}
