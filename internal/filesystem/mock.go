package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string]*MockFile
	failures   map[mockOp]error
	currentDir string
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

type mockOp struct {
	op   string
	path string
}

// Operation names accepted by FailOn.
const (
	OpRead    = "read"
	OpWrite   = "write"
	OpCreate  = "create"
	OpRename  = "rename"
	OpRemove  = "remove"
	OpReadDir = "readdir"
	OpMkdir   = "mkdir"
)

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem rooted at "/" with an
// existing "/workspace" working directory.
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:      make(map[string]*MockFile),
		failures:   make(map[mockOp]error),
		currentDir: "/workspace",
	}
	mfs.files["/"] = &MockFile{Mode: 0755 | fs.ModeDir, ModTime: time.Now(), IsDir: true}
	mfs.AddDir(mfs.currentDir)
	return mfs
}

// AddFile adds a file to the mock filesystem
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
		IsDir:   false,
	}
	mfs.ensureParents(cleanPath)
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.ensureParents(cleanPath)
}

func (mfs *MockFileSystem) ensureParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.AddDir(dir)
		}
		dir = filepath.Dir(dir)
	}
}

// FailOn makes every subsequent op on path return err.
func (mfs *MockFileSystem) FailOn(op, path string, err error) {
	mfs.failures[mockOp{op: op, path: filepath.Clean(path)}] = err
}

// FailAll makes every subsequent op return err, whatever the path.
func (mfs *MockFileSystem) FailAll(op string, err error) {
	mfs.failures[mockOp{op: op}] = err
}

func (mfs *MockFileSystem) injected(op, path string) error {
	if err, ok := mfs.failures[mockOp{op: op, path: filepath.Clean(path)}]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	if err, ok := mfs.failures[mockOp{op: op}]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func (mfs *MockFileSystem) parentExists(cleanPath string) bool {
	parent, exists := mfs.files[filepath.Dir(cleanPath)]
	return exists && parent.IsDir
}

func (mfs *MockFileSystem) hasChildren(cleanPath string) bool {
	prefix := cleanPath + string(filepath.Separator)
	if cleanPath == string(filepath.Separator) {
		prefix = cleanPath
	}
	for p := range mfs.files {
		if p != cleanPath && strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if err := mfs.injected(OpRead, path); err != nil {
		return nil, err
	}
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	return append([]byte(nil), file.Content...), nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := mfs.injected(OpWrite, path); err != nil {
		return err
	}
	cleanPath := filepath.Clean(path)

	if !mfs.parentExists(cleanPath) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if existing, ok := mfs.files[cleanPath]; ok && existing.IsDir {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: append([]byte(nil), data...),
		Mode:    perm,
		ModTime: time.Now(),
		IsDir:   false,
	}
	return nil
}

func (mfs *MockFileSystem) CreateFile(path string, perm fs.FileMode) error {
	if err := mfs.injected(OpCreate, path); err != nil {
		return err
	}
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; exists {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	}
	return mfs.WriteFile(cleanPath, nil, perm)
}

func (mfs *MockFileSystem) Rename(oldPath, newPath string) error {
	if err := mfs.injected(OpRename, oldPath); err != nil {
		return err
	}
	src := filepath.Clean(oldPath)
	dst := filepath.Clean(newPath)

	file, exists := mfs.files[src]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if !mfs.parentExists(dst) {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}

	prefix := src + string(filepath.Separator)
	moved := make(map[string]*MockFile)
	for p, f := range mfs.files {
		if strings.HasPrefix(p, prefix) {
			moved[dst+string(filepath.Separator)+strings.TrimPrefix(p, prefix)] = f
			delete(mfs.files, p)
		}
	}
	for p, f := range moved {
		mfs.files[p] = f
	}
	delete(mfs.files, src)
	mfs.files[dst] = file
	return nil
}

func (mfs *MockFileSystem) Remove(path string) error {
	if err := mfs.injected(OpRemove, path); err != nil {
		return err
	}
	cleanPath := filepath.Clean(path)
	file, exists := mfs.files[cleanPath]
	if !exists {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir && mfs.hasChildren(cleanPath) {
		return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
	}
	delete(mfs.files, cleanPath)
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	if err := mfs.injected(OpReadDir, path); err != nil {
		return nil, err
	}
	cleanPath := filepath.Clean(path)

	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, &fs.PathError{Op: "readdirent", Path: path, Err: errors.New("not a directory")}
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p == cleanPath {
			continue
		}
		if filepath.Dir(p) == cleanPath {
			entries = append(entries, &mockDirEntry{info: mfs.info(p, f)})
		}
	}

	// Sort entries by name for consistent ordering
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) Mkdir(path string, perm fs.FileMode) error {
	if err := mfs.injected(OpMkdir, path); err != nil {
		return err
	}
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; exists {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	if !mfs.parentExists(cleanPath) {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrNotExist}
	}
	mfs.files[cleanPath] = &MockFile{
		Mode:    perm | fs.ModeDir,
		ModTime: time.Now(),
		IsDir:   true,
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := filepath.Clean(path)
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mfs.info(cleanPath, file), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) IsDir(path string) bool {
	file, exists := mfs.files[filepath.Clean(path)]
	return exists && file.IsDir
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot := filepath.Clean(root)

	if _, exists := mfs.files[cleanRoot]; !exists {
		return fn(root, nil, &fs.PathError{Op: "lstat", Path: root, Err: fs.ErrNotExist})
	}

	prefix := cleanRoot + string(filepath.Separator)
	if cleanRoot == string(filepath.Separator) {
		prefix = cleanRoot
	}

	// Collect all paths that are under root
	var paths []string
	for p := range mfs.files {
		if p == cleanRoot || strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}

	// Sort paths for consistent ordering
	sort.Strings(paths)

	var skipped []string
	for _, p := range paths {
		if underAny(p, skipped) {
			continue
		}
		file := mfs.files[p]
		entry := &mockDirEntry{info: mfs.info(p, file)}

		if err := fn(p, entry, nil); err != nil {
			if err == fs.SkipDir && file.IsDir {
				skipped = append(skipped, p)
				continue
			}
			if err == fs.SkipAll {
				return nil
			}
			return err
		}
	}

	return nil
}

func underAny(p string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(p, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (mfs *MockFileSystem) info(p string, f *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(p),
		size:    int64(len(f.Content)),
		mode:    f.Mode,
		modTime: f.ModTime,
		isDir:   f.IsDir,
	}
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
}

// Paths returns every path in the mock filesystem, sorted.
func (mfs *MockFileSystem) Paths() []string {
	paths := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
