package shell

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

func cmdNano(ctx context.Context, s *Shell, arg string) (Result, error) {
	if arg == "" {
		return Result{}, missingArgument("nano", "Missing filename.")
	}
	path := s.session.Resolve(arg)

	var content string
	if s.fs.Exists(path) {
		data, err := s.fs.ReadFile(path)
		if err != nil {
			return Result{}, ioFailure("nano", path, err)
		}
		content = string(data)
	}

	saved := false
	err := s.editor.Edit(ctx, EditRequest{
		Name:    arg,
		Path:    path,
		Content: content,
		Save: func(buf string) error {
			if err := s.saveFile(path, buf); err != nil {
				s.logger.Warn("failed to save file", "path", path, "error", err)
				return err
			}
			saved = true
			return nil
		},
	})
	if err != nil {
		return Result{}, ioFailure("nano", path, err)
	}
	if !saved {
		return Result{}, nil
	}
	return text("File saved: %s\n", arg)
}

const tempAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// saveFile replaces path with content through a sibling temp file, so a
// failed write never leaves a truncated file behind.
func (s *Shell) saveFile(path, content string) error {
	perm := fs.FileMode(filePerm)
	if info, err := s.fs.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		perm = info.Mode().Perm()
	}

	id, err := gonanoid.Generate(tempAlphabet, 8)
	if err != nil {
		return fmt.Errorf("failed to generate temp name: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id))

	if err := s.fs.WriteFile(tmp, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
