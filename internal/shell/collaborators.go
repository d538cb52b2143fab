package shell

import (
	"context"
	"errors"
)

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, question string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

type denyAll struct{}

func (denyAll) Confirm(context.Context, string) (bool, error) {
	return false, nil
}

// EditRequest is handed to an Editor by "nano".
type EditRequest struct {
	// Name is the argument as typed, for titles.
	Name string
	// Path is the resolved path being edited.
	Path string
	// Content is the initial buffer; empty when the file does not exist.
	Content string
	// Save overwrites the file with content. Editors call it on an
	// explicit save action and close the view when it succeeds.
	Save func(content string) error
}

// Editor opens an editable view for a file. Edit returns once the view
// is closed, saved or not.
type Editor interface {
	Edit(ctx context.Context, req EditRequest) error
}

// EditorFunc adapts a function to Editor.
type EditorFunc func(ctx context.Context, req EditRequest) error

func (f EditorFunc) Edit(ctx context.Context, req EditRequest) error {
	return f(ctx, req)
}

// ErrNoEditor is returned by "nano" when no editor view is available.
var ErrNoEditor = errors.New("no editor available")

type noEditor struct{}

func (noEditor) Edit(context.Context, EditRequest) error {
	return ErrNoEditor
}
