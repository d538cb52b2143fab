package shell

import (
	"errors"
)

// Kind classifies why a command failed.
type Kind int

const (
	KindUnknown Kind = iota
	// MissingArgument: a required argument was not supplied.
	MissingArgument
	// NotFound: the referenced entry does not exist.
	NotFound
	// NotADirectory: a directory was required but something else was given.
	NotADirectory
	// IOFailure: the filesystem call failed for any other reason.
	IOFailure
)

func (k Kind) String() string {
	switch k {
	case MissingArgument:
		return "missing argument"
	case NotFound:
		return "not found"
	case NotADirectory:
		return "not a directory"
	case IOFailure:
		return "io failure"
	default:
		return "unknown"
	}
}

// Error is the failure of a single command. Msg is the user-facing text;
// Err, if set, is the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Msg  string
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrMissingArgument = &Error{Kind: MissingArgument}
	ErrNotFound        = &Error{Kind: NotFound}
	ErrNotADirectory   = &Error{Kind: NotADirectory}
	ErrIOFailure       = &Error{Kind: IOFailure}

	// ErrUnknownCommand is reported for names missing from the dispatch table.
	ErrUnknownCommand = errors.New("unknown command")
)

// Message returns the text shown to the user.
func (e *Error) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message()
	}
	return e.Op + ": " + e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels that only carry a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Path == "" && t.Msg == "" && t.Err == nil
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Render formats err as the single line appended to the shell output.
func Render(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return "Error: " + e.Message()
	}
	return "Error: " + err.Error()
}

func missingArgument(op, msg string) error {
	return &Error{Kind: MissingArgument, Op: op, Msg: msg}
}

func notFound(op, path, msg string) error {
	return &Error{Kind: NotFound, Op: op, Path: path, Msg: msg}
}

func notADirectory(op, path, msg string) error {
	return &Error{Kind: NotADirectory, Op: op, Path: path, Msg: msg}
}

func ioFailure(op, path string, err error) error {
	return &Error{Kind: IOFailure, Op: op, Path: path, Err: err}
}
