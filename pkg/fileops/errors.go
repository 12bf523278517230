package fileops

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Kind classifies an operation failure. Every operation maps each of its
// failure modes to exactly one kind.
type Kind string

const (
	// KindInvalidPath means a supplied directory-creation path was empty.
	KindInvalidPath Kind = "invalid_path"

	// KindMissingParent means the parent chain of a directory-creation path
	// is blocked and cannot be created.
	KindMissingParent Kind = "missing_parent"

	// KindCreateFailed means the underlying directory creation call failed.
	KindCreateFailed Kind = "create_failed"

	// KindWriteFailed means the underlying file write call failed.
	KindWriteFailed Kind = "write_failed"

	// KindDeleteFailed means the underlying file removal call failed.
	KindDeleteFailed Kind = "delete_failed"

	// KindCopyFailed means the underlying copy call failed.
	KindCopyFailed Kind = "copy_failed"

	// KindRemoveFailed means a directory removal inside a recursive removal
	// failed.
	KindRemoveFailed Kind = "remove_failed"

	// KindNotFound means a path whose existence was a precondition could not
	// be read or does not exist.
	KindNotFound Kind = "not_found"

	// KindAlreadyExists means the destination already exists where absence
	// was a precondition.
	KindAlreadyExists Kind = "already_exists"

	// KindNotDirectory means the target of a recursive removal is not an
	// existing directory.
	KindNotDirectory Kind = "not_directory"
)

// Error is the error type returned by every Operator method. It carries the
// failure kind, the operation name, and the path the operation acted on.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
