package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a user or habit does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUser is returned when registering an already-taken username.
	ErrDuplicateUser = errors.New("username already registered")

	// ErrInvalidPassword is returned when a login password does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

// ValidationError reports a rejected input (bad username or password shape,
// empty or duplicate habit name). The message is safe to show to the user.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StorageError wraps a file read/write/decode failure. Corrupt or unreadable
// files surface as StorageError instead of being silently treated as empty.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
