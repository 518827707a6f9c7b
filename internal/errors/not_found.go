package errors

import (
	stdErrors "errors"
	"fmt"
)

// SnapshotNotFoundError indicates no cached library snapshot exists for an
// account. Callers recover by asking the user to run a full fetch first.
type SnapshotNotFoundError struct {
	Account string
}

func (e *SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("no cached library snapshot for account %q", e.Account)
}

// NewSnapshotNotFoundError creates a SnapshotNotFoundError for the given account key.
func NewSnapshotNotFoundError(account string) *SnapshotNotFoundError {
	return &SnapshotNotFoundError{Account: account}
}

// IsSnapshotNotFoundError reports whether err is a SnapshotNotFoundError (even when wrapped).
func IsSnapshotNotFoundError(err error) bool {
	var nfErr *SnapshotNotFoundError
	return stdErrors.As(err, &nfErr)
}

// GameNotFoundError indicates a game name that should exist in the live
// library listing no longer does. The cached snapshot is left untouched.
type GameNotFoundError struct {
	Name string
}

func (e *GameNotFoundError) Error() string {
	return fmt.Sprintf("game %q not found in live library listing", e.Name)
}

// NewGameNotFoundError creates a GameNotFoundError for the given game name.
func NewGameNotFoundError(name string) *GameNotFoundError {
	return &GameNotFoundError{Name: name}
}

// IsGameNotFoundError reports whether err is a GameNotFoundError (even when wrapped).
func IsGameNotFoundError(err error) bool {
	var nfErr *GameNotFoundError
	return stdErrors.As(err, &nfErr)
}
