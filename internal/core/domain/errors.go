package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingField indicates an observation row lacks a required column value.
	ErrMissingField = errors.New("missing required field")

	// ErrNoTextFile indicates a point folder contains no .txt history file.
	ErrNoTextFile = errors.New("no text file in point folder")

	// ErrNoLinesPatched indicates a date rewrite matched no history lines.
	// The file is left untouched when this is returned.
	ErrNoLinesPatched = errors.New("no dated history lines matched")

	// ErrBackupFailed indicates the local backup could not be written.
	// The remote file is never modified after this error.
	ErrBackupFailed = errors.New("backup failed")

	// Authentication Errors.

	// ErrAuthRequired indicates the repository requires credentials but none are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the repository rejected the credentials.
	ErrAuthInvalid = errors.New("authentication invalid")
)
