package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts signals the session gave up after repeated
	// validation failures.
	ErrTooManyAttempts = errors.New("tui: too many failed attempts")
)
