package headlines

import "errors"

// Error classes surfaced by Run. Each failure is wrapped with one of these so
// callers can tell which stage aborted the job with errors.Is.
var (
	// ErrInput covers a missing, unreadable or malformed input table.
	ErrInput = errors.New("input error")
	// ErrResource covers a scorer that could not be initialised or that failed
	// while scoring.
	ErrResource = errors.New("resource error")
	// ErrOutput covers failures writing the augmented table or its summary.
	ErrOutput = errors.New("output error")
)
