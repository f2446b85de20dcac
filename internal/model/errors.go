package model

import "errors"

// Domain error kinds. Every core operation fails with exactly one of these;
// the transport layer maps them to response codes.
var (
	// ErrNotFound covers entities that are absent, inactive, or not owned by
	// the caller. All four lookup targets (exam, attempt, exam question,
	// answer option) collapse to this kind so completion state and ownership
	// are not leaked through error responses.
	ErrNotFound = errors.New("not found")

	// ErrConflict is surfaced when a storage uniqueness constraint rejects a
	// write (duplicate active attempt, duplicate answer record). The core
	// propagates it without retrying.
	ErrConflict = errors.New("conflict")
)
