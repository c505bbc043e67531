package resumes

import "errors"

var (
	// ErrNotFound covers both a missing resume and one owned by another user.
	ErrNotFound = errors.New("resume not found")

	// ErrVersionConflict indicates the stored resume changed since the caller read it.
	ErrVersionConflict = errors.New("resume version conflict")

	// ErrUnauthenticated indicates the caller has no identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)
