package domain

import "errors"

// ErrNotFound marks a point lookup on a missing document. It is a distinct
// outcome from a store failure and should be surfaced as an absence.
var ErrNotFound = errors.New("document not found")

// ErrStoreUnavailable marks a transient store failure (timeout, connection
// refused, 5xx). Callers may retry; the core itself does not.
var ErrStoreUnavailable = errors.New("document store unavailable")
