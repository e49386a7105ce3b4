package funpay

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the remote entity doesn't exist
	// (funpay answered 404).
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidSession is returned when the golden_key was rejected or
	// the derived session went stale. The caller decides whether to
	// re-derive the account, the client never re-authenticates on its
	// own.
	ErrInvalidSession = errors.New("invalid or stale session")
)

// ExtractionError means a structural element the page is expected to
// carry was absent or unparsable. Either the response was malformed or
// funpay changed its markup.
type ExtractionError struct {
	Field string
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %q from page", e.Field)
}

// ValidationError means caller-supplied data was internally
// inconsistent. It is always raised before any network call.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// StatusError is the catch-all for non-2xx responses that aren't a 404.
type StatusError struct {
	Status int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}
