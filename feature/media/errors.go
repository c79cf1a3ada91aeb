package media

import (
	"errors"
	"fmt"
)

// ErrPathViolation marks a drop-zone filename that would escape the jailed
// directory. It is raised before any filesystem access on the target.
var ErrPathViolation = errors.New("path escapes the drop-zone root")

// FetchErrorKind classifies a failed media fetch.
type FetchErrorKind string

const (
	// FetchNetwork covers connection, timeout, and bad-status failures.
	FetchNetwork FetchErrorKind = "network"
	// FetchInvalidContent covers empty or oversized responses.
	FetchInvalidContent FetchErrorKind = "invalid_content"
	// FetchStorage covers failures storing the fetched bytes.
	FetchStorage FetchErrorKind = "storage"
)

// FetchError is a per-item materialization failure. It is recorded against
// the item's id and never aborts the batch.
type FetchError struct {
	Kind FetchErrorKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (%s) for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PersistenceError is a systemic store failure. It aborts the whole
// reconciliation because the store's state is no longer knowable.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
