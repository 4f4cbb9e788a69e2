package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFetchFailed indicates a document could not be retrieved.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrRelocationFailed indicates a block's original span could not be found
	// in the current document text.
	ErrRelocationFailed = errors.New("relocation failed")

	// ErrInvalidReport indicates a report carries neither validations nor a
	// syntax failure. This is a contract violation, not a runtime condition.
	ErrInvalidReport = errors.New("report has neither validations nor syntax")

	// ErrAuthRequired indicates a hosting operation needs a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")
)

// FetchError describes a failed document retrieval.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// RelocationError describes a block whose original span is not findable.
type RelocationError struct {
	Document string
	Block    int
	Target   string

	// Err is the relocator's error.
	Err error
}

func (e *RelocationError) Error() string {
	msg := fmt.Sprintf("%s[%d]: couldn't find a match to replace", e.Document, e.Block)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + ":\n" + e.Target
}

// Is matches ErrRelocationFailed.
func (e *RelocationError) Is(target error) bool {
	return target == ErrRelocationFailed
}

func (e *RelocationError) Unwrap() error {
	return e.Err
}
