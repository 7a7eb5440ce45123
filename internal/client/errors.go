package client

import (
	"errors"
	"fmt"
)

// ErrNotFound marks an identifier the catalog has no content for.
var ErrNotFound = errors.New("content not found")

// FailureKind classifies a transient transport failure.
type FailureKind int

const (
	FailureConnection FailureKind = iota + 1
	FailureTimeout
)

func (k FailureKind) String() string {
	switch k {
	case FailureConnection:
		return "connection"
	case FailureTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// TransientError is a recoverable transport failure: the same request may
// well succeed if issued again.
type TransientError struct {
	Kind FailureKind
	URL  string
	Err  error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failure fetching %s: %v", e.Kind, e.URL, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx, non-redirect response.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s fetching %s", e.Status, e.URL)
}

// MarkupError reports a book page that fetched fine but lacks the markup the
// parser expects. Refetching does not help.
type MarkupError struct {
	ID      int
	Element string
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("book %d page has no %s", e.ID, e.Element)
}
