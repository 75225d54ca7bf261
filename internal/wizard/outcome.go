package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected is wrapped by operations when the remote side rejected the input
	// (invalid handle, exhausted quota, duplicate or nonexistent target).
	ErrRejected = errors.New("rejected upstream")

	// ErrBusy is returned when another operation is already in flight.
	ErrBusy = errors.New("operation already in flight")

	// ErrValidation is returned when the search input fails local validation.
	ErrValidation = errors.New("search input too short")

	// ErrWrongStep is returned when an operation is invoked on the wrong step.
	ErrWrongStep = errors.New("operation not allowed on current step")

	// ErrNoSelection is returned by Submit when no candidate is selected.
	ErrNoSelection = errors.New("no candidate selected")
)

// FailureKind classifies a failed operation.
type FailureKind int

const (
	FailureTransport FailureKind = iota // Transport or unexpected server error
	FailureRejected                     // Input rejected upstream
	FailureCancelled                    // Cancelled by a wizard reset
)

// String returns the kind name.
func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureRejected:
		return "rejected"
	case FailureCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// ErrorDetail describes why an operation failed.
type ErrorDetail struct {
	Kind FailureKind
	Err  error
}

func (e *ErrorDetail) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ErrorDetail) Unwrap() error {
	return e.Err
}

// Outcome is the tagged result of one runner invocation: exactly one of
// success, failure or busy.
type Outcome[T any] struct {
	Value   T
	Failure *ErrorDetail
	Busy    bool
}

// Success wraps a successful result.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Failure wraps a failed result.
func Failure[T any](kind FailureKind, err error) Outcome[T] {
	return Outcome[T]{Failure: &ErrorDetail{Kind: kind, Err: err}}
}

// Busy is the outcome of a call rejected by the single-flight gate.
func Busy[T any]() Outcome[T] {
	return Outcome[T]{Busy: true}
}

// OK reports whether the outcome is a success.
func (o Outcome[T]) OK() bool {
	return !o.Busy && o.Failure == nil
}

// Err returns the outcome as an error, nil on success.
func (o Outcome[T]) Err() error {
	switch {
	case o.Busy:
		return ErrBusy
	case o.Failure != nil:
		return o.Failure
	default:
		return nil
	}
}
