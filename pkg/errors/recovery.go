// Package errors provides comprehensive error handling utilities.
//
// This file contains panic recovery utilities. Statistical sub-computations
// on user data (matrix solves, tree growth, kNN estimators) run behind these
// helpers so that an unexpected panic degrades one column's score instead of
// taking down the whole detection call.

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError represents an error that was created from a recovered panic.
// It includes the original panic value and stack trace information.
type PanicError struct {
	// PanicValue is the original value passed to panic()
	PanicValue interface{}

	// StackTrace contains the stack trace at the time of panic
	StackTrace string

	// Operation identifies where the panic was recovered
	Operation string
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns nil as PanicError doesn't wrap another error by default.
func (e *PanicError) Unwrap() error {
	return nil
}

// String provides detailed information including stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a new PanicError with the given operation context and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover is meant to be deferred with a pointer to the caller's named
// error result. A recovered panic becomes a PanicError; if the function had
// already set an error, the panic is reported alongside it and the original
// stays reachable through errors.Is.
//
// Usage:
//
//	func (p *Probe) run() (err error) {
//	    defer Recover(&err, "Probe.run")
//	    ...
//	}
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		if *err != nil {
			*err = fmt.Errorf("panic in %s: %v (original error: %w)",
				operation, r, *err)
			return
		}
		*err = NewPanicError(operation, r)
	}
}

// SafeExecute executes fn and converts any panic into a PanicError.
//
// Example:
//
//	err := SafeExecute("ridge solve", func() error {
//	    return ridge.Fit(X, y)
//	})
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}

// SafeValue is SafeExecute for computations that yield a score. On panic
// or error the returned value is 0, the neutral score used by every column
// scorer.
func SafeValue(operation string, fn func() (float64, error)) (v float64, err error) {
	defer func() {
		if err != nil {
			v = 0
		}
	}()
	defer Recover(&err, operation)
	return fn()
}
