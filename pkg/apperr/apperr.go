// Package apperr defines the typed errors the workflow services return, so
// callers can branch on kind instead of matching message strings.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports unmet required modifier groups or a malformed
// submission. The violating fields are listed so the caller can point the
// operator at them.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// SessionClosedError reports an append to a table session that is no
// longer open.
type SessionClosedError struct {
	SessionID uint
}

func (e *SessionClosedError) Error() string {
	return fmt.Sprintf("table session %d is closed", e.SessionID)
}

// UnsettledOrdersError reports a close attempt on a session that still has
// orders neither paid nor cancelled.
type UnsettledOrdersError struct {
	SessionID uint
	OrderIDs  []uint
}

func (e *UnsettledOrdersError) Error() string {
	return fmt.Sprintf("table session %d has %d unsettled orders", e.SessionID, len(e.OrderIDs))
}

// ConflictError reports a lost compare-and-swap, e.g. a second driver
// collecting an order that is no longer available.
type ConflictError struct {
	Resource string
}

func (e *ConflictError) Error() string {
	return e.Resource + " no longer available"
}

// TransportError wraps a failure reaching an external collaborator
// (store, printer, notifier). The pre-transition state is preserved and
// the operation is safe to retry.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrNotFound is returned when the referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrInvalidTransition is returned for a target state outside the
// enumerated set, or finishing a non-terminal order.
var ErrInvalidTransition = errors.New("invalid transition")

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
