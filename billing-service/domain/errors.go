package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the billing error taxonomy. Call sites add context
// with errors.Wrap; transport layers match with errors.Is.
var (
	// ErrNotFound signals a missing payment, payment method or processor.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized signals that a payment or payment method does not
	// belong to the requesting principal.
	ErrUnauthorized = errors.New("access denied")

	// ErrUnsupportedOperation signals a payment method kind with no
	// working processor.
	ErrUnsupportedOperation = errors.New("operation not supported")

	// ErrInvalidState signals broken internal linkage, such as a payment
	// without its order or parcel, or an unmatched request handler.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict signals a lost optimistic-locking race.
	ErrConflict = errors.New("concurrent modification")
)

// ValidationError reports client input or precondition violations.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError checks whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PaymentFailedError is the typed charge failure. It carries everything the
// orchestrator needs to close out the attempt record and everything the
// caller needs to understand the decline.
type PaymentFailedError struct {
	Provider      string
	Status        string
	Reason        string
	TransactionID string // empty on failure
}

func (e *PaymentFailedError) Error() string {
	return fmt.Sprintf("payment failed: %s (%s)", e.Status, e.Reason)
}

// FailureReason renders the terminal attempt reason, e.g. "DECLINED: card declined"
func (e *PaymentFailedError) FailureReason() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Reason)
}
