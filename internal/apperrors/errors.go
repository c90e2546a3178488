package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP mapping and retry policy.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// Error is the standard application error carrying a kind and a
// caller-facing message. Internal errors keep the cause for logs but
// never leak it to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// InsufficientStockError reports a checkout line that asked for more
// units than the shop has on hand. Surfaced verbatim to the caller so
// the cart can be corrected.
type InsufficientStockError struct {
	InventoryID int
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for inventory item %d: %d available, %d requested",
		e.InventoryID, e.Available, e.Requested)
}

// KindOf reports the kind of err, or KindInternal for anything that is
// not an application error.
func KindOf(err error) Kind {
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return KindInsufficientStock
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the caller-facing message for err. Internal errors get
// a generic message so persistence details never reach the client.
func Message(err error) string {
	if KindOf(err) == KindInternal {
		return "internal server error"
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
