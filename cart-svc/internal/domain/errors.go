package domain

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflictDifferentRestaurant
	KindIneligible
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflictDifferentRestaurant:
		return "CONFLICT_DIFFERENT_RESTAURANT"
	case KindIneligible:
		return "INELIGIBLE"
	case KindStore:
		return "STORE_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Error carries a machine-checkable Kind plus a human-readable Message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind. A target with an empty Message
// matches every error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrValidation                  = &Error{Kind: KindValidation}
	ErrNotFound                    = &Error{Kind: KindNotFound}
	ErrConflictDifferentRestaurant = &Error{Kind: KindConflictDifferentRestaurant}
	ErrIneligible                  = &Error{Kind: KindIneligible}
	ErrStore                       = &Error{Kind: KindStore}
)

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Ineligible(msg string) *Error {
	return &Error{Kind: KindIneligible, Message: msg}
}

func StoreFailure(op string, err error) *Error {
	return &Error{Kind: KindStore, Message: "store " + op + " failed", Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
