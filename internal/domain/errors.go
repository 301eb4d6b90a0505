package domain

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибки предметной области; по нему HTTP-слой выбирает статус.
type Kind string

const (
	KindConflict          Kind = "conflict"
	KindForbidden         Kind = "forbidden"
	KindInvalidTransition Kind = "invalid_transition"
	KindShiftClosed       Kind = "shift_closed"
	KindRestaurantClosed  Kind = "restaurant_closed"
	KindNotFound          Kind = "not_found"
	KindValidation        Kind = "validation"
	KindUnauthorized      Kind = "unauthorized"
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return e.Msg
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrConflict)
// works for every conflict regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

var (
	ErrConflict          = &Error{Kind: KindConflict}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrShiftClosed       = &Error{Kind: KindShiftClosed}
	ErrRestaurantClosed  = &Error{Kind: KindRestaurantClosed}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
)

func newError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error  { return newError(KindConflict, format, args...) }
func Forbidden(format string, args ...any) error { return newError(KindForbidden, format, args...) }
func NotFound(format string, args ...any) error  { return newError(KindNotFound, format, args...) }
func Invalid(format string, args ...any) error   { return newError(KindValidation, format, args...) }
func InvalidTransition(format string, args ...any) error {
	return newError(KindInvalidTransition, format, args...)
}

// KindOf returns the domain kind of err, or "" for infrastructure errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
