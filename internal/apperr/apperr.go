package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindRemote     Kind = "remote"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindSession    Kind = "session"
)

// Error is a classified failure carrying a stable machine code
// (e.g. "order_not_found", "invalid_transition").
type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, code string) error {
	return &Error{Kind: kind, Code: code}
}

func Wrap(kind Kind, code string, err error) error {
	return &Error{Kind: kind, Code: code, Err: err}
}

func Validation(code string) error {
	return New(KindValidation, code)
}

func NotFound(code string) error {
	return New(KindNotFound, code)
}

func Conflict(code string) error {
	return New(KindConflict, code)
}

func Remote(code string, err error) error {
	return Wrap(KindRemote, code, err)
}

func Session(code string, err error) error {
	return Wrap(KindSession, code, err)
}

func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func HasCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
