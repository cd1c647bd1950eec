package domain

import "errors"

var (
	// ErrRepNotFound is returned when a rep ID does not resolve.
	ErrRepNotFound = errors.New("rep not found")
	// ErrRepInactive is returned when an operation requires an active rep.
	ErrRepInactive = errors.New("rep is inactive")
)

// ValidationError marks a rejected input. Handlers map it to a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(msg string) error {
	return &ValidationError{Msg: msg}
}
