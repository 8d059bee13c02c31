// Package errors holds the domain error type shared by services and handlers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// DomainError is a sentinel error carrying a stable code and the HTTP status the
// handlers should answer with.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code so a copy created by WithMessage still matches its sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of the sentinel with a more specific message.
func (e *DomainError) WithMessage(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Status:  e.Status,
	}
}

// As extracts the DomainError from a wrapped chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err, 500 when it is not a DomainError.
func StatusOf(err error) int {
	if de, ok := As(err); ok && de.Status != 0 {
		return de.Status
	}
	return http.StatusInternalServerError
}
