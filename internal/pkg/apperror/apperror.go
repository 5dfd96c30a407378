// Package apperror classifies engine failures so the transport layer can map
// them to HTTP statuses without inspecting message strings.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuthorization
	KindNotFound
	KindConflict
	KindExternal
	// KindManualIntervention marks failures an operator must resolve by hand,
	// such as a card refund past the gateway's cancellation window.
	KindManualIntervention
)

type AppError struct {
	Kind    Kind
	Message string
	// Details carries structured context for the response body, for example
	// manual refund instructions.
	Details map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the kind to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindExternal:
		return http.StatusBadGateway
	case KindManualIntervention:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return New(KindValidation, message)
}

func Authorization(message string) *AppError {
	return New(KindAuthorization, message)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

func External(message string, err error) *AppError {
	return Wrap(KindExternal, message, err)
}

func ManualIntervention(message string, details map[string]interface{}) *AppError {
	return &AppError{Kind: KindManualIntervention, Message: message, Details: details}
}

// From extracts an *AppError from err, or nil if err is not one.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
