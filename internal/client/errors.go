package client

import (
	"coachvision/backend/internal/api"
	"errors"
	"fmt"
)

// Errors decoded from the "code" field of an error response. Match them with
// errors.Is; the concrete value is an *APIError.
var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrInvalidDay           = errors.New("invalid day")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConflict             = errors.New("conflict")
	ErrGenerationFailure    = errors.New("plan generation failed")
	ErrStoreFailure         = errors.New("store failure")
	ErrReplaceInconsistency = errors.New("replace left no active plan")
	ErrServer               = errors.New("server error")
)

var codeErrors = map[string]error{
	api.CodeUnauthenticated:      ErrUnauthenticated,
	api.CodeForbidden:            ErrForbidden,
	api.CodeNotFound:             ErrNotFound,
	api.CodeInvalidDay:           ErrInvalidDay,
	api.CodeInvalidInput:         ErrInvalidInput,
	api.CodeConflict:             ErrConflict,
	api.CodeGenerationFailure:    ErrGenerationFailure,
	api.CodeStoreFailure:         ErrStoreFailure,
	api.CodeReplaceInconsistency: ErrReplaceInconsistency,
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

func newAPIError(status int, body api.ErrorResponse) *APIError {
	kind, ok := codeErrors[body.Code]
	if !ok {
		switch {
		case status == 401:
			kind = ErrUnauthenticated
		case status == 404:
			kind = ErrNotFound
		default:
			kind = ErrServer
		}
	}
	msg := body.Error
	if msg == "" {
		msg = "no error message"
	}
	return &APIError{Status: status, Code: body.Code, Message: msg, kind: kind}
}
