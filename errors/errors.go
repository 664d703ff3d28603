package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	ErrNotFound     = "NOT FOUND"
	ErrInvalidInput = "INVALID INPUT"
	ErrAuth         = "UNAUTHORIZED"
	ErrAccessDenied = "ACCESS DENIED"
	ErrConflict     = "CONFLICT"
	ErrRejected     = "REJECTED"
	ErrUnavailable  = "UNAVAILABLE"
	ErrBusy         = "BUSY"
	ErrInternal     = "INTERNAL"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

// Is matches on Code only, so errors.Is(err, NotFound) holds for any
// not-found error whatever its message.
func (e ErrorResponse) Is(target error) bool {
	t, ok := target.(ErrorResponse)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	NotFound     = ErrorResponse{Code: ErrNotFound}
	InvalidInput = ErrorResponse{Code: ErrInvalidInput}
	Auth         = ErrorResponse{Code: ErrAuth}
	AccessDenied = ErrorResponse{Code: ErrAccessDenied}
	Conflict     = ErrorResponse{Code: ErrConflict}
	Rejected     = ErrorResponse{Code: ErrRejected}
	Unavailable  = ErrorResponse{Code: ErrUnavailable}
	Busy         = ErrorResponse{Code: ErrBusy}
	Internal     = ErrorResponse{Code: ErrInternal}
)

func New(code string, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message}
}

// CodeOf returns the code of the first ErrorResponse in err's chain, or
// ErrInternal when there is none.
func CodeOf(err error) string {
	var appErr ErrorResponse
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// MessageOf returns the message of the first ErrorResponse in err's chain.
func MessageOf(err error) string {
	var appErr ErrorResponse
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
