package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Machine-readable codes carried by Error. Server-responded errors carry the
// code from the response body when present, else CodeUnknown.
const (
	CodeUnknown       = "UNKNOWN_ERROR"
	CodeNetwork       = "NETWORK_ERROR"
	CodeRequestFailed = "REQUEST_FAILED"
)

// Fallback messages used when a failure carries no message of its own.
const (
	msgRequestFailed = "Request failed"
	msgNoResponse    = "No response from server"
)

// Error is the normalized failure shape every call returns. Status is the
// HTTP status for server-responded errors and 0 when no response was
// received or the request could not be dispatched.
type Error struct {
	Message string
	Code    string
	Status  int
}

func (e *Error) Error() string { return e.Message }

// Is lets errors.Is match the coarse sentinels above without callers
// inspecting codes or statuses.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrUnavailable:
		return e.Code == CodeNetwork
	}
	return false
}

// Temporary reports whether the failure was a no-response (network) outcome
// that may succeed if retried by the caller.
func (e *Error) Temporary() bool { return e.Code == CodeNetwork }

// Unauthorized reports whether the server rejected the session credential.
func (e *Error) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

func serverError(status int, message, code string) *Error {
	if message == "" {
		message = msgRequestFailed
	}
	if code == "" {
		code = CodeUnknown
	}
	return &Error{Message: message, Code: code, Status: status}
}

func networkError() *Error {
	return &Error{Message: msgNoResponse, Code: CodeNetwork, Status: 0}
}

func requestError(err error) *Error {
	message := msgRequestFailed
	if err != nil {
		message = err.Error()
	}
	return &Error{Message: message, Code: CodeRequestFailed, Status: 0}
}
