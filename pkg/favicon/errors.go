package favicon

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorType categorizes favicon fetch failures
type ErrorType string

const (
	ErrorTypeServiceUnavailable ErrorType = "service_unavailable"
	ErrorTypeTimeout            ErrorType = "timeout"
	ErrorTypeNetwork            ErrorType = "network"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeInvalidHost        ErrorType = "invalid_host"
	ErrorTypeInvalidResponse    ErrorType = "invalid_response"
	ErrorTypeCancelled          ErrorType = "cancelled"
	ErrorTypeBlocked            ErrorType = "blocked"
)

// FetchError is a structured favicon fetch failure. Callers never show it
// to the user; it only decides what gets logged.
type FetchError struct {
	Type    ErrorType
	Host    string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (%v)", e.Type, e.Host, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Host, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// classify turns a transport error into a FetchError
func classify(host string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &FetchError{Type: ErrorTypeCancelled, Host: host, Message: "request cancelled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &FetchError{Type: ErrorTypeTimeout, Host: host, Message: "request timed out", Cause: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Type: ErrorTypeTimeout, Host: host, Message: "request timed out", Cause: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &FetchError{Type: ErrorTypeServiceUnavailable, Host: host, Message: "service not available", Cause: err}
	}

	return &FetchError{Type: ErrorTypeNetwork, Host: host, Message: "network error", Cause: err}
}

func newStatusError(host string, status int) *FetchError {
	if status == 404 {
		return &FetchError{Type: ErrorTypeNotFound, Host: host, Message: "no favicon"}
	}
	return &FetchError{Type: ErrorTypeInvalidResponse, Host: host, Message: fmt.Sprintf("unexpected status %d", status)}
}
