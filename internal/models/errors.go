package models

import "fmt"

// ErrorInfo describes why a fetch failed.
// StatusCode and StatusText are only set when the API answered with a
// non-2xx status; transport and decode failures carry just the message.
type ErrorInfo struct {
	Message    string
	StatusCode int
	StatusText string
}

func (e *ErrorInfo) Error() string {
	if e == nil {
		return "fetch failed"
	}
	return e.Message
}

// NewHTTPError builds the ErrorInfo for a non-2xx response.
func NewHTTPError(statusCode int, statusText string) *ErrorInfo {
	return &ErrorInfo{
		Message:    fmt.Sprintf("Fetch failed. %d %s", statusCode, statusText),
		StatusCode: statusCode,
		StatusText: statusText,
	}
}

// NewTransportError wraps a network or decode error.
func NewTransportError(err error) *ErrorInfo {
	return &ErrorInfo{Message: err.Error()}
}

// IsHTTP reports whether the failure came from a non-2xx response.
func (e *ErrorInfo) IsHTTP() bool {
	return e != nil && e.StatusCode != 0
}
