package resource

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrFetch matches every failure a Client returns: errors.Is(err, ErrFetch).
var ErrFetch = errors.New("fetch failed")

// NetworkError is a transport failure; no response was read.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error       { return e.Err }
func (e *NetworkError) Is(target error) bool { return target == ErrFetch }

// HTTPError is a non-2xx response. Code and Message come from the server's
// error envelope when it sent one.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Code       string
	Message    string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.URL, e.StatusCode, msg)
}

func (e *HTTPError) Is(target error) bool { return target == ErrFetch }

// ParseError is a 2xx response whose body was not the expected JSON shape.
type ParseError struct {
	Method string
	URL    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: parse response: %v", e.Method, e.URL, e.Err)
}

func (e *ParseError) Unwrap() error       { return e.Err }
func (e *ParseError) Is(target error) bool { return target == ErrFetch }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// Message is the text a page shows for err: the server's message when
// there is one, otherwise the error itself.
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && strings.TrimSpace(httpErr.Message) != "" {
		return httpErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Network error. Please check your connection."
	}
	return err.Error()
}
