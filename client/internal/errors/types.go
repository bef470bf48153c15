// Package errors defines the failure values returned by the Misfit client.
//
// Every failed call yields exactly one of three variants:
//   - *TransportError: the request never produced an HTTP response
//     (dial failure, timeout, cancelled context);
//   - *HTTPStatusError: the server answered with a non-200 status;
//   - *ParseError: the server answered 200 but the body was not the JSON
//     the caller asked for.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory tells callers whether repeating a failed call could succeed.
// The client itself never retries.
type ErrorCategory int

const (
	// Recoverable failures may succeed when repeated.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures will fail again unless the request changes.
	// Examples: 401 Unauthorized, 403 Forbidden, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// TransportError reports a failure below HTTP: no response was received.
type TransportError struct {
	Op  string // logical operation, e.g. "exchange" or "get profile"
	Err error  // the error returned by the http.Client
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

// Unwrap exposes the original error so errors.Is(err, context.DeadlineExceeded)
// and friends keep working.
func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a response whose status was not 200 OK.
type HTTPStatusError struct {
	Op         string
	StatusCode int
	Body       string // raw response body, unparsed
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

// Category maps the status code to a retry category.
func (e *HTTPStatusError) Category() ErrorCategory {
	return categoryForStatus(e.StatusCode)
}

// ParseError reports a 200 response whose body could not be decoded.
type ParseError struct {
	Op         string
	StatusCode int
	Body       string // raw response body, unparsed
	Err        error  // the decoder error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid JSON body: %s", e.Op, e.Body)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsTransport reports whether err is, or wraps, a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return stderrors.As(err, &te)
}

// IsHTTPStatus reports whether err is, or wraps, a *HTTPStatusError.
func IsHTTPStatus(err error) bool {
	var he *HTTPStatusError
	return stderrors.As(err, &he)
}

// IsParse reports whether err is, or wraps, a *ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return stderrors.As(err, &pe)
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from an HTTP response.
func StatusCode(err error) int {
	var he *HTTPStatusError
	if stderrors.As(err, &he) {
		return he.StatusCode
	}
	var pe *ParseError
	if stderrors.As(err, &pe) {
		return pe.StatusCode
	}
	return 0
}

// IsIrrecoverable returns true if repeating the call cannot help.
func IsIrrecoverable(err error) bool {
	var he *HTTPStatusError
	if stderrors.As(err, &he) {
		return he.Category() == Irrecoverable
	}
	// A body that did not parse will not parse the next time either.
	return IsParse(err)
}
