package client

import (
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/api"
	errs "github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/errors"
)

// Failure variants. Every failed call returns exactly one of these, or one
// of the sentinel errors below for requests rejected before any I/O.
type (
	TransportError  = errs.TransportError
	HTTPStatusError = errs.HTTPStatusError
	ParseError      = errs.ParseError
	ErrorCategory   = errs.ErrorCategory
)

const (
	Recoverable   = errs.Recoverable
	Irrecoverable = errs.Irrecoverable
)

var (
	ErrUnknownResource = api.ErrUnknownResource
	ErrNoItemEndpoint  = api.ErrNoItemEndpoint

	// ErrResponseTooLarge is wrapped by the *TransportError returned for an
	// oversized response body.
	ErrResponseTooLarge = api.ErrResponseTooLarge
)

// IsTransport reports whether err is a transport failure (no response).
func IsTransport(err error) bool { return errs.IsTransport(err) }

// IsHTTPStatus reports whether err is a non-200 response.
func IsHTTPStatus(err error) bool { return errs.IsHTTPStatus(err) }

// IsParse reports whether err is an undecodable 200 response.
func IsParse(err error) bool { return errs.IsParse(err) }

// IsIrrecoverable reports whether repeating the call cannot succeed.
func IsIrrecoverable(err error) bool { return errs.IsIrrecoverable(err) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int { return errs.StatusCode(err) }
