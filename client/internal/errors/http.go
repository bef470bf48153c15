package errors

// categoryForStatus maps HTTP status codes to error categories.
// - 4xx client errors (except 408 and 429) are irrecoverable
// - 5xx server errors are recoverable
func categoryForStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408: // Request Timeout
			return Recoverable
		case 429: // Too Many Requests
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// 1xx/3xx reaching us means the transport did not follow through;
		// asking again might.
		return Recoverable
	}
}

// NewHTTPError builds the error for a non-200 response.
func NewHTTPError(op string, statusCode int, body []byte) *HTTPStatusError {
	return &HTTPStatusError{Op: op, StatusCode: statusCode, Body: string(body)}
}

// NewParseError builds the error for a 200 response that did not decode.
func NewParseError(op string, statusCode int, body []byte, err error) *ParseError {
	return &ParseError{Op: op, StatusCode: statusCode, Body: string(body), Err: err}
}

// NewNetworkError builds the error for a request that produced no response.
func NewNetworkError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}
