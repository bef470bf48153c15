package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Outcome labels passed to Conn.Observe.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeHTTP      = "http_error"
	OutcomeParse     = "parse_error"
	OutcomeTooLarge  = "too_large"
)

// Conn carries what every call needs: the transport, where to send the
// request, the app credentials, and where to report what happened.
// A Conn is read-only once built and may be shared by concurrent calls.
type Conn struct {
	HTTP      HTTPClient
	BaseURL   string
	AppID     string // client key
	AppSecret string // client secret
	Log       zerolog.Logger

	// Observe, if set, is called once per request after it completes.
	Observe func(op, outcome string, elapsed time.Duration)
}

func (c Conn) observe(op, outcome string, elapsed time.Duration) {
	if c.Observe != nil {
		c.Observe(op, outcome, elapsed)
	}
}
