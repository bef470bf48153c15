package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// observed records Observe callbacks.
type observed struct {
	mu    sync.Mutex
	calls []string
}

func (o *observed) fn(op, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, op+":"+outcome)
}

func (o *observed) last() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.calls) == 0 {
		return ""
	}
	return o.calls[len(o.calls)-1]
}

// testConn builds a Conn against srv with fixed app credentials.
func testConn(srv *httptest.Server, obs *observed) Conn {
	c := Conn{
		HTTP:      srv.Client(),
		BaseURL:   srv.URL,
		AppID:     "key-1",
		AppSecret: "secret-1",
		Log:       zerolog.Nop(),
	}
	if obs != nil {
		c.Observe = obs.fn
	}
	return c
}
