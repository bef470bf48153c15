package client

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

var testCfg = Config{ClientKey: "key-1", ClientSecret: "secret-1"}

func TestWithHTTPTimeoutAndDebugLogging(t *testing.T) {
	// timeout option sets http timeout
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}

	// debug logging wraps transport
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c2, err := New(testCfg, WithHTTPClient(&http.Client{Transport: rt}), WithHTTPTimeout(2*time.Second), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c2.http.Transport.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport, got %T", c2.http.Transport)
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", strings.NewReader(""))
	if _, err := c2.http.Do(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !called {
		t.Fatalf("base transport not invoked")
	}
}

func TestWithDebugLogging_NotDoubleWrapped(t *testing.T) {
	c, err := New(testCfg, WithDebugLogging(true), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dt, ok := c.http.Transport.(*debugTransport)
	if !ok {
		t.Fatalf("expected debugTransport, got %T", c.http.Transport)
	}
	if _, nested := dt.base.(*debugTransport); nested {
		t.Fatal("debug transport wrapped twice")
	}
}

func TestRedactDump(t *testing.T) {
	dump := []byte("GET /x HTTP/1.1\r\nHost: a\r\nAuthorization: Bearer tok-1\r\napp_secret: s3cret\r\napp_id: key\r\n\r\n")
	got := redactDump(dump)
	if strings.Contains(got, "tok-1") || strings.Contains(got, "s3cret") {
		t.Fatalf("credentials leaked: %q", got)
	}
	if !strings.Contains(got, "app_id: key") {
		t.Fatalf("non-secret header removed: %q", got)
	}
}
