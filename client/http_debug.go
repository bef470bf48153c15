package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// debugTransport dumps HTTP traffic for troubleshooting API communication
// (unexpected statuses, malformed payloads, auth header mix-ups).
//
// Enable with MISFIT_DEBUG=true (or DEBUG=true), or WithDebugLogging(true).
// The Authorization and app_secret header values are redacted from dumps and
// form-encoded request bodies (which carry client_secret and the
// authorization code) are not dumped at all. Response bodies are logged in
// full.
type debugTransport struct {
	base http.RoundTripper
	log  *zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}
	l := dt.log

	withBody := !strings.HasPrefix(req.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
	if reqDump, err := httputil.DumpRequestOut(req, withBody); err == nil {
		l.Debug().Str("method", req.Method).Str("path", req.URL.Path).Str("request_dump", redactDump(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		l.Error().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		l.Debug().Str("method", req.Method).Str("path", req.URL.Path).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

var credentialHeader = regexp.MustCompile(`(?mi)^(authorization|app_secret):[^\r\n]*`)

// redactDump blanks credential header values in a wire dump.
func redactDump(dump []byte) string {
	return credentialHeader.ReplaceAllString(string(dump), "$1: [redacted]")
}

// debugLoggingRequested checks if HTTP debug logging should be enabled via
// MISFIT_DEBUG=true or DEBUG=true (case-sensitive).
func debugLoggingRequested() bool {
	return os.Getenv("MISFIT_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
