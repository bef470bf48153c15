package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	errs "github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/errors"
)

func TestAuthorizeURL(t *testing.T) {
	t.Parallel()
	p := AuthorizeParams{
		ClientID:     "key-1",
		ResponseType: "code",
		RedirectURI:  "https://app.example.com/callback",
		Scope:        "public,email",
	}
	want := "https://api.example.com/auth/dialog/authorize?" + url.Values{
		"client_id":     {"key-1"},
		"response_type": {"code"},
		"redirect_uri":  {"https://app.example.com/callback"},
		"scope":         {"public,email"},
	}.Encode()
	if got := AuthorizeURL("https://api.example.com", p); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}

	p.State = "st-1"
	u, err := url.Parse(AuthorizeURL("https://api.example.com", p))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Query().Get("state") != "st-1" {
		t.Fatalf("state missing: %s", u.RawQuery)
	}
}

func TestExchange_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != ExchangePath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		want := map[string]string{
			"grant_type":    "authorization_code",
			"code":          "c-1",
			"client_id":     "key-1",
			"client_secret": "secret-1",
			"redirect_uri":  "https://app.example.com/cb",
		}
		for k, v := range want {
			if got := r.PostForm.Get(k); got != v {
				t.Errorf("form %s: got %q want %q", k, got, v)
			}
		}
		_, _ = w.Write([]byte(`{"access_token":"abc"}`))
	}))
	defer srv.Close()
	obs := &observed{}

	tok, err := Exchange(context.Background(), testConn(srv, obs), "c-1", "https://app.example.com/cb")
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if tok.AccessToken != "abc" || tok.Raw["access_token"] != "abc" {
		t.Fatalf("unexpected token: %+v", tok)
	}
	if obs.last() != "exchange:ok" {
		t.Fatalf("unexpected observation: %q", obs.last())
	}
}

func TestExchange_BadCode(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad code"))
	}))
	defer srv.Close()

	tok, err := Exchange(context.Background(), testConn(srv, nil), "nope", "")
	if tok != nil {
		t.Fatalf("expected no token alongside error, got %+v", tok)
	}
	var he *errs.HTTPStatusError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPStatusError, got %v", err)
	}
	if he.StatusCode != http.StatusBadRequest || he.Body != "bad code" {
		t.Fatalf("unexpected error: %+v", he)
	}
}

func TestExchange_MalformedJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := Exchange(context.Background(), testConn(srv, nil), "c", "")
	var pe *errs.ParseError
	if !errors.As(err, &pe) || pe.Body != "<html>oops</html>" {
		t.Fatalf("expected ParseError with raw body, got %v", err)
	}
}

func TestExchange_HTTPDoError(t *testing.T) {
	t.Parallel()
	c := Conn{HTTP: &http.Client{Transport: &errRT{}}, BaseURL: "http://example.com"}
	if _, err := Exchange(context.Background(), c, "c", ""); !errs.IsTransport(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
