package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMisfit records the auth headers and query of each request.
type stubMisfit struct {
	mu   sync.Mutex
	seen []*http.Request
}

func (s *stubMisfit) last() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[len(s.seen)-1]
}

func (s *stubMisfit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.seen = append(s.seen, r.Clone(r.Context()))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/auth/tokens/exchange":
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "abc" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
			return
		}
		fmt.Fprint(w, `{"access_token":"tok-file","token_type":"bearer"}`)
	case "/move/resource/v1/user/me/profile":
		fmt.Fprint(w, `{"userId":"u1","name":"Ada"}`)
	case "/move/resource/v1/user/me/activity/goals":
		fmt.Fprint(w, `{"goals":[{"id":"g1","points":100}]}`)
	case "/move/resource/v1/user/u9/activity/sessions/s1":
		fmt.Fprint(w, `{"id":"s1","activityType":"Cycling"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"not found"}`)
	}
}

func setupEnv(t *testing.T) (*stubMisfit, string) {
	t.Helper()
	stub := &stubMisfit{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	tokenFile := filepath.Join(t.TempDir(), "token.json")
	t.Setenv("MISFIT_CLIENT_KEY", "key-1")
	t.Setenv("MISFIT_CLIENT_SECRET", "secret-1")
	t.Setenv("MISFIT_API_ROOT", srv.URL)
	t.Setenv("MISFIT_TOKEN_FILE", tokenFile)
	t.Setenv("MISFIT_LOG_LEVEL", "error")
	return stub, tokenFile
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_Authorize(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "authorize", "--state", "s-1")
	require.NoError(t, err)
	assert.Contains(t, out, "/auth/dialog/authorize?")
	assert.Contains(t, out, "client_id=key-1")
	assert.Contains(t, out, "state=s-1")
}

func TestCLI_ExchangeThenUseStoredToken(t *testing.T) {
	stub, _ := setupEnv(t)

	out, err := run(t, "exchange", "--code", "abc")
	require.NoError(t, err)
	var tok map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tok))
	assert.Equal(t, "tok-file", tok["access_token"])

	out, err = run(t, "goals")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-file", stub.last().Header.Get("Authorization"))

	var goals map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &goals))
	assert.Len(t, goals["goals"], 1)
}

func TestCLI_ExchangeRejected(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "exchange", "--code", "wrong")
	require.Error(t, err)
}

func TestCLI_ProfileWithExplicitToken(t *testing.T) {
	stub, _ := setupEnv(t)
	out, err := run(t, "profile", "--token", "tok-flag")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Ada"`)
	assert.Equal(t, "Bearer tok-flag", stub.last().Header.Get("Authorization"))
}

func TestCLI_AppAuthAndParams(t *testing.T) {
	stub, _ := setupEnv(t)
	_, err := run(t, "sessions", "--app-auth", "--user-id", "u9", "--id", "s1", "--param", "start_date=2015-01-01")
	require.NoError(t, err)

	req := stub.last()
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Equal(t, "key-1", req.Header.Get("app_id"))
	assert.Equal(t, "2015-01-01", req.URL.Query().Get("start_date"))
}

func TestCLI_RawOutput(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "profile", "--token", "t", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, `"userId": "u1"`)
}

func TestCLI_NoStoredToken(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "profile")
	require.Error(t, err)
}

func TestCLI_HTTPErrorSurfaces(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "device", "--token", "t", "--user-id", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCLI_MissingCredentials(t *testing.T) {
	setupEnv(t)
	t.Setenv("MISFIT_CLIENT_KEY", "")
	_, err := run(t, "authorize")
	require.Error(t, err)
}

func TestParseParams(t *testing.T) {
	p, err := parseParams([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, "1", p["a"])
	assert.Equal(t, "x=y", p["b"])
	assert.Equal(t, "", p["c"])

	_, err = parseParams([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseParams([]string{"=v"})
	assert.Error(t, err)
}

func TestParseParams_RejectsReservedKeys(t *testing.T) {
	for _, k := range []string{"id", "userId", "token"} {
		_, err := parseParams([]string{k + "=x"})
		require.Error(t, err, k)
		assert.Contains(t, err.Error(), "reserved")
	}
}

func TestCLI_ReservedParamNotSent(t *testing.T) {
	stub, _ := setupEnv(t)
	_, err := run(t, "profile", "--app-auth", "--param", "token=tok-param")
	require.Error(t, err)
	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Empty(t, stub.seen)
}
