package client

import (
	"errors"
	"strings"
	"time"
)

// Defaults applied by New to omitted Config fields.
const (
	DefaultAPIRoot      = "https://api.misfitwearables.com"
	DefaultResponseType = "code"
	DefaultScope        = "public,email,birthday,tracking,sessions,sleeps"
	DefaultHTTPTimeout  = 30 * time.Second
)

// ErrMissingCredentials is returned by New when the client key or secret is empty.
var ErrMissingCredentials = errors.New("client key and client secret are required")

// Config is the application registration at the Misfit developer portal.
// It is copied into the Client by New and never changes afterwards.
type Config struct {
	ClientKey    string // app_id / client_id
	ClientSecret string // app_secret / client_secret
	APIRoot      string // default DefaultAPIRoot
	RedirectURI  string // must match the portal registration; sent as-is
	ResponseType string // default DefaultResponseType
	Scope        string // comma-joined permissions; default DefaultScope
}

// withDefaults fills omitted fields.
func (c Config) withDefaults() Config {
	if c.APIRoot == "" {
		c.APIRoot = DefaultAPIRoot
	}
	c.APIRoot = strings.TrimRight(c.APIRoot, "/")
	if c.ResponseType == "" {
		c.ResponseType = DefaultResponseType
	}
	if c.Scope == "" {
		c.Scope = DefaultScope
	}
	return c
}

// Validate reports whether c can be used to build a Client.
func (c Config) Validate() error {
	if c.ClientKey == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}
