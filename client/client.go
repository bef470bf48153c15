package client

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/api"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the Misfit cloud API on behalf of one registered app.
// It holds no per-user state and is safe for concurrent use; each call
// returns either a result or an error, never both.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
	conn api.Conn
}

// New constructs a Client from cfg. Omitted Config fields take their
// documented defaults; an empty ClientKey or ClientSecret is an error.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: DefaultHTTPTimeout},
		log:  log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.conn = api.Conn{
		HTTP:      c.http,
		BaseURL:   cfg.APIRoot,
		AppID:     cfg.ClientKey,
		AppSecret: cfg.ClientSecret,
		Log:       c.log.With().Str("component", "misfit_client").Logger(),
		Observe:   observeRequest,
	}
	return c, nil
}

// Config returns the effective configuration, defaults included.
func (c *Client) Config() Config { return c.cfg }

// --------------------------------------------------------------------
// OAuth operations - delegated to internal/api
// --------------------------------------------------------------------

// AuthorizeURL returns the authorization dialog URL to send the user's
// browser to. It performs no I/O.
func (c *Client) AuthorizeURL() string {
	return c.AuthorizeURLWithState("")
}

// AuthorizeURLWithState is AuthorizeURL with an OAuth state value that the
// dialog echoes back to the redirect URI.
func (c *Client) AuthorizeURLWithState(state string) string {
	return api.AuthorizeURL(c.cfg.APIRoot, api.AuthorizeParams{
		ClientID:     c.cfg.ClientKey,
		ResponseType: c.cfg.ResponseType,
		RedirectURI:  c.cfg.RedirectURI,
		Scope:        c.cfg.Scope,
		State:        state,
	})
}

// Exchange trades the authorization code delivered to the redirect URI for
// an access token.
func (c *Client) Exchange(ctx context.Context, code string) (*TokenResponse, error) {
	return api.Exchange(ctx, c.conn, code, c.cfg.RedirectURI)
}

// --------------------------------------------------------------------
// Resource operations - delegated to internal/api
// --------------------------------------------------------------------

// Fetch requests any resource and returns the decoded JSON object.
//
// params may carry the reserved keys "id" (select the item endpoint),
// "userId" (default "me") and "token" (bearer auth; without it the app
// credentials are sent). Every other key becomes a query parameter.
// A 200 body that is not a JSON object yields a *ParseError.
func (c *Client) Fetch(ctx context.Context, resource Resource, params Params) (map[string]any, error) {
	var out map[string]any
	if err := api.Get(ctx, c.conn, resource, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProfile returns the user's profile.
func (c *Client) GetProfile(ctx context.Context, params Params) (*Profile, error) {
	var p Profile
	if err := api.Get(ctx, c.conn, ResourceProfile, params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetDevice returns the user's paired device.
func (c *Client) GetDevice(ctx context.Context, params Params) (*Device, error) {
	var d Device
	if err := api.Get(ctx, c.conn, ResourceDevice, params, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetGoals returns daily goals, filtered by start_date/end_date, or the
// single goal named by "id".
func (c *Client) GetGoals(ctx context.Context, params Params) (*Goals, error) {
	var g Goals
	if err := api.Get(ctx, c.conn, ResourceGoal, params, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetSummary returns the activity summary for start_date..end_date. With
// detail=true the per-day breakdown is in Summary.Days.
func (c *Client) GetSummary(ctx context.Context, params Params) (*Summary, error) {
	var s Summary
	if err := api.Get(ctx, c.conn, ResourceSummary, params, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSession returns activity sessions, or the single session named by "id".
func (c *Client) GetSession(ctx context.Context, params Params) (*Sessions, error) {
	var s Sessions
	if err := api.Get(ctx, c.conn, ResourceSession, params, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSleep returns sleep periods, or the single sleep named by "id".
func (c *Client) GetSleep(ctx context.Context, params Params) (*Sleeps, error) {
	var s Sleeps
	if err := api.Get(ctx, c.conn, ResourceSleep, params, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
