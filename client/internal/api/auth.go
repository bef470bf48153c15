package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	errs "github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/errors"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/types"
)

// AuthorizeParams are the query parameters of the authorization dialog URL.
type AuthorizeParams struct {
	ClientID     string
	ResponseType string
	RedirectURI  string
	Scope        string
	State        string // optional
}

// AuthorizeURL builds the URL the user's browser is sent to. It performs
// no I/O.
func AuthorizeURL(baseURL string, p AuthorizeParams) string {
	q := url.Values{
		"client_id":     {p.ClientID},
		"response_type": {p.ResponseType},
		"redirect_uri":  {p.RedirectURI},
		"scope":         {p.Scope},
	}
	if p.State != "" {
		q.Set("state", p.State)
	}
	return baseURL + AuthorizePath + "?" + q.Encode()
}

// Exchange trades an authorization code for an access token. redirectURI
// must match the one used to build the authorize URL.
func Exchange(ctx context.Context, c Conn, code, redirectURI string) (*types.TokenResponse, error) {
	const op = "exchange"
	if err := ctx.Err(); err != nil {
		return nil, errs.NewNetworkError(op, err)
	}
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {c.AppID},
		"client_secret": {c.AppSecret},
		"redirect_uri":  {redirectURI},
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+ExchangePath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	var tok types.TokenResponse
	if err := do(c, op, op, httpReq, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
