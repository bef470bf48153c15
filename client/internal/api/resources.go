package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	errs "github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/errors"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/types"
)

// maxResponseSize caps how much of a response body is read.
// Resource payloads for a month of sessions stay well below this.
const maxResponseSize = 4 << 20

// ErrResponseTooLarge is wrapped in the *TransportError returned when a
// response body exceeds maxResponseSize.
var ErrResponseTooLarge = errors.New("response body too large")

// errNotObject reports a 200 body that decoded to JSON null.
var errNotObject = errors.New("body is not a JSON object")

// Get fetches resource r and decodes the JSON body into out.
//
// With a token parameter the request carries "Authorization: Bearer <token>";
// without one it carries the app_id/app_secret headers instead.
func Get(ctx context.Context, c Conn, r Resource, params types.Params, out any) error {
	op := "get " + string(r)
	if err := ctx.Err(); err != nil {
		return errs.NewNetworkError(op, err)
	}
	res, err := resolve(r, params)
	if err != nil {
		return err
	}

	url := c.BaseURL + res.path
	if len(res.query) > 0 {
		url += "?" + res.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if res.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+res.token)
	} else {
		// Sent as-is; Header.Set would canonicalize to App_id.
		httpReq.Header["app_id"] = []string{c.AppID}
		httpReq.Header["app_secret"] = []string{c.AppSecret}
	}
	return do(c, op, string(r), httpReq, out)
}

// do sends req, enforces a 200 status, and decodes the body into out.
func do(c Conn, op, metric string, req *http.Request, out any) error {
	masked := maskURL(req.URL.String())
	start := time.Now()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		c.observe(metric, OutcomeTransport, elapsed)
		c.Log.Error().Err(err).Str("op", op).Str("method", req.Method).Str("url", masked).Dur("elapsed", elapsed).Msg("misfit request failed")
		return errs.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	elapsed := time.Since(start)
	if err != nil {
		c.observe(metric, OutcomeTransport, elapsed)
		c.Log.Error().Err(err).Str("op", op).Str("url", masked).Int("status_code", resp.StatusCode).Msg("misfit response read failed")
		return errs.NewNetworkError(op, err)
	}
	if len(body) > maxResponseSize {
		c.observe(metric, OutcomeTooLarge, elapsed)
		c.Log.Error().Str("op", op).Str("url", masked).Int("status_code", resp.StatusCode).Int("limit_bytes", maxResponseSize).Msg("misfit response too large")
		return errs.NewNetworkError(op, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseSize))
	}

	c.Log.Debug().
		Str("op", op).
		Str("method", req.Method).
		Str("url", masked).
		Int("status_code", resp.StatusCode).
		Int("body_bytes", len(body)).
		Dur("elapsed", elapsed).
		Msg("misfit request completed")

	if resp.StatusCode != http.StatusOK {
		c.observe(metric, OutcomeHTTP, elapsed)
		return errs.NewHTTPError(op, resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.observe(metric, OutcomeParse, elapsed)
		return errs.NewParseError(op, resp.StatusCode, body, err)
	}
	if m, ok := out.(*map[string]any); ok && *m == nil {
		c.observe(metric, OutcomeParse, elapsed)
		return errs.NewParseError(op, resp.StatusCode, body, errNotObject)
	}
	c.observe(metric, OutcomeOK, elapsed)
	return nil
}
