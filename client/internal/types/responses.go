package types

import (
	"encoding/json"
	"time"

	"golang.org/x/oauth2"
)

// ------------------------------
// Response Types
// ------------------------------

// Goals wraps the goal endpoint response.
type Goals struct {
	Goals []Goal `json:"goals"`
}

// UnmarshalJSON accepts the collection payload ({"goals":[...]}) xor the
// single goal returned when the request named an id.
func (g *Goals) UnmarshalJSON(data []byte) error {
	items, err := unmarshalList[Goal](data, "goals")
	if err != nil {
		return err
	}
	g.Goals = items
	return nil
}

// Sessions wraps the session endpoint response.
type Sessions struct {
	Sessions []Session `json:"sessions"`
}

// UnmarshalJSON accepts {"sessions":[...]} xor a single session object.
func (s *Sessions) UnmarshalJSON(data []byte) error {
	items, err := unmarshalList[Session](data, "sessions")
	if err != nil {
		return err
	}
	s.Sessions = items
	return nil
}

// Sleeps wraps the sleep endpoint response.
type Sleeps struct {
	Sleeps []Sleep `json:"sleeps"`
}

// UnmarshalJSON accepts {"sleeps":[...]} xor a single sleep object.
func (s *Sleeps) UnmarshalJSON(data []byte) error {
	items, err := unmarshalList[Sleep](data, "sleeps")
	if err != nil {
		return err
	}
	s.Sleeps = items
	return nil
}

// unmarshalList decodes data as either an object holding a list under key
// or as a single item. An empty object yields an empty list.
func unmarshalList[T any](data []byte, key string) ([]T, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if raw, ok := fields[key]; ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	if len(fields) == 0 {
		return nil, nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}

// TokenResponse is the body of a successful code exchange.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`

	// Raw holds every field of the response object, including the ones
	// above.
	Raw map[string]any `json:"-"`
}

// UnmarshalJSON fills the typed fields and keeps the full object in Raw.
func (t *TokenResponse) UnmarshalJSON(data []byte) error {
	type plain TokenResponse
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TokenResponse(p)
	t.Raw = raw
	return nil
}

// OAuth2Token converts the response to an *oauth2.Token. Expiry is computed
// relative to now; a zero ExpiresIn leaves it unset (the token does not
// expire).
func (t *TokenResponse) OAuth2Token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
	}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}
	if t.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	if t.Raw != nil {
		tok = tok.WithExtra(t.Raw)
	}
	return tok
}
