// Package tokenstore persists an OAuth2 access token as a JSON file.
package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned by Load when the token file does not exist.
var ErrNoToken = errors.New("no token stored; run the authorization flow first")

// Store reads and writes a single token file.
type Store struct {
	path string
}

// New returns a Store backed by path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file location.
func (s *Store) Path() string { return s.path }

// Save writes tok to the file, replacing any previous token. The file is
// created with mode 0600.
func (s *Store) Save(tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("refusing to save empty token")
	}
	b, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode token")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrapf(err, "create token dir %s", dir)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replace %s", s.path)
	}
	return nil
}

// Load reads the stored token. A missing file yields ErrNoToken.
func (s *Store) Load() (*oauth2.Token, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.path)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.path)
	}
	if tok.AccessToken == "" {
		return nil, errors.Errorf("%s holds no access_token", s.path)
	}
	return &tok, nil
}
