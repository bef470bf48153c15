package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client"
)

// Prefix is the environment variable prefix, e.g. MISFIT_CLIENT_KEY.
const Prefix = "MISFIT"

// Config holds process configuration for the misfit binaries.
// Environment variables are parsed with the MISFIT_ prefix.
type Config struct {
	// App registration
	ClientKey    string `envconfig:"CLIENT_KEY" required:"true"`
	ClientSecret string `envconfig:"CLIENT_SECRET" required:"true"`
	APIRoot      string `envconfig:"API_ROOT" default:"https://api.misfitwearables.com"`
	RedirectURI  string `envconfig:"REDIRECT_URI" default:"http://localhost:8080/callback"`
	ResponseType string `envconfig:"RESPONSE_TYPE" default:"code"`
	Scope        string `envconfig:"SCOPE" default:"public,email,birthday,tracking,sessions,sleeps"`

	// Transport
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Token persistence
	TokenFile string `envconfig:"TOKEN_FILE" default:"misfit_token.json"`

	// Callback server
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
}

// New creates a new Config by parsing environment variables.
// Example: MISFIT_CLIENT_KEY, MISFIT_HTTP_TIMEOUT=10s
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Client().Validate(); err != nil {
		return nil, fmt.Errorf("MISFIT_CLIENT_KEY/MISFIT_CLIENT_SECRET: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("MISFIT_HTTP_TIMEOUT must be > 0, got %s", cfg.HTTPTimeout)
	}
	return &cfg, nil
}

// Client returns the client configuration part.
func (c *Config) Client() client.Config {
	return client.Config{
		ClientKey:    c.ClientKey,
		ClientSecret: c.ClientSecret,
		APIRoot:      c.APIRoot,
		RedirectURI:  c.RedirectURI,
		ResponseType: c.ResponseType,
		Scope:        c.Scope,
	}
}

// ClientOptions returns the client options implied by c.
func (c *Config) ClientOptions(log zerolog.Logger) []client.Option {
	return []client.Option{
		client.WithHTTPTimeout(c.HTTPTimeout),
		client.WithDebugLogging(c.Debug),
		client.WithLogger(log),
	}
}

// LogSummary writes the effective configuration; secrets are reported only
// as present or absent.
func (c *Config) LogSummary(log zerolog.Logger) {
	log.Info().
		Str("api_root", c.APIRoot).
		Str("redirect_uri", c.RedirectURI).
		Str("scope", c.Scope).
		Bool("client_secret_present", c.ClientSecret != "").
		Dur("http_timeout", c.HTTPTimeout).
		Str("token_file", c.TokenFile).
		Str("log_level", c.LogLevel).
		Msg("Configuration loaded")
}
