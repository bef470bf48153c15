package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/internal/config"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/internal/logger"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/internal/tokenstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// rootOptions carries persistent flag values to sub-commands.
type rootOptions struct {
	debug     bool
	tokenFile string
}

// app is the per-invocation state built from the environment.
type app struct {
	cfg    *config.Config
	client *client.Client
	store  *tokenstore.Store
	log    zerolog.Logger
}

func (o *rootOptions) newApp() (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if o.tokenFile != "" {
		cfg.TokenFile = o.tokenFile
	}

	log := logger.NewConsole("misfitctl").Level(logger.ParseLevel(cfg.LogLevel))
	if o.debug {
		cfg.LogSummary(log)
	}

	c, err := client.New(cfg.Client(), cfg.ClientOptions(log)...)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, client: c, store: tokenstore.New(cfg.TokenFile), log: log}, nil
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "misfitctl",
		Short:         "Command line access to the Misfit cloud API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging and HTTP dumps")
	rootCmd.PersistentFlags().StringVar(&opts.tokenFile, "token-file", "", "Token file (default $MISFIT_TOKEN_FILE)")

	rootCmd.AddCommand(newAuthorizeCmd(opts))
	rootCmd.AddCommand(newExchangeCmd(opts))
	for _, rc := range resourceCommands {
		rootCmd.AddCommand(newResourceCmd(opts, rc))
	}
	return rootCmd
}

func newAuthorizeCmd(opts *rootOptions) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Print the authorization dialog URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.client.AuthorizeURLWithState(state))
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Optional OAuth state value")
	return cmd
}

func newExchangeCmd(opts *rootOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an authorization code for an access token and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}

			start := time.Now()
			tok, err := a.client.Exchange(cmd.Context(), code)
			if err != nil {
				a.log.Error().Err(err).Int("status", client.StatusCode(err)).Msg("exchange failed")
				return err
			}
			a.log.Debug().Dur("elapsed", time.Since(start)).Msg("exchange completed")

			if err := a.store.Save(tok.OAuth2Token()); err != nil {
				return err
			}
			a.log.Info().Str("token_file", a.store.Path()).Msg("token stored")
			return printJSON(cmd.OutOrStdout(), tok)
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the redirect URI")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

type resourceCommand struct {
	use   string
	short string
	res   client.Resource
	get   func(ctx context.Context, c *client.Client, p client.Params) (any, error)
}

var resourceCommands = []resourceCommand{
	{"profile", "Get the user profile", client.ResourceProfile,
		func(ctx context.Context, c *client.Client, p client.Params) (any, error) { return c.GetProfile(ctx, p) }},
	{"device", "Get the user's device", client.ResourceDevice,
		func(ctx context.Context, c *client.Client, p client.Params) (any, error) { return c.GetDevice(ctx, p) }},
	{"goals", "List goals, or get one with --id", client.ResourceGoal,
		func(ctx context.Context, c *client.Client, p client.Params) (any, error) { return c.GetGoals(ctx, p) }},
	{"summary", "Get the activity summary", client.ResourceSummary,
		func(ctx context.Context, c *client.Client, p client.Params) (any, error) { return c.GetSummary(ctx, p) }},
	{"sessions", "List sessions, or get one with --id", client.ResourceSession,
		func(ctx context.Context, c *client.Client, p client.Params) (any, error) { return c.GetSession(ctx, p) }},
	{"sleeps", "List sleeps, or get one with --id", client.ResourceSleep,
		func(ctx context.Context, c *client.Client, p client.Params) (any, error) { return c.GetSleep(ctx, p) }},
}

func newResourceCmd(opts *rootOptions, rc resourceCommand) *cobra.Command {
	var id, userID, token string
	var appAuth, raw bool
	var extra []string

	cmd := &cobra.Command{
		Use:   rc.use,
		Short: rc.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}

			params, err := parseParams(extra)
			if err != nil {
				return err
			}
			if id != "" {
				params[client.ParamID] = id
			}
			if userID != "" {
				params[client.ParamUserID] = userID
			}
			switch {
			case token != "":
				params[client.ParamToken] = token
			case !appAuth:
				tok, err := a.store.Load()
				if err != nil {
					return err
				}
				params[client.ParamToken] = tok.AccessToken
			}

			a.log.Debug().Str("resource", string(rc.res)).Bool("app_auth", appAuth).Msg("fetching")
			start := time.Now()
			var out any
			if raw {
				out, err = a.client.Fetch(cmd.Context(), rc.res, params)
			} else {
				out, err = rc.get(cmd.Context(), a.client, params)
			}
			if err != nil {
				a.log.Error().Err(err).Int("status", client.StatusCode(err)).Str("resource", string(rc.res)).Msg("request failed")
				return err
			}
			a.log.Debug().Dur("elapsed", time.Since(start)).Msg("fetched")
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Item id (selects the single-item endpoint)")
	cmd.Flags().StringVar(&userID, "user-id", "", "User id (default me)")
	cmd.Flags().StringVar(&token, "token", "", "Access token (default: read from the token file)")
	cmd.Flags().BoolVar(&appAuth, "app-auth", false, "Authenticate with the app credentials instead of a user token")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the undecoded JSON object")
	cmd.Flags().StringArrayVar(&extra, "param", nil, "Extra query parameter as key=value (repeatable; id, userId and token are set by their own flags)")
	return cmd
}

// reservedParams maps reserved Params keys to the flag that sets them.
var reservedParams = map[string]string{
	client.ParamID:     "--id",
	client.ParamUserID: "--user-id",
	client.ParamToken:  "--token",
}

// parseParams turns key=value pairs into Params. Reserved keys are rejected.
func parseParams(pairs []string) (client.Params, error) {
	p := client.Params{}
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", kv)
		}
		if flag, reserved := reservedParams[k]; reserved {
			return nil, fmt.Errorf("--param %s is reserved, use %s", k, flag)
		}
		p[k] = v
	}
	return p, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
