package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/internal/callback"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/internal/config"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/internal/logger"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/internal/tokenstore"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run starts the callback server and blocks until shutdown or error.
func run() error {
	log := logger.New("misfit-callback")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	log = log.Level(logger.ParseLevel(cfg.LogLevel))
	cfg.LogSummary(log)

	c, err := client.New(cfg.Client(), cfg.ClientOptions(log)...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build Misfit client")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := callback.NewHandler(c, tokenstore.New(cfg.TokenFile), log)
	server := callback.NewHTTPServer(ctx, cfg.ListenAddr, callback.NewRouter(h))

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Error().Stack().Err(err).Str("addr", cfg.ListenAddr).Msg("listen failed")
		return err
	}
	log.Info().Str("login_url", "http://"+ln.Addr().String()+"/login").Msg("Open the login URL in a browser to authorize")
	return callback.Serve(ctx, server, ln, log)
}
