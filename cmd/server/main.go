package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/trivia-admin-service/internal/config"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/server"
)

const serviceName = "trivia-admin-service"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run(context.Background()))
}

func run(parent context.Context) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		return 1
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: cfg.Version,
		Rollbar: logging.RollbarConfig{Token: cfg.Log.RollbarToken, Environment: cfg.Env},
	})
	defer func() {
		if err := logging.CloseReporter(logger); err != nil {
			fmt.Fprintf(os.Stderr, "close error reporter: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		return 1
	}
	srv.Run(ctx, stop)
	return 0
}
