package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spacesedan/sentidesk/config"
	"github.com/spacesedan/sentidesk/internal/app"
	"github.com/spacesedan/sentidesk/internal/cli"
	"github.com/spacesedan/sentidesk/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.InitLogger(cfg.LogLevel)

	build := func(ctx context.Context) (*app.App, error) {
		return app.Build(ctx, cfg)
	}

	return cli.NewRootCmd(build).Execute()
}
