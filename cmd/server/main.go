package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/admin/web-apps/banner-ai/internal/app"
)

const appName = "banner_ai"

func main() {
	cfg, err := app.NewEnvConfig(appName)
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := app.New(appName, cfg)
	if err != nil {
		panic(err)
	}

	if err := app.Run(ctx); err != nil {
		panic(err)
	}
}
