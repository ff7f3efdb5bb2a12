package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/noah-isme/tsma-calendar-client/internal/cli"
	"github.com/noah-isme/tsma-calendar-client/pkg/config"
	"github.com/noah-isme/tsma-calendar-client/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tsma: failed to load config: %v\n", err)
		return 1
	}

	logr, err := logger.New(cfg, "tsma")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tsma: failed to init logger: %v\n", err)
		return 1
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logr)
	if err != nil {
		cli.ReportError(os.Stderr, err)
		return 1
	}
	defer app.Close() //nolint:errcheck

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		cli.ReportError(os.Stderr, err)
		return 1
	}
	return 0
}
