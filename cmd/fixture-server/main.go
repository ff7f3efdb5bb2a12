package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tsma-calendar-client/internal/fixture"
	"github.com/noah-isme/tsma-calendar-client/internal/service"
	"github.com/noah-isme/tsma-calendar-client/pkg/config"
	"github.com/noah-isme/tsma-calendar-client/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg, "fixture-server")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := fixture.New(fixture.Options{
		TokenSecret:    cfg.Fixture.TokenSecret,
		TokenTTL:       cfg.Fixture.TokenTTL,
		AllowedOrigins: cfg.Fixture.AllowedOrigins,
		Metrics:        service.NewMetricsService(),
		Logger:         logr,
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to build fixture server", "error", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Fixture.Port)
	logr.Sugar().Infow("fixture server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
