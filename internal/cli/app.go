// Package cli is the command-line front end of the calendar client. It wires
// configuration into the session store, request executor and domain
// endpoints, and renders their results for a terminal.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tsma-calendar-client/internal/fixture"
	"github.com/noah-isme/tsma-calendar-client/internal/repository"
	"github.com/noah-isme/tsma-calendar-client/internal/service"
	"github.com/noah-isme/tsma-calendar-client/internal/transport"
	"github.com/noah-isme/tsma-calendar-client/pkg/cache"
	"github.com/noah-isme/tsma-calendar-client/pkg/config"
	"github.com/noah-isme/tsma-calendar-client/pkg/database"
	"github.com/noah-isme/tsma-calendar-client/pkg/export"
	"github.com/noah-isme/tsma-calendar-client/pkg/storage"
)

// FixtureBaseURL is the base URL used when requests are served in-process.
const FixtureBaseURL = "http://fixture.local"

type sessionBackend interface {
	service.SessionRepository
	Close() error
}

// App holds the services shared by every command of one process run.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *service.MetricsService
	session *service.SessionService
	api     *service.APIService
	exports *service.ExportService
	repo    sessionBackend
	now     func() time.Time
}

// NewApp builds the client from configuration and restores the persisted session.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repo, err := openSessionBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	metrics := service.NewMetricsService()
	baseURL, doer, err := buildTransport(cfg, logger)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	validate := validator.New()
	exec := service.NewExecutor(baseURL, doer, validate, metrics, logger)
	session := service.NewSessionService(repo, exec, validate, metrics, logger, cfg.API.Cohort)
	session.Restore(ctx)

	api := service.NewAPIService(exec, session, validate, logger)

	return &App{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		session: session,
		api:     api,
		repo:    repo,
		now:     time.Now,
	}, nil
}

// exportService creates the export directory on first use.
func (a *App) exportService() (*service.ExportService, error) {
	if a.exports != nil {
		return a.exports, nil
	}
	store, err := storage.NewLocalStorage(a.cfg.Export.Dir)
	if err != nil {
		return nil, err
	}
	a.exports = service.NewExportService(a.api, store, a.logger, export.NewCSVExporter(), export.NewPDFExporter())
	return a.exports, nil
}

// Close releases the session backend.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

func openSessionBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (sessionBackend, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendBolt, "":
		repo, err := repository.NewBoltSessionRepository(cfg.Session.Path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.SessionBackendRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return repository.NewRedisSessionRepository(client, cfg.Session.Namespace, logger), nil
	case config.SessionBackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := repository.NewPostgresSessionRepository(db, cfg.Session.Namespace)
		if err := repo.Migrate(ctx); err != nil {
			_ = repo.Close()
			return nil, err
		}
		return repo, nil
	case config.SessionBackendMemory:
		return repository.NewMemorySessionRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.Session.Backend)
	}
}

func buildTransport(cfg *config.Config, logger *zap.Logger) (string, transport.Doer, error) {
	switch cfg.API.Transport {
	case config.TransportLive, "":
		return cfg.API.BaseURL, transport.NewHTTP(cfg.API.Timeout), nil
	case config.TransportFixture:
		if gin.Mode() == gin.DebugMode {
			gin.SetMode(gin.ReleaseMode)
		}
		router, err := fixture.New(fixture.Options{
			TokenSecret: cfg.Fixture.TokenSecret,
			TokenTTL:    cfg.Fixture.TokenTTL,
			Logger:      logger.Named("fixture"),
		})
		if err != nil {
			return "", nil, err
		}
		return FixtureBaseURL, transport.NewHandler(router), nil
	default:
		return "", nil, fmt.Errorf("unsupported transport %q", cfg.API.Transport)
	}
}
