// Package fixture implements the calendar service HTTP contract over seeded
// in-memory data. The client uses it in-process as its fixture transport and
// cmd/fixture-server exposes it over TCP for development.
package fixture

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tsma-calendar-client/api/swagger"
	"github.com/noah-isme/tsma-calendar-client/internal/middleware"
	"github.com/noah-isme/tsma-calendar-client/internal/service"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
	"github.com/noah-isme/tsma-calendar-client/pkg/logger"
	corsmiddleware "github.com/noah-isme/tsma-calendar-client/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tsma-calendar-client/pkg/middleware/requestid"
	"github.com/noah-isme/tsma-calendar-client/pkg/response"
)

// Options configures a fixture server.
type Options struct {
	Store          *Store
	TokenSecret    string
	TokenTTL       time.Duration
	AllowedOrigins []string
	Metrics        *service.MetricsService
	Logger         *zap.Logger
}

// New builds the fixture router. A nil Store is seeded from the embedded data.
func New(opts Options) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Store == nil {
		store, err := NewStore(DefaultSeed(), StoreOptions{})
		if err != nil {
			return nil, err
		}
		opts.Store = store
	}
	tokens := NewTokenIssuer(opts.TokenSecret, opts.TokenTTL)
	handler := NewHandler(opts.Store, tokens, opts.Logger)
	return NewRouter(handler, tokens, opts), nil
}

// NewRouter wires routes and middleware.
func NewRouter(h *Handler, tokens middleware.TokenValidator, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/login", h.Login)

	authed := r.Group("/", middleware.JWT(tokens))
	authed.GET("/calendar/today", h.Today)
	authed.GET("/calendar/all", h.Calendar)
	authed.GET("/assignment/all", h.Assignments)
	authed.GET("/assignment/:id", h.Assignment)
	authed.POST("/assignment/progress", h.SubmitProgress)
	authed.DELETE("/assignment/progress", h.DeleteProgress)
	authed.POST("/faq", h.SubmitFAQ)
	authed.GET("/lesson/:lessonID", h.LessonOutline)
	authed.POST("/lesson/feedback", h.SubmitFeedback)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})
	return r
}
