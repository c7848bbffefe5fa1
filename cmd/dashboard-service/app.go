package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/gracebotly/flowetic-pipeline/internal/api"
	"github.com/gracebotly/flowetic-pipeline/internal/config"
	"github.com/gracebotly/flowetic-pipeline/internal/constants"
	"github.com/gracebotly/flowetic-pipeline/internal/logger"
	"github.com/gracebotly/flowetic-pipeline/internal/override"
	"github.com/gracebotly/flowetic-pipeline/internal/sanitize"
	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	"github.com/gracebotly/flowetic-pipeline/internal/transform"
	"github.com/gracebotly/flowetic-pipeline/pkg/health"
	"github.com/gracebotly/flowetic-pipeline/pkg/metrics"
	"github.com/gracebotly/flowetic-pipeline/pkg/middleware"
	"github.com/gracebotly/flowetic-pipeline/pkg/ratelimit"
)

type App struct {
	config *config.Config
	logger logger.Logger
	loader *skills.Loader
	server *http.Server
	router *gin.Engine
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	return &App{
		config: cfg,
		logger: log,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.initRouter(); err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}

	if err := a.initServer(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	return nil
}

func (a *App) initRouter() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(a.logger))
	router.Use(middleware.LoggerMiddleware(a.logger))
	router.Use(middleware.RequestIDMiddleware())

	if a.config.RateLimit.Enabled {
		rateLimitConfig := ratelimit.DefaultConfig()
		rateLimitConfig.RPS = a.config.RateLimit.RPS
		rateLimitConfig.Burst = a.config.RateLimit.Burst
		router.Use(ratelimit.Middleware(rateLimitConfig))
		a.logger.InfowCtx(context.Background(), "Rate limiting enabled", "rps", rateLimitConfig.RPS, "burst", rateLimitConfig.Burst)
	}

	a.loader = skills.NewLoader(a.config.Skills.Root, a.logger)
	overrides := override.NewEngine(a.loader, a.logger)

	enricher, err := transform.NewEngine(a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize transform engine: %w", err)
	}
	enricher.SetTableRowLimit(a.config.Transform.TableRowLimit)

	sanitizer := sanitize.New(a.logger)

	handler := api.NewHandler(a.loader, overrides, enricher, sanitizer, a.config.Transform.MaxEvents, a.logger)
	handler.RegisterRoutes(router)

	metrics.RegisterPipelineMetrics()

	healthRegistry := health.NewCheckerRegistry()
	healthRegistry.Register(health.NewDirectoryChecker("skills_root", a.config.Skills.Root))

	router.GET("/health", func(c *gin.Context) {
		h := healthRegistry.Check(c.Request.Context())
		statusCode := http.StatusOK
		if h.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, h)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a.router = router
	return nil
}

func (a *App) initServer() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.InfowCtx(ctx, "Server listening", "port", a.config.Server.Port)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Shutdown()
	})

	return g.Wait()
}

func (a *App) Shutdown() error {
	a.logger.Infow("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if a.server != nil {
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	a.logger.Infow("Server exited successfully")
	return nil
}
