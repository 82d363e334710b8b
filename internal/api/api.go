package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethanbaker/analyzer/internal/api/middleware"
	"github.com/ethanbaker/analyzer/internal/logging"
	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"github.com/ethanbaker/analyzer/pkg/countries"
	"github.com/ethanbaker/analyzer/pkg/profile"
	"github.com/ethanbaker/analyzer/pkg/utils"
	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	countries_module "github.com/ethanbaker/analyzer/internal/api/modules/countries"
	health_module "github.com/ethanbaker/analyzer/internal/api/modules/health"
	profile_module "github.com/ethanbaker/analyzer/internal/api/modules/profile"
	strings_module "github.com/ethanbaker/analyzer/internal/api/modules/strings"
)

// shutdownTimeout bounds how long in-flight requests may take once shutdown starts
const shutdownTimeout = 10 * time.Second

// Dependencies holds everything the HTTP modules serve
type Dependencies struct {
	Settings     *utils.Settings
	Analyzer     *analyzer.Analyzer
	CountryStore countries.StoreInterface
	Refresher    *countries.Refresher
	Profile      *profile.Service
}

// NewEngine builds the gin engine with every module registered. The returned function
// releases middleware resources.
func NewEngine(deps *Dependencies) (*gin.Engine, func(), error) {
	if deps == nil || deps.Settings == nil || deps.Analyzer == nil || deps.CountryStore == nil || deps.Refresher == nil || deps.Profile == nil {
		return nil, nil, fmt.Errorf("all api dependencies must be provided")
	}
	server := deps.Settings.Server

	// Add app level settings/routes
	engine := gin.New()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Match on the escaped path so values containing '/' can be addressed with %2F,
	// path parameters are decoded by middleware.PathParams
	engine.UseRawPath = true
	engine.UnescapePathValues = false

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	engine.Use(gin.Recovery(), middleware.PathParams(), middleware.RequestID(), middleware.Logger(), middleware.Metrics())

	cleanup := func() {}
	if server.RateLimitRPS > 0 {
		limiter := middleware.NewLimiter(server.RateLimitRPS, server.RateLimitBurst)
		engine.Use(limiter.Handler())
		cleanup = limiter.Close
	}

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     server.AllowedOrigins,
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-KEY", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Metrics are scraped from the root
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Adding custom modules
	baseGroup := engine.Group("/")
	health_module.RegisterRoutes(baseGroup)
	strings_module.RegisterRoutes(baseGroup, deps.Analyzer)
	countries_module.RegisterRoutes(baseGroup, deps.CountryStore, deps.Refresher, server.AdminAPIKey)
	profile_module.RegisterRoutes(baseGroup, deps.Profile)

	return engine, cleanup, nil
}

// Start serves the API until ctx is cancelled, then shuts down gracefully
func Start(ctx context.Context, deps *Dependencies) error {
	engine, cleanup, err := NewEngine(deps)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + deps.Settings.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("[API-MAIN]: server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Msg("[API-MAIN]: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
