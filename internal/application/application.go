package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/obbank/jwks-aggregator/internal/api"
	"github.com/obbank/jwks-aggregator/internal/config"
	"github.com/obbank/jwks-aggregator/internal/jwks"
	"github.com/obbank/jwks-aggregator/internal/properties"
	"github.com/obbank/jwks-aggregator/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	cache      *storage.MemoryCache
	properties *properties.Store
	aggregator *jwks.Aggregator
	handler    *api.Handler
	router     http.Handler
	logger     *zap.Logger
	server     *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
// The property cache lives as long as the returned App.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if cfg.BaseDir == "" {
		logger.Warn("base directory is not set; configuration and certificate lookups will fail closed")
	}

	cache := storage.NewMemoryCache()
	props := properties.NewStore(cfg.BaseDir, cache, logger.Named("properties"))
	remote := jwks.NewRemoteSource(props, cfg.RemoteTimeout, logger.Named("remote"))
	local := jwks.NewLocalSource(cfg.BaseDir, logger.Named("local"))
	aggregator := jwks.NewAggregator(remote, local, logger.Named("aggregator"))

	handler := api.NewHandler(aggregator, logger)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		cache:      cache,
		properties: props,
		aggregator: aggregator,
		handler:    handler,
		router:     router,
		logger:     logger,
		server:     NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Properties returns the property store backed by the application's cache.
func (a *App) Properties() *properties.Store {
	return a.properties
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}
