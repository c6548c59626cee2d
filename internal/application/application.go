package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/activist-org/configstore/internal/api"
	"github.com/activist-org/configstore/internal/config"
	"github.com/activist-org/configstore/internal/lookup"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store   *config.Store
	module  *lookup.Module
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New wires the lookup service from a loaded store and its settings.
func New(store *config.Store, settings config.Settings, logger *zap.Logger) (*App, error) {
	if store == nil {
		return nil, errors.New("application requires a configuration store")
	}

	module := lookup.New(store)
	handler := api.NewHandler(module, store)
	router := api.NewRouter(handler, logger,
		api.WithLogging(settings.EnableRequestLogging),
		api.WithRateLimit(settings.RateLimitRPS, settings.RateLimitBurst),
	)

	return &App{
		store:   store,
		module:  module,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(settings, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided settings.
func NewServer(settings config.Settings, handler http.Handler) *http.Server {
	addr := settings.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: settings.ReadHeaderTimeout,
		WriteTimeout:      settings.WriteTimeout,
		IdleTimeout:       settings.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address
// and the configuration source.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.String("config_source", a.store.Source()),
		)
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
