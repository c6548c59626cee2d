package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/activist-org/configstore/internal/application"
	"github.com/activist-org/configstore/internal/config"
	"github.com/activist-org/configstore/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("configstore-server", "Configuration lookup service - resolves dotted key paths against the activist configuration document")
	configFile := kingpinApp.Flag("config", "Explicit configuration file, bypassing the search paths").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	logLevel := kingpinApp.Flag("log-level", "Minimum log level (debug, info, warn, error)").Default("info").String()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	var opts []config.StoreOption
	if *configFile != "" {
		opts = append(opts, config.WithFile(*configFile))
	}
	store := config.NewStore(opts...)
	if err := store.Load(); err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	overrides := &config.CLIOverrides{}
	if *port != "" {
		overrides.Port = port
	}
	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}
	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	settings, err := config.LoadSettings(store, overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve settings: %v", err))
	}

	logger, err := logging.NewWithLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(store, settings, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), settings.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
