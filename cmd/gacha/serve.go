package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gourmet-gacha/gacha/internal/config"
	grpcserver "github.com/gourmet-gacha/gacha/internal/grpc"
	"github.com/gourmet-gacha/gacha/internal/metrics"
	"github.com/gourmet-gacha/gacha/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser UI, the gRPC API and metrics",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("sheet_url", cfg.SheetCSVURL()).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Int("server_port", cfg.Server.Port).
		Int("web_port", cfg.Web.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	flush, err := config.InitSentry(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Sentry, continuing without it")
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, sheetClient := newCatalog(cfg)
	defer func() {
		if err := sheetClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close sheet client")
		}
	}()

	// The UIs show the loading state until this completes.
	go func() {
		if err := catalog.Load(ctx); err != nil {
			logger.Error().Err(err).Msg("Initial dataset load failed")
		}
	}()
	go catalog.RunRefresher(ctx, cfg.RefreshIntervalDuration())

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go serveHTTP(metricsServer, "metrics")
		defer shutdownHTTP(metricsServer, "metrics")
	}

	webServer := web.NewHTTPServer(cfg.Server.Address, cfg.Web.Port, web.NewRouter(catalog, web.Options{SpinDelay: cfg.SpinDelay()}))
	go serveHTTP(webServer, "web")
	defer shutdownHTTP(webServer, "web")

	grpcServer := grpcserver.NewGRPCServer(catalog)
	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Received shutdown signal")
		grpcServer.GracefulStop()
	}()

	logger.Info().Str("address", address).Msg("Starting gRPC server")
	if err := grpcServer.Serve(listener); err != nil {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}

func serveHTTP(srv *http.Server, name string) {
	logger := config.GetLogger()
	logger.Info().Str("address", srv.Addr).Str("server", name).Msg("Starting HTTP server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Str("server", name).Msg("Failed to serve HTTP")
	}
}

func shutdownHTTP(srv *http.Server, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Str("server", name).Msg("Failed to shutdown HTTP server")
	}
}
