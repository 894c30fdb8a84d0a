package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/boom-router/boom/internal/config"
	"github.com/boom-router/boom/internal/errors"
	"github.com/boom-router/boom/pkg/bridge"
	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/location/hash"
	"github.com/boom-router/boom/pkg/location/memory"
	"github.com/boom-router/boom/pkg/middleware"
	"github.com/boom-router/boom/pkg/router"
)

func serveCmd() *cobra.Command {
	var (
		configFile string
		port       int
		host       string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a location provider over HTTP",
		Long: `Serve a location provider over HTTP and WebSocket.

The provider, base path and server address come from boom.json in the
working directory or its nearest parent. Without a boom.json the
defaults are used: a memory provider at "/" on localhost:7400.

Endpoints:
  GET  /location  POST /navigate  GET /history  POST /reset
  GET  /ws        GET  /metrics (when metrics are enabled)

Examples:
  boom serve
  boom serve --port 8080
  boom serve --config ./boom.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), verbose)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to boom.json")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from boom.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from boom.json)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every navigation")

	return cmd
}

func loadConfig(file string) (*config.Config, error) {
	if file != "" {
		return config.LoadFile(file)
	}
	cfg, err := config.LoadFromWorkingDir()
	if errors.Code(err) == "E101" {
		return config.New(), nil
	}
	return cfg, err
}

// newProvider builds the provider described by cfg.
func newProvider(cfg *config.Config, logger *slog.Logger) location.Provider {
	if cfg.Provider == config.ProviderHash {
		return hash.New(hash.Config{
			Document: hash.DefaultDocument(),
			SSRPath:  cfg.Path,
			Logger:   logger,
		})
	}
	return memory.New(memory.Config{
		Path:   cfg.Path,
		Static: cfg.Static,
		Record: cfg.Record,
		Logger: logger,
	})
}

// newHandler wires provider, middleware, router and bridge. The returned
// close function detaches the bridge.
func newHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, func()) {
	var mw []middleware.Middleware
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		mw = append(mw, middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		))
	}
	if cfg.Tracing.Enabled {
		mw = append(mw, middleware.OpenTelemetry())
	}

	p := middleware.Chain(newProvider(cfg, logger), mw...)
	r := router.New(p, router.WithBase(cfg.Base), router.WithLogger(logger))
	b := bridge.New(r, bridge.WithLogger(logger))

	if reg != nil {
		b.Mux().Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	return b, b.Close
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	handler, closeBridge := newHandler(cfg, logger)
	defer closeBridge()

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("bridge listening",
		"addr", srv.Addr,
		"provider", cfg.Provider,
		"base", cfg.Base,
		"record", cfg.Record,
		"metrics", cfg.Metrics.Enabled)

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("E302").WithDetail("listening on " + srv.Addr).Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("bridge shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E302").WithDetail("shutdown").Wrap(err)
	}
	return nil
}
