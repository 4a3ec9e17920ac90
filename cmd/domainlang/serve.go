package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/domainlang/config"
	"github.com/c360studio/domainlang/service"

	// Register vocabularies via init()
	_ "github.com/c360studio/domainlang/vocabulary/doml"
)

func serveCmd() *cobra.Command {
	var (
		configPath  string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation service",
		Long: `Serve loads the definition, self-validates it, and answers world
validation requests over NATS. The definition file is watched for
changes and reloaded atomically; a changed definition that fails
self-validation is rejected and the previous one stays active.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Log.Level)
			slog.SetDefault(logger)

			svc, err := service.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := svc.Start(ctx); err != nil {
				return err
			}

			if metricsAddr != "" {
				go serveMetrics(logger, metricsAddr)
			}

			<-ctx.Done()
			logger.Info("Shutting down")
			return svc.Stop(10 * time.Second)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default: layered lookup)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "address for Prometheus metrics (empty to disable)")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewLoader(nil).Load()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func serveMetrics(logger *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	logger.Info("Metrics listening", "addr", addr)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Metrics server failed", "error", err)
	}
}
