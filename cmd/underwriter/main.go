package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Underwriter/internal/api"
	"github.com/MikeSquared-Agency/Underwriter/internal/config"
	"github.com/MikeSquared-Agency/Underwriter/internal/events"
	"github.com/MikeSquared-Agency/Underwriter/internal/llm"
	"github.com/MikeSquared-Agency/Underwriter/internal/metrics"
	"github.com/MikeSquared-Agency/Underwriter/internal/orchestrator"
	"github.com/MikeSquared-Agency/Underwriter/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New(prometheus.DefaultRegisterer)
	opts := []orchestrator.Option{
		orchestrator.WithCallTimeout(cfg.LLMTimeout()),
		orchestrator.WithMetrics(m),
	}

	// LLM provider (optional; without one only rule-based mode is offered)
	var completer llm.Completer
	var breakerState api.BreakerState
	c, err := llm.New(ctx, llm.Settings{
		Provider: llm.Provider(cfg.LLM.Provider),
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLMTimeout(),
	})
	switch {
	case errors.Is(err, llm.ErrUnavailable):
		logger.Info("no llm credentials configured, ai mode disabled")
	case err != nil:
		logger.Error("failed to create llm client", "provider", cfg.LLM.Provider, "error", err)
		os.Exit(1)
	default:
		defer func() {
			if err := llm.Close(c); err != nil {
				logger.Warn("failed to close llm client", "error", err)
			}
		}()
		completer = c
		if cfg.LLM.Breaker.Enabled {
			b := llm.NewBreaker(c, llm.BreakerSettings{
				Name:         cfg.LLM.Provider,
				MinRequests:  cfg.LLM.Breaker.MinRequests,
				FailureRatio: cfg.LLM.Breaker.FailureRatio,
				OpenTimeout:  cfg.BreakerOpenTimeout(),
			}, logger)
			completer = b
			breakerState = b
		}
		logger.Info("ai mode enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	}

	// Event sinks (optional)
	var sinks events.Fanout
	if cfg.Events.NATSURL != "" {
		np, err := events.NewNATSPublisher(ctx, cfg.Events.NATSURL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without nats events", "error", err)
		} else {
			sinks = append(sinks, np)
			logger.Info("connected to nats")
		}
	}
	if len(cfg.Events.KafkaBrokers) > 0 {
		sinks = append(sinks, events.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic))
		logger.Info("kafka publisher configured", "brokers", cfg.Events.KafkaBrokers, "topic", cfg.Events.KafkaTopic)
	}
	if len(sinks) > 0 {
		defer sinks.Close()
		opts = append(opts, orchestrator.WithPublisher(sinks))
	}

	// Audit trail (optional)
	var audit api.AuditReader
	if cfg.Database.URL != "" {
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			logger.Error("failed to prepare audit schema", "error", err)
			os.Exit(1)
		}
		audit = db
		opts = append(opts, orchestrator.WithAudit(db))
		logger.Info("connected to database, audit trail enabled")
	}

	o := orchestrator.New(completer, logger, opts...)

	// API server
	router := api.NewRouter(o, audit, api.RouterConfig{
		AdminToken:     cfg.Server.AdminToken,
		Provider:       cfg.LLM.Provider,
		RateLimitPerIP: cfg.Server.RateLimitPerIP,
	}, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(breakerState),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port, "modes", o.Modes())
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
