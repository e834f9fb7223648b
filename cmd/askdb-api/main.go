package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askdb/askdb/internal/api"
	"github.com/askdb/askdb/internal/config"
	"github.com/askdb/askdb/internal/db"
	"github.com/askdb/askdb/internal/dialect"
	"github.com/askdb/askdb/internal/llm"
	"github.com/askdb/askdb/internal/locale"
	"github.com/askdb/askdb/internal/observability"
	"github.com/askdb/askdb/internal/pipeline"
	"github.com/askdb/askdb/internal/safety"
	"github.com/askdb/askdb/internal/schema"
	"github.com/askdb/askdb/internal/sqlgen"
	"github.com/askdb/askdb/internal/translate"
)

func main() {
	cfg, err := config.LoadFromEnv("askdb-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	d, err := dialect.ForName(cfg.Database.Dialect)
	if err != nil {
		logger.Error("unknown database dialect", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.Open(context.Background(), d, cfg.Database)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = pool.Close() }()

	schemaText, err := schema.Describe(context.Background(), pool, d, cfg.Database.Owner)
	if err != nil {
		logger.Error("failed to load database schema", slog.Any("error", err))
		os.Exit(1)
	}

	sqlClient, err := llm.NewChatClient(llm.ChatConfig{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.SQLModel,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize sql model client", slog.Any("error", err))
		os.Exit(1)
	}
	translateClient, err := llm.NewChatClient(llm.ChatConfig{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.TranslateModel,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize translate model client", slog.Any("error", err))
		os.Exit(1)
	}

	messages, err := locale.Load(cfg.Locale.Language)
	if err != nil {
		logger.Error("failed to load message catalog", slog.Any("error", err))
		os.Exit(1)
	}

	answerer := &pipeline.Pipeline{
		DB:         pool,
		Generator:  sqlgen.NewGenerator(sqlClient, d, logger),
		Policy:     safety.NewPrefixPolicy(d.DenyList),
		Normalizer: translate.NewNormalizer(translateClient, logger),
		SchemaText: schemaText,
		Messages:   messages,
		Logger:     logger,
	}

	deps := api.Dependencies{
		Logger:     logger,
		Pipeline:   answerer,
		SchemaText: schemaText,
		Messages:   messages,
		Readiness: api.CombineReadinessChecks(
			api.CheckDatabaseDSN(cfg),
			api.CheckModelConfig(cfg),
			pool.PingContext,
		),
		DependencyTimeout: time.Second,
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server",
			slog.String("addr", cfg.HTTP.Address),
			slog.String("dialect", d.Name),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
