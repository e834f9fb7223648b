package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/askdb/askdb/internal/config"
	"github.com/askdb/askdb/internal/locale"
	"github.com/askdb/askdb/internal/observability"
	"github.com/askdb/askdb/internal/pipeline"
)

type ReadinessCheck func(ctx context.Context) error

// Answerer runs a natural-language question end to end and always
// returns a terminal outcome.
type Answerer interface {
	Answer(ctx context.Context, question string) pipeline.Outcome
}

type Dependencies struct {
	Logger            *slog.Logger
	Readiness         ReadinessCheck
	DependencyTimeout time.Duration
	Pipeline          Answerer
	SchemaText        string
	Messages          *locale.Messages
}

func NewHandler(cfg config.Config, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": cfg.Service.Name})
	})

	mux.HandleFunc("GET /v1/ready", func(w http.ResponseWriter, r *http.Request) {
		if deps.Readiness == nil {
			writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
			return
		}
		timeout := deps.DependencyTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		if err := deps.Readiness(ctx); err != nil {
			writeError(r.Context(), w, http.StatusServiceUnavailable, "NOT_READY", err.Error(), true, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})

	mux.Handle("GET /v1/metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/schema", func(w http.ResponseWriter, r *http.Request) {
		if deps.SchemaText == "" {
			writeError(r.Context(), w, http.StatusServiceUnavailable, "SCHEMA_NOT_LOADED", "database schema has not been loaded", true, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"owner":  cfg.Database.Owner,
			"schema": deps.SchemaText,
		})
	})

	mux.HandleFunc("POST /v1/query", func(w http.ResponseWriter, r *http.Request) {
		handleQuestion(deps, w, r)
	})

	middlewares := []func(http.Handler) http.Handler{
		observability.TraceMiddleware,
		observability.MetricsMiddleware,
	}
	if deps.Logger != nil {
		middlewares = append(middlewares, observability.LoggingMiddleware(deps.Logger))
	}
	middlewares = append(middlewares, recoverMiddleware(deps))
	return chain(mux, middlewares...)
}

func CheckDatabaseDSN(cfg config.Config) ReadinessCheck {
	return func(_ context.Context) error {
		if cfg.Database.DSN == "" {
			return errors.New("database dsn is not configured")
		}
		return nil
	}
}

func CheckModelConfig(cfg config.Config) ReadinessCheck {
	return func(_ context.Context) error {
		if cfg.AI.BaseURL == "" {
			return errors.New("model base url is not configured")
		}
		if cfg.AI.SQLModel == "" {
			return errors.New("sql model is not configured")
		}
		return nil
	}
}

func CombineReadinessChecks(checks ...ReadinessCheck) ReadinessCheck {
	filtered := make([]ReadinessCheck, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}
	return func(ctx context.Context) error {
		for _, check := range filtered {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// recoverMiddleware converts panics into a 500 response carrying the
// localized internal-error message and the failure text.
func recoverMiddleware(deps Dependencies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if deps.Logger != nil {
					deps.Logger.ErrorContext(r.Context(), "request panicked",
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
					)
				}
				message := fmt.Sprint(rec)
				if deps.Messages != nil {
					message = deps.Messages.InternalError
				}
				writeError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", message, false, map[string]any{
					"details": fmt.Sprint(rec),
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func chain(base http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string, retryable bool, extra map[string]any) {
	writeJSON(w, status, map[string]any{
		"error_code": code,
		"message":    message,
		"retryable":  retryable,
		"context":    extra,
		"trace_id":   observability.TraceIDFromContext(ctx),
	})
}
