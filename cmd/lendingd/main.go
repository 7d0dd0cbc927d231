// cmd/lendingd/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"libralend/internal/catalog"
	"libralend/internal/config"
	"libralend/internal/fines"
	"libralend/internal/lending"
	"libralend/internal/membership"
	"libralend/internal/postgres"
	"libralend/internal/reporting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lendingd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := buildLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := setupTracing(ctx, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}
		defer shutdown(context.Background())
	}

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	policy := fines.SettlementPolicy{WaiverSettles: cfg.Fines.WaiverSettles}
	assessor := fines.NewAssessor(cfg.Fines.DailyRate)

	catalogSvc, err := catalog.NewService(db, logger)
	if err != nil {
		return err
	}
	membershipSvc := membership.NewService(db, logger)
	finesSvc := fines.NewService(db, policy, logger)
	lendingSvc := lending.NewService(db, assessor, finesSvc, logger)
	reportingSvc := reporting.NewService(db, policy)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1", func(r chi.Router) {
		catalog.NewHandler(catalogSvc).Routes(r)
		membership.NewHandler(membershipSvc).Routes(r)
		lending.NewHandler(lendingSvc).Routes(r)
		fines.NewHandler(finesSvc).Routes(r)
		reporting.NewHandler(reportingSvc).Routes(r)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPServer.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("lending service listening", zap.Int("port", cfg.HTTPServer.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}

func buildLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Mode == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

func setupTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("lendingd"),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
