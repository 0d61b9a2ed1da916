package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/zhouzirui/support-line/internal/config"
	"github.com/zhouzirui/support-line/internal/handler"
	"github.com/zhouzirui/support-line/internal/observability"
	emotionservice "github.com/zhouzirui/support-line/internal/service/emotion"
	"github.com/zhouzirui/support-line/internal/service/sessionlog"
	supportservice "github.com/zhouzirui/support-line/internal/service/support"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("no .env file loaded, using system environment variables only", zap.Error(envErr))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(cfg.Metrics.Namespace, registry)

	// 分类器在首个请求时才加载，启动阶段只记录所选后端。
	provider, loader := emotionservice.NewLoader(cfg.Classifier)
	classifier := emotionservice.NewAdapter(string(provider), loader, logger, metrics)
	logger.Info("emotion classifier configured", zap.String("provider", string(provider)))

	supportSvc := supportservice.NewService(classifier, sessionlog.New(), logger, metrics)

	publicURL := cfg.Server.PublicURL()
	router := handler.NewRouter(supportSvc, classifier, publicURL, logger, metrics)

	logger.Info("support endpoint ready", zap.String("url", publicURL))
	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	logger.Info("support receiver listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("support receiver stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
