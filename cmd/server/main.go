package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/internal/adapters/config"
	"github.com/selivandex/btc-predictor/internal/adapters/marketdata"
	"github.com/selivandex/btc-predictor/internal/adapters/social"
	"github.com/selivandex/btc-predictor/internal/fusion"
	"github.com/selivandex/btc-predictor/internal/handler/api"
	"github.com/selivandex/btc-predictor/internal/prediction"
	"github.com/selivandex/btc-predictor/internal/sentiment"
	"github.com/selivandex/btc-predictor/internal/service"
	"github.com/selivandex/btc-predictor/internal/trend"
	"github.com/selivandex/btc-predictor/internal/workers"
	"github.com/selivandex/btc-predictor/pkg/cache"
	"github.com/selivandex/btc-predictor/pkg/logger"
	"github.com/selivandex/btc-predictor/pkg/worker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("BTC proxy predictor starting",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("finnhub", cfg.Providers.HasFinnhub()),
		zap.Bool("twitter", cfg.Social.HasTwitter()),
	)

	// Market data gateway with a short quote cache in front
	quoteCache, err := buildCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	gateway := marketdata.NewCachedGateway(
		marketdata.NewGateway(cfg.Providers),
		quoteCache,
		cfg.Cache.QuoteTTL,
	)

	// Sentiment engine, lexicon-only unless a model endpoint is set
	var classifier sentiment.Classifier
	if cfg.Sentiment.ModelEnabled {
		classifier = sentiment.NewModelClient(cfg.Sentiment.ModelEndpoint, cfg.Sentiment.ModelAPIKey)
	}
	engine := sentiment.NewEngine(classifier)

	socialGateway := social.NewGateway(cfg.Social, cfg.Providers.RequestTimeout)
	trendAnalyzer := trend.NewAnalyzer(gateway)
	signalFusion := fusion.NewFusion(engine, gateway, socialGateway, trendAnalyzer)
	predictionEngine := prediction.NewEngine(gateway)

	svc := service.New(predictionEngine, signalFusion, gateway)

	// Keep the BTC quote warm between requests
	warmer := worker.RunBackground(ctx, workers.NewQuoteWarmer(gateway), cfg.Cache.QuoteTTL)
	defer warmer.Stop(cfg.Server.ShutdownTimeout)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	api.NewHandler(svc).RegisterRoutes(e)

	errChan := make(chan error, 1)
	go func() {
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}

func buildCache(ctx context.Context, cfg config.CacheConfig) (cache.Service, error) {
	if cfg.Backend == "redis" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect redis cache: %w", err)
		}
		return redisCache, nil
	}
	return cache.NewMemoryCache(cfg.QuoteTTL * 6), nil
}
