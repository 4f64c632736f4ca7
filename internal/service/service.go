package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/internal/fusion"
	"github.com/selivandex/btc-predictor/internal/prediction"
	"github.com/selivandex/btc-predictor/pkg/logger"
	"github.com/selivandex/btc-predictor/pkg/models"
)

// MarketData is the slice of the gateway the facade exposes directly
type MarketData interface {
	GetExtendedQuote(ctx context.Context, ticker string) *models.ExtendedQuote
	GetFearAndGreedIndex(ctx context.Context) *models.FearGreedIndex
}

// Service is the facade the presentation layer talks to. One instance
// serves all requests; every call is stateless and synchronous.
type Service struct {
	engine *prediction.Engine
	fusion *fusion.Fusion
	market MarketData
}

// New creates the prediction service facade
func New(engine *prediction.Engine, f *fusion.Fusion, market MarketData) *Service {
	return &Service{
		engine: engine,
		fusion: f,
		market: market,
	}
}

// PredictPrice runs both prediction models for a ticker.
// prediction.ErrInsufficientData is the only error it returns.
func (s *Service) PredictPrice(ctx context.Context, req prediction.Request) (*models.PredictionResult, error) {
	logger.Info("predicting price",
		zap.String("ticker", req.Ticker),
		zap.Float64("target_btc", req.TargetBTCPrice),
	)
	return s.engine.Predict(ctx, req)
}

// GetMarketSentiment returns the composite sentiment + momentum signal
// for a ticker. It never fails; degraded inputs yield a Neutral signal.
func (s *Service) GetMarketSentiment(ctx context.Context, ticker string) *models.CompositeSignal {
	logger.Info("analyzing market sentiment", zap.String("ticker", ticker))
	return s.fusion.CompositeSignal(ctx, ticker)
}

// GetSentimentDetails returns the full per-item sentiment breakdown
func (s *Service) GetSentimentDetails(ctx context.Context, ticker string) *models.SentimentResult {
	return s.fusion.AnalyzeSentiment(ctx, ticker)
}

// GetExtendedQuote returns a realtime quote with extended-hours context
func (s *Service) GetExtendedQuote(ctx context.Context, ticker string) *models.ExtendedQuote {
	return s.market.GetExtendedQuote(ctx, ticker)
}

// GetFearAndGreedIndex returns the crypto fear & greed reading, nil
// when unavailable
func (s *Service) GetFearAndGreedIndex(ctx context.Context) *models.FearGreedIndex {
	return s.market.GetFearAndGreedIndex(ctx)
}
