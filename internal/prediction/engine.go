package prediction

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/internal/adapters/marketdata"
	"github.com/selivandex/btc-predictor/pkg/logger"
	"github.com/selivandex/btc-predictor/pkg/models"
)

// ErrInsufficientData means fewer aligned historical rows than the
// models need. It is the only failure Predict surfaces; callers show
// "cannot analyze" rather than a price.
var ErrInsufficientData = errors.New("insufficient aligned history for prediction")

// MarketData is the slice of the gateway the engine depends on
type MarketData interface {
	GetHistoricalSeries(ctx context.Context, ticker string, start time.Time) *models.HistoricalSeries
	GetRealtimeReferencePrice(ctx context.Context) (float64, bool)
	GetRealtimeProxyPrice(ctx context.Context, ticker string) (float64, bool)
}

// Request holds the inputs for one prediction
type Request struct {
	Ticker          string
	TargetBTCPrice  float64
	StartDate       time.Time
	EventMultiplier float64 // <=0 means 1.0
	// Manual price overrides; values > 0 take priority over realtime
	// quotes and historical closes
	ManualBTCPrice   float64
	ManualProxyPrice float64
}

// Engine fits the beta and power-law models over an aligned historical
// series and produces point price predictions
type Engine struct {
	market MarketData
}

// NewEngine creates new prediction engine
func NewEngine(market MarketData) *Engine {
	return &Engine{market: market}
}

// Predict runs both models for one ticker. Everything past the history
// fetch is pure arithmetic with no further failure modes.
func (e *Engine) Predict(ctx context.Context, req Request) (*models.PredictionResult, error) {
	series := e.market.GetHistoricalSeries(ctx, req.Ticker, req.StartDate)
	if series.Len() < marketdata.MinAlignedRows {
		return nil, ErrInsufficientData
	}

	refCloses := series.ReferenceCloses()
	proxyCloses := series.ProxyCloses()

	// Beta: OLS of proxy log-returns on reference log-returns
	refReturns := logReturns(refCloses)
	proxyReturns := logReturns(proxyCloses)
	beta, _, rSquared := olsFit(refReturns, proxyReturns)
	correlation := directionalCorrelation(beta, rSquared)

	currentBTC := e.resolvePrice(req.ManualBTCPrice, series.LastReferenceClose(), func() (float64, bool) {
		return e.market.GetRealtimeReferencePrice(ctx)
	})
	currentProxy := e.resolvePrice(req.ManualProxyPrice, series.LastProxyClose(), func() (float64, bool) {
		return e.market.GetRealtimeProxyPrice(ctx, req.Ticker)
	})

	multiplier := req.EventMultiplier
	if multiplier <= 0 {
		multiplier = 1.0
	}

	btcReturn := (req.TargetBTCPrice - currentBTC) / currentBTC
	predictedBeta := currentProxy * (1 + beta*btcReturn) * multiplier

	predictedPowerLaw := 0.0
	if req.TargetBTCPrice > 0 {
		// Power law: OLS of ln(proxy) on ln(reference) over raw prices
		slope, intercept, _ := olsFit(logValues(refCloses), logValues(proxyCloses))
		predictedLn := intercept + slope*math.Log(req.TargetBTCPrice)
		predictedPowerLaw = math.Exp(predictedLn) * multiplier
	}

	logger.Debug("prediction computed",
		zap.String("ticker", req.Ticker),
		zap.Float64("beta", beta),
		zap.Float64("correlation", correlation),
		zap.Int("rows", series.Len()),
	)

	return &models.PredictionResult{
		Ticker:                 req.Ticker,
		CurrentBTCPrice:        currentBTC,
		CurrentProxyPrice:      currentProxy,
		Beta:                   beta,
		Correlation:            correlation,
		PredictedPriceBeta:     predictedBeta,
		PredictedPricePowerLaw: predictedPowerLaw,
	}, nil
}

// resolvePrice applies the priority manual override > realtime quote >
// last historical close
func (e *Engine) resolvePrice(manual, lastClose float64, realtime func() (float64, bool)) float64 {
	if manual > 0 {
		return manual
	}
	if price, ok := realtime(); ok && price > 0 {
		return price
	}
	return lastClose
}

// logReturns computes per-period log returns, dropping the first row
func logReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns[i-1] = math.Log(values[i] / values[i-1])
	}
	return returns
}

func logValues(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Log(v)
	}
	return out
}

// olsFit fits y = intercept + slope*x by ordinary least squares and
// returns the R-squared of the fit
func olsFit(x, y []float64) (slope, intercept, rSquared float64) {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0, 0, 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}

	if sxx == 0 {
		return 0, meanY, 0
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		residual := y[i] - (intercept + slope*x[i])
		ssRes += residual * residual
		dy := y[i] - meanY
		ssTot += dy * dy
	}

	if ssTot == 0 {
		return slope, intercept, 0
	}
	return slope, intercept, 1 - ssRes/ssTot
}

// directionalCorrelation reports co-movement strength signed by beta.
// This is intentionally not a Pearson correlation: it is
// sign(beta)*sqrt(R²), with beta == 0 mapping to 0.
func directionalCorrelation(beta, rSquared float64) float64 {
	root := math.Sqrt(rSquared)
	switch {
	case beta > 0:
		return root
	case beta < 0:
		return -root
	default:
		return 0
	}
}
