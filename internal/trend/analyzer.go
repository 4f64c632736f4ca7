package trend

import (
	"context"
	"time"

	"github.com/cinar/indicator"

	"github.com/selivandex/btc-predictor/pkg/models"
)

const (
	lookbackDays = 150
	minRows      = 50
	shortWindow  = 20
	longWindow   = 50
)

// HistorySource provides daily closes for the momentum windows
type HistorySource interface {
	GetDailyCloses(ctx context.Context, ticker string, start time.Time) []models.ClosePoint
}

// Analyzer computes a short/medium-term price momentum score from
// SMA20/SMA50 crossovers
type Analyzer struct {
	history HistorySource
}

// NewAnalyzer creates new trend analyzer
func NewAnalyzer(history HistorySource) *Analyzer {
	return &Analyzer{history: history}
}

// AnalyzeTrend scores the latest momentum for a ticker. Fewer than 50
// usable rows yields a Neutral zero signal rather than an error.
func (a *Analyzer) AnalyzeTrend(ctx context.Context, ticker string) *models.TrendSignal {
	start := time.Now().AddDate(0, 0, -lookbackDays)
	points := a.history.GetDailyCloses(ctx, ticker, start)
	if len(points) < minRows {
		return &models.TrendSignal{Label: models.Neutral}
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}

	sma20 := indicator.Sma(shortWindow, closes)
	sma50 := indicator.Sma(longWindow, closes)

	current := closes[len(closes)-1]
	latest20 := sma20[len(sma20)-1]
	latest50 := sma50[len(sma50)-1]

	var score float64
	if current > latest20 {
		score += 0.5
	} else {
		score -= 0.5
	}
	if latest20 > latest50 {
		score += 0.5
	} else {
		score -= 0.5
	}

	return &models.TrendSignal{
		Score: score,
		Label: labelForScore(score),
	}
}

func labelForScore(score float64) models.SentimentLabel {
	switch {
	case score >= 0.5:
		return models.Bullish
	case score <= -0.5:
		return models.Bearish
	default:
		return models.Neutral
	}
}
