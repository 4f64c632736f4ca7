package marketdata

import (
	"context"
	"time"

	"github.com/selivandex/btc-predictor/pkg/models"
)

// QuoteProvider returns a realtime spot price for a symbol.
// Providers are tiered: the gateway walks an ordered chain and stops at
// the first success. A provider must not leave partial state behind on
// failure so chain order stays freely reconfigurable.
type QuoteProvider interface {
	// Name returns provider name
	Name() string

	// GetSpotPrice returns the current price in USD
	GetSpotPrice(ctx context.Context, symbol string) (float64, error)
}

// HistoricalProvider returns dated daily closes
type HistoricalProvider interface {
	// GetDailyCloses returns daily closes for one symbol since start
	GetDailyCloses(ctx context.Context, symbol string, start time.Time) ([]models.ClosePoint, error)

	// GetBatchedCloses returns daily closes for several symbols in one call
	GetBatchedCloses(ctx context.Context, symbols []string, start time.Time) (map[string][]models.ClosePoint, error)
}

// NewsProvider returns recent news for a ticker
type NewsProvider interface {
	// GetNews returns news items, most recent first
	GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error)
}
