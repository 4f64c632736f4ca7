package workers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/pkg/logger"
)

// ReferenceQuoter is the slice of the market gateway the warmer needs
type ReferenceQuoter interface {
	GetRealtimeReferencePrice(ctx context.Context) (float64, bool)
}

// QuoteWarmer keeps the reference quote cache warm so prediction
// requests do not pay the upstream round trip on every call
type QuoteWarmer struct {
	market ReferenceQuoter
}

// NewQuoteWarmer creates the reference quote warmer
func NewQuoteWarmer(market ReferenceQuoter) *QuoteWarmer {
	return &QuoteWarmer{market: market}
}

func (w *QuoteWarmer) Name() string {
	return "quote_warmer"
}

// Run fetches the reference price once, which populates the quote cache
func (w *QuoteWarmer) Run(ctx context.Context) error {
	price, ok := w.market.GetRealtimeReferencePrice(ctx)
	if !ok {
		return fmt.Errorf("reference quote unavailable on every tier")
	}

	logger.Debug("reference quote refreshed", zap.Float64("price", price))
	return nil
}
