package marketdata

import (
	"context"
	"strconv"
	"time"

	"github.com/selivandex/btc-predictor/pkg/cache"
	"github.com/selivandex/btc-predictor/pkg/models"
)

// CachedGateway decorates realtime quote lookups with a short TTL
// cache. Only quotes are cached; historical series and news stay
// per-request. The core never constructs this type, it is wired in
// main when caching is wanted.
type CachedGateway struct {
	*Gateway
	cache cache.Service
	ttl   time.Duration
}

// NewCachedGateway wraps a gateway with a quote cache
func NewCachedGateway(g *Gateway, c cache.Service, ttl time.Duration) *CachedGateway {
	return &CachedGateway{Gateway: g, cache: c, ttl: ttl}
}

func (cg *CachedGateway) GetRealtimeReferencePrice(ctx context.Context) (float64, bool) {
	return cg.cachedQuote(ctx, models.ReferenceTicker, func() (float64, bool) {
		return cg.Gateway.GetRealtimeReferencePrice(ctx)
	})
}

func (cg *CachedGateway) GetRealtimeProxyPrice(ctx context.Context, ticker string) (float64, bool) {
	return cg.cachedQuote(ctx, ticker, func() (float64, bool) {
		return cg.Gateway.GetRealtimeProxyPrice(ctx, ticker)
	})
}

func (cg *CachedGateway) cachedQuote(ctx context.Context, symbol string, fetch func() (float64, bool)) (float64, bool) {
	key := "quote:" + symbol

	if raw, err := cg.cache.Get(ctx, key); err == nil {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			return price, true
		}
	}

	price, ok := fetch()
	if ok {
		// Cache write failures are not worth failing the lookup over
		_ = cg.cache.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), cg.ttl)
	}
	return price, ok
}
