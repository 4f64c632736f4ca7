package marketdata

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/internal/adapters/config"
	"github.com/selivandex/btc-predictor/pkg/logger"
	"github.com/selivandex/btc-predictor/pkg/models"
)

// MinAlignedRows is the minimum number of aligned rows a historical
// series needs before the prediction models can use it.
const MinAlignedRows = 10

// Gateway resolves prices, historical series and news across tiered
// providers. Each operation walks its chain in priority order and
// degrades to a sentinel when every tier fails; provider errors never
// escape to callers.
type Gateway struct {
	referenceChain []QuoteProvider
	proxyChain     []QuoteProvider
	binance        *BinanceProvider
	yahoo          *YahooProvider
	fearGreed      *FearGreedClient
	newsLimit      int
	exchangeTZ     *time.Location
	now            func() time.Time
}

// NewGateway creates the gateway with its provider chains. The Finnhub
// tier is only added when an API key is configured, so provider
// selection is fixed at construction time.
func NewGateway(cfg config.ProvidersConfig) *Gateway {
	binance := NewBinanceProvider(cfg.RequestTimeout)
	yahoo := NewYahooProvider(cfg.RequestTimeout)

	proxyChain := make([]QuoteProvider, 0, 2)
	if cfg.HasFinnhub() {
		proxyChain = append(proxyChain, NewFinnhubProvider(cfg.FinnhubAPIKey, cfg.RequestTimeout))
	}
	proxyChain = append(proxyChain, yahoo)

	tz, err := time.LoadLocation("America/New_York")
	if err != nil {
		logger.Warn("exchange timezone unavailable, using UTC", zap.Error(err))
		tz = time.UTC
	}

	return &Gateway{
		referenceChain: []QuoteProvider{binance, yahoo},
		proxyChain:     proxyChain,
		binance:        binance,
		yahoo:          yahoo,
		fearGreed:      NewFearGreedClient(cfg.RequestTimeout),
		newsLimit:      cfg.NewsLimit,
		exchangeTZ:     tz,
		now:            time.Now,
	}
}

// GetRealtimeReferencePrice returns the current BTC price. The second
// return value is false when every tier failed.
func (g *Gateway) GetRealtimeReferencePrice(ctx context.Context) (float64, bool) {
	return g.walkChain(ctx, g.referenceChain, models.ReferenceTicker)
}

// GetRealtimeProxyPrice returns the current price for a proxy ticker.
// The second return value is false when every tier failed.
func (g *Gateway) GetRealtimeProxyPrice(ctx context.Context, ticker string) (float64, bool) {
	return g.walkChain(ctx, g.proxyChain, ticker)
}

func (g *Gateway) walkChain(ctx context.Context, chain []QuoteProvider, symbol string) (float64, bool) {
	for _, provider := range chain {
		price, err := provider.GetSpotPrice(ctx, symbol)
		if err != nil {
			logger.Warn("quote tier failed",
				zap.String("provider", provider.Name()),
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			continue
		}
		return price, true
	}
	return 0, false
}

// GetExtendedQuote returns a quote with extended-hours context. BTC
// trades continuously, so its state is always OPEN; stocks get a state
// computed from the exchange wall clock unless the provider reported
// one explicitly. Any failure degrades to an empty CLOSED quote.
func (g *Gateway) GetExtendedQuote(ctx context.Context, ticker string) *models.ExtendedQuote {
	if ticker == models.ReferenceTicker {
		quote, err := g.binance.Get24hStats(ctx)
		if err != nil {
			logger.Warn("24h stats unavailable", zap.Error(err))
			return &models.ExtendedQuote{MarketState: models.MarketClosed}
		}
		return quote
	}

	raw, err := g.yahoo.GetQuote(ctx, ticker)
	if err != nil {
		logger.Warn("extended quote unavailable",
			zap.String("ticker", ticker),
			zap.Error(err),
		)
		return &models.ExtendedQuote{MarketState: models.MarketClosed}
	}

	state := marketStateAt(g.now().In(g.exchangeTZ))
	if reported, ok := normalizeMarketState(raw.MarketState); ok {
		state = reported
	}

	return &models.ExtendedQuote{
		Price:           raw.Price,
		HasPrice:        raw.Price > 0,
		MarketState:     state,
		PreviousClose:   raw.PreviousClose,
		PreMarketPrice:  raw.PreMarketPrice,
		PostMarketPrice: raw.PostMarketPrice,
	}
}

// marketStateAt classifies an exchange-local wall clock time.
// PRE 04:00-09:30, OPEN 09:30-16:00, POST 16:00-20:00, else CLOSED;
// weekends are always CLOSED.
func marketStateAt(t time.Time) models.MarketState {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return models.MarketClosed
	}

	minutes := t.Hour()*60 + t.Minute()
	switch {
	case minutes >= 4*60 && minutes < 9*60+30:
		return models.MarketPre
	case minutes >= 9*60+30 && minutes < 16*60:
		return models.MarketOpen
	case minutes >= 16*60 && minutes < 20*60:
		return models.MarketPost
	default:
		return models.MarketClosed
	}
}

// normalizeMarketState maps provider-reported states onto ours
func normalizeMarketState(state string) (models.MarketState, bool) {
	switch state {
	case "REGULAR":
		return models.MarketOpen, true
	case "PRE", "PREPRE":
		return models.MarketPre, true
	case "POST", "POSTPOST":
		return models.MarketPost, true
	case "CLOSED":
		return models.MarketClosed, true
	default:
		return "", false
	}
}

// GetHistoricalSeries fetches reference and proxy closes in one batched
// call, falling back to two single-symbol calls when the batched result
// is missing a column. Dates missing either close are dropped. Fewer
// than MinAlignedRows aligned rows yields an empty series, not an
// error; callers must treat that as "cannot predict".
func (g *Gateway) GetHistoricalSeries(ctx context.Context, ticker string, start time.Time) *models.HistoricalSeries {
	series := &models.HistoricalSeries{Ticker: ticker}

	symbols := []string{ticker, models.ReferenceTicker}
	batched, err := g.yahoo.GetBatchedCloses(ctx, symbols, start)
	if err != nil {
		logger.Warn("batched history call failed",
			zap.String("ticker", ticker),
			zap.Error(err),
		)
		batched = nil
	}

	proxyCloses := batched[ticker]
	refCloses := batched[models.ReferenceTicker]

	if len(proxyCloses) == 0 || len(refCloses) == 0 {
		logger.Warn("batched history missing column, retrying individually",
			zap.String("ticker", ticker),
		)
		proxyCloses, refCloses = g.fetchIndividually(ctx, ticker, start)
	}

	series.Points = alignCloses(refCloses, proxyCloses)

	if len(series.Points) < MinAlignedRows {
		logger.Warn("insufficient aligned history",
			zap.String("ticker", ticker),
			zap.Int("rows", len(series.Points)),
		)
		series.Points = nil
	}

	return series
}

func (g *Gateway) fetchIndividually(ctx context.Context, ticker string, start time.Time) (proxy, ref []models.ClosePoint) {
	proxy, err := g.yahoo.GetDailyCloses(ctx, ticker, start)
	if err != nil {
		logger.Warn("proxy history unavailable", zap.String("ticker", ticker), zap.Error(err))
	}
	ref, err = g.yahoo.GetDailyCloses(ctx, models.ReferenceTicker, start)
	if err != nil {
		logger.Warn("reference history unavailable", zap.Error(err))
	}
	return proxy, ref
}

// alignCloses joins two dated close series on date, keeping only days
// present in both, ordered ascending
func alignCloses(ref, proxy []models.ClosePoint) []models.AlignedClose {
	refByDate := make(map[time.Time]float64, len(ref))
	for _, p := range ref {
		refByDate[p.Date] = p.Close
	}

	aligned := make([]models.AlignedClose, 0, len(proxy))
	for _, p := range proxy {
		refClose, ok := refByDate[p.Date]
		if !ok {
			continue
		}
		aligned = append(aligned, models.AlignedClose{
			Date:           p.Date,
			ReferenceClose: refClose,
			ProxyClose:     p.Close,
		})
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Date.Before(aligned[j].Date)
	})

	return aligned
}

// GetDailyCloses returns daily closes for a single ticker, best effort
func (g *Gateway) GetDailyCloses(ctx context.Context, ticker string, start time.Time) []models.ClosePoint {
	closes, err := g.yahoo.GetDailyCloses(ctx, ticker, start)
	if err != nil {
		logger.Warn("daily closes unavailable",
			zap.String("ticker", ticker),
			zap.Error(err),
		)
		return nil
	}
	return closes
}

// GetNews returns recent news for a ticker, most recent first.
// Best effort: a failed feed yields an empty list.
func (g *Gateway) GetNews(ctx context.Context, ticker string) []models.NewsItem {
	news, err := g.yahoo.GetNews(ctx, ticker, g.newsLimit)
	if err != nil {
		logger.Warn("news unavailable",
			zap.String("ticker", ticker),
			zap.Error(err),
		)
		return nil
	}
	return news
}

// GetFearAndGreedIndex returns the crypto fear & greed reading, or nil
// when the upstream is unavailable
func (g *Gateway) GetFearAndGreedIndex(ctx context.Context) *models.FearGreedIndex {
	index, err := g.fearGreed.GetIndex(ctx)
	if err != nil {
		logger.Warn("fear & greed index unavailable", zap.Error(err))
		return nil
	}
	return index
}
