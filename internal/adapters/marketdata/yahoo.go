package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/pkg/logger"
	"github.com/selivandex/btc-predictor/pkg/models"
)

const yahooAPIURL = "https://query1.finance.yahoo.com"

// YahooProvider is the general-purpose fallback tier: spot quotes,
// historical closes and news for both stocks and BTC-USD.
type YahooProvider struct {
	client  *http.Client
	baseURL string
}

// NewYahooProvider creates new Yahoo Finance provider
func NewYahooProvider(timeout time.Duration) *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: yahooAPIURL,
	}
}

func (y *YahooProvider) Name() string {
	return "yahoo"
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				MarketState        string  `json:"marketState"`
				PreMarketPrice     float64 `json:"preMarketPrice"`
				PostMarketPrice    float64 `json:"postMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// Quote holds the fields of a Yahoo quote the gateway cares about.
// MarketState is empty when the provider did not report one.
type Quote struct {
	Price           float64
	PreviousClose   float64
	MarketState     string
	PreMarketPrice  float64
	PostMarketPrice float64
}

func (y *YahooProvider) get(ctx context.Context, reqURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Yahoo rejects requests without a browser-ish user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; btc-predictor/1.0)")

	resp, err := y.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetSpotPrice returns the regular market price, falling back to the
// last daily close when the meta block carries no price
func (y *YahooProvider) GetSpotPrice(ctx context.Context, symbol string) (float64, error) {
	quote, err := y.GetQuote(ctx, symbol)
	if err != nil {
		return 0, err
	}
	if quote.Price <= 0 {
		return 0, fmt.Errorf("no price for %s", symbol)
	}
	return quote.Price, nil
}

// GetQuote returns the current quote with extended-hours fields
func (y *YahooProvider) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d",
		y.baseURL, url.PathEscape(symbol))

	var result yahooChartResponse
	if err := y.get(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}

	r := result.Chart.Result[0]
	quote := &Quote{
		Price:           r.Meta.RegularMarketPrice,
		PreviousClose:   r.Meta.ChartPreviousClose,
		MarketState:     r.Meta.MarketState,
		PreMarketPrice:  r.Meta.PreMarketPrice,
		PostMarketPrice: r.Meta.PostMarketPrice,
	}

	// Fall back to the last non-null close of the day
	if quote.Price <= 0 && len(r.Indicators.Quote) > 0 {
		closes := r.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil && *closes[i] > 0 {
				quote.Price = *closes[i]
				break
			}
		}
	}

	return quote, nil
}

// GetDailyCloses returns daily closes for one symbol since start
func (y *YahooProvider) GetDailyCloses(ctx context.Context, symbol string, start time.Time) ([]models.ClosePoint, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		y.baseURL, url.PathEscape(symbol), start.Unix(), time.Now().Unix())

	var result yahooChartResponse
	if err := y.get(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}

	r := result.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	return buildClosePoints(r.Timestamp, r.Indicators.Quote[0].Close), nil
}

type yahooSparkResponse struct {
	Spark struct {
		Result []struct {
			Symbol   string `json:"symbol"`
			Response []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Close []*float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"response"`
		} `json:"result"`
	} `json:"spark"`
}

// GetBatchedCloses fetches daily closes for several symbols in one
// spark call. Missing symbols are simply absent from the result map;
// the caller decides whether to retry per symbol.
func (y *YahooProvider) GetBatchedCloses(ctx context.Context, symbols []string, start time.Time) (map[string][]models.ClosePoint, error) {
	reqURL := fmt.Sprintf("%s/v7/finance/spark?symbols=%s&range=%s&interval=1d",
		y.baseURL, url.QueryEscape(strings.Join(symbols, ",")), sparkRange(start))

	var result yahooSparkResponse
	if err := y.get(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	closes := make(map[string][]models.ClosePoint, len(symbols))
	for _, r := range result.Spark.Result {
		if len(r.Response) == 0 || len(r.Response[0].Indicators.Quote) == 0 {
			continue
		}
		points := buildClosePoints(r.Response[0].Timestamp, r.Response[0].Indicators.Quote[0].Close)

		// Spark only supports coarse ranges, trim back to start
		trimmed := points[:0]
		for _, p := range points {
			if !p.Date.Before(start) {
				trimmed = append(trimmed, p)
			}
		}
		closes[r.Symbol] = trimmed
	}

	return closes, nil
}

// sparkRange maps a start date to the smallest spark range covering it
func sparkRange(start time.Time) string {
	days := int(time.Since(start).Hours() / 24)
	switch {
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 91:
		return "3mo"
	case days <= 182:
		return "6mo"
	case days <= 365:
		return "1y"
	case days <= 730:
		return "2y"
	case days <= 1825:
		return "5y"
	default:
		return "max"
	}
}

func buildClosePoints(timestamps []int64, closes []*float64) []models.ClosePoint {
	points := make([]models.ClosePoint, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		points = append(points, models.ClosePoint{Date: day, Close: *closes[i]})
	}
	return points
}

// GetNews returns recent news for a ticker, most recent first. The feed
// schema varies per publisher, so every item is decoded independently
// and malformed ones are skipped rather than failing the batch.
func (y *YahooProvider) GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error) {
	reqURL := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		y.baseURL, url.QueryEscape(ticker), limit)

	var result struct {
		News []json.RawMessage `json:"news"`
	}
	if err := y.get(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	type rawItem struct {
		Title               string `json:"title"`
		Link                string `json:"link"`
		Publisher           string `json:"publisher"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
		Summary             string `json:"summary"`
	}

	type datedItem struct {
		item        models.NewsItem
		publishedAt time.Time
	}

	dated := make([]datedItem, 0, len(result.News))
	for _, raw := range result.News {
		var item rawItem
		if err := json.Unmarshal(raw, &item); err != nil {
			logger.Debug("skipping malformed news item", zap.Error(err))
			continue
		}
		if item.Title == "" {
			continue
		}

		link := item.Link
		if link == "" {
			link = "#"
		}
		provider := item.Publisher
		if provider == "" {
			provider = "Source"
		}

		publishedAt := time.Unix(item.ProviderPublishTime, 0).UTC()
		dated = append(dated, datedItem{
			item: models.NewsItem{
				Title:    item.Title,
				Link:     link,
				Provider: provider,
				Date:     publishedAt.Format("2006-01-02"),
				Summary:  item.Summary,
			},
			publishedAt: publishedAt,
		})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].publishedAt.After(dated[j].publishedAt)
	})

	news := make([]models.NewsItem, len(dated))
	for i, d := range dated {
		news[i] = d.item
	}
	return news, nil
}
