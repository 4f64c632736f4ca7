package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/selivandex/btc-predictor/pkg/models"
)

const (
	binanceAPIURL    = "https://api.binance.com/api/v3"
	binanceBTCSymbol = "BTCUSDT"
)

// BinanceProvider fetches BTC spot prices from the free Binance public
// API (no key required). It only serves the reference asset.
type BinanceProvider struct {
	client  *http.Client
	baseURL string
}

// NewBinanceProvider creates new Binance price provider
func NewBinanceProvider(timeout time.Duration) *BinanceProvider {
	return &BinanceProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: binanceAPIURL,
	}
}

func (b *BinanceProvider) Name() string {
	return "binance"
}

// GetSpotPrice returns the current BTC price in USD
func (b *BinanceProvider) GetSpotPrice(ctx context.Context, symbol string) (float64, error) {
	if symbol != models.ReferenceTicker {
		return 0, fmt.Errorf("binance tier only serves %s, got %s", models.ReferenceTicker, symbol)
	}

	url := fmt.Sprintf("%s/ticker/price?symbol=%s", b.baseURL, binanceBTCSymbol)

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	price, err := decimal.NewFromString(result.Price)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q: %w", result.Price, err)
	}

	f, _ := price.Float64()
	if f <= 0 {
		return 0, fmt.Errorf("non-positive price %q", result.Price)
	}
	return f, nil
}

// Get24hStats returns the 24h ticker statistics for BTC. The reference
// market trades continuously, so the state is always OPEN.
func (b *BinanceProvider) Get24hStats(ctx context.Context) (*models.ExtendedQuote, error) {
	url := fmt.Sprintf("%s/ticker/24hr?symbol=%s", b.baseURL, binanceBTCSymbol)

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		LastPrice      string `json:"lastPrice"`
		PrevClosePrice string `json:"prevClosePrice"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	last, err := decimal.NewFromString(result.LastPrice)
	if err != nil {
		return nil, fmt.Errorf("malformed last price %q: %w", result.LastPrice, err)
	}

	quote := &models.ExtendedQuote{
		MarketState: models.MarketOpen,
	}
	quote.Price, _ = last.Float64()
	quote.HasPrice = quote.Price > 0

	if prev, err := decimal.NewFromString(result.PrevClosePrice); err == nil {
		quote.PreviousClose, _ = prev.Float64()
	}

	return quote, nil
}
