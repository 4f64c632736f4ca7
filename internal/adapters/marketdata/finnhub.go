package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const finnhubAPIURL = "https://finnhub.io/api/v1"

// FinnhubProvider fetches low-latency stock quotes from Finnhub.
// Requires an API key; the gateway only puts it in the chain when one
// is configured.
type FinnhubProvider struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewFinnhubProvider creates new Finnhub quote provider
func NewFinnhubProvider(apiKey string, timeout time.Duration) *FinnhubProvider {
	return &FinnhubProvider{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		baseURL: finnhubAPIURL,
	}
}

func (f *FinnhubProvider) Name() string {
	return "finnhub"
}

// GetSpotPrice returns the current quote for a ticker
func (f *FinnhubProvider) GetSpotPrice(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/quote?symbol=%s&token=%s", f.baseURL, symbol, f.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Current       float64 `json:"c"`
		PreviousClose float64 `json:"pc"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	// Finnhub returns zeros for unknown symbols instead of an error
	if result.Current <= 0 {
		return 0, fmt.Errorf("empty quote for %s", symbol)
	}

	return result.Current, nil
}
