package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/selivandex/btc-predictor/pkg/models"
)

const fearGreedAPIURL = "https://api.alternative.me/fng/"

// FearGreedClient fetches the Crypto Fear & Greed Index from
// alternative.me (free, no API key needed)
type FearGreedClient struct {
	client  *http.Client
	baseURL string
}

// NewFearGreedClient creates new fear & greed index client
func NewFearGreedClient(timeout time.Duration) *FearGreedClient {
	return &FearGreedClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: fearGreedAPIURL,
	}
}

// GetIndex returns the latest index reading
func (f *FearGreedClient) GetIndex(ctx context.Context) (*models.FearGreedIndex, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.baseURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []struct {
			Value               string `json:"value"`
			ValueClassification string `json:"value_classification"`
			Timestamp           string `json:"timestamp"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("empty index data")
	}

	entry := result.Data[0]
	value, err := strconv.Atoi(entry.Value)
	if err != nil {
		return nil, fmt.Errorf("malformed index value %q: %w", entry.Value, err)
	}

	index := &models.FearGreedIndex{
		Value:          value,
		Classification: entry.ValueClassification,
	}
	if ts, err := strconv.ParseInt(entry.Timestamp, 10, 64); err == nil {
		index.UpdatedAt = time.Unix(ts, 0).UTC()
	}

	return index, nil
}
