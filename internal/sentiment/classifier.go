package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Classification is one output of the 3-class sentiment model
type Classification struct {
	Label      string  `json:"label"` // positive, negative or neutral
	Confidence float64 `json:"confidence"`
}

// Classifier scores text with a transformer-style sentiment model
type Classifier interface {
	// Ping verifies the model is loaded and reachable
	Ping(ctx context.Context) error

	// Classify returns the model's verdict for one text
	Classify(ctx context.Context, text string) (*Classification, error)
}

// ModelClient talks to an external model-serving endpoint over HTTP
type ModelClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewModelClient creates a reusable classifier client
func NewModelClient(endpoint, apiKey string) *ModelClient {
	return &ModelClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Ping checks the model service health endpoint
func (m *ModelClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	m.authorize(req)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

// Classify sends one text for scoring
func (m *ModelClient) Classify(ctx context.Context, text string) (*Classification, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"/classify", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	m.authorize(req)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var result Classification
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

func (m *ModelClient) authorize(req *http.Request) {
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}
}
