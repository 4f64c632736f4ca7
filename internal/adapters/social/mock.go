package social

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/selivandex/btc-predictor/pkg/models"
)

// Mock post templates cycle so a batch carries mixed sentiment
var mockTemplates = []string{
	"Watching %s closely today. The chart looks interesting. #stocks #crypto",
	"%s holding up well against the broader market. Staying long for now.",
	"Not sure about %s here, volume is drying up. Might trim the position.",
	"Big move coming for %s? Options flow has been unusual all week.",
	"%s dip looks like a buying opportunity if BTC keeps grinding higher.",
}

// MockProvider generates synthetic posts when no real social source is
// configured or reachable. Every post is tagged with the simulated
// marker so downstream consumers can disclose degraded data.
type MockProvider struct{}

// NewMockProvider creates the fallback post generator
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Name() string {
	return "mock"
}

// Search returns limit synthetic posts about the query. Engagement
// numbers are derived from the index so batches are reproducible.
func (m *MockProvider) Search(_ context.Context, query string, limit int) ([]models.SocialPost, error) {
	now := time.Now()

	posts := make([]models.SocialPost, 0, limit)
	for i := 0; i < limit; i++ {
		content := fmt.Sprintf(mockTemplates[i%len(mockTemplates)], query)
		posts = append(posts, models.SocialPost{
			ID:       uuid.New().String(),
			Content:  content,
			Author:   fmt.Sprintf("@sim_trader_%d", i+1),
			Date:     now.Add(-time.Duration(i) * time.Hour),
			Likes:    25 + i*17,
			Retweets: 3 + i*2,
			URL:      fmt.Sprintf("https://x.com/sim_trader_%d/status/%d", i+1, i+1),
			Platform: "X (" + models.SimulatedMarker + ")",
		})
	}

	return posts, nil
}
