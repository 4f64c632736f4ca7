package social

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/internal/adapters/config"
	"github.com/selivandex/btc-predictor/pkg/logger"
	"github.com/selivandex/btc-predictor/pkg/models"
)

// Gateway fetches social posts for a query, trying real providers in
// order and falling back to the simulated generator so a request never
// comes back empty-handed without explanation.
type Gateway struct {
	providers []Provider
	mock      *MockProvider
	limit     int
}

// NewGateway builds the provider chain from configuration
func NewGateway(cfg config.SocialConfig, timeout time.Duration) *Gateway {
	providers := make([]Provider, 0, 1)
	if cfg.HasTwitter() {
		providers = append(providers, NewTwitterProvider(cfg.TwitterBearerToken, timeout))
	}

	return &Gateway{
		providers: providers,
		mock:      NewMockProvider(),
		limit:     cfg.PostLimit,
	}
}

// GetPosts returns posts for a query. Provider failures fall through to
// the next tier; when no tier yields posts the simulated generator
// answers, with its posts visibly tagged.
func (g *Gateway) GetPosts(ctx context.Context, query string) []models.SocialPost {
	for _, provider := range g.providers {
		posts, err := provider.Search(ctx, query, g.limit)
		if err != nil {
			logger.Warn("social provider failed",
				zap.String("provider", provider.Name()),
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}
		if len(posts) == 0 {
			logger.Warn("social provider returned no posts",
				zap.String("provider", provider.Name()),
				zap.String("query", query),
			)
			continue
		}
		return posts
	}

	logger.Info("using simulated social posts", zap.String("query", query))
	posts, _ := g.mock.Search(ctx, query, g.limit)
	return posts
}
