package social

import (
	"context"

	"github.com/selivandex/btc-predictor/pkg/models"
)

// Provider searches a social platform for recent posts about a query
type Provider interface {
	// Name returns provider name
	Name() string

	// Search returns recent posts matching the query
	Search(ctx context.Context, query string, limit int) ([]models.SocialPost, error)
}
