package social

import (
	"context"
	"errors"
	"testing"

	"github.com/selivandex/btc-predictor/internal/adapters/config"
	"github.com/selivandex/btc-predictor/pkg/models"
)

type stubProvider struct {
	posts []models.SocialPost
	err   error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, _ string, _ int) ([]models.SocialPost, error) {
	return s.posts, s.err
}

func TestGetPosts_FallsBackToMockWithoutProviders(t *testing.T) {
	gateway := NewGateway(config.SocialConfig{PostLimit: 5}, 0)

	posts := gateway.GetPosts(context.Background(), "MSTR")

	if len(posts) != 5 {
		t.Fatalf("Expected 5 posts, got %d", len(posts))
	}
	for i, post := range posts {
		if !post.IsSimulated() {
			t.Errorf("Post %d not marked simulated: platform %q", i, post.Platform)
		}
		if post.ID == "" {
			t.Errorf("Post %d has empty ID", i)
		}
	}
}

func TestGetPosts_FallsBackOnProviderError(t *testing.T) {
	gateway := &Gateway{
		providers: []Provider{&stubProvider{err: errors.New("rate limited")}},
		mock:      NewMockProvider(),
		limit:     3,
	}

	posts := gateway.GetPosts(context.Background(), "MSTR")

	if len(posts) != 3 {
		t.Fatalf("Expected 3 fallback posts, got %d", len(posts))
	}
	if !posts[0].IsSimulated() {
		t.Error("Expected simulated fallback posts")
	}
}

func TestGetPosts_FallsBackOnEmptyResult(t *testing.T) {
	gateway := &Gateway{
		providers: []Provider{&stubProvider{}},
		mock:      NewMockProvider(),
		limit:     3,
	}

	posts := gateway.GetPosts(context.Background(), "MSTR")
	if len(posts) != 3 || !posts[0].IsSimulated() {
		t.Error("Expected simulated fallback when the provider returns nothing")
	}
}

func TestGetPosts_UsesRealProviderWhenAvailable(t *testing.T) {
	real := []models.SocialPost{
		{ID: "1", Content: "MSTR to the moon", Platform: "X"},
	}
	gateway := &Gateway{
		providers: []Provider{&stubProvider{posts: real}},
		mock:      NewMockProvider(),
		limit:     3,
	}

	posts := gateway.GetPosts(context.Background(), "MSTR")

	if len(posts) != 1 {
		t.Fatalf("Expected 1 real post, got %d", len(posts))
	}
	if posts[0].IsSimulated() {
		t.Error("Real posts must not be marked simulated")
	}
}

func TestMockProvider_PostsMentionQuery(t *testing.T) {
	posts, err := NewMockProvider().Search(context.Background(), "MSTR", 7)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(posts) != 7 {
		t.Fatalf("Expected 7 posts, got %d", len(posts))
	}

	seen := make(map[string]bool)
	for _, post := range posts {
		if seen[post.ID] {
			t.Errorf("Duplicate post ID %s", post.ID)
		}
		seen[post.ID] = true
	}
}
