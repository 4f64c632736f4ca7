package fusion

import (
	"context"
	"math"
	"testing"

	"github.com/selivandex/btc-predictor/internal/sentiment"
	"github.com/selivandex/btc-predictor/pkg/models"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name          string
		sentiment     float64
		trend         float64
		expectedScore float64
		expectedLabel models.SentimentLabel
	}{
		{"both bullish", 0.6, 0.5, 0.55, models.Bullish},
		{"both bearish", -0.6, -0.5, -0.55, models.Bearish},
		{"exactly at cutoff stays neutral", 0.6, -0.2, 0.2, models.Neutral},
		{"exactly at negative cutoff stays neutral", -0.6, 0.2, -0.2, models.Neutral},
		{"just past cutoff", 0.5, -0.08, 0.21, models.Bullish},
		{"zero inputs", 0, 0, 0, models.Neutral},
		{"offsetting signals", 0.8, -0.8, 0, models.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.sentiment, tt.trend)
			if math.Abs(got.Score-tt.expectedScore) > 1e-9 {
				t.Errorf("Expected score %.4f, got %.4f", tt.expectedScore, got.Score)
			}
			if got.Label != tt.expectedLabel {
				t.Errorf("Expected label %s, got %s", tt.expectedLabel, got.Label)
			}
		})
	}
}

func TestEventMultiplier(t *testing.T) {
	tests := []struct {
		label    models.SentimentLabel
		expected float64
	}{
		{models.VeryBearish, 0.70},
		{models.Bearish, 0.85},
		{models.Neutral, 1.00},
		{models.Bullish, 1.15},
		{models.VeryBullish, 1.30},
		{models.SentimentLabel("Unknown"), 1.0},
	}

	for _, tt := range tests {
		if got := EventMultiplier(tt.label, nil); got != tt.expected {
			t.Errorf("EventMultiplier(%s) = %.2f, expected %.2f", tt.label, got, tt.expected)
		}
	}
}

func TestEventMultiplier_Overrides(t *testing.T) {
	overrides := map[models.SentimentLabel]float64{
		models.Bullish: 1.25,
	}

	if got := EventMultiplier(models.Bullish, overrides); got != 1.25 {
		t.Errorf("Expected override 1.25, got %.2f", got)
	}
	if got := EventMultiplier(models.Bearish, overrides); got != 0.85 {
		t.Errorf("Expected default 0.85 for non-overridden label, got %.2f", got)
	}
}

type stubNews struct {
	items []models.NewsItem
}

func (s *stubNews) GetNews(_ context.Context, _ string) []models.NewsItem {
	return s.items
}

type stubSocial struct {
	posts []models.SocialPost
}

func (s *stubSocial) GetPosts(_ context.Context, _ string) []models.SocialPost {
	return s.posts
}

type stubTrend struct {
	signal models.TrendSignal
}

func (s *stubTrend) AnalyzeTrend(_ context.Context, _ string) *models.TrendSignal {
	signal := s.signal
	return &signal
}

func TestCompositeSignal(t *testing.T) {
	news := &stubNews{items: []models.NewsItem{
		{Title: "Massive rally as stocks surge to record gains", Link: "#", Provider: "Source", Date: "2025-06-01"},
	}}
	trend := &stubTrend{signal: models.TrendSignal{Score: 1.0, Label: models.Bullish}}

	f := NewFusion(sentiment.NewEngine(nil), news, nil, trend)

	signal := f.CompositeSignal(context.Background(), "MSTR")

	if signal.Ticker != "MSTR" {
		t.Errorf("Expected ticker MSTR, got %s", signal.Ticker)
	}
	if signal.SentimentScore <= 0 {
		t.Errorf("Expected positive sentiment score, got %.4f", signal.SentimentScore)
	}
	if signal.TrendScore != 1.0 {
		t.Errorf("Expected trend score 1.0, got %.4f", signal.TrendScore)
	}
	if signal.CompositeLabel != models.Bullish {
		t.Errorf("Expected Bullish composite, got %s", signal.CompositeLabel)
	}
}

func TestAnalyzeSentiment_IncludesSocialLeg(t *testing.T) {
	news := &stubNews{items: []models.NewsItem{
		{Title: "Quiet session expected", Link: "#", Provider: "Source", Date: "2025-06-01"},
	}}
	social := &stubSocial{posts: []models.SocialPost{
		{Content: "Bullish on this rally, huge gains coming", Author: "@trader"},
	}}
	trend := &stubTrend{}

	f := NewFusion(sentiment.NewEngine(nil), news, social, trend)

	result := f.AnalyzeSentiment(context.Background(), "MSTR")
	if len(result.AnalyzedItems) != 2 {
		t.Fatalf("Expected 2 analyzed items (news + social), got %d", len(result.AnalyzedItems))
	}
}
