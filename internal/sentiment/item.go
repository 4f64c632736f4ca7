package sentiment

import (
	"fmt"
	"strings"

	"github.com/selivandex/btc-predictor/pkg/models"
)

// ScorableItem is a piece of text the engine can score, tagged with its
// source metadata. Adding a new item kind means adding a new variant;
// the scorer itself is kind-agnostic.
type ScorableItem interface {
	// ScoringText returns the text to run sentiment over
	ScoringText() string

	// Meta returns the source metadata for the analyzed-items breakdown.
	// Sentiment and Score are filled in by the engine.
	Meta() models.AnalyzedItem
}

// NewsScorable wraps a news item for scoring
type NewsScorable struct {
	Item models.NewsItem
}

func (n NewsScorable) ScoringText() string {
	return strings.TrimSpace(fmt.Sprintf("%s. %s", n.Item.Title, n.Item.Summary))
}

func (n NewsScorable) Meta() models.AnalyzedItem {
	return models.AnalyzedItem{
		Kind:     "news",
		Title:    n.Item.Title,
		Link:     n.Item.Link,
		Provider: n.Item.Provider,
		Date:     n.Item.Date,
	}
}

// SocialScorable wraps a social post for scoring
type SocialScorable struct {
	Post models.SocialPost
}

func (s SocialScorable) ScoringText() string {
	return strings.TrimSpace(s.Post.Content)
}

func (s SocialScorable) Meta() models.AnalyzedItem {
	return models.AnalyzedItem{
		Kind:     "social",
		Content:  s.Post.Content,
		Author:   s.Post.Author,
		Link:     s.Post.URL,
		Date:     s.Post.Date.Format("2006-01-02"),
		Platform: s.Post.Platform,
	}
}

// WrapNews converts news items into scorable items
func WrapNews(items []models.NewsItem) []ScorableItem {
	out := make([]ScorableItem, len(items))
	for i, item := range items {
		out[i] = NewsScorable{Item: item}
	}
	return out
}

// WrapSocial converts social posts into scorable items
func WrapSocial(posts []models.SocialPost) []ScorableItem {
	out := make([]ScorableItem, len(posts))
	for i, post := range posts {
		out[i] = SocialScorable{Post: post}
	}
	return out
}
