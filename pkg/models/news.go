package models

import (
	"strings"
	"time"
)

// NewsItem represents single news item normalized from a provider feed
type NewsItem struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Provider string `json:"provider"`
	Date     string `json:"date"`
	Summary  string `json:"summary,omitempty"`
}

// SimulatedMarker tags social posts generated by the mock provider.
// Downstream consumers use it to warn that data is synthetic.
const SimulatedMarker = "Simulated"

// SocialPost represents a social media post (e.g. an X.com tweet)
type SocialPost struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
	Likes    int       `json:"likes"`
	Retweets int       `json:"retweets"`
	URL      string    `json:"url"`
	Platform string    `json:"platform"`
}

// IsSimulated reports whether the post came from the mock fallback
func (p SocialPost) IsSimulated() bool {
	return strings.Contains(p.Platform, SimulatedMarker)
}
