package models

// SentimentLabel is a five-level bullish/bearish classification
type SentimentLabel string

const (
	VeryBearish SentimentLabel = "Very Bearish"
	Bearish     SentimentLabel = "Bearish"
	Neutral     SentimentLabel = "Neutral"
	Bullish     SentimentLabel = "Bullish"
	VeryBullish SentimentLabel = "Very Bullish"
)

// AnalyzedItem is the per-item breakdown of a sentiment run
type AnalyzedItem struct {
	Kind      string         `json:"kind"` // news or social
	Sentiment SentimentLabel `json:"sentiment"`
	Score     float64        `json:"score"`
	Title     string         `json:"title,omitempty"`
	Content   string         `json:"content,omitempty"`
	Provider  string         `json:"provider,omitempty"`
	Author    string         `json:"author,omitempty"`
	Link      string         `json:"link,omitempty"`
	Date      string         `json:"date,omitempty"`
	Platform  string         `json:"platform,omitempty"`
}

// SentimentResult aggregates text sentiment over a batch of items
type SentimentResult struct {
	Score         float64        `json:"score"` // [-1, 1]
	Label         SentimentLabel `json:"label"`
	AnalyzedItems []AnalyzedItem `json:"analyzed_items"`
}

// TrendSignal is the price-momentum component of the composite signal
type TrendSignal struct {
	Score float64        `json:"score"` // [-1, 1]
	Label SentimentLabel `json:"label"` // Bearish, Neutral or Bullish
}

// CompositeSignal blends text sentiment with price momentum
type CompositeSignal struct {
	Ticker         string         `json:"ticker"`
	SentimentScore float64        `json:"sentiment_score"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	TrendScore     float64        `json:"trend_score"`
	TrendLabel     SentimentLabel `json:"trend_label"`
	CompositeScore float64        `json:"composite_score"`
	CompositeLabel SentimentLabel `json:"composite_label"`
}
