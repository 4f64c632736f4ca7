package fusion

import (
	"context"

	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/internal/sentiment"
	"github.com/selivandex/btc-predictor/pkg/logger"
	"github.com/selivandex/btc-predictor/pkg/models"
)

// Composite weights and label cutoffs. The cutoffs are strict: a score
// of exactly 0.2 is still Neutral.
const (
	sentimentWeight = 0.5
	trendWeight     = 0.5
	bullishCutoff   = 0.2
	bearishCutoff   = -0.2
)

// NewsSource provides news items for a ticker
type NewsSource interface {
	GetNews(ctx context.Context, ticker string) []models.NewsItem
}

// SocialSource provides social posts for a query
type SocialSource interface {
	GetPosts(ctx context.Context, query string) []models.SocialPost
}

// TrendSource provides the price-momentum signal
type TrendSource interface {
	AnalyzeTrend(ctx context.Context, ticker string) *models.TrendSignal
}

// Fusion blends text sentiment over news and social posts with price
// momentum into one composite signal
type Fusion struct {
	engine *sentiment.Engine
	news   NewsSource
	social SocialSource // nil disables the social leg
	trend  TrendSource
}

// NewFusion creates the signal fusion pipeline
func NewFusion(engine *sentiment.Engine, news NewsSource, social SocialSource, trend TrendSource) *Fusion {
	return &Fusion{
		engine: engine,
		news:   news,
		social: social,
		trend:  trend,
	}
}

// AnalyzeSentiment runs the sentiment engine over the combined news and
// social batch for a ticker
func (f *Fusion) AnalyzeSentiment(ctx context.Context, ticker string) *models.SentimentResult {
	items := sentiment.WrapNews(f.news.GetNews(ctx, ticker))
	if f.social != nil {
		items = append(items, sentiment.WrapSocial(f.social.GetPosts(ctx, ticker))...)
	}
	return f.engine.Analyze(ctx, items)
}

// CompositeSignal computes the blended sentiment + momentum signal
func (f *Fusion) CompositeSignal(ctx context.Context, ticker string) *models.CompositeSignal {
	sentimentResult := f.AnalyzeSentiment(ctx, ticker)
	trendSignal := f.trend.AnalyzeTrend(ctx, ticker)

	composite := Compose(sentimentResult.Score, trendSignal.Score)

	logger.Debug("composite signal",
		zap.String("ticker", ticker),
		zap.Float64("sentiment", sentimentResult.Score),
		zap.Float64("trend", trendSignal.Score),
		zap.Float64("composite", composite.Score),
	)

	return &models.CompositeSignal{
		Ticker:         ticker,
		SentimentScore: sentimentResult.Score,
		SentimentLabel: sentimentResult.Label,
		TrendScore:     trendSignal.Score,
		TrendLabel:     trendSignal.Label,
		CompositeScore: composite.Score,
		CompositeLabel: composite.Label,
	}
}

// Composed is a bare composite score with its label
type Composed struct {
	Score float64
	Label models.SentimentLabel
}

// Compose blends the two component scores and labels the result
func Compose(sentimentScore, trendScore float64) Composed {
	score := sentimentWeight*sentimentScore + trendWeight*trendScore

	label := models.Neutral
	if score > bullishCutoff {
		label = models.Bullish
	} else if score < bearishCutoff {
		label = models.Bearish
	}

	return Composed{Score: score, Label: label}
}
