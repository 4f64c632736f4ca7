package sentiment

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/selivandex/btc-predictor/pkg/logger"
	"github.com/selivandex/btc-predictor/pkg/models"
)

// Model input limit, matches the transformer context window
const maxScoringBytes = 512

// Engine scores batches of news and social text. It prefers the
// classifier model and falls back to the lexicon, either per item when
// a single call fails or permanently when the model never becomes
// available. The availability probe runs once per engine lifetime.
type Engine struct {
	classifier Classifier
	lexicon    *Lexicon

	probeOnce  sync.Once
	modelReady bool
}

// NewEngine creates a sentiment engine. A nil classifier means
// lexicon-only scoring from the start.
func NewEngine(classifier Classifier) *Engine {
	return &Engine{
		classifier: classifier,
		lexicon:    NewLexicon(),
	}
}

// Analyze scores every item and aggregates into one result. Items with
// empty text are skipped; an empty batch yields a Neutral zero result.
func (e *Engine) Analyze(ctx context.Context, items []ScorableItem) *models.SentimentResult {
	result := &models.SentimentResult{
		Label:         models.Neutral,
		AnalyzedItems: make([]models.AnalyzedItem, 0, len(items)),
	}
	if len(items) == 0 {
		return result
	}

	e.probeModel(ctx)

	var total float64
	scored := 0

	for _, item := range items {
		text := item.ScoringText()
		if text == "" || text == "." {
			continue
		}

		score, label := e.scoreText(ctx, text)

		analyzed := item.Meta()
		analyzed.Score = score
		analyzed.Sentiment = label
		result.AnalyzedItems = append(result.AnalyzedItems, analyzed)

		total += score
		scored++
	}

	if scored == 0 {
		return result
	}

	result.Score = total / float64(scored)
	result.Label = AggregateLabel(result.Score)
	return result
}

// scoreText scores a single text, falling back to the lexicon when the
// model call fails
func (e *Engine) scoreText(ctx context.Context, text string) (float64, models.SentimentLabel) {
	if !e.modelReady {
		return e.lexicon.Score(text)
	}

	verdict, err := e.classifier.Classify(ctx, truncate(text, maxScoringBytes))
	if err != nil {
		logger.Warn("classifier call failed, using lexicon", zap.Error(err))
		return e.lexicon.Score(text)
	}

	switch verdict.Label {
	case "positive":
		return verdict.Confidence, models.Bullish
	case "negative":
		return -verdict.Confidence, models.Bearish
	default:
		return 0, models.Neutral
	}
}

// probeModel checks classifier availability exactly once. A failed
// probe downgrades this engine to lexicon-only for its lifetime.
func (e *Engine) probeModel(ctx context.Context) {
	e.probeOnce.Do(func() {
		if e.classifier == nil {
			return
		}
		if err := e.classifier.Ping(ctx); err != nil {
			logger.Warn("sentiment model unavailable, using lexicon fallback", zap.Error(err))
			return
		}
		e.modelReady = true
		logger.Info("sentiment model loaded")
	})
}

// AggregateLabel maps an aggregate score onto the five-level scale
func AggregateLabel(score float64) models.SentimentLabel {
	switch {
	case score >= 0.5:
		return models.VeryBullish
	case score >= 0.1:
		return models.Bullish
	case score <= -0.5:
		return models.VeryBearish
	case score <= -0.1:
		return models.Bearish
	default:
		return models.Neutral
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
