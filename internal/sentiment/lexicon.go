package sentiment

import (
	"strings"

	"github.com/selivandex/btc-predictor/pkg/models"
)

// Thresholds for the per-item lexicon verdict
const (
	lexiconBullish = 0.05
	lexiconBearish = -0.05
)

// Lexicon performs deterministic keyword-based sentiment scoring. It is
// the fallback when the classifier model is unavailable.
type Lexicon struct {
	positiveWords map[string]float64
	negativeWords map[string]float64
}

// NewLexicon creates new lexicon scorer
func NewLexicon() *Lexicon {
	return &Lexicon{
		positiveWords: buildPositiveWords(),
		negativeWords: buildNegativeWords(),
	}
}

// Compound returns a normalized sentiment score in [-1, 1]
func (l *Lexicon) Compound(text string) float64 {
	if text == "" {
		return 0.0
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0.0
	}

	var score float64
	matchCount := 0

	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()")

		if weight, ok := l.positiveWords[word]; ok {
			score += weight
			matchCount++
		}

		if weight, ok := l.negativeWords[word]; ok {
			score -= weight
			matchCount++
		}
	}

	if matchCount == 0 {
		return 0.0
	}

	// Normalize by text length and clamp
	normalized := score / float64(len(words))
	if normalized > 1.0 {
		normalized = 1.0
	} else if normalized < -1.0 {
		normalized = -1.0
	}

	return normalized
}

// Score returns the per-item score and label. Neutral texts score
// exactly 0 regardless of their small compound value.
func (l *Lexicon) Score(text string) (float64, models.SentimentLabel) {
	compound := l.Compound(text)
	switch {
	case compound >= lexiconBullish:
		return compound, models.Bullish
	case compound <= lexiconBearish:
		return compound, models.Bearish
	default:
		return 0.0, models.Neutral
	}
}

// buildPositiveWords returns positive keywords for crypto and equities
func buildPositiveWords() map[string]float64 {
	return map[string]float64{
		// General positive
		"bullish":      1.0,
		"bull":         0.9,
		"rally":        0.9,
		"surge":        0.8,
		"soar":         0.8,
		"pump":         0.7,
		"moon":         0.7,
		"rocket":       0.7,
		"gain":         0.6,
		"gains":        0.6,
		"profit":       0.6,
		"win":          0.6,
		"green":        0.6,
		"record":       0.6,
		"up":           0.5,
		"rise":         0.5,
		"grow":         0.5,
		"growth":       0.5,
		"increase":     0.5,
		"positive":     0.5,
		"optimistic":   0.5,
		"strong":       0.5,
		"breakthrough": 0.6,
		"adoption":     0.6,
		"partnership":  0.5,
		"innovation":   0.5,

		// Equity specific
		"beat":       0.7,
		"beats":      0.7,
		"upgrade":    0.7,
		"upgraded":   0.7,
		"outperform": 0.7,
		"overweight": 0.6,
		"buyback":    0.5,
		"dividend":   0.4,
		"guidance":   0.3,

		// Crypto specific
		"halving":       0.6,
		"breakout":      0.7,
		"ath":           0.8, // all-time high
		"institutional": 0.5,
		"etf":           0.7,
		"approved":      0.6,
		"accumulation":  0.5,
	}
}

// buildNegativeWords returns negative keywords for crypto and equities
func buildNegativeWords() map[string]float64 {
	return map[string]float64{
		// General negative
		"bearish":     1.0,
		"bear":        0.9,
		"crash":       1.0,
		"dump":        0.9,
		"plunge":      0.8,
		"tumble":      0.7,
		"fall":        0.6,
		"falls":       0.6,
		"drop":        0.6,
		"drops":       0.6,
		"decline":     0.6,
		"loss":        0.7,
		"losses":      0.7,
		"red":         0.6,
		"down":        0.5,
		"weak":        0.5,
		"negative":    0.5,
		"pessimistic": 0.5,
		"fear":        0.6,
		"panic":       0.8,
		"sell":        0.5,
		"selloff":     0.7,
		"correction":  0.6,

		// Equity specific
		"miss":         0.7,
		"misses":       0.7,
		"downgrade":    0.7,
		"downgraded":   0.7,
		"underperform": 0.7,
		"underweight":  0.6,
		"layoffs":      0.7,
		"bankruptcy":   1.0,
		"recall":       0.6,
		"probe":        0.5,

		// Crypto specific
		"hack":         1.0,
		"exploit":      1.0,
		"scam":         1.0,
		"fraud":        1.0,
		"lawsuit":      0.7,
		"ban":          0.8,
		"crackdown":    0.7,
		"liquidation":  0.8,
		"capitulation": 0.8,
		"fud":          0.7, // fear, uncertainty, doubt
		"bubble":       0.6,
		"overvalued":   0.6,
	}
}
