package sentiment

import (
	"testing"

	"github.com/selivandex/btc-predictor/pkg/models"
)

func TestLexicon_Score(t *testing.T) {
	lexicon := NewLexicon()

	tests := []struct {
		name     string
		text     string
		expected models.SentimentLabel
	}{
		{"bullish crypto text", "Bitcoin surge continues, bullish breakout with record gains", models.Bullish},
		{"bearish crypto text", "Exchange hack triggers panic, massive crash and liquidation", models.Bearish},
		{"bullish equity text", "Company beats estimates, analysts upgrade to outperform", models.Bullish},
		{"bearish equity text", "Earnings miss leads to downgrade and layoffs", models.Bearish},
		{"neutral text", "The company scheduled its quarterly meeting for Thursday", models.Neutral},
		{"empty text", "", models.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, label := lexicon.Score(tt.text)
			if label != tt.expected {
				t.Errorf("Expected %s, got %s (score %.4f)", tt.expected, label, score)
			}
			if label == models.Neutral && score != 0 {
				t.Errorf("Neutral verdicts must score exactly 0, got %.4f", score)
			}
			if score < -1 || score > 1 {
				t.Errorf("Score %.4f out of [-1, 1]", score)
			}
		})
	}
}

func TestLexicon_CompoundIsClamped(t *testing.T) {
	lexicon := NewLexicon()

	// Every word is a strong negative keyword
	compound := lexicon.Compound("crash crash crash hack scam fraud")
	if compound < -1 {
		t.Errorf("Expected compound clamped to -1, got %.4f", compound)
	}
}

func TestLexicon_PunctuationStripped(t *testing.T) {
	lexicon := NewLexicon()

	withPunct := lexicon.Compound("Markets rally! Stocks surge.")
	without := lexicon.Compound("Markets rally Stocks surge")
	if withPunct != without {
		t.Errorf("Punctuation changed the score: %.4f vs %.4f", withPunct, without)
	}
}
