package fusion

import "github.com/selivandex/btc-predictor/pkg/models"

// defaultMultipliers maps composite labels onto the event-impact
// multiplier applied to price predictions
var defaultMultipliers = map[models.SentimentLabel]float64{
	models.VeryBearish: 0.70,
	models.Bearish:     0.85,
	models.Neutral:     1.00,
	models.Bullish:     1.15,
	models.VeryBullish: 1.30,
}

// EventMultiplier returns the multiplier for a label. Overrides take
// precedence over the defaults; unknown labels map to 1.0.
func EventMultiplier(label models.SentimentLabel, overrides map[models.SentimentLabel]float64) float64 {
	if m, ok := overrides[label]; ok {
		return m
	}
	if m, ok := defaultMultipliers[label]; ok {
		return m
	}
	return 1.0
}
