package models

import (
	"time"
)

// ReferenceTicker is the reference asset every proxy is regressed against.
const ReferenceTicker = "BTC-USD"

// MarketState represents the coarse state of an exchange trading session
type MarketState string

const (
	MarketOpen   MarketState = "OPEN"
	MarketPre    MarketState = "PRE"
	MarketPost   MarketState = "POST"
	MarketClosed MarketState = "CLOSED"
)

// ClosePoint is a single dated closing price
type ClosePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// AlignedClose holds reference and proxy closes for one trading day
type AlignedClose struct {
	Date           time.Time `json:"date"`
	ReferenceClose float64   `json:"reference_close"`
	ProxyClose     float64   `json:"proxy_close"`
}

// HistoricalSeries is an ordered, date-aligned price history for one
// proxy ticker against the reference asset. Rows where either side was
// missing have already been dropped.
type HistoricalSeries struct {
	Ticker string         `json:"ticker"`
	Points []AlignedClose `json:"points"`
}

// Len returns the number of aligned rows
func (s *HistoricalSeries) Len() int {
	return len(s.Points)
}

// IsEmpty reports whether the series carries no usable data
func (s *HistoricalSeries) IsEmpty() bool {
	return s == nil || len(s.Points) == 0
}

// ReferenceCloses returns the reference close column
func (s *HistoricalSeries) ReferenceCloses() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.ReferenceClose
	}
	return out
}

// ProxyCloses returns the proxy close column
func (s *HistoricalSeries) ProxyCloses() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.ProxyClose
	}
	return out
}

// LastReferenceClose returns the most recent reference close (0 if empty)
func (s *HistoricalSeries) LastReferenceClose() float64 {
	if s.IsEmpty() {
		return 0
	}
	return s.Points[len(s.Points)-1].ReferenceClose
}

// LastProxyClose returns the most recent proxy close (0 if empty)
func (s *HistoricalSeries) LastProxyClose() float64 {
	if s.IsEmpty() {
		return 0
	}
	return s.Points[len(s.Points)-1].ProxyClose
}

// ExtendedQuote is a realtime quote with extended-hours context.
// HasPrice is false when every provider tier failed.
type ExtendedQuote struct {
	Price           float64     `json:"price"`
	HasPrice        bool        `json:"has_price"`
	MarketState     MarketState `json:"market_state"`
	PreviousClose   float64     `json:"previous_close,omitempty"`
	PreMarketPrice  float64     `json:"pre_market_price,omitempty"`
	PostMarketPrice float64     `json:"post_market_price,omitempty"`
}

// PredictionResult is the outcome of one prediction request.
// Immutable once returned.
type PredictionResult struct {
	Ticker                 string  `json:"ticker"`
	CurrentBTCPrice        float64 `json:"current_btc_price"`
	CurrentProxyPrice      float64 `json:"current_proxy_price"`
	Beta                   float64 `json:"beta"`
	Correlation            float64 `json:"correlation"`
	PredictedPriceBeta     float64 `json:"predicted_price_beta"`
	PredictedPricePowerLaw float64 `json:"predicted_price_power_law"`
}

// FearGreedIndex is the crypto fear & greed reading from alternative.me
type FearGreedIndex struct {
	Value          int       `json:"value"`
	Classification string    `json:"classification"`
	UpdatedAt      time.Time `json:"updated_at"`
}
