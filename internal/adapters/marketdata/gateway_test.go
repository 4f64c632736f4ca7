package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/selivandex/btc-predictor/pkg/models"
)

func TestMarketStateAt(t *testing.T) {
	// Monday 2025-06-02 in exchange-local wall clock time
	day := func(hour, minute int) time.Time {
		return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		at       time.Time
		expected models.MarketState
	}{
		{"before pre-market", day(3, 59), models.MarketClosed},
		{"pre-market opens", day(4, 0), models.MarketPre},
		{"last pre-market minute", day(9, 29), models.MarketPre},
		{"opening bell", day(9, 30), models.MarketOpen},
		{"mid session", day(12, 0), models.MarketOpen},
		{"last regular minute", day(15, 59), models.MarketOpen},
		{"closing bell", day(16, 0), models.MarketPost},
		{"last post-market minute", day(19, 59), models.MarketPost},
		{"post-market ends", day(20, 0), models.MarketClosed},
		{"saturday noon", time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC), models.MarketClosed},
		{"sunday noon", time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC), models.MarketClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marketStateAt(tt.at); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNormalizeMarketState(t *testing.T) {
	tests := []struct {
		raw      string
		expected models.MarketState
		ok       bool
	}{
		{"REGULAR", models.MarketOpen, true},
		{"PRE", models.MarketPre, true},
		{"PREPRE", models.MarketPre, true},
		{"POST", models.MarketPost, true},
		{"POSTPOST", models.MarketPost, true},
		{"CLOSED", models.MarketClosed, true},
		{"", "", false},
		{"SOMETHING", "", false},
	}

	for _, tt := range tests {
		got, ok := normalizeMarketState(tt.raw)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("normalizeMarketState(%q) = (%s, %v), expected (%s, %v)",
				tt.raw, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestAlignCloses(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
	}

	// BTC trades every day, the stock skips the weekend
	ref := []models.ClosePoint{
		{Date: day(3), Close: 50000},
		{Date: day(4), Close: 50500},
		{Date: day(5), Close: 51000},
		{Date: day(6), Close: 51500},
	}
	proxy := []models.ClosePoint{
		{Date: day(6), Close: 102}, // out of order on purpose
		{Date: day(3), Close: 100},
		{Date: day(7), Close: 103}, // no matching reference close
	}

	aligned := alignCloses(ref, proxy)

	if len(aligned) != 2 {
		t.Fatalf("Expected 2 aligned rows, got %d", len(aligned))
	}
	if !aligned[0].Date.Before(aligned[1].Date) {
		t.Error("Expected rows ordered ascending by date")
	}
	if aligned[0].ReferenceClose != 50000 || aligned[0].ProxyClose != 100 {
		t.Errorf("Unexpected first row: %+v", aligned[0])
	}
	if aligned[1].ReferenceClose != 51500 || aligned[1].ProxyClose != 102 {
		t.Errorf("Unexpected second row: %+v", aligned[1])
	}
}

func TestAlignCloses_Empty(t *testing.T) {
	if got := alignCloses(nil, nil); len(got) != 0 {
		t.Errorf("Expected no rows, got %d", len(got))
	}
}

// sparkBody renders a spark response with n aligned daily closes for
// both the proxy and the reference symbol
func sparkBody(n int) string {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix()

	timestamps := make([]string, n)
	proxy := make([]string, n)
	ref := make([]string, n)
	for i := 0; i < n; i++ {
		timestamps[i] = fmt.Sprintf("%d", base+int64(i)*86400)
		proxy[i] = fmt.Sprintf("%.1f", 400.0+float64(i))
		ref[i] = fmt.Sprintf("%.1f", 94000.0+float64(i)*100)
	}

	ts := strings.Join(timestamps, ",")
	return fmt.Sprintf(`{"spark": {"result": [
		{"symbol": "MSTR", "response": [{"timestamp": [%s], "indicators": {"quote": [{"close": [%s]}]}}]},
		{"symbol": "BTC-USD", "response": [{"timestamp": [%s], "indicators": {"quote": [{"close": [%s]}]}}]}
	]}}`, ts, strings.Join(proxy, ","), ts, strings.Join(ref, ","))
}

func sparkGateway(t *testing.T, rows int) *Gateway {
	t.Helper()
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sparkBody(rows)))
	})
	return &Gateway{yahoo: yahoo, exchangeTZ: time.UTC, now: time.Now}
}

func TestGetHistoricalSeries(t *testing.T) {
	gateway := sparkGateway(t, 15)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := gateway.GetHistoricalSeries(context.Background(), "MSTR", start)

	if series.Len() != 15 {
		t.Fatalf("Expected 15 aligned rows, got %d", series.Len())
	}
	if series.LastProxyClose() != 414.0 {
		t.Errorf("Expected last proxy close 414.0, got %.1f", series.LastProxyClose())
	}
	if series.LastReferenceClose() != 95400.0 {
		t.Errorf("Expected last reference close 95400.0, got %.1f", series.LastReferenceClose())
	}
}

func TestGetHistoricalSeries_TooFewRowsYieldsEmptySeries(t *testing.T) {
	gateway := sparkGateway(t, 4)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := gateway.GetHistoricalSeries(context.Background(), "MSTR", start)

	if !series.IsEmpty() {
		t.Fatalf("Expected empty series below the row minimum, got %d rows", series.Len())
	}
}

func TestGetExtendedQuote_ReportedStateOverridesClock(t *testing.T) {
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [{
			"meta": {"regularMarketPrice": 412.5, "marketState": "POST"}
		}]}}`))
	})

	// Clock says mid-session, the provider says POST
	gateway := &Gateway{
		yahoo:      yahoo,
		exchangeTZ: time.UTC,
		now: func() time.Time {
			return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
		},
	}

	quote := gateway.GetExtendedQuote(context.Background(), "MSTR")
	if quote.MarketState != models.MarketPost {
		t.Errorf("Expected POST from provider, got %s", quote.MarketState)
	}
	if !quote.HasPrice || quote.Price != 412.5 {
		t.Errorf("Expected price 412.5, got %.2f", quote.Price)
	}
}

func TestGetExtendedQuote_FailureDegradesToClosed(t *testing.T) {
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	gateway := &Gateway{yahoo: yahoo, exchangeTZ: time.UTC, now: time.Now}

	quote := gateway.GetExtendedQuote(context.Background(), "MSTR")
	if quote.HasPrice {
		t.Error("Expected no price on provider failure")
	}
	if quote.MarketState != models.MarketClosed {
		t.Errorf("Expected CLOSED fallback, got %s", quote.MarketState)
	}
}

func TestSparkRange(t *testing.T) {
	tests := []struct {
		daysAgo  int
		expected string
	}{
		{3, "5d"},
		{20, "1mo"},
		{60, "3mo"},
		{150, "6mo"},
		{300, "1y"},
		{600, "2y"},
		{1500, "5y"},
		{4000, "max"},
	}

	for _, tt := range tests {
		start := time.Now().AddDate(0, 0, -tt.daysAgo)
		if got := sparkRange(start); got != tt.expected {
			t.Errorf("sparkRange(%d days ago) = %s, expected %s", tt.daysAgo, got, tt.expected)
		}
	}
}
