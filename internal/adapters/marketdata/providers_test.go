package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/selivandex/btc-predictor/pkg/models"
)

func TestBinanceGetSpotPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol": "BTCUSDT", "price": "95123.45000000"}`))
	}))
	defer server.Close()

	provider := NewBinanceProvider(5 * time.Second)
	provider.baseURL = server.URL

	price, err := provider.GetSpotPrice(context.Background(), models.ReferenceTicker)
	if err != nil {
		t.Fatalf("GetSpotPrice failed: %v", err)
	}
	if price != 95123.45 {
		t.Errorf("Expected 95123.45, got %.2f", price)
	}
}

func TestBinanceGetSpotPrice_RejectsNonReferenceSymbol(t *testing.T) {
	provider := NewBinanceProvider(5 * time.Second)

	if _, err := provider.GetSpotPrice(context.Background(), "MSTR"); err == nil {
		t.Fatal("Expected error for non-reference symbol")
	}
}

func TestBinanceGet24hStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lastPrice": "95000.10", "prevClosePrice": "94000.00"}`))
	}))
	defer server.Close()

	provider := NewBinanceProvider(5 * time.Second)
	provider.baseURL = server.URL

	quote, err := provider.Get24hStats(context.Background())
	if err != nil {
		t.Fatalf("Get24hStats failed: %v", err)
	}

	if quote.MarketState != models.MarketOpen {
		t.Errorf("Expected OPEN state for BTC, got %s", quote.MarketState)
	}
	if !quote.HasPrice || quote.Price != 95000.10 {
		t.Errorf("Expected price 95000.10, got %.2f (has=%v)", quote.Price, quote.HasPrice)
	}
	if quote.PreviousClose != 94000.00 {
		t.Errorf("Expected previous close 94000.00, got %.2f", quote.PreviousClose)
	}
}

func TestFinnhubGetSpotPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"c": 412.5, "pc": 405.0}`))
	}))
	defer server.Close()

	provider := NewFinnhubProvider("test-key", 5*time.Second)
	provider.baseURL = server.URL

	price, err := provider.GetSpotPrice(context.Background(), "MSTR")
	if err != nil {
		t.Fatalf("GetSpotPrice failed: %v", err)
	}
	if price != 412.5 {
		t.Errorf("Expected 412.5, got %.2f", price)
	}
}

func TestFinnhubGetSpotPrice_ZeroQuoteIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Finnhub answers unknown symbols with zeros and HTTP 200
		w.Write([]byte(`{"c": 0, "pc": 0}`))
	}))
	defer server.Close()

	provider := NewFinnhubProvider("test-key", 5*time.Second)
	provider.baseURL = server.URL

	if _, err := provider.GetSpotPrice(context.Background(), "NOPE"); err == nil {
		t.Fatal("Expected error for zero quote")
	}
}
