package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/selivandex/btc-predictor/internal/fusion"
	"github.com/selivandex/btc-predictor/internal/prediction"
	"github.com/selivandex/btc-predictor/internal/service"
)

// Handler exposes the service entry points over HTTP. This is the
// whole presentation boundary; rendering lives elsewhere.
type Handler struct {
	svc *service.Service
}

// NewHandler creates new API handler
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the API routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.GET("/predict", h.Predict)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/sentiment/items", h.SentimentItems)
	g.GET("/quote", h.Quote)
	g.GET("/fng", h.FearAndGreed)

	e.GET("/healthz", h.Health)
}

// Predict handles GET /api/v1/predict
func (h *Handler) Predict(c echo.Context) error {
	ticker := c.QueryParam("ticker")
	if ticker == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticker is required")
	}

	target, err := strconv.ParseFloat(c.QueryParam("target"), 64)
	if err != nil || target <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "target must be a positive number")
	}

	start := time.Now().AddDate(-1, 0, 0)
	if raw := c.QueryParam("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "start must be YYYY-MM-DD")
		}
		start = parsed
	}

	// An explicit multiplier wins; otherwise derive one from the
	// current composite signal
	multiplier := queryFloat(c, "multiplier")
	if multiplier <= 0 {
		signal := h.svc.GetMarketSentiment(c.Request().Context(), ticker)
		multiplier = fusion.EventMultiplier(signal.CompositeLabel, nil)
	}

	req := prediction.Request{
		Ticker:           ticker,
		TargetBTCPrice:   target,
		StartDate:        start,
		EventMultiplier:  multiplier,
		ManualBTCPrice:   queryFloat(c, "manual_btc"),
		ManualProxyPrice: queryFloat(c, "manual_price"),
	}

	result, err := h.svc.PredictPrice(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, prediction.ErrInsufficientData) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{
				"error": "insufficient historical data to predict",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "prediction failed")
	}

	return c.JSON(http.StatusOK, result)
}

// Sentiment handles GET /api/v1/sentiment
func (h *Handler) Sentiment(c echo.Context) error {
	ticker := c.QueryParam("ticker")
	if ticker == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticker is required")
	}

	return c.JSON(http.StatusOK, h.svc.GetMarketSentiment(c.Request().Context(), ticker))
}

// SentimentItems handles GET /api/v1/sentiment/items
func (h *Handler) SentimentItems(c echo.Context) error {
	ticker := c.QueryParam("ticker")
	if ticker == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticker is required")
	}

	return c.JSON(http.StatusOK, h.svc.GetSentimentDetails(c.Request().Context(), ticker))
}

// Quote handles GET /api/v1/quote
func (h *Handler) Quote(c echo.Context) error {
	ticker := c.QueryParam("ticker")
	if ticker == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticker is required")
	}

	return c.JSON(http.StatusOK, h.svc.GetExtendedQuote(c.Request().Context(), ticker))
}

// FearAndGreed handles GET /api/v1/fng
func (h *Handler) FearAndGreed(c echo.Context) error {
	index := h.svc.GetFearAndGreedIndex(c.Request().Context())
	if index == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "fear & greed index unavailable",
		})
	}
	return c.JSON(http.StatusOK, index)
}

// Health handles GET /healthz
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func queryFloat(c echo.Context, name string) float64 {
	value, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return 0
	}
	return value
}
