package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/punitarani/flights-tracker-sub001/internal/cache"
	"github.com/punitarani/flights-tracker-sub001/internal/filter"
	"github.com/punitarani/flights-tracker-sub001/internal/models"
	"github.com/punitarani/flights-tracker-sub001/internal/transport"
	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
)

// Searcher is the slice of the search client the handlers need.
type Searcher interface {
	Search(ctx context.Context, filters models.SearchFilters, topN int) ([]models.Itinerary, error)
	SearchDates(ctx context.Context, filters models.DateSearchFilters) ([]models.DatePrice, error)
}

type SearchHandler struct {
	searcher Searcher
	cache    cache.Cache
	log      logger.Logger
}

func NewSearchHandler(searcher Searcher, c cache.Cache, log logger.Logger) *SearchHandler {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &SearchHandler{searcher: searcher, cache: c, log: log}
}

// RegisterRoutes wires the handler into an echo group.
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/flights/search", h.SearchFlights)
	g.POST("/flights/dates", h.SearchDates)
}

// SearchFlights handles POST /api/v1/flights/search.
func (h *SearchHandler) SearchFlights(c echo.Context) error {
	start := time.Now()

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	filters, err := req.toFilters()
	if err != nil {
		return h.errorResponse(c, err)
	}

	searchID := uuid.New().String()
	log := h.log.With("search_id", searchID)

	ctx := c.Request().Context()
	if itineraries, ok := h.cache.GetItineraries(ctx, filters, req.TopN); ok {
		log.Info("flight search served from cache", "results", len(itineraries))
		return c.JSON(http.StatusOK, SearchResponse{
			SearchID: searchID,
			Metadata: SearchMetadata{
				TotalResults: len(itineraries),
				CacheHit:     true,
				SearchTimeMs: time.Since(start).Milliseconds(),
				SortBy:       req.SortBy,
			},
			Itineraries: itineraries,
		})
	}

	itineraries, err := h.searcher.Search(ctx, filters, req.TopN)
	if err != nil {
		log.Error("flight search failed", "error", err)
		return h.errorResponse(c, err)
	}

	itineraries = filter.SortItineraries(itineraries, filters.SortBy)
	if itineraries == nil {
		itineraries = []models.Itinerary{}
	}

	if err := h.cache.SetItineraries(ctx, filters, req.TopN, itineraries); err != nil {
		log.Warn("failed to cache itineraries", "error", err)
	}

	log.Info("flight search complete",
		"results", len(itineraries),
		"duration_ms", time.Since(start).Milliseconds())

	return c.JSON(http.StatusOK, SearchResponse{
		SearchID: searchID,
		Metadata: SearchMetadata{
			TotalResults: len(itineraries),
			SearchTimeMs: time.Since(start).Milliseconds(),
			SortBy:       req.SortBy,
		},
		Itineraries: itineraries,
	})
}

// SearchDates handles POST /api/v1/flights/dates.
func (h *SearchHandler) SearchDates(c echo.Context) error {
	start := time.Now()

	var req DatesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	filters, err := req.toFilters()
	if err != nil {
		return h.errorResponse(c, err)
	}

	searchID := uuid.New().String()
	log := h.log.With("search_id", searchID)

	ctx := c.Request().Context()
	if prices, ok := h.cache.GetDatePrices(ctx, filters); ok {
		log.Info("date search served from cache", "results", len(prices))
		return c.JSON(http.StatusOK, DatesResponse{
			SearchID: searchID,
			Metadata: SearchMetadata{
				TotalResults: len(prices),
				CacheHit:     true,
				SearchTimeMs: time.Since(start).Milliseconds(),
			},
			Prices: prices,
		})
	}

	prices, err := h.searcher.SearchDates(ctx, filters)
	if err != nil {
		log.Error("date search failed", "error", err)
		return h.errorResponse(c, err)
	}

	prices = filter.SortDatePrices(prices)
	if prices == nil {
		prices = []models.DatePrice{}
	}

	if err := h.cache.SetDatePrices(ctx, filters, prices); err != nil {
		log.Warn("failed to cache date prices", "error", err)
	}

	log.Info("date search complete",
		"results", len(prices),
		"duration_ms", time.Since(start).Milliseconds())

	return c.JSON(http.StatusOK, DatesResponse{
		SearchID: searchID,
		Metadata: SearchMetadata{
			TotalResults: len(prices),
			SearchTimeMs: time.Since(start).Milliseconds(),
		},
		Prices: prices,
	})
}

// errorResponse maps domain errors onto HTTP statuses: caller mistakes
// are 400s, upstream trouble is a 502, anything else a 500.
func (h *SearchHandler) errorResponse(c echo.Context, err error) error {
	var (
		validationErr models.ValidationError
		unknownCode   *models.UnknownCodeError
		decodeErr     *models.DecodeError
		requestErr    *transport.RequestError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &unknownCode):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.As(err, &decodeErr):
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_decode_error",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	case errors.As(err, &requestErr):
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "search_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: msg,
		Code:    http.StatusBadRequest,
	})
}
