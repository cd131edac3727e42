package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
	"github.com/punitarani/flights-tracker-sub001/internal/transport"
	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
)

type stubSearcher struct {
	itineraries []models.Itinerary
	prices      []models.DatePrice
	err         error

	gotFilters models.SearchFilters
	gotTopN    int
}

func (s *stubSearcher) Search(_ context.Context, f models.SearchFilters, topN int) ([]models.Itinerary, error) {
	s.gotFilters = f
	s.gotTopN = topN
	return s.itineraries, s.err
}

func (s *stubSearcher) SearchDates(_ context.Context, _ models.DateSearchFilters) ([]models.DatePrice, error) {
	return s.prices, s.err
}

func result(price float64) models.FlightResult {
	dep := time.Date(2025, 10, 11, 8, 0, 0, 0, time.UTC)
	return models.FlightResult{
		Price:           price,
		DurationMinutes: 120,
		Legs: []models.FlightLeg{{
			Airline:          "United",
			FlightNumber:     "1",
			DepartureAirport: "SFO",
			ArrivalAirport:   "PHX",
			DepartureTime:    dep,
			ArrivalTime:      dep.Add(2 * time.Hour),
		}},
	}
}

func perform(t *testing.T, h *SearchHandler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const oneWayBody = `{
	"trip_type": "one_way",
	"segments": [{"from": ["SFO"], "to": ["PHX"], "date": "2025-10-11"}],
	"sort_by": "price"
}`

func TestSearchFlights(t *testing.T) {
	searcher := &stubSearcher{itineraries: []models.Itinerary{
		{Outbound: result(250)},
		{Outbound: result(120)},
	}}
	h := NewSearchHandler(searcher, nil, logger.NewNop())

	rec := perform(t, h, "/api/v1/flights/search", oneWayBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.SearchID == "" {
		t.Error("missing search_id")
	}
	if resp.Metadata.TotalResults != 2 || resp.Metadata.CacheHit {
		t.Errorf("metadata = %+v", resp.Metadata)
	}
	if resp.Itineraries[0].TotalPrice() != 120 {
		t.Errorf("results not sorted by price: first = %v", resp.Itineraries[0].TotalPrice())
	}
	if searcher.gotFilters.TripType != models.TripOneWay {
		t.Errorf("trip type = %v", searcher.gotFilters.TripType)
	}
	if len(searcher.gotFilters.Segments) != 1 || searcher.gotFilters.Segments[0].Departure[0].Airport != "SFO" {
		t.Errorf("segments = %+v", searcher.gotFilters.Segments)
	}
}

func TestSearchFlightsNoResults(t *testing.T) {
	h := NewSearchHandler(&stubSearcher{}, nil, logger.NewNop())

	rec := perform(t, h, "/api/v1/flights/search", oneWayBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Itineraries == nil || len(resp.Itineraries) != 0 {
		t.Errorf("itineraries = %v, want empty array", resp.Itineraries)
	}
}

func TestSearchFlightsBadTripType(t *testing.T) {
	h := NewSearchHandler(&stubSearcher{}, nil, logger.NewNop())

	rec := perform(t, h, "/api/v1/flights/search", `{"trip_type": "multi_city", "segments": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != "validation_error" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestSearchFlightsUpstreamFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"decode", &models.DecodeError{Reason: "missing prefix"}, "upstream_decode_error"},
		{"request", &transport.RequestError{StatusCode: 429, Reason: "rate limited"}, "upstream_error"},
		{"validation", models.ErrSegmentCount, "validation_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewSearchHandler(&stubSearcher{err: tc.err}, nil, logger.NewNop())

			rec := perform(t, h, "/api/v1/flights/search", oneWayBody)
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Error != tc.want {
				t.Errorf("error = %q, want %q", resp.Error, tc.want)
			}
			if rec.Code != resp.Code {
				t.Errorf("status %d != body code %d", rec.Code, resp.Code)
			}
		})
	}
}

func TestSearchDates(t *testing.T) {
	d1 := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	searcher := &stubSearcher{prices: []models.DatePrice{
		{Departure: d1, Price: 210},
		{Departure: d2, Price: 180},
	}}
	h := NewSearchHandler(searcher, nil, logger.NewNop())

	body := `{
		"trip_type": "one_way",
		"segments": [{"from": ["SFO"], "to": ["PHX"], "date": "2025-06-01"}],
		"from_date": "2025-06-01",
		"to_date": "2025-06-30"
	}`
	rec := perform(t, h, "/api/v1/flights/dates", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp DatesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Prices) != 2 {
		t.Fatalf("prices = %v", resp.Prices)
	}
	if !resp.Prices[0].Departure.Equal(d2) {
		t.Error("prices not sorted chronologically")
	}
}

func TestSearchFlightsCacheHit(t *testing.T) {
	cached := []models.Itinerary{{Outbound: result(99)}}
	h := NewSearchHandler(&stubSearcher{err: models.ErrSegmentCount}, fixedCache{itineraries: cached}, logger.NewNop())

	rec := perform(t, h, "/api/v1/flights/search", oneWayBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Metadata.CacheHit {
		t.Error("cache_hit not set")
	}
	if len(resp.Itineraries) != 1 || resp.Itineraries[0].TotalPrice() != 99 {
		t.Errorf("itineraries = %v", resp.Itineraries)
	}
}

type fixedCache struct {
	itineraries []models.Itinerary
}

func (c fixedCache) GetItineraries(context.Context, models.SearchFilters, int) ([]models.Itinerary, bool) {
	return c.itineraries, true
}

func (c fixedCache) SetItineraries(context.Context, models.SearchFilters, int, []models.Itinerary) error {
	return nil
}

func (c fixedCache) GetDatePrices(context.Context, models.DateSearchFilters) ([]models.DatePrice, bool) {
	return nil, false
}

func (c fixedCache) SetDatePrices(context.Context, models.DateSearchFilters, []models.DatePrice) error {
	return nil
}

func (c fixedCache) Close() error { return nil }
