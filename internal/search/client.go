// Package search drives the upstream protocol: encode, send, decode,
// plus the two scheduling layers on top — date-range chunking and
// round-trip pairing.
package search

import (
	"context"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
	"github.com/punitarani/flights-tracker-sub001/internal/protocol"
	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
	"github.com/punitarani/flights-tracker-sub001/pkg/metrics"
)

// Transport is the outbound HTTP dependency. The production
// implementation is the shared rate-limited client; tests inject fakes.
type Transport interface {
	Post(ctx context.Context, url string, body string, headers map[string]string) ([]byte, error)
}

// Upstream endpoints: one for itinerary search, one for the calendar
// price grid.
const (
	DefaultFlightsURL = "https://www.google.com/_/FlightsFrontendUi/data/travel.frontend.flights.FlightsFrontendService/GetShoppingResults"
	DefaultDatesURL   = "https://www.google.com/_/FlightsFrontendUi/data/travel.frontend.flights.FlightsFrontendService/GetCalendarGraph"
)

type Config struct {
	FlightsURL string
	DatesURL   string

	// ChunkParallelism bounds concurrent chunk and secondary-search
	// requests. It composes with the transport's own in-flight cap.
	ChunkParallelism int

	// FallbackOutbounds caps how many outbound candidates get a pinned
	// secondary search when the first pass returns only one direction.
	FallbackOutbounds int

	// DefaultTopN applies when a caller passes topN <= 0.
	DefaultTopN int
}

func DefaultConfig() Config {
	return Config{
		FlightsURL:        DefaultFlightsURL,
		DatesURL:          DefaultDatesURL,
		ChunkParallelism:  3,
		FallbackOutbounds: 3,
		DefaultTopN:       5,
	}
}

type Client struct {
	transport Transport
	codec     *protocol.Codec
	cfg       Config
	log       logger.Logger
	metrics   *metrics.Metrics
}

// NewClient wires the search core. metrics may be nil.
func NewClient(tr Transport, codec *protocol.Codec, cfg Config, log logger.Logger, m *metrics.Metrics) *Client {
	def := DefaultConfig()
	if cfg.FlightsURL == "" {
		cfg.FlightsURL = def.FlightsURL
	}
	if cfg.DatesURL == "" {
		cfg.DatesURL = def.DatesURL
	}
	if cfg.ChunkParallelism <= 0 {
		cfg.ChunkParallelism = def.ChunkParallelism
	}
	if cfg.FallbackOutbounds <= 0 {
		cfg.FallbackOutbounds = def.FallbackOutbounds
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = def.DefaultTopN
	}

	return &Client{
		transport: tr,
		codec:     codec,
		cfg:       cfg,
		log:       log,
		metrics:   m,
	}
}

// Search runs one itinerary search and, for round trips, assembles
// outbound/return pairs. It returns nil, nil when the upstream has no
// results. Output order is upstream order; callers wanting
// cheapest-first must sort.
func (c *Client) Search(ctx context.Context, f models.SearchFilters, topN int) ([]models.Itinerary, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if topN <= 0 {
		topN = c.cfg.DefaultTopN
	}
	c.metrics.IncSearch("flights")

	results, err := c.fetchFlights(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	// One-way, or a return fetch already pinned to a chosen outbound:
	// the response is a single direction, pass it through flat.
	if f.TripType == models.TripOneWay || len(f.Segments[0].SelectedFlight) > 0 {
		return flat(results), nil
	}

	return c.pairRoundTrip(ctx, f, results, topN)
}

func (c *Client) fetchFlights(ctx context.Context, f models.SearchFilters) ([]models.FlightResult, error) {
	body, err := c.codec.EncodeFlights(f)
	if err != nil {
		return nil, err
	}

	raw, err := c.transport.Post(ctx, c.cfg.FlightsURL, body, nil)
	if err != nil {
		return nil, err
	}

	return c.codec.DecodeFlights(raw)
}

func flat(results []models.FlightResult) []models.Itinerary {
	itineraries := make([]models.Itinerary, len(results))
	for i, r := range results {
		itineraries[i] = models.Itinerary{Outbound: r}
	}
	return itineraries
}
