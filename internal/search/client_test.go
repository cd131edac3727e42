package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
	"github.com/punitarani/flights-tracker-sub001/internal/protocol"
	"github.com/punitarani/flights-tracker-sub001/internal/registry"
	"github.com/punitarani/flights-tracker-sub001/internal/testutil"
	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
)

// fakeTransport records every request and answers via fn, which
// receives the 1-based call number.
type fakeTransport struct {
	mu     sync.Mutex
	urls   []string
	bodies []string
	fn     func(call int, url, body string) ([]byte, error)
}

func (f *fakeTransport) Post(_ context.Context, url string, body string, _ map[string]string) ([]byte, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.bodies = append(f.bodies, body)
	call := len(f.bodies)
	f.mu.Unlock()
	return f.fn(call, url, body)
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}

func newTestClient(tr Transport) *Client {
	reg := registry.New()
	log := logger.NewNop()
	return NewClient(tr, protocol.NewCodec(reg, log, nil), DefaultConfig(), log, nil)
}

func outboundLeg(airline, number string) []interface{} {
	return testutil.Leg(airline, number, "SFO", "PHX",
		[3]int{2025, 10, 11}, [2]int{8, 0},
		[3]int{2025, 10, 11}, [2]int{10, 0}, 120)
}

func returnLeg(airline, number string) []interface{} {
	return testutil.Leg(airline, number, "PHX", "SFO",
		[3]int{2025, 10, 18}, [2]int{17, 0},
		[3]int{2025, 10, 18}, [2]int{19, 10}, 130)
}

func oneWaySFOPHX() models.SearchFilters {
	return models.SearchFilters{
		TripType: models.TripOneWay,
		Segments: []models.FlightSegment{{
			Departure:  []models.AirportWeight{{Airport: "SFO"}},
			Arrival:    []models.AirportWeight{{Airport: "PHX"}},
			TravelDate: "2025-10-11",
		}},
		Passengers: models.Passengers{Adults: 2},
	}
}

func TestSearchOneWayEndToEnd(t *testing.T) {
	tr := &fakeTransport{fn: func(int, string, string) ([]byte, error) {
		return testutil.FlightsBody(
			[][]interface{}{testutil.Itinerary(118.0, 115, outboundLeg("WN", "1417"))},
			[][]interface{}{testutil.Itinerary(142.0, 250,
				testutil.Leg("UA", "512", "SFO", "DEN",
					[3]int{2025, 10, 11}, [2]int{6, 0},
					[3]int{2025, 10, 11}, [2]int{9, 35}, 95),
				testutil.Leg("UA", "2209", "DEN", "PHX",
					[3]int{2025, 10, 11}, [2]int{11, 0},
					[3]int{2025, 10, 11}, [2]int{12, 5}, 105),
			)},
		), nil
	}}

	c := newTestClient(tr)
	reg := registry.New()

	itineraries, err := c.Search(context.Background(), oneWaySFOPHX(), 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(itineraries) == 0 {
		t.Fatal("expected non-empty results")
	}

	for _, it := range itineraries {
		if it.Return != nil {
			t.Error("one-way search produced a round-trip pair")
		}
		if it.Outbound.Stops != len(it.Outbound.Legs)-1 {
			t.Errorf("stops = %d, want %d", it.Outbound.Stops, len(it.Outbound.Legs)-1)
		}
		for _, leg := range it.Outbound.Legs {
			if _, ok := reg.Airport(leg.DepartureAirport); !ok {
				t.Errorf("departure airport %q does not resolve", leg.DepartureAirport)
			}
		}
	}
}

func TestSearchNoResults(t *testing.T) {
	tr := &fakeTransport{fn: func(int, string, string) ([]byte, error) {
		return testutil.EmptyBody(), nil
	}}
	c := newTestClient(tr)

	itineraries, err := c.Search(context.Background(), oneWaySFOPHX(), 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if itineraries != nil {
		t.Errorf("got %v, want nil", itineraries)
	}
}

func TestSearchValidationBeforeNetwork(t *testing.T) {
	tr := &fakeTransport{fn: func(int, string, string) ([]byte, error) {
		t.Error("network call made for invalid filters")
		return nil, nil
	}}
	c := newTestClient(tr)

	bad := oneWaySFOPHX()
	bad.Passengers = models.Passengers{}
	if _, err := c.Search(context.Background(), bad, 5); !errors.Is(err, models.ErrNoPassengers) {
		t.Errorf("got %v, want ErrNoPassengers", err)
	}
	if tr.callCount() != 0 {
		t.Error("validation error should reject before sending")
	}
}

func TestSearchTransportErrorPropagates(t *testing.T) {
	wantErr := errors.New("exhausted retries")
	tr := &fakeTransport{fn: func(int, string, string) ([]byte, error) {
		return nil, wantErr
	}}
	c := newTestClient(tr)

	if _, err := c.Search(context.Background(), oneWaySFOPHX(), 5); !errors.Is(err, wantErr) {
		t.Errorf("got %v, want transport error", err)
	}
}
