package protocol

import (
	"errors"
	"testing"
	"time"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
	"github.com/punitarani/flights-tracker-sub001/internal/testutil"
)

func sfoPhxLeg() []interface{} {
	return testutil.Leg("WN", "1417", "SFO", "PHX",
		[3]int{2025, 10, 11}, [2]int{7, 30},
		[3]int{2025, 10, 11}, [2]int{9, 25}, 115)
}

func TestDecodeFlights(t *testing.T) {
	c := newTestCodec()

	body := testutil.FlightsBody(
		[][]interface{}{testutil.Itinerary(118.0, 115, sfoPhxLeg())},
		[][]interface{}{testutil.Itinerary("142", 250,
			testutil.Leg("UA", "512", "SFO", "DEN",
				[3]int{2025, 10, 11}, [2]int{6, 0},
				[3]int{2025, 10, 11}, [2]int{9, 35}, 95),
			testutil.Leg("UA", "2209", "DEN", "PHX",
				[3]int{2025, 10, 11}, [2]int{11, 0},
				[3]int{2025, 10, 11}, [2]int{12, 5}, 105),
		)},
	)

	results, err := c.DecodeFlights(body)
	if err != nil {
		t.Fatalf("DecodeFlights: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	direct := results[0]
	if direct.Price != 118 {
		t.Errorf("price = %v, want 118", direct.Price)
	}
	if direct.DurationMinutes != 115 {
		t.Errorf("duration = %d, want 115", direct.DurationMinutes)
	}
	if direct.Stops != 0 {
		t.Errorf("stops = %d, want 0", direct.Stops)
	}
	leg := direct.Legs[0]
	if leg.Airline != "WN" || leg.FlightNumber != "1417" {
		t.Errorf("carrier = %s %s", leg.Airline, leg.FlightNumber)
	}
	wantDep := time.Date(2025, 10, 11, 7, 30, 0, 0, time.UTC)
	if !leg.DepartureTime.Equal(wantDep) {
		t.Errorf("departure = %v, want %v", leg.DepartureTime, wantDep)
	}

	// String-typed price must parse.
	connecting := results[1]
	if connecting.Price != 142 {
		t.Errorf("string price = %v, want 142", connecting.Price)
	}
	if connecting.Stops != 1 {
		t.Errorf("stops = %d, want 1", connecting.Stops)
	}
}

func TestDecodeFlightsDeterministic(t *testing.T) {
	c := newTestCodec()
	body := testutil.FlightsBody([][]interface{}{testutil.Itinerary(99.0, 115, sfoPhxLeg())}, nil)

	first, err := c.DecodeFlights(body)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.DecodeFlights(body)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) || first[0].Price != second[0].Price {
		t.Error("decoding the same body twice diverged")
	}
}

func TestDecodeFlightsDropsNullDateLeg(t *testing.T) {
	c := newTestCodec()

	// One good leg and one with an all-null date tuple: the bad leg is
	// dropped, the flight survives with the rest.
	body := testutil.FlightsBody([][]interface{}{
		testutil.Itinerary(200.0, 230,
			sfoPhxLeg(),
			testutil.LegWithNullDate("WN", "88", "PHX", "DEN"),
		),
	}, nil)

	results, err := c.DecodeFlights(body)
	if err != nil {
		t.Fatalf("DecodeFlights: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if len(results[0].Legs) != 1 {
		t.Errorf("got %d legs, want 1 (null-date leg dropped)", len(results[0].Legs))
	}
	if results[0].Stops != 0 {
		t.Errorf("stops = %d, want 0 after dropping a leg", results[0].Stops)
	}
}

func TestDecodeFlightsDropsFlightWithNoLegs(t *testing.T) {
	c := newTestCodec()

	body := testutil.FlightsBody([][]interface{}{
		testutil.Itinerary(75.0, 60, testutil.LegWithNullDate("WN", "9", "SFO", "PHX")),
		testutil.Itinerary(118.0, 115, sfoPhxLeg()),
	}, nil)

	results, err := c.DecodeFlights(body)
	if err != nil {
		t.Fatalf("DecodeFlights: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (legless flight dropped)", len(results))
	}
	if results[0].Price != 118 {
		t.Errorf("surviving flight price = %v, want 118", results[0].Price)
	}
}

func TestDecodeFlightsDropsUnknownCodes(t *testing.T) {
	c := newTestCodec()

	unknownAirline := testutil.Leg("Q0", "1", "SFO", "PHX",
		[3]int{2025, 10, 11}, [2]int{8, 0},
		[3]int{2025, 10, 11}, [2]int{10, 0}, 120)
	unknownAirport := testutil.Leg("WN", "2", "SFO", "XXX",
		[3]int{2025, 10, 11}, [2]int{8, 0},
		[3]int{2025, 10, 11}, [2]int{10, 0}, 120)

	body := testutil.FlightsBody([][]interface{}{
		testutil.Itinerary(100.0, 120, unknownAirline),
		testutil.Itinerary(110.0, 120, unknownAirport),
		testutil.Itinerary(118.0, 115, sfoPhxLeg()),
	}, nil)

	results, err := c.DecodeFlights(body)
	if err != nil {
		t.Fatalf("DecodeFlights: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (unknown-code flights dropped)", len(results))
	}
}

func TestDecodeFlightsNoResults(t *testing.T) {
	c := newTestCodec()

	results, err := c.DecodeFlights(testutil.EmptyBody())
	if err != nil {
		t.Fatalf("null payload should not be an error, got %v", err)
	}
	if results != nil {
		t.Errorf("got %v, want nil for no results", results)
	}
}

func TestDecodeFlightsMissingPrefix(t *testing.T) {
	c := newTestCodec()

	_, err := c.DecodeFlights([]byte(`[["wrb.fr",null,null]]`))
	var decodeErr *models.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("got %v, want DecodeError", err)
	}
}

func TestDecodeFlightsGarbledInnerPayload(t *testing.T) {
	c := newTestCodec()

	_, err := c.DecodeFlights([]byte(")]}'\n" + `[["wrb.fr",null,"not json at all"]]`))
	var decodeErr *models.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("got %v, want DecodeError", err)
	}
}

func TestDecodeDates(t *testing.T) {
	c := newTestCodec()

	body := testutil.DatesBody(
		testutil.DateEntry("2025-06-01", "2025-06-08", 320.0),
		testutil.DateEntry("2025-06-02", "2025-06-09", "295"),
	)

	prices, err := c.DecodeDates(body)
	if err != nil {
		t.Fatalf("DecodeDates: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("got %d entries, want 2", len(prices))
	}

	if prices[0].Price != 320 {
		t.Errorf("price = %v, want 320", prices[0].Price)
	}
	if prices[0].Return == nil || prices[0].Return.Format("2006-01-02") != "2025-06-08" {
		t.Errorf("return date = %v, want 2025-06-08", prices[0].Return)
	}
	if prices[1].Price != 295 {
		t.Errorf("string price = %v, want 295", prices[1].Price)
	}
}

func TestDecodeDatesDropsMalformedPrice(t *testing.T) {
	c := newTestCodec()

	body := testutil.DatesBody(
		testutil.DateEntry("2025-06-01", "", 120.0),
		testutil.DateEntry("2025-06-02", "", nil),                                      // no price block
		testutil.RawDateEntry("2025-06-03", "", []interface{}{[]interface{}{nil}}),     // sub-array too short
		testutil.RawDateEntry("2025-06-04", "", []interface{}{}),                       // empty block
		testutil.RawDateEntry("2025-06-05", "", []interface{}{[]interface{}{nil, 90.0}}), // valid
	)

	prices, err := c.DecodeDates(body)
	if err != nil {
		t.Fatalf("DecodeDates: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("got %d entries, want 2 (malformed prices dropped)", len(prices))
	}
	if prices[0].Price != 120 || prices[1].Price != 90 {
		t.Errorf("prices = %v, %v; want 120, 90", prices[0].Price, prices[1].Price)
	}
}
