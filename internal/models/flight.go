package models

import "time"

// FlightLeg is a single flight-number hop within a slice. Legs are built
// fresh on every decode and never mutated afterwards.
type FlightLeg struct {
	Airline          string    `json:"airline"`
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	DurationMinutes  int       `json:"duration_minutes"`
}

// FlightResult is one complete one-directional itinerary (a "slice").
type FlightResult struct {
	Price           float64     `json:"price"`
	DurationMinutes int         `json:"duration_minutes"`
	Stops           int         `json:"stops"`
	Legs            []FlightLeg `json:"legs"`
}

// Itinerary pairs an outbound slice with an optional return slice. For
// one-way searches Return is nil. The pairing is derived per search, not
// stored upstream.
type Itinerary struct {
	Outbound FlightResult  `json:"outbound"`
	Return   *FlightResult `json:"return,omitempty"`

	BestValueScore float64 `json:"best_value_score,omitempty"`
}

// TotalPrice sums both directions of the itinerary.
func (it Itinerary) TotalPrice() float64 {
	p := it.Outbound.Price
	if it.Return != nil {
		p += it.Return.Price
	}
	return p
}

// TotalDurationMinutes sums both directions of the itinerary.
func (it Itinerary) TotalDurationMinutes() int {
	d := it.Outbound.DurationMinutes
	if it.Return != nil {
		d += it.Return.DurationMinutes
	}
	return d
}

// TotalStops sums both directions of the itinerary.
func (it Itinerary) TotalStops() int {
	s := it.Outbound.Stops
	if it.Return != nil {
		s += it.Return.Stops
	}
	return s
}

// DatePrice is one calendar entry from a date-range search: the cheapest
// price for a departure date (and, for round trips, its paired return
// date).
type DatePrice struct {
	Departure time.Time  `json:"departure"`
	Return    *time.Time `json:"return,omitempty"`
	Price     float64    `json:"price"`
}
