package models

import (
	"time"
)

type TripType int

const (
	TripRoundTrip TripType = 1
	TripOneWay    TripType = 2
)

type Seat int

const (
	SeatEconomy        Seat = 1
	SeatPremiumEconomy Seat = 2
	SeatBusiness       Seat = 3
	SeatFirst          Seat = 4
)

// Stops follows the upstream's stop-policy enumeration.
type Stops int

const (
	StopsAny        Stops = 0
	StopsNonstop    Stops = 1
	StopsOneOrFewer Stops = 2
	StopsTwoOrFewer Stops = 3
)

type SortOrder int

const (
	SortTopFlights    SortOrder = 1
	SortPrice         SortOrder = 2
	SortDepartureTime SortOrder = 3
	SortArrivalTime   SortOrder = 4
	SortDuration      SortOrder = 5
)

type Passengers struct {
	Adults        int `json:"adults"`
	Children      int `json:"children"`
	InfantsInSeat int `json:"infants_in_seat"`
	InfantsOnLap  int `json:"infants_on_lap"`
}

func (p Passengers) Total() int {
	return p.Adults + p.Children + p.InfantsInSeat + p.InfantsOnLap
}

// AirportWeight is one candidate airport for a segment endpoint. The
// upstream accepts several candidates per endpoint, each with a weight.
type AirportWeight struct {
	Airport string `json:"airport"`
	Weight  int    `json:"weight"`
}

// TimeRestrictions bounds departure/arrival time of day in whole hours
// (0-24). Nil fields mean unbounded.
type TimeRestrictions struct {
	EarliestDeparture *int `json:"earliest_departure,omitempty"`
	LatestDeparture   *int `json:"latest_departure,omitempty"`
	EarliestArrival   *int `json:"earliest_arrival,omitempty"`
	LatestArrival     *int `json:"latest_arrival,omitempty"`
}

// LayoverRestrictions limits connections to a set of airports and/or a
// maximum layover duration in minutes.
type LayoverRestrictions struct {
	Airports   []string `json:"airports,omitempty"`
	MaxMinutes *int     `json:"max_minutes,omitempty"`
}

// FlightSegment is one direction of the requested trip. Departure and
// arrival each carry an ordered, non-empty set of candidate airports.
type FlightSegment struct {
	Departure []AirportWeight `json:"departure"`
	Arrival   []AirportWeight `json:"arrival"`

	// TravelDate is an ISO date (2006-01-02).
	TravelDate string `json:"travel_date"`

	TimeRestrictions *TimeRestrictions `json:"time_restrictions,omitempty"`

	// SelectedFlight pins a previously returned slice, asking the
	// upstream for itineraries compatible with it. Used only when
	// fetching returns for a chosen outbound.
	SelectedFlight []FlightLeg `json:"selected_flight,omitempty"`
}

type PriceLimit struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

type SearchFilters struct {
	TripType   TripType        `json:"trip_type"`
	Segments   []FlightSegment `json:"segments"`
	Passengers Passengers      `json:"passengers"`
	Seat       Seat            `json:"seat"`
	Stops      Stops           `json:"stops"`

	// Airlines restricts results to the given carrier codes.
	Airlines []string `json:"airlines,omitempty"`

	MaxPrice           *PriceLimit          `json:"max_price,omitempty"`
	MaxDurationMinutes *int                 `json:"max_duration_minutes,omitempty"`
	Layover            *LayoverRestrictions `json:"layover,omitempty"`
	SortBy             SortOrder            `json:"sort_by,omitempty"`
}

// DateSearchFilters asks for the cheapest price per calendar date across
// a span instead of full itineraries.
type DateSearchFilters struct {
	SearchFilters

	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`

	// TripDays is the fixed outbound-to-return gap, required for
	// round-trip date searches.
	TripDays int `json:"trip_days,omitempty"`
}

const dateLayout = "2006-01-02"

func (f *SearchFilters) Validate() error {
	switch f.TripType {
	case TripOneWay:
		if len(f.Segments) != 1 {
			return ErrSegmentCount
		}
	case TripRoundTrip:
		if len(f.Segments) != 2 {
			return ErrSegmentCount
		}
	default:
		return ErrUnknownTripType
	}

	p := f.Passengers
	if p.Adults < 0 || p.Children < 0 || p.InfantsInSeat < 0 || p.InfantsOnLap < 0 {
		return ErrNegativePassengers
	}
	if p.Total() <= 0 {
		return ErrNoPassengers
	}

	if f.Seat == 0 {
		f.Seat = SeatEconomy
	}
	if f.SortBy == 0 {
		f.SortBy = SortTopFlights
	}

	for i := range f.Segments {
		if err := f.Segments[i].validate(); err != nil {
			return err
		}
	}

	return nil
}

func (s *FlightSegment) validate() error {
	if len(s.Departure) == 0 {
		return ErrMissingDeparture
	}
	if len(s.Arrival) == 0 {
		return ErrMissingArrival
	}
	if _, err := time.Parse(dateLayout, s.TravelDate); err != nil {
		return ErrBadTravelDate
	}
	if tr := s.TimeRestrictions; tr != nil {
		if !validHourRange(tr.EarliestDeparture, tr.LatestDeparture) ||
			!validHourRange(tr.EarliestArrival, tr.LatestArrival) {
			return ErrBadTimeRestriction
		}
	}
	return nil
}

func validHourRange(from, to *int) bool {
	if from != nil && (*from < 0 || *from > 24) {
		return false
	}
	if to != nil && (*to < 0 || *to > 24) {
		return false
	}
	if from != nil && to != nil && *from > *to {
		return false
	}
	return true
}

func (f *DateSearchFilters) Validate() error {
	if err := f.SearchFilters.Validate(); err != nil {
		return err
	}

	from, err := time.Parse(dateLayout, f.FromDate)
	if err != nil {
		return ErrBadDateSpan
	}
	to, err := time.Parse(dateLayout, f.ToDate)
	if err != nil {
		return ErrBadDateSpan
	}
	if to.Before(from) {
		return ErrBadDateSpan
	}

	if f.TripType == TripRoundTrip && f.TripDays <= 0 {
		return ErrMissingTripDays
	}

	return nil
}
