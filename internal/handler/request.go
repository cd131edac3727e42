package handler

import (
	"github.com/punitarani/flights-tracker-sub001/internal/models"
)

// SegmentRequest is the API shape of one trip direction. Airports are
// plain code lists; weights beyond the protocol default are not exposed
// here.
type SegmentRequest struct {
	From []string `json:"from"`
	To   []string `json:"to"`
	Date string   `json:"date"`

	DepartAfter  *int `json:"depart_after,omitempty"`
	DepartBefore *int `json:"depart_before,omitempty"`
	ArriveAfter  *int `json:"arrive_after,omitempty"`
	ArriveBefore *int `json:"arrive_before,omitempty"`
}

type SearchRequest struct {
	TripType   string             `json:"trip_type"`
	Segments   []SegmentRequest   `json:"segments"`
	Passengers *models.Passengers `json:"passengers,omitempty"`
	CabinClass string             `json:"cabin_class,omitempty"`
	MaxStops   string             `json:"max_stops,omitempty"`
	Airlines   []string           `json:"airlines,omitempty"`
	MaxPrice   *float64           `json:"max_price,omitempty"`
	Currency   string             `json:"currency,omitempty"`
	SortBy     string             `json:"sort_by,omitempty"`
	TopN       int                `json:"top_n,omitempty"`
}

type DatesRequest struct {
	SearchRequest

	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	TripDays int    `json:"trip_days,omitempty"`
}

type SearchMetadata struct {
	TotalResults int    `json:"total_results"`
	CacheHit     bool   `json:"cache_hit"`
	SearchTimeMs int64  `json:"search_time_ms"`
	SortBy       string `json:"sort_by,omitempty"`
}

type SearchResponse struct {
	SearchID    string             `json:"search_id"`
	Metadata    SearchMetadata     `json:"metadata"`
	Itineraries []models.Itinerary `json:"itineraries"`
}

type DatesResponse struct {
	SearchID string             `json:"search_id"`
	Metadata SearchMetadata     `json:"metadata"`
	Prices   []models.DatePrice `json:"prices"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (r *SearchRequest) toFilters() (models.SearchFilters, error) {
	tripType, err := parseTripType(r.TripType)
	if err != nil {
		return models.SearchFilters{}, err
	}
	seat, err := parseSeat(r.CabinClass)
	if err != nil {
		return models.SearchFilters{}, err
	}
	stops, err := parseStops(r.MaxStops)
	if err != nil {
		return models.SearchFilters{}, err
	}

	segments := make([]models.FlightSegment, 0, len(r.Segments))
	for _, s := range r.Segments {
		segments = append(segments, s.toSegment())
	}

	passengers := models.Passengers{Adults: 1}
	if r.Passengers != nil {
		passengers = *r.Passengers
	}

	f := models.SearchFilters{
		TripType:   tripType,
		Segments:   segments,
		Passengers: passengers,
		Seat:       seat,
		Stops:      stops,
		Airlines:   r.Airlines,
		SortBy:     parseSortOrder(r.SortBy),
	}
	if r.MaxPrice != nil {
		f.MaxPrice = &models.PriceLimit{Amount: *r.MaxPrice, Currency: r.Currency}
	}

	return f, nil
}

func (r *DatesRequest) toFilters() (models.DateSearchFilters, error) {
	base, err := r.SearchRequest.toFilters()
	if err != nil {
		return models.DateSearchFilters{}, err
	}
	return models.DateSearchFilters{
		SearchFilters: base,
		FromDate:      r.FromDate,
		ToDate:        r.ToDate,
		TripDays:      r.TripDays,
	}, nil
}

func (s SegmentRequest) toSegment() models.FlightSegment {
	seg := models.FlightSegment{
		Departure:  toAirportSet(s.From),
		Arrival:    toAirportSet(s.To),
		TravelDate: s.Date,
	}
	if s.DepartAfter != nil || s.DepartBefore != nil || s.ArriveAfter != nil || s.ArriveBefore != nil {
		seg.TimeRestrictions = &models.TimeRestrictions{
			EarliestDeparture: s.DepartAfter,
			LatestDeparture:   s.DepartBefore,
			EarliestArrival:   s.ArriveAfter,
			LatestArrival:     s.ArriveBefore,
		}
	}
	return seg
}

func toAirportSet(codes []string) []models.AirportWeight {
	set := make([]models.AirportWeight, 0, len(codes))
	for _, code := range codes {
		set = append(set, models.AirportWeight{Airport: code})
	}
	return set
}

func parseTripType(s string) (models.TripType, error) {
	switch s {
	case "one_way":
		return models.TripOneWay, nil
	case "round_trip":
		return models.TripRoundTrip, nil
	default:
		return 0, models.ErrUnknownTripType
	}
}

func parseSeat(s string) (models.Seat, error) {
	switch s {
	case "", "economy":
		return models.SeatEconomy, nil
	case "premium_economy":
		return models.SeatPremiumEconomy, nil
	case "business":
		return models.SeatBusiness, nil
	case "first":
		return models.SeatFirst, nil
	default:
		return 0, models.ValidationError("unknown cabin class " + s)
	}
}

func parseStops(s string) (models.Stops, error) {
	switch s {
	case "", "any":
		return models.StopsAny, nil
	case "nonstop":
		return models.StopsNonstop, nil
	case "one":
		return models.StopsOneOrFewer, nil
	case "two":
		return models.StopsTwoOrFewer, nil
	default:
		return 0, models.ValidationError("unknown stops policy " + s)
	}
}

func parseSortOrder(s string) models.SortOrder {
	switch s {
	case "price":
		return models.SortPrice
	case "duration":
		return models.SortDuration
	case "departure":
		return models.SortDepartureTime
	case "arrival":
		return models.SortArrivalTime
	default:
		return models.SortTopFlights
	}
}
