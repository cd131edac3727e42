package protocol

import (
	"encoding/json"
	"net/url"
	"sort"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
)

// EncodeFlights turns validated itinerary-search filters into the
// upstream's request body (`f.req=<url-encoded payload>`). The payload
// is the nested positional array, JSON-stringified, wrapped as
// [null, <json-string>], JSON-stringified again and URL-encoded. The
// double encoding is a protocol requirement, not a choice.
func (c *Codec) EncodeFlights(f models.SearchFilters) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	core, err := c.buildCore(&f)
	if err != nil {
		return "", err
	}

	inner := make([]interface{}, reqFlightLen)
	inner[reqHeader] = []interface{}{}
	inner[reqCore] = core

	return wrapPayload(inner)
}

// EncodeDates builds the calendar-search variant: the same wrapper plus
// the queried date span and, for round trips, the fixed trip length.
func (c *Codec) EncodeDates(f models.DateSearchFilters) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	core, err := c.buildCore(&f.SearchFilters)
	if err != nil {
		return "", err
	}

	inner := make([]interface{}, reqDatesLen)
	inner[reqHeader] = []interface{}{}
	inner[reqCore] = core
	inner[reqDateSpan] = []interface{}{f.FromDate, f.ToDate}
	if f.TripType == models.TripRoundTrip {
		inner[reqTripDays] = []interface{}{nil, nil, f.TripDays}
	}

	return wrapPayload(inner)
}

func wrapPayload(inner []interface{}) (string, error) {
	innerJSON, err := json.Marshal(inner)
	if err != nil {
		return "", err
	}

	outerJSON, err := json.Marshal([]interface{}{nil, string(innerJSON)})
	if err != nil {
		return "", err
	}

	return "f.req=" + url.QueryEscape(string(outerJSON)), nil
}

func (c *Codec) buildCore(f *models.SearchFilters) ([]interface{}, error) {
	airlines, err := c.resolveAirlines(f.Airlines)
	if err != nil {
		return nil, err
	}

	segments := make([]interface{}, 0, len(f.Segments))
	for i := range f.Segments {
		seg, err := c.buildSegment(&f.Segments[i], f, airlines)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	core := make([]interface{}, coreLen)
	core[coreTripType] = int(f.TripType)
	core[coreUnknownArr] = []interface{}{}
	core[coreSeat] = int(f.Seat)
	core[corePassengers] = []interface{}{
		f.Passengers.Adults,
		f.Passengers.Children,
		f.Passengers.InfantsInSeat,
		f.Passengers.InfantsOnLap,
	}
	if f.MaxPrice != nil {
		core[corePriceCap] = []interface{}{nil, f.MaxPrice.Amount}
	}
	core[coreSegments] = segments
	core[coreTrailer] = coreTrailerConst

	return core, nil
}

func (c *Codec) buildSegment(s *models.FlightSegment, f *models.SearchFilters, airlines interface{}) ([]interface{}, error) {
	departure, err := c.airportList(s.Departure)
	if err != nil {
		return nil, err
	}
	arrival, err := c.airportList(s.Arrival)
	if err != nil {
		return nil, err
	}

	seg := make([]interface{}, segLen)
	seg[segDeparture] = departure
	seg[segArrival] = arrival
	seg[segTimes] = timeRestrictionTuple(s.TimeRestrictions)
	seg[segStops] = int(f.Stops)
	seg[segAirlines] = airlines
	seg[segDate] = s.TravelDate
	if f.MaxDurationMinutes != nil {
		seg[segMaxDuration] = []interface{}{*f.MaxDurationMinutes}
	}
	if len(s.SelectedFlight) > 0 {
		seg[segSelected] = selectedFlightRef(s.SelectedFlight)
	}
	if lay := f.Layover; lay != nil {
		if len(lay.Airports) > 0 {
			codes := make([]interface{}, 0, len(lay.Airports))
			for _, code := range lay.Airports {
				if _, ok := c.reg.Airport(code); !ok {
					return nil, &models.UnknownCodeError{Kind: "airport", Code: code}
				}
				codes = append(codes, code)
			}
			seg[segLayoverList] = codes
		}
		if lay.MaxMinutes != nil {
			seg[segLayoverMax] = *lay.MaxMinutes
		}
	}
	seg[segTrailer] = segTrailerConst

	return seg, nil
}

func (c *Codec) airportList(airports []models.AirportWeight) ([]interface{}, error) {
	list := make([]interface{}, 0, len(airports))
	for _, a := range airports {
		if _, ok := c.reg.Airport(a.Airport); !ok {
			return nil, &models.UnknownCodeError{Kind: "airport", Code: a.Airport}
		}
		list = append(list, []interface{}{a.Airport, a.Weight})
	}
	return list, nil
}

// resolveAirlines validates the allow-list and returns it sorted. The
// upstream keys its cache on the serialized request, so a stable order
// must be reproduced.
func (c *Codec) resolveAirlines(codes []string) (interface{}, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	sorted := make([]string, len(codes))
	copy(sorted, codes)
	sort.Strings(sorted)

	list := make([]interface{}, 0, len(sorted))
	for _, code := range sorted {
		if _, ok := c.reg.Airline(code); !ok {
			return nil, &models.UnknownCodeError{Kind: "airline", Code: code}
		}
		list = append(list, code)
	}
	return list, nil
}

func timeRestrictionTuple(tr *models.TimeRestrictions) interface{} {
	if tr == nil {
		return nil
	}
	return []interface{}{
		intOrNil(tr.EarliestDeparture),
		intOrNil(tr.LatestDeparture),
		intOrNil(tr.EarliestArrival),
		intOrNil(tr.LatestArrival),
	}
}

func intOrNil(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// selectedFlightRef encodes the chosen outbound's legs as the
// cross-reference the upstream expects when asked for compatible
// returns.
func selectedFlightRef(legs []models.FlightLeg) []interface{} {
	refs := make([]interface{}, 0, len(legs))
	for _, leg := range legs {
		refs = append(refs, []interface{}{
			leg.DepartureAirport,
			leg.DepartureTime.Format("2006-01-02"),
			leg.ArrivalAirport,
			nil,
			leg.Airline,
			leg.FlightNumber,
		})
	}
	return refs
}
