package protocol

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
)

// DecodeFlights maps a raw itinerary-search response to flight results.
// Unknown codes, null date/time tuples and other per-leg defects drop
// only the offending leg or flight; a structurally unusable body is a
// DecodeError. A nil, nil return means the upstream had no results.
func (c *Codec) DecodeFlights(raw []byte) ([]models.FlightResult, error) {
	inner, err := c.unwrap(raw)
	if err != nil || inner == nil {
		return nil, err
	}

	var results []models.FlightResult
	for _, groupIdx := range []int{innerBestFlights, innerOtherFlights} {
		group := arrayAt(inner, groupIdx)
		if group == nil {
			continue
		}
		for _, rawItin := range arrayAt(group, groupItineraries) {
			itin, ok := asArray(rawItin)
			if !ok {
				continue
			}
			result, ok := c.decodeItinerary(itin)
			if !ok {
				continue
			}
			results = append(results, result)
		}
	}

	return results, nil
}

// DecodeDates maps a raw calendar-search response to per-date prices.
// Entries with malformed dates or prices are dropped, not fatal.
func (c *Codec) DecodeDates(raw []byte) ([]models.DatePrice, error) {
	inner, err := c.unwrap(raw)
	if err != nil || inner == nil {
		return nil, err
	}

	var prices []models.DatePrice
	for _, rawEntry := range arrayAt(inner, innerDateGrid) {
		entry, ok := asArray(rawEntry)
		if !ok {
			continue
		}

		depStr, ok := stringAt(entry, dateEntryOutbound)
		if !ok {
			c.metrics.IncDroppedDate()
			c.log.Warn("calendar entry missing departure date", "fragment", fragment(entry))
			continue
		}
		dep, err := time.Parse("2006-01-02", depStr)
		if err != nil {
			c.metrics.IncDroppedDate()
			c.log.Warn("calendar entry has unparseable date", "fragment", fragment(entry))
			continue
		}

		price, ok := priceFromBlock(arrayAt(entry, dateEntryPriceBlock))
		if !ok {
			c.metrics.IncDroppedDate()
			c.log.Warn("calendar entry has malformed price", "fragment", fragment(entry))
			continue
		}

		dp := models.DatePrice{Departure: dep, Price: price}
		if retStr, ok := stringAt(entry, dateEntryReturn); ok {
			if ret, err := time.Parse("2006-01-02", retStr); err == nil {
				dp.Return = &ret
			}
		}

		prices = append(prices, dp)
	}

	return prices, nil
}

// unwrap strips the anti-hijacking prefix and peels both layers of JSON
// encoding. A null inner payload is the upstream's "no results" and
// comes back as nil, nil.
func (c *Codec) unwrap(raw []byte) ([]interface{}, error) {
	if !bytes.HasPrefix(raw, []byte(antiHijackPrefix)) {
		return nil, &models.DecodeError{Reason: "missing anti-hijacking prefix", Fragment: truncate(raw)}
	}
	body := bytes.TrimLeft(raw[len(antiHijackPrefix):], "\r\n")

	var outer []interface{}
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, &models.DecodeError{Reason: "response envelope is not valid JSON", Fragment: truncate(body)}
	}

	row := arrayAt(outer, outerPayloadRow)
	payload := elemAt(row, outerPayloadCol)
	if payload == nil {
		return nil, nil
	}

	payloadStr, ok := payload.(string)
	if !ok {
		return nil, &models.DecodeError{Reason: "payload slot is neither null nor a string", Fragment: fragment(payload)}
	}

	var inner []interface{}
	if err := json.Unmarshal([]byte(payloadStr), &inner); err != nil {
		return nil, &models.DecodeError{Reason: "inner payload is not valid JSON", Fragment: truncate([]byte(payloadStr))}
	}

	return inner, nil
}

func (c *Codec) decodeItinerary(itin []interface{}) (models.FlightResult, bool) {
	slice := arrayAt(itin, itinSlice)
	if slice == nil {
		c.metrics.IncDroppedFlight()
		c.log.Warn("itinerary tuple has no slice", "fragment", fragment(itin))
		return models.FlightResult{}, false
	}

	var legs []models.FlightLeg
	for _, rawLeg := range arrayAt(slice, sliceLegs) {
		legArr, ok := asArray(rawLeg)
		if !ok {
			continue
		}
		leg, ok := c.decodeLeg(legArr)
		if !ok {
			c.metrics.IncDroppedLeg()
			continue
		}
		legs = append(legs, leg)
	}

	if len(legs) == 0 {
		c.metrics.IncDroppedFlight()
		c.log.Warn("flight dropped: no decodable legs", "fragment", fragment(slice))
		return models.FlightResult{}, false
	}

	duration, ok := intAt(slice, sliceDuration)
	if !ok {
		for _, leg := range legs {
			duration += leg.DurationMinutes
		}
	}

	// A missing price is tolerated as zero; the slice itself is still
	// useful to callers.
	price, _ := priceFromBlock(arrayAt(itin, itinPriceBlock))

	return models.FlightResult{
		Price:           price,
		DurationMinutes: duration,
		Stops:           len(legs) - 1,
		Legs:            legs,
	}, true
}

func (c *Codec) decodeLeg(leg []interface{}) (models.FlightLeg, bool) {
	depDate := arrayAt(leg, legDepDate)
	depTime := arrayAt(leg, legDepTime)
	arrDate := arrayAt(leg, legArrDate)
	arrTime := arrayAt(leg, legArrTime)

	if len(depDate) == 0 || allNull(depDate) || len(depTime) == 0 || allNull(depTime) {
		c.log.Warn("leg dropped: null departure date/time", "fragment", fragment(leg))
		return models.FlightLeg{}, false
	}
	if len(arrDate) == 0 || allNull(arrDate) || len(arrTime) == 0 || allNull(arrTime) {
		c.log.Warn("leg dropped: null arrival date/time", "fragment", fragment(leg))
		return models.FlightLeg{}, false
	}

	depAirport, _ := stringAt(leg, legDepAirport)
	arrAirport, _ := stringAt(leg, legArrAirport)
	if _, ok := c.reg.Airport(depAirport); !ok {
		c.log.Warn("leg dropped: unknown departure airport", "code", depAirport, "fragment", fragment(leg))
		return models.FlightLeg{}, false
	}
	if _, ok := c.reg.Airport(arrAirport); !ok {
		c.log.Warn("leg dropped: unknown arrival airport", "code", arrAirport, "fragment", fragment(leg))
		return models.FlightLeg{}, false
	}

	carrier := arrayAt(leg, legCarrier)
	airline, _ := stringAt(carrier, carrierAirline)
	if _, ok := c.reg.Airline(airline); !ok {
		c.log.Warn("leg dropped: unknown airline", "code", airline, "fragment", fragment(leg))
		return models.FlightLeg{}, false
	}
	number, _ := stringAt(carrier, carrierNumber)

	duration, _ := intAt(leg, legDuration)

	return models.FlightLeg{
		Airline:          airline,
		FlightNumber:     number,
		DepartureAirport: depAirport,
		ArrivalAirport:   arrAirport,
		DepartureTime:    buildTime(depDate, depTime),
		ArrivalTime:      buildTime(arrDate, arrTime),
		DurationMinutes:  duration,
	}, true
}

// buildTime assembles a [year,month,day] + [hour,minute] pair. Partial
// nulls inside an otherwise present tuple read as zero.
func buildTime(date, clock []interface{}) time.Time {
	year, _ := intAt(date, 0)
	month, _ := intAt(date, 1)
	day, _ := intAt(date, 2)
	hour, _ := intAt(clock, 0)
	minute, _ := intAt(clock, 1)
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
}

func priceFromBlock(block []interface{}) (float64, bool) {
	if len(block) == 0 {
		return 0, false
	}
	first := arrayAt(block, priceBlockFirst)
	if len(first) < 2 {
		return 0, false
	}
	return numberAt(first, priceBlockAmount)
}

func truncate(b []byte) string {
	if len(b) > 200 {
		b = b[:200]
	}
	return string(b)
}
