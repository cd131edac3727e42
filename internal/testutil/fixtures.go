// Package testutil builds synthetic upstream payloads shaped like
// captured responses, so decoder and search tests share one fixture
// vocabulary.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Tuple positions mirror captured upstream responses. The decoder keeps
// its own offsets table; if the two drift apart the round-trip tests
// fail, which is the point.

// Leg builds one leg tuple.
func Leg(airline, number, dep, arr string, depDate [3]int, depTime [2]int, arrDate [3]int, arrTime [2]int, duration int) []interface{} {
	leg := make([]interface{}, 23)
	leg[3] = dep
	leg[6] = arr
	leg[8] = []interface{}{depTime[0], depTime[1]}
	leg[10] = []interface{}{arrTime[0], arrTime[1]}
	leg[11] = duration
	leg[20] = []interface{}{depDate[0], depDate[1], depDate[2]}
	leg[21] = []interface{}{arrDate[0], arrDate[1], arrDate[2]}
	leg[22] = []interface{}{airline, number}
	return leg
}

// LegWithNullDate is Leg with the departure date tuple nulled out, which
// the decoder must treat as unparseable.
func LegWithNullDate(airline, number, dep, arr string) []interface{} {
	leg := Leg(airline, number, dep, arr, [3]int{2025, 10, 11}, [2]int{8, 0}, [3]int{2025, 10, 11}, [2]int{10, 0}, 120)
	leg[20] = []interface{}{nil, nil, nil}
	return leg
}

// Itinerary wraps legs into an itinerary tuple with a price block.
func Itinerary(price interface{}, duration int, legs ...[]interface{}) []interface{} {
	slice := make([]interface{}, 10)
	legList := make([]interface{}, len(legs))
	for i, l := range legs {
		legList[i] = l
	}
	slice[2] = legList
	slice[9] = duration

	var priceBlock interface{}
	if price != nil {
		priceBlock = []interface{}{[]interface{}{nil, price}}
	}

	return []interface{}{slice, priceBlock}
}

// FlightsBody assembles a full itinerary-search response with "best"
// and "other" flight groups.
func FlightsBody(best, other [][]interface{}) []byte {
	inner := make([]interface{}, 4)
	if best != nil {
		inner[2] = []interface{}{toList(best)}
	}
	if other != nil {
		inner[3] = []interface{}{toList(other)}
	}
	return Envelope(inner)
}

// DateEntry builds one calendar-grid entry. ret may be empty for
// one-way grids; price may be any JSON value to exercise malformed
// blocks.
func DateEntry(dep, ret string, price interface{}) []interface{} {
	entry := make([]interface{}, 3)
	entry[0] = dep
	if ret != "" {
		entry[1] = ret
	}
	if price != nil {
		entry[2] = []interface{}{[]interface{}{nil, price}}
	}
	return entry
}

// RawDateEntry builds a calendar entry with an arbitrary price block.
func RawDateEntry(dep, ret string, priceBlock interface{}) []interface{} {
	entry := make([]interface{}, 3)
	entry[0] = dep
	if ret != "" {
		entry[1] = ret
	}
	entry[2] = priceBlock
	return entry
}

// DatesBody assembles a full calendar-search response.
func DatesBody(entries ...[]interface{}) []byte {
	inner := make([]interface{}, 2)
	inner[1] = toList(entries)
	return Envelope(inner)
}

func toList(items [][]interface{}) []interface{} {
	list := make([]interface{}, len(items))
	for i, item := range items {
		list[i] = item
	}
	return list
}

// Envelope double-encodes an inner payload and prepends the
// anti-hijacking prefix.
func Envelope(inner []interface{}) []byte {
	innerJSON, err := json.Marshal(inner)
	if err != nil {
		panic(err)
	}
	outer := []interface{}{[]interface{}{"wrb.fr", nil, string(innerJSON)}}
	outerJSON, err := json.Marshal(outer)
	if err != nil {
		panic(err)
	}
	return append([]byte(")]}'\n"), outerJSON...)
}

// EmptyBody is a well-formed response whose payload slot is null: the
// upstream's "no results".
func EmptyBody() []byte {
	return []byte(")]}'\n[[\"wrb.fr\",null,null]]")
}

// DecodeRequestBody reverses the encoder's double encoding so tests can
// inspect the positional request array.
func DecodeRequestBody(body string) ([]interface{}, error) {
	const prefix = "f.req="
	if !strings.HasPrefix(body, prefix) {
		return nil, fmt.Errorf("body does not start with %q", prefix)
	}

	unescaped, err := url.QueryUnescape(strings.TrimPrefix(body, prefix))
	if err != nil {
		return nil, err
	}

	var outer []interface{}
	if err := json.Unmarshal([]byte(unescaped), &outer); err != nil {
		return nil, err
	}
	if len(outer) != 2 {
		return nil, fmt.Errorf("outer wrapper has %d elements, want 2", len(outer))
	}

	innerStr, ok := outer[1].(string)
	if !ok {
		return nil, fmt.Errorf("outer wrapper slot 1 is %T, want string", outer[1])
	}

	var inner []interface{}
	if err := json.Unmarshal([]byte(innerStr), &inner); err != nil {
		return nil, err
	}
	return inner, nil
}
