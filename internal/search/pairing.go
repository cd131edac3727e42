package search

import (
	"context"
	"sync"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
)

// pairRoundTrip assembles outbound/return pairs from a mixed result
// pool. Common case: the pool already contains both directions, so the
// cross-product of the top candidates on each side is the answer. When
// the upstream returned only one direction, fall back to per-outbound
// secondary searches with the outbound pinned as the selected flight.
func (c *Client) pairRoundTrip(ctx context.Context, f models.SearchFilters, pool []models.FlightResult, topN int) ([]models.Itinerary, error) {
	outboundSeg := &f.Segments[0]
	returnSeg := &f.Segments[1]

	var outbound, returns []models.FlightResult
	for _, r := range pool {
		switch {
		case matchesSegment(r, outboundSeg):
			outbound = append(outbound, r)
		case matchesSegment(r, returnSeg):
			returns = append(returns, r)
		}
	}

	if len(outbound) > 0 && len(returns) > 0 {
		if len(outbound) > topN {
			outbound = outbound[:topN]
		}
		if len(returns) > topN {
			returns = returns[:topN]
		}

		pairs := make([]models.Itinerary, 0, len(outbound)*len(returns))
		for _, out := range outbound {
			for _, ret := range returns {
				ret := ret
				pairs = append(pairs, models.Itinerary{Outbound: out, Return: &ret})
			}
		}
		return pairs, nil
	}

	return c.pairViaSecondary(ctx, f, outbound, pool)
}

// pairViaSecondary re-queries with each outbound candidate pinned. A
// failing secondary search means "no returns for this outbound", never
// a fatal error for the whole pairing.
func (c *Client) pairViaSecondary(ctx context.Context, f models.SearchFilters, outbound, pool []models.FlightResult) ([]models.Itinerary, error) {
	candidates := outbound
	if len(candidates) == 0 {
		// The pool held only one direction; treat it as outbounds.
		candidates = pool
	}
	if len(candidates) > c.cfg.FallbackOutbounds {
		candidates = candidates[:c.cfg.FallbackOutbounds]
	}

	returnsFor := make([][]models.FlightResult, len(candidates))
	sem := make(chan struct{}, c.cfg.ChunkParallelism)
	var wg sync.WaitGroup

	for i, out := range candidates {
		wg.Add(1)
		go func(i int, out models.FlightResult) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results, err := c.fetchFlights(ctx, pinOutbound(f, out))
			if err != nil {
				c.log.Warn("secondary return search failed", "outbound", i, "error", err)
				return
			}
			returnsFor[i] = results
		}(i, out)
	}
	wg.Wait()

	// Pairs keep outbound-candidate iteration order; return order
	// within each outbound is upstream-defined.
	var pairs []models.Itinerary
	for i, out := range candidates {
		for _, ret := range returnsFor[i] {
			ret := ret
			pairs = append(pairs, models.Itinerary{Outbound: out, Return: &ret})
		}
	}

	if len(pairs) == 0 {
		return nil, nil
	}
	return pairs, nil
}

// pinOutbound copies the filters with the given outbound attached as
// the first segment's selected flight, the protocol's mechanism for
// "returns compatible with this outbound".
func pinOutbound(f models.SearchFilters, out models.FlightResult) models.SearchFilters {
	pinned := f
	pinned.Segments = make([]models.FlightSegment, len(f.Segments))
	copy(pinned.Segments, f.Segments)
	pinned.Segments[0].SelectedFlight = out.Legs
	return pinned
}

// matchesSegment checks a slice's first-leg departure and last-leg
// arrival against a segment's declared airport sets.
func matchesSegment(r models.FlightResult, seg *models.FlightSegment) bool {
	if len(r.Legs) == 0 {
		return false
	}
	first := r.Legs[0].DepartureAirport
	last := r.Legs[len(r.Legs)-1].ArrivalAirport
	return containsAirport(seg.Departure, first) && containsAirport(seg.Arrival, last)
}

func containsAirport(set []models.AirportWeight, code string) bool {
	for _, a := range set {
		if a.Airport == code {
			return true
		}
	}
	return false
}
