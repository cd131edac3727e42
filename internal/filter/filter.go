// Package filter holds consumer-side ordering. The search core makes no
// ordering promises, so callers that want cheapest-first (or any other
// order) sort here.
package filter

import (
	"sort"
	"time"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
	"github.com/punitarani/flights-tracker-sub001/internal/ranking"
)

// SortItineraries orders a result set by the requested criterion.
// SortTopFlights ranks by the best-value score.
func SortItineraries(itineraries []models.Itinerary, sortBy models.SortOrder) []models.Itinerary {
	if len(itineraries) == 0 {
		return itineraries
	}

	sorted := itineraries
	switch sortBy {
	case models.SortPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TotalPrice() < sorted[j].TotalPrice()
		})

	case models.SortDuration:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TotalDurationMinutes() < sorted[j].TotalDurationMinutes()
		})

	case models.SortDepartureTime:
		sort.SliceStable(sorted, func(i, j int) bool {
			return departureOf(sorted[i]).Before(departureOf(sorted[j]))
		})

	case models.SortArrivalTime:
		sort.SliceStable(sorted, func(i, j int) bool {
			return arrivalOf(sorted[i]).Before(arrivalOf(sorted[j]))
		})

	default: // SortTopFlights
		sorted = ranking.CalculateScores(sorted)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].BestValueScore < sorted[j].BestValueScore
		})
	}

	return sorted
}

// SortDatePrices orders calendar entries chronologically; the chunked
// date search does not guarantee a globally monotonic order.
func SortDatePrices(prices []models.DatePrice) []models.DatePrice {
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Departure.Before(prices[j].Departure)
	})
	return prices
}

func departureOf(it models.Itinerary) time.Time {
	return it.Outbound.Legs[0].DepartureTime
}

func arrivalOf(it models.Itinerary) time.Time {
	return it.Outbound.Legs[len(it.Outbound.Legs)-1].ArrivalTime
}
