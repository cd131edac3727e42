package ranking

import (
	"math"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
)

const (
	PriceWeight    = 0.5
	DurationWeight = 0.3
	StopsWeight    = 0.2
)

// CalculateScores annotates itineraries with a best-value score
// normalized against the batch's price and duration range.
func CalculateScores(itineraries []models.Itinerary) []models.Itinerary {
	if len(itineraries) == 0 {
		return itineraries
	}

	maxPrice := 0.0
	maxDuration := 0.0
	for _, it := range itineraries {
		if p := it.TotalPrice(); p > maxPrice {
			maxPrice = p
		}
		if d := float64(it.TotalDurationMinutes()); d > maxDuration {
			maxDuration = d
		}
	}

	result := make([]models.Itinerary, len(itineraries))
	for i, it := range itineraries {
		result[i] = it
		result[i].BestValueScore = bestValue(it, maxPrice, maxDuration)
	}

	return result
}

// Lower score = better value
func bestValue(it models.Itinerary, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (it.TotalPrice() / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (float64(it.TotalDurationMinutes()) / maxDuration) * 100
	}

	stopsScore := float64(it.TotalStops()) * 15
	score := (priceScore * PriceWeight) + (durationScore * DurationWeight) + (stopsScore * StopsWeight)

	return math.Round(score*100) / 100
}
