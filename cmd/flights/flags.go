package main

import (
	"github.com/punitarani/flights-tracker-sub001/internal/models"
)

func airportSet(codes []string) []models.AirportWeight {
	set := make([]models.AirportWeight, 0, len(codes))
	for _, code := range codes {
		set = append(set, models.AirportWeight{Airport: code})
	}
	return set
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
