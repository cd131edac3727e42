package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/punitarani/flights-tracker-sub001/internal/filter"
	"github.com/punitarani/flights-tracker-sub001/internal/models"
	"github.com/punitarani/flights-tracker-sub001/internal/protocol"
	"github.com/punitarani/flights-tracker-sub001/internal/registry"
	"github.com/punitarani/flights-tracker-sub001/internal/search"
	"github.com/punitarani/flights-tracker-sub001/internal/transport"
	"github.com/punitarani/flights-tracker-sub001/pkg/currency"
	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:   "flights",
		Short: "Flight and fare-calendar search from the command line",
	}

	root.PersistentFlags().Bool("json", false, "Output as JSON")
	root.PersistentFlags().Duration("timeout", 2*time.Minute, "Overall search timeout")

	root.AddCommand(searchCmd())
	root.AddCommand(datesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type searchFlags struct {
	from       []string
	to         []string
	depart     string
	returnDate string
	adults     int
	children   int
	cabin      string
	stops      string
	airlines   []string
	maxPrice   float64
	top        int
	sortBy     string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.from, "from", nil, "Origin airport code(s) (required)")
	cmd.Flags().StringSliceVar(&f.to, "to", nil, "Destination airport code(s) (required)")
	cmd.Flags().StringVar(&f.depart, "depart", "", "Departure date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.returnDate, "return", "", "Return date YYYY-MM-DD (optional)")
	cmd.Flags().IntVar(&f.adults, "adults", 1, "Number of adults")
	cmd.Flags().IntVar(&f.children, "children", 0, "Number of children")
	cmd.Flags().StringVar(&f.cabin, "cabin", "economy", "Cabin class: economy, premium_economy, business, first")
	cmd.Flags().StringVar(&f.stops, "stops", "any", "Stops: any, nonstop, one, two")
	cmd.Flags().StringSliceVar(&f.airlines, "airlines", nil, "Restrict to airline codes")
	cmd.Flags().Float64Var(&f.maxPrice, "max-price", 0, "Maximum price")
	cmd.Flags().IntVar(&f.top, "top", 5, "Results to show")
	cmd.Flags().StringVar(&f.sortBy, "sort", "top", "Sort: top, price, duration, departure, arrival")
}

func (f *searchFlags) toFilters() (models.SearchFilters, error) {
	if len(f.from) == 0 || len(f.to) == 0 || f.depart == "" {
		return models.SearchFilters{}, models.ValidationError("--from, --to and --depart are required")
	}

	tripType := models.TripOneWay
	segments := []models.FlightSegment{{
		Departure:  airportSet(f.from),
		Arrival:    airportSet(f.to),
		TravelDate: f.depart,
	}}
	if f.returnDate != "" {
		tripType = models.TripRoundTrip
		segments = append(segments, models.FlightSegment{
			Departure:  airportSet(f.to),
			Arrival:    airportSet(f.from),
			TravelDate: f.returnDate,
		})
	}

	seat, err := parseSeat(f.cabin)
	if err != nil {
		return models.SearchFilters{}, err
	}
	stops, err := parseStops(f.stops)
	if err != nil {
		return models.SearchFilters{}, err
	}

	filters := models.SearchFilters{
		TripType:   tripType,
		Segments:   segments,
		Passengers: models.Passengers{Adults: f.adults, Children: f.children},
		Seat:       seat,
		Stops:      stops,
		Airlines:   f.airlines,
		SortBy:     parseSortOrder(f.sortBy),
	}
	if f.maxPrice > 0 {
		filters.MaxPrice = &models.PriceLimit{Amount: f.maxPrice}
	}
	return filters, nil
}

func searchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search itineraries for fixed dates",
		Example: `  flights search --from SFO --to PHX --depart 2025-10-11
  flights search --from SFO --to PHX --depart 2025-10-11 --return 2025-10-18 --sort price`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := flags.toFilters()
			if err != nil {
				return err
			}

			client := buildClient()
			ctx, cancel := commandContext(cmd)
			defer cancel()

			itineraries, err := client.Search(ctx, filters, flags.top)
			if err != nil {
				return err
			}
			itineraries = filter.SortItineraries(itineraries, filters.SortBy)

			if asJSON(cmd) {
				return printJSON(itineraries)
			}
			printItineraries(itineraries)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func datesCmd() *cobra.Command {
	var flags searchFlags
	var fromDate, toDate string
	var tripDays int

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Scan a date range for the cheapest travel dates",
		Example: `  flights dates --from SFO --to PHX --depart 2025-06-01 --from-date 2025-06-01 --to-date 2025-08-31
  flights dates --from SFO --to PHX --depart 2025-06-01 --return 2025-06-08 --from-date 2025-06-01 --to-date 2025-12-01 --trip-days 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := flags.toFilters()
			if err != nil {
				return err
			}
			if fromDate == "" || toDate == "" {
				return models.ValidationError("--from-date and --to-date are required")
			}

			filters := models.DateSearchFilters{
				SearchFilters: base,
				FromDate:      fromDate,
				ToDate:        toDate,
				TripDays:      tripDays,
			}

			client := buildClient()
			ctx, cancel := commandContext(cmd)
			defer cancel()

			prices, err := client.SearchDates(ctx, filters)
			if err != nil {
				return err
			}
			prices = filter.SortDatePrices(prices)

			if asJSON(cmd) {
				return printJSON(prices)
			}
			printDatePrices(prices)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&fromDate, "from-date", "", "Start of the date range YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&toDate, "to-date", "", "End of the date range YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&tripDays, "trip-days", 0, "Trip length in days (round trips)")
	return cmd
}

func buildClient() *search.Client {
	log := logger.NewNop()
	tr := transport.NewClient(transport.DefaultConfig(), log, nil)
	codec := protocol.NewCodec(registry.New(), log, nil)
	return search.NewClient(tr, codec, search.DefaultConfig(), log, nil)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return context.WithTimeout(cmd.Context(), timeout)
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printItineraries(itineraries []models.Itinerary) {
	if len(itineraries) == 0 {
		fmt.Println("No flights found.")
		return
	}

	for i, it := range itineraries {
		fmt.Printf("%d. %s  %s  %d stop(s)\n",
			i+1,
			currency.Format("USD", it.TotalPrice()),
			formatDuration(it.TotalDurationMinutes()),
			it.TotalStops())
		printSlice("   out", it.Outbound)
		if it.Return != nil {
			printSlice("   ret", *it.Return)
		}
	}
}

func printSlice(label string, r models.FlightResult) {
	hops := make([]string, len(r.Legs))
	for i, leg := range r.Legs {
		hops[i] = fmt.Sprintf("%s %s %s %s-%s",
			leg.DepartureTime.Format("Jan 2 15:04"),
			leg.Airline,
			leg.FlightNumber,
			leg.DepartureAirport,
			leg.ArrivalAirport)
	}
	fmt.Printf("%s: %s\n", label, strings.Join(hops, " / "))
}

func printDatePrices(prices []models.DatePrice) {
	if len(prices) == 0 {
		fmt.Println("No prices found.")
		return
	}

	for _, p := range prices {
		line := p.Departure.Format("2006-01-02")
		if p.Return != nil {
			line += " - " + p.Return.Format("2006-01-02")
		}
		fmt.Printf("%s  %s\n", line, currency.Format("USD", p.Price))
	}
}

func formatDuration(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
