package search

import (
	"context"
	"sync"
	"time"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
)

// maxDateWindowDays is the widest span the upstream accepts per
// calendar call.
const maxDateWindowDays = 61

const dateLayout = "2006-01-02"

// SearchDates runs a calendar price search across the requested span,
// chunking spans wider than the upstream's per-call window and merging
// the chunk results. A failing chunk contributes nothing instead of
// aborting the rest. The merged order follows chunk order, not a global
// date order; callers wanting sorted output must sort.
func (c *Client) SearchDates(ctx context.Context, f models.DateSearchFilters) ([]models.DatePrice, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	c.metrics.IncSearch("dates")

	from, _ := time.Parse(dateLayout, f.FromDate)
	to, _ := time.Parse(dateLayout, f.ToDate)
	spanDays := int(to.Sub(from).Hours() / 24)

	if spanDays <= maxDateWindowDays {
		return c.fetchDates(ctx, f)
	}

	chunks := (spanDays + maxDateWindowDays - 1) / maxDateWindowDays
	results := make([][]models.DatePrice, chunks)

	sem := make(chan struct{}, c.cfg.ChunkParallelism)
	var wg sync.WaitGroup

	for i := 0; i < chunks; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			prices, err := c.fetchDates(ctx, chunkFilters(f, from, to, i))
			if err != nil {
				c.log.Warn("date chunk failed", "chunk", i, "error", err)
				return
			}
			results[i] = prices
		}(i)
	}
	wg.Wait()

	var merged []models.DatePrice
	for _, r := range results {
		merged = append(merged, r...)
	}
	if len(merged) == 0 {
		return nil, nil
	}
	return merged, nil
}

// chunkFilters derives chunk i's filters: the span is substituted with
// the chunk's window and every segment travel date shifts forward by
// i x window days, keeping the nominal travel date inside the queried
// range as the upstream expects.
func chunkFilters(f models.DateSearchFilters, from, to time.Time, i int) models.DateSearchFilters {
	shift := i * maxDateWindowDays

	chunk := f
	chunk.Segments = make([]models.FlightSegment, len(f.Segments))
	copy(chunk.Segments, f.Segments)
	for j := range chunk.Segments {
		if d, err := time.Parse(dateLayout, chunk.Segments[j].TravelDate); err == nil {
			chunk.Segments[j].TravelDate = d.AddDate(0, 0, shift).Format(dateLayout)
		}
	}

	// Chunks tile the span: each window ends the day before the next
	// starts, so no boundary date is queried twice.
	chunkFrom := from.AddDate(0, 0, shift)
	chunkTo := chunkFrom.AddDate(0, 0, maxDateWindowDays-1)
	if chunkTo.After(to) {
		chunkTo = to
	}
	chunk.FromDate = chunkFrom.Format(dateLayout)
	chunk.ToDate = chunkTo.Format(dateLayout)

	return chunk
}

func (c *Client) fetchDates(ctx context.Context, f models.DateSearchFilters) ([]models.DatePrice, error) {
	body, err := c.codec.EncodeDates(f)
	if err != nil {
		return nil, err
	}

	raw, err := c.transport.Post(ctx, c.cfg.DatesURL, body, nil)
	if err != nil {
		return nil, err
	}

	return c.codec.DecodeDates(raw)
}
