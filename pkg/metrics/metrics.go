package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the search core. A nil
// *Metrics is valid everywhere and records nothing, so tests can run
// without touching the default registry.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamRetries  prometheus.Counter
	RequestDuration  prometheus.Histogram
	SearchesTotal    *prometheus.CounterVec
	DroppedLegs      prometheus.Counter
	DroppedFlights   prometheus.Counter
	DroppedDates     prometheus.Counter
}

func New(namespace string) *Metrics {
	return &Metrics{
		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream HTTP requests by outcome",
		}, []string{"outcome"}),
		UpstreamRetries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retries_total",
			Help:      "Retry attempts against the upstream",
		}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request latency including queueing",
			Buckets:   prometheus.DefBuckets,
		}),
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches served by kind",
		}, []string{"kind"}),
		DroppedLegs: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decoder_dropped_legs_total",
			Help:      "Legs dropped during decode for unparseable or unknown data",
		}),
		DroppedFlights: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decoder_dropped_flights_total",
			Help:      "Flights dropped during decode after losing every leg",
		}),
		DroppedDates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decoder_dropped_date_entries_total",
			Help:      "Calendar entries dropped during decode for malformed prices",
		}),
	}
}

func (m *Metrics) IncUpstreamRequest(outcome string) {
	if m != nil {
		m.UpstreamRequests.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncRetry() {
	if m != nil {
		m.UpstreamRetries.Inc()
	}
}

func (m *Metrics) ObserveRequestDuration(seconds float64) {
	if m != nil {
		m.RequestDuration.Observe(seconds)
	}
}

func (m *Metrics) IncSearch(kind string) {
	if m != nil {
		m.SearchesTotal.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncDroppedLeg() {
	if m != nil {
		m.DroppedLegs.Inc()
	}
}

func (m *Metrics) IncDroppedFlight() {
	if m != nil {
		m.DroppedFlights.Inc()
	}
}

func (m *Metrics) IncDroppedDate() {
	if m != nil {
		m.DroppedDates.Inc()
	}
}
