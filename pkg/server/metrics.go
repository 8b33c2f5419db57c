package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's Prometheus instruments.
type metrics struct {
	queriesTotal    *prometheus.CounterVec
	queryDuration   prometheus.Histogram
	queryMatches    prometheus.Histogram
	mutationsTotal  *prometheus.CounterVec
	mutateDuration  prometheus.Histogram
	sessionsActive  prometheus.Gauge
	sessionCommands *prometheus.CounterVec
}

func newMetrics(namespace string, reg prometheus.Registerer) *metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &metrics{
		queriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Selector queries served, by outcome.",
		}, []string{"outcome"}),
		queryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time spent parsing and querying a document.",
			Buckets:   prometheus.DefBuckets,
		}),
		queryMatches: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_matches",
			Help:      "Number of nodes matched per query.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		mutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Mutation requests served, by outcome.",
		}, []string{"outcome"}),
		mutateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mutation_duration_seconds",
			Help:      "Time spent parsing, mutating and re-serializing a document.",
			Buckets:   prometheus.DefBuckets,
		}),
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Open WebSocket document sessions.",
		}),
		sessionCommands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_commands_total",
			Help:      "Commands handled inside document sessions, by command.",
		}, []string{"command"}),
	}
}
