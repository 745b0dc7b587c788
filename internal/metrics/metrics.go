// Package metrics holds the prometheus collectors exported on the metrics port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ruralpriority"

var (
	SourceLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_load_duration_seconds",
		Help:      "Time spent loading the village problem table.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})

	SourceRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "source_rows",
		Help:      "Rows in the most recently loaded table.",
	})

	RecordsScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_scored_total",
		Help:      "Records successfully scored.",
	})

	ScoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_failures_total",
		Help:      "Records that could not be scored, by field.",
	}, []string{"field"})

	DistrictPriorityIndex = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "district_priority_index",
		Help:      "Latest broadcast district priority index.",
	}, []string{"district"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Events published to the bus, by subject kind.",
	}, []string{"kind"})
)
