package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	spoofChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spoof_checks_total",
			Help: "Total number of checked messages by result and attack kind",
		},
		[]string{"result", "attack_kind"},
	)

	spoofCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spoof_check_duration_seconds",
			Help:    "Time spent in the detection engine per message",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	scanStoreErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spoof_scan_store_errors_total",
			Help: "Scan records that could not be persisted",
		},
	)
)
