package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "domainlang",
		Subsystem: "service",
		Name:      "validations_total",
		Help:      "World validations by outcome (valid, invalid, error).",
	}, []string{"outcome"})

	conditionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "domainlang",
		Subsystem: "service",
		Name:      "condition_failures_total",
		Help:      "Failed validation conditions by condition name.",
	}, []string{"condition"})

	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "domainlang",
		Subsystem: "service",
		Name:      "reloads_total",
		Help:      "Definition reloads by status (ok, rejected, error).",
	}, []string{"status"})

	validationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "domainlang",
		Subsystem: "service",
		Name:      "validation_duration_seconds",
		Help:      "Wall time of a single world validation.",
		Buckets:   prometheus.DefBuckets,
	})
)
