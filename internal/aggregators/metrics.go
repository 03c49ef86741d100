package aggregators

import (
	"log-analyzer/internal/shared/metrics"
)

const (
	labelOutcome  = "outcome"
	labelSeverity = "severity"

	outcomeDecodeFailed = "decode_failed"
)

var (
	// metricLinesTotal counts every line read, by what became of it:
	// decode_failed, dropped, unclassified or classified.
	metricLinesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "lines_total",
		},
		[]string{labelOutcome},
	)

	// metricEventsTotal counts the requests recorded into a report, by severity bucket.
	metricEventsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "events_total",
		},
		[]string{labelSeverity},
	)

	metricFilesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "files_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
