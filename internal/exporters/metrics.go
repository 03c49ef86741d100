package exporters

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	metricCSVExportedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubExport,
			Name:      "csv_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
