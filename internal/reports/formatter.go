package reports

import (
	"fmt"
	"strings"

	"log-analyzer/internal/models"
)

const handlersTableHeader = "HANDLER               \tDEBUG  \tINFO   \tWARNING\tERROR  \tCRITICAL"

//go:generate mockgen -source=formatter.go -destination=./mocks/formatter_mock.go -package=mocks
type Formatter interface {
	Format(report *models.HandlersReport) string
}

type handlersTextFormatter struct{}

// NewHandlersTextFormatter returns the tab separated table formatter:
//
//	Total requests: 5
//
//	HANDLER               	DEBUG  	INFO   	WARNING	ERROR  	CRITICAL
//	/api/v1/test/       	1      	1      	1      	1      	1
//	                    	1      	1      	1      	1      	1
//
// Endpoints are sorted ascending and padded to 20 columns, never truncated.
// The output carries no trailing newline.
func NewHandlersTextFormatter() Formatter {
	return &handlersTextFormatter{}
}

func (f *handlersTextFormatter) Format(report *models.HandlersReport) string {
	sorted := report.SortedHandlers()
	lines := make([]string, 0, len(sorted)+4)

	lines = append(lines,
		fmt.Sprintf("Total requests: %d", report.TotalRequests()),
		"",
		handlersTableHeader,
	)
	for _, stats := range sorted {
		lines = append(lines, formatHandlerRow(stats.Handler, stats))
	}
	totals := report.Totals()
	lines = append(lines, formatHandlerRow("", &totals))

	return strings.Join(lines, "\n")
}

func formatHandlerRow(handler string, stats *models.HandlerStats) string {
	return fmt.Sprintf("%-20s\t%-7d\t%-7d\t%-7d\t%-7d\t%-7d",
		handler, stats.Debug, stats.Info, stats.Warning, stats.Error, stats.Critical)
}
