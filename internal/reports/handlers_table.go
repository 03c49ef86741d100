package reports

import (
	"strconv"

	"log-analyzer/internal/models"
)

const totalRowLabel = "TOTAL"

var handlersTableColumns = []string{"Handler", "DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL", "Total"}

// HandlersTable returns the export rows of report: a header row, one row per endpoint in
// the same order as the text table, and a TOTAL row with the column sums.
func HandlersTable(report *models.HandlersReport) [][]string {
	sorted := report.SortedHandlers()
	rows := make([][]string, 0, len(sorted)+2)

	rows = append(rows, append([]string(nil), handlersTableColumns...))
	for _, stats := range sorted {
		rows = append(rows, tableRow(stats.Handler, stats))
	}
	totals := report.Totals()
	rows = append(rows, tableRow(totalRowLabel, &totals))

	return rows
}

func tableRow(label string, stats *models.HandlerStats) []string {
	row := make([]string, 0, len(handlersTableColumns))
	row = append(row, label)
	for _, sev := range models.Severities {
		row = append(row, strconv.FormatInt(stats.Count(sev), 10))
	}
	return append(row, strconv.FormatInt(stats.Total(), 10))
}
