package reports

import (
	"context"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/shared/loggers"
)

const HandlersReportName = "handlers"

// Result holds one aggregation pass rendered both ways, so the printed table and the
// exported rows always describe the same data.
type Result struct {
	Text string
	Rows [][]string
}

//go:generate mockgen -source=report.go -destination=./mocks/report_mock.go -package=mocks
type Report interface {
	Name() string
	Generate(ctx context.Context, files []string) (*Result, error)
}

type handlersReport struct {
	aggregator aggregators.FileAggregator
	formatter  Formatter
}

// NewHandlersReport returns the per-endpoint severity report. A nil formatter selects
// the text table.
func NewHandlersReport(aggregator aggregators.FileAggregator, formatter Formatter) Report {
	if formatter == nil {
		formatter = NewHandlersTextFormatter()
	}
	return &handlersReport{aggregator: aggregator, formatter: formatter}
}

func (r *handlersReport) Name() string {
	return HandlersReportName
}

func (r *handlersReport) Generate(ctx context.Context, files []string) (*Result, error) {
	report, err := r.aggregator.AggregateMany(ctx, files)
	if err != nil {
		return nil, err
	}

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldReport, r.Name()).
		Msgf("generating report from %d files, %d handlers", len(files), len(report.Handlers))

	return &Result{
		Text: r.formatter.Format(report),
		Rows: HandlersTable(report),
	}, nil
}
