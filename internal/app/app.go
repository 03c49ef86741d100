package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/classifiers"
	"log-analyzer/internal/decoders"
	"log-analyzer/internal/exporters"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/shared/ulid"
)

const appName = "log-analyzer"

const codeUnknownReport = "APP_1000"

// RunOptions describes one invocation.
type RunOptions struct {
	Report  string
	Files   []string
	CSVPath string // empty skips the export
}

// App holds all application dependencies.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger

	registry   *reports.Registry
	aggregator aggregators.FileAggregator
	exporter   exporters.CSVExporter
}

// New creates and initializes a new App instance. Logs are written to logOutput.
func New(config *configs.Config, registry *reports.Registry, logOutput io.Writer) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, config.Log.Format, logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	fileStorage := filestorages.NewFileStorage()

	aggregator := aggregators.NewFileAggregator(
		fileStorage,
		decoders.NewLineDecoder(),
		classifiers.NewClassifier(),
		config.Aggregation.Workers,
	)

	return &App{
		config:     config,
		appLogger:  appLogger,
		registry:   registry,
		aggregator: aggregator,
		exporter:   exporters.NewCSVExporter(fileStorage),
	}, nil
}

// Run generates the selected report over opts.Files, prints it to stdout and optionally
// exports it as CSV. Both outputs come from the same aggregation pass.
func (app *App) Run(ctx context.Context, opts RunOptions, stdout io.Writer) error {
	runLogger := app.appLogger.With().
		Str(loggers.FieldRunID, ulid.NewULID()).
		Str(loggers.FieldReport, opts.Report).
		Logger()
	ctx = runLogger.WithContext(ctx)
	defer app.writeMetrics(ctx)

	startedAt := time.Now()
	runLogger.Info().
		Msgf("Starting log-analyzer run (files=%d, workers=%d, csv=%q)",
			len(opts.Files), app.config.Aggregation.Workers, opts.CSVPath)

	report, err := app.registry.Get(opts.Report, app.aggregator)
	if err != nil {
		return svcerrors.NewInvalidArgumentError(codeUnknownReport, err.Error(), err)
	}

	result, err := report.Generate(ctx, opts.Files)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(stdout, result.Text); err != nil {
		return svcerrors.NewInternalErrorUndefined(fmt.Errorf("failed to write report: %w", err))
	}

	if opts.CSVPath != "" {
		if err := app.exporter.Export(ctx, opts.CSVPath, result.Rows); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(stdout, "\nReport exported to CSV: %s\n", opts.CSVPath); err != nil {
			return svcerrors.NewInternalErrorUndefined(fmt.Errorf("failed to write report: %w", err))
		}
	}

	runLogger.Info().
		Dur(loggers.FieldDuration, time.Since(startedAt)).
		Msg("Finished log-analyzer run")
	return nil
}

// writeMetrics dumps the process counters for the node_exporter textfile collector.
// A failure is logged and never fails the run.
func (app *App) writeMetrics(ctx context.Context) {
	path := app.config.Metrics.TextfilePath
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldFilePath, path).Msg("failed to write metrics textfile")
	}
}
