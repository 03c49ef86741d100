package aggregators

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"time"

	"log-analyzer/internal/classifiers"
	"log-analyzer/internal/decoders"
	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
)

//go:generate mockgen -source=file_aggregator.go -destination=./mocks/file_aggregator_mock.go -package=mocks
type FileAggregator interface {
	// Aggregate builds the report of a single log file.
	Aggregate(ctx context.Context, path string) (*models.HandlersReport, error)
	// AggregateMany builds the combined report of paths. The first missing path aborts the
	// whole batch before any later path is read.
	AggregateMany(ctx context.Context, paths []string) (*models.HandlersReport, error)
}

type fileAggregator struct {
	storage    filestorages.FileStorage
	decoder    decoders.LineDecoder
	classifier classifiers.Classifier
	workers    int
}

// NewFileAggregator returns an aggregator reading files through storage.
// With workers > 1, AggregateMany reads up to that many files concurrently.
func NewFileAggregator(storage filestorages.FileStorage, decoder decoders.LineDecoder, classifier classifiers.Classifier, workers int) FileAggregator {
	if workers < 1 {
		workers = 1
	}
	return &fileAggregator{
		storage:    storage,
		decoder:    decoder,
		classifier: classifier,
		workers:    workers,
	}
}

func (a *fileAggregator) Aggregate(ctx context.Context, path string) (*models.HandlersReport, error) {
	if svcErr := a.checkExists(ctx, path); svcErr != nil {
		metricFilesTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}
	return a.aggregateExisting(ctx, path)
}

func (a *fileAggregator) AggregateMany(ctx context.Context, paths []string) (*models.HandlersReport, error) {
	if a.workers > 1 && len(paths) > 1 {
		return a.aggregateConcurrently(ctx, paths)
	}

	combined := models.NewHandlersReport()
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := a.Aggregate(ctx, path)
		if err != nil {
			return nil, err
		}
		combined.Merge(report)
	}
	return combined, nil
}

// aggregateConcurrently checks every path up front, in order, so that a missing file is
// reported exactly as in the sequential case, then fans the files out to the workers.
func (a *fileAggregator) aggregateConcurrently(parent context.Context, paths []string) (*models.HandlersReport, error) {
	for _, path := range paths {
		if svcErr := a.checkExists(parent, path); svcErr != nil {
			metricFilesTotal.WithLabelValues(svcErr.Code).Inc()
			return nil, svcErr
		}
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	type fileResult struct {
		report *models.HandlersReport
		err    error
	}
	results := make([]fileResult, len(paths))
	jobs := make(chan int)

	workers := min(a.workers, len(paths))
	var wg sync.WaitGroup
	for workerID := 0; workerID < workers; workerID++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			workerCtx := loggers.Ctx(ctx).With().
				Int(loggers.FieldWorkerID, workerID).
				Logger().WithContext(ctx)
			for index := range jobs {
				report, err := a.aggregateRecovered(workerCtx, paths[index])
				results[index] = fileResult{report: report, err: err}
				if err != nil {
					cancel()
				}
			}
		}()
	}

dispatch:
	for index := range paths {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- index:
		}
	}
	close(jobs)
	wg.Wait()

	// A file failure cancels the other workers; report the failure of the earliest path,
	// not the cancellations it caused.
	for _, result := range results {
		if _, ok := svcerrors.AsServiceError(result.err); ok {
			return nil, result.err
		}
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}

	combined := models.NewHandlersReport()
	for index, result := range results {
		if result.report == nil {
			return nil, svcerrors.NewInternalErrorUndefined(fmt.Errorf("no report produced for %s", paths[index]))
		}
		combined.Merge(result.report)
	}
	return combined, nil
}

func (a *fileAggregator) aggregateRecovered(ctx context.Context, path string) (report *models.HandlersReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Str(loggers.FieldFilePath, path).
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("aggregation worker panic recovered")

			var panicErr error
			if e, ok := r.(error); ok {
				panicErr = e
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricFilesTotal.WithLabelValues(svcErr.Code).Inc()
			report, err = nil, svcErr
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.aggregateExisting(ctx, path)
}

func (a *fileAggregator) checkExists(ctx context.Context, path string) *svcerrors.ServiceError {
	err := a.storage.Stat(ctx, path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, filestorages.ErrFileNotFound):
		return errLogFileNotFound(path, err)
	case errors.Is(err, filestorages.ErrInvalidPath):
		return errInvalidLogFilePath(path, err)
	default:
		return errInternalLogFileReadFailed(path, err)
	}
}

func (a *fileAggregator) aggregateExisting(ctx context.Context, path string) (*models.HandlersReport, error) {
	logger := loggers.Ctx(ctx)
	startedAt := time.Now()

	report, lines, svcErr := a.readFile(ctx, path)
	if svcErr != nil {
		logger.Debug().
			Str(loggers.FieldFilePath, path).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Err(svcErr.Cause).
			Msg("failed aggregating log file")
		metricFilesTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	logger.Debug().
		Str(loggers.FieldFilePath, path).
		Dur(loggers.FieldDuration, time.Since(startedAt)).
		Msgf("aggregated %d lines into %d handlers", lines, len(report.Handlers))
	metricFilesTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return report, nil
}

// readFile folds every line of path into a fresh report. Lines have no length limit.
func (a *fileAggregator) readFile(ctx context.Context, path string) (*models.HandlersReport, int, *svcerrors.ServiceError) {
	rc, err := a.storage.Open(ctx, path)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			// removed between the existence check and the read
			return nil, 0, errLogFileNotFound(path, err)
		}
		return nil, 0, errInternalLogFileReadFailed(path, err)
	}
	defer func() { _ = rc.Close() }()

	report := models.NewHandlersReport()
	reader := bufio.NewReader(rc)
	lineNumber := 0
	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			lineNumber++
			a.consumeLine(ctx, report, path, lineNumber, line)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, lineNumber, errInternalLogFileReadFailed(path, readErr)
		}
	}
	return report, lineNumber, nil
}

func (a *fileAggregator) consumeLine(ctx context.Context, report *models.HandlersReport, path string, lineNumber int, line string) {
	result := a.decoder.Decode(line)
	if !result.OK() {
		loggers.Ctx(ctx).Debug().
			Str(loggers.FieldFilePath, path).
			Int(loggers.FieldLineNumber, lineNumber).
			Err(result.Err).
			Msg("skipped undecodable line")
		metricLinesTotal.WithLabelValues(outcomeDecodeFailed).Inc()
		return
	}

	classification := a.classifier.Classify(result.Record)
	metricLinesTotal.WithLabelValues(string(classification.Outcome)).Inc()

	switch classification.Outcome {
	case classifiers.OutcomeClassified:
		report.Record(classification.Endpoint, classification.Severity)
		metricEventsTotal.WithLabelValues(string(classification.Severity)).Inc()
	case classifiers.OutcomeUnclassified:
		loggers.Ctx(ctx).Debug().
			Str(loggers.FieldFilePath, path).
			Int(loggers.FieldLineNumber, lineNumber).
			Msg("request line has no recognized severity")
		report.Touch(classification.Endpoint)
	}
}
