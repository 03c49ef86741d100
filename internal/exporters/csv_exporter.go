package exporters

import (
	"bytes"
	"context"
	"encoding/csv"

	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
)

//go:generate mockgen -source=csv_exporter.go -destination=./mocks/csv_exporter_mock.go -package=mocks
type CSVExporter interface {
	// Export writes rows, header first, to path. An existing file is replaced atomically.
	Export(ctx context.Context, path string, rows [][]string) error
}

type csvExporter struct {
	storage filestorages.FileStorage
}

func NewCSVExporter(storage filestorages.FileStorage) CSVExporter {
	return &csvExporter{storage: storage}
}

func (e *csvExporter) Export(ctx context.Context, path string, rows [][]string) error {
	svcErr := e.export(ctx, path, rows)
	if svcErr != nil {
		metricCSVExportedTotal.WithLabelValues(svcErr.Code).Inc()
		return svcErr
	}
	metricCSVExportedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

func (e *csvExporter) export(ctx context.Context, path string, rows [][]string) *svcerrors.ServiceError {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.WriteAll(rows); err != nil {
		return errInternalCSVEncodeFailed(err)
	}

	result, err := e.storage.Put(ctx, path, &buf, filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return errInternalCSVWriteFailed(path, err)
	}

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldFilePath, result.Path).
		Msgf("exported %d csv rows", len(rows))
	return nil
}
