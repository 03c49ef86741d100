package aggregators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"log-analyzer/internal/classifiers"
	classifiermocks "log-analyzer/internal/classifiers/mocks"
	"log-analyzer/internal/decoders"
	decodermocks "log-analyzer/internal/decoders/mocks"
	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/filestorages"
	storagemocks "log-analyzer/internal/shared/filestorages/mocks"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const mixedLogContent = `{"levelname": "DEBUG", "logger": "django.request", "path": "/api/v1/test/"}
{"levelname": "INFO", "logger": "django.request", "path": "/api/v1/test/"}
{"levelname": "WARNING", "logger": "django.request", "path": "/api/v1/test/"}
{"levelname": "ERROR", "logger": "django.request", "path": "/api/v1/test/"}
{"levelname": "CRITICAL", "logger": "django.request", "path": "/api/v1/test/"}
{"levelname": "INFO", "logger": "django.other", "path": "/api/v1/test/"}
{"levelname": "INFO", "logger": "django.request", "path":
`

func newTestAggregator(workers int) FileAggregator {
	return NewFileAggregator(filestorages.NewFileStorage(), decoders.NewLineDecoder(), classifiers.NewClassifier(), workers)
}

func writeLogFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAggregate_MixedFile(t *testing.T) {
	t.Parallel()

	path := writeLogFile(t, t.TempDir(), "app.log", mixedLogContent)

	report, err := newTestAggregator(1).Aggregate(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, report.Handlers, 1)
	assert.Equal(t, models.HandlerStats{
		Handler: "/api/v1/test/", Debug: 1, Info: 1, Warning: 1, Error: 1, Critical: 1,
	}, *report.Handlers["/api/v1/test/"])
	assert.Equal(t, int64(5), report.TotalRequests())
}

func TestAggregate_TextLines(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"2025-03-27 12:13:15,000 INFO django.request: GET /api/v1/products/ 201 OK [192.168.1.72]",
		"This is not a valid log line",
		"",
		"2025-03-27 12:13:16,000 ERROR django.request: POST /api/v1/checkout/ 500 Error [10.0.0.8]",
		"2025-03-27 12:13:17,000 INFO django.request: GET /api/v1/products/ 200 OK [192.168.1.73]",
		"2025-03-27 12:13:18,000 INFO django.db.backends: GET /api/v1/products/ 200 OK [192.168.1.73]",
	}, "\n")
	path := writeLogFile(t, t.TempDir(), "app.log", content)

	report, err := newTestAggregator(1).Aggregate(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, report.Handlers, 2)
	assert.Equal(t, int64(2), report.Handlers["/api/v1/products/"].Info)
	assert.Equal(t, int64(1), report.Handlers["/api/v1/checkout/"].Error)
	assert.Equal(t, int64(3), report.TotalRequests())
}

func TestAggregate_UnknownSeverityCreatesEmptyEndpoint(t *testing.T) {
	t.Parallel()

	content := `{"levelname": "NOTICE", "logger": "django.request", "path": "/health/"}` + "\n" +
		`{"logger": "django.request", "path": "/ping/"}` + "\n"
	path := writeLogFile(t, t.TempDir(), "app.log", content)

	report, err := newTestAggregator(1).Aggregate(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, report.Handlers, 2)
	assert.Equal(t, int64(0), report.Handlers["/health/"].Total())
	assert.Equal(t, int64(0), report.Handlers["/ping/"].Total())
	assert.Equal(t, int64(0), report.TotalRequests())
}

func TestAggregate_LongLine(t *testing.T) {
	t.Parallel()

	longPath := "/api/" + strings.Repeat("a", 256*1024) + "/"
	content := fmt.Sprintf(`{"levelname": "INFO", "logger": "django.request", "path": %q}`, longPath)
	path := writeLogFile(t, t.TempDir(), "app.log", content)

	report, err := newTestAggregator(1).Aggregate(context.Background(), path)
	require.NoError(t, err)

	require.Contains(t, report.Handlers, longPath)
	assert.Equal(t, int64(1), report.Handlers[longPath].Info)
}

func TestAggregate_GzipFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(mixedLogContent))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	path := writeLogFile(t, t.TempDir(), "app.log.gz", buf.String())

	report, err := newTestAggregator(1).Aggregate(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, int64(5), report.TotalRequests())
}

func TestAggregate_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.log")

	report, err := newTestAggregator(1).Aggregate(context.Background(), path)
	assert.Nil(t, report)
	require.Error(t, err)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.True(t, svcErr.IsNotFound())
	assert.Equal(t, codeLogFileNotFound, svcErr.Code)
	assert.Equal(t, "Log file not found: "+path, svcErr.Message)
	assert.Equal(t, 1, svcErr.ExitCode)
	assert.ErrorIs(t, err, filestorages.ErrFileNotFound)
}

func TestAggregate_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := newTestAggregator(1).Aggregate(context.Background(), "")

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeInvalidLogFilePath, svcErr.Code)
}

func TestAggregate_OpenFailureIsInternal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	storage := storagemocks.NewMockFileStorage(ctrl)
	storage.EXPECT().Stat(gomock.Any(), "app.log").Return(nil)
	storage.EXPECT().Open(gomock.Any(), "app.log").Return(nil, errors.New("permission denied"))

	aggregator := NewFileAggregator(storage, decoders.NewLineDecoder(), classifiers.NewClassifier(), 1)
	_, err := aggregator.Aggregate(context.Background(), "app.log")

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.True(t, svcErr.IsInternalError())
	assert.Equal(t, codeInternalLogFileReadFailed, svcErr.Code)
	assert.Contains(t, svcErr.Message, "permission denied")
}

type failingReader struct {
	content string
	read    bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.read {
		r.read = true
		return copy(p, r.content), nil
	}
	return 0, errors.New("device unplugged")
}

func TestAggregate_ReadFailureIsInternal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	storage := storagemocks.NewMockFileStorage(ctrl)
	storage.EXPECT().Stat(gomock.Any(), "app.log").Return(nil)
	storage.EXPECT().Open(gomock.Any(), "app.log").
		Return(io.NopCloser(&failingReader{content: "first line\nsecond"}), nil)

	aggregator := NewFileAggregator(storage, decoders.NewLineDecoder(), classifiers.NewClassifier(), 1)
	report, err := aggregator.Aggregate(context.Background(), "app.log")

	assert.Nil(t, report)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeInternalLogFileReadFailed, svcErr.Code)
}

func TestAggregate_PassesEveryLineThroughDecoderAndClassifier(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	storage := storagemocks.NewMockFileStorage(ctrl)
	decoder := decodermocks.NewMockLineDecoder(ctrl)
	classifier := classifiermocks.NewMockClassifier(ctrl)

	storage.EXPECT().Stat(gomock.Any(), "app.log").Return(nil)
	storage.EXPECT().Open(gomock.Any(), "app.log").
		Return(io.NopCloser(strings.NewReader("one\ntwo\nthree")), nil)

	first := models.FieldRecord{"n": "1"}
	second := models.FieldRecord{"n": "2"}
	gomock.InOrder(
		decoder.EXPECT().Decode("one\n").Return(decoders.DecodeResult{Record: first, Format: decoders.FormatText}),
		decoder.EXPECT().Decode("two\n").Return(decoders.DecodeResult{Record: second, Format: decoders.FormatStructured}),
		decoder.EXPECT().Decode("three").Return(decoders.DecodeResult{Record: models.FieldRecord{}, Err: decoders.ErrUnrecognizedLine}),
	)
	classifier.EXPECT().Classify(first).
		Return(classifiers.Classification{Outcome: classifiers.OutcomeClassified, Endpoint: "/a/", Severity: models.SeverityWarning})
	classifier.EXPECT().Classify(second).
		Return(classifiers.Classification{Outcome: classifiers.OutcomeDropped})

	report, err := NewFileAggregator(storage, decoder, classifier, 1).Aggregate(context.Background(), "app.log")
	require.NoError(t, err)

	require.Len(t, report.Handlers, 1)
	assert.Equal(t, int64(1), report.Handlers["/a/"].Warning)
}

func TestAggregateMany_SameFileTwiceDoublesCounters(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()

			path := writeLogFile(t, t.TempDir(), "app.log", mixedLogContent)
			aggregator := newTestAggregator(workers)

			single, err := aggregator.Aggregate(context.Background(), path)
			require.NoError(t, err)
			double, err := aggregator.AggregateMany(context.Background(), []string{path, path})
			require.NoError(t, err)

			require.Len(t, double.Handlers, len(single.Handlers))
			for handler, stats := range single.Handlers {
				doubled := double.Handlers[handler]
				require.NotNil(t, doubled, handler)
				for _, sev := range models.Severities {
					assert.Equal(t, 2*stats.Count(sev), doubled.Count(sev), "%s %s", handler, sev)
				}
			}
			assert.Equal(t, 2*single.TotalRequests(), double.TotalRequests())
		})
	}
}

func TestAggregateMany_StopsAtFirstMissingFile(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	storage := storagemocks.NewMockFileStorage(ctrl)
	gomock.InOrder(
		storage.EXPECT().Stat(gomock.Any(), "existing.log").Return(nil),
		storage.EXPECT().Open(gomock.Any(), "existing.log").
			Return(io.NopCloser(strings.NewReader(mixedLogContent)), nil),
		storage.EXPECT().Stat(gomock.Any(), "missing.log").Return(filestorages.ErrFileNotFound),
	)

	aggregator := NewFileAggregator(storage, decoders.NewLineDecoder(), classifiers.NewClassifier(), 1)
	report, err := aggregator.AggregateMany(context.Background(), []string{"existing.log", "missing.log", "later.log"})

	assert.Nil(t, report)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "Log file not found: missing.log", svcErr.Message)
}

func TestAggregateMany_Concurrent_MissingFileAbortsBeforeAnyRead(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	storage := storagemocks.NewMockFileStorage(ctrl)
	gomock.InOrder(
		storage.EXPECT().Stat(gomock.Any(), "existing.log").Return(nil),
		storage.EXPECT().Stat(gomock.Any(), "missing.log").Return(filestorages.ErrFileNotFound),
	)

	aggregator := NewFileAggregator(storage, decoders.NewLineDecoder(), classifiers.NewClassifier(), 4)
	_, err := aggregator.AggregateMany(context.Background(), []string{"existing.log", "missing.log", "later.log"})

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeLogFileNotFound, svcErr.Code)
	assert.Equal(t, "Log file not found: missing.log", svcErr.Message)
}

func TestAggregateMany_ConcurrentMatchesSequential(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var paths []string
	for i := 0; i < 9; i++ {
		var b strings.Builder
		for j := 0; j <= i*3; j++ {
			sev := models.Severities[(i+j)%len(models.Severities)]
			fmt.Fprintf(&b, `{"levelname": %q, "logger": "django.request", "path": "/api/v1/item/%d/"}`+"\n", sev, j%4)
		}
		b.WriteString("garbage\n")
		paths = append(paths, writeLogFile(t, dir, fmt.Sprintf("app-%d.log", i), b.String()))
	}

	sequential, err := newTestAggregator(1).AggregateMany(context.Background(), paths)
	require.NoError(t, err)
	concurrent, err := newTestAggregator(3).AggregateMany(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, sequential, concurrent)
	assert.Equal(t, int64(9+3*(0+1+2+3+4+5+6+7+8)), concurrent.TotalRequests())
}

func TestAggregateMany_Concurrent_PanicIsRecovered(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		writeLogFile(t, dir, "a.log", "line\n"),
		writeLogFile(t, dir, "b.log", "line\n"),
	}

	ctrl := gomock.NewController(t)
	decoder := decodermocks.NewMockLineDecoder(ctrl)
	decoder.EXPECT().Decode(gomock.Any()).
		DoAndReturn(func(string) decoders.DecodeResult { panic("decoder exploded") }).
		AnyTimes()

	aggregator := NewFileAggregator(filestorages.NewFileStorage(), decoder, classifiers.NewClassifier(), 2)
	report, err := aggregator.AggregateMany(context.Background(), paths)

	assert.Nil(t, report)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.True(t, svcErr.IsInternalError())
	assert.Equal(t, "SYS_9000", svcErr.Code)
	assert.Contains(t, svcErr.Message, "decoder exploded")
}

func TestAggregateMany_CancelledContext(t *testing.T) {
	t.Parallel()

	path := writeLogFile(t, t.TempDir(), "app.log", mixedLogContent)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 2} {
		_, err := newTestAggregator(workers).AggregateMany(ctx, []string{path, path})
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}

func TestAggregateMany_NoPaths(t *testing.T) {
	t.Parallel()

	report, err := newTestAggregator(1).AggregateMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Handlers)
}
