package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerStats_Total(t *testing.T) {
	t.Parallel()

	stats := &HandlerStats{
		Handler:  "/api/v1/test/",
		Debug:    1,
		Info:     2,
		Warning:  3,
		Error:    4,
		Critical: 5,
	}

	assert.Equal(t, int64(15), stats.Total())
}

func TestHandlerStats_Increment_TouchesExactlyOneBucket(t *testing.T) {
	t.Parallel()

	for _, sev := range Severities {
		t.Run(string(sev), func(t *testing.T) {
			t.Parallel()

			stats := NewHandlerStats("/api/v1/test/")
			stats.Increment(sev)

			assert.Equal(t, int64(1), stats.Total())
			for _, other := range Severities {
				expected := int64(0)
				if other == sev {
					expected = 1
				}
				assert.Equal(t, expected, stats.Count(other), "bucket %s", other)
			}
		})
	}
}

func TestHandlerStats_Increment_UnknownSeverity(t *testing.T) {
	t.Parallel()

	stats := NewHandlerStats("/api/v1/test/")
	stats.Increment(Severity("NOTICE"))

	assert.Equal(t, int64(0), stats.Total())
	assert.Equal(t, int64(0), stats.Count(Severity("NOTICE")))
}

func TestHandlerStats_Add(t *testing.T) {
	t.Parallel()

	stats := &HandlerStats{Handler: "/a/", Debug: 1, Info: 2, Warning: 3, Error: 4, Critical: 5}
	stats.Add(&HandlerStats{Handler: "/a/", Debug: 5, Info: 4, Warning: 3, Error: 2, Critical: 1})

	assert.Equal(t, HandlerStats{Handler: "/a/", Debug: 6, Info: 6, Warning: 6, Error: 6, Critical: 6}, *stats)
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Severity
		ok       bool
	}{
		{input: "DEBUG", expected: SeverityDebug, ok: true},
		{input: "info", expected: SeverityInfo, ok: true},
		{input: "Warning", expected: SeverityWarning, ok: true},
		{input: "error", expected: SeverityError, ok: true},
		{input: "CRITICAL", expected: SeverityCritical, ok: true},
		{input: "WARN", ok: false},
		{input: "FATAL", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			sev, ok := ParseSeverity(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, sev)
		})
	}
}
