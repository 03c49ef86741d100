package models

import "strings"

type Severity string

const (
	SeverityDebug    Severity = "DEBUG"
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Severities lists the recognized buckets in column order.
var Severities = []Severity{
	SeverityDebug,
	SeverityInfo,
	SeverityWarning,
	SeverityError,
	SeverityCritical,
}

// ParseSeverity upper-cases s and maps it to one of the five buckets.
// It reports false for anything else, including the empty string.
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToUpper(s)); sev {
	case SeverityDebug, SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return sev, true
	default:
		return "", false
	}
}
