package aggregators

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeLogFileNotFound    = "AGG_1000"
	codeInvalidLogFilePath = "AGG_1001"

	codeInternalLogFileReadFailed = "AGG_9000"
)

// errLogFileNotFound returns an error when an input path does not exist.
func errLogFileNotFound(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeLogFileNotFound, "Log file not found: "+path, cause)
}

// errInvalidLogFilePath returns an error when an input path cannot name a file at all.
func errInvalidLogFilePath(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidLogFilePath, fmt.Sprintf("Invalid log file path: %q", path), cause)
}

// errInternalLogFileReadFailed returns an error when an input file cannot be opened or read.
func errInternalLogFileReadFailed(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogFileReadFailed, fmt.Errorf("logFileReadFailed: %s: %w", path, cause))
}
