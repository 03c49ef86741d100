package exporters

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeInternalCSVWriteFailed  = "EXP_9000"
	codeInternalCSVEncodeFailed = "EXP_9001"
)

// errInternalCSVWriteFailed returns an error when the CSV file cannot be published.
func errInternalCSVWriteFailed(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCSVWriteFailed, fmt.Errorf("csvWriteFailed: %s: %w", path, cause))
}

// errInternalCSVEncodeFailed returns an error when rows cannot be encoded as CSV.
func errInternalCSVEncodeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCSVEncodeFailed, fmt.Errorf("csvEncodeFailed: %w", cause))
}
