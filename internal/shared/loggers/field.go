package loggers

const (
	FieldApp       = "app"
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldReport    = "report"

	FieldFilePath   = "file_path"
	FieldLineNumber = "line_number"
	FieldOutcome    = "outcome"
	FieldWorkerID   = "worker_id"

	FieldDuration   = "duration"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"
)
