package models

// Field names produced by the line decoder.
const (
	FieldTimestamp = "timestamp"
	FieldLevelName = "levelname"
	FieldLogger    = "logger"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldMessage   = "message"
	FieldIP        = "ip"
)

// FieldRecord is the flat field-name to value view of one decoded log line.
// It lives only for the duration of one line.
type FieldRecord map[string]string

func (r FieldRecord) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}
