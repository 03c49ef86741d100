package models

// HandlerStats holds the severity counters of a single endpoint.
// Counters only ever grow; Total is derived on every call.
type HandlerStats struct {
	Handler  string `json:"handler"`
	Debug    int64  `json:"debug"`
	Info     int64  `json:"info"`
	Warning  int64  `json:"warning"`
	Error    int64  `json:"error"`
	Critical int64  `json:"critical"`
}

func NewHandlerStats(handler string) *HandlerStats {
	return &HandlerStats{Handler: handler}
}

// Total returns the number of requests across all five buckets.
func (s *HandlerStats) Total() int64 {
	return s.Debug + s.Info + s.Warning + s.Error + s.Critical
}

// Increment adds one to the bucket of sev. Unknown severities are ignored.
func (s *HandlerStats) Increment(sev Severity) {
	if counter := s.counter(sev); counter != nil {
		*counter++
	}
}

// Count returns the counter of sev, zero for unknown severities.
func (s *HandlerStats) Count(sev Severity) int64 {
	if counter := s.counter(sev); counter != nil {
		return *counter
	}
	return 0
}

// Add accumulates other's counters into s component-wise.
func (s *HandlerStats) Add(other *HandlerStats) {
	s.Debug += other.Debug
	s.Info += other.Info
	s.Warning += other.Warning
	s.Error += other.Error
	s.Critical += other.Critical
}

func (s *HandlerStats) counter(sev Severity) *int64 {
	switch sev {
	case SeverityDebug:
		return &s.Debug
	case SeverityInfo:
		return &s.Info
	case SeverityWarning:
		return &s.Warning
	case SeverityError:
		return &s.Error
	case SeverityCritical:
		return &s.Critical
	default:
		return nil
	}
}
