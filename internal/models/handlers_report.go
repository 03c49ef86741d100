package models

import "sort"

// HandlersReport is the per-endpoint aggregate built from request logs.
//
// One report is built per input file and then folded into a combined report with Merge.
// Map order carries no meaning; use SortedHandlers for any output.
//
// Example JSON:
//
//	{
//	  "handlers": {
//	    "/api/v1/products/": {"handler": "/api/v1/products/", "debug": 0, "info": 12, "warning": 1, "error": 0, "critical": 0},
//	    "/admin/login/":     {"handler": "/admin/login/", "debug": 0, "info": 3, "warning": 0, "error": 2, "critical": 0}
//	  }
//	}
type HandlersReport struct {
	Handlers map[string]*HandlerStats `json:"handlers"`
}

func NewHandlersReport() *HandlersReport {
	return &HandlersReport{Handlers: make(map[string]*HandlerStats)}
}

// Touch returns the stats of handler, creating a zero entry when absent.
func (r *HandlersReport) Touch(handler string) *HandlerStats {
	stats, ok := r.Handlers[handler]
	if !ok {
		stats = NewHandlerStats(handler)
		r.Handlers[handler] = stats
	}
	return stats
}

// Record counts one request of severity sev for handler.
func (r *HandlersReport) Record(handler string, sev Severity) {
	r.Touch(handler).Increment(sev)
}

// Merge adds every counter of other into r, creating missing handlers.
// Merge is commutative and associative, so the order in which per-file
// reports are folded never changes the result. other is left untouched.
func (r *HandlersReport) Merge(other *HandlersReport) {
	for handler, stats := range other.Handlers {
		r.Touch(handler).Add(stats)
	}
}

// TotalRequests returns the sum of all handlers' totals.
func (r *HandlersReport) TotalRequests() int64 {
	var total int64
	for _, stats := range r.Handlers {
		total += stats.Total()
	}
	return total
}

// Totals returns the column-wise sums over all handlers with an empty handler name.
func (r *HandlersReport) Totals() HandlerStats {
	var totals HandlerStats
	for _, stats := range r.Handlers {
		totals.Add(stats)
	}
	return totals
}

// SortedHandlers returns the handlers in ascending order of their name.
func (r *HandlersReport) SortedHandlers() []*HandlerStats {
	sorted := make([]*HandlerStats, 0, len(r.Handlers))
	for _, stats := range r.Handlers {
		sorted = append(sorted, stats)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Handler < sorted[j].Handler
	})
	return sorted
}
