package reports

import (
	"errors"
	"fmt"
	"sort"

	"log-analyzer/internal/aggregators"
)

var ErrUnknownReport = errors.New("unknown report type")

// Factory builds a report reading its input through aggregator.
type Factory func(aggregator aggregators.FileAggregator) Report

// Registry maps report names to their factories. It is filled once at startup and only
// read afterwards.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding every built-in report.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(HandlersReportName, func(aggregator aggregators.FileAggregator) Report {
		return NewHandlersReport(aggregator, NewHandlersTextFormatter())
	})
	return registry
}

// Register adds or replaces the factory of name.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Get returns a new instance of the report registered as name.
func (r *Registry) Get(name string, aggregator aggregators.FileAggregator) (Report, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownReport, name, r.Names())
	}
	return factory(aggregator), nil
}

// Names returns the registered report names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
