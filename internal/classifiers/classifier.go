package classifiers

import (
	"log-analyzer/internal/models"
)

// RequestLogger is the only event source the analyzer counts.
const RequestLogger = "django.request"

// Outcome tells the aggregator what to do with one decoded record.
type Outcome string

const (
	// OutcomeDropped records are ignored entirely.
	OutcomeDropped Outcome = "dropped"
	// OutcomeUnclassified records create the endpoint entry without counting a request.
	OutcomeUnclassified Outcome = "unclassified"
	// OutcomeClassified records count one request in the Severity bucket of Endpoint.
	OutcomeClassified Outcome = "classified"
)

type Classification struct {
	Outcome  Outcome
	Endpoint string
	Severity models.Severity
}

//go:generate mockgen -source=classifier.go -destination=./mocks/classifier_mock.go -package=mocks
type Classifier interface {
	Classify(record models.FieldRecord) Classification
}

type classifier struct{}

func NewClassifier() Classifier {
	return &classifier{}
}

func (c *classifier) Classify(record models.FieldRecord) Classification {
	logger, _ := record.Get(models.FieldLogger)
	path, _ := record.Get(models.FieldPath)
	if logger != RequestLogger || path == "" {
		return Classification{Outcome: OutcomeDropped}
	}

	level, _ := record.Get(models.FieldLevelName)
	severity, ok := models.ParseSeverity(level)
	if !ok {
		return Classification{Outcome: OutcomeUnclassified, Endpoint: path}
	}

	return Classification{Outcome: OutcomeClassified, Endpoint: path, Severity: severity}
}
