// Package garden holds the domain model shared by every component of
// the urban-garden layout optimizer: catalogue species, compatibility
// entries, placed plant instances, candidate layouts ("individuals")
// and their quality metrics.
package garden

import "github.com/pkg/errors"

// ValidationError marks a malformed inbound request. Surfaced
// synchronously by the orchestrator; callers should treat it as
// 400-class.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Field + ": " + e.Reason
}

// NewValidationError wraps a field/reason pair into a *ValidationError.
func NewValidationError(field, reason string) error {
	return errors.WithStack(&ValidationError{Field: field, Reason: reason})
}

// CatalogueError marks the catalogue or compatibility index being
// unavailable or internally inconsistent (duplicate species, empty
// type tags). Fatal at startup; request-fatal if raised later.
type CatalogueError struct {
	Reason string
}

func (e *CatalogueError) Error() string {
	return "catalogue: " + e.Reason
}

// NewCatalogueError wraps a reason into a *CatalogueError.
func NewCatalogueError(reason string) error {
	return errors.WithStack(&CatalogueError{Reason: reason})
}

// EvaluationError marks a metric invariant violation: a sub-score
// outside [0, 1] or an objective weight row that doesn't sum to 1.
// This is an internal bug, surfaced as 500-class.
type EvaluationError struct {
	Metric string
	Reason string
}

func (e *EvaluationError) Error() string {
	return "evaluation: " + e.Metric + ": " + e.Reason
}

// NewEvaluationError wraps a metric/reason pair into an *EvaluationError.
func NewEvaluationError(metric, reason string) error {
	return errors.WithStack(&EvaluationError{Metric: metric, Reason: reason})
}

// StoppingReason records why the genetic algorithm stopped. It is not
// an error: TimeoutReached and friends are surfaced through this type,
// never as a returned error, and the response still carries the best
// individuals found so far.
type StoppingReason string

const (
	StoppingTimeout        StoppingReason = "timeout"
	StoppingPatience       StoppingReason = "patience"
	StoppingConvergence    StoppingReason = "convergence"
	StoppingMaxGenerations StoppingReason = "max_generations"
)
