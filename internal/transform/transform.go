package transform

import (
	"fmt"

	"github.com/expenso/itr/internal/domain"
)

// InputTransform defines the interface for all what-if transformations.
// Transforms are composable operations that modify a tax input in predictable
// ways, so one input can be estimated against variations of itself.
type InputTransform interface {
	// Apply returns a modified copy of base; base itself is never changed.
	Apply(base domain.TaxInput) (domain.TaxInput, error)

	// Name returns a short identifier for this transform (e.g., "add_deduction").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the parameters against base without applying the transform.
	Validate(base domain.TaxInput) error
}

// ApplyTransforms applies a sequence of transforms to a base input.
// Each transform receives the output of the previous one.
func ApplyTransforms(base domain.TaxInput, transforms []InputTransform) (domain.TaxInput, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe returns the descriptions of transforms in order
func Describe(transforms []InputTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		out = append(out, t.Description())
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
