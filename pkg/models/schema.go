package models

import "fmt"

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidateSpec checks the minimal structural requirements the transform engine
// relies on. Props maps may be nil; the engine treats that as "no requirements
// declared".
func ValidateSpec(spec *Spec) error {
	if spec == nil {
		return &ValidationError{
			Field:   "spec",
			Message: "spec cannot be nil",
		}
	}

	for i, c := range spec.Components {
		if c.Type == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("components[%d].type", i),
				Message: "component type is required",
			}
		}
	}

	return nil
}
