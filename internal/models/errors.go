// ABOUTME: Error types returned when user input fails model constraints.
// ABOUTME: ValidationError carries the offending field for callers to report.
package models

import "fmt"

// ValidationError is returned when a habit or log field violates a constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
