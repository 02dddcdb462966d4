package model

import "fmt"

// InvalidInputError is raised before solving starts: by jury.Solve when
// struct-tag validation fails, and by the Input Normalizer for an inverted
// window, a malformed match, an unknown crew or team reference, or a static
// assignment that names no team playing in the window or maps to a crew id
// other than STATIC.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// RuleCompilationError reports a rule that cannot be expressed against the
// model, e.g. MaxDutiesPerPeriod with a non-positive period.
type RuleCompilationError struct {
	RuleID int
	Reason string
}

func (e *RuleCompilationError) Error() string {
	return fmt.Sprintf("rule %d cannot be compiled: %s", e.RuleID, e.Reason)
}

// InternalInvariantViolation marks a bug: a state the solver and universal
// constraints should make unreachable (e.g. zero or multiple crews assigned
// to one match in a returned solution).
type InternalInvariantViolation struct {
	Reason string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Reason)
}
