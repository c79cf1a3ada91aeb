package models

// ValidationError rejects a whole import file with no side effects.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid product file: " + e.Reason
}
