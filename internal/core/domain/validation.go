package domain

// ValidationError carries the reason of the first input check that failed.
// Checks are independent; callers surface exactly one reason per request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError from a reason string.
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}
