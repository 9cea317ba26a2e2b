package batch

import "fmt"

// UsageError marks a validation failure or pre-existing-state conflict that
// should surface as exit code 2 rather than an internal failure.
type UsageError struct{ msg string }

func (e *UsageError) Error() string { return e.msg }

// Usagef builds a UsageError with fmt semantics.
func Usagef(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}
