package checker

import "fmt"

// InvalidCheckerError is returned when a scripted checker exits
// unsuccessfully or writes something on stdout this package doesn't
// recognize as ac/accepted, wa/wrong_answer, or custom:<message>.
type InvalidCheckerError struct {
	Reason string
	Output string
}

func (e *InvalidCheckerError) Error() string {
	return fmt.Sprintf("checker: %s (output: %q)", e.Reason, e.Output)
}
