package isolate

import "fmt"

// SandboxError wraps a failure in the launcher protocol itself (init,
// spawn, cleanup) as distinct from a non-zero exit of the supervised
// program, which is reported through RunMeta/Output instead.
type SandboxError struct {
	Op  string
	Err error
}

func (e *SandboxError) Error() string {
	return fmt.Sprintf("sandbox %s: %v", e.Op, e.Err)
}

func (e *SandboxError) Unwrap() error {
	return e.Err
}

func newSandboxError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SandboxError{Op: op, Err: err}
}
