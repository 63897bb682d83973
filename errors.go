package glx

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrEnvironment marks environment faults: native-subsystem
	// failures on paths with no defined recovery (context creation,
	// detachment and destruction). The process-level entry point is
	// expected to terminate on this kind; the library itself never
	// aborts. Test with errors.Is or IsFault.
	ErrEnvironment = errors.New("glx: environment fault")

	// ErrContextDestroyed is returned when a destroyed context is used.
	ErrContextDestroyed = errors.New("glx: context destroyed")
)

// faultError wraps a native failure as an environment fault while
// keeping the cause chain intact.
type faultError struct {
	op  string
	err error
}

func (e *faultError) Error() string {
	return fmt.Sprintf("glx: environment fault: %s: %v", e.op, e.err)
}

func (e *faultError) Unwrap() error { return e.err }

func (e *faultError) Is(target error) bool { return target == ErrEnvironment }

// fault marks err as an environment fault occurring during op.
func fault(op string, err error) error {
	return &faultError{op: op, err: err}
}

// IsFault reports whether err is an environment fault, the error kind
// callers are expected to terminate on rather than retry.
func IsFault(err error) bool {
	return errors.Is(err, ErrEnvironment)
}
