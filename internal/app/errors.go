package app

import "fmt"

// ExitError carries a non-zero rustfmt exit code. rustfmt has already
// reported the problem, so it is never printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("rustfmt exited with status %d", e.Code)
}
