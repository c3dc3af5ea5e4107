package converter

import "fmt"

// Error wraps a failure with the operation and file it happened on.
// The per-format error stays reachable through errors.As.
type Error struct {
	// Op is one of "resolve", "read", "decode", "encode", "write".
	Op string

	Path string

	// Format is zero when the failure happened before it was resolved.
	Format Format

	Err error
}

func (e *Error) Error() string {
	if e.Format == 0 {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Path, e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
