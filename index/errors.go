package index

import "fmt"

// NotFoundError is returned when a required single-result lookup matches
// nothing in the index.
type NotFoundError struct {
	Kind  string // "file" or "directory"
	Query string
}

func (e *NotFoundError) Error() string {
	if e.Query == "" {
		return fmt.Sprintf("no matching %s found", e.Kind)
	}
	return fmt.Sprintf("no matching %s found for %s", e.Kind, e.Query)
}

// ValidationError reports a caller mistake: an ambiguous destination, a
// malformed path, or constraints that cannot be satisfied. It is distinct
// from I/O failures so callers can map the two differently.
type ValidationError struct {
	Op     string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// IOError wraps a filesystem failure with the operation and the offending
// path. The underlying OS error is available via Unwrap.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
