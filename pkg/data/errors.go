package data

import "fmt"

// UnexpectedDataTypeError is returned when the API reports a different kind
// of resource than the operation expects, such as a directory where a file
// was requested.
type UnexpectedDataTypeError struct {
	Expected string
	Actual   string
}

func (e *UnexpectedDataTypeError) Error() string {
	return fmt.Sprintf("expected data type %s, received %s", e.Expected, e.Actual)
}

// InvalidPathError is returned when an operation needs a path component the
// data URI does not have, such as the parent of a root.
type InvalidPathError struct {
	URI string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid data uri '%s'", e.URI)
}
