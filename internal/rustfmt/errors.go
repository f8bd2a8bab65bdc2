package rustfmt

// NotFoundError is returned when the formatter executable cannot be located.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "Could not run rustfmt, please make sure it is in your PATH."
}

// LaunchError wraps any other failure to start or wait for the formatter.
type LaunchError struct {
	Path    string
	Wrapped error
}

func (e *LaunchError) Error() string {
	return e.Wrapped.Error()
}

func (e *LaunchError) Unwrap() error {
	return e.Wrapped
}
