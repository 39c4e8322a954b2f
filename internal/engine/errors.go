package engine

// Error is a failed engine invocation with its captured output
// channels. The text is kept verbatim for diagnostics.
type Error struct {
	Err    error
	Stdout string
	Stderr string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
