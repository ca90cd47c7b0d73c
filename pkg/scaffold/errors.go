package scaffold

import "fmt"

// UsageError reports input the command line cannot act on, such as a missing
// component name. Commands surface it with usage help and exit non-zero.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// FilesystemError reports a failed directory creation or file write. It keeps
// the attempted path so the message tells the user exactly where the write
// was headed.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
