package shell

import (
	"errors"
	"fmt"
)

// ErrEOF is returned by a LineReader once its input is exhausted. It ends the
// read loop and is never shown to the user.
var ErrEOF = errors.New("EOF")

// IOError wraps a failure of the underlying input stream.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ExitError asks the caller to terminate the process with Code. Nothing in
// this package calls os.Exit itself.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode extracts the status carried by an ExitError, ok is false if err
// doesn't contain one.
func ExitCode(err error) (code int, ok bool) {
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code, true
	}
	return 0, false
}
