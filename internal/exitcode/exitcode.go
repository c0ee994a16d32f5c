// Package exitcode attaches process exit codes to errors so the command can
// decide how to exit from the error that reached it
package exitcode

import (
	"errors"
	"os"
)

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// Set marks an error with the code the process should exit with. The message
// and the wrapped chain are kept. A nil error stays nil.
func Set(err error, code int) error {
	if err == nil {
		return nil
	}
	return &codedError{err: err, code: code}
}

// Get returns 0 for nil, the outermost code given to "Set" anywhere in the
// chain, and 1 for every other error
func Get(err error) int {
	if err == nil {
		return 0
	}
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return 1
}

func Exit(err error) {
	os.Exit(Get(err))
}
