package copier

import (
	"errors"

	"github.com/trim21/errgo"
)

// ErrCopyFailed is returned by every strategy when the underlying read or
// write fails. Its message carries no detail; use Detail for logs.
var ErrCopyFailed = errors.New("copy failed")

// ErrInvalidBlockSize is the cause wrapped into ErrCopyFailed when a block
// strategy is given a size below one byte or above MaxBlockSize.
var ErrInvalidBlockSize = errors.New("block size must be positive")

type copyError struct {
	cause error
	trace error
}

func (e *copyError) Error() string { return ErrCopyFailed.Error() }

func (e *copyError) Is(target error) bool { return target == ErrCopyFailed }

func (e *copyError) Unwrap() error { return e.cause }

func fail(err error, msg string) error {
	return &copyError{cause: err, trace: errgo.Wrap(err, msg)}
}

// Detail returns the wrapped cause of a copy failure for logging, or
// err.Error() for any other error.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var ce *copyError
	if errors.As(err, &ce) {
		return ce.trace.Error()
	}
	return err.Error()
}
