package errors

import (
	goerrors "errors"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return goerrors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return goerrors.Join(errs...)
}

// Unwrap returns the next error in err's chain, or nil.
func Unwrap(err error) error {
	return goerrors.Unwrap(err)
}
