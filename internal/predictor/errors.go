package predictor

import (
	"errors"
	"net/http"

	"creditd/internal/credit"
)

// invalidInputError wraps a malformed request field so the HTTP layer can
// return 400 instead of 500.
type invalidInputError struct{ err error }

func (e invalidInputError) Error() string   { return "invalid input: " + e.err.Error() }
func (e invalidInputError) Unwrap() error   { return e.err }
func (e invalidInputError) StatusCode() int { return http.StatusBadRequest }

// ErrInvalidInput wraps err as an invalid input error.
func ErrInvalidInput(err error) error { return invalidInputError{err: err} }

// IsInvalidInput reports whether err was caused by a malformed request field.
func IsInvalidInput(err error) bool {
	var ie invalidInputError
	if errors.As(err, &ie) {
		return true
	}
	var fe *credit.FieldError
	return errors.As(err, &fe)
}

// inferenceError signals that the model rejected the normalized row.
type inferenceError struct {
	op  string
	err error
}

func (e inferenceError) Error() string { return e.op + ": " + e.err.Error() }
func (e inferenceError) Unwrap() error { return e.err }

// IsInference reports whether err came from the model itself.
func IsInference(err error) bool {
	var ie inferenceError
	return errors.As(err, &ie)
}
