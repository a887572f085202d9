package model

import (
	"errors"
	"fmt"
)

// ErrColumnMismatch means the row's column names or order differ from the
// features the pipeline was trained on.
var ErrColumnMismatch = errors.New("column mismatch")

// ErrUnknownCategory is returned for unseen categories when the step is
// configured with handle_unknown=error.
var ErrUnknownCategory = errors.New("unknown category")

// TypeError reports a row value of the wrong type for its column.
type TypeError struct {
	Column string
	Want   ColumnKind
	Got    any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("column %s: want %s value, got %T", e.Column, e.Want, e.Got)
}
