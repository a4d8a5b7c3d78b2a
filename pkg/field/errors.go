package field

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFieldOperation marks programming-contract violations such as inverting
	// zero or mixing elements of different fields.
	ErrInvalidFieldOperation = errors.New("invalid field operation")

	// ErrSingularSystem is returned by SolveLinearSystem when the matrix has no
	// unique solution.
	ErrSingularSystem = errors.New("singular linear system")

	// ErrDimension marks mismatched matrix and vector sizes.
	ErrDimension = errors.New("dimension mismatch")

	ErrInvalidModulus = errors.New("invalid modulus")
	ErrNotPrime       = errors.New("modulus is not prime")
)

// NoInverseError is returned when an element has no multiplicative inverse.
type NoInverseError struct {
	Value Element
	Prime uint64
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("%d has no inverse modulo %d", e.Value, e.Prime)
}

func (e *NoInverseError) Unwrap() error {
	return ErrInvalidFieldOperation
}

// SingularSystemError reports the first column without a usable pivot.
type SingularSystemError struct {
	Column int
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("singular linear system: no pivot in column %d", e.Column)
}

func (e *SingularSystemError) Unwrap() error {
	return ErrSingularSystem
}

// DimensionError reports a malformed input to the linear solver.
type DimensionError struct {
	Rows, Cols, RHS int
	Row             int // offending row, -1 when the row count itself is wrong
}

func (e *DimensionError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("dimension mismatch: row %d has %d columns, want %d", e.Row, e.Cols, e.Rows)
	}
	return fmt.Sprintf("dimension mismatch: %d rows with right-hand side of length %d", e.Rows, e.RHS)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimension
}

// FieldMismatchError is raised (as a panic value) when two operands belong to
// different fields.
type FieldMismatchError struct {
	Left, Right PrimeField
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("field mismatch: %s vs %s", e.Left, e.Right)
}

func (e *FieldMismatchError) Unwrap() error {
	return ErrInvalidFieldOperation
}

// MustMatch panics with a *FieldMismatchError unless a and b are the same field.
func MustMatch(a, b PrimeField) {
	if !a.Equal(b) {
		panic(&FieldMismatchError{Left: a, Right: b})
	}
}
