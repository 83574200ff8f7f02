// Package values contains the raw value and union types used by the schema model.
package values

// EitherValue represents a union type that holds either a Left or a Right value, never both.
// It provides multiple access patterns for different use cases:
//
// Constructors (NewLeft, NewRight) - for building a value with exactly one side set
// Pointer access (GetLeft, GetRight) - for nil-safe pointer retrieval
// Value access (LeftValue, RightValue) - for nil-safe value retrieval with zero value fallback
type EitherValue[L any, R any] struct {
	left  *L
	right *R
}

// NewLeft returns an EitherValue holding the left value.
func NewLeft[L any, R any](l *L) *EitherValue[L, R] {
	return &EitherValue[L, R]{left: l}
}

// NewRight returns an EitherValue holding the right value.
func NewRight[L any, R any](r *R) *EitherValue[L, R] {
	return &EitherValue[L, R]{right: r}
}

// IsLeft returns true if the EitherValue contains a left value.
func (e *EitherValue[L, R]) IsLeft() bool {
	return e != nil && e.left != nil
}

// GetLeft returns a pointer to the left value in a nil-safe way.
func (e *EitherValue[L, R]) GetLeft() *L {
	if e == nil {
		return nil
	}

	return e.left
}

// LeftValue returns the left value directly, with zero value fallback for safety.
func (e *EitherValue[L, R]) LeftValue() L {
	if e == nil || e.left == nil {
		var zero L
		return zero
	}

	return *e.left
}

// IsRight returns true if the EitherValue contains a right value.
func (e *EitherValue[L, R]) IsRight() bool {
	return e != nil && e.right != nil
}

// GetRight returns a pointer to the right value in a nil-safe way.
func (e *EitherValue[L, R]) GetRight() *R {
	if e == nil {
		return nil
	}

	return e.right
}

// RightValue returns the right value directly, with zero value fallback for safety.
func (e *EitherValue[L, R]) RightValue() R {
	if e == nil || e.right == nil {
		var zero R
		return zero
	}

	return *e.right
}
