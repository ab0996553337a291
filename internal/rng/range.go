// Package rng defines the half-open byte ranges the action tree operates
// over: source offsets, range geometry, and the predicates the combine
// algorithm needs (strict containment, disjointness, join).
package rng

import "fmt"

// Offset is a byte index into a UTF-8 source buffer.
type Offset int

// IsValid reports whether the offset is non-negative.
func (o Offset) IsValid() bool {
	return o >= 0
}

// Range is a half-open byte interval [Begin, End) over a source buffer.
type Range struct {
	Begin Offset // inclusive
	End   Offset // exclusive
}

// New constructs a validated range.
func New(begin, end Offset) (Range, error) {
	r := Range{Begin: begin, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Point returns the zero-length range at off.
func Point(off Offset) Range {
	return Range{Begin: off, End: off}
}

// Validate reports an error if the range bounds are malformed.
func (r Range) Validate() error {
	if !r.Begin.IsValid() {
		return fmt.Errorf("invalid range begin: %d", r.Begin)
	}
	if !r.End.IsValid() {
		return fmt.Errorf("invalid range end: %d", r.End)
	}
	if r.End < r.Begin {
		return fmt.Errorf("invalid range bounds: end (%d) < begin (%d)", r.End, r.Begin)
	}
	return nil
}

// IsValid reports whether the range bounds are well-formed.
func (r Range) IsValid() bool {
	return r.Begin.IsValid() && r.End.IsValid() && r.End >= r.Begin
}

// Empty reports whether the range covers zero bytes.
func (r Range) Empty() bool {
	return r.Begin == r.End
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() Offset {
	return r.End - r.Begin
}

// BeginOnly returns the zero-length range at r.Begin.
func (r Range) BeginOnly() Range {
	return Point(r.Begin)
}

// EndOnly returns the zero-length range at r.End.
func (r Range) EndOnly() Range {
	return Point(r.End)
}

// Equal reports whether r and other cover the same bytes.
func (r Range) Equal(other Range) bool {
	return r.Begin == other.Begin && r.End == other.End
}

// Contains reports whether other is strictly contained within r: every
// byte of other lies within r, and the two ranges are not equal. Equal
// ranges are not "contained" — they collapse into the same node instead.
// An empty other sitting exactly at r.Begin or r.End only touches r, the
// same boundary-touch Disjoint treats as not overlapping, so it is not
// contained either.
func (r Range) Contains(other Range) bool {
	if r.Equal(other) {
		return false
	}
	if other.Begin < r.Begin || other.End > r.End {
		return false
	}
	if other.Empty() && (other.Begin == r.Begin || other.Begin == r.End) {
		return false
	}
	return true
}

// Disjoint reports whether r and other share no byte. An empty range at
// position p is disjoint from any range that does not strictly straddle
// p — touching at a boundary counts as disjoint.
func (r Range) Disjoint(other Range) bool {
	return r.End <= other.Begin || other.End <= r.Begin
}

// Join returns the smallest range covering both r and other.
func (r Range) Join(other Range) Range {
	begin := r.Begin
	if other.Begin < begin {
		begin = other.Begin
	}
	end := r.End
	if other.End > end {
		end = other.End
	}
	return Range{Begin: begin, End: end}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Begin, r.End)
}
