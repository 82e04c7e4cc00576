// Package strspan provides Span, a non-owning view over a run of bytes in
// some externally owned string-like value.
//
// A span never copies the bytes it covers. It holds a pointer to its owner
// plus two absolute offsets, and every read goes through the owner. The owner
// must outlive the span; shrinking or replacing the owner's storage while a
// span covers it is a caller error that the span reports by panicking on the
// next read when it can detect it.
package strspan

import (
	"bytes"
	"errors"
	"fmt"
	"iter"

	"github.com/rawbytedev/strspan/internal/common"
)

var (
	ErrInvalidRange = errors.New("invalid range")
	ErrOutOfRange   = errors.New("index out of range")
)

// Whole, passed as an end offset, stands for the end of the owner (or of the
// parent span). It is resolved once, when the span is built.
const Whole = 0

// Span is a view over owner's bytes in [begin, end).
// The zero Span is empty and has no owner.
type Span[T StringLike] struct {
	owner *T
	begin int
	end   int
	size  int
	limit int // owner length seen at the last bounds change

	bufferLike bool
}

// New returns a span covering all of owner.
func New[T StringLike](owner *T) Span[T] {
	n := LengthOf(*owner)
	return Span[T]{owner: owner, end: n, size: n, limit: n, bufferLike: IsBufferLike[T]()}
}

// NewRange returns a span over owner's bytes in [begin, end).
// An end of Whole means the owner's length at the time of the call.
func NewRange[T StringLike](owner *T, begin, end int) (Span[T], error) {
	s := Span[T]{owner: owner, limit: LengthOf(*owner), bufferLike: IsBufferLike[T]()}
	if end == Whole {
		end = s.limit
	}
	if err := s.setBounds(begin, end); err != nil {
		return Span[T]{}, err
	}
	return s, nil
}

// FromSpan returns a span over the same owner as parent, with offsets
// relative to parent's begin. An end of Whole keeps parent's end.
// The result may reach past parent's end but never past the owner.
func FromSpan[T StringLike](parent Span[T], relBegin, relEnd int) (Span[T], error) {
	if relBegin < 0 || relEnd < 0 {
		return Span[T]{}, fmt.Errorf("%w: relative bounds [%d, %d)", ErrInvalidRange, relBegin, relEnd)
	}
	end := parent.end
	if relEnd != Whole {
		end = parent.begin + relEnd
	}
	s := parent
	if err := s.setBounds(parent.begin+relBegin, end); err != nil {
		return Span[T]{}, err
	}
	return s, nil
}

// Slice returns the sub-span [from, to) of s. s is not modified.
func (s Span[T]) Slice(from, to int) (Span[T], error) {
	return FromSpan(s, from, to)
}

// Reassign points s at owner and resets it to cover all of owner.
func (s *Span[T]) Reassign(owner *T) {
	*s = New(owner)
}

// Assign makes s an alias of other: same owner, same bounds.
func (s *Span[T]) Assign(other Span[T]) {
	*s = other
}

// Origin returns the owner s borrows from.
func (s Span[T]) Origin() *T { return s.owner }

// Size returns the number of bytes in the span.
func (s Span[T]) Size() int { return s.size }

// Len is Size; it makes Span a StringLike owner for other spans.
func (s Span[T]) Len() int { return s.size }

// Begin returns the absolute offset of the first byte in the owner.
func (s Span[T]) Begin() int { return s.begin }

// End returns the absolute offset one past the last byte in the owner.
func (s Span[T]) End() int { return s.end }

// IsEmpty reports whether the span covers no bytes.
func (s Span[T]) IsEmpty() bool { return s.size == 0 }

// Data returns a pointer to the first byte of the span, nil when empty.
func (s Span[T]) Data() *byte {
	if b := s.bytes(); len(b) > 0 {
		return &b[0]
	}
	return nil
}

// At returns the i-th byte of the span. It panics with ErrOutOfRange when i
// is outside [0, Size()).
func (s Span[T]) At(i int) byte {
	if i < 0 || i >= s.size {
		panic(fmt.Errorf("%w: %d with size %d", ErrOutOfRange, i, s.size))
	}
	return s.bytes()[i]
}

// All yields each byte of the span with its position relative to Begin.
func (s Span[T]) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i, c := range s.bytes() {
			if !yield(i, c) {
				return
			}
		}
	}
}

// View returns the span's bytes as a string that aliases the owner.
// The string is only valid while the owner is alive and unmodified.
func (s Span[T]) View() string {
	return common.BytesToString(s.bytes())
}

// String returns a newly allocated copy of the span's bytes.
func (s Span[T]) String() string {
	return string(s.bytes())
}

// Bytes returns a newly allocated copy of the span's bytes.
func (s Span[T]) Bytes() []byte {
	return bytes.Clone(s.bytes())
}

// Equal reports whether other holds the same bytes as s.
// A nil other, including a typed nil pointer, is never equal.
func (s Span[T]) Equal(other StringLike) bool {
	if isNil(other) {
		return false
	}
	if _, ok := other.(spanView); ok && other.Len() == s.size {
		if s.size == 0 || other.Data() == s.Data() {
			return true
		}
	}
	n := LengthOf(other)
	if n != s.size {
		return false
	}
	return s.View() == common.BytesToString(common.Bytes(other.Data(), n))
}

// EqualString reports whether s holds exactly the bytes of str.
func (s Span[T]) EqualString(str string) bool {
	return s.View() == str
}

// Equal reports whether a and b hold the same bytes.
func Equal(a, b StringLike) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	n := LengthOf(a)
	if n != LengthOf(b) {
		return false
	}
	return common.BytesToString(common.Bytes(a.Data(), n)) == common.BytesToString(common.Bytes(b.Data(), n))
}

// SetBeginIndex moves the absolute begin offset to i.
func (s *Span[T]) SetBeginIndex(i int) error {
	return s.SetBounds(i, s.end)
}

// SetEndIndex moves the absolute end offset to i.
func (s *Span[T]) SetEndIndex(i int) error {
	return s.SetBounds(s.begin, i)
}

// SetBounds replaces both absolute offsets. The owner's length is read
// again, so a span over a grown owner can be widened. On error s is left
// unchanged.
func (s *Span[T]) SetBounds(begin, end int) error {
	if s.owner == nil {
		return fmt.Errorf("%w: span has no owner", ErrInvalidRange)
	}
	next := *s
	next.limit = LengthOf(*s.owner)
	if err := next.setBounds(begin, end); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *Span[T]) setBounds(begin, end int) error {
	if begin < 0 || begin > end || end > s.limit {
		return fmt.Errorf("%w: [%d, %d) of %d", ErrInvalidRange, begin, end, s.limit)
	}
	s.begin, s.end, s.size = begin, end, end-begin
	return nil
}

// spanView marks spans for the identity shortcut in Equal.
type spanView interface {
	isSpan()
}

func (Span[T]) isSpan() {}

// ownerLen is the owner length reads are checked against. Buffer-like owners
// use the cached length to avoid a scan per read, capped by the owner's
// bound when it has one.
func (s Span[T]) ownerLen() int {
	if s.owner == nil {
		return 0
	}
	if !s.bufferLike {
		return (*s.owner).Len()
	}
	n := s.limit
	if b, ok := any(s.owner).(bounded); ok {
		n = min(n, b.bound())
	}
	return n
}

func (s Span[T]) bytes() []byte {
	if s.size == 0 {
		return nil
	}
	if n := s.ownerLen(); s.end > n {
		panic(fmt.Errorf("%w: span [%d, %d) outlives owner of length %d", ErrOutOfRange, s.begin, s.end, n))
	}
	return common.Bytes((*s.owner).Data(), s.end)[s.begin:s.end]
}
