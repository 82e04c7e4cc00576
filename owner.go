package strspan

import (
	"reflect"

	"github.com/rawbytedev/strspan/internal/common"
)

// StringLike is implemented by every value a Span can borrow from.
//
// Len reports the number of bytes in the value and Data points at the first
// of them. Data may return nil when Len is zero. The bytes behind Data must
// stay contiguous and unmodified for as long as a span reads them.
//
// Span itself is StringLike, so spans can wrap spans. Custom types opt in by
// implementing both methods.
type StringLike interface {
	Len() int
	Data() *byte
}

// BufferLike marks owners that have no stored length. Their Len scans
// forward for the first zero byte, so it costs O(n) per call.
type BufferLike interface {
	StringLike
	Terminated()
}

// LengthOf returns the number of bytes in owner.
func LengthOf[T StringLike](owner T) int {
	return owner.Len()
}

// IsBufferLike reports whether owners of type T compute their length by
// scanning for a terminator.
func IsBufferLike[T StringLike]() bool {
	var zero T
	_, ok := any(zero).(BufferLike)
	return ok
}

// bounded is implemented by buffer-like owners that know, in O(1), how many
// bytes are safe to read regardless of where the terminator sits.
type bounded interface {
	bound() int
}

// isNil reports whether v is nil or holds a nil pointer.
func isNil(v StringLike) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// String is an immutable Go string used as an owner.
type String string

func (s String) Len() int    { return len(s) }
func (s String) Data() *byte { return common.StringData(string(s)) }

// Bytes is a growable byte buffer used as an owner. Spans see writes to
// existing elements but never grow when the buffer is appended to.
type Bytes []byte

func (b Bytes) Len() int    { return len(b) }
func (b Bytes) Data() *byte { return common.SliceData(b) }

// CBuf is a fixed-size, NUL-terminated character array, typically arr[:]
// of a [N]byte. Its length ends at the first zero byte. A buffer without a
// terminator is treated as ending at len(b).
type CBuf []byte

func (b CBuf) Len() int    { return common.TerminatorIndex(b) }
func (b CBuf) Data() *byte { return common.SliceData(b) }
func (CBuf) Terminated()   {}
func (b CBuf) bound() int  { return len(b) }

// CStr is a raw pointer to a NUL-terminated character sequence, such as a
// C string received over cgo. The memory must stay terminated and alive
// while any span reads it; spans over a CStr check reads only against the
// length scanned at their last bounds change.
type CStr struct {
	p *byte
}

// CStrOf wraps p. A nil p is an empty string.
func CStrOf(p *byte) CStr {
	return CStr{p: p}
}

func (c CStr) Len() int    { return common.ScanTerminated(c.p) }
func (c CStr) Data() *byte { return c.p }
func (CStr) Terminated()   {}
