package common

import (
	"bytes"
	"unsafe"
)

// StringData returns a pointer to the first byte of s, or nil when s is empty.
func StringData(s string) *byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.StringData(s)
}

// SliceData returns a pointer to the first byte of b, or nil when b is empty.
func SliceData(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return unsafe.SliceData(b)
}

// Bytes aliases n bytes starting at p without copying.
// The result must be treated as read-only.
func Bytes(p *byte, n int) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

// BytesToString aliases b as a string without copying.
// b must not be modified while the string is reachable.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// TerminatorIndex returns the offset of the first zero byte in b,
// or len(b) if b holds no terminator.
func TerminatorIndex(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}
	return len(b)
}

// ScanTerminated counts the bytes from p up to the first zero byte.
// p must point into a NUL-terminated sequence.
func ScanTerminated(p *byte) int {
	if p == nil {
		return 0
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return n
}
