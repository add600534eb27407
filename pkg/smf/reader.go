// Package smf decodes the primitive values of Standard MIDI Files:
// big-endian fixed-width integers, bit-width-restricted integers, the
// variable-length quantity used for delta times, the header fields built
// from them, and the RIFF wrapper used by RMID files.
//
// All reads happen over a Reader, a zero-copy cursor into a borrowed byte
// slice. A Reader is either lenient (out-of-range data is truncated or
// recovered) or strict (out-of-range data is an error), fixed at
// construction.
package smf

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidData reports a structural failure: not enough bytes, or an
	// unrecognized tag or code. It is returned regardless of mode.
	ErrInvalidData = errors.New("invalid midi data")
	// ErrMalformedData reports a value that is present but violates a
	// bit-width or range constraint. Only strict readers return it; lenient
	// readers recover by truncation instead.
	ErrMalformedData = errors.New("malformed midi data")
)

// Reader is a shrinking view over a borrowed byte buffer. Reads advance the
// view in place and never copy; sub-slices returned by Split alias the
// original buffer. On failure the view is left unchanged.
type Reader struct {
	buf    []byte
	strict bool
}

// NewReader returns a lenient reader over buf. The reader borrows buf; the
// caller must not mutate it while parsing.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// NewStrictReader returns a reader that rejects malformed data instead of
// recovering from it.
func NewStrictReader(buf []byte) *Reader {
	return &Reader{buf: buf, strict: true}
}

// Strict reports whether the reader rejects malformed data.
func (r *Reader) Strict() bool {
	return r.strict
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Rest returns the unread bytes without consuming them.
func (r *Reader) Rest() []byte {
	return r.buf
}

// Split consumes and returns the next n bytes. The returned slice aliases
// the underlying buffer. If fewer than n bytes remain the reader is left
// unchanged.
func (r *Reader) Split(n int) ([]byte, error) {
	if n < 0 || n > len(r.buf) {
		return nil, fmt.Errorf("%w: expected %d bytes, %d remain", ErrInvalidData, n, len(r.buf))
	}
	out := r.buf[:n:n]
	r.buf = r.buf[n:]
	return out, nil
}

// takeRest consumes and returns everything that remains.
func (r *Reader) takeRest() []byte {
	out := r.buf
	r.buf = nil
	return out
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.Split(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.Split(2)
	if err != nil {
		return 0, err
	}
	var acc uint16
	for _, byt := range b {
		acc = acc<<8 | uint16(byt)
	}
	return acc, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.Split(4)
	if err != nil {
		return 0, err
	}
	var acc uint32
	for _, byt := range b {
		acc = acc<<8 | uint32(byt)
	}
	return acc, nil
}

// AppendUint16 appends v to dst in big-endian order.
func AppendUint16(dst []byte, v uint16) []byte {
	return append(dst, byte(v>>8), byte(v))
}

// AppendUint32 appends v to dst in big-endian order.
func AppendUint32(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
