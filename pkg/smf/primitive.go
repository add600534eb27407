package smf

import "fmt"

// Restricted integers: values guaranteed to fit in fewer bits than their
// native width. Each width has a truncating constructor (NewUintN, keeps
// the low N bits, always succeeds) and a validating one (CheckedUintN,
// fails when any discarded bit is set).

type Uint2 uint8
type Uint4 uint8
type Uint7 uint8
type Uint14 uint16
type Uint15 uint16
type Uint24 uint32

// Uint28 is referred to in the MIDI spec as a "variable length int".
type Uint28 uint32

func NewUint2(v uint8) Uint2    { return Uint2(v & 0x03) }
func NewUint4(v uint8) Uint4    { return Uint4(v & 0x0F) }
func NewUint7(v uint8) Uint7    { return Uint7(v & 0x7F) }
func NewUint14(v uint16) Uint14 { return Uint14(v & 0x3FFF) }
func NewUint15(v uint16) Uint15 { return Uint15(v & 0x7FFF) }
func NewUint24(v uint32) Uint24 { return Uint24(v & 0xFFFFFF) }
func NewUint28(v uint32) Uint28 { return Uint28(v & 0xFFFFFFF) }

func checkWidth(v uint32, bits uint) error {
	if v>>bits != 0 {
		return fmt.Errorf("%w: value %d exceeds %d bits", ErrMalformedData, v, bits)
	}
	return nil
}

func CheckedUint2(v uint8) (Uint2, error) {
	return Uint2(v), checkWidth(uint32(v), 2)
}

func CheckedUint4(v uint8) (Uint4, error) {
	return Uint4(v), checkWidth(uint32(v), 4)
}

func CheckedUint7(v uint8) (Uint7, error) {
	return Uint7(v), checkWidth(uint32(v), 7)
}

func CheckedUint14(v uint16) (Uint14, error) {
	return Uint14(v), checkWidth(uint32(v), 14)
}

func CheckedUint15(v uint16) (Uint15, error) {
	return Uint15(v), checkWidth(uint32(v), 15)
}

func CheckedUint24(v uint32) (Uint24, error) {
	return Uint24(v), checkWidth(v, 24)
}

func CheckedUint28(v uint32) (Uint28, error) {
	return Uint28(v), checkWidth(v, 28)
}

func (v Uint2) Uint8() uint8    { return uint8(v) }
func (v Uint4) Uint8() uint8    { return uint8(v) }
func (v Uint7) Uint8() uint8    { return uint8(v) }
func (v Uint14) Uint16() uint16 { return uint16(v) }
func (v Uint15) Uint16() uint16 { return uint16(v) }
func (v Uint24) Uint32() uint32 { return uint32(v) }
func (v Uint28) Uint32() uint32 { return uint32(v) }

// ReadUint2 reads a full byte and restricts it to 2 bits.
func (r *Reader) ReadUint2() (Uint2, error) {
	raw, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if r.strict {
		return CheckedUint2(raw)
	}
	return NewUint2(raw), nil
}

// ReadUint4 reads a full byte and restricts it to 4 bits.
func (r *Reader) ReadUint4() (Uint4, error) {
	raw, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if r.strict {
		return CheckedUint4(raw)
	}
	return NewUint4(raw), nil
}

// ReadUint7 reads a full byte and restricts it to 7 bits.
func (r *Reader) ReadUint7() (Uint7, error) {
	raw, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if r.strict {
		return CheckedUint7(raw)
	}
	return NewUint7(raw), nil
}

// ReadUint14 reads a big-endian uint16 and restricts it to 14 bits.
func (r *Reader) ReadUint14() (Uint14, error) {
	raw, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	if r.strict {
		return CheckedUint14(raw)
	}
	return NewUint14(raw), nil
}

// ReadUint15 reads a big-endian uint16 and restricts it to 15 bits.
func (r *Reader) ReadUint15() (Uint15, error) {
	raw, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	if r.strict {
		return CheckedUint15(raw)
	}
	return NewUint15(raw), nil
}

// ReadUint24 reads a 3-byte big-endian integer. The value always fits in
// 24 bits, so no mode distinction applies.
func (r *Reader) ReadUint24() (Uint24, error) {
	b, err := r.Split(3)
	if err != nil {
		return 0, err
	}
	var acc uint32
	for _, byt := range b {
		acc = acc<<8 | uint32(byt)
	}
	return NewUint24(acc), nil
}

// ReadUint14Packed reads a 14-bit integer stored as two bytes holding 7
// bits each, most significant group first. The top bit of each byte is
// padding; a strict reader rejects it if set, a lenient one masks it off.
func (r *Reader) ReadUint14Packed() (Uint14, error) {
	b, err := r.Split(2)
	if err != nil {
		return 0, err
	}
	var acc uint16
	for _, byt := range b {
		if r.strict && byt&0x80 != 0 {
			return 0, fmt.Errorf("%w: byte with top bit set in 7-bit packed integer", ErrMalformedData)
		}
		acc = acc<<7 | uint16(byt&0x7F)
	}
	// two 7-bit groups can never exceed 14 bits
	return NewUint14(acc), nil
}

// ReadVarLen reads a variable-length quantity: one to four bytes carrying
// 7 payload bits each, terminated by a byte with a clear top bit. A strict
// reader fails on a truncated or over-long encoding; a lenient reader
// returns the bits accumulated so far.
func (r *Reader) ReadVarLen() (Uint28, error) {
	var acc uint32
	for i := 0; i < 4; i++ {
		b, err := r.ReadUint8()
		if err != nil {
			if r.strict {
				return 0, fmt.Errorf("%w: unexpected eof while reading varlen int", ErrMalformedData)
			}
			return NewUint28(acc), nil
		}
		acc = acc<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			// at most 4 reads of 7 bits each, so acc fits in 28 bits
			return NewUint28(acc), nil
		}
	}
	if r.strict {
		return 0, fmt.Errorf("%w: varlen integer larger than 4 bytes", ErrMalformedData)
	}
	return NewUint28(acc), nil
}

// AppendVarLen appends the canonical encoding of v: 7-bit groups most
// significant first, leading all-zero groups omitted, continuation bit set
// on every byte but the last. Zero encodes as the single byte 0x00.
func AppendVarLen(dst []byte, v Uint28) []byte {
	n := v.Uint32()
	skipping := true
	for i := 3; i >= 0; i-- {
		b := byte(n>>(uint(i)*7)) & 0x7F
		if skipping && b == 0 && i != 0 {
			continue
		}
		skipping = false
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// ReadVarLenSlice reads a varlen length followed by that many raw bytes.
// If the buffer holds fewer bytes than declared, a strict reader fails and
// a lenient one returns the bytes that remain.
func (r *Reader) ReadVarLenSlice() ([]byte, error) {
	length, err := r.ReadVarLen()
	if err != nil {
		return nil, fmt.Errorf("varlen slice length: %w", err)
	}
	slice, err := r.Split(int(length.Uint32()))
	if err != nil {
		if r.strict {
			return nil, fmt.Errorf("%w: incomplete varlen slice", ErrMalformedData)
		}
		return r.takeRest(), nil
	}
	return slice, nil
}

// AppendVarLenSlice appends the length of slice as a varlen quantity
// followed by the raw bytes. Fails if the length does not fit in 28 bits.
func AppendVarLenSlice(dst []byte, slice []byte) ([]byte, error) {
	if uint64(len(slice)) > 0xFFFFFFF {
		return nil, fmt.Errorf("%w: slice length exceeds 28 bits", ErrInvalidData)
	}
	dst = AppendVarLen(dst, Uint28(len(slice)))
	return append(dst, slice...), nil
}
