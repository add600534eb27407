package smf

import "fmt"

var headerChunkID = [4]byte{0x4D, 0x54, 0x68, 0x64} // "MThd"

// Header is the decoded MThd chunk of an SMF file.
type Header struct {
	Format    Format
	NumTracks uint16
	Timing    Timing
}

// ReadHeader reads the MThd chunk: the tag, a length that must be 6, and
// the format, track count and division fields.
func (r *Reader) ReadHeader() (Header, error) {
	tag, err := r.Split(4)
	if err != nil {
		return Header{}, fmt.Errorf("smf header: %w", err)
	}
	if [4]byte(tag) != headerChunkID {
		return Header{}, fmt.Errorf("%w: expected header chunk ID %v, got %v", ErrInvalidData, headerChunkID, tag)
	}

	size, err := r.ReadUint32()
	if err != nil {
		return Header{}, fmt.Errorf("smf header: %w", err)
	}
	if size != 6 {
		return Header{}, fmt.Errorf("%w: expected header size to be 6, was %d", ErrInvalidData, size)
	}

	var h Header
	if h.Format, err = r.ReadFormat(); err != nil {
		return Header{}, err
	}
	if h.NumTracks, err = r.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.Timing, err = r.ReadTiming(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Append appends the encoded MThd chunk to dst.
func (h Header) Append(dst []byte) []byte {
	dst = append(dst, headerChunkID[:]...)
	dst = AppendUint32(dst, 6)
	format := h.Format.Encode()
	dst = append(dst, format[:]...)
	dst = AppendUint16(dst, h.NumTracks)
	division := h.Timing.Encode()
	return append(dst, division[:]...)
}
