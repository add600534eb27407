package smf

import "encoding/binary"

// RMID is MIDI embedded in a RIFF container. UnwrapRMID strips the RIFF
// wrapping and hands back the raw SMF bytes inside.

var (
	riffTag = [4]byte{0x52, 0x49, 0x46, 0x46} // "RIFF"
	dataTag = [4]byte{0x64, 0x61, 0x74, 0x61} // "data"
)

const rmidFormType = "RMID"

// chunkWalker iterates RIFF chunks: a 4-byte ASCII tag, a 4-byte
// little-endian length, the data, and one pad byte after odd lengths. A
// chunk declaring more data than remains consumes everything left.
type chunkWalker struct {
	buf []byte
}

func (c *chunkWalker) next() (tag [4]byte, data []byte, ok bool) {
	if len(c.buf) < 8 {
		return tag, nil, false
	}
	copy(tag[:], c.buf[:4])
	length := binary.LittleEndian.Uint32(c.buf[4:8])
	c.buf = c.buf[8:]
	if uint64(length) >= uint64(len(c.buf)) {
		data = c.buf
		c.buf = nil
		return tag, data, true
	}
	n := int(length)
	data = c.buf[:n:n]
	c.buf = c.buf[n:]
	if length%2 == 1 {
		c.buf = c.buf[1:]
	}
	return tag, data, true
}

// UnwrapRMID extracts the SMF payload of an RMID file: an outer "RIFF"
// chunk whose form type is "RMID", holding a chunk tagged "data" with the
// raw SMF bytes. The second return is false when raw is not such a file;
// callers are expected to try UnwrapRMID first and fall back to parsing
// raw as a plain SMF.
func UnwrapRMID(raw []byte) ([]byte, bool) {
	outer := chunkWalker{buf: raw}
	tag, riff, ok := outer.next()
	if !ok || tag != riffTag {
		return nil, false
	}
	if len(riff) < 4 || string(riff[:4]) != rmidFormType {
		return nil, false
	}
	inner := chunkWalker{buf: riff[4:]}
	for {
		tag, chunk, ok := inner.next()
		if !ok {
			return nil, false
		}
		if tag == dataTag {
			return chunk, true
		}
	}
}
