package mc

import "io"

const (
	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

// appendVarNum writes 7 bits per byte, least significant group first. Every
// byte except the last one has its continuation bit set. Values are never
// zig-zag encoded, so negative numbers always use the maximum length.
func appendVarNum(bb []byte, n uint64) []byte {
	for n >= 0x80 {
		bb = append(bb, byte(n)|0x80)
		n >>= 7
	}
	return append(bb, byte(n))
}

// readVarNum reads a varint that holds at most bits bits of data.
func readVarNum(r io.ByteReader, bits uint) (uint64, error) {
	maxLen := int(bits+6) / 7
	var n uint64
	for i := 0; ; i++ {
		if i == maxLen {
			return 0, ErrVarIntSize
		}
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		n |= uint64(b&0x7F) << (7 * uint(i))
		if b&0x80 == 0 {
			return n, nil
		}
	}
}

func varNumLen(n uint64) int {
	l := 1
	for n >= 0x80 {
		n >>= 7
		l++
	}
	return l
}

// AppendVarInt appends the varint encoding of v to bb.
func AppendVarInt(bb []byte, v int32) []byte {
	return appendVarNum(bb, uint64(uint32(v)))
}

// ReadVarInt reads a single varint. A sixth byte is never read, a fifth byte
// with its continuation bit set fails with ErrVarIntSize.
func ReadVarInt(r io.ByteReader) (int32, error) {
	n, err := readVarNum(r, 32)
	return int32(uint32(n)), err
}

// VarIntLen returns the amount of bytes needed to encode v.
func VarIntLen(v int32) int {
	return varNumLen(uint64(uint32(v)))
}

func AppendVarLong(bb []byte, v int64) []byte {
	return appendVarNum(bb, uint64(v))
}

func ReadVarLong(r io.ByteReader) (int64, error) {
	n, err := readVarNum(r, 64)
	return int64(n), err
}
