package mc

import (
	"encoding/binary"
	"io"
	"unsafe"
)

// ByteOrder is implemented by binary.BigEndian and binary.LittleEndian.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// The protocol sends every fixed width number in network byte order.
var NetworkOrder ByteOrder = binary.BigEndian

type fixedWidth interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

func appendFixed[T fixedWidth](bb []byte, v T, order ByteOrder) []byte {
	switch unsafe.Sizeof(v) {
	case 1:
		return append(bb, byte(v))
	case 2:
		return order.AppendUint16(bb, uint16(v))
	case 4:
		return order.AppendUint32(bb, uint32(v))
	default:
		return order.AppendUint64(bb, uint64(v))
	}
}

func readFixed[T fixedWidth](r io.Reader, order ByteOrder) (T, error) {
	var v T
	var buf [8]byte
	bb := buf[:unsafe.Sizeof(v)]
	if _, err := io.ReadFull(r, bb); err != nil {
		return v, err
	}
	switch len(bb) {
	case 1:
		v = T(bb[0])
	case 2:
		v = T(order.Uint16(bb))
	case 4:
		v = T(order.Uint32(bb))
	default:
		v = T(order.Uint64(bb))
	}
	return v, nil
}
