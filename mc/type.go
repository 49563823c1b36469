package mc

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// MaxStringLength is the byte limit used when a string field has no
// tighter limit of its own.
const MaxStringLength = 32767 * 3

// A Field is both FieldEncoder and FieldDecoder
type Field interface {
	FieldEncoder
	FieldDecoder
}

// A FieldEncoder can be encode as minecraft protocol used.
type FieldEncoder interface {
	Encode() []byte
}

// A FieldDecoder can Decode from minecraft protocol
type FieldDecoder interface {
	Decode(r DecodeReader) error
}

// DecodeReader is both io.Reader and io.ByteReader
type DecodeReader interface {
	io.ByteReader
	io.Reader
}

type (
	// Boolean is a single byte, anything other than zero is true
	Boolean bool
	// Byte is signed 8-bit integer, two's complement
	Byte int8
	// UnsignedByte is unsigned 8-bit integer
	UnsignedByte uint8
	// Short is signed 16-bit integer, two's complement
	Short int16
	// UnsignedShort is unsigned 16-bit integer
	UnsignedShort uint16
	// Int is signed 32-bit integer, two's complement
	Int int32
	// Long is signed 64-bit integer, two's complement
	Long int64
	// Float is a single-precision 32-bit IEEE 754 floating point number
	Float float32
	// Double is a double-precision 64-bit IEEE 754 floating point number
	Double float64
	// String is sequence of Unicode scalar values
	String string
	// VarInt is variable-length data encoding a two's complement signed 32-bit integer
	VarInt int32
	// VarLong is variable-length data encoding a two's complement signed 64-bit integer
	VarLong int64
)

func (b Boolean) Encode() []byte {
	if b {
		return []byte{0x01}
	}
	return []byte{0x00}
}

func (b *Boolean) Decode(r DecodeReader) error {
	v, err := r.ReadByte()
	if err != nil {
		return err
	}
	*b = v != 0
	return nil
}

func (b Byte) Encode() []byte {
	return appendFixed(nil, b, NetworkOrder)
}

func (b *Byte) Decode(r DecodeReader) (err error) {
	*b, err = readFixed[Byte](r, NetworkOrder)
	return
}

func (b UnsignedByte) Encode() []byte {
	return appendFixed(nil, b, NetworkOrder)
}

func (b *UnsignedByte) Decode(r DecodeReader) (err error) {
	*b, err = readFixed[UnsignedByte](r, NetworkOrder)
	return
}

func (s Short) Encode() []byte {
	return appendFixed(nil, s, NetworkOrder)
}

func (s *Short) Decode(r DecodeReader) (err error) {
	*s, err = readFixed[Short](r, NetworkOrder)
	return
}

func (us UnsignedShort) Encode() []byte {
	return appendFixed(nil, us, NetworkOrder)
}

func (us *UnsignedShort) Decode(r DecodeReader) (err error) {
	*us, err = readFixed[UnsignedShort](r, NetworkOrder)
	return
}

func (i Int) Encode() []byte {
	return appendFixed(nil, i, NetworkOrder)
}

func (i *Int) Decode(r DecodeReader) (err error) {
	*i, err = readFixed[Int](r, NetworkOrder)
	return
}

func (l Long) Encode() []byte {
	return appendFixed(nil, l, NetworkOrder)
}

func (l *Long) Decode(r DecodeReader) (err error) {
	*l, err = readFixed[Long](r, NetworkOrder)
	return
}

func (f Float) Encode() []byte {
	return appendFixed(nil, math.Float32bits(float32(f)), NetworkOrder)
}

func (f *Float) Decode(r DecodeReader) error {
	n, err := readFixed[uint32](r, NetworkOrder)
	if err != nil {
		return err
	}
	*f = Float(math.Float32frombits(n))
	return nil
}

func (d Double) Encode() []byte {
	return appendFixed(nil, math.Float64bits(float64(d)), NetworkOrder)
}

func (d *Double) Decode(r DecodeReader) error {
	n, err := readFixed[uint64](r, NetworkOrder)
	if err != nil {
		return err
	}
	*d = Double(math.Float64frombits(n))
	return nil
}

// Encode a String, the length prefix counts bytes and not characters
func (s String) Encode() []byte {
	bb := AppendVarInt(nil, int32(len(s)))
	return append(bb, s...)
}

// Decode a String of at most MaxStringLength bytes
func (s *String) Decode(r DecodeReader) error {
	return s.decode(r, MaxStringLength)
}

func (s *String) decode(r DecodeReader, maxLength int) error {
	l, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if l < 0 {
		return fmt.Errorf("%w: negative string length %d", ErrMalformed, l)
	}
	if int(l) > maxLength {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrStringTooLong, l, maxLength)
	}

	bb := make([]byte, l)
	if _, err := io.ReadFull(r, bb); err != nil {
		return err
	}
	if !utf8.Valid(bb) {
		return ErrInvalidString
	}

	*s = String(bb)
	return nil
}

type limitedString struct {
	s         *String
	maxLength int
}

func (ls limitedString) Decode(r DecodeReader) error {
	return ls.s.decode(r, ls.maxLength)
}

// MaxLength decodes into s but refuses strings longer than maxLength bytes.
func MaxLength(s *String, maxLength int) FieldDecoder {
	return limitedString{s: s, maxLength: maxLength}
}

// Encode a VarInt
func (v VarInt) Encode() []byte {
	return AppendVarInt(nil, int32(v))
}

// Decode a VarInt
func (v *VarInt) Decode(r DecodeReader) error {
	n, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	*v = VarInt(n)
	return nil
}

func (v VarLong) Encode() []byte {
	return AppendVarLong(nil, int64(v))
}

func (v *VarLong) Decode(r DecodeReader) error {
	n, err := ReadVarLong(r)
	if err != nil {
		return err
	}
	*v = VarLong(n)
	return nil
}
