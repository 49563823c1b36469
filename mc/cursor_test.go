package mc_test

import (
	"errors"
	"testing"

	"github.com/realDragonium/picocraft/mc"
)

func TestCursor_TypedReads(t *testing.T) {
	data := []byte{
		0x01,       // bool
		0xfe,       // int8
		0x80, 0x00, // int16
		0x63, 0xdd, // uint16
		0x00, 0x00, 0x01, 0x00, // int32
		0x00, 0x00, 0x00, 0x00, 0x07, 0x5b, 0xcd, 0x15, // int64
		0xdd, 0xc7, 0x01, // varint
		0x03, 'a', 'b', 'c', // string
	}
	c := mc.NewCursor(data)

	b, err := c.ReadBool()
	if err != nil || !b {
		t.Fatalf("bool: got %v, %v", b, err)
	}
	i8, err := c.ReadInt8()
	if err != nil || i8 != -2 {
		t.Fatalf("int8: got %v, %v", i8, err)
	}
	i16, err := c.ReadInt16()
	if err != nil || i16 != -32768 {
		t.Fatalf("int16: got %v, %v", i16, err)
	}
	u16, err := c.ReadUint16()
	if err != nil || u16 != 25565 {
		t.Fatalf("uint16: got %v, %v", u16, err)
	}
	i32, err := c.ReadInt32()
	if err != nil || i32 != 256 {
		t.Fatalf("int32: got %v, %v", i32, err)
	}
	i64, err := c.ReadInt64()
	if err != nil || i64 != 123456789 {
		t.Fatalf("int64: got %v, %v", i64, err)
	}
	v, err := c.ReadVarInt()
	if err != nil || v != 25565 {
		t.Fatalf("varint: got %v, %v", v, err)
	}
	s, err := c.ReadString(255)
	if err != nil || s != "abc" {
		t.Fatalf("string: got %q, %v", s, err)
	}

	if c.Remaining() != 0 {
		t.Errorf("expected nothing left, got %d bytes", c.Remaining())
	}
}

func TestCursor_ReadPastEnd(t *testing.T) {
	c := mc.NewCursor([]byte{0x00, 0x01, 0x02})

	if _, err := c.ReadInt64(); !errors.Is(err, mc.ErrMalformed) {
		t.Fatalf("expected malformed error but got: %v", err)
	}
	if c.Remaining() != 3 {
		t.Errorf("a failed read must not consume anything, %d bytes left", c.Remaining())
	}

	if _, err := c.ReadUint16(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.ReadUint16(); !errors.Is(err, mc.ErrShortPacket) {
		t.Errorf("expected short packet error but got: %v", err)
	}
	if _, err := c.ReadUint8(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.ReadByte(); !errors.Is(err, mc.ErrMalformed) {
		t.Errorf("expected malformed error but got: %v", err)
	}
}

func TestCursor_StringLongerThanPacket(t *testing.T) {
	c := mc.NewCursor([]byte{0x09, 'l', 'o', 'c'})
	if _, err := c.ReadString(255); !errors.Is(err, mc.ErrMalformed) {
		t.Errorf("expected malformed error but got: %v", err)
	}
}

func TestCursor_TruncatedVarInt(t *testing.T) {
	c := mc.NewCursor([]byte{0x80, 0x80})
	if _, err := c.ReadVarInt(); !errors.Is(err, mc.ErrMalformed) {
		t.Errorf("expected malformed error but got: %v", err)
	}
}

func TestCursor_Rest(t *testing.T) {
	c := mc.NewCursor([]byte{0x01, 0x02, 0x03})
	c.ReadByte()
	rest := c.Rest()
	if len(rest) != 2 || rest[0] != 0x02 {
		t.Errorf("got rest: %v", rest)
	}
	if c.Remaining() != 0 {
		t.Errorf("expected cursor to be exhausted")
	}
}
